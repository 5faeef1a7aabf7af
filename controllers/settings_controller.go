package controllers

import (
	"net/http"

	"resort-backend/config"
	"resort-backend/models"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetSettings returns the single property-settings row.
func GetSettings(c *gin.Context) {
	var setting models.HotelSetting
	if err := config.DB.First(&setting).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "settings not configured")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, setting)
}

// UpdateSettings upserts the single row.
func UpdateSettings(c *gin.Context) {
	var payload models.HotelSetting
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	var setting models.HotelSetting
	if err := config.DB.First(&setting).Error; err != nil {
		payload.ID = 0
		if err := config.DB.Create(&payload).Error; err != nil {
			respondServiceError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, payload)
		return
	}

	payload.ID = setting.ID
	if err := config.DB.Save(&payload).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payload)
}
