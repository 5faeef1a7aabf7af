package controllers

import (
	"net/http"

	"resort-backend/config"
	"resort-backend/models"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
)

func GetTours(c *gin.Context) {
	var tours []models.Tour
	if err := config.DB.Order("name ASC").Find(&tours).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tours)
}

func GetTour(c *gin.Context) {
	tourID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid tour id")
		return
	}

	var tour models.Tour
	if err := config.DB.First(&tour, tourID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "tour not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tour)
}

func CreateTour(c *gin.Context) {
	var tour models.Tour
	if err := c.ShouldBindJSON(&tour); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := config.DB.Create(&tour).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, tour)
}

func UpdateTour(c *gin.Context) {
	tourID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid tour id")
		return
	}

	var tour models.Tour
	if err := config.DB.First(&tour, tourID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "tour not found")
		return
	}
	if err := c.ShouldBindJSON(&tour); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	tour.ID = tourID

	if err := config.DB.Save(&tour).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tour)
}

func DeleteTour(c *gin.Context) {
	tourID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid tour id")
		return
	}
	if err := config.DB.Delete(&models.Tour{}, tourID).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "tour deleted"})
}
