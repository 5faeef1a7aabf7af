package controllers

import (
	"net/http"

	"resort-backend/config"
	"resort-backend/models"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
)

func GetRoomTypes(c *gin.Context) {
	var types []models.RoomType
	if err := config.DB.Preload("Rooms").Order("base_price ASC").Find(&types).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

func CreateRoomType(c *gin.Context) {
	var rt models.RoomType
	if err := c.ShouldBindJSON(&rt); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := config.DB.Create(&rt).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rt)
}

func UpdateRoomType(c *gin.Context) {
	typeID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid room type id")
		return
	}

	var rt models.RoomType
	if err := config.DB.First(&rt, typeID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "room type not found")
		return
	}
	if err := c.ShouldBindJSON(&rt); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	rt.ID = typeID

	if err := config.DB.Save(&rt).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

func DeleteRoomType(c *gin.Context) {
	typeID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid room type id")
		return
	}
	if err := config.DB.Delete(&models.RoomType{}, typeID).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room type deleted"})
}
