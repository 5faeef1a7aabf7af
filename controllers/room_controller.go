package controllers

import (
	"net/http"

	"resort-backend/config"
	"resort-backend/models"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
)

func GetRooms(c *gin.Context) {
	var rooms []models.Room
	query := config.DB.Preload("RoomType").Order("room_number ASC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&rooms).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	room.Status = models.RoomStatusAvailable

	if err := config.DB.Create(&room).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func UpdateRoom(c *gin.Context) {
	roomID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}

	var room models.Room
	if err := config.DB.First(&room, roomID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "room not found")
		return
	}

	var payload struct {
		RoomNumber *string `json:"roomNumber"`
		Floor      *string `json:"floor"`
		RoomTypeID *uint   `json:"roomTypeId"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	updates := map[string]interface{}{}
	if payload.RoomNumber != nil {
		updates["room_number"] = *payload.RoomNumber
	}
	if payload.Floor != nil {
		updates["floor"] = *payload.Floor
	}
	if payload.RoomTypeID != nil {
		updates["room_type_id"] = *payload.RoomTypeID
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&room).Updates(updates).Error; err != nil {
			respondServiceError(c, err)
			return
		}
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func DeleteRoom(c *gin.Context) {
	roomID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}
	if err := config.DB.Delete(&models.Room{}, roomID).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room deleted"})
}
