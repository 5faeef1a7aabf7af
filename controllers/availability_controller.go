package controllers

import (
	"net/http"
	"strconv"
	"time"

	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	Availability *services.AvailabilityService
}

func NewAvailabilityController(availability *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{Availability: availability}
}

func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return utils.DateOnly(t), true
}

// Check answers whether one room is free for a date range:
// GET /api/availability/check?roomId=1&checkIn=2025-06-01&checkOut=2025-06-05
func (ctrl *AvailabilityController) Check(c *gin.Context) {
	roomID, err := strconv.ParseUint(c.Query("roomId"), 10, 64)
	if err != nil || roomID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "roomId is required")
		return
	}
	checkIn, ok := parseDateQuery(c, "checkIn")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "checkIn must be YYYY-MM-DD")
		return
	}
	checkOut, ok := parseDateQuery(c, "checkOut")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "checkOut must be YYYY-MM-DD")
		return
	}
	if err := ctrl.Availability.ValidateStayRange(checkIn, checkOut); err != nil {
		respondServiceError(c, err)
		return
	}

	available, err := ctrl.Availability.IsRoomAvailable(uint(roomID), checkIn, checkOut, 0)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"roomId":    roomID,
		"checkIn":   checkIn.Format("2006-01-02"),
		"checkOut":  checkOut.Format("2006-01-02"),
		"available": available,
	})
}

// ForRoomType lists the free rooms of a type for a date range:
// GET /api/availability/room-type/:id?checkIn=...&checkOut=...
func (ctrl *AvailabilityController) ForRoomType(c *gin.Context) {
	roomTypeID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid room type id")
		return
	}
	checkIn, ok := parseDateQuery(c, "checkIn")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "checkIn must be YYYY-MM-DD")
		return
	}
	checkOut, ok := parseDateQuery(c, "checkOut")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "checkOut must be YYYY-MM-DD")
		return
	}
	if err := ctrl.Availability.ValidateStayRange(checkIn, checkOut); err != nil {
		respondServiceError(c, err)
		return
	}

	rooms, err := ctrl.Availability.AvailableRoomsForType(roomTypeID, checkIn, checkOut)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"roomTypeId": roomTypeID,
		"count":      len(rooms),
		"rooms":      rooms,
	})
}
