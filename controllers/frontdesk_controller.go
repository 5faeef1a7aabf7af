package controllers

import (
	"net/http"
	"time"

	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
)

type FrontDeskController struct {
	FrontDesk *services.FrontDeskService
}

func NewFrontDeskController(frontDesk *services.FrontDeskService) *FrontDeskController {
	return &FrontDeskController{FrontDesk: frontDesk}
}

// Arrivals lists bookings checking in on a day (default today):
// GET /api/frontdesk/arrivals?date=2025-06-01
func (ctrl *FrontDeskController) Arrivals(c *gin.Context) {
	day := ctrl.FrontDesk.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	arrivals, err := ctrl.FrontDesk.Arrivals(day)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, arrivals)
}

type assignRoomPayload struct {
	BookingID uint `json:"bookingId" binding:"required"`
	RoomID    uint `json:"roomId" binding:"required"`
}

func (ctrl *FrontDeskController) AssignRoom(c *gin.Context) {
	var p assignRoomPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	booking, err := ctrl.FrontDesk.AssignRoom(p.BookingID, p.RoomID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *FrontDeskController) CheckIn(c *gin.Context) {
	bookingID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := ctrl.FrontDesk.CheckIn(bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}
