package controllers

import (
	"net/http"
	"time"

	"resort-backend/config"
	"resort-backend/models"
	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
)

type ResourceController struct {
	Resources *services.ResourceService
}

func NewResourceController(resources *services.ResourceService) *ResourceController {
	return &ResourceController{Resources: resources}
}

// List returns resources, optionally filtered with ?type=guide|vehicle|boat|equipment.
func (ctrl *ResourceController) List(c *gin.Context) {
	resources, err := ctrl.Resources.List(c.Query("type"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, resources)
}

func (ctrl *ResourceController) Create(c *gin.Context) {
	var resource models.Resource
	if err := c.ShouldBindJSON(&resource); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if resource.Quantity <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "quantity must be positive")
		return
	}
	resource.AvailableQuantity = resource.Quantity

	if err := config.DB.Create(&resource).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, resource)
}

func (ctrl *ResourceController) Delete(c *gin.Context) {
	resourceID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid resource id")
		return
	}
	// schedules reference the resource and back its counter invariant
	var inUse int64
	if err := config.DB.Model(&models.ResourceSchedule{}).
		Where("resource_id = ?", resourceID).
		Count(&inUse).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	if inUse > 0 {
		utils.JSONError(c, http.StatusConflict, "resource has active schedules, release them first")
		return
	}

	if err := config.DB.Delete(&models.Resource{}, resourceID).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "resource deleted"})
}

type assignResourcePayload struct {
	ResourceID uint   `json:"resourceId" binding:"required"`
	StartTime  string `json:"startTime" binding:"required"`
	EndTime    string `json:"endTime" binding:"required"`
}

// Assign links a resource to a tour booking for a time window:
// POST /api/tour-bookings/:id/resources
func (ctrl *ResourceController) Assign(c *gin.Context) {
	tourBookingID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid tour booking id")
		return
	}
	var p assignResourcePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	start, err := time.Parse(time.RFC3339, p.StartTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "startTime must be RFC3339")
		return
	}
	end, err := time.Parse(time.RFC3339, p.EndTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "endTime must be RFC3339")
		return
	}

	schedule, err := ctrl.Resources.Assign(tourBookingID, p.ResourceID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, schedule)
}

// Unassign releases a schedule:
// DELETE /api/tour-bookings/:id/resources/:scheduleId
func (ctrl *ResourceController) Unassign(c *gin.Context) {
	tourBookingID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid tour booking id")
		return
	}
	scheduleID, ok := paramUint(c, "scheduleId")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid schedule id")
		return
	}

	if err := ctrl.Resources.Unassign(tourBookingID, scheduleID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "resource released"})
}
