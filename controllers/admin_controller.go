package controllers

import (
	"net/http"
	"time"

	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Cleanup *services.CleanupService
}

func NewAdminController(cleanup *services.CleanupService) *AdminController {
	return &AdminController{Cleanup: cleanup}
}

// RunCleanup triggers the booking lifecycle sweep outside its schedule.
func (ctrl *AdminController) RunCleanup(c *gin.Context) {
	if err := ctrl.Cleanup.Run(time.Now().UTC()); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "cleanup sweep completed"})
}
