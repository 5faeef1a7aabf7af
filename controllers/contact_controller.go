package controllers

import (
	"net/http"

	"resort-backend/config"
	"resort-backend/models"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
)

type contactPayload struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// SubmitContactMessage stores a message from the public contact form.
func SubmitContactMessage(c *gin.Context) {
	var p contactPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	msg := models.ContactMessage{
		Name:    p.Name,
		Email:   p.Email,
		Subject: p.Subject,
		Message: p.Message,
	}
	if id, ok := currentUserID(c); ok {
		msg.UserID = &id
	}

	if err := config.DB.Create(&msg).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"message": "thanks, we'll get back to you"})
}

// ListContactMessages is the admin inbox, newest first.
func ListContactMessages(c *gin.Context) {
	var messages []models.ContactMessage
	if err := config.DB.Order("created_at DESC").Find(&messages).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, messages)
}
