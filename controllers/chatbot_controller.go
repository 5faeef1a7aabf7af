package controllers

import (
	"net/http"

	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
)

type ChatbotController struct {
	Chatbot *services.ChatbotService
}

func NewChatbotController(chatbot *services.ChatbotService) *ChatbotController {
	return &ChatbotController{Chatbot: chatbot}
}

type chatPayload struct {
	Message string `json:"message" binding:"required"`
}

// Chat answers a single message. Works anonymously; if the optional auth
// middleware put a user on the context the reply can get personal.
func (ctrl *ChatbotController) Chat(c *gin.Context) {
	var p chatPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	var userID *uint
	if id, ok := currentUserID(c); ok {
		userID = &id
	}

	reply, err := ctrl.Chatbot.Reply(p.Message, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"reply": reply})
}
