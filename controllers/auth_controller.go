package controllers

import (
	"net/http"

	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

func (ctrl *AuthController) Register(c *gin.Context) {
	var in services.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := ctrl.Auth.Register(in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"message": "registered, check your email for the verification code",
		"user":    user,
	})
}

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var p loginPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	token, user, err := ctrl.Auth.Login(p.Email, p.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": token, "user": user})
}

type googleLoginPayload struct {
	IDToken string `json:"idToken" binding:"required"`
}

func (ctrl *AuthController) GoogleLogin(c *gin.Context) {
	var p googleLoginPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	token, user, err := ctrl.Auth.LoginWithGoogle(c.Request.Context(), p.IDToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": token, "user": user})
}

type verifyEmailPayload struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

func (ctrl *AuthController) VerifyEmail(c *gin.Context) {
	var p verifyEmailPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := ctrl.Auth.VerifyEmail(p.Email, p.Code); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "email verified"})
}

type forgotPayload struct {
	Email string `json:"email" binding:"required,email"`
}

func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	var p forgotPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := ctrl.Auth.RequestPasswordReset(p.Email); err != nil {
		respondServiceError(c, err)
		return
	}
	// same response whether or not the email exists
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "if that email has an account, a reset code was sent"})
}

type resetPayload struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	var p resetPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := ctrl.Auth.ResetPassword(p.Email, p.Code, p.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "password updated"})
}

func (ctrl *AuthController) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := ctrl.Auth.GetProfile(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}
