package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"resort-backend/models"
	"resort-backend/utils"

	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

const verificationCodeTTL = 15 * time.Minute

type AuthService struct {
	DB *gorm.DB

	// GoogleClientID gates the Google sign-in path; empty disables it.
	GoogleClientID string

	// validateGoogleToken is swapped in tests to avoid calling Google.
	validateGoogleToken func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

	Now func() time.Time
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		DB:                  db,
		GoogleClientID:      utils.EnvOrDefault("GOOGLE_CLIENT_ID", ""),
		validateGoogleToken: idtoken.Validate,
		Now:                 time.Now,
	}
}

type RegisterInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

// Register creates an unverified user account and emails a 6-digit
// confirmation code. Duplicate email is a conflict.
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("db error checking email: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: email %s is already registered", ErrConflict, email)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		FullName: strings.TrimSpace(in.FullName),
		Email:    email,
		Password: &hash,
		Phone:    strings.TrimSpace(in.Phone),
		Role:     models.RoleUser,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.issueVerificationCode(email, models.VerifyPurposeRegister); err != nil {
		log.Printf("failed to send verification code to %s: %v", email, err)
	}
	return &user, nil
}

// Login verifies the password and issues a JWT.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return "", nil, fmt.Errorf("db error loading user: %w", err)
	}
	if user.Password == nil || !utils.CheckPassword(*user.Password, password) {
		return "", nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, &user, nil
}

// LoginWithGoogle validates the ID token with Google and finds or creates
// the matching account. Accounts created here have no password.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (string, *models.User, error) {
	if s.GoogleClientID == "" {
		return "", nil, fmt.Errorf("%w: google sign-in is not configured", ErrUnauthorized)
	}

	payload, err := s.validateGoogleToken(ctx, idToken, s.GoogleClientID)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid google token", ErrUnauthorized)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	googleID := payload.Subject
	if email == "" || googleID == "" {
		return "", nil, fmt.Errorf("%w: google token missing email", ErrUnauthorized)
	}
	email = strings.ToLower(email)

	var user models.User
	err = s.DB.Where("google_id = ? OR email = ?", googleID, email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			FullName:      name,
			Email:         email,
			GoogleID:      &googleID,
			Role:          models.RoleUser,
			EmailVerified: true,
		}
		if err := s.DB.Create(&user).Error; err != nil {
			return "", nil, fmt.Errorf("failed to create user: %w", err)
		}
	case err != nil:
		return "", nil, fmt.Errorf("db error loading user: %w", err)
	default:
		// link google id to a pre-existing password account
		if user.GoogleID == nil {
			if err := s.DB.Model(&user).Updates(map[string]interface{}{
				"google_id":      googleID,
				"email_verified": true,
			}).Error; err != nil {
				return "", nil, fmt.Errorf("failed to link google account: %w", err)
			}
		}
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, &user, nil
}

func (s *AuthService) issueVerificationCode(email, purpose string) error {
	code, err := utils.GenerateNumericCode(6)
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	expires := s.Now().Add(verificationCodeTTL)
	record := models.VerificationCode{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: &expires,
	}
	if err := s.DB.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	return utils.SendVerificationCodeEmail(email, code, purpose)
}

// consumeCode validates and marks a verification code used.
func (s *AuthService) consumeCode(email, code, purpose string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var record models.VerificationCode
	err := s.DB.Where("email = ? AND code = ? AND purpose = ? AND used = ?",
		email, code, purpose, false).
		Order("created_at DESC").First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: invalid verification code", ErrValidation)
		}
		return fmt.Errorf("db error loading code: %w", err)
	}
	if record.ExpiresAt != nil && s.Now().After(*record.ExpiresAt) {
		return fmt.Errorf("%w: verification code has expired", ErrValidation)
	}
	if err := s.DB.Model(&record).Update("used", true).Error; err != nil {
		return fmt.Errorf("failed to mark code used: %w", err)
	}
	return nil
}

// VerifyEmail confirms a registration code and flags the account verified.
func (s *AuthService) VerifyEmail(email, code string) error {
	if err := s.consumeCode(email, code, models.VerifyPurposeRegister); err != nil {
		return err
	}
	res := s.DB.Model(&models.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Update("email_verified", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark email verified: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: no account for %s", ErrNotFound, email)
	}
	return nil
}

// RequestPasswordReset emails a reset code. Unknown emails succeed silently
// so the endpoint does not leak which addresses have accounts.
func (s *AuthService) RequestPasswordReset(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("db error checking email: %w", err)
	}
	if count == 0 {
		log.Printf("password reset requested for unknown email %s", email)
		return nil
	}
	return s.issueVerificationCode(email, models.VerifyPurposeReset)
}

// ResetPassword consumes a reset code and replaces the password hash.
func (s *AuthService) ResetPassword(email, code, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	if err := s.consumeCode(email, code, models.VerifyPurposeReset); err != nil {
		return err
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	res := s.DB.Model(&models.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Update("password", hash)
	if res.Error != nil {
		return fmt.Errorf("failed to update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: no account for %s", ErrNotFound, email)
	}
	return nil
}

// GetProfile returns the account for /me.
func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}
