package models

import (
	"time"
)

const (
	VerifyPurposeRegister = "register"
	VerifyPurposeReset    = "reset"
)

type VerificationCode struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email     string     `gorm:"size:150;index" json:"email"`
	Code      string     `gorm:"size:16;index" json:"-"`
	Purpose   string     `gorm:"size:32" json:"purpose"`
	ExpiresAt *time.Time `json:"expiresAt"`
	Used      bool       `gorm:"default:false" json:"used"`

	CreatedAt time.Time `json:"created_at"`
}
