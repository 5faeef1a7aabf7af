package models

import (
	"time"

	"gorm.io/gorm"
)

type ContactMessage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID  *uint  `gorm:"index" json:"userId,omitempty"`
	Name    string `gorm:"size:150" json:"name"`
	Email   string `gorm:"size:150" json:"email"`
	Subject string `gorm:"size:255" json:"subject"`
	Message string `gorm:"type:text" json:"message"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
