package models

import (
	"time"

	"gorm.io/gorm"
)

type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:100;uniqueIndex" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	BasePrice   float64 `gorm:"column:base_price" json:"basePrice"`
	Capacity    int     `json:"capacity"`
	Image       string  `gorm:"size:255" json:"image"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Rooms []Room `gorm:"foreignKey:RoomTypeID" json:"rooms,omitempty"`
}
