package models

import (
	"time"

	"gorm.io/gorm"
)

type Tour struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:150;uniqueIndex" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Destination string  `gorm:"size:150" json:"destination"`
	PricePerPax float64 `gorm:"column:price_per_pax" json:"pricePerPax"`
	MaxPax      int     `gorm:"column:max_pax" json:"maxPax"`
	DurationHrs int     `gorm:"column:duration_hrs" json:"durationHrs"`
	Image       string  `gorm:"size:255" json:"image"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
