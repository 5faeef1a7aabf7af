package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ResourceTypeGuide     = "Guide"
	ResourceTypeVehicle   = "Vehicle"
	ResourceTypeBoat      = "Boat"
	ResourceTypeEquipment = "Equipment"
)

// Invariant: 0 <= AvailableQuantity <= Quantity. AvailableQuantity is a
// stored counter kept in step with resource_schedules by conditional
// UPDATEs only, never by read-modify-write.
type Resource struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Type              string `gorm:"size:32;index" json:"type"`
	Name              string `gorm:"size:150" json:"name"`
	Quantity          int    `json:"quantity"`
	AvailableQuantity int    `gorm:"column:available_quantity" json:"availableQuantity"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
