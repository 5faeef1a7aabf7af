package models

import (
	"gorm.io/gorm"
)

const (
	RoomStatusAvailable = "available"
	RoomStatusOccupied  = "occupied"
)

// Room.Status is a cached projection of whether an active booking covers
// today. The booking table is authoritative; the cleanup sweep reconciles
// any drift.
type Room struct {
	gorm.Model

	RoomTypeID uint   `gorm:"column:room_type_id;index" json:"roomTypeId"`
	RoomNumber string `gorm:"column:room_number;uniqueIndex;type:varchar(50)" json:"roomNumber"`
	Floor      string `gorm:"type:varchar(10)" json:"floor"`
	Status     string `gorm:"size:32;default:available" json:"status"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
}
