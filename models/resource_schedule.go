package models

import (
	"time"
)

// ResourceSchedule binds one Resource to one TourBooking for a time window.
// Its insertion decrements the resource's available_quantity by exactly 1;
// its deletion restores it.
type ResourceSchedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ResourceID    uint `gorm:"index:idx_resource_booking,unique;column:resource_id" json:"resourceId"`
	TourBookingID uint `gorm:"index:idx_resource_booking,unique;column:tour_booking_id" json:"tourBookingId"`

	StartTime time.Time `gorm:"column:start_time" json:"startTime"`
	EndTime   time.Time `gorm:"column:end_time" json:"endTime"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Resource Resource `gorm:"foreignKey:ResourceID" json:"resource,omitempty"`
}
