package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TourBooking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID        uint   `gorm:"index;column:user_id" json:"userId"`
	TourID        uint   `gorm:"index;column:tour_id" json:"tourId"`
	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"referenceCode"`

	TourDate time.Time `gorm:"column:tour_date" json:"tourDate"`
	Pax      int       `gorm:"default:1" json:"pax"`

	// optional name/age breakdown the guest supplied at booking time
	PaxDetails datatypes.JSON `gorm:"column:pax_details" json:"paxDetails,omitempty"`

	Status        string  `gorm:"size:32;index;default:pending" json:"status"`
	PaymentStatus string  `gorm:"column:payment_status;size:32;default:unpaid" json:"paymentStatus"`
	TotalPrice    float64 `gorm:"column:total_price" json:"totalPrice"`
	AmountPaid    float64 `gorm:"column:amount_paid" json:"amountPaid"`
	BalanceDue    float64 `gorm:"column:balance_due" json:"balanceDue"`

	PaymentMeta datatypes.JSON `gorm:"column:payment_meta" json:"paymentMeta,omitempty"`

	CancelledAt *time.Time `gorm:"column:cancelled_at" json:"cancelledAt,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User      User               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tour      Tour               `gorm:"foreignKey:TourID" json:"tour,omitempty"`
	Schedules []ResourceSchedule `gorm:"foreignKey:TourBookingID" json:"schedules,omitempty"`
}
