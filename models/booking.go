package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCheckedIn = "checked_in"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// ActiveBookingStatuses are the statuses that occupy a room for
// availability purposes. Cancelled and completed bookings never conflict.
var ActiveBookingStatuses = []string{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCheckedIn,
}

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID        uint   `gorm:"index;column:user_id" json:"userId"`
	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"referenceCode"`

	// RoomID stays nil until front desk assigns a physical room.
	RoomID     *uint `gorm:"column:room_id;index" json:"roomId,omitempty"`
	RoomTypeID uint  `gorm:"column:room_type_id;index" json:"roomTypeId"`

	CheckInDate  time.Time `gorm:"column:check_in_date" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"column:check_out_date" json:"checkOutDate"`
	Nights       int       `json:"nights"`
	Adults       int       `gorm:"default:1" json:"adults"`
	Children     int       `gorm:"default:0" json:"children"`

	Status        string  `gorm:"size:32;index;default:pending" json:"status"`
	PaymentStatus string  `gorm:"column:payment_status;size:32;default:unpaid" json:"paymentStatus"`
	TotalPrice    float64 `gorm:"column:total_price" json:"totalPrice"`
	AmountPaid    float64 `gorm:"column:amount_paid" json:"amountPaid"`
	BalanceDue    float64 `gorm:"column:balance_due" json:"balanceDue"`

	// raw gateway echo (provider, transaction id, amount, currency)
	PaymentMeta datatypes.JSON `gorm:"column:payment_meta" json:"paymentMeta,omitempty"`

	CheckedInAt *time.Time `gorm:"column:checked_in_at" json:"checkedInAt,omitempty"`
	CancelledAt *time.Time `gorm:"column:cancelled_at" json:"cancelledAt,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User     User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Room     *Room    `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
}
