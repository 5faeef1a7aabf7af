package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	InvoiceStatusDraft  = "draft"
	InvoiceStatusIssued = "issued"
	InvoiceStatusPaid   = "paid"
)

// Invoice.TotalAmount must equal the sum of its items' total_price after
// every item mutation; InvoiceService recomputes it in the same transaction.
type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	InvoiceNumber string `gorm:"column:invoice_number;uniqueIndex;size:64" json:"invoiceNumber"`

	// exactly one of these is set
	BookingID     *uint `gorm:"index;column:booking_id" json:"bookingId,omitempty"`
	TourBookingID *uint `gorm:"index;column:tour_booking_id" json:"tourBookingId,omitempty"`

	Status      string  `gorm:"size:32;default:draft" json:"status"`
	TotalAmount float64 `gorm:"column:total_amount" json:"totalAmount"`
	IssuedAt    *time.Time `gorm:"column:issued_at" json:"issuedAt,omitempty"`
	PaidAt      *time.Time `gorm:"column:paid_at" json:"paidAt,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`
}

type InvoiceItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	InvoiceID   uint    `gorm:"index;column:invoice_id" json:"invoiceId"`
	Description string  `gorm:"size:255" json:"description"`
	Quantity    int     `gorm:"default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"column:unit_price" json:"unitPrice"`
	TotalPrice  float64 `gorm:"column:total_price" json:"totalPrice"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
