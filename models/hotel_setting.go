package models

import "time"

// HotelSetting is a single-row table holding the property's public contact
// details. The chatbot's contact topic and outgoing emails read from it.
type HotelSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Address   string    `gorm:"type:text" json:"address"`
	Phone     string    `gorm:"size:50" json:"phone"`
	Email     string    `gorm:"size:150" json:"email"`
	Website   string    `gorm:"size:255" json:"website"`
	CheckIn   string    `gorm:"size:20" json:"checkIn"`
	CheckOut  string    `gorm:"size:20" json:"checkOut"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
