package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleFrontDesk = "front_desk"
	RoleAdmin     = "admin"
)

const (
	GuestTypeNew     = "new"
	GuestTypeRegular = "regular"
	GuestTypeVIP     = "vip"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FullName  string `gorm:"size:255" json:"fullName"`
	Email     string `gorm:"uniqueIndex;size:150" json:"email"`
	// nullable: OAuth-only accounts have no password
	Password *string `gorm:"size:255" json:"-"`
	Phone    string  `gorm:"size:50" json:"phone"`
	Role     string  `gorm:"size:32;default:user" json:"role"`

	GoogleID      *string `gorm:"size:128;index" json:"-"`
	EmailVerified bool    `gorm:"default:false" json:"emailVerified"`

	// aggregates recomputed by the cleanup sweep, never updated inline
	TotalVisits   int     `gorm:"default:0" json:"totalVisits"`
	TotalRevenue  float64 `gorm:"default:0" json:"totalRevenue"`
	GuestType     string  `gorm:"size:32;default:new" json:"guestType"`
	LoyaltyPoints int     `gorm:"default:0" json:"loyaltyPoints"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
