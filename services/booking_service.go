package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"resort-backend/models"
	"resort-backend/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentRecord is what the payment adapters hand back after verifying a
// gateway transaction. The booking path only records it; it never calls the
// gateway itself.
type PaymentRecord struct {
	Provider      string  `json:"provider"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Verified      bool    `json:"verified"`
}

type CreateRoomBookingInput struct {
	UserID     uint
	RoomTypeID uint
	RoomID     *uint // optional: guest may request a specific room
	CheckIn    string
	CheckOut   string
	Adults     int
	Children   int
	Payment    *PaymentRecord
}

type BookingService struct {
	DB           *gorm.DB
	Availability *AvailabilityService

	// injectable clock so "stay covers today" is testable
	Now func() time.Time
}

func NewBookingService(db *gorm.DB, availability *AvailabilityService) *BookingService {
	return &BookingService{DB: db, Availability: availability, Now: time.Now}
}

func newReferenceCode(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}

func parseStayDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return utils.DateOnly(t), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return utils.DateOnly(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", ErrValidation, value)
}

func nightsBetween(checkIn, checkOut time.Time) int {
	n := int(checkOut.Sub(checkIn).Hours() / 24)
	if n <= 0 {
		n = 1
	}
	return n
}

// CreateRoomBooking validates the stay range and re-checks availability
// inside the insert transaction. The room rows are read FOR UPDATE, so
// concurrent creates against the same room serialize and the second one
// sees the first one's committed booking when it counts conflicts. With no
// explicit room the booking is held against the room type and the front
// desk assigns a room later.
func (s *BookingService) CreateRoomBooking(in CreateRoomBookingInput) (*models.Booking, error) {
	checkIn, err := parseStayDate(in.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseStayDate(in.CheckOut)
	if err != nil {
		return nil, err
	}
	if err := s.Availability.ValidateStayRange(checkIn, checkOut); err != nil {
		return nil, err
	}
	if in.Adults <= 0 {
		in.Adults = 1
	}
	if in.Children < 0 {
		in.Children = 0
	}

	var user models.User
	if err := s.DB.First(&user, in.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, in.UserID)
		}
		return nil, fmt.Errorf("db error checking user: %w", err)
	}

	var roomType models.RoomType
	if err := s.DB.First(&roomType, in.RoomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room type %d", ErrNotFound, in.RoomTypeID)
		}
		return nil, fmt.Errorf("db error checking room type: %w", err)
	}
	if in.Adults+in.Children > roomType.Capacity {
		return nil, fmt.Errorf("%w: party of %d exceeds capacity %d", ErrValidation, in.Adults+in.Children, roomType.Capacity)
	}

	nights := nightsBetween(checkIn, checkOut)
	total := float64(nights) * roomType.BasePrice

	status := models.BookingStatusPending
	paymentStatus := models.PaymentStatusUnpaid
	amountPaid := 0.0
	var paymentMeta datatypes.JSON
	if in.Payment != nil {
		if !in.Payment.Verified {
			return nil, fmt.Errorf("%w: %s transaction %s not verified", ErrPaymentRejected, in.Payment.Provider, in.Payment.TransactionID)
		}
		raw, _ := json.Marshal(in.Payment)
		paymentMeta = datatypes.JSON(raw)
		amountPaid = in.Payment.Amount
		status = models.BookingStatusConfirmed
		switch {
		case amountPaid >= total:
			paymentStatus = models.PaymentStatusPaid
		case amountPaid > 0:
			paymentStatus = models.PaymentStatusPartial
		}
	}

	booking := models.Booking{
		UserID:        in.UserID,
		ReferenceCode: newReferenceCode("BK"),
		RoomID:        in.RoomID,
		RoomTypeID:    in.RoomTypeID,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Nights:        nights,
		Adults:        in.Adults,
		Children:      in.Children,
		Status:        status,
		PaymentStatus: paymentStatus,
		TotalPrice:    total,
		AmountPaid:    amountPaid,
		BalanceDue:    total - amountPaid,
		PaymentMeta:   paymentMeta,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		avail := &AvailabilityService{DB: tx}

		if in.RoomID != nil {
			var room models.Room
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, *in.RoomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: room %d", ErrNotFound, *in.RoomID)
				}
				return fmt.Errorf("db error checking room: %w", err)
			}
			if room.RoomTypeID != in.RoomTypeID {
				return fmt.Errorf("%w: room %s is not a %s", ErrValidation, room.RoomNumber, roomType.Name)
			}
			ok, err := avail.IsRoomAvailable(room.ID, checkIn, checkOut, 0)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: room %s is not available for those dates", ErrConflict, room.RoomNumber)
			}
		} else {
			// lock the type's rooms so a concurrent specific-room create
			// cannot slip between the count and the insert
			var rooms []models.Room
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("room_type_id = ?", in.RoomTypeID).
				Find(&rooms).Error; err != nil {
				return fmt.Errorf("db error locking rooms: %w", err)
			}
			free, err := avail.AvailableRoomsForType(in.RoomTypeID, checkIn, checkOut)
			if err != nil {
				return err
			}
			if len(free) == 0 {
				return fmt.Errorf("%w: no %s rooms available for those dates", ErrConflict, roomType.Name)
			}
		}

		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		// cached status projection; the sweep reconciles it anyway
		if in.RoomID != nil && s.stayCoversToday(checkIn, checkOut) {
			if err := tx.Model(&models.Room{}).
				Where("id = ?", *in.RoomID).
				Update("status", models.RoomStatusOccupied).Error; err != nil {
				return fmt.Errorf("failed to update room status: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if mailErr := utils.SendBookingConfirmationEmail(
		user.Email, user.FullName, booking.ReferenceCode, roomType.Name,
		checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"), total,
	); mailErr != nil {
		log.Printf("warning: booking %s confirmation email failed: %v", booking.ReferenceCode, mailErr)
	}

	if err := s.DB.Preload("RoomType").Preload("Room").Preload("User").First(&booking, booking.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	return &booking, nil
}

func (s *BookingService) stayCoversToday(checkIn, checkOut time.Time) bool {
	today := utils.DateOnly(s.Now())
	return !checkIn.After(today) && checkOut.After(today)
}

// CancelBooking cancels a pending or confirmed booking. Only the owner or
// an admin may cancel; checked-in and completed bookings cannot be.
func (s *BookingService) CancelBooking(bookingID, requesterID uint, requesterRole string) (*models.Booking, error) {
	var booking models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("User").First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
			}
			return fmt.Errorf("db error loading booking: %w", err)
		}
		if booking.UserID != requesterID && requesterRole != models.RoleAdmin {
			return fmt.Errorf("%w: booking belongs to another guest", ErrForbidden)
		}
		switch booking.Status {
		case models.BookingStatusPending, models.BookingStatusConfirmed:
			// cancellable
		case models.BookingStatusCancelled:
			return fmt.Errorf("%w: booking already cancelled", ErrConflict)
		default:
			return fmt.Errorf("%w: cannot cancel a %s booking", ErrConflict, booking.Status)
		}

		now := s.Now().UTC()
		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"status":       models.BookingStatusCancelled,
			"cancelled_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		// free the room unless another active booking still covers today
		if booking.RoomID != nil {
			avail := &AvailabilityService{DB: tx}
			occupied, err := avail.HasActiveBookingToday(*booking.RoomID, now)
			if err != nil {
				return err
			}
			if !occupied {
				if err := tx.Model(&models.Room{}).
					Where("id = ?", *booking.RoomID).
					Update("status", models.RoomStatusAvailable).Error; err != nil {
					return fmt.Errorf("failed to free room: %w", err)
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	refunded := booking.AmountPaid > 0
	if mailErr := utils.SendCancellationEmail(booking.User.Email, booking.User.FullName, booking.ReferenceCode, refunded); mailErr != nil {
		log.Printf("warning: booking %s cancellation email failed: %v", booking.ReferenceCode, mailErr)
	}

	if err := s.DB.Preload("RoomType").Preload("Room").First(&booking, booking.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	return &booking, nil
}

// ListByUser returns the guest's own room bookings, newest first.
func (s *BookingService) ListByUser(userID uint) ([]models.Booking, error) {
	var list []models.Booking
	err := s.DB.
		Preload("RoomType").
		Preload("Room").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return list, nil
}

// ListAll is the admin view, optionally filtered by status.
func (s *BookingService) ListAll(status string) ([]models.Booking, error) {
	q := s.DB.
		Preload("User").
		Preload("RoomType").
		Preload("Room").
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.Booking
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return list, nil
}

// GetByID loads one booking with relations.
func (s *BookingService) GetByID(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("User").Preload("RoomType").Preload("Room").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return &booking, nil
}
