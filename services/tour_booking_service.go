package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"resort-backend/models"
	"resort-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateTourBookingInput struct {
	UserID     uint
	TourID     uint
	TourDate   string
	Pax        int
	PaxDetails []map[string]interface{}
	Payment    *PaymentRecord
}

type TourBookingService struct {
	DB        *gorm.DB
	Resources *ResourceService

	Now func() time.Time
}

func NewTourBookingService(db *gorm.DB, resources *ResourceService) *TourBookingService {
	return &TourBookingService{DB: db, Resources: resources, Now: time.Now}
}

// CreateTourBooking books pax seats on a tour date. Unlike rooms there is
// no per-seat conflict check; capacity is the only limit.
func (s *TourBookingService) CreateTourBooking(in CreateTourBookingInput) (*models.TourBooking, error) {
	tourDate, err := parseStayDate(in.TourDate)
	if err != nil {
		return nil, err
	}
	if tourDate.Before(utils.DateOnly(s.Now())) {
		return nil, fmt.Errorf("%w: tour date is in the past", ErrValidation)
	}
	if in.Pax <= 0 {
		return nil, fmt.Errorf("%w: pax must be at least 1", ErrValidation)
	}

	var user models.User
	if err := s.DB.First(&user, in.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, in.UserID)
		}
		return nil, fmt.Errorf("db error checking user: %w", err)
	}

	var tour models.Tour
	if err := s.DB.First(&tour, in.TourID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tour %d", ErrNotFound, in.TourID)
		}
		return nil, fmt.Errorf("db error checking tour: %w", err)
	}
	if tour.MaxPax > 0 && in.Pax > tour.MaxPax {
		return nil, fmt.Errorf("%w: pax %d exceeds tour limit %d", ErrValidation, in.Pax, tour.MaxPax)
	}

	total := float64(in.Pax) * tour.PricePerPax

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

	var paxDetails datatypes.JSON
	if len(in.PaxDetails) > 0 {
		raw, _ := json.Marshal(in.PaxDetails)
		paxDetails = datatypes.JSON(raw)
	}

	booking := models.TourBooking{
		UserID:        in.UserID,
		TourID:        in.TourID,
		ReferenceCode: newReferenceCode("TR"),
		TourDate:      tourDate,
		Pax:           in.Pax,
		PaxDetails:    paxDetails,
		Status:        status,
		PaymentStatus: paymentStatus,
		TotalPrice:    total,
		AmountPaid:    amountPaid,
		BalanceDue:    total - amountPaid,
		PaymentMeta:   paymentMeta,
	}

	if err := s.DB.Create(&booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create tour booking: %w", err)
	}

	if mailErr := utils.SendTourBookingEmail(
		user.Email, user.FullName, booking.ReferenceCode, tour.Name,
		tourDate.Format("2006-01-02"), in.Pax, total,
	); mailErr != nil {
		log.Printf("warning: tour booking %s confirmation email failed: %v", booking.ReferenceCode, mailErr)
	}

	if err := s.DB.Preload("Tour").Preload("User").First(&booking, booking.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload tour booking: %w", err)
	}
	return &booking, nil
}

// CancelTourBooking cancels a pending/confirmed tour booking and releases
// every resource schedule attached to it.
func (s *TourBookingService) CancelTourBooking(bookingID, requesterID uint, requesterRole string) (*models.TourBooking, error) {
	var booking models.TourBooking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("User").Preload("Schedules").First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: tour booking %d", ErrNotFound, bookingID)
			}
			return fmt.Errorf("db error loading tour booking: %w", err)
		}
		if booking.UserID != requesterID && requesterRole != models.RoleAdmin {
			return fmt.Errorf("%w: booking belongs to another guest", ErrForbidden)
		}
		switch booking.Status {
		case models.BookingStatusPending, models.BookingStatusConfirmed:
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
			return fmt.Errorf("failed to cancel tour booking: %w", err)
		}

		resources := &ResourceService{DB: tx}
		for _, schedule := range booking.Schedules {
			if err := resources.unassignTx(tx, schedule.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	refunded := booking.AmountPaid > 0
	if mailErr := utils.SendCancellationEmail(booking.User.Email, booking.User.FullName, booking.ReferenceCode, refunded); mailErr != nil {
		log.Printf("warning: tour booking %s cancellation email failed: %v", booking.ReferenceCode, mailErr)
	}

	if err := s.DB.Preload("Tour").First(&booking, booking.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload tour booking: %w", err)
	}
	return &booking, nil
}

// ListByUser returns the guest's own tour bookings, newest first.
func (s *TourBookingService) ListByUser(userID uint) ([]models.TourBooking, error) {
	var list []models.TourBooking
	err := s.DB.
		Preload("Tour").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tour bookings: %w", err)
	}
	return list, nil
}

// ListAll is the admin view, optionally filtered by status.
func (s *TourBookingService) ListAll(status string) ([]models.TourBooking, error) {
	q := s.DB.
		Preload("User").
		Preload("Tour").
		Preload("Schedules.Resource").
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.TourBooking
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list tour bookings: %w", err)
	}
	return list, nil
}

// GetByID loads one tour booking with relations.
func (s *TourBookingService) GetByID(bookingID uint) (*models.TourBooking, error) {
	var booking models.TourBooking
	err := s.DB.Preload("User").Preload("Tour").Preload("Schedules.Resource").First(&booking, bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tour booking %d", ErrNotFound, bookingID)
		}
		return nil, fmt.Errorf("failed to load tour booking: %w", err)
	}
	return &booking, nil
}
