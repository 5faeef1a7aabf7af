package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"resort-backend/models"
	"resort-backend/utils"

	"gorm.io/gorm"
)

// CleanupService is the periodic sweep: it expires past-checkout bookings,
// re-derives room status from the ground truth, and recomputes guest
// loyalty metrics. Every step is a full re-derivation, so running the sweep
// twice in a row changes nothing the second time.
type CleanupService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
}

func NewCleanupService(db *gorm.DB, availability *AvailabilityService) *CleanupService {
	return &CleanupService{DB: db, Availability: availability}
}

// sweepStatuses are the booking statuses the sweep may complete once the
// checkout date has passed. Pending bookings are left for explicit handling.
var sweepStatuses = []string{
	models.BookingStatusConfirmed,
	models.BookingStatusCheckedIn,
}

// Run executes one sweep pass for the calendar day of now. A query-level
// failure aborts the pass (retried on the next tick); a per-guest metrics
// failure is logged and skipped.
func (s *CleanupService) Run(now time.Time) error {
	today := utils.DateOnly(now)

	// 1) bookings whose stay is over
	var expired []models.Booking
	if err := s.DB.
		Where("status IN ?", sweepStatuses).
		Where("check_out_date < ?", today).
		Find(&expired).Error; err != nil {
		return fmt.Errorf("sweep: failed to load expired bookings: %w", err)
	}

	if len(expired) > 0 {
		ids := make([]uint, 0, len(expired))
		for _, b := range expired {
			ids = append(ids, b.ID)
		}
		if err := s.DB.Model(&models.Booking{}).
			Where("id IN ?", ids).
			Update("status", models.BookingStatusCompleted).Error; err != nil {
			return fmt.Errorf("sweep: failed to complete bookings: %w", err)
		}
		log.Printf("sweep: completed %d past-checkout bookings", len(expired))
	}

	// tour bookings complete once the tour date has passed
	var expiredTours []models.TourBooking
	if err := s.DB.
		Where("status IN ?", sweepStatuses).
		Where("tour_date < ?", today).
		Find(&expiredTours).Error; err != nil {
		return fmt.Errorf("sweep: failed to load expired tour bookings: %w", err)
	}

	if len(expiredTours) > 0 {
		ids := make([]uint, 0, len(expiredTours))
		for _, tb := range expiredTours {
			ids = append(ids, tb.ID)
		}
		if err := s.DB.Model(&models.TourBooking{}).
			Where("id IN ?", ids).
			Update("status", models.BookingStatusCompleted).Error; err != nil {
			return fmt.Errorf("sweep: failed to complete tour bookings: %w", err)
		}
		log.Printf("sweep: completed %d past-date tour bookings", len(expiredTours))
	}

	// 2) re-derive room status: full pass over occupied rooms, robust to
	// any transition this or another writer missed
	var occupied []models.Room
	if err := s.DB.Where("status = ?", models.RoomStatusOccupied).Find(&occupied).Error; err != nil {
		return fmt.Errorf("sweep: failed to load occupied rooms: %w", err)
	}
	for _, room := range occupied {
		stillOccupied, err := s.Availability.HasActiveBookingToday(room.ID, today)
		if err != nil {
			return fmt.Errorf("sweep: room %s: %w", room.RoomNumber, err)
		}
		if !stillOccupied {
			if err := s.DB.Model(&models.Room{}).
				Where("id = ?", room.ID).
				Update("status", models.RoomStatusAvailable).Error; err != nil {
				return fmt.Errorf("sweep: failed to free room %s: %w", room.RoomNumber, err)
			}
		}
	}

	// 3) metrics for the owners of just-expired bookings, best-effort
	seen := map[uint]bool{}
	for _, b := range expired {
		seen[b.UserID] = true
	}
	for _, tb := range expiredTours {
		seen[tb.UserID] = true
	}
	for userID := range seen {
		if err := s.RecomputeGuestMetrics(userID); err != nil {
			log.Printf("sweep: metrics for guest %d failed: %v", userID, err)
		}
	}

	return nil
}

// RecomputeGuestMetrics re-derives a guest's aggregates purely from
// completed booking history. Safe to run at any time, any number of times.
func (s *CleanupService) RecomputeGuestMetrics(userID uint) error {
	var roomVisits int64
	if err := s.DB.Model(&models.Booking{}).
		Where("user_id = ? AND status = ?", userID, models.BookingStatusCompleted).
		Count(&roomVisits).Error; err != nil {
		return fmt.Errorf("failed to count room bookings: %w", err)
	}

	var tourVisits int64
	if err := s.DB.Model(&models.TourBooking{}).
		Where("user_id = ? AND status = ?", userID, models.BookingStatusCompleted).
		Count(&tourVisits).Error; err != nil {
		return fmt.Errorf("failed to count tour bookings: %w", err)
	}

	var roomRevenue float64
	if err := s.DB.Model(&models.Booking{}).
		Where("user_id = ? AND status = ?", userID, models.BookingStatusCompleted).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&roomRevenue).Error; err != nil {
		return fmt.Errorf("failed to sum room revenue: %w", err)
	}

	var tourRevenue float64
	if err := s.DB.Model(&models.TourBooking{}).
		Where("user_id = ? AND status = ?", userID, models.BookingStatusCompleted).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&tourRevenue).Error; err != nil {
		return fmt.Errorf("failed to sum tour revenue: %w", err)
	}

	visits := int(roomVisits + tourVisits)
	revenue := roomRevenue + tourRevenue

	guestType := models.GuestTypeNew
	switch {
	case revenue >= 50000:
		guestType = models.GuestTypeVIP
	case visits >= 3:
		guestType = models.GuestTypeRegular
	}

	return s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"total_visits":   visits,
			"total_revenue":  revenue,
			"guest_type":     guestType,
			"loyalty_points": int(math.Floor(revenue / 100)),
		}).Error
}
