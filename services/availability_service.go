package services

import (
	"fmt"
	"time"

	"resort-backend/models"
	"resort-backend/utils"

	"gorm.io/gorm"
)

// AvailabilityService answers room/date-range conflict questions. The
// booking table is the single source of truth; Room.Status is never
// consulted here.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// ValidateStayRange rejects zero-length and inverted stays. Callers must
// run it before asking the checker anything.
func (s *AvailabilityService) ValidateStayRange(checkIn, checkOut time.Time) error {
	if !utils.DateOnly(checkOut).After(utils.DateOnly(checkIn)) {
		return fmt.Errorf("%w: check_out must be after check_in", ErrValidation)
	}
	return nil
}

// conflictQuery builds the half-open overlap predicate:
// existing.check_in < new.check_out AND existing.check_out > new.check_in.
// A checkout equal to another booking's check-in is NOT a conflict, so a
// same-day handoff is always allowed. Only active bookings count.
func (s *AvailabilityService) conflictQuery(roomID uint, checkIn, checkOut time.Time, excludeBookingID uint) *gorm.DB {
	q := s.DB.Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", models.ActiveBookingStatuses).
		Where("check_in_date < ? AND check_out_date > ?", utils.DateOnly(checkOut), utils.DateOnly(checkIn))
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}
	return q
}

// IsRoomAvailable reports whether the room has no active booking whose
// [check_in, check_out) interval overlaps the requested one.
// excludeBookingID lets an update re-check itself without self-conflicting.
func (s *AvailabilityService) IsRoomAvailable(roomID uint, checkIn, checkOut time.Time, excludeBookingID uint) (bool, error) {
	var count int64
	if err := s.conflictQuery(roomID, checkIn, checkOut, excludeBookingID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count conflicting bookings: %w", err)
	}
	return count == 0, nil
}

// AvailableRoomsForType returns every room of the type with zero conflicts
// in the range. Each room is evaluated independently.
func (s *AvailabilityService) AvailableRoomsForType(roomTypeID uint, checkIn, checkOut time.Time) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Where("room_type_id = ?", roomTypeID).Order("room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms for type %d: %w", roomTypeID, err)
	}

	free := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		ok, err := s.IsRoomAvailable(room.ID, checkIn, checkOut, 0)
		if err != nil {
			return nil, err
		}
		if ok {
			free = append(free, room)
		}
	}
	return free, nil
}

// HasActiveBookingToday reports whether any active booking covers the given
// day for this room. The cleanup sweep uses it to re-derive Room.Status.
func (s *AvailabilityService) HasActiveBookingToday(roomID uint, today time.Time) (bool, error) {
	day := utils.DateOnly(today)
	var count int64
	err := s.DB.Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", models.ActiveBookingStatuses).
		Where("check_in_date <= ? AND check_out_date > ?", day, day).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check occupancy for room %d: %w", roomID, err)
	}
	return count > 0, nil
}
