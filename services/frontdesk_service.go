package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"resort-backend/models"
	"resort-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FrontDeskService assigns physical rooms to bookings that were taken
// against a room type only.
type FrontDeskService struct {
	DB *gorm.DB

	Now func() time.Time
}

func NewFrontDeskService(db *gorm.DB) *FrontDeskService {
	return &FrontDeskService{DB: db, Now: time.Now}
}

// Arrivals lists bookings checking in on the given day that still need a
// room, oldest first.
func (s *FrontDeskService) Arrivals(day time.Time) ([]models.Booking, error) {
	var list []models.Booking
	err := s.DB.
		Preload("User").
		Preload("RoomType").
		Where("check_in_date = ?", utils.DateOnly(day)).
		Where("status IN ?", []string{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Order("created_at").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list arrivals: %w", err)
	}
	return list, nil
}

// AssignRoom pins a physical room to a booking after re-validating the
// room's availability for the stay. Re-assignment to a different room is
// allowed while the booking is still pending/confirmed; the old room is
// freed if nothing else covers today.
func (s *FrontDeskService) AssignRoom(bookingID, roomID uint) (*models.Booking, error) {
	var booking models.Booking
	var room models.Room

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("User").Preload("RoomType").First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
			}
			return fmt.Errorf("db error loading booking: %w", err)
		}
		switch booking.Status {
		case models.BookingStatusPending, models.BookingStatusConfirmed:
		default:
			return fmt.Errorf("%w: cannot assign a room to a %s booking", ErrConflict, booking.Status)
		}

		// FOR UPDATE so a concurrent create or assignment on this room
		// serializes with this availability re-check
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room %d", ErrNotFound, roomID)
			}
			return fmt.Errorf("db error loading room: %w", err)
		}
		if room.RoomTypeID != booking.RoomTypeID {
			return fmt.Errorf("%w: room %s is not a %s", ErrValidation, room.RoomNumber, booking.RoomType.Name)
		}

		avail := &AvailabilityService{DB: tx}
		ok, err := avail.IsRoomAvailable(roomID, booking.CheckInDate, booking.CheckOutDate, booking.ID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: room %s is already booked for those dates", ErrConflict, room.RoomNumber)
		}

		previousRoomID := booking.RoomID

		if err := tx.Model(&booking).Update("room_id", roomID).Error; err != nil {
			return fmt.Errorf("failed to assign room: %w", err)
		}
		booking.RoomID = &roomID

		today := utils.DateOnly(s.Now())
		coversToday := !booking.CheckInDate.After(today) && booking.CheckOutDate.After(today)
		if coversToday {
			if err := tx.Model(&models.Room{}).
				Where("id = ?", roomID).
				Update("status", models.RoomStatusOccupied).Error; err != nil {
				return fmt.Errorf("failed to mark room occupied: %w", err)
			}
		}

		if previousRoomID != nil && *previousRoomID != roomID {
			occupied, err := avail.HasActiveBookingToday(*previousRoomID, today)
			if err != nil {
				return err
			}
			if !occupied {
				if err := tx.Model(&models.Room{}).
					Where("id = ?", *previousRoomID).
					Update("status", models.RoomStatusAvailable).Error; err != nil {
					return fmt.Errorf("failed to free previous room: %w", err)
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if mailErr := utils.SendRoomAssignedEmail(booking.User.Email, booking.User.FullName, booking.ReferenceCode, room.RoomNumber); mailErr != nil {
		log.Printf("warning: booking %s room-assigned email failed: %v", booking.ReferenceCode, mailErr)
	}

	if err := s.DB.Preload("User").Preload("RoomType").Preload("Room").First(&booking, booking.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	return &booking, nil
}

// CheckIn marks an assigned, confirmed booking as checked in.
func (s *FrontDeskService) CheckIn(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
		}
		return nil, fmt.Errorf("db error loading booking: %w", err)
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, fmt.Errorf("%w: booking is %s, not confirmed", ErrConflict, booking.Status)
	}
	if booking.RoomID == nil {
		return nil, fmt.Errorf("%w: booking has no room assigned", ErrConflict)
	}

	now := s.Now().UTC()
	if err := s.DB.Model(&booking).Updates(map[string]interface{}{
		"status":        models.BookingStatusCheckedIn,
		"checked_in_at": now,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to check in booking: %w", err)
	}
	if err := s.DB.Model(&models.Room{}).
		Where("id = ?", *booking.RoomID).
		Update("status", models.RoomStatusOccupied).Error; err != nil {
		return nil, fmt.Errorf("failed to mark room occupied: %w", err)
	}

	if err := s.DB.Preload("User").Preload("RoomType").Preload("Room").First(&booking, booking.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	return &booking, nil
}
