package services

import (
	"errors"
	"fmt"
	"time"

	"resort-backend/models"

	"gorm.io/gorm"
)

// ResourceService allocates finite-capacity assets (guides, vehicles,
// boats, equipment) to tour bookings. available_quantity only ever moves
// through conditional UPDATEs, so concurrent assigns cannot drive it below
// zero and concurrent unassigns cannot push it past quantity.
type ResourceService struct {
	DB *gorm.DB
}

func NewResourceService(db *gorm.DB) *ResourceService {
	return &ResourceService{DB: db}
}

// Assign reserves one unit of the resource for the tour booking. A second
// schedule linking the same resource to the same booking is a Conflict; an
// exhausted resource is OutOfStock. Decrement and insert happen in one
// transaction, so no partial state is observable.
func (s *ResourceService) Assign(tourBookingID, resourceID uint, start, end time.Time) (*models.ResourceSchedule, error) {
	var schedule models.ResourceSchedule

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.TourBooking
		if err := tx.First(&booking, tourBookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: tour booking %d", ErrNotFound, tourBookingID)
			}
			return fmt.Errorf("db error loading tour booking: %w", err)
		}
		if booking.Status == models.BookingStatusCancelled {
			return fmt.Errorf("%w: tour booking %d is cancelled", ErrConflict, tourBookingID)
		}

		var resource models.Resource
		if err := tx.First(&resource, resourceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: resource %d", ErrNotFound, resourceID)
			}
			return fmt.Errorf("db error loading resource: %w", err)
		}

		var existing int64
		if err := tx.Model(&models.ResourceSchedule{}).
			Where("resource_id = ? AND tour_booking_id = ?", resourceID, tourBookingID).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("db error checking existing schedule: %w", err)
		}
		if existing > 0 {
			return fmt.Errorf("%w: resource %s already assigned to this booking", ErrConflict, resource.Name)
		}

		// atomic conditional decrement; zero rows affected means exhausted
		res := tx.Model(&models.Resource{}).
			Where("id = ? AND available_quantity > 0", resourceID).
			UpdateColumn("available_quantity", gorm.Expr("available_quantity - 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to decrement resource %d: %w", resourceID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: resource %s has no units left", ErrOutOfStock, resource.Name)
		}

		schedule = models.ResourceSchedule{
			ResourceID:    resourceID,
			TourBookingID: tourBookingID,
			StartTime:     start,
			EndTime:       end,
		}
		if err := tx.Create(&schedule).Error; err != nil {
			return fmt.Errorf("failed to create resource schedule: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.DB.Preload("Resource").First(&schedule, schedule.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload schedule: %w", err)
	}
	return &schedule, nil
}

// Unassign is the exact inverse of Assign: delete the schedule row and give
// the unit back, capped at quantity so a double release cannot overshoot.
// The schedule must belong to the given tour booking.
func (s *ResourceService) Unassign(tourBookingID, scheduleID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var schedule models.ResourceSchedule
		if err := tx.First(&schedule, scheduleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: schedule %d", ErrNotFound, scheduleID)
			}
			return fmt.Errorf("db error loading schedule: %w", err)
		}
		if schedule.TourBookingID != tourBookingID {
			return fmt.Errorf("%w: schedule %d does not belong to tour booking %d", ErrNotFound, scheduleID, tourBookingID)
		}
		return s.unassignTx(tx, scheduleID)
	})
}

func (s *ResourceService) unassignTx(tx *gorm.DB, scheduleID uint) error {
	var schedule models.ResourceSchedule
	if err := tx.First(&schedule, scheduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: schedule %d", ErrNotFound, scheduleID)
		}
		return fmt.Errorf("db error loading schedule: %w", err)
	}

	if err := tx.Delete(&models.ResourceSchedule{}, scheduleID).Error; err != nil {
		return fmt.Errorf("failed to delete schedule %d: %w", scheduleID, err)
	}

	res := tx.Model(&models.Resource{}).
		Where("id = ? AND available_quantity < quantity", schedule.ResourceID).
		UpdateColumn("available_quantity", gorm.Expr("available_quantity + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to restore resource %d: %w", schedule.ResourceID, res.Error)
	}
	if res.RowsAffected == 0 {
		// counter already at quantity; drifted state, log-worthy but not fatal
		return nil
	}
	return nil
}

// List returns all resources, optionally filtered by type.
func (s *ResourceService) List(resourceType string) ([]models.Resource, error) {
	q := s.DB.Order("type, name")
	if resourceType != "" {
		q = q.Where("type = ?", resourceType)
	}
	var list []models.Resource
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return list, nil
}
