package services

import (
	"testing"
	"time"

	"resort-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTourBookingService(t *testing.T, db *gorm.DB) *TourBookingService {
	svc := NewTourBookingService(db, NewResourceService(db))
	svc.Now = fixedNow(t, "2025-05-01")
	return svc
}

func TestCreateTourBooking(t *testing.T) {
	db := newTestDB(t)
	svc := newTourBookingService(t, db)
	user := seedUser(t, db, models.RoleUser)
	tour := seedTour(t, db, "Island Hopping", 1500, 20)

	booking, err := svc.CreateTourBooking(CreateTourBookingInput{
		UserID:   user.ID,
		TourID:   tour.ID,
		TourDate: "2025-06-10",
		Pax:      4,
		PaxDetails: []map[string]interface{}{
			{"name": "Ana Reyes", "age": 34},
			{"name": "Luis Reyes", "age": 36},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, 4*1500.0, booking.TotalPrice)
	assert.NotEmpty(t, booking.PaxDetails)
	assert.Contains(t, booking.ReferenceCode, "TR-")
}

func TestCreateTourBookingValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newTourBookingService(t, db)
	user := seedUser(t, db, models.RoleUser)
	tour := seedTour(t, db, "Snorkeling Trip", 900, 12)

	t.Run("past date", func(t *testing.T) {
		_, err := svc.CreateTourBooking(CreateTourBookingInput{
			UserID: user.ID, TourID: tour.ID, TourDate: "2025-04-30", Pax: 2,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("same-day tour is allowed", func(t *testing.T) {
		_, err := svc.CreateTourBooking(CreateTourBookingInput{
			UserID: user.ID, TourID: tour.ID, TourDate: "2025-05-01", Pax: 2,
		})
		assert.NoError(t, err)
	})

	t.Run("zero pax", func(t *testing.T) {
		_, err := svc.CreateTourBooking(CreateTourBookingInput{
			UserID: user.ID, TourID: tour.ID, TourDate: "2025-06-10", Pax: 0,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("pax over tour limit", func(t *testing.T) {
		_, err := svc.CreateTourBooking(CreateTourBookingInput{
			UserID: user.ID, TourID: tour.ID, TourDate: "2025-06-10", Pax: 13,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown tour", func(t *testing.T) {
		_, err := svc.CreateTourBooking(CreateTourBookingInput{
			UserID: user.ID, TourID: 9999, TourDate: "2025-06-10", Pax: 2,
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCancelTourBookingReleasesResources(t *testing.T) {
	db := newTestDB(t)
	svc := newTourBookingService(t, db)
	user := seedUser(t, db, models.RoleUser)
	tour := seedTour(t, db, "Island Hopping", 1500, 20)
	guide := seedResource(t, db, "Guide", 2)
	boat := seedResource(t, db, "Boat", 1)

	booking, err := svc.CreateTourBooking(CreateTourBookingInput{
		UserID: user.ID, TourID: tour.ID, TourDate: "2025-06-10", Pax: 4,
	})
	require.NoError(t, err)

	day := mustDate(t, "2025-06-10")
	_, err = svc.Resources.Assign(booking.ID, guide.ID, day, day.Add(8*time.Hour))
	require.NoError(t, err)
	_, err = svc.Resources.Assign(booking.ID, boat.ID, day, day.Add(8*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, resourceCount(t, db, guide.ID))
	assert.Equal(t, 0, resourceCount(t, db, boat.ID))

	cancelled, err := svc.CancelTourBooking(booking.ID, user.ID, models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)

	assert.Equal(t, 2, resourceCount(t, db, guide.ID))
	assert.Equal(t, 1, resourceCount(t, db, boat.ID))

	var schedules int64
	require.NoError(t, db.Model(&models.ResourceSchedule{}).
		Where("tour_booking_id = ?", booking.ID).Count(&schedules).Error)
	assert.Zero(t, schedules)
}

func TestCancelTourBookingOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newTourBookingService(t, db)
	owner := seedUser(t, db, models.RoleUser)
	stranger := seedUser(t, db, models.RoleUser)
	tour := seedTour(t, db, "Sunset Cruise", 2200, 30)
	booking := seedTourBooking(t, db, owner.ID, tour.ID, mustDate(t, "2025-06-15"), models.BookingStatusConfirmed)

	_, err := svc.CancelTourBooking(booking.ID, stranger.ID, models.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CancelTourBooking(booking.ID, owner.ID, models.RoleUser)
	require.NoError(t, err)

	_, err = svc.CancelTourBooking(booking.ID, owner.ID, models.RoleUser)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateTourBookingWithPayment(t *testing.T) {
	db := newTestDB(t)
	svc := newTourBookingService(t, db)
	user := seedUser(t, db, models.RoleUser)
	tour := seedTour(t, db, "Island Hopping", 1500, 20)

	booking, err := svc.CreateTourBooking(CreateTourBookingInput{
		UserID: user.ID, TourID: tour.ID, TourDate: "2025-06-10", Pax: 2,
		Payment: &PaymentRecord{
			Provider: "paymongo", TransactionID: "PAY-7",
			Amount: 3000, Currency: "PHP", Verified: true,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, models.PaymentStatusPaid, booking.PaymentStatus)
	assert.Equal(t, 0.0, booking.BalanceDue)
}
