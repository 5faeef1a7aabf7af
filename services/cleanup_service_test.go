package services

import (
	"testing"

	"resort-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func bookingStatus(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var b models.Booking
	require.NoError(t, db.First(&b, id).Error)
	return b.Status
}

func roomStatus(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var r models.Room
	require.NoError(t, db.First(&r, id).Error)
	return r.Status
}

func TestSweepCompletesPastBookings(t *testing.T) {
	db := newTestDB(t)
	svc := NewCleanupService(db, NewAvailabilityService(db))
	user := seedUser(t, db, models.RoleUser)
	rt := seedRoomType(t, db, "Standard", 1800, 2)
	room := seedRoom(t, db, rt.ID, "R101")

	past := seedBooking(t, db, user.ID, &room.ID, rt.ID,
		mustDate(t, "2025-05-20"), mustDate(t, "2025-05-25"), models.BookingStatusCheckedIn)
	current := seedBooking(t, db, user.ID, &room.ID, rt.ID,
		mustDate(t, "2025-05-30"), mustDate(t, "2025-06-05"), models.BookingStatusConfirmed)
	pending := seedBooking(t, db, user.ID, nil, rt.ID,
		mustDate(t, "2025-05-20"), mustDate(t, "2025-05-22"), models.BookingStatusPending)

	require.NoError(t, svc.Run(mustDate(t, "2025-06-01")))

	assert.Equal(t, models.BookingStatusCompleted, bookingStatus(t, db, past.ID))
	assert.Equal(t, models.BookingStatusConfirmed, bookingStatus(t, db, current.ID), "ongoing stay untouched")
	assert.Equal(t, models.BookingStatusPending, bookingStatus(t, db, pending.ID), "pending left for explicit handling")
}

func TestSweepFreesRooms(t *testing.T) {
	db := newTestDB(t)
	svc := NewCleanupService(db, NewAvailabilityService(db))
	user := seedUser(t, db, models.RoleUser)
	rt := seedRoomType(t, db, "Standard", 1800, 2)
	freed := seedRoom(t, db, rt.ID, "R102")
	held := seedRoom(t, db, rt.ID, "R103")

	seedBooking(t, db, user.ID, &freed.ID, rt.ID,
		mustDate(t, "2025-05-20"), mustDate(t, "2025-05-25"), models.BookingStatusCheckedIn)
	seedBooking(t, db, user.ID, &held.ID, rt.ID,
		mustDate(t, "2025-05-30"), mustDate(t, "2025-06-05"), models.BookingStatusCheckedIn)

	require.NoError(t, db.Model(&models.Room{}).
		Where("id IN ?", []uint{freed.ID, held.ID}).
		Update("status", models.RoomStatusOccupied).Error)

	require.NoError(t, svc.Run(mustDate(t, "2025-06-01")))

	assert.Equal(t, models.RoomStatusAvailable, roomStatus(t, db, freed.ID))
	assert.Equal(t, models.RoomStatusOccupied, roomStatus(t, db, held.ID))
}

func TestSweepCompletesPastTourBookings(t *testing.T) {
	db := newTestDB(t)
	svc := NewCleanupService(db, NewAvailabilityService(db))
	user := seedUser(t, db, models.RoleUser)
	tour := seedTour(t, db, "Island Hopping", 1500, 20)

	past := seedTourBooking(t, db, user.ID, tour.ID, mustDate(t, "2025-05-28"), models.BookingStatusConfirmed)
	future := seedTourBooking(t, db, user.ID, tour.ID, mustDate(t, "2025-06-10"), models.BookingStatusConfirmed)
	cancelled := seedTourBooking(t, db, user.ID, tour.ID, mustDate(t, "2025-05-28"), models.BookingStatusCancelled)

	require.NoError(t, svc.Run(mustDate(t, "2025-06-01")))

	// fresh destination struct per query: a reused one carries its primary
	// key into the next First's conditions
	var got models.TourBooking
	require.NoError(t, db.First(&got, past.ID).Error)
	assert.Equal(t, models.BookingStatusCompleted, got.Status)
	got = models.TourBooking{}
	require.NoError(t, db.First(&got, future.ID).Error)
	assert.Equal(t, models.BookingStatusConfirmed, got.Status)
	got = models.TourBooking{}
	require.NoError(t, db.First(&got, cancelled.ID).Error)
	assert.Equal(t, models.BookingStatusCancelled, got.Status)
}

func TestSweepIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewCleanupService(db, NewAvailabilityService(db))
	user := seedUser(t, db, models.RoleUser)
	rt := seedRoomType(t, db, "Standard", 1800, 2)
	room := seedRoom(t, db, rt.ID, "R104")

	booking := seedBooking(t, db, user.ID, &room.ID, rt.ID,
		mustDate(t, "2025-05-20"), mustDate(t, "2025-05-25"), models.BookingStatusConfirmed)

	day := mustDate(t, "2025-06-01")
	require.NoError(t, svc.Run(day))
	require.NoError(t, svc.Run(day))

	assert.Equal(t, models.BookingStatusCompleted, bookingStatus(t, db, booking.ID))

	var u models.User
	require.NoError(t, db.First(&u, user.ID).Error)
	assert.Equal(t, 1, u.TotalVisits)
}

func TestSweepRecomputesMetricsForTourOnlyGuest(t *testing.T) {
	db := newTestDB(t)
	svc := NewCleanupService(db, NewAvailabilityService(db))
	user := seedUser(t, db, models.RoleUser)
	tour := seedTour(t, db, "Island Hopping", 1500, 20)

	booking := seedTourBooking(t, db, user.ID, tour.ID, mustDate(t, "2025-05-28"), models.BookingStatusConfirmed)
	require.NoError(t, db.Model(booking).Update("total_price", 3000.0).Error)

	require.NoError(t, svc.Run(mustDate(t, "2025-06-01")))

	var got models.TourBooking
	require.NoError(t, db.First(&got, booking.ID).Error)
	assert.Equal(t, models.BookingStatusCompleted, got.Status)

	var u models.User
	require.NoError(t, db.First(&u, user.ID).Error)
	assert.Equal(t, 1, u.TotalVisits)
	assert.Equal(t, 3000.0, u.TotalRevenue)
	assert.Equal(t, 30, u.LoyaltyPoints)
}

func TestRecomputeGuestMetrics(t *testing.T) {
	db := newTestDB(t)
	svc := NewCleanupService(db, NewAvailabilityService(db))
	rt := seedRoomType(t, db, "Villa", 8000, 4)
	tour := seedTour(t, db, "Sunset Cruise", 2200, 30)

	setup := func(t *testing.T) *models.User { return seedUser(t, db, models.RoleUser) }

	completedStay := func(t *testing.T, userID uint, total float64) {
		b := seedBooking(t, db, userID, nil, rt.ID,
			mustDate(t, "2025-05-01"), mustDate(t, "2025-05-03"), models.BookingStatusCompleted)
		require.NoError(t, db.Model(b).Update("total_price", total).Error)
	}

	t.Run("new guest", func(t *testing.T) {
		u := setup(t)
		completedStay(t, u.ID, 3600)
		require.NoError(t, svc.RecomputeGuestMetrics(u.ID))
		require.NoError(t, db.First(u, u.ID).Error)
		assert.Equal(t, models.GuestTypeNew, u.GuestType)
		assert.Equal(t, 1, u.TotalVisits)
		assert.Equal(t, 36, u.LoyaltyPoints)
	})

	t.Run("regular at three visits", func(t *testing.T) {
		u := setup(t)
		completedStay(t, u.ID, 1800)
		completedStay(t, u.ID, 1800)
		b := seedTourBooking(t, db, u.ID, tour.ID, mustDate(t, "2025-05-10"), models.BookingStatusCompleted)
		require.NoError(t, db.Model(b).Update("total_price", 4400).Error)
		require.NoError(t, svc.RecomputeGuestMetrics(u.ID))
		require.NoError(t, db.First(u, u.ID).Error)
		assert.Equal(t, models.GuestTypeRegular, u.GuestType)
		assert.Equal(t, 3, u.TotalVisits)
		assert.Equal(t, 8000.0, u.TotalRevenue)
	})

	t.Run("vip on revenue alone", func(t *testing.T) {
		u := setup(t)
		completedStay(t, u.ID, 50000)
		require.NoError(t, svc.RecomputeGuestMetrics(u.ID))
		require.NoError(t, db.First(u, u.ID).Error)
		assert.Equal(t, models.GuestTypeVIP, u.GuestType)
		assert.Equal(t, 500, u.LoyaltyPoints)
	})

	t.Run("non-completed bookings excluded", func(t *testing.T) {
		u := setup(t)
		seedBooking(t, db, u.ID, nil, rt.ID,
			mustDate(t, "2025-06-01"), mustDate(t, "2025-06-03"), models.BookingStatusCancelled)
		require.NoError(t, svc.RecomputeGuestMetrics(u.ID))
		require.NoError(t, db.First(u, u.ID).Error)
		assert.Equal(t, models.GuestTypeNew, u.GuestType)
		assert.Zero(t, u.TotalVisits)
		assert.Zero(t, u.TotalRevenue)
	})
}
