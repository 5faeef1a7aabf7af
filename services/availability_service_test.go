package services

import (
	"testing"

	"resort-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStayRange(t *testing.T) {
	svc := NewAvailabilityService(newTestDB(t))

	t.Run("valid range", func(t *testing.T) {
		err := svc.ValidateStayRange(mustDate(t, "2025-06-01"), mustDate(t, "2025-06-05"))
		assert.NoError(t, err)
	})

	t.Run("zero-length stay rejected", func(t *testing.T) {
		err := svc.ValidateStayRange(mustDate(t, "2025-06-01"), mustDate(t, "2025-06-01"))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		err := svc.ValidateStayRange(mustDate(t, "2025-06-05"), mustDate(t, "2025-06-01"))
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestIsRoomAvailable(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)
	user := seedUser(t, db, models.RoleUser)
	rt := seedRoomType(t, db, "Standard", 1800, 2)
	room := seedRoom(t, db, rt.ID, "101")

	existing := seedBooking(t, db, user.ID, &room.ID, rt.ID,
		mustDate(t, "2025-06-01"), mustDate(t, "2025-06-05"), models.BookingStatusConfirmed)

	cases := []struct {
		name      string
		checkIn   string
		checkOut  string
		available bool
	}{
		{"identical range conflicts", "2025-06-01", "2025-06-05", false},
		{"contained range conflicts", "2025-06-02", "2025-06-04", false},
		{"overlap at start conflicts", "2025-05-30", "2025-06-02", false},
		{"overlap at end conflicts", "2025-06-04", "2025-06-07", false},
		{"surrounding range conflicts", "2025-05-30", "2025-06-10", false},
		{"disjoint before is free", "2025-05-20", "2025-05-25", true},
		{"disjoint after is free", "2025-06-10", "2025-06-12", true},
		{"same-day handoff after checkout", "2025-06-05", "2025-06-08", true},
		{"checkout on their checkin day", "2025-05-28", "2025-06-01", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.IsRoomAvailable(room.ID, mustDate(t, tc.checkIn), mustDate(t, tc.checkOut), 0)
			require.NoError(t, err)
			assert.Equal(t, tc.available, got)
		})
	}

	t.Run("excluding the conflicting booking itself", func(t *testing.T) {
		got, err := svc.IsRoomAvailable(room.ID, mustDate(t, "2025-06-02"), mustDate(t, "2025-06-04"), existing.ID)
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("cancelled bookings never conflict", func(t *testing.T) {
		require.NoError(t, db.Model(existing).Update("status", models.BookingStatusCancelled).Error)
		got, err := svc.IsRoomAvailable(room.ID, mustDate(t, "2025-06-02"), mustDate(t, "2025-06-04"), 0)
		require.NoError(t, err)
		assert.True(t, got)
	})
}

func TestAvailableRoomsForType(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)
	user := seedUser(t, db, models.RoleUser)
	rt := seedRoomType(t, db, "Deluxe", 2800, 3)
	roomA := seedRoom(t, db, rt.ID, "201")
	roomB := seedRoom(t, db, rt.ID, "202")

	seedBooking(t, db, user.ID, &roomA.ID, rt.ID,
		mustDate(t, "2025-06-01"), mustDate(t, "2025-06-05"), models.BookingStatusPending)

	free, err := svc.AvailableRoomsForType(rt.ID, mustDate(t, "2025-06-02"), mustDate(t, "2025-06-04"))
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, roomB.ID, free[0].ID)

	free, err = svc.AvailableRoomsForType(rt.ID, mustDate(t, "2025-06-05"), mustDate(t, "2025-06-08"))
	require.NoError(t, err)
	assert.Len(t, free, 2)
}

func TestHasActiveBookingToday(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)
	user := seedUser(t, db, models.RoleUser)
	rt := seedRoomType(t, db, "Suite", 4500, 5)
	room := seedRoom(t, db, rt.ID, "301")

	seedBooking(t, db, user.ID, &room.ID, rt.ID,
		mustDate(t, "2025-06-01"), mustDate(t, "2025-06-05"), models.BookingStatusCheckedIn)

	occupied, err := svc.HasActiveBookingToday(room.ID, mustDate(t, "2025-06-01"))
	require.NoError(t, err)
	assert.True(t, occupied, "check-in day counts as occupied")

	occupied, err = svc.HasActiveBookingToday(room.ID, mustDate(t, "2025-06-04"))
	require.NoError(t, err)
	assert.True(t, occupied)

	occupied, err = svc.HasActiveBookingToday(room.ID, mustDate(t, "2025-06-05"))
	require.NoError(t, err)
	assert.False(t, occupied, "checkout day does not count as occupied")
}
