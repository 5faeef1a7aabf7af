package services

import (
	"testing"

	"resort-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFrontDeskService(t *testing.T, db *gorm.DB) *FrontDeskService {
	svc := NewFrontDeskService(db)
	svc.Now = fixedNow(t, "2025-06-01")
	return svc
}

func TestArrivals(t *testing.T) {
	db := newTestDB(t)
	svc := newFrontDeskService(t, db)
	user := seedUser(t, db, models.RoleUser)
	rt := seedRoomType(t, db, "Standard", 1800, 2)

	arriving := seedBooking(t, db, user.ID, nil, rt.ID,
		mustDate(t, "2025-06-01"), mustDate(t, "2025-06-05"), models.BookingStatusConfirmed)
	seedBooking(t, db, user.ID, nil, rt.ID,
		mustDate(t, "2025-06-02"), mustDate(t, "2025-06-05"), models.BookingStatusConfirmed)
	seedBooking(t, db, user.ID, nil, rt.ID,
		mustDate(t, "2025-06-01"), mustDate(t, "2025-06-03"), models.BookingStatusCancelled)

	list, err := svc.Arrivals(mustDate(t, "2025-06-01"))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, arriving.ID, list[0].ID)
}

func TestAssignRoom(t *testing.T) {
	db := newTestDB(t)
	svc := newFrontDeskService(t, db)
	user := seedUser(t, db, models.RoleUser)
	rt := seedRoomType(t, db, "Standard", 1800, 2)
	other := seedRoomType(t, db, "Deluxe", 2800, 3)
	roomA := seedRoom(t, db, rt.ID, "R101")
	roomB := seedRoom(t, db, rt.ID, "R102")
	deluxe := seedRoom(t, db, other.ID, "D201")

	booking := seedBooking(t, db, user.ID, nil, rt.ID,
		mustDate(t, "2025-06-01"), mustDate(t, "2025-06-05"), models.BookingStatusConfirmed)

	t.Run("type mismatch", func(t *testing.T) {
		_, err := svc.AssignRoom(booking.ID, deluxe.ID)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("conflicting room", func(t *testing.T) {
		seedBooking(t, db, user.ID, &roomA.ID, rt.ID,
			mustDate(t, "2025-06-03"), mustDate(t, "2025-06-07"), models.BookingStatusConfirmed)
		_, err := svc.AssignRoom(booking.ID, roomA.ID)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("assign and mark occupied", func(t *testing.T) {
		got, err := svc.AssignRoom(booking.ID, roomB.ID)
		require.NoError(t, err)
		require.NotNil(t, got.RoomID)
		assert.Equal(t, roomB.ID, *got.RoomID)
		assert.Equal(t, models.RoomStatusOccupied, roomStatus(t, db, roomB.ID), "stay covers today")
	})
}

func TestAssignRoomFreesPreviousRoom(t *testing.T) {
	db := newTestDB(t)
	svc := newFrontDeskService(t, db)
	user := seedUser(t, db, models.RoleUser)
	rt := seedRoomType(t, db, "Standard", 1800, 2)
	roomA := seedRoom(t, db, rt.ID, "R103")
	roomB := seedRoom(t, db, rt.ID, "R104")

	booking := seedBooking(t, db, user.ID, nil, rt.ID,
		mustDate(t, "2025-06-01"), mustDate(t, "2025-06-05"), models.BookingStatusConfirmed)

	_, err := svc.AssignRoom(booking.ID, roomA.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusOccupied, roomStatus(t, db, roomA.ID))

	got, err := svc.AssignRoom(booking.ID, roomB.ID)
	require.NoError(t, err)
	assert.Equal(t, roomB.ID, *got.RoomID)
	assert.Equal(t, models.RoomStatusAvailable, roomStatus(t, db, roomA.ID))
	assert.Equal(t, models.RoomStatusOccupied, roomStatus(t, db, roomB.ID))
}

func TestAssignRoomRejectsFinishedBooking(t *testing.T) {
	db := newTestDB(t)
	svc := newFrontDeskService(t, db)
	user := seedUser(t, db, models.RoleUser)
	rt := seedRoomType(t, db, "Standard", 1800, 2)
	room := seedRoom(t, db, rt.ID, "R105")

	done := seedBooking(t, db, user.ID, nil, rt.ID,
		mustDate(t, "2025-05-20"), mustDate(t, "2025-05-25"), models.BookingStatusCompleted)

	_, err := svc.AssignRoom(done.ID, room.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCheckIn(t *testing.T) {
	db := newTestDB(t)
	svc := newFrontDeskService(t, db)
	user := seedUser(t, db, models.RoleUser)
	rt := seedRoomType(t, db, "Standard", 1800, 2)
	room := seedRoom(t, db, rt.ID, "R106")

	t.Run("needs an assigned room", func(t *testing.T) {
		unassigned := seedBooking(t, db, user.ID, nil, rt.ID,
			mustDate(t, "2025-06-01"), mustDate(t, "2025-06-05"), models.BookingStatusConfirmed)
		_, err := svc.CheckIn(unassigned.ID)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("needs confirmed status", func(t *testing.T) {
		pending := seedBooking(t, db, user.ID, &room.ID, rt.ID,
			mustDate(t, "2025-07-01"), mustDate(t, "2025-07-05"), models.BookingStatusPending)
		_, err := svc.CheckIn(pending.ID)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("checks in", func(t *testing.T) {
		booking := seedBooking(t, db, user.ID, &room.ID, rt.ID,
			mustDate(t, "2025-06-01"), mustDate(t, "2025-06-05"), models.BookingStatusConfirmed)
		got, err := svc.CheckIn(booking.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCheckedIn, got.Status)
		assert.NotNil(t, got.CheckedInAt)
		assert.Equal(t, models.RoomStatusOccupied, roomStatus(t, db, room.ID))
	})
}
