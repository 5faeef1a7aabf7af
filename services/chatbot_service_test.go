package services

import (
	"testing"

	"resort-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() ChatbotSnapshot {
	return ChatbotSnapshot{
		RoomTypes: []models.RoomType{
			{Name: "Standard", BasePrice: 1800, Capacity: 2},
			{Name: "Deluxe", BasePrice: 2800, Capacity: 3},
		},
		Tours: []models.Tour{
			{Name: "Island Hopping", Destination: "Hundred Islands", PricePerPax: 1500, MaxPax: 20},
		},
		Setting: models.HotelSetting{
			Name:     "Palm Cove Resort",
			CheckIn:  "2:00 PM",
			CheckOut: "12:00 PM",
			Phone:    "+63 912 555 0100",
			Email:    "hello@palmcove.ph",
		},
		AvailableToday: map[uint]int{},
	}
}

func TestRespondTopics(t *testing.T) {
	snap := testSnapshot()

	cases := []struct {
		name    string
		message string
		want    string
	}{
		{"rooms", "What rooms do you have?", "Standard"},
		{"tours", "any island tours?", "Island Hopping"},
		{"payment", "can I pay with gcash?", "PayPal"},
		{"booking procedure", "how do i book?", "reference code"},
		{"check times", "what time is check-in?", "2:00 PM"},
		{"cancellation", "i want a refund", "cancel"},
		{"contact", "what's your phone number?", "+63 912 555 0100"},
		{"greeting", "hello there", "Palm Cove Resort"},
		{"thanks", "thank you so much", "welcome"},
		{"fallback", "asdf qwerty", "not sure"},
		{"empty", "   ", "not sure"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Respond(tc.message, snap, nil)
			assert.Contains(t, got, tc.want)
		})
	}
}

func TestRespondPrecedence(t *testing.T) {
	snap := testSnapshot()

	// "room" outranks "guide" because the rooms rule comes first
	got := Respond("how much for a room with a guide", snap, nil)
	assert.Contains(t, got, "room types")

	// "tour" outranks "pay"
	got = Respond("pay for a tour", snap, nil)
	assert.Contains(t, got, "Island Hopping")

	// "my booking" is more specific than the bare greeting words
	got = Respond("hi, show my booking please", snap, nil)
	assert.Contains(t, got, "log in")
}

func TestRespondPersonalized(t *testing.T) {
	snap := testSnapshot()
	user := &UserContext{
		Name: "Ana",
		ActiveStays: []models.Booking{
			{ReferenceCode: "BK-ABC12345", CheckInDate: mustDate(t, "2025-06-01"),
				CheckOutDate: mustDate(t, "2025-06-05"), Status: models.BookingStatusConfirmed},
		},
	}

	got := Respond("my bookings", snap, user)
	assert.Contains(t, got, "Ana")
	assert.Contains(t, got, "BK-ABC12345")

	got = Respond("my reservation", snap, &UserContext{Name: "Ana"})
	assert.Contains(t, got, "no upcoming bookings")

	got = Respond("hello", snap, user)
	assert.Contains(t, got, "Hello Ana")
}

func TestChatbotReply(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatbotService(db, NewAvailabilityService(db))
	svc.Now = fixedNow(t, "2025-06-01")

	rt := seedRoomType(t, db, "Standard", 1800, 2)
	seedRoom(t, db, rt.ID, "R101")
	seedRoom(t, db, rt.ID, "R102")
	user := seedUser(t, db, models.RoleUser)
	seedBooking(t, db, user.ID, nil, rt.ID,
		mustDate(t, "2025-06-10"), mustDate(t, "2025-06-12"), models.BookingStatusConfirmed)

	t.Run("availability counts in snapshot", func(t *testing.T) {
		snap, err := svc.BuildSnapshot()
		require.NoError(t, err)
		assert.Equal(t, 2, snap.AvailableToday[rt.ID])
	})

	t.Run("anonymous", func(t *testing.T) {
		reply, err := svc.Reply("what rooms do you have", nil)
		require.NoError(t, err)
		assert.Contains(t, reply, "Standard")
	})

	t.Run("personalized", func(t *testing.T) {
		reply, err := svc.Reply("my bookings", &user.ID)
		require.NoError(t, err)
		assert.Contains(t, reply, "BK-")
	})

	t.Run("unknown user degrades to anonymous", func(t *testing.T) {
		unknown := uint(9999)
		reply, err := svc.Reply("my bookings", &unknown)
		require.NoError(t, err)
		assert.Contains(t, reply, "log in")
	})
}
