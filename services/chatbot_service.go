package services

import (
	"fmt"
	"strings"
	"time"

	"resort-backend/models"

	"gorm.io/gorm"
)

// ChatbotSnapshot is the catalog state a single Respond call sees. Building
// it is the only part of the chatbot that touches the database.
type ChatbotSnapshot struct {
	RoomTypes []models.RoomType
	Tours     []models.Tour
	Setting   models.HotelSetting

	// rooms with no active booking covering today, keyed by room type id
	AvailableToday map[uint]int
}

// UserContext carries what the personalized topics need about the caller.
// Nil means an anonymous visitor.
type UserContext struct {
	Name         string
	GuestType    string
	ActiveStays  []models.Booking
	UpcomingTour []models.TourBooking
}

// chatbotRule pairs a keyword matcher with a reply builder. Rules are
// evaluated in slice order and the first match wins, so put the more
// specific topics first.
type chatbotRule struct {
	topic    string
	keywords []string
	handler  func(snap ChatbotSnapshot, user *UserContext) string
}

func matchAny(message string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}

var chatbotRules = []chatbotRule{
	{
		topic:    "rooms",
		keywords: []string{"room", "suite", "accommodation", "stay", "rate"},
		handler:  replyRooms,
	},
	{
		topic:    "tours",
		keywords: []string{"tour", "island", "trip", "guide", "excursion"},
		handler:  replyTours,
	},
	{
		topic:    "payment",
		keywords: []string{"pay", "payment", "gcash", "paypal", "card", "price"},
		handler:  replyPayment,
	},
	{
		topic:    "booking procedure",
		keywords: []string{"how to book", "how do i book", "booking process", "reserve", "make a booking"},
		handler:  replyBookingProcedure,
	},
	{
		topic:    "check-in/out",
		keywords: []string{"check-in", "check in", "checkin", "check-out", "check out", "checkout"},
		handler:  replyCheckTimes,
	},
	{
		topic:    "cancellation",
		keywords: []string{"cancel", "refund"},
		handler:  replyCancellation,
	},
	{
		topic:    "contact",
		keywords: []string{"contact", "phone", "email", "address", "location", "where"},
		handler:  replyContact,
	},
	{
		topic:    "my bookings",
		keywords: []string{"my booking", "my reservation", "my upcoming"},
		handler:  replyMyBookings,
	},
	{
		topic:    "greeting",
		keywords: []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"},
		handler:  replyGreeting,
	},
	{
		topic:    "thanks",
		keywords: []string{"thank", "salamat"},
		handler:  replyThanks,
	},
}

// Respond classifies a message against the ordered rule list and renders the
// first matching topic's reply. Pure: same inputs, same output.
func Respond(message string, snap ChatbotSnapshot, user *UserContext) string {
	lowered := strings.ToLower(strings.TrimSpace(message))
	if lowered == "" {
		return replyFallback(snap)
	}
	for _, rule := range chatbotRules {
		if matchAny(lowered, rule.keywords) {
			return rule.handler(snap, user)
		}
	}
	return replyFallback(snap)
}

func replyRooms(snap ChatbotSnapshot, _ *UserContext) string {
	if len(snap.RoomTypes) == 0 {
		return "We don't have room information available right now. Please contact the front desk."
	}
	var b strings.Builder
	b.WriteString("Here are our room types:\n")
	for _, rt := range snap.RoomTypes {
		fmt.Fprintf(&b, "• %s (sleeps %d) from %.2f per night", rt.Name, rt.Capacity, rt.BasePrice)
		if n, ok := snap.AvailableToday[rt.ID]; ok {
			fmt.Fprintf(&b, ", %d available today", n)
		}
		b.WriteString("\n")
	}
	b.WriteString("You can check exact availability for your dates on the booking page.")
	return b.String()
}

func replyTours(snap ChatbotSnapshot, _ *UserContext) string {
	if len(snap.Tours) == 0 {
		return "We don't have any tours listed at the moment. Please check back soon."
	}
	var b strings.Builder
	b.WriteString("Our tours:\n")
	for _, t := range snap.Tours {
		fmt.Fprintf(&b, "• %s to %s, %.2f per person (max %d pax)\n",
			t.Name, t.Destination, t.PricePerPax, t.MaxPax)
	}
	b.WriteString("Book a tour through the tours page and we'll confirm your slot.")
	return b.String()
}

func replyPayment(_ ChatbotSnapshot, _ *UserContext) string {
	return "We accept PayPal and GCash (via PayMongo). Payment is verified automatically when you book, and you can settle any remaining balance at the front desk."
}

func replyBookingProcedure(_ ChatbotSnapshot, _ *UserContext) string {
	return "To book: pick a room type or tour, choose your dates, and complete payment. You'll receive a confirmation email with your reference code. The front desk assigns your exact room on arrival day."
}

func replyCheckTimes(snap ChatbotSnapshot, _ *UserContext) string {
	checkIn := snap.Setting.CheckIn
	if checkIn == "" {
		checkIn = "2:00 PM"
	}
	checkOut := snap.Setting.CheckOut
	if checkOut == "" {
		checkOut = "12:00 PM"
	}
	return fmt.Sprintf("Check-in starts at %s and check-out is by %s. Same-day handoff is fine, your room is ready once the previous guest checks out.", checkIn, checkOut)
}

func replyCancellation(_ ChatbotSnapshot, _ *UserContext) string {
	return "You can cancel a pending or confirmed booking from your bookings page. Bookings that are already checked in can't be cancelled online, please talk to the front desk."
}

func replyContact(snap ChatbotSnapshot, _ *UserContext) string {
	s := snap.Setting
	if s.Phone == "" && s.Email == "" {
		return "You can reach us through the contact form on our website."
	}
	var parts []string
	if s.Phone != "" {
		parts = append(parts, "call "+s.Phone)
	}
	if s.Email != "" {
		parts = append(parts, "email "+s.Email)
	}
	reply := "You can " + strings.Join(parts, " or ") + "."
	if s.Address != "" {
		reply += " We're located at " + s.Address + "."
	}
	return reply
}

func replyMyBookings(_ ChatbotSnapshot, user *UserContext) string {
	if user == nil {
		return "Please log in to see your bookings."
	}
	if len(user.ActiveStays) == 0 && len(user.UpcomingTour) == 0 {
		return fmt.Sprintf("Hi %s, you have no upcoming bookings right now.", user.Name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s, here's what you have coming up:\n", user.Name)
	for _, bk := range user.ActiveStays {
		fmt.Fprintf(&b, "• Stay %s: %s to %s (%s)\n", bk.ReferenceCode,
			bk.CheckInDate.Format("Jan 2"), bk.CheckOutDate.Format("Jan 2"), bk.Status)
	}
	for _, tb := range user.UpcomingTour {
		fmt.Fprintf(&b, "• Tour %s on %s (%d pax, %s)\n", tb.ReferenceCode,
			tb.TourDate.Format("Jan 2"), tb.Pax, tb.Status)
	}
	return strings.TrimRight(b.String(), "\n")
}

func replyGreeting(snap ChatbotSnapshot, user *UserContext) string {
	name := snap.Setting.Name
	if name == "" {
		name = "our resort"
	}
	if user != nil && user.Name != "" {
		return fmt.Sprintf("Hello %s! Welcome back to %s. Ask me about rooms, tours, payments, or your bookings.", user.Name, name)
	}
	return fmt.Sprintf("Hello! Welcome to %s. Ask me about rooms, tours, payments, or how to book.", name)
}

func replyThanks(_ ChatbotSnapshot, _ *UserContext) string {
	return "You're welcome! Let me know if there's anything else I can help with."
}

func replyFallback(_ ChatbotSnapshot) string {
	return "I'm not sure I understood that. I can help with rooms, tours, payments, bookings, check-in times, cancellations, and contact details."
}

// ChatbotService builds snapshots and user context from the database and
// delegates to the pure Respond function.
type ChatbotService struct {
	DB           *gorm.DB
	Availability *AvailabilityService

	Now func() time.Time
}

func NewChatbotService(db *gorm.DB, availability *AvailabilityService) *ChatbotService {
	return &ChatbotService{DB: db, Availability: availability, Now: time.Now}
}

// BuildSnapshot loads the catalog state a Respond call needs. Errors on
// optional pieces (availability counts, settings) degrade to empty values
// rather than failing the whole reply.
func (s *ChatbotService) BuildSnapshot() (ChatbotSnapshot, error) {
	snap := ChatbotSnapshot{AvailableToday: map[uint]int{}}

	if err := s.DB.Order("base_price ASC").Find(&snap.RoomTypes).Error; err != nil {
		return snap, fmt.Errorf("failed to load room types: %w", err)
	}
	if err := s.DB.Order("name ASC").Find(&snap.Tours).Error; err != nil {
		return snap, fmt.Errorf("failed to load tours: %w", err)
	}
	s.DB.First(&snap.Setting)

	today := s.Now().UTC()
	for _, rt := range snap.RoomTypes {
		rooms, err := s.Availability.AvailableRoomsForType(rt.ID, today, today.Add(24*time.Hour))
		if err != nil {
			continue
		}
		snap.AvailableToday[rt.ID] = len(rooms)
	}
	return snap, nil
}

// BuildUserContext loads the caller's active stays and upcoming tours.
func (s *ChatbotService) BuildUserContext(userID uint) (*UserContext, error) {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	name := user.FullName
	if i := strings.IndexByte(name, ' '); i > 0 {
		name = name[:i]
	}
	ctx := &UserContext{Name: name, GuestType: user.GuestType}

	if err := s.DB.Where("user_id = ? AND status IN ?", userID, models.ActiveBookingStatuses).
		Order("check_in_date ASC").Find(&ctx.ActiveStays).Error; err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	today := s.Now().UTC().Truncate(24 * time.Hour)
	if err := s.DB.Where("user_id = ? AND status IN ? AND tour_date >= ?",
		userID, models.ActiveBookingStatuses, today).
		Order("tour_date ASC").Find(&ctx.UpcomingTour).Error; err != nil {
		return nil, fmt.Errorf("failed to load tour bookings: %w", err)
	}
	return ctx, nil
}

// Reply is the service-level entry point the controller calls.
func (s *ChatbotService) Reply(message string, userID *uint) (string, error) {
	snap, err := s.BuildSnapshot()
	if err != nil {
		return "", err
	}
	var user *UserContext
	if userID != nil {
		user, err = s.BuildUserContext(*userID)
		if err != nil {
			// personalized branch degrades to anonymous
			user = nil
		}
	}
	return Respond(message, snap, user), nil
}
