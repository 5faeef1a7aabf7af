package services

import (
	"fmt"
	"testing"
	"time"

	"resort-backend/models"
	"resort-backend/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.HotelSetting{},
		&models.RoomType{},
		&models.Room{},
		&models.Booking{},
		&models.Tour{},
		&models.TourBooking{},
		&models.Resource{},
		&models.ResourceSchedule{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.ContactMessage{},
		&models.VerificationCode{},
	))
	return db
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return utils.DateOnly(parsed)
}

// fixedNow pins a service clock to midnight UTC of the given day.
func fixedNow(t *testing.T, value string) func() time.Time {
	day := mustDate(t, value)
	return func() time.Time { return day }
}

var testUserSeq int

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	testUserSeq++
	user := models.User{
		FullName: fmt.Sprintf("Guest %d", testUserSeq),
		Email:    fmt.Sprintf("guest%d@example.com", testUserSeq),
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedRoomType(t *testing.T, db *gorm.DB, name string, price float64, capacity int) *models.RoomType {
	t.Helper()
	rt := models.RoomType{Name: name, BasePrice: price, Capacity: capacity}
	require.NoError(t, db.Create(&rt).Error)
	return &rt
}

func seedRoom(t *testing.T, db *gorm.DB, roomTypeID uint, number string) *models.Room {
	t.Helper()
	room := models.Room{RoomTypeID: roomTypeID, RoomNumber: number, Status: models.RoomStatusAvailable}
	require.NoError(t, db.Create(&room).Error)
	return &room
}

func seedTour(t *testing.T, db *gorm.DB, name string, price float64, maxPax int) *models.Tour {
	t.Helper()
	tour := models.Tour{Name: name, Destination: "Test Bay", PricePerPax: price, MaxPax: maxPax}
	require.NoError(t, db.Create(&tour).Error)
	return &tour
}

func seedResource(t *testing.T, db *gorm.DB, name string, quantity int) *models.Resource {
	t.Helper()
	resource := models.Resource{
		Type:              models.ResourceTypeGuide,
		Name:              name,
		Quantity:          quantity,
		AvailableQuantity: quantity,
	}
	require.NoError(t, db.Create(&resource).Error)
	return &resource
}

func seedBooking(t *testing.T, db *gorm.DB, userID uint, roomID *uint, roomTypeID uint, checkIn, checkOut time.Time, status string) *models.Booking {
	t.Helper()
	booking := models.Booking{
		UserID:        userID,
		ReferenceCode: newReferenceCode("BK"),
		RoomID:        roomID,
		RoomTypeID:    roomTypeID,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Nights:        nightsBetween(checkIn, checkOut),
		Adults:        1,
		Status:        status,
	}
	require.NoError(t, db.Create(&booking).Error)
	return &booking
}
