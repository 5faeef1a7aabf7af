package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"resort-backend/models"
	"resort-backend/utils"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "resort_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}
	DB = db

	// parent tables before children
	if err := DB.AutoMigrate(
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
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase fills an empty database with a usable catalog and the default
// staff accounts. Every block is idempotent.
func SeedDatabase() {
	var adminCount int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)
	if adminCount == 0 {
		hash, err := utils.HashPassword(envOrDefault("ADMIN_PASSWORD", "admin12345"))
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.User{
				FullName:      "Resort Admin",
				Email:         envOrDefault("ADMIN_EMAIL", "admin@resort.local"),
				Password:      &hash,
				Role:          models.RoleAdmin,
				EmailVerified: true,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("default admin seeded")
			}
		}
	}

	var frontDeskCount int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleFrontDesk).Count(&frontDeskCount)
	if frontDeskCount == 0 {
		hash, err := utils.HashPassword(envOrDefault("FRONTDESK_PASSWORD", "frontdesk123"))
		if err == nil {
			staff := models.User{
				FullName:      "Front Desk",
				Email:         "frontdesk@resort.local",
				Password:      &hash,
				Role:          models.RoleFrontDesk,
				EmailVerified: true,
			}
			if err := DB.Create(&staff).Error; err != nil {
				log.Printf("warning: failed to create front desk account: %v", err)
			}
		}
	}

	var rtCount int64
	DB.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{Name: "Standard", Description: "Standard room with garden view", BasePrice: 1800, Capacity: 2},
			{Name: "Deluxe", Description: "Deluxe room with balcony", BasePrice: 2800, Capacity: 3},
			{Name: "Family Suite", Description: "Two-bedroom suite", BasePrice: 4500, Capacity: 5},
			{Name: "Beachfront Villa", Description: "Private villa by the shore", BasePrice: 8000, Capacity: 4},
		}
		if err := DB.Create(&roomTypes).Error; err != nil {
			log.Printf("warning: failed to seed room types: %v", err)
		} else {
			log.Println("room types seeded")

			var rooms []models.Room
			for i, rt := range roomTypes {
				for n := 1; n <= 4; n++ {
					rooms = append(rooms, models.Room{
						RoomTypeID: rt.ID,
						RoomNumber: fmt.Sprintf("%d%02d", i+1, n),
						Floor:      fmt.Sprintf("%d", i+1),
						Status:     models.RoomStatusAvailable,
					})
				}
			}
			if err := DB.Create(&rooms).Error; err != nil {
				log.Printf("warning: failed to seed rooms: %v", err)
			}
		}
	}

	var tourCount int64
	DB.Model(&models.Tour{}).Count(&tourCount)
	if tourCount == 0 {
		tours := []models.Tour{
			{Name: "Island Hopping", Destination: "Hundred Islands", Description: "Full-day boat tour across the islands", PricePerPax: 1500, MaxPax: 20, DurationHrs: 8},
			{Name: "Snorkeling Trip", Destination: "Coral Garden", Description: "Half-day guided snorkeling", PricePerPax: 900, MaxPax: 12, DurationHrs: 4},
			{Name: "Sunset Cruise", Destination: "West Bay", Description: "Evening cruise with dinner", PricePerPax: 2200, MaxPax: 30, DurationHrs: 3},
		}
		if err := DB.Create(&tours).Error; err != nil {
			log.Printf("warning: failed to seed tours: %v", err)
		} else {
			log.Println("tours seeded")
		}
	}

	var resourceCount int64
	DB.Model(&models.Resource{}).Count(&resourceCount)
	if resourceCount == 0 {
		resources := []models.Resource{
			{Type: models.ResourceTypeGuide, Name: "Tour Guide", Quantity: 5, AvailableQuantity: 5},
			{Type: models.ResourceTypeBoat, Name: "Outrigger Boat", Quantity: 3, AvailableQuantity: 3},
			{Type: models.ResourceTypeVehicle, Name: "Shuttle Van", Quantity: 2, AvailableQuantity: 2},
			{Type: models.ResourceTypeEquipment, Name: "Snorkel Set", Quantity: 15, AvailableQuantity: 15},
		}
		if err := DB.Create(&resources).Error; err != nil {
			log.Printf("warning: failed to seed resources: %v", err)
		}
	}

	var settingCount int64
	DB.Model(&models.HotelSetting{}).Count(&settingCount)
	if settingCount == 0 {
		setting := models.HotelSetting{
			Name:     envOrDefault("RESORT_NAME", "Palm Cove Resort"),
			Address:  "Barangay San Roque, Palawan",
			Phone:    "+63 917 000 0000",
			Email:    "hello@palmcove.local",
			CheckIn:  "2:00 PM",
			CheckOut: "12:00 PM",
		}
		if err := DB.Create(&setting).Error; err != nil {
			log.Printf("warning: failed to seed settings: %v", err)
		}
	}
}
