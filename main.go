package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"resort-backend/config"
	"resort-backend/controllers"
	"resort-backend/routes"
	"resort-backend/scheduler"
	"resort-backend/services"
)

func cleanupInterval() time.Duration {
	raw := os.Getenv("CLEANUP_INTERVAL")
	if raw == "" {
		return time.Hour
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("invalid CLEANUP_INTERVAL %q, using 1h", raw)
		return time.Hour
	}
	return d
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	db := config.DB
	log.Println("database connection established, migrations applied")

	// services
	availabilityService := services.NewAvailabilityService(db)
	bookingService := services.NewBookingService(db, availabilityService)
	resourceService := services.NewResourceService(db)
	tourBookingService := services.NewTourBookingService(db, resourceService)
	frontDeskService := services.NewFrontDeskService(db)
	cleanupService := services.NewCleanupService(db, availabilityService)
	invoiceService := services.NewInvoiceService(db)
	chatbotService := services.NewChatbotService(db, availabilityService)
	authService := services.NewAuthService(db)
	paypalService := services.NewPayPalService()
	paymongoService := services.NewPayMongoService()

	// controllers
	router := routes.SetupRouter(routes.Controllers{
		Auth:         controllers.NewAuthController(authService),
		Bookings:     controllers.NewBookingController(bookingService, paypalService, paymongoService),
		TourBookings: controllers.NewTourBookingController(tourBookingService, paypalService, paymongoService),
		Availability: controllers.NewAvailabilityController(availabilityService),
		FrontDesk:    controllers.NewFrontDeskController(frontDeskService),
		Invoices:     controllers.NewInvoiceController(invoiceService),
		Resources:    controllers.NewResourceController(resourceService),
		Chatbot:      controllers.NewChatbotController(chatbotService),
		Admin:        controllers.NewAdminController(cleanupService),
	})

	// background sweep
	sched := scheduler.New()
	sched.AddTask("booking-cleanup", cleanupInterval(), func(ctx context.Context) error {
		return cleanupService.Run(time.Now().UTC())
	})
	sched.Start()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received")

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped")
}
