package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"resort-backend/controllers"
	"resort-backend/middleware"
	"resort-backend/models"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Controllers bundles everything SetupRouter wires up.
type Controllers struct {
	Auth         *controllers.AuthController
	Bookings     *controllers.BookingController
	TourBookings *controllers.TourBookingController
	Availability *controllers.AvailabilityController
	FrontDesk    *controllers.FrontDeskController
	Invoices     *controllers.InvoiceController
	Resources    *controllers.ResourceController
	Chatbot      *controllers.ChatbotController
	Admin        *controllers.AdminController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			limited := auth.Group("", middleware.RateLimitByIP(middleware.AuthLimiter))
			{
				limited.POST("/register", ctrl.Auth.Register)
				limited.POST("/login", ctrl.Auth.Login)
				limited.POST("/google", ctrl.Auth.GoogleLogin)
				limited.POST("/verify-email", ctrl.Auth.VerifyEmail)
				limited.POST("/forgot", ctrl.Auth.ForgotPassword)
				limited.POST("/reset", ctrl.Auth.ResetPassword)
			}
			auth.GET("/me", middleware.AuthJWT(), ctrl.Auth.Me)
		}

		// public catalog
		api.GET("/room-types", controllers.GetRoomTypes)
		api.GET("/rooms", controllers.GetRooms)
		api.GET("/tours", controllers.GetTours)
		api.GET("/tours/:id", controllers.GetTour)
		api.GET("/settings", controllers.GetSettings)

		availability := api.Group("/availability")
		{
			availability.GET("/check", ctrl.Availability.Check)
			availability.GET("/room-type/:id", ctrl.Availability.ForRoomType)
		}

		api.POST("/contact",
			middleware.RateLimitByIP(middleware.ContactLimiter),
			middleware.OptionalAuth(),
			controllers.SubmitContactMessage)
		api.POST("/chatbot",
			middleware.RateLimitByIP(middleware.ContactLimiter),
			middleware.OptionalAuth(),
			ctrl.Chatbot.Chat)

		// guest bookings
		bookings := api.Group("/bookings", middleware.AuthJWT())
		{
			bookings.POST("/room", ctrl.Bookings.Create)
			bookings.GET("/room", ctrl.Bookings.ListMine)
			bookings.PATCH("/room/:id/cancel", ctrl.Bookings.Cancel)

			bookings.POST("/tour", ctrl.TourBookings.Create)
			bookings.GET("/tour", ctrl.TourBookings.ListMine)
			bookings.PATCH("/tour/:id/cancel", ctrl.TourBookings.Cancel)
		}

		frontdesk := api.Group("/frontdesk", middleware.AuthJWT(), middleware.RequireRole(models.RoleFrontDesk))
		{
			frontdesk.GET("/arrivals", ctrl.FrontDesk.Arrivals)
			frontdesk.POST("/assign-room", ctrl.FrontDesk.AssignRoom)
			frontdesk.POST("/bookings/:id/check-in", ctrl.FrontDesk.CheckIn)
		}

		admin := api.Group("/admin", middleware.AuthJWT(), middleware.RequireAdmin())
		{
			admin.GET("/bookings", ctrl.Bookings.ListAll)
			admin.GET("/bookings/:id", ctrl.Bookings.Get)
			admin.GET("/tour-bookings", ctrl.TourBookings.ListAll)

			admin.POST("/rooms", controllers.CreateRoom)
			admin.PUT("/rooms/:id", controllers.UpdateRoom)
			admin.DELETE("/rooms/:id", controllers.DeleteRoom)

			admin.POST("/room-types", controllers.CreateRoomType)
			admin.PUT("/room-types/:id", controllers.UpdateRoomType)
			admin.DELETE("/room-types/:id", controllers.DeleteRoomType)

			admin.POST("/tours", controllers.CreateTour)
			admin.PUT("/tours/:id", controllers.UpdateTour)
			admin.DELETE("/tours/:id", controllers.DeleteTour)

			admin.GET("/resources", ctrl.Resources.List)
			admin.POST("/resources", ctrl.Resources.Create)
			admin.DELETE("/resources/:id", ctrl.Resources.Delete)

			admin.POST("/tour-bookings/:id/resources", ctrl.Resources.Assign)
			admin.DELETE("/tour-bookings/:id/resources/:scheduleId", ctrl.Resources.Unassign)

			admin.GET("/invoices", ctrl.Invoices.List)
			admin.GET("/invoices/:id", ctrl.Invoices.Get)
			admin.GET("/invoices/:id/html", ctrl.Invoices.RenderHTML)
			admin.POST("/invoices/booking/:id", ctrl.Invoices.CreateFromBooking)
			admin.POST("/invoices/tour-booking/:id", ctrl.Invoices.CreateFromTourBooking)
			admin.POST("/invoices/:id/items", ctrl.Invoices.AddItem)
			admin.PUT("/invoices/:id/items/:itemId", ctrl.Invoices.UpdateItem)
			admin.DELETE("/invoices/:id/items/:itemId", ctrl.Invoices.RemoveItem)
			admin.PUT("/invoices/:id/mark-paid", ctrl.Invoices.MarkPaid)

			admin.GET("/contact-messages", controllers.ListContactMessages)
			admin.PUT("/settings", controllers.UpdateSettings)
			admin.POST("/cleanup/run", ctrl.Admin.RunCleanup)
		}
	}

	return r
}
