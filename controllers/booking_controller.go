package controllers

import (
	"net/http"

	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *services.BookingService
	PayPal   *services.PayPalService
	PayMongo *services.PayMongoService
}

func NewBookingController(bookings *services.BookingService, paypal *services.PayPalService, paymongo *services.PayMongoService) *BookingController {
	return &BookingController{Bookings: bookings, PayPal: paypal, PayMongo: paymongo}
}

type paymentPayload struct {
	Provider      string  `json:"provider" binding:"required,oneof=paypal paymongo"`
	TransactionID string  `json:"transactionId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	Currency      string  `json:"currency"`
}

// verifyPayment calls the matching gateway adapter. The adapters confirm
// status and amount upstream; an unverified payment never reaches a booking.
func (ctrl *BookingController) verifyPayment(p *paymentPayload) (*services.PaymentRecord, error) {
	if p == nil {
		return nil, nil
	}
	switch p.Provider {
	case "paypal":
		return ctrl.PayPal.VerifyOrder(p.TransactionID, p.Amount, p.Currency)
	default:
		return ctrl.PayMongo.VerifyPayment(p.TransactionID, p.Amount, p.Currency)
	}
}

type createRoomBookingPayload struct {
	RoomTypeID uint            `json:"roomTypeId" binding:"required"`
	RoomID     *uint           `json:"roomId"`
	CheckIn    string          `json:"checkIn" binding:"required"`
	CheckOut   string          `json:"checkOut" binding:"required"`
	Adults     int             `json:"adults"`
	Children   int             `json:"children"`
	Payment    *paymentPayload `json:"payment"`
}

func (ctrl *BookingController) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var p createRoomBookingPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	payment, err := ctrl.verifyPayment(p.Payment)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	booking, err := ctrl.Bookings.CreateRoomBooking(services.CreateRoomBookingInput{
		UserID:     userID,
		RoomTypeID: p.RoomTypeID,
		RoomID:     p.RoomID,
		CheckIn:    p.CheckIn,
		CheckOut:   p.CheckOut,
		Adults:     p.Adults,
		Children:   p.Children,
		Payment:    payment,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

func (ctrl *BookingController) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	bookings, err := ctrl.Bookings.ListByUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (ctrl *BookingController) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	bookingID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := ctrl.Bookings.CancelBooking(bookingID, userID, currentRole(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// ListAll is the admin view, optionally filtered with ?status=.
func (ctrl *BookingController) ListAll(c *gin.Context) {
	bookings, err := ctrl.Bookings.ListAll(c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (ctrl *BookingController) Get(c *gin.Context) {
	bookingID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := ctrl.Bookings.GetByID(bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}
