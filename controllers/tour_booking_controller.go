package controllers

import (
	"net/http"

	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
)

type TourBookingController struct {
	Bookings *services.TourBookingService
	PayPal   *services.PayPalService
	PayMongo *services.PayMongoService
}

func NewTourBookingController(bookings *services.TourBookingService, paypal *services.PayPalService, paymongo *services.PayMongoService) *TourBookingController {
	return &TourBookingController{Bookings: bookings, PayPal: paypal, PayMongo: paymongo}
}

type createTourBookingPayload struct {
	TourID     uint                     `json:"tourId" binding:"required"`
	TourDate   string                   `json:"tourDate" binding:"required"`
	Pax        int                      `json:"pax" binding:"required,min=1"`
	PaxDetails []map[string]interface{} `json:"paxDetails"`
	Payment    *paymentPayload          `json:"payment"`
}

func (ctrl *TourBookingController) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var p createTourBookingPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	var payment *services.PaymentRecord
	if p.Payment != nil {
		var err error
		switch p.Payment.Provider {
		case "paypal":
			payment, err = ctrl.PayPal.VerifyOrder(p.Payment.TransactionID, p.Payment.Amount, p.Payment.Currency)
		default:
			payment, err = ctrl.PayMongo.VerifyPayment(p.Payment.TransactionID, p.Payment.Amount, p.Payment.Currency)
		}
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}

	booking, err := ctrl.Bookings.CreateTourBooking(services.CreateTourBookingInput{
		UserID:     userID,
		TourID:     p.TourID,
		TourDate:   p.TourDate,
		Pax:        p.Pax,
		PaxDetails: p.PaxDetails,
		Payment:    payment,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

func (ctrl *TourBookingController) ListMine(c *gin.Context) {
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

func (ctrl *TourBookingController) Cancel(c *gin.Context) {
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

	booking, err := ctrl.Bookings.CancelTourBooking(bookingID, userID, currentRole(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *TourBookingController) ListAll(c *gin.Context) {
	bookings, err := ctrl.Bookings.ListAll(c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}
