package controllers

import (
	"net/http"

	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
)

type InvoiceController struct {
	Invoices *services.InvoiceService
}

func NewInvoiceController(invoices *services.InvoiceService) *InvoiceController {
	return &InvoiceController{Invoices: invoices}
}

func (ctrl *InvoiceController) CreateFromBooking(c *gin.Context) {
	bookingID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	invoice, err := ctrl.Invoices.CreateFromBooking(bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, invoice)
}

func (ctrl *InvoiceController) CreateFromTourBooking(c *gin.Context) {
	bookingID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid tour booking id")
		return
	}

	invoice, err := ctrl.Invoices.CreateFromTourBooking(bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, invoice)
}

func (ctrl *InvoiceController) List(c *gin.Context) {
	invoices, err := ctrl.Invoices.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoices)
}

func (ctrl *InvoiceController) Get(c *gin.Context) {
	invoiceID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid invoice id")
		return
	}

	invoice, err := ctrl.Invoices.GetByID(invoiceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}

// RenderHTML serves the printable invoice page.
func (ctrl *InvoiceController) RenderHTML(c *gin.Context) {
	invoiceID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid invoice id")
		return
	}

	html, err := ctrl.Invoices.RenderHTML(invoiceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (ctrl *InvoiceController) AddItem(c *gin.Context) {
	invoiceID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid invoice id")
		return
	}
	var in services.InvoiceItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	invoice, err := ctrl.Invoices.AddItem(invoiceID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}

func (ctrl *InvoiceController) UpdateItem(c *gin.Context) {
	invoiceID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid invoice id")
		return
	}
	itemID, ok := paramUint(c, "itemId")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid item id")
		return
	}
	var in services.InvoiceItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	invoice, err := ctrl.Invoices.UpdateItem(invoiceID, itemID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}

func (ctrl *InvoiceController) RemoveItem(c *gin.Context) {
	invoiceID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid invoice id")
		return
	}
	itemID, ok := paramUint(c, "itemId")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid item id")
		return
	}

	invoice, err := ctrl.Invoices.RemoveItem(invoiceID, itemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}

func (ctrl *InvoiceController) MarkPaid(c *gin.Context) {
	invoiceID, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid invoice id")
		return
	}

	invoice, err := ctrl.Invoices.MarkPaid(invoiceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}
