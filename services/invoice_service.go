package services

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"resort-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceService derives invoices from bookings and keeps the total equal
// to the sum of line items after every item mutation.
type InvoiceService struct {
	DB *gorm.DB

	Now func() time.Time
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{DB: db, Now: time.Now}
}

func newInvoiceNumber() string {
	return "INV-" + strings.ToUpper(uuid.NewString()[:8])
}

// recomputeTotal sets invoice.total_amount = sum of its items' total_price.
// Must run inside the same transaction as the item mutation.
func recomputeTotal(tx *gorm.DB, invoiceID uint) error {
	var total float64
	if err := tx.Model(&models.InvoiceItem{}).
		Where("invoice_id = ?", invoiceID).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error; err != nil {
		return fmt.Errorf("failed to sum invoice items: %w", err)
	}
	if err := tx.Model(&models.Invoice{}).
		Where("id = ?", invoiceID).
		Update("total_amount", total).Error; err != nil {
		return fmt.Errorf("failed to update invoice total: %w", err)
	}
	return nil
}

// CreateFromBooking derives an invoice with a room-charge line item from a
// room booking. One invoice per booking.
func (s *InvoiceService) CreateFromBooking(bookingID uint) (*models.Invoice, error) {
	var invoice models.Invoice
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Preload("RoomType").First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
			}
			return fmt.Errorf("db error loading booking: %w", err)
		}

		var existing int64
		if err := tx.Model(&models.Invoice{}).Where("booking_id = ?", bookingID).Count(&existing).Error; err != nil {
			return fmt.Errorf("db error checking existing invoice: %w", err)
		}
		if existing > 0 {
			return fmt.Errorf("%w: booking %d already has an invoice", ErrConflict, bookingID)
		}

		now := s.Now().UTC()
		invoice = models.Invoice{
			InvoiceNumber: newInvoiceNumber(),
			BookingID:     &booking.ID,
			Status:        models.InvoiceStatusIssued,
			IssuedAt:      &now,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		item := models.InvoiceItem{
			InvoiceID: invoice.ID,
			Description: fmt.Sprintf("%s, %s to %s", booking.RoomType.Name,
				booking.CheckInDate.Format("2006-01-02"), booking.CheckOutDate.Format("2006-01-02")),
			Quantity:   booking.Nights,
			UnitPrice:  booking.RoomType.BasePrice,
			TotalPrice: booking.TotalPrice,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to create invoice item: %w", err)
		}

		return recomputeTotal(tx, invoice.ID)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(invoice.ID)
}

// CreateFromTourBooking is the tour analogue: one pax-charge line item.
func (s *InvoiceService) CreateFromTourBooking(tourBookingID uint) (*models.Invoice, error) {
	var invoice models.Invoice
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.TourBooking
		if err := tx.Preload("Tour").First(&booking, tourBookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: tour booking %d", ErrNotFound, tourBookingID)
			}
			return fmt.Errorf("db error loading tour booking: %w", err)
		}

		var existing int64
		if err := tx.Model(&models.Invoice{}).Where("tour_booking_id = ?", tourBookingID).Count(&existing).Error; err != nil {
			return fmt.Errorf("db error checking existing invoice: %w", err)
		}
		if existing > 0 {
			return fmt.Errorf("%w: tour booking %d already has an invoice", ErrConflict, tourBookingID)
		}

		now := s.Now().UTC()
		invoice = models.Invoice{
			InvoiceNumber: newInvoiceNumber(),
			TourBookingID: &booking.ID,
			Status:        models.InvoiceStatusIssued,
			IssuedAt:      &now,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		item := models.InvoiceItem{
			InvoiceID: invoice.ID,
			Description: fmt.Sprintf("%s on %s", booking.Tour.Name,
				booking.TourDate.Format("2006-01-02")),
			Quantity:   booking.Pax,
			UnitPrice:  booking.Tour.PricePerPax,
			TotalPrice: booking.TotalPrice,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to create invoice item: %w", err)
		}

		return recomputeTotal(tx, invoice.ID)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(invoice.ID)
}

type InvoiceItemInput struct {
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// AddItem appends a line item and recomputes the total before returning.
func (s *InvoiceService) AddItem(invoiceID uint, in InvoiceItemInput) (*models.Invoice, error) {
	if in.Quantity <= 0 {
		in.Quantity = 1
	}
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.mustBeMutable(tx, invoiceID); err != nil {
			return err
		}
		item := models.InvoiceItem{
			InvoiceID:   invoiceID,
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			TotalPrice:  float64(in.Quantity) * in.UnitPrice,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to create invoice item: %w", err)
		}
		return recomputeTotal(tx, invoiceID)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(invoiceID)
}

// UpdateItem rewrites a line item and recomputes the total.
func (s *InvoiceService) UpdateItem(invoiceID, itemID uint, in InvoiceItemInput) (*models.Invoice, error) {
	if in.Quantity <= 0 {
		in.Quantity = 1
	}
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.mustBeMutable(tx, invoiceID); err != nil {
			return err
		}
		res := tx.Model(&models.InvoiceItem{}).
			Where("id = ? AND invoice_id = ?", itemID, invoiceID).
			Updates(map[string]interface{}{
				"description": in.Description,
				"quantity":    in.Quantity,
				"unit_price":  in.UnitPrice,
				"total_price": float64(in.Quantity) * in.UnitPrice,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update invoice item: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: invoice item %d", ErrNotFound, itemID)
		}
		return recomputeTotal(tx, invoiceID)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(invoiceID)
}

// RemoveItem deletes a line item and recomputes the total.
func (s *InvoiceService) RemoveItem(invoiceID, itemID uint) (*models.Invoice, error) {
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.mustBeMutable(tx, invoiceID); err != nil {
			return err
		}
		res := tx.Where("id = ? AND invoice_id = ?", itemID, invoiceID).Delete(&models.InvoiceItem{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete invoice item: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: invoice item %d", ErrNotFound, itemID)
		}
		return recomputeTotal(tx, invoiceID)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(invoiceID)
}

func (s *InvoiceService) mustBeMutable(tx *gorm.DB, invoiceID uint) error {
	var invoice models.Invoice
	if err := tx.First(&invoice, invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: invoice %d", ErrNotFound, invoiceID)
		}
		return fmt.Errorf("db error loading invoice: %w", err)
	}
	if invoice.Status == models.InvoiceStatusPaid {
		return fmt.Errorf("%w: invoice %s is paid and cannot be edited", ErrConflict, invoice.InvoiceNumber)
	}
	return nil
}

// MarkPaid sets the invoice paid and denormalizes the payment fields onto
// the linked booking or tour booking: payment_status=paid,
// amount_paid=total, balance_due=0. One-way.
func (s *InvoiceService) MarkPaid(invoiceID uint) (*models.Invoice, error) {
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: invoice %d", ErrNotFound, invoiceID)
			}
			return fmt.Errorf("db error loading invoice: %w", err)
		}
		if invoice.Status == models.InvoiceStatusPaid {
			return fmt.Errorf("%w: invoice %s is already paid", ErrConflict, invoice.InvoiceNumber)
		}

		now := s.Now().UTC()
		if err := tx.Model(&invoice).Updates(map[string]interface{}{
			"status":  models.InvoiceStatusPaid,
			"paid_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to mark invoice paid: %w", err)
		}

		paidFields := map[string]interface{}{
			"payment_status": models.PaymentStatusPaid,
			"amount_paid":    invoice.TotalAmount,
			"balance_due":    0,
		}
		if invoice.BookingID != nil {
			if err := tx.Model(&models.Booking{}).
				Where("id = ?", *invoice.BookingID).
				Updates(paidFields).Error; err != nil {
				return fmt.Errorf("failed to update booking payment: %w", err)
			}
		}
		if invoice.TourBookingID != nil {
			if err := tx.Model(&models.TourBooking{}).
				Where("id = ?", *invoice.TourBookingID).
				Updates(paidFields).Error; err != nil {
				return fmt.Errorf("failed to update tour booking payment: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(invoiceID)
}

// GetByID loads an invoice with its items.
func (s *InvoiceService) GetByID(invoiceID uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.DB.Preload("Items").First(&invoice, invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invoice %d", ErrNotFound, invoiceID)
		}
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	return &invoice, nil
}

// List returns all invoices, newest first.
func (s *InvoiceService) List() ([]models.Invoice, error) {
	var list []models.Invoice
	if err := s.DB.Preload("Items").Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return list, nil
}

var invoiceTemplate = template.Must(template.New("invoice").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Invoice {{.InvoiceNumber}}</title></head>
<body style="font-family:Arial,Helvetica,sans-serif;color:#222;">
<div style="max-width:720px;margin:20px auto;">
<h1>Invoice {{.InvoiceNumber}}</h1>
<p>Status: {{.Status}}{{if .IssuedAt}} · Issued {{.IssuedAt.Format "2006-01-02"}}{{end}}</p>
<table width="100%" cellpadding="8" style="border-collapse:collapse;">
<tr style="border-bottom:2px solid #222;text-align:left;">
<th>Description</th><th>Qty</th><th>Unit</th><th>Amount</th>
</tr>
{{range .Items}}<tr style="border-bottom:1px solid #ddd;">
<td>{{.Description}}</td><td>{{.Quantity}}</td><td>{{printf "%.2f" .UnitPrice}}</td><td>{{printf "%.2f" .TotalPrice}}</td>
</tr>
{{end}}<tr>
<td colspan="3" style="text-align:right;"><b>Total</b></td><td><b>{{printf "%.2f" .TotalAmount}}</b></td>
</tr>
</table>
</div>
</body>
</html>`))

// RenderHTML produces the printable representation of an invoice.
func (s *InvoiceService) RenderHTML(invoiceID uint) (string, error) {
	invoice, err := s.GetByID(invoiceID)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, invoice); err != nil {
		return "", fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.String(), nil
}
