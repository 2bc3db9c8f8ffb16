package services

import (
	"fmt"
	"time"

	"LavaderoApp/app/models"

	"gorm.io/gorm"
)

// InvoiceService handles issued invoices and their lines
type InvoiceService struct {
	*BaseService
	clientSvc      *ClientService
	appointmentSvc *AppointmentService
	defaultSeries  string
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(db *gorm.DB, clientSvc *ClientService, appointmentSvc *AppointmentService, defaultSeries string) *InvoiceService {
	return &InvoiceService{
		BaseService:    NewBaseService(db),
		clientSvc:      clientSvc,
		appointmentSvc: appointmentSvc,
		defaultSeries:  defaultSeries,
	}
}

// NextNumber returns the next invoice number for a series
func (s *InvoiceService) NextNumber(series string) (int, error) {
	return s.nextNumber(s.GetDB(), series)
}

// nextNumber resolves MAX+1 for a series on the given handle. Callers inside
// a transaction must pass their tx so the read and the insert see the same
// counter state.
func (s *InvoiceService) nextNumber(db *gorm.DB, series string) (int, error) {
	var max int
	err := db.Model(&models.Invoice{}).
		Where("series = ?", series).
		Select("COALESCE(MAX(number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("error fetching last invoice number: %w", err)
	}
	return max + 1, nil
}

// CreateInvoice numbers, stamps and persists a new invoice. Totals are
// recalculated from the lines right before the save, never trusted from
// the caller.
func (s *InvoiceService) CreateInvoice(invoice *models.Invoice) error {
	if invoice.ClientID == 0 {
		return fmt.Errorf("invoice requires a client")
	}
	if invoice.Series == "" {
		invoice.Series = s.defaultSeries
	}
	if invoice.IssueDate.IsZero() {
		invoice.IssueDate = time.Now()
	}

	return s.WithTransaction(func(tx *gorm.DB) error {
		if invoice.Number == 0 {
			number, err := s.nextNumber(tx, invoice.Series)
			if err != nil {
				return err
			}
			invoice.Number = number
		}

		invoice.RecalculateTotals()
		if err := tx.Create(invoice).Error; err != nil {
			return fmt.Errorf("error creating invoice: %w", err)
		}

		if err := s.clientSvc.registerInvoicedAmount(tx, invoice.ClientID, invoice.Total); err != nil {
			return err
		}

		if invoice.AppointmentID != nil {
			if err := tx.Model(&models.Appointment{}).
				Where("id = ?", *invoice.AppointmentID).
				Update("invoice_id", invoice.ID).Error; err != nil {
				return fmt.Errorf("error linking invoice to appointment: %w", err)
			}
		}
		return nil
	})
}

// CreateFromAppointment builds an invoice with one line per appointment
// service and persists it.
func (s *InvoiceService) CreateFromAppointment(appointmentID uint, paymentMethod string) (*models.Invoice, error) {
	appointment, err := s.appointmentSvc.GetAppointment(appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.InvoiceID != nil {
		return nil, fmt.Errorf("appointment %d already has invoice %d", appointmentID, *appointment.InvoiceID)
	}

	invoice := &models.Invoice{
		ClientID:      appointment.ClientID,
		AppointmentID: &appointment.ID,
		IssueDate:     time.Now(),
		PaymentMethod: paymentMethod,
	}

	for _, svc := range appointment.Services {
		serviceID := svc.ID
		invoice.Lines = append(invoice.Lines, models.InvoiceLine{
			ServiceID: &serviceID,
			Concept:   svc.Name,
			Quantity:  1,
			UnitPrice: svc.Price,
			VATRate:   svc.VATRate,
		})
	}
	invoice.RecalculateTotals()

	if err := s.CreateInvoice(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetInvoice returns an invoice with its lines and client loaded
func (s *InvoiceService) GetInvoice(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.GetDB().
		Preload("Client").
		Preload("Lines").
		Preload("Lines.Service").
		First(&invoice, id).Error
	if err != nil {
		return nil, fmt.Errorf("error fetching invoice %d: %w", id, err)
	}
	return &invoice, nil
}

// AddLine appends a line to an invoice, recomputes and persists the totals
func (s *InvoiceService) AddLine(invoiceID uint, line models.InvoiceLine) (*models.Invoice, error) {
	invoice, err := s.GetInvoice(invoiceID)
	if err != nil {
		return nil, err
	}

	if line.Quantity == 0 {
		line.Quantity = 1
	}
	if line.VATRate == 0 {
		line.VATRate = models.DefaultVATRate
	}
	line.InvoiceID = invoice.ID

	err = s.WithTransaction(func(tx *gorm.DB) error {
		if err := tx.Create(&line).Error; err != nil {
			return fmt.Errorf("error creating invoice line: %w", err)
		}
		invoice.Lines = append(invoice.Lines, line)
		invoice.RecalculateTotals()
		return tx.Save(invoice).Error
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// RemoveLine deletes a line from an invoice, recomputes and persists the totals
func (s *InvoiceService) RemoveLine(invoiceID, lineID uint) (*models.Invoice, error) {
	invoice, err := s.GetInvoice(invoiceID)
	if err != nil {
		return nil, err
	}

	err = s.WithTransaction(func(tx *gorm.DB) error {
		result := tx.Where("invoice_id = ?", invoiceID).Delete(&models.InvoiceLine{}, lineID)
		if result.Error != nil {
			return fmt.Errorf("error deleting invoice line: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("line %d not found on invoice %d", lineID, invoiceID)
		}

		remaining := invoice.Lines[:0]
		for _, line := range invoice.Lines {
			if line.ID != lineID {
				remaining = append(remaining, line)
			}
		}
		invoice.Lines = remaining
		invoice.RecalculateTotals()
		return tx.Save(invoice).Error
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// MarkPaid stamps the invoice as paid
func (s *InvoiceService) MarkPaid(invoiceID uint, paymentMethod string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"is_paid":   true,
		"paid_date": &now,
	}
	if paymentMethod != "" {
		updates["payment_method"] = paymentMethod
	}
	result := s.GetDB().Model(&models.Invoice{}).Where("id = ?", invoiceID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("error marking invoice %d as paid: %w", invoiceID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("invoice %d not found", invoiceID)
	}
	return nil
}

// MarkSent records that the invoice was delivered by email or WhatsApp
func (s *InvoiceService) MarkSent(invoiceID uint, byEmail, byWhatsApp bool) error {
	now := time.Now()
	updates := map[string]interface{}{"sent_at": &now}
	if byEmail {
		updates["sent_by_email"] = true
	}
	if byWhatsApp {
		updates["sent_by_whatsapp"] = true
	}
	result := s.GetDB().Model(&models.Invoice{}).Where("id = ?", invoiceID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("error marking invoice %d as sent: %w", invoiceID, result.Error)
	}
	return nil
}

// SetPDFPath stores the path of the generated PDF on the invoice
func (s *InvoiceService) SetPDFPath(invoiceID uint, path string) error {
	return s.GetDB().Model(&models.Invoice{}).
		Where("id = ?", invoiceID).
		Update("pdf_path", path).Error
}

// ListOverdueInvoices returns unpaid invoices whose due date has passed
func (s *InvoiceService) ListOverdueInvoices() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.GetDB().
		Preload("Client").
		Where("is_paid = ? AND due_date IS NOT NULL AND due_date < ?", false, time.Now()).
		Order("due_date ASC").
		Find(&invoices).Error
	return invoices, err
}

// ListInvoicesByRange returns invoices issued inside a date range
func (s *InvoiceService) ListInvoicesByRange(start, end time.Time) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.GetDB().
		Preload("Client").
		Preload("Lines").
		Where("issue_date >= ? AND issue_date < ?", start, end).
		Order("series ASC, number ASC").
		Find(&invoices).Error
	return invoices, err
}
