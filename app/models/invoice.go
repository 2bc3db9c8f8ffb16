package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Invoice represents an issued invoice (factura emitida)
type Invoice struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Number        int           `gorm:"not null;uniqueIndex:idx_invoice_series_number" json:"number"`
	Series        string        `gorm:"size:10;not null;uniqueIndex:idx_invoice_series_number" json:"series"`
	ClientID      uint          `gorm:"not null;index" json:"client_id"`
	Client        *Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	AppointmentID *uint         `json:"appointment_id,omitempty"`
	IssueDate     time.Time     `json:"issue_date"`
	DueDate       *time.Time    `json:"due_date,omitempty"`
	PaidDate      *time.Time    `json:"paid_date,omitempty"`
	Lines         []InvoiceLine `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"lines"`

	// Totals are always re-derived from the lines, never patched incrementally
	TaxableBase float64 `json:"taxable_base"` // base imponible
	TotalVAT    float64 `json:"total_vat"`    // IVA
	Total       float64 `json:"total"`

	PaymentMethod  string         `json:"payment_method"` // "efectivo", "tarjeta", "bizum", "transferencia"
	IsPaid         bool           `gorm:"default:false" json:"is_paid"`
	SentByEmail    bool           `gorm:"default:false" json:"sent_by_email"`
	SentByWhatsApp bool           `gorm:"default:false" json:"sent_by_whatsapp"`
	SentAt         *time.Time     `json:"sent_at,omitempty"`
	PDFPath        string         `json:"pdf_path"`
	Notes          string         `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// FullNumber returns the printable invoice identifier, e.g. "F-2025-00042"
func (i *Invoice) FullNumber() string {
	return fmt.Sprintf("%s-%05d", i.Series, i.Number)
}

// RecalculateTotals re-derives the invoice totals from its lines. Base and VAT
// are summed independently so line rounding never compounds into the total.
// Nil or empty line sets yield zeros.
func (i *Invoice) RecalculateTotals() {
	i.TaxableBase = 0
	i.TotalVAT = 0
	for _, line := range i.Lines {
		i.TaxableBase += line.TaxableBase()
		i.TotalVAT += line.VATAmount()
	}
	i.Total = i.TaxableBase + i.TotalVAT
}

// AddLine appends a line and recomputes the totals
func (i *Invoice) AddLine(line InvoiceLine) {
	i.Lines = append(i.Lines, line)
	i.RecalculateTotals()
}

// RemoveLine removes the line at the given index and recomputes the totals.
// Out-of-range indexes are ignored.
func (i *Invoice) RemoveLine(index int) {
	if index < 0 || index >= len(i.Lines) {
		return
	}
	i.Lines = append(i.Lines[:index], i.Lines[index+1:]...)
	i.RecalculateTotals()
}

// IsOverdue reports whether the invoice is unpaid past its due date.
// IsOverdue and IsPendingPayment are intentionally kept as aliases.
func (i *Invoice) IsOverdue() bool {
	return !i.IsPaid && i.DueDate != nil && i.DueDate.Before(time.Now())
}

// IsPendingPayment reports whether the invoice is unpaid past its due date
func (i *Invoice) IsPendingPayment() bool {
	return !i.IsPaid && i.DueDate != nil && i.DueDate.Before(time.Now())
}

// InvoiceLine is a single concept billed on an invoice
type InvoiceLine struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	InvoiceID   uint      `gorm:"not null;index" json:"invoice_id"`
	ServiceID   *uint     `json:"service_id,omitempty"`
	Service     *Service  `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Concept     string    `gorm:"not null" json:"concept"`
	Quantity    float64   `gorm:"default:1" json:"quantity"`
	UnitPrice   float64   `json:"unit_price"` // excl. VAT
	VATRate     float64   `gorm:"default:21" json:"vat_rate"`
	DiscountPct float64   `gorm:"default:0" json:"discount_pct"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaxableBase returns the line base after discount, excl. VAT.
// No rounding is applied at the line level.
func (l *InvoiceLine) TaxableBase() float64 {
	return l.UnitPrice * l.Quantity * (1 - l.DiscountPct/100)
}

// VATAmount returns the VAT charged on the line
func (l *InvoiceLine) VATAmount() float64 {
	return l.TaxableBase() * l.VATRate / 100
}

// Total returns the line total incl. VAT
func (l *InvoiceLine) Total() float64 {
	return l.TaxableBase() + l.VATAmount()
}
