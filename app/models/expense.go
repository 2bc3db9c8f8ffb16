package models

import (
	"time"

	"gorm.io/gorm"
)

// Supplier represents a provider the business buys from
type Supplier struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	TaxID     string         `gorm:"uniqueIndex;size:20" json:"tax_id"` // CIF/NIF
	Phone     string         `json:"phone"`
	Email     string         `json:"email"`
	Address   string         `json:"address"`
	Category  string         `json:"category"` // "productos", "suministros", "seguros"...
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// ReceivedInvoice represents an invoice received from a supplier (factura recibida)
type ReceivedInvoice struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Number      string         `gorm:"not null" json:"number"`
	SupplierID  uint           `gorm:"not null;index" json:"supplier_id"`
	Supplier    *Supplier      `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	IssueDate   time.Time      `json:"issue_date"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	PaidDate    *time.Time     `json:"paid_date,omitempty"`
	TaxableBase float64        `json:"taxable_base"`
	VATRate     float64        `gorm:"default:21" json:"vat_rate"`
	VATAmount   float64        `json:"vat_amount"`
	Total       float64        `json:"total"`
	Category    string         `json:"category"`
	IsPaid      bool           `gorm:"default:false" json:"is_paid"`
	IsRecurring bool           `gorm:"default:false" json:"is_recurring"`
	Attachment  string         `json:"attachment"` // path to the scanned document
	Notes       string         `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// ComputeTotals derives the VAT amount and total from the base and rate
func (r *ReceivedInvoice) ComputeTotals() {
	r.VATAmount = r.TaxableBase * r.VATRate / 100
	r.Total = r.TaxableBase + r.VATAmount
}

// Expense represents a business expense outside supplier invoicing
type Expense struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Concept       string         `gorm:"not null" json:"concept"`
	Category      string         `json:"category"` // "agua", "luz", "alquiler", "personal"...
	Amount        float64        `json:"amount"`   // base, excl. VAT
	VATRate       float64        `gorm:"default:21" json:"vat_rate"`
	VATAmount     float64        `json:"vat_amount"`
	Total         float64        `json:"total"`
	Date          time.Time      `json:"date"`
	SupplierID    *uint          `json:"supplier_id,omitempty"`
	Supplier      *Supplier      `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	PaymentMethod string         `json:"payment_method"`
	IsPaid        bool           `gorm:"default:true" json:"is_paid"`
	IsRecurring   bool           `gorm:"default:false" json:"is_recurring"`
	Notes         string         `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// ComputeTotals derives the VAT amount and total from the base amount and rate
func (e *Expense) ComputeTotals() {
	e.VATAmount = e.Amount * e.VATRate / 100
	e.Total = e.Amount + e.VATAmount
}
