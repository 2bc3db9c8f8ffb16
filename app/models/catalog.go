package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultVATRate is the VAT percentage applied when none is specified
const DefaultVATRate = 21.0

// Service represents a catalog item offered by the car wash
type Service struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	// Price is the base price excl. VAT; VATRate is the IVA percentage and
	// Duration the estimated minutes of work
	Price     float64        `json:"price"`
	VATRate   float64        `gorm:"default:21" json:"vat_rate"`
	Duration  int            `gorm:"default:30" json:"duration"`
	Category  string         `json:"category"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// PriceWithVAT returns the VAT-inclusive price of the service
func (s *Service) PriceWithVAT() float64 {
	return s.Price * (1 + s.VATRate/100)
}

// VehicleCategory groups vehicles for pricing and reporting (turismo, furgoneta, moto...)
type VehicleCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VehicleModel is a known vehicle model linked to a category
type VehicleModel struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	Name       string           `gorm:"not null" json:"name"`
	Brand      string           `json:"brand"`
	CategoryID uint             `json:"category_id"`
	Category   *VehicleCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}
