package models

import (
	"strings"
	"time"
)

// Client represents a customer of the car wash
type Client struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	LastName string `json:"last_name"`
	Address  string `json:"address"`

	// Uniqueness only applies to filled-in values: clients imported from the
	// booking site often arrive with no email at all.
	Phone string `gorm:"size:20;uniqueIndex:idx_clients_phone,where:phone <> ''" json:"phone"`
	Email string `gorm:"size:100;uniqueIndex:idx_clients_email,where:email <> ''" json:"email"`

	// Current vehicle descriptor
	VehiclePlate      string           `gorm:"size:15" json:"vehicle_plate"`
	VehicleModel      string           `json:"vehicle_model"`
	VehicleCategoryID *uint            `json:"vehicle_category_id,omitempty"`
	VehicleCategory   *VehicleCategory `gorm:"foreignKey:VehicleCategoryID" json:"vehicle_category,omitempty"`

	// Running counters maintained by the services that finalize appointments and invoices
	TotalAppointments     int     `gorm:"default:0" json:"total_appointments"`
	CompletedAppointments int     `gorm:"default:0" json:"completed_appointments"`
	CancelledAppointments int     `gorm:"default:0" json:"cancelled_appointments"`
	NoShowAppointments    int     `gorm:"default:0" json:"no_show_appointments"`
	TotalInvoiced         float64 `gorm:"default:0" json:"total_invoiced"`

	FirstAppointmentAt *time.Time `json:"first_appointment_at,omitempty"`
	LastAppointmentAt  *time.Time `json:"last_appointment_at,omitempty"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns the client's display name
func (c *Client) FullName() string {
	return strings.TrimSpace(c.Name + " " + c.LastName)
}

// AverageTicket returns the average invoiced amount per completed appointment,
// zero when the client has no completed appointments.
func (c *Client) AverageTicket() float64 {
	if c.CompletedAppointments == 0 {
		return 0
	}
	return c.TotalInvoiced / float64(c.CompletedAppointments)
}

// CompletionRate returns the percentage of appointments that were completed,
// zero when the client has no appointments at all.
func (c *Client) CompletionRate() float64 {
	if c.TotalAppointments == 0 {
		return 0
	}
	return float64(c.CompletedAppointments) / float64(c.TotalAppointments) * 100
}

// NoShowRate returns the percentage of appointments the client missed,
// zero when the client has no appointments at all.
func (c *Client) NoShowRate() float64 {
	if c.TotalAppointments == 0 {
		return 0
	}
	return float64(c.NoShowAppointments) / float64(c.TotalAppointments) * 100
}
