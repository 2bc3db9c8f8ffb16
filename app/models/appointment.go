package models

import (
	"time"

	"gorm.io/gorm"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// AllAppointmentStatuses lists every valid status value
func AllAppointmentStatuses() []AppointmentStatus {
	return []AppointmentStatus{
		StatusPending,
		StatusConfirmed,
		StatusInProgress,
		StatusCompleted,
		StatusCancelled,
		StatusNoShow,
	}
}

// ParseAppointmentStatus coerces a status string to a known status.
// Unknown or empty values fall back to pending, they never fail.
func ParseAppointmentStatus(value string) AppointmentStatus {
	for _, status := range AllAppointmentStatuses() {
		if string(status) == value {
			return status
		}
	}
	return StatusPending
}

// DisplayName returns the human-readable name for the status
func (s AppointmentStatus) DisplayName() string {
	switch s {
	case StatusPending:
		return "Pendiente"
	case StatusConfirmed:
		return "Confirmada"
	case StatusInProgress:
		return "En Curso"
	case StatusCompleted:
		return "Completada"
	case StatusCancelled:
		return "Cancelada"
	case StatusNoShow:
		return "No Presentado"
	default:
		return "Pendiente"
	}
}

// Color returns the hex color used to render the status in the UI
func (s AppointmentStatus) Color() string {
	switch s {
	case StatusPending:
		return "#FFA726"
	case StatusConfirmed:
		return "#42A5F5"
	case StatusInProgress:
		return "#AB47BC"
	case StatusCompleted:
		return "#66BB6A"
	case StatusCancelled:
		return "#EF5350"
	case StatusNoShow:
		return "#8D6E63"
	default:
		return "#FFA726"
	}
}

// DefaultServiceDuration is used when a service has no duration set (minutes)
const DefaultServiceDuration = 30

// Appointment represents a scheduled wash for a client's vehicle
type Appointment struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	ClientID           uint              `gorm:"not null;index" json:"client_id"`
	Client             *Client           `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	ScheduledAt        *time.Time        `gorm:"index" json:"scheduled_at"`
	EstimatedDuration  int               `json:"estimated_duration"` // minutes, sum of service durations
	Status             AppointmentStatus `gorm:"size:20;default:'pending';index" json:"status"`
	Services           []Service         `gorm:"many2many:appointment_services" json:"services"`
	Subtotal           float64           `json:"subtotal"`   // base imponible
	TaxAmount          float64           `json:"tax_amount"` // IVA
	Total              float64           `json:"total"`
	ArrivedAt          *time.Time        `json:"arrived_at,omitempty"`
	StartedAt          *time.Time        `json:"started_at,omitempty"`
	FinishedAt         *time.Time        `json:"finished_at,omitempty"`
	CancellationReason string            `json:"cancellation_reason"`
	InvoiceID          *uint             `json:"invoice_id,omitempty"`
	Invoice            *Invoice          `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`

	// Vehicle snapshot captured at booking time, may diverge from the client's current vehicle
	VehiclePlate  string         `json:"vehicle_plate"`
	VehicleModel  string         `json:"vehicle_model"`
	PaidInAdvance bool           `json:"paid_in_advance"`
	Notes         string         `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// ComputeTotals re-derives the appointment amounts from its service set.
// Always a full recomputation, never an incremental patch. A nil or empty
// service set yields zeros.
func (a *Appointment) ComputeTotals() {
	a.Subtotal = 0
	a.TaxAmount = 0
	a.Total = 0
	for _, svc := range a.Services {
		a.Subtotal += svc.Price
		a.Total += svc.PriceWithVAT()
	}
	a.TaxAmount = a.Total - a.Subtotal
}

// ComputeEstimatedDuration sums the durations of the appointment's services,
// counting 30 minutes for any service without a duration set.
func (a *Appointment) ComputeEstimatedDuration() {
	total := 0
	for _, svc := range a.Services {
		if svc.Duration > 0 {
			total += svc.Duration
		} else {
			total += DefaultServiceDuration
		}
	}
	a.EstimatedDuration = total
}

// IsFinal reports whether the appointment reached a terminal state
func (a *Appointment) IsFinal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled || a.Status == StatusNoShow
}
