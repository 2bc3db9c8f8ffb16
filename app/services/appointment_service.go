package services

import (
	"fmt"
	"time"

	"LavaderoApp/app/models"

	"gorm.io/gorm"
)

// AppointmentService handles appointment scheduling and status changes
type AppointmentService struct {
	*BaseService
	clientSvc *ClientService
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(db *gorm.DB, clientSvc *ClientService) *AppointmentService {
	return &AppointmentService{
		BaseService: NewBaseService(db),
		clientSvc:   clientSvc,
	}
}

// CreateAppointment creates an appointment in pending state, derives its
// estimated duration and totals from the service set, and snapshots the
// client's vehicle.
func (s *AppointmentService) CreateAppointment(appointment *models.Appointment) error {
	if appointment.ClientID == 0 {
		return fmt.Errorf("appointment requires a client")
	}

	if appointment.Status == "" {
		appointment.Status = models.StatusPending
	}
	appointment.ComputeEstimatedDuration()
	appointment.ComputeTotals()

	// Snapshot the vehicle so later edits to the client don't rewrite history
	if appointment.VehiclePlate == "" || appointment.VehicleModel == "" {
		client, err := s.clientSvc.GetClient(appointment.ClientID)
		if err == nil {
			if appointment.VehiclePlate == "" {
				appointment.VehiclePlate = client.VehiclePlate
			}
			if appointment.VehicleModel == "" {
				appointment.VehicleModel = client.VehicleModel
			}
		}
	}

	if err := s.Create(appointment); err != nil {
		return fmt.Errorf("error creating appointment: %w", err)
	}
	return nil
}

// GetAppointment returns an appointment with its associations loaded
func (s *AppointmentService) GetAppointment(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.GetDB().
		Preload("Client").
		Preload("Services").
		Preload("Invoice").
		First(&appointment, id).Error
	if err != nil {
		return nil, fmt.Errorf("error fetching appointment %d: %w", id, err)
	}
	return &appointment, nil
}

// ListAppointmentsByDay returns the appointments scheduled for one day
func (s *AppointmentService) ListAppointmentsByDay(day time.Time) ([]models.Appointment, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	return s.ListAppointmentsByRange(start, end)
}

// ListAppointmentsByRange returns the appointments scheduled inside a range
func (s *AppointmentService) ListAppointmentsByRange(start, end time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.GetDB().
		Preload("Client").
		Preload("Services").
		Where("scheduled_at >= ? AND scheduled_at < ?", start, end).
		Order("scheduled_at ASC").
		Find(&appointments).Error
	return appointments, err
}

// ListAppointmentsByClient returns a client's appointment history
func (s *AppointmentService) ListAppointmentsByClient(clientID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.GetDB().
		Preload("Services").
		Where("client_id = ?", clientID).
		Order("scheduled_at DESC").
		Find(&appointments).Error
	return appointments, err
}

// UpdateStatus sets an appointment status. There is no enforced state
// machine, any status may be set at any time; transition timestamps are
// stamped as a courtesy when they make sense for the new status.
func (s *AppointmentService) UpdateStatus(id uint, status models.AppointmentStatus, reason string) error {
	appointment, err := s.GetAppointment(id)
	if err != nil {
		return err
	}

	wasFinal := appointment.IsFinal()
	now := time.Now()

	appointment.Status = status
	switch status {
	case models.StatusConfirmed:
		// nothing to stamp
	case models.StatusInProgress:
		if appointment.ArrivedAt == nil {
			appointment.ArrivedAt = &now
		}
		if appointment.StartedAt == nil {
			appointment.StartedAt = &now
		}
	case models.StatusCompleted:
		if appointment.FinishedAt == nil {
			appointment.FinishedAt = &now
		}
	case models.StatusCancelled:
		appointment.CancellationReason = reason
	}

	if err := s.Save(appointment); err != nil {
		return fmt.Errorf("error updating appointment %d: %w", id, err)
	}

	// Client counters move once, when the appointment first becomes final
	if !wasFinal && appointment.IsFinal() {
		if err := s.clientSvc.RegisterAppointmentOutcome(appointment.ClientID, status, appointment.ScheduledAt); err != nil {
			return fmt.Errorf("error updating client statistics: %w", err)
		}
	}

	return nil
}

// SetServices replaces the appointment's service set and recomputes the
// derived duration and totals.
func (s *AppointmentService) SetServices(id uint, services []models.Service) error {
	appointment, err := s.GetAppointment(id)
	if err != nil {
		return err
	}

	return s.WithTransaction(func(tx *gorm.DB) error {
		if err := tx.Model(appointment).Association("Services").Replace(services); err != nil {
			return fmt.Errorf("error replacing appointment services: %w", err)
		}
		appointment.Services = services
		appointment.ComputeEstimatedDuration()
		appointment.ComputeTotals()
		return tx.Save(appointment).Error
	})
}

// LinkInvoice attaches an issued invoice to the appointment
func (s *AppointmentService) LinkInvoice(appointmentID, invoiceID uint) error {
	result := s.GetDB().Model(&models.Appointment{}).
		Where("id = ?", appointmentID).
		Update("invoice_id", invoiceID)
	if result.Error != nil {
		return fmt.Errorf("error linking invoice to appointment %d: %w", appointmentID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("appointment %d not found", appointmentID)
	}
	return nil
}
