package services

import (
	"fmt"
	"time"

	"LavaderoApp/app/models"

	"gorm.io/gorm"
)

// ClientService handles client records and their running statistics
type ClientService struct {
	*BaseService
}

// NewClientService creates a new client service
func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{BaseService: NewBaseService(db)}
}

// CreateClient registers a new client
func (s *ClientService) CreateClient(client *models.Client) error {
	if client.Name == "" {
		return fmt.Errorf("client name is required")
	}
	client.IsActive = true
	if err := s.Create(client); err != nil {
		return fmt.Errorf("error creating client: %w", err)
	}
	return nil
}

// UpdateClient saves changes to an existing client
func (s *ClientService) UpdateClient(client *models.Client) error {
	if client.ID == 0 {
		return fmt.Errorf("client ID is required")
	}
	if err := s.Save(client); err != nil {
		return fmt.Errorf("error updating client: %w", err)
	}
	return nil
}

// GetClient returns a client by ID
func (s *ClientService) GetClient(id uint) (*models.Client, error) {
	var client models.Client
	if err := s.GetDB().Preload("VehicleCategory").First(&client, id).Error; err != nil {
		return nil, fmt.Errorf("error fetching client %d: %w", id, err)
	}
	return &client, nil
}

// GetClientByPhone finds a client by their unique phone number
func (s *ClientService) GetClientByPhone(phone string) (*models.Client, error) {
	var client models.Client
	err := s.GetDB().Where("phone = ?", phone).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// GetClientByEmail finds a client by their unique email address
func (s *ClientService) GetClientByEmail(email string) (*models.Client, error) {
	var client models.Client
	err := s.GetDB().Where("email = ?", email).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// SearchClients finds active clients matching a free-text term
func (s *ClientService) SearchClients(term string) ([]models.Client, error) {
	var clients []models.Client
	pattern := "%" + term + "%"
	err := s.GetDB().
		Where("is_active = ?", true).
		Where("name LIKE ? OR last_name LIKE ? OR phone LIKE ? OR vehicle_plate LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("name ASC").
		Find(&clients).Error
	return clients, err
}

// ListActiveClients returns all active clients
func (s *ClientService) ListActiveClients() ([]models.Client, error) {
	var clients []models.Client
	err := s.GetDB().Where("is_active = ?", true).Order("name ASC").Find(&clients).Error
	return clients, err
}

// DeactivateClient soft-deactivates a client. Clients are never hard-deleted.
func (s *ClientService) DeactivateClient(id uint) error {
	result := s.GetDB().Model(&models.Client{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("error deactivating client %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("client %d not found", id)
	}
	return nil
}

// FindOrCreateByPhone returns the client with the given phone, creating one
// from the template when none exists. Used by the booking import.
func (s *ClientService) FindOrCreateByPhone(template models.Client) (*models.Client, error) {
	if template.Phone != "" {
		existing, err := s.GetClientByPhone(template.Phone)
		if err == nil {
			return existing, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("error looking up client by phone: %w", err)
		}
	}
	if err := s.CreateClient(&template); err != nil {
		return nil, err
	}
	return &template, nil
}

// RegisterAppointmentOutcome updates the client counters when an appointment
// reaches a terminal state. Counters are only ever moved forward here so they
// stay monotonic.
func (s *ClientService) RegisterAppointmentOutcome(clientID uint, status models.AppointmentStatus, scheduledAt *time.Time) error {
	return s.WithTransaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.First(&client, clientID).Error; err != nil {
			return fmt.Errorf("error fetching client %d: %w", clientID, err)
		}

		client.TotalAppointments++
		switch status {
		case models.StatusCompleted:
			client.CompletedAppointments++
		case models.StatusCancelled:
			client.CancelledAppointments++
		case models.StatusNoShow:
			client.NoShowAppointments++
		}

		if scheduledAt != nil {
			if client.FirstAppointmentAt == nil || scheduledAt.Before(*client.FirstAppointmentAt) {
				client.FirstAppointmentAt = scheduledAt
			}
			if client.LastAppointmentAt == nil || scheduledAt.After(*client.LastAppointmentAt) {
				client.LastAppointmentAt = scheduledAt
			}
		}

		return tx.Save(&client).Error
	})
}

// RegisterInvoicedAmount adds an invoiced total to the client's running sum
func (s *ClientService) RegisterInvoicedAmount(clientID uint, amount float64) error {
	return s.registerInvoicedAmount(s.GetDB(), clientID, amount)
}

// registerInvoicedAmount is the tx-aware increment; the invoice service calls
// it from inside its own transaction.
func (s *ClientService) registerInvoicedAmount(db *gorm.DB, clientID uint, amount float64) error {
	result := db.Model(&models.Client{}).
		Where("id = ?", clientID).
		Update("total_invoiced", gorm.Expr("total_invoiced + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("error updating invoiced total for client %d: %w", clientID, result.Error)
	}
	return nil
}
