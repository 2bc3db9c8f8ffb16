package services

import (
	"context"
	"fmt"
	"time"

	"LavaderoApp/app/models"
	"LavaderoApp/app/remote"
)

// BookingImportService pulls appointments from the remote online booking
// backend and persists them as local clients, services and appointments.
type BookingImportService struct {
	client         *remote.BookingClient
	clientSvc      *ClientService
	catalogSvc     *CatalogService
	appointmentSvc *AppointmentService
	logger         *LoggerService
}

// NewBookingImportService creates a new booking import service
func NewBookingImportService(client *remote.BookingClient, clientSvc *ClientService, catalogSvc *CatalogService, appointmentSvc *AppointmentService, logger *LoggerService) *BookingImportService {
	return &BookingImportService{
		client:         client,
		clientSvc:      clientSvc,
		catalogSvc:     catalogSvc,
		appointmentSvc: appointmentSvc,
		logger:         logger,
	}
}

// ImportResult summarizes one import run
type ImportResult struct {
	Fetched  int `json:"fetched"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportDay fetches the remote bookings for one day and persists them.
// Individual record failures are logged and skipped, the run itself only
// fails when the remote API is unreachable.
func (s *BookingImportService) ImportDay(ctx context.Context, day time.Time) (*ImportResult, error) {
	dtos, err := s.client.FetchBookingsByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("error fetching remote bookings: %w", err)
	}
	return s.importBookings(dtos), nil
}

// ImportAll fetches every remote booking and persists the new ones
func (s *BookingImportService) ImportAll(ctx context.Context) (*ImportResult, error) {
	dtos, err := s.client.FetchBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching remote bookings: %w", err)
	}
	return s.importBookings(dtos), nil
}

func (s *BookingImportService) importBookings(dtos []remote.BookingDTO) *ImportResult {
	result := &ImportResult{Fetched: len(dtos)}

	for _, mapped := range remote.MapBookings(dtos) {
		if err := s.persistBooking(mapped); err != nil {
			s.logger.LogWarning("Skipping remote booking", fmt.Sprintf("id=%d: %v", mapped.RemoteID, err))
			result.Skipped++
			continue
		}
		result.Imported++
	}

	result.Skipped += result.Fetched - result.Imported - result.Skipped
	s.logger.LogInfo("Booking import finished",
		fmt.Sprintf("fetched=%d imported=%d skipped=%d", result.Fetched, result.Imported, result.Skipped))
	return result
}

// persistBooking stores one mapped booking: client first, then its synthetic
// services, then the appointment referencing both.
func (s *BookingImportService) persistBooking(mapped remote.MappedBooking) error {
	client, err := s.clientSvc.FindOrCreateByPhone(mapped.Client)
	if err != nil {
		return fmt.Errorf("error resolving client: %w", err)
	}

	services := make([]models.Service, 0, len(mapped.Services))
	for _, svc := range mapped.Services {
		persisted, err := s.catalogSvc.FindOrCreateService(svc)
		if err != nil {
			return fmt.Errorf("error resolving service %q: %w", svc.Name, err)
		}
		services = append(services, *persisted)
	}

	appointment := mapped.Appointment
	appointment.ClientID = client.ID
	appointment.Services = services

	if err := s.appointmentSvc.CreateAppointment(&appointment); err != nil {
		return fmt.Errorf("error creating appointment: %w", err)
	}
	return nil
}
