package remote

import (
	"fmt"
	"log"
	"strings"
	"time"

	"LavaderoApp/app/models"
)

const (
	bookingDateLayout = "02/01/2006"
	bookingTimeLayout = "15:04:05"

	// The booking site always quotes 21% VAT-inclusive prices. If the VAT
	// rate ever changes this divisor has to change with it.
	bookingVATDivisor = 1.21
)

// MappedBooking is the internal shape a remote booking translates into:
// an appointment plus the client data and synthetic services it references.
type MappedBooking struct {
	RemoteID    int64
	Appointment models.Appointment
	Client      models.Client
	Services    []models.Service
}

// MapBooking translates one remote booking into the internal shape.
// The mapping is best-effort: an unparseable date/time yields a nil
// ScheduledAt and the rest of the record is still mapped.
func MapBooking(dto BookingDTO) MappedBooking {
	scheduledAt := parseBookingTimestamp(dto.Fecha, dto.Hora)

	firstName, lastName := splitFullName(dto.Nombre)
	client := models.Client{
		Name:         firstName,
		LastName:     lastName,
		Phone:        dto.Telefono,
		Email:        dto.Email,
		VehicleModel: dto.ModeloVehiculo,
		IsActive:     true,
	}

	services := washTypeServices(dto.TipoLavado)

	appointment := models.Appointment{
		ScheduledAt:   scheduledAt,
		Status:        models.ParseAppointmentStatus(dto.Estado),
		Services:      services,
		VehicleModel:  dto.ModeloVehiculo,
		PaidInAdvance: dto.PagoAdelantado,
		Notes:         dto.Observaciones,
	}
	appointment.ComputeTotals()
	appointment.ComputeEstimatedDuration()

	return MappedBooking{
		RemoteID:    dto.ID,
		Appointment: appointment,
		Client:      client,
		Services:    services,
	}
}

// MapBookings translates a batch of remote bookings. A record that panics
// during mapping is logged and dropped; the batch itself never fails.
func MapBookings(dtos []BookingDTO) []MappedBooking {
	results := make([]MappedBooking, 0, len(dtos))
	for _, dto := range dtos {
		mapped, err := mapBookingSafe(dto)
		if err != nil {
			log.Printf("Warning: skipping remote booking %d: %v", dto.ID, err)
			continue
		}
		results = append(results, mapped)
	}
	return results
}

func mapBookingSafe(dto BookingDTO) (mapped MappedBooking, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mapping failed: %v", r)
		}
	}()
	return MapBooking(dto), nil
}

// parseBookingTimestamp combines the remote date and time strings into one
// timestamp. Parse failures are logged and yield nil, they never abort the
// mapping of the rest of the record.
func parseBookingTimestamp(fecha, hora string) *time.Time {
	if fecha == "" {
		return nil
	}
	layout := bookingDateLayout
	value := fecha
	if hora != "" {
		layout = bookingDateLayout + " " + bookingTimeLayout
		value = fecha + " " + hora
	}
	ts, err := time.ParseInLocation(layout, value, time.Local)
	if err != nil {
		log.Printf("Warning: could not parse booking timestamp %q %q: %v", fecha, hora, err)
		return nil
	}
	return &ts
}

// splitFullName splits a full name on the first space into first name and
// surname. Names without a space get an empty surname.
func splitFullName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if idx := strings.Index(full, " "); idx >= 0 {
		return full[:idx], full[idx+1:]
	}
	return full, ""
}

// washTypeServices builds the synthetic service for a wash-type code.
// Empty codes yield no services; unknown codes are logged and billed at 0.
func washTypeServices(code string) []models.Service {
	if code == "" {
		return nil
	}

	priceWithVAT, known := PriceFor(WashType(code))
	if !known {
		log.Printf("Warning: unknown wash type %q, defaulting price to 0", code)
	}

	return []models.Service{
		{
			Name:     washTypeDisplayName(code),
			Price:    priceWithVAT / bookingVATDivisor,
			VATRate:  models.DefaultVATRate,
			Duration: models.DefaultServiceDuration,
			Category: "lavado",
			IsActive: true,
		},
	}
}

// washTypeDisplayName turns a code like LAVADO_COMPLETO_TURISMO into
// "Lavado Completo Turismo".
func washTypeDisplayName(code string) string {
	words := strings.Split(strings.ToLower(code), "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
