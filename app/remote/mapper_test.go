package remote

import (
	"testing"
	"time"

	"LavaderoApp/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapBookingTimestamp(t *testing.T) {
	mapped := MapBooking(BookingDTO{Fecha: "15/06/2025", Hora: "14:30:00"})

	require.NotNil(t, mapped.Appointment.ScheduledAt)
	want := time.Date(2025, time.June, 15, 14, 30, 0, 0, time.Local)
	assert.True(t, mapped.Appointment.ScheduledAt.Equal(want))
}

func TestMapBookingBadDateKeepsRecord(t *testing.T) {
	// A parse failure yields a nil timestamp but the record is still mapped
	mapped := MapBooking(BookingDTO{Fecha: "not-a-date", Hora: "14:30:00", Nombre: "Ana"})

	assert.Nil(t, mapped.Appointment.ScheduledAt)
	assert.Equal(t, "Ana", mapped.Client.Name)
}

func TestMapBookingNameSplit(t *testing.T) {
	mapped := MapBooking(BookingDTO{Nombre: "Juan Pérez García"})
	assert.Equal(t, "Juan", mapped.Client.Name)
	assert.Equal(t, "Pérez García", mapped.Client.LastName)

	single := MapBooking(BookingDTO{Nombre: "Ana"})
	assert.Equal(t, "Ana", single.Client.Name)
	assert.Equal(t, "", single.Client.LastName)
}

func TestMapBookingStatusFallback(t *testing.T) {
	mapped := MapBooking(BookingDTO{Estado: "XYZ"})
	assert.Equal(t, models.StatusPending, mapped.Appointment.Status)

	confirmed := MapBooking(BookingDTO{Estado: "confirmed"})
	assert.Equal(t, models.StatusConfirmed, confirmed.Appointment.Status)
}

func TestMapBookingWashType(t *testing.T) {
	mapped := MapBooking(BookingDTO{TipoLavado: "LAVADO_COMPLETO_TURISMO"})

	require.Len(t, mapped.Services, 1)
	svc := mapped.Services[0]
	assert.Equal(t, "Lavado Completo Turismo", svc.Name)
	// The table price 23.00 is VAT-inclusive, the stored base backs out 21%
	assert.InDelta(t, 23.0/1.21, svc.Price, 1e-9)
	assert.InDelta(t, 19.0083, svc.Price, 1e-4)
	assert.InDelta(t, 21.0, svc.VATRate, 1e-9)
	assert.InDelta(t, 23.0, svc.PriceWithVAT(), 1e-9)

	// The appointment totals follow the synthetic service
	assert.InDelta(t, 23.0, mapped.Appointment.Total, 1e-9)
}

func TestMapBookingEmptyWashType(t *testing.T) {
	mapped := MapBooking(BookingDTO{TipoLavado: ""})
	assert.Empty(t, mapped.Services)
	assert.Zero(t, mapped.Appointment.Total)
}

func TestMapBookingUnknownWashType(t *testing.T) {
	mapped := MapBooking(BookingDTO{TipoLavado: "LAVADO_ESPACIAL"})

	require.Len(t, mapped.Services, 1)
	assert.Equal(t, "Lavado Espacial", mapped.Services[0].Name)
	assert.Zero(t, mapped.Services[0].Price)
}

func TestMapBookingCarriesFlatFields(t *testing.T) {
	mapped := MapBooking(BookingDTO{
		ID:             7,
		Nombre:         "Lucía Gómez",
		Telefono:       "600123456",
		Email:          "lucia@example.com",
		ModeloVehiculo: "Seat Ibiza",
		Observaciones:  "llega 10 min tarde",
		PagoAdelantado: true,
	})

	assert.Equal(t, int64(7), mapped.RemoteID)
	assert.Equal(t, "600123456", mapped.Client.Phone)
	assert.Equal(t, "lucia@example.com", mapped.Client.Email)
	assert.Equal(t, "Seat Ibiza", mapped.Appointment.VehicleModel)
	assert.Equal(t, "llega 10 min tarde", mapped.Appointment.Notes)
	assert.True(t, mapped.Appointment.PaidInAdvance)
}

func TestMapBookingsBatch(t *testing.T) {
	dtos := []BookingDTO{
		{ID: 1, Fecha: "15/06/2025", Hora: "09:00:00", Nombre: "Juan Pérez", TipoLavado: "LAVADO_EXPRESS"},
		{ID: 2, Fecha: "garbage", Hora: "10:00:00", Nombre: "Ana"},
		{ID: 3, Fecha: "15/06/2025", Hora: "11:00:00", Nombre: "Luis Martín", TipoLavado: "LAVADO_COMPLETO_MOTO"},
	}

	mapped := MapBookings(dtos)

	// A malformed date does not drop the record, it just loses its timestamp
	require.Len(t, mapped, 3)
	assert.NotNil(t, mapped[0].Appointment.ScheduledAt)
	assert.Nil(t, mapped[1].Appointment.ScheduledAt)
	assert.NotNil(t, mapped[2].Appointment.ScheduledAt)
}

func TestMapBookingIdempotent(t *testing.T) {
	dto := BookingDTO{Fecha: "01/02/2025", Hora: "08:15:00", Nombre: "Juan Pérez", Estado: "confirmed", TipoLavado: "ENCERADO_TURISMO"}

	first := MapBooking(dto)
	second := MapBooking(dto)

	assert.Equal(t, first.Client, second.Client)
	assert.Equal(t, first.Services, second.Services)
	assert.Equal(t, first.Appointment.Total, second.Appointment.Total)
	assert.True(t, first.Appointment.ScheduledAt.Equal(*second.Appointment.ScheduledAt))
}
