package services

import (
	"testing"
	"time"

	"LavaderoApp/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAppointmentDerivesFields(t *testing.T) {
	db := setupTestDB(t)
	clientSvc := NewClientService(db)
	appointmentSvc := NewAppointmentService(db, clientSvc)

	client := &models.Client{
		Name: "Ana", Phone: "600333444", Email: "ana@example.com",
		VehiclePlate: "1234 BCD", VehicleModel: "Seat Ibiza",
	}
	require.NoError(t, clientSvc.CreateClient(client))

	services := []models.Service{
		{Name: "Lavado Completo", Price: 19.01, VATRate: 21, Duration: 45, IsActive: true},
		{Name: "Encerado", Price: 24.79, VATRate: 21, IsActive: true}, // duration defaults to 30
	}
	require.NoError(t, db.Create(&services).Error)

	when := time.Now().Add(24 * time.Hour)
	appointment := &models.Appointment{ClientID: client.ID, ScheduledAt: &when, Services: services}
	require.NoError(t, appointmentSvc.CreateAppointment(appointment))

	assert.Equal(t, models.StatusPending, appointment.Status)
	assert.Equal(t, 75, appointment.EstimatedDuration)
	assert.InDelta(t, 43.80, appointment.Subtotal, 1e-9)
	assert.InDelta(t, appointment.Subtotal+appointment.TaxAmount, appointment.Total, 1e-9)

	// Vehicle snapshot comes from the client when not provided
	assert.Equal(t, "1234 BCD", appointment.VehiclePlate)
	assert.Equal(t, "Seat Ibiza", appointment.VehicleModel)
}

func TestCreateAppointmentRequiresClient(t *testing.T) {
	db := setupTestDB(t)
	appointmentSvc := NewAppointmentService(db, NewClientService(db))

	err := appointmentSvc.CreateAppointment(&models.Appointment{})
	assert.Error(t, err)
}

func TestUpdateStatusDrivesClientCounters(t *testing.T) {
	db := setupTestDB(t)
	clientSvc := NewClientService(db)
	appointmentSvc := NewAppointmentService(db, clientSvc)

	client := &models.Client{Name: "Luis", Phone: "600555666", Email: "luis@example.com"}
	require.NoError(t, clientSvc.CreateClient(client))

	when := time.Now()
	appointment := &models.Appointment{ClientID: client.ID, ScheduledAt: &when}
	require.NoError(t, appointmentSvc.CreateAppointment(appointment))

	// Any status may be set at any time, there is no enforced state machine
	require.NoError(t, appointmentSvc.UpdateStatus(appointment.ID, models.StatusCompleted, ""))

	updated, err := clientSvc.GetClient(client.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalAppointments)
	assert.Equal(t, 1, updated.CompletedAppointments)
	require.NotNil(t, updated.FirstAppointmentAt)
	require.NotNil(t, updated.LastAppointmentAt)

	finished, err := appointmentSvc.GetAppointment(appointment.ID)
	require.NoError(t, err)
	assert.NotNil(t, finished.FinishedAt)

	// Re-finalizing does not double-count
	require.NoError(t, appointmentSvc.UpdateStatus(appointment.ID, models.StatusCompleted, ""))
	updated, err = clientSvc.GetClient(client.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalAppointments)
}

func TestUpdateStatusCancellationReason(t *testing.T) {
	db := setupTestDB(t)
	clientSvc := NewClientService(db)
	appointmentSvc := NewAppointmentService(db, clientSvc)

	client := &models.Client{Name: "Marta", Phone: "600777888", Email: "marta@example.com"}
	require.NoError(t, clientSvc.CreateClient(client))

	appointment := &models.Appointment{ClientID: client.ID}
	require.NoError(t, appointmentSvc.CreateAppointment(appointment))

	require.NoError(t, appointmentSvc.UpdateStatus(appointment.ID, models.StatusCancelled, "lluvia"))

	cancelled, err := appointmentSvc.GetAppointment(appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, "lluvia", cancelled.CancellationReason)

	counters, err := clientSvc.GetClient(client.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counters.CancelledAppointments)
}

func TestListAppointmentsByDay(t *testing.T) {
	db := setupTestDB(t)
	clientSvc := NewClientService(db)
	appointmentSvc := NewAppointmentService(db, clientSvc)

	client := &models.Client{Name: "Eva", Phone: "600999000", Email: "eva@example.com"}
	require.NoError(t, clientSvc.CreateClient(client))

	today := time.Now()
	tomorrow := today.Add(24 * time.Hour)
	for _, when := range []time.Time{today, tomorrow} {
		ts := when
		require.NoError(t, appointmentSvc.CreateAppointment(&models.Appointment{ClientID: client.ID, ScheduledAt: &ts}))
	}

	todays, err := appointmentSvc.ListAppointmentsByDay(today)
	require.NoError(t, err)
	assert.Len(t, todays, 1)
}
