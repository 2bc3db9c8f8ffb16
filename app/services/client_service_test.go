package services

import (
	"testing"

	"LavaderoApp/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClientSearchAndDeactivate(t *testing.T) {
	db := setupTestDB(t)
	clientSvc := NewClientService(db)

	require.NoError(t, clientSvc.CreateClient(&models.Client{
		Name: "Juan", LastName: "Pérez", Phone: "600123123", Email: "juan@example.com", VehiclePlate: "1234 BCD",
	}))
	require.NoError(t, clientSvc.CreateClient(&models.Client{
		Name: "Ana", LastName: "Ruiz", Phone: "600456456", Email: "ana@example.com",
	}))

	byName, err := clientSvc.SearchClients("Juan")
	require.NoError(t, err)
	require.Len(t, byName, 1)

	byPlate, err := clientSvc.SearchClients("1234")
	require.NoError(t, err)
	require.Len(t, byPlate, 1)
	assert.Equal(t, "Juan", byPlate[0].Name)

	// Deactivation hides the client from searches but keeps the record
	require.NoError(t, clientSvc.DeactivateClient(byName[0].ID))

	gone, err := clientSvc.SearchClients("Juan")
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := clientSvc.GetClient(byName[0].ID)
	require.NoError(t, err)
	assert.False(t, kept.IsActive)
}

func TestClientCreateRequiresName(t *testing.T) {
	db := setupTestDB(t)
	clientSvc := NewClientService(db)

	assert.Error(t, clientSvc.CreateClient(&models.Client{Phone: "600000000"}))
}

func TestFindOrCreateByPhone(t *testing.T) {
	db := setupTestDB(t)
	clientSvc := NewClientService(db)

	first, err := clientSvc.FindOrCreateByPhone(models.Client{Name: "Juan", Phone: "600123123"})
	require.NoError(t, err)

	second, err := clientSvc.FindOrCreateByPhone(models.Client{Name: "Distinto", Phone: "600123123"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Juan", second.Name)

	var count int64
	require.NoError(t, db.Model(&models.Client{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterInvoicedAmount(t *testing.T) {
	db := setupTestDB(t)
	clientSvc := NewClientService(db)

	client := &models.Client{Name: "Eva", Phone: "600999000", Email: "eva@example.com"}
	require.NoError(t, clientSvc.CreateClient(client))

	require.NoError(t, clientSvc.RegisterInvoicedAmount(client.ID, 48.40))
	require.NoError(t, clientSvc.RegisterInvoicedAmount(client.ID, 12.10))

	updated, err := clientSvc.GetClient(client.ID)
	require.NoError(t, err)
	assert.InDelta(t, 60.50, updated.TotalInvoiced, 1e-9)
}

func TestGetClientByPhoneNotFound(t *testing.T) {
	db := setupTestDB(t)
	clientSvc := NewClientService(db)

	_, err := clientSvc.GetClientByPhone("699999999")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
