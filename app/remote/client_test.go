package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"LavaderoApp/app/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAPIConfig(baseURL string) config.APIConfig {
	return config.APIConfig{
		BaseURL:          baseURL,
		AppointmentsPath: "/citas",
		HealthPath:       "/health",
		ConnectTimeout:   2,
		ReadTimeout:      2,
		WriteTimeout:     2,
	}
}

func TestBookingClientHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewBookingClient(testAPIConfig(server.URL))
	assert.NoError(t, client.Health(context.Background()))
}

func TestBookingClientHealthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewBookingClient(testAPIConfig(server.URL))
	assert.Error(t, client.Health(context.Background()))
}

func TestBookingClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]BookingDTO{})
	}))
	defer server.Close()

	cfg := testAPIConfig(server.URL)
	cfg.AuthEnabled = true
	cfg.AuthToken = "secreto"

	client := NewBookingClient(cfg)
	_, err := client.FetchBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer secreto", gotAuth)
}

func TestBookingClientNoBearerWhenDisabled(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]BookingDTO{})
	}))
	defer server.Close()

	cfg := testAPIConfig(server.URL)
	cfg.AuthToken = "secreto" // set but auth disabled

	client := NewBookingClient(cfg)
	_, err := client.FetchBookings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestBookingClientFetchBookings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/citas", r.URL.Path)
		json.NewEncoder(w).Encode([]BookingDTO{
			{ID: 1, Nombre: "Juan Pérez", TipoLavado: "LAVADO_EXPRESS"},
			{ID: 2, Nombre: "Ana Ruiz", TipoLavado: "LAVADO_COMPLETO_TURISMO"},
		})
	}))
	defer server.Close()

	client := NewBookingClient(testAPIConfig(server.URL))
	bookings, err := client.FetchBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "Juan Pérez", bookings[0].Nombre)
}

func TestBookingClientUpdateStatus(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody BookingStatusUpdate
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewBookingClient(testAPIConfig(server.URL))
	err := client.UpdateBookingStatus(context.Background(), 42, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/citas/42/estado", gotPath)
	assert.Equal(t, "confirmed", gotBody.Estado)
}

func TestBookingClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewBookingClient(testAPIConfig(server.URL))
	_, err := client.FetchBookings(context.Background())
	assert.ErrorContains(t, err, "status 500")
}
