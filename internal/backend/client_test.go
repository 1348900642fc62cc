package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tupyme/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	client := NewClient(srv.URL, srv.Client(), zap.NewNop())
	return client, srv.Close
}

func TestLogin_Success(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/users/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 42, "name": "Juan Perez", "email": "juan@pyme.cl", "phone": "987654321"}`))
	})
	defer closeFn()

	user, err := client.Login(context.Background(), domain.LoginRequest{
		Email:    "juan@pyme.cl",
		Password: "Passw0rd",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "juan@pyme.cl", user.Email)
}

func TestLogin_ServerErrorMessageSurfaced(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Credenciales inválidas"}`))
	})
	defer closeFn()

	_, err := client.Login(context.Background(), domain.LoginRequest{Email: "a@b.com", Password: "x"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Credenciales inválidas", apiErr.Message)
}

func TestLogin_ErrorWithoutBodyUsesFallback(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer closeFn()

	_, err := client.Login(context.Background(), domain.LoginRequest{Email: "a@b.com", Password: "x"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, FallbackErrorMessage, apiErr.Message)
}

func TestLogin_JSONErrorWithoutMessageUsesFallback(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"code": 5}`))
	})
	defer closeFn()

	_, err := client.Login(context.Background(), domain.LoginRequest{Email: "a@b.com", Password: "x"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	// raw JSON must never become the user-facing banner text
	assert.Equal(t, FallbackErrorMessage, apiErr.Message)
}

func TestLogin_PlainTextErrorIsPassedThrough(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Servicio en mantención"))
	})
	defer closeFn()

	_, err := client.Login(context.Background(), domain.LoginRequest{Email: "a@b.com", Password: "x"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Servicio en mantención", apiErr.Message)
}

func TestRegister_EmptyBodyIsFailure(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK) // success status, no payload
	})
	defer closeFn()

	_, err := client.Register(context.Background(), domain.RegisterUserRequest{
		Name:     "Juan",
		Email:    "juan@pyme.cl",
		Phone:    "987654321",
		Password: "Passw0rd",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyBody))
}

func TestGetPlans_DecodesList(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/planes", r.URL.Path)
		w.Write([]byte(`[
			{"id": 1, "nombre": "Plan Básico", "descripcion": "x", "duracionMeses": 1, "precio": 15000, "activo": true},
			{"id": 2, "nombre": "Plan Anual", "descripcion": "y", "duracionMeses": 12, "precio": 120000, "activo": true}
		]`))
	})
	defer closeFn()

	plans, err := client.GetPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "Plan Básico", plans[0].Name)
	assert.Equal(t, 120000, plans[1].Price)
}

func TestDeleteTicket_NoBodyExpected(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/tickets/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	defer closeFn()

	err := client.DeleteTicket(context.Background(), 7)
	require.NoError(t, err)
}

func TestIndicatorsClient_ParsesDailyValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api", r.URL.Path)
		w.Write([]byte(`{
			"uf": {"codigo": "uf", "nombre": "Unidad de fomento", "unidad_medida": "Pesos", "fecha": "2026-08-28", "valor": 39219.21},
			"dolar": {"codigo": "dolar", "nombre": "Dólar observado", "unidad_medida": "Pesos", "fecha": "2026-08-28", "valor": 952.4},
			"euro": {"codigo": "euro", "nombre": "Euro", "unidad_medida": "Pesos", "fecha": "2026-08-28", "valor": 1034.7}
		}`))
	}))
	defer srv.Close()

	client := NewIndicatorsClient(srv.URL, srv.Client(), zap.NewNop())
	indicators, err := client.GetDailyIndicators(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 39219.21, indicators.UF.Value, 0.001)
	assert.Equal(t, "dolar", indicators.Dollar.Code)
	assert.InDelta(t, 1034.7, indicators.Euro.Value, 0.001)
}

func TestGeocoderClient_SearchAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Providencia 123", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "cl", r.URL.Query().Get("countrycodes"))
		w.Write([]byte(`[{"display_name": "Providencia 123, Santiago, Chile", "lat": "-33.43", "lon": "-70.62"}]`))
	}))
	defer srv.Close()

	client := NewGeocoderClient(srv.URL, srv.Client(), zap.NewNop())
	results, err := client.SearchAddress(context.Background(), "Providencia 123", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "-33.43", results[0].Lat)
}
