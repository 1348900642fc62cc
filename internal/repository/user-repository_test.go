package repository

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"tupyme/internal/backend"
	"tupyme/internal/domain"
	"tupyme/internal/prefs"
	"tupyme/traits/database"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPrefs(t *testing.T) *prefs.Store {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.CreateTables(db, zap.NewNop()))
	return prefs.NewStore(db, zap.NewNop())
}

func TestUserRepository_LoginPersistsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/login", r.URL.Path)
		w.Write([]byte(`{"id": 42, "name": "Juan Perez", "email": "juan@pyme.cl", "phone": "987654321"}`))
	}))
	defer srv.Close()

	prefsStore := newTestPrefs(t)
	api := backend.NewClient(srv.URL, srv.Client(), zap.NewNop())
	repo := NewUserRepository(api, prefsStore, zap.NewNop())

	user, err := repo.Login(context.Background(), domain.LoginRequest{
		Email:    "juan@pyme.cl",
		Password: "Passw0rd",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)

	// the preference store received the logged-in write
	session, err := repo.Session()
	require.NoError(t, err)
	assert.True(t, session.LoggedIn)
	assert.Equal(t, int64(42), session.UserID)
	assert.Equal(t, "juan@pyme.cl", session.UserEmail)
}

func TestUserRepository_FailedLoginLeavesSessionUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Credenciales inválidas"}`))
	}))
	defer srv.Close()

	prefsStore := newTestPrefs(t)
	api := backend.NewClient(srv.URL, srv.Client(), zap.NewNop())
	repo := NewUserRepository(api, prefsStore, zap.NewNop())

	_, err := repo.Login(context.Background(), domain.LoginRequest{Email: "juan@pyme.cl", Password: "mala"})
	require.Error(t, err)
	assert.Equal(t, "Credenciales inválidas", UserMessage(err))

	session, sessionErr := repo.Session()
	require.NoError(t, sessionErr)
	assert.False(t, session.LoggedIn)
}

func TestUserRepository_LogoutClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 42, "name": "Juan", "email": "juan@pyme.cl", "phone": "987654321"}`))
	}))
	defer srv.Close()

	prefsStore := newTestPrefs(t)
	api := backend.NewClient(srv.URL, srv.Client(), zap.NewNop())
	repo := NewUserRepository(api, prefsStore, zap.NewNop())

	_, err := repo.Login(context.Background(), domain.LoginRequest{Email: "juan@pyme.cl", Password: "Passw0rd"})
	require.NoError(t, err)

	require.NoError(t, repo.Logout())

	session, err := repo.Session()
	require.NoError(t, err)
	assert.False(t, session.LoggedIn)
	assert.Zero(t, session.UserID)
}

func TestUserMessage_FallbackForPlainErrors(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, backend.FallbackErrorMessage, UserMessage(assert.AnError))
	assert.Equal(t, "algo pasó", UserMessage(&backend.APIError{Status: 500, Message: "algo pasó"}))
}
