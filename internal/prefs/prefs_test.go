package prefs

import (
	"database/sql"
	"testing"

	"tupyme/traits/database"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.CreateTables(db, zap.NewNop()))
	return NewStore(db, zap.NewNop())
}

func TestStore_MissingKeysReturnZeroValues(t *testing.T) {
	store := newTestStore(t)

	loggedIn, err := store.LoggedIn()
	require.NoError(t, err)
	assert.False(t, loggedIn)

	userID, err := store.UserID()
	require.NoError(t, err)
	assert.Zero(t, userID)

	email, err := store.UserEmail()
	require.NoError(t, err)
	assert.Empty(t, email)
}

func TestStore_SaveAndClearSession(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveSession(42, "juan@pyme.cl"))

	session, err := store.Session()
	require.NoError(t, err)
	assert.True(t, session.LoggedIn)
	assert.Equal(t, int64(42), session.UserID)
	assert.Equal(t, "juan@pyme.cl", session.UserEmail)

	require.NoError(t, store.ClearSession())

	session, err = store.Session()
	require.NoError(t, err)
	assert.False(t, session.LoggedIn)
	assert.Zero(t, session.UserID)
	assert.Empty(t, session.UserEmail)
}

func TestStore_OverwritesExistingValues(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SetUserEmail("primero@pyme.cl"))
	require.NoError(t, store.SetUserEmail("segundo@pyme.cl"))

	email, err := store.UserEmail()
	require.NoError(t, err)
	assert.Equal(t, "segundo@pyme.cl", email)
}

func TestStore_OnboardingAndThemeFlags(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SetOnboardingDone(true))
	done, err := store.OnboardingDone()
	require.NoError(t, err)
	assert.True(t, done)

	require.NoError(t, store.SetDarkTheme(true))
	dark, err := store.DarkTheme()
	require.NoError(t, err)
	assert.True(t, dark)

	require.NoError(t, store.SetDarkTheme(false))
	dark, err = store.DarkTheme()
	require.NoError(t, err)
	assert.False(t, dark)
}
