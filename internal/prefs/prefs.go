package prefs

import (
	"database/sql"
	"fmt"
	"strconv"

	"tupyme/internal/domain"

	"go.uber.org/zap"
)

// Preference keys
const (
	keyLoggedIn       = "logged_in"
	keyUserID         = "user_id"
	keyUserEmail      = "user_email"
	keyOnboardingDone = "onboarding_done"
	keyDarkTheme      = "dark_theme"
)

// Store persists session flags in the preferences table. Reads of a
// missing key return the zero value, never an error.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewStore creates a preference store over the given database
func NewStore(db *sql.DB, logger *zap.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger,
	}
}

func (s *Store) set(key, value string) error {
	query := `
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`

	if _, err := s.db.Exec(query, key, value); err != nil {
		s.logger.Error("Failed to write preference", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return nil
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		s.logger.Error("Failed to read preference", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) setBool(key string, value bool) error {
	return s.set(key, strconv.FormatBool(value))
}

func (s *Store) getBool(key string) (bool, error) {
	value, err := s.get(key)
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

// SetLoggedIn records whether a user session is active
func (s *Store) SetLoggedIn(loggedIn bool) error {
	return s.setBool(keyLoggedIn, loggedIn)
}

// LoggedIn reports whether a user session is active
func (s *Store) LoggedIn() (bool, error) {
	return s.getBool(keyLoggedIn)
}

// SetUserID stores the numeric backend id of the logged-in user
func (s *Store) SetUserID(id int64) error {
	return s.set(keyUserID, strconv.FormatInt(id, 10))
}

// UserID returns the stored user id, 0 when absent
func (s *Store) UserID() (int64, error) {
	value, err := s.get(keyUserID)
	if err != nil || value == "" {
		return 0, err
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt user_id preference: %w", err)
	}
	return id, nil
}

// SetUserEmail stores the email of the logged-in user
func (s *Store) SetUserEmail(email string) error {
	return s.set(keyUserEmail, email)
}

// UserEmail returns the stored user email, "" when absent
func (s *Store) UserEmail() (string, error) {
	return s.get(keyUserEmail)
}

// SetOnboardingDone marks the onboarding flow as completed
func (s *Store) SetOnboardingDone(done bool) error {
	return s.setBool(keyOnboardingDone, done)
}

// OnboardingDone reports whether onboarding was completed
func (s *Store) OnboardingDone() (bool, error) {
	return s.getBool(keyOnboardingDone)
}

// SetDarkTheme stores the theme preference
func (s *Store) SetDarkTheme(dark bool) error {
	return s.setBool(keyDarkTheme, dark)
}

// DarkTheme reports the theme preference
func (s *Store) DarkTheme() (bool, error) {
	return s.getBool(keyDarkTheme)
}

// SaveSession records a successful login in one call
func (s *Store) SaveSession(userID int64, email string) error {
	if err := s.SetLoggedIn(true); err != nil {
		return err
	}
	if err := s.SetUserID(userID); err != nil {
		return err
	}
	return s.SetUserEmail(email)
}

// ClearSession removes the login state on logout
func (s *Store) ClearSession() error {
	if err := s.SetLoggedIn(false); err != nil {
		return err
	}
	if err := s.set(keyUserID, ""); err != nil {
		return err
	}
	return s.set(keyUserEmail, "")
}

// Session loads the persisted login state
func (s *Store) Session() (*domain.Session, error) {
	loggedIn, err := s.LoggedIn()
	if err != nil {
		return nil, err
	}
	userID, err := s.UserID()
	if err != nil {
		return nil, err
	}
	email, err := s.UserEmail()
	if err != nil {
		return nil, err
	}
	return &domain.Session{
		LoggedIn:  loggedIn,
		UserID:    userID,
		UserEmail: email,
	}, nil
}
