package state

import (
	"context"
	"strings"
	"sync"

	"tupyme/internal/domain"
	"tupyme/internal/repository"
	"tupyme/internal/validation"
)

// Authenticator is the slice of the user repository the auth forms need
type Authenticator interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.User, error)
	Register(ctx context.Context, req domain.RegisterUserRequest) (*domain.User, error)
}

// LoginSnapshot is the observable state of the login form
type LoginSnapshot struct {
	Email         string `json:"email"`
	Password      string `json:"-"`
	EmailError    string `json:"email_error,omitempty"`
	PasswordError string `json:"password_error,omitempty"`
	CanSubmit     bool   `json:"can_submit"`
	Submitting    bool   `json:"submitting"`
	Success       bool   `json:"success"`
	UserID        int64  `json:"user_id,omitempty"`
	ServerError   string `json:"server_error,omitempty"`
}

// LoginForm is the login screen state machine:
// Editing -> Submitting -> (Success | Editing with server error).
type LoginForm struct {
	mu   sync.Mutex
	auth Authenticator

	email         string
	password      string
	emailError    string
	passwordError string
	canSubmit     bool
	submitting    bool
	success       bool
	userID        int64
	serverError   string
}

// NewLoginForm creates a fresh login form
func NewLoginForm(auth Authenticator) *LoginForm {
	return &LoginForm{auth: auth}
}

// SetEmail updates the email field, re-validating it and the submit flag
func (f *LoginForm) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.email = email
	f.emailError = validation.ValidateEmail(email)
	f.recomputeCanSubmit()
}

// SetPassword updates the password field, re-validating it and the submit flag
func (f *LoginForm) SetPassword(password string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.password = password
	f.passwordError = loginPasswordError(password)
	f.recomputeCanSubmit()
}

// loginPasswordError only requires a non-blank password: the stored
// account decides whether it matches, not the client-side policy.
func loginPasswordError(password string) string {
	if strings.TrimSpace(password) == "" {
		return "La contraseña es obligatoria"
	}
	return ""
}

// recomputeCanSubmit must run on every mutation; callers hold the lock
func (f *LoginForm) recomputeCanSubmit() {
	f.canSubmit = f.emailError == "" &&
		f.passwordError == "" &&
		f.email != "" &&
		f.password != "" &&
		!f.submitting
}

// revalidate re-runs every field check; callers hold the lock
func (f *LoginForm) revalidate() {
	f.emailError = validation.ValidateEmail(f.email)
	f.passwordError = loginPasswordError(f.password)
	f.recomputeCanSubmit()
}

// Submit guards on the aggregate flag, then performs the login call.
// A stale flag is repaired by a full validation pass before anything
// touches the network.
func (f *LoginForm) Submit(ctx context.Context) LoginSnapshot {
	f.mu.Lock()

	if !f.canSubmit {
		f.revalidate()
		if !f.canSubmit {
			snapshot := f.snapshotLocked()
			f.mu.Unlock()
			return snapshot
		}
	}

	f.submitting = true
	f.serverError = ""
	f.recomputeCanSubmit()
	req := domain.LoginRequest{Email: f.email, Password: f.password}
	f.mu.Unlock()

	user, err := f.auth.Login(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitting = false
	if err != nil {
		f.serverError = repository.UserMessage(err)
		f.recomputeCanSubmit()
		return f.snapshotLocked()
	}

	f.success = true
	f.userID = user.ID
	f.recomputeCanSubmit()
	return f.snapshotLocked()
}

// Snapshot returns the current observable state
func (f *LoginForm) Snapshot() LoginSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *LoginForm) snapshotLocked() LoginSnapshot {
	return LoginSnapshot{
		Email:         f.email,
		Password:      f.password,
		EmailError:    f.emailError,
		PasswordError: f.passwordError,
		CanSubmit:     f.canSubmit,
		Submitting:    f.submitting,
		Success:       f.success,
		UserID:        f.userID,
		ServerError:   f.serverError,
	}
}
