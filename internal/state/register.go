package state

import (
	"context"
	"sync"

	"tupyme/internal/domain"
	"tupyme/internal/repository"
	"tupyme/internal/validation"
)

// RegisterSnapshot is the observable state of the registration form
type RegisterSnapshot struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	NameError            string `json:"name_error,omitempty"`
	EmailError           string `json:"email_error,omitempty"`
	PhoneError           string `json:"phone_error,omitempty"`
	PasswordError        string `json:"password_error,omitempty"`
	ConfirmPasswordError string `json:"confirm_password_error,omitempty"`
	CanSubmit            bool   `json:"can_submit"`
	Submitting           bool   `json:"submitting"`
	Success              bool   `json:"success"`
	UserID               int64  `json:"user_id,omitempty"`
	ServerError          string `json:"server_error,omitempty"`
}

// RegisterForm is the registration screen state machine. Every field
// setter re-validates its field and recomputes the aggregate submit
// flag; the password setter also re-validates the confirmation, which
// depends on it.
type RegisterForm struct {
	mu   sync.Mutex
	auth Authenticator

	name            string
	email           string
	phone           string
	password        string
	confirmPassword string

	nameError            string
	emailError           string
	phoneError           string
	passwordError        string
	confirmPasswordError string

	canSubmit   bool
	submitting  bool
	success     bool
	userID      int64
	serverError string
}

// NewRegisterForm creates a fresh registration form
func NewRegisterForm(auth Authenticator) *RegisterForm {
	return &RegisterForm{auth: auth}
}

// SetName updates the name field
func (f *RegisterForm) SetName(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.name = name
	f.nameError = validation.ValidateName(name)
	f.recomputeCanSubmit()
}

// SetEmail updates the email field
func (f *RegisterForm) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.email = email
	f.emailError = validation.ValidateEmail(email)
	f.recomputeCanSubmit()
}

// SetPhone updates the phone field
func (f *RegisterForm) SetPhone(phone string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.phone = phone
	f.phoneError = validation.ValidatePhone(phone)
	f.recomputeCanSubmit()
}

// SetPassword updates the password and re-validates the confirmation,
// which compares against it.
func (f *RegisterForm) SetPassword(password string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.password = password
	f.passwordError = validation.ValidatePassword(password)
	if f.confirmPassword != "" {
		f.confirmPasswordError = validation.ValidateConfirmPassword(f.password, f.confirmPassword)
	}
	f.recomputeCanSubmit()
}

// SetConfirmPassword updates the confirmation field
func (f *RegisterForm) SetConfirmPassword(confirm string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.confirmPassword = confirm
	f.confirmPasswordError = validation.ValidateConfirmPassword(f.password, confirm)
	f.recomputeCanSubmit()
}

// recomputeCanSubmit must run on every mutation; callers hold the lock
func (f *RegisterForm) recomputeCanSubmit() {
	noErrors := f.nameError == "" &&
		f.emailError == "" &&
		f.phoneError == "" &&
		f.passwordError == "" &&
		f.confirmPasswordError == ""

	allFilled := f.name != "" &&
		f.email != "" &&
		f.phone != "" &&
		f.password != "" &&
		f.confirmPassword != ""

	f.canSubmit = noErrors && allFilled && !f.submitting
}

// revalidate re-runs every field check; callers hold the lock
func (f *RegisterForm) revalidate() {
	f.nameError = validation.ValidateName(f.name)
	f.emailError = validation.ValidateEmail(f.email)
	f.phoneError = validation.ValidatePhone(f.phone)
	f.passwordError = validation.ValidatePassword(f.password)
	f.confirmPasswordError = validation.ValidateConfirmPassword(f.password, f.confirmPassword)
	f.recomputeCanSubmit()
}

// Submit guards on the aggregate flag, repairs it with a full
// validation pass when stale, and only then calls the backend.
func (f *RegisterForm) Submit(ctx context.Context) RegisterSnapshot {
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
	req := domain.RegisterUserRequest{
		Name:     f.name,
		Email:    f.email,
		Phone:    f.phone,
		Password: f.password,
	}
	f.mu.Unlock()

	user, err := f.auth.Register(ctx, req)

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
func (f *RegisterForm) Snapshot() RegisterSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *RegisterForm) snapshotLocked() RegisterSnapshot {
	return RegisterSnapshot{
		Name:                 f.name,
		Email:                f.email,
		Phone:                f.phone,
		NameError:            f.nameError,
		EmailError:           f.emailError,
		PhoneError:           f.phoneError,
		PasswordError:        f.passwordError,
		ConfirmPasswordError: f.confirmPasswordError,
		CanSubmit:            f.canSubmit,
		Submitting:           f.submitting,
		Success:              f.success,
		UserID:               f.userID,
		ServerError:          f.serverError,
	}
}
