package state

import (
	"context"
	"strings"
	"sync"

	"tupyme/internal/domain"
	"tupyme/internal/repository"
)

// TicketCreator is the slice of the ticket repository the form needs
type TicketCreator interface {
	Create(ctx context.Context, req domain.CreateTicketRequest) (*domain.Ticket, error)
}

// TicketFormSnapshot is the observable state of the new-ticket form
type TicketFormSnapshot struct {
	Subject          string `json:"subject"`
	Description      string `json:"description"`
	SubjectError     string `json:"subject_error,omitempty"`
	DescriptionError string `json:"description_error,omitempty"`
	CanSubmit        bool   `json:"can_submit"`
	Submitting       bool   `json:"submitting"`
	Success          bool   `json:"success"`
	TicketID         int64  `json:"ticket_id,omitempty"`
	ServerError      string `json:"server_error,omitempty"`
}

// TicketForm is the new-support-ticket state machine. Both fields are
// required; while either is blank the create action does not reach the
// network.
type TicketForm struct {
	mu      sync.Mutex
	tickets TicketCreator

	subject          string
	description      string
	subjectError     string
	descriptionError string
	canSubmit        bool
	submitting       bool
	success          bool
	ticketID         int64
	serverError      string
}

// NewTicketForm creates a fresh ticket form
func NewTicketForm(tickets TicketCreator) *TicketForm {
	return &TicketForm{tickets: tickets}
}

func requiredFieldError(value, message string) string {
	if strings.TrimSpace(value) == "" {
		return message
	}
	return ""
}

// SetSubject updates the subject field
func (f *TicketForm) SetSubject(subject string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.subject = subject
	f.subjectError = requiredFieldError(subject, "El asunto es obligatorio")
	f.recomputeCanSubmit()
}

// SetDescription updates the description field
func (f *TicketForm) SetDescription(description string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.description = description
	f.descriptionError = requiredFieldError(description, "La descripción es obligatoria")
	f.recomputeCanSubmit()
}

// recomputeCanSubmit must run on every mutation; callers hold the lock
func (f *TicketForm) recomputeCanSubmit() {
	f.canSubmit = f.subjectError == "" &&
		f.descriptionError == "" &&
		f.subject != "" &&
		f.description != "" &&
		!f.submitting
}

// revalidate re-runs every field check; callers hold the lock
func (f *TicketForm) revalidate() {
	f.subjectError = requiredFieldError(f.subject, "El asunto es obligatorio")
	f.descriptionError = requiredFieldError(f.description, "La descripción es obligatoria")
	f.recomputeCanSubmit()
}

// Submit creates the ticket for the given user, guarding on validity
// first so a blank form never produces a network call.
func (f *TicketForm) Submit(ctx context.Context, userID int64, companyID *int64) TicketFormSnapshot {
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
	req := domain.CreateTicketRequest{
		UserID:      userID,
		CompanyID:   companyID,
		Subject:     f.subject,
		Description: f.description,
	}
	f.mu.Unlock()

	ticket, err := f.tickets.Create(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitting = false
	if err != nil {
		f.serverError = repository.UserMessage(err)
		f.recomputeCanSubmit()
		return f.snapshotLocked()
	}

	f.success = true
	f.ticketID = ticket.ID
	f.recomputeCanSubmit()
	return f.snapshotLocked()
}

// Snapshot returns the current observable state
func (f *TicketForm) Snapshot() TicketFormSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *TicketForm) snapshotLocked() TicketFormSnapshot {
	return TicketFormSnapshot{
		Subject:          f.subject,
		Description:      f.description,
		SubjectError:     f.subjectError,
		DescriptionError: f.descriptionError,
		CanSubmit:        f.canSubmit,
		Submitting:       f.submitting,
		Success:          f.success,
		TicketID:         f.ticketID,
		ServerError:      f.serverError,
	}
}
