package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session groups the per-client state holders: one cart plus one form
// per screen. Forms are replaced with fresh instances when a screen is
// re-entered; the session mutex guards those pointer swaps so readers
// never observe a half-replaced form.
type Session struct {
	ID        string
	CreatedAt time.Time

	Cart *Cart

	mu       sync.Mutex
	login    *LoginForm
	register *RegisterForm
	ticket   *TicketForm
}

// Login returns the current login form
func (s *Session) Login() *LoginForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.login
}

// Register returns the current registration form
func (s *Session) Register() *RegisterForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.register
}

// Ticket returns the current new-ticket form
func (s *Session) Ticket() *TicketForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticket
}

// Manager owns the live sessions, keyed by session id
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	auth    Authenticator
	tickets TicketCreator
}

// NewManager creates a session manager wired to the repositories the
// forms submit through.
func NewManager(auth Authenticator, tickets TicketCreator) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		auth:     auth,
		tickets:  tickets,
	}
}

// Create issues a new session with fresh state holders
func (m *Manager) Create() *Session {
	session := &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Cart:      NewCart(),
		login:     NewLoginForm(m.auth),
		register:  NewRegisterForm(m.auth),
		ticket:    NewTicketForm(m.tickets),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return session
}

// Get returns the session with the given id
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	return session, ok
}

// ResetLogin replaces the login form with a fresh one (screen re-entry)
func (m *Manager) ResetLogin(session *Session) {
	session.mu.Lock()
	session.login = NewLoginForm(m.auth)
	session.mu.Unlock()
}

// ResetRegister replaces the registration form with a fresh one
func (m *Manager) ResetRegister(session *Session) {
	session.mu.Lock()
	session.register = NewRegisterForm(m.auth)
	session.mu.Unlock()
}

// ResetTicket replaces the new-ticket form with a fresh one
func (m *Manager) ResetTicket(session *Session) {
	session.mu.Lock()
	session.ticket = NewTicketForm(m.tickets)
	session.mu.Unlock()
}

// Delete removes a session
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
