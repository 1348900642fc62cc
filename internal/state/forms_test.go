package state

import (
	"context"
	"sync"
	"testing"

	"tupyme/internal/backend"
	"tupyme/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	mu            sync.Mutex
	loginCalls    int
	registerCalls int
	user          *domain.User
	err           error
}

func (f *fakeAuth) Login(_ context.Context, _ domain.LoginRequest) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAuth) Register(_ context.Context, _ domain.RegisterUserRequest) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeTickets struct {
	mu     sync.Mutex
	calls  int
	ticket *domain.Ticket
	err    error
}

func (f *fakeTickets) Create(_ context.Context, _ domain.CreateTicketRequest) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.ticket, nil
}

func TestLoginForm_SuccessfulSubmit(t *testing.T) {
	auth := &fakeAuth{user: &domain.User{ID: 42, Email: "juan@pyme.cl"}}
	form := NewLoginForm(auth)

	form.SetEmail("juan@pyme.cl")
	form.SetPassword("Passw0rd")
	require.True(t, form.Snapshot().CanSubmit)

	snapshot := form.Submit(context.Background())
	assert.True(t, snapshot.Success)
	assert.Equal(t, int64(42), snapshot.UserID)
	assert.False(t, snapshot.Submitting)
	assert.Empty(t, snapshot.ServerError)
	assert.Equal(t, 1, auth.loginCalls)
}

func TestLoginForm_ServerFailureReturnsToEditing(t *testing.T) {
	auth := &fakeAuth{err: &backend.APIError{Status: 401, Message: "Credenciales inválidas"}}
	form := NewLoginForm(auth)

	form.SetEmail("juan@pyme.cl")
	form.SetPassword("Passw0rd")

	snapshot := form.Submit(context.Background())
	assert.False(t, snapshot.Success)
	assert.False(t, snapshot.Submitting)
	assert.Equal(t, "Credenciales inválidas", snapshot.ServerError)
	assert.True(t, snapshot.CanSubmit) // back in editing, fields still valid
}

func TestLoginForm_InvalidFieldsNeverReachNetwork(t *testing.T) {
	auth := &fakeAuth{user: &domain.User{ID: 1}}
	form := NewLoginForm(auth)

	form.SetEmail("not-an-email")
	form.SetPassword("x")

	snapshot := form.Submit(context.Background())
	assert.False(t, snapshot.Success)
	assert.NotEmpty(t, snapshot.EmailError)
	assert.Zero(t, auth.loginCalls)
}

func TestLoginForm_StaleFlagIsRepairedBeforeSubmit(t *testing.T) {
	auth := &fakeAuth{user: &domain.User{ID: 1}}
	form := NewLoginForm(auth)
	form.SetEmail("broken")
	form.SetPassword("Passw0rd")

	// Force the aggregate flag out of sync with the fields.
	form.mu.Lock()
	form.canSubmit = true
	form.mu.Unlock()

	snapshot := form.Submit(context.Background())
	assert.False(t, snapshot.Success)
	assert.NotEmpty(t, snapshot.EmailError)
	assert.False(t, snapshot.CanSubmit)
	assert.Zero(t, auth.loginCalls)
}

func TestRegisterForm_AggregateFlagTracksEveryField(t *testing.T) {
	form := NewRegisterForm(&fakeAuth{})

	set := func() {
		form.SetName("María Núñez")
		form.SetEmail("maria@pyme.cl")
		form.SetPhone("987654321")
		form.SetPassword("Passw0rd")
		form.SetConfirmPassword("Passw0rd")
	}

	set()
	assert.True(t, form.Snapshot().CanSubmit)

	// blanking any one field disables submit
	form.SetName("")
	assert.False(t, form.Snapshot().CanSubmit)
	set()

	form.SetEmail("")
	assert.False(t, form.Snapshot().CanSubmit)
	set()

	form.SetPhone("")
	assert.False(t, form.Snapshot().CanSubmit)
	set()

	// an invalid field disables submit too
	form.SetPassword("nouppercase1")
	assert.False(t, form.Snapshot().CanSubmit)
	set()

	form.SetConfirmPassword("Different1")
	assert.False(t, form.Snapshot().CanSubmit)
}

func TestRegisterForm_PasswordChangeRevalidatesConfirmation(t *testing.T) {
	form := NewRegisterForm(&fakeAuth{})

	form.SetPassword("Passw0rd")
	form.SetConfirmPassword("Passw0rd")
	assert.Empty(t, form.Snapshot().ConfirmPasswordError)

	form.SetPassword("Otra0Clave")
	assert.NotEmpty(t, form.Snapshot().ConfirmPasswordError)
}

func TestRegisterForm_SuccessfulSubmit(t *testing.T) {
	auth := &fakeAuth{user: &domain.User{ID: 7, Email: "maria@pyme.cl"}}
	form := NewRegisterForm(auth)

	form.SetName("María Núñez")
	form.SetEmail("maria@pyme.cl")
	form.SetPhone("987654321")
	form.SetPassword("Passw0rd")
	form.SetConfirmPassword("Passw0rd")

	snapshot := form.Submit(context.Background())
	assert.True(t, snapshot.Success)
	assert.Equal(t, int64(7), snapshot.UserID)
	assert.Equal(t, 1, auth.registerCalls)
}

func TestTicketForm_BlankDescriptionBlocksCreate(t *testing.T) {
	tickets := &fakeTickets{ticket: &domain.Ticket{ID: 9}}
	form := NewTicketForm(tickets)

	form.SetSubject("No llegan mis cartolas")
	form.SetDescription("")

	assert.False(t, form.Snapshot().CanSubmit)

	snapshot := form.Submit(context.Background(), 42, nil)
	assert.False(t, snapshot.Success)
	assert.NotEmpty(t, snapshot.DescriptionError)
	assert.Zero(t, tickets.calls)
}

func TestTicketForm_SuccessfulSubmit(t *testing.T) {
	tickets := &fakeTickets{ticket: &domain.Ticket{ID: 9, Status: domain.TicketStatusOpen}}
	form := NewTicketForm(tickets)

	form.SetSubject("No llegan mis cartolas")
	form.SetDescription("Desde agosto no recibo correspondencia en la oficina virtual")

	snapshot := form.Submit(context.Background(), 42, nil)
	assert.True(t, snapshot.Success)
	assert.Equal(t, int64(9), snapshot.TicketID)
	assert.Equal(t, 1, tickets.calls)
}

func TestManager_ResetReplacesForms(t *testing.T) {
	manager := NewManager(&fakeAuth{}, &fakeTickets{})
	session := manager.Create()

	session.Login().SetEmail("juan@pyme.cl")
	require.Equal(t, "juan@pyme.cl", session.Login().Snapshot().Email)

	before := session.Login()
	manager.ResetLogin(session)
	assert.NotSame(t, before, session.Login())
	assert.Empty(t, session.Login().Snapshot().Email)

	session.Ticket().SetSubject("Consulta")
	manager.ResetTicket(session)
	assert.Empty(t, session.Ticket().Snapshot().Subject)
}

func TestManager_ConcurrentResetAndEdit(t *testing.T) {
	manager := NewManager(&fakeAuth{}, &fakeTickets{})
	session := manager.Create()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			session.Login().SetEmail("juan@pyme.cl")
		}()
		go func() {
			defer wg.Done()
			manager.ResetLogin(session)
		}()
		go func() {
			defer wg.Done()
			_ = session.Login().Snapshot()
		}()
	}
	wg.Wait()

	assert.NotNil(t, session.Login())
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	manager := NewManager(&fakeAuth{}, &fakeTickets{})

	first := manager.Create()
	second := manager.Create()
	require.NotEqual(t, first.ID, second.ID)

	_, err := first.Cart.AddItem(domain.CatalogService{Name: "A", Price: 1000})
	require.NoError(t, err)

	assert.Equal(t, 1, first.Cart.Len())
	assert.Zero(t, second.Cart.Len())

	got, ok := manager.Get(first.ID)
	require.True(t, ok)
	assert.Same(t, first, got)

	manager.Delete(first.ID)
	_, ok = manager.Get(first.ID)
	assert.False(t, ok)
}
