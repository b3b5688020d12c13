// Package auth holds client-side session state for the pantry API.
package auth

import (
	"context"
	"errors"
	"sync"

	"pantry/internal/api"
	"pantry/internal/model"
)

// Status is the explicit session state. A persisted token starts the
// manager in StatusPending until the server confirms it, so "looks
// authenticated" and "confirmed authenticated" are never conflated.
type Status int

const (
	StatusUnauthenticated Status = iota
	StatusPending
	StatusAuthenticated
)

// Client is the slice of the API surface the manager needs.
type Client interface {
	Login(ctx context.Context, email, password string) (*api.Session, error)
	Me(ctx context.Context) (*model.User, error)
	RefreshToken(ctx context.Context) (*api.Session, error)
	SetToken(token string)
}

// State is a snapshot of the session.
type State struct {
	User   *model.User
	Token  string
	Status Status
	Err    error
}

// Manager owns session state and token persistence. Construct one at
// startup and pass it by reference; there is no package-level state.
type Manager struct {
	mu      sync.Mutex
	client  Client
	persist func(token string) error
	state   State
}

// NewManager creates a manager. A non-empty stored token puts the session
// in pending state with a placeholder user until Validate confirms it.
func NewManager(client Client, persist func(token string) error, storedToken string) *Manager {
	m := &Manager{client: client, persist: persist}
	if storedToken != "" {
		m.client.SetToken(storedToken)
		m.state = State{
			User:   &model.User{},
			Token:  storedToken,
			Status: StatusPending,
		}
	}
	return m
}

// State returns a snapshot of the current session.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsAuthenticated reports whether the session is confirmed.
func (m *Manager) IsAuthenticated() bool {
	return m.State().Status == StatusAuthenticated
}

// Login exchanges credentials for a session. A rejection is recorded on
// the state (for the login form) and returned; the process never dies here.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.mu.Lock()
	m.state.Status = StatusPending
	m.state.Err = nil
	m.mu.Unlock()

	session, err := m.client.Login(ctx, email, password)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = State{Status: StatusUnauthenticated, Err: err}
		return err
	}

	m.client.SetToken(session.Token)
	m.state = State{
		User:   &session.User,
		Token:  session.Token,
		Status: StatusAuthenticated,
	}
	_ = m.persist(session.Token)
	return nil
}

// Validate confirms a pending session against the server. On failure the
// persisted token is purged and the session reverts to unauthenticated.
func (m *Manager) Validate(ctx context.Context) error {
	if m.State().Status != StatusPending {
		return nil
	}

	user, err := m.client.Me(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.client.SetToken("")
		_ = m.persist("")
		m.state = State{Status: StatusUnauthenticated, Err: err}
		return err
	}

	m.state.User = user
	m.state.Status = StatusAuthenticated
	m.state.Err = nil
	return nil
}

// Refresh exchanges the current token for a fresh one. An unauthorized
// response ends the session; other errors leave it intact.
func (m *Manager) Refresh(ctx context.Context) error {
	session, err := m.client.RefreshToken(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			m.client.SetToken("")
			_ = m.persist("")
			m.state = State{Status: StatusUnauthenticated, Err: err}
		}
		return err
	}

	m.client.SetToken(session.Token)
	m.state.Token = session.Token
	m.state.User = &session.User
	m.state.Status = StatusAuthenticated
	_ = m.persist(session.Token)
	return nil
}

// Logout synchronously clears the session and the persisted token.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.client.SetToken("")
	_ = m.persist("")
	m.state = State{Status: StatusUnauthenticated}
}
