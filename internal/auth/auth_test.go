package auth

import (
	"context"
	"errors"
	"testing"

	"pantry/internal/api"
	"pantry/internal/model"
)

// fakeClient is a scripted API client.
type fakeClient struct {
	token      string
	loginErr   error
	meErr      error
	refreshErr error
	user       model.User
}

func (f *fakeClient) Login(_ context.Context, email, _ string) (*api.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.user.Email = email
	return &api.Session{Token: "tok-login", User: f.user}, nil
}

func (f *fakeClient) Me(_ context.Context) (*model.User, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	u := f.user
	return &u, nil
}

func (f *fakeClient) RefreshToken(_ context.Context) (*api.Session, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return &api.Session{Token: "tok-refreshed", User: f.user}, nil
}

func (f *fakeClient) SetToken(token string) { f.token = token }

// tokenRecorder captures what gets persisted.
type tokenRecorder struct {
	saved   []string
	current string
}

func (r *tokenRecorder) persist(token string) error {
	r.saved = append(r.saved, token)
	r.current = token
	return nil
}

func TestFreshManagerUnauthenticated(t *testing.T) {
	m := NewManager(&fakeClient{}, (&tokenRecorder{}).persist, "")
	if got := m.State().Status; got != StatusUnauthenticated {
		t.Errorf("Status = %d, want unauthenticated", got)
	}
}

func TestStoredTokenStartsPending(t *testing.T) {
	fc := &fakeClient{}
	m := NewManager(fc, (&tokenRecorder{}).persist, "tok-stored")

	st := m.State()
	if st.Status != StatusPending {
		t.Errorf("Status = %d, want pending", st.Status)
	}
	if st.User == nil {
		t.Error("User is nil, want placeholder")
	}
	if fc.token != "tok-stored" {
		t.Errorf("client token = %q, want tok-stored", fc.token)
	}
	if m.IsAuthenticated() {
		t.Error("IsAuthenticated() = true before validation")
	}
}

func TestValidateConfirmsPendingSession(t *testing.T) {
	fc := &fakeClient{user: model.User{ID: "u1", Name: "Sam"}}
	m := NewManager(fc, (&tokenRecorder{}).persist, "tok-stored")

	if err := m.Validate(context.Background()); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	st := m.State()
	if st.Status != StatusAuthenticated {
		t.Errorf("Status = %d, want authenticated", st.Status)
	}
	if st.User == nil || st.User.ID != "u1" {
		t.Errorf("User = %+v, want the validated account", st.User)
	}
}

func TestValidateFailurePurgesToken(t *testing.T) {
	fc := &fakeClient{meErr: api.ErrUnauthorized}
	rec := &tokenRecorder{}
	m := NewManager(fc, rec.persist, "tok-expired")

	if err := m.Validate(context.Background()); err == nil {
		t.Fatal("Validate returned nil for expired token")
	}
	if m.State().Status != StatusUnauthenticated {
		t.Errorf("Status = %d, want unauthenticated", m.State().Status)
	}
	if rec.current != "" {
		t.Errorf("persisted token = %q, want cleared", rec.current)
	}
	if fc.token != "" {
		t.Errorf("client token = %q, want cleared", fc.token)
	}
}

func TestLoginFailureRecordsError(t *testing.T) {
	wantErr := errors.New("bad credentials")
	m := NewManager(&fakeClient{loginErr: wantErr}, (&tokenRecorder{}).persist, "")

	err := m.Login(context.Background(), "sam@example.com", "nope")
	if !errors.Is(err, wantErr) {
		t.Fatalf("Login = %v, want %v", err, wantErr)
	}
	st := m.State()
	if st.Status != StatusUnauthenticated {
		t.Errorf("Status = %d, want unauthenticated", st.Status)
	}
	if !errors.Is(st.Err, wantErr) {
		t.Errorf("state Err = %v, want recorded login error", st.Err)
	}
}

func TestLoginSuccessPersistsToken(t *testing.T) {
	rec := &tokenRecorder{}
	m := NewManager(&fakeClient{user: model.User{ID: "u1"}}, rec.persist, "")

	if err := m.Login(context.Background(), "sam@example.com", "hunter2"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !m.IsAuthenticated() {
		t.Error("IsAuthenticated() = false after login")
	}
	if rec.current != "tok-login" {
		t.Errorf("persisted token = %q, want tok-login", rec.current)
	}
}

func TestLogoutClearsSessionAndPersistedToken(t *testing.T) {
	rec := &tokenRecorder{}
	fc := &fakeClient{}
	m := NewManager(fc, rec.persist, "")
	if err := m.Login(context.Background(), "sam@example.com", "hunter2"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	m.Logout()

	st := m.State()
	if st.Status != StatusUnauthenticated || st.Token != "" || st.User != nil {
		t.Errorf("state after logout = %+v", st)
	}
	if rec.current != "" {
		t.Errorf("persisted token = %q, want cleared", rec.current)
	}
	if fc.token != "" {
		t.Errorf("client token = %q, want cleared", fc.token)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	rec := &tokenRecorder{}
	m := NewManager(&fakeClient{}, rec.persist, "")
	if err := m.Login(context.Background(), "sam@example.com", "hunter2"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if m.State().Token != "tok-refreshed" {
		t.Errorf("Token = %q, want tok-refreshed", m.State().Token)
	}
	if rec.current != "tok-refreshed" {
		t.Errorf("persisted token = %q, want tok-refreshed", rec.current)
	}
}

func TestRefreshUnauthorizedEndsSession(t *testing.T) {
	rec := &tokenRecorder{}
	fc := &fakeClient{}
	m := NewManager(fc, rec.persist, "")
	if err := m.Login(context.Background(), "sam@example.com", "hunter2"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	fc.refreshErr = api.ErrUnauthorized
	if err := m.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh returned nil for unauthorized")
	}
	if m.State().Status != StatusUnauthenticated {
		t.Errorf("Status = %d, want unauthenticated", m.State().Status)
	}
	if rec.current != "" {
		t.Errorf("persisted token = %q, want cleared", rec.current)
	}
}
