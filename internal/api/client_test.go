package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pantry/internal/model"
)

func respond(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: raw}); err != nil {
		t.Fatalf("encode envelope: %v", err)
	}
}

func TestListReceiptsEncodesFilters(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/receipts" {
			t.Errorf("path = %q, want /receipts", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		respond(t, w, []model.Receipt{{ID: "r1", StoreName: "Fresh Mart"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	receipts, err := c.ListReceipts(context.Background(), model.ReceiptFilters{
		Statuses:  []model.ReceiptStatus{model.StatusCompleted, model.StatusFailed},
		StoreName: "mart",
	})
	if err != nil {
		t.Fatalf("ListReceipts: %v", err)
	}
	if len(receipts) != 1 || receipts[0].ID != "r1" {
		t.Fatalf("receipts = %+v", receipts)
	}
	want := "status=COMPLETED&status=FAILED&store=mart"
	if gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
}

func TestUnauthorizedReturnsSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "expired")
	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestEnvelopeErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: "total_amount must be positive"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	_, err := c.CreateReceipt(context.Background(), model.Receipt{StoreName: "x"})
	if err == nil {
		t.Fatal("CreateReceipt returned nil error")
	}
	if got := err.Error(); got != "api: total_amount must be positive" {
		t.Errorf("err = %q", got)
	}
}

func TestLoginSendsCredentialsAndParsesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode login request: %v", err)
		}
		if req.Email != "sam@example.com" || req.Password != "hunter2" {
			t.Errorf("credentials = %q/%q", req.Email, req.Password)
		}
		respond(t, w, Session{Token: "tok-new", User: model.User{ID: "u1", Email: req.Email}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	s, err := c.Login(context.Background(), "sam@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if s.Token != "tok-new" || s.User.ID != "u1" {
		t.Errorf("session = %+v", s)
	}
}

func TestAuthorizationHeaderSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
			t.Errorf("Authorization = %q", got)
		}
		respond(t, w, []model.Budget{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-abc")
	if _, err := c.ListBudgets(context.Background()); err != nil {
		t.Fatalf("ListBudgets: %v", err)
	}
}

func TestDeleteReceiptEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/receipts/r9" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	if err := c.DeleteReceipt(context.Background(), "r9"); err != nil {
		t.Fatalf("DeleteReceipt: %v", err)
	}
}
