package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"pantry/internal/api"
	"pantry/internal/auth"
	"pantry/internal/config"
	"pantry/internal/model"
)

// scriptedAuthClient satisfies auth.Client for app-level tests.
type scriptedAuthClient struct {
	user model.User
}

func (c *scriptedAuthClient) Login(_ context.Context, email, _ string) (*api.Session, error) {
	c.user.Email = email
	return &api.Session{Token: "tok", User: c.user}, nil
}

func (c *scriptedAuthClient) Me(_ context.Context) (*model.User, error) {
	u := c.user
	return &u, nil
}

func (c *scriptedAuthClient) RefreshToken(_ context.Context) (*api.Session, error) {
	return &api.Session{Token: "tok-fresh", User: c.user}, nil
}

func (c *scriptedAuthClient) SetToken(string) {}

func signedInApp(t *testing.T) App {
	t.Helper()
	a := NewApp(config.DefaultConfig())
	mgr := auth.NewManager(&scriptedAuthClient{}, func(string) error { return nil }, "")
	if err := mgr.Login(context.Background(), "sam@example.com", "hunter2"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	a.auth = mgr
	a.width, a.height = 100, 30
	return a
}

func TestSupersededFetchResponseIsDropped(t *testing.T) {
	a := NewApp(config.DefaultConfig())
	a.seq = 2
	a.loaded = true
	a.receipts = []model.Receipt{{ID: "current", StoreName: "Fresh Mart"}}

	updated, _ := a.Update(dataMsg{
		seq:       1,
		receipts:  []model.Receipt{{ID: "old", StoreName: "Slow Response Mart"}},
		budgets:   nil,
		fetchedAt: time.Now(),
	})

	got := updated.(App)
	if len(got.receipts) != 1 || got.receipts[0].ID != "current" {
		t.Fatalf("receipts = %+v, want the newer data kept", got.receipts)
	}
}

func TestLatestFetchResponseLands(t *testing.T) {
	a := NewApp(config.DefaultConfig())
	a.seq = 2

	updated, _ := a.Update(dataMsg{
		seq:       2,
		receipts:  []model.Receipt{{ID: "r1"}},
		fetchedAt: time.Now(),
	})

	got := updated.(App)
	if !got.loaded {
		t.Fatal("loaded = false after matching-seq dataMsg")
	}
	if len(got.receipts) != 1 || got.receipts[0].ID != "r1" {
		t.Fatalf("receipts = %+v", got.receipts)
	}
}

func TestFirstLoadFailureShowsErrorBanner(t *testing.T) {
	a := signedInApp(t)
	a.seq = 1

	updated, _ := a.Update(dataMsg{seq: 1, err: errors.New("connection refused")})

	got := updated.(App)
	if !got.loaded {
		t.Fatal("loaded = false after a failed first load; view would spin forever")
	}
	if got.dataErr == nil {
		t.Fatal("dataErr = nil, want the fetch error kept for the banner")
	}
	view := got.View()
	if !strings.Contains(view, "connection refused") {
		t.Error("view does not surface the fetch error")
	}
	if !strings.Contains(view, got.loc.T("common.dismiss")) {
		t.Error("view does not offer the dismiss hint")
	}
}

func TestFailedRefreshWithLiveSessionShowsBanner(t *testing.T) {
	a := signedInApp(t)

	updated, _ := a.Update(refreshDoneMsg{err: errors.New("gateway timeout")})

	got := updated.(App)
	if !got.loaded {
		t.Fatal("loaded = false after a network-failed refresh with the session intact")
	}
	if got.dataErr == nil || got.dataErr.Error() != "gateway timeout" {
		t.Fatalf("dataErr = %v", got.dataErr)
	}
}

func TestVisibleReceiptsSortedAndFiltered(t *testing.T) {
	a := NewApp(config.DefaultConfig())
	a.receipts = []model.Receipt{
		{ID: "a", StoreName: "Alpha", PurchaseDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Status: model.StatusCompleted},
		{ID: "b", StoreName: "Beta", PurchaseDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Status: model.StatusFailed},
		{ID: "c", StoreName: "Alpha Express", PurchaseDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Status: model.StatusCompleted},
	}

	visible := a.visibleReceipts()
	if len(visible) != 3 || visible[0].ID != "b" || visible[2].ID != "a" {
		t.Fatalf("unfiltered order = %v, want newest first", ids(visible))
	}

	a.rcpt.filters.StoreName = "alpha"
	visible = a.visibleReceipts()
	if len(visible) != 2 || visible[0].ID != "c" {
		t.Fatalf("store-filtered = %v", ids(visible))
	}

	a.rcpt.filters.Statuses = []model.ReceiptStatus{model.StatusFailed}
	if visible = a.visibleReceipts(); len(visible) != 0 {
		t.Fatalf("combined filters = %v, want none", ids(visible))
	}
}

func TestMonthDeltasAgainstPreviousMonth(t *testing.T) {
	a := NewApp(config.DefaultConfig())
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	a.receipts = []model.Receipt{
		{ID: "cur", TotalAmount: 30, PurchaseDate: now},
		{ID: "prev1", TotalAmount: 10, PurchaseDate: monthStart.AddDate(0, 0, -2)},
		{ID: "prev2", TotalAmount: 10, PurchaseDate: monthStart.AddDate(0, 0, -4)},
	}

	spent, count, _ := a.monthDeltas("USD")
	if !strings.HasPrefix(spent, "+$10.00") {
		t.Errorf("spent delta = %q, want +$10.00 prefix", spent)
	}
	if !strings.HasPrefix(count, "-1") {
		t.Errorf("count delta = %q, want -1 prefix", count)
	}
}

func TestMonthDeltasEmptyWithoutPriorMonth(t *testing.T) {
	a := NewApp(config.DefaultConfig())
	a.receipts = []model.Receipt{{ID: "cur", TotalAmount: 30, PurchaseDate: time.Now()}}

	spent, count, avg := a.monthDeltas("USD")
	if spent != "" || count != "" || avg != "" {
		t.Errorf("deltas = %q %q %q, want empty without a prior month", spent, count, avg)
	}
}

func TestReceiptListWindowFollowsCursor(t *testing.T) {
	a := NewApp(config.DefaultConfig())
	for i := 0; i < 40; i++ {
		a.receipts = append(a.receipts, model.Receipt{
			ID:           fmt.Sprintf("r%02d", i),
			StoreName:    fmt.Sprintf("Store %02d", i),
			PurchaseDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -i),
			Status:       model.StatusCompleted,
		})
	}
	a.rcpt.cursor = 39

	out := a.renderReceiptsTab(80, 12)
	if !strings.Contains(out, "Store 39") {
		t.Error("list window does not include the cursor row")
	}
	if strings.Contains(out, "Store 00") {
		t.Error("list window still shows the top of the list")
	}
	if !strings.Contains(out, "40/40") {
		t.Error("position footer missing")
	}
}

func ids(receipts []model.Receipt) []string {
	out := make([]string, len(receipts))
	for i, r := range receipts {
		out[i] = r.ID
	}
	return out
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("supermercado", 6); got != "super…" {
		t.Errorf("truncStr = %q", got)
	}
	if got := truncStr("ok", 6); got != "ok" {
		t.Errorf("truncStr short = %q", got)
	}
	if got := truncStr("anything", 0); got != "" {
		t.Errorf("truncStr zero = %q", got)
	}
}

func TestPadAndTruncateHeight(t *testing.T) {
	if got := padHeight("a\nb", 4); got != "a\nb\n\n" {
		t.Errorf("padHeight = %q", got)
	}
	if got := truncateHeight("a\nb\nc", 2); got != "a\nb" {
		t.Errorf("truncateHeight = %q", got)
	}
}

func TestHumanAge(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{49 * time.Hour, "2d ago"},
	}
	for _, c := range cases {
		if got := humanAge(c.d); got != c.want {
			t.Errorf("humanAge(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestDayLabel(t *testing.T) {
	first := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	if got := dayLabel(first, 0, 30); got != "Feb" {
		t.Errorf("first label = %q", got)
	}
	boundary := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := dayLabel(boundary, 2, 30); got != "Mar" {
		t.Errorf("month boundary label = %q", got)
	}
	mid := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if got := dayLabel(mid, 15, 30); got != "14" {
		t.Errorf("mid label = %q", got)
	}
}
