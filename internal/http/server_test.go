package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

const testSecret = "test-secret-at-least-32-bytes-long!!"

var testNow = time.Date(2025, 3, 18, 10, 0, 0, 0, time.UTC)

type testServer struct {
	*Server
	verifier *auth.Verifier
}

func quietLogger() *log.Logger {
	return log.New(log.Config{Level: log.ParseLevel("error"), Format: "text", Output: io.Discard})
}

func newTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	logger := quietLogger()
	deps := services.Deps{Clock: services.FixedClock(testNow), Logger: logger}
	analytics := services.NewAnalyticsService(repo, cache.NewLRUCache[core.Report](10, time.Minute), deps)
	deps.Invalidator = analytics

	verifier := auth.NewVerifier(testSecret, "")
	opts.Verifier = verifier
	opts.Logger = logger
	if opts.Store == nil {
		opts.Store = repo
	}

	srv := NewServer(":0", Services{
		Ledger:    services.NewLedgerService(repo, core.DefaultCatalog(), deps),
		Shopping:  services.NewShoppingService(repo, deps),
		Goals:     services.NewGoalService(repo, deps),
		Habits:    services.NewHabitService(repo, deps),
		Accounts:  services.NewAccountService(repo, deps),
		Analytics: analytics,
	}, opts)
	t.Cleanup(func() { srv.Shutdown(context.Background()) })
	return &testServer{Server: srv, verifier: verifier}
}

func (ts *testServer) token(t *testing.T, userID string) string {
	t.Helper()
	tok, err := ts.verifier.Issue(userID, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

// do sends a request as userID; an empty userID sends no token.
func (ts *testServer) do(t *testing.T, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+ts.token(t, userID))
	}
	rr := httptest.NewRecorder()
	ts.Handler.ServeHTTP(rr, req)
	return rr
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return env
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	env := decodeEnvelope(t, rr)
	if !env.Success {
		t.Fatalf("expected success envelope, got %s", rr.Body.String())
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}

func TestHealthAndReady(t *testing.T) {
	ts := newTestServer(t, Options{})

	rr := ts.do(t, http.MethodGet, "/healthz", "", "")
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q", rr.Code, rr.Body.String())
	}

	rr = ts.do(t, http.MethodGet, "/readyz", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("readyz status = %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ready" {
		t.Fatalf("unexpected readiness body %v", body)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a request id on every response")
	}
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("expected security headers")
	}
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("database is locked") }

func TestReady_StoreDown(t *testing.T) {
	ts := newTestServer(t, Options{Store: failingPinger{}})
	rr := ts.do(t, http.MethodGet, "/readyz", "", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

func TestAPI_RequiresToken(t *testing.T) {
	ts := newTestServer(t, Options{})
	for _, path := range []string{"/api/expenses", "/api/goals", "/api/profile", "/api/unknown"} {
		rr := ts.do(t, http.MethodGet, path, "", "")
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rr := httptest.NewRecorder()
	ts.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a malformed token, got %d", rr.Code)
	}
}

func TestExpenses_CreateListDelete(t *testing.T) {
	ts := newTestServer(t, Options{})

	rr := ts.do(t, http.MethodPost, "/api/expenses", "u1",
		`{"amount":"12,50","description":"Groceries","category":"food","subcategory":"groceries"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", rr.Code, rr.Body.String())
	}
	var created struct {
		ID       string  `json:"id"`
		Amount   float64 `json:"amount"`
		Date     string  `json:"date"`
		Category string  `json:"category"`
	}
	decodeData(t, rr, &created)
	if created.Amount != 12.5 || created.Date != "2025-03-18" || created.ID == "" {
		t.Fatalf("unexpected expense %+v", created)
	}

	ts.do(t, http.MethodPost, "/api/expenses", "u2", `{"amount":5,"description":"Other user","category":"food"}`)

	rr = ts.do(t, http.MethodGet, "/api/expenses?scope=all", "u1", "")
	var list struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		Total float64 `json:"total"`
	}
	decodeData(t, rr, &list)
	if len(list.Items) != 1 || list.Total != 12.5 {
		t.Fatalf("unexpected list %+v", list)
	}

	rr = ts.do(t, http.MethodDelete, "/api/expenses/"+created.ID, "u2", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("deleting another user's expense: expected 404, got %d", rr.Code)
	}
	rr = ts.do(t, http.MethodDelete, "/api/expenses/"+created.ID, "u1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rr.Code)
	}
	rr = ts.do(t, http.MethodDelete, "/api/expenses/"+created.ID, "u1", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rr.Code)
	}
}

func TestExpenses_Rejected(t *testing.T) {
	ts := newTestServer(t, Options{})
	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"amount":`, http.StatusBadRequest},
		{"bad amount", `{"amount":"abc","description":"x"}`, http.StatusUnprocessableEntity},
		{"zero amount", `{"amount":0,"description":"x"}`, http.StatusUnprocessableEntity},
		{"missing description", `{"amount":3}`, http.StatusUnprocessableEntity},
		{"bad date", `{"amount":3,"description":"x","date":"yesterday"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.do(t, http.MethodPost, "/api/expenses", "u1", tt.body)
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.want, rr.Body.String())
			}
			if env := decodeEnvelope(t, rr); env.Success || env.Error == "" {
				t.Fatalf("expected error envelope, got %s", rr.Body.String())
			}
		})
	}
}

func TestIncome_FormBody(t *testing.T) {
	ts := newTestServer(t, Options{})
	req := httptest.NewRequest(http.MethodPost, "/api/income", strings.NewReader("source=Salary&amount=1500&date=2025-03-01"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+ts.token(t, "u1"))
	rr := httptest.NewRecorder()
	ts.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}

	rr = ts.do(t, http.MethodGet, "/api/income", "u1", "")
	var list struct {
		Total float64 `json:"total"`
	}
	decodeData(t, rr, &list)
	if list.Total != 1500 {
		t.Fatalf("total = %v", list.Total)
	}
}

func TestGoals_Lifecycle(t *testing.T) {
	ts := newTestServer(t, Options{})

	rr := ts.do(t, http.MethodPost, "/api/goals", "u1",
		`{"title":"  Trip  ","target_amount":1000,"current_amount":"250","target_date":"2025-03-28"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", rr.Code, rr.Body.String())
	}
	var g struct {
		ID            string  `json:"id"`
		Title         string  `json:"title"`
		Percent       int     `json:"percent"`
		TargetDate    *string `json:"target_date"`
		DaysRemaining *int    `json:"days_remaining"`
	}
	decodeData(t, rr, &g)
	if g.Title != "Trip" || g.Percent != 25 || g.DaysRemaining == nil || *g.DaysRemaining != 10 {
		t.Fatalf("unexpected goal %+v", g)
	}

	rr = ts.do(t, http.MethodPatch, "/api/goals/"+g.ID, "u1", `{}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("empty update: expected 422, got %d", rr.Code)
	}

	rr = ts.do(t, http.MethodPatch, "/api/goals/"+g.ID, "u1", `{"current_amount":500,"target_date":""}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("update status = %d body=%s", rr.Code, rr.Body.String())
	}
	g.TargetDate, g.DaysRemaining = nil, nil
	decodeData(t, rr, &g)
	if g.Percent != 50 || g.TargetDate != nil || g.DaysRemaining != nil {
		t.Fatalf("unexpected updated goal %+v", g)
	}

	rr = ts.do(t, http.MethodPatch, "/api/goals/missing", "u1", `{"title":"x"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	rr = ts.do(t, http.MethodGet, "/api/goals", "u1", "")
	var list struct {
		Goals []json.RawMessage `json:"goals"`
	}
	decodeData(t, rr, &list)
	if len(list.Goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(list.Goals))
	}

	if rr := ts.do(t, http.MethodDelete, "/api/goals/"+g.ID, "u1", ""); rr.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rr.Code)
	}
}

func TestHabits_Toggle(t *testing.T) {
	ts := newTestServer(t, Options{})

	rr := ts.do(t, http.MethodPost, "/api/habits", "u1", `{"title":"No takeout","category":"saving","frequency":"daily"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", rr.Code, rr.Body.String())
	}
	var h struct {
		ID             string `json:"id"`
		CurrentStreak  int    `json:"current_streak"`
		CompletedToday bool   `json:"completed_today"`
	}
	decodeData(t, rr, &h)

	rr = ts.do(t, http.MethodPost, "/api/habits/"+h.ID+"/toggle", "u1", "")
	decodeData(t, rr, &h)
	if !h.CompletedToday || h.CurrentStreak != 1 {
		t.Fatalf("after toggle: %+v", h)
	}

	rr = ts.do(t, http.MethodPost, "/api/habits/"+h.ID+"/toggle", "u1", "")
	decodeData(t, rr, &h)
	if h.CompletedToday || h.CurrentStreak != 0 {
		t.Fatalf("after second toggle: %+v", h)
	}

	if rr := ts.do(t, http.MethodPost, "/api/habits/"+h.ID+"/toggle", "u2", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("foreign toggle: expected 404, got %d", rr.Code)
	}
}

func TestShopping_AddAndToggle(t *testing.T) {
	ts := newTestServer(t, Options{})

	rr := ts.do(t, http.MethodPost, "/api/shopping/groceries/items", "u1", `{"name":"Milk","estimated_cost":"2.50"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("add status = %d body=%s", rr.Code, rr.Body.String())
	}
	var item struct {
		ID          string `json:"id"`
		IsPurchased bool   `json:"is_purchased"`
	}
	decodeData(t, rr, &item)

	rr = ts.do(t, http.MethodPost, "/api/shopping/items/"+item.ID+"/toggle", "u1", "")
	decodeData(t, rr, &item)
	if !item.IsPurchased {
		t.Fatal("expected item to be purchased after toggle")
	}

	if rr := ts.do(t, http.MethodGet, "/api/shopping/spaceships", "u1", ""); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unknown category: expected 422, got %d", rr.Code)
	}
}

func TestProfile_Update(t *testing.T) {
	ts := newTestServer(t, Options{})

	rr := ts.do(t, http.MethodGet, "/api/profile", "u1", "")
	var p struct {
		Currency       string  `json:"currency"`
		CurrencySymbol string  `json:"currency_symbol"`
		MonthlyIncome  float64 `json:"monthly_income"`
	}
	decodeData(t, rr, &p)
	if p.Currency != core.DefaultCurrency {
		t.Fatalf("default currency = %q", p.Currency)
	}

	rr = ts.do(t, http.MethodPut, "/api/profile", "u1", `{"currency":"eur","monthly_income":"2500"}`)
	decodeData(t, rr, &p)
	if p.Currency != "EUR" || p.CurrencySymbol != "€" || p.MonthlyIncome != 2500 {
		t.Fatalf("unexpected profile %+v", p)
	}

	if rr := ts.do(t, http.MethodPut, "/api/profile", "u1", `{"currency":"EURO"}`); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad currency: expected 422, got %d", rr.Code)
	}
}

func TestAnalytics(t *testing.T) {
	ts := newTestServer(t, Options{})
	ts.do(t, http.MethodPost, "/api/expenses", "u1", `{"amount":40,"description":"Dinner","category":"food"}`)

	rr := ts.do(t, http.MethodGet, "/api/analytics?period=monthly", "u1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	var report struct {
		Breakdown []json.RawMessage `json:"category_breakdown"`
	}
	decodeData(t, rr, &report)
	if len(report.Breakdown) == 0 {
		t.Fatalf("expected a category breakdown, got %s", rr.Body.String())
	}

	if rr := ts.do(t, http.MethodGet, "/api/analytics?date=03/18", "u1", ""); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad date: expected 422, got %d", rr.Code)
	}
}

func TestDeleteUser(t *testing.T) {
	ts := newTestServer(t, Options{})
	ts.do(t, http.MethodPost, "/api/expenses", "u1", `{"amount":9,"description":"Lunch","category":"food"}`)

	send := func(method, body, bearerUser string) (int, map[string]string) {
		req := httptest.NewRequest(method, "/functions/v1/delete-user", strings.NewReader(body))
		if bearerUser != "" {
			req.Header.Set("Authorization", "Bearer "+ts.token(t, bearerUser))
		}
		rr := httptest.NewRecorder()
		ts.Handler.ServeHTTP(rr, req)
		var out map[string]string
		if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %q: %v", rr.Body.String(), err)
		}
		return rr.Code, out
	}

	tests := []struct {
		name   string
		method string
		body   string
		bearer string
		status int
		key    string
		msg    string
	}{
		{"wrong method", http.MethodGet, "", "u1", http.StatusMethodNotAllowed, "error", "Method Not Allowed"},
		{"missing user id", http.MethodPost, `{}`, "u1", http.StatusBadRequest, "error", "User ID is required"},
		{"no token", http.MethodPost, `{"userId":"u1"}`, "", http.StatusUnauthorized, "error", "Invalid token"},
		{"other user", http.MethodPost, `{"userId":"u1"}`, "u2", http.StatusForbidden, "error", "Cannot delete another user's account"},
		{"own account", http.MethodPost, `{"userId":"u1"}`, "u1", http.StatusOK, "message", "User and profile deleted successfully"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := send(tt.method, tt.body, tt.bearer)
			if status != tt.status || body[tt.key] != tt.msg {
				t.Fatalf("got %d %v, want %d %s=%q", status, body, tt.status, tt.key, tt.msg)
			}
		})
	}

	rr := ts.do(t, http.MethodGet, "/api/expenses?scope=all", "u1", "")
	var list struct {
		Items []json.RawMessage `json:"items"`
	}
	decodeData(t, rr, &list)
	if len(list.Items) != 0 {
		t.Fatalf("expected no expenses after account deletion, got %d", len(list.Items))
	}
}

func TestRateLimit_MutationsOnly(t *testing.T) {
	ts := newTestServer(t, Options{RateLimitPerMinute: 2})

	for i := 0; i < 5; i++ {
		if rr := ts.do(t, http.MethodGet, "/api/goals", "u1", ""); rr.Code != http.StatusOK {
			t.Fatalf("GET %d: status %d", i, rr.Code)
		}
	}
	for i := 0; i < 2; i++ {
		if rr := ts.do(t, http.MethodPost, "/api/habits", "u1", `{"title":"Walk"}`); rr.Code != http.StatusCreated {
			t.Fatalf("POST %d: status %d", i, rr.Code)
		}
	}
	rr := ts.do(t, http.MethodPost, "/api/habits", "u1", `{"title":"Walk"}`)
	if rr.Code != http.StatusTooManyRequests || rr.Header().Get("Retry-After") == "" {
		t.Fatalf("expected 429 with Retry-After, got %d", rr.Code)
	}
}

func TestUnknownAPIRoute(t *testing.T) {
	ts := newTestServer(t, Options{})
	rr := ts.do(t, http.MethodGet, "/api/nothing-here", "u1", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if env := decodeEnvelope(t, rr); env.Success || env.Error != "Not found" {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
}

func TestShutdown_Idempotent(t *testing.T) {
	ts := newTestServer(t, Options{})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := ts.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if err := ts.Shutdown(ctx); err != nil {
		t.Fatalf("second Shutdown() error = %v", err)
	}
}
