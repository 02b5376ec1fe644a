package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fintrack/internal/core"
)

func newParser(t *testing.T, body, contentType string) *RequestBodyParser {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	p := NewRequestBodyParser(req)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return p
}

func TestRequestBodyParser_JSONAndForm(t *testing.T) {
	tests := []struct {
		name string
		body string
		json bool
	}{
		{"json", `{"description":"  Pizza\u0007 ","amount":12.5,"date":"2025-03-02"}`, true},
		{"form", "description=+Pizza+&amount=12%2C50&date=2025-03-02", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParser(t, tt.body, "")
			if p.IsJSON() != tt.json {
				t.Fatalf("IsJSON() = %v", p.IsJSON())
			}
			if got := p.Get("description"); got != "Pizza" {
				t.Fatalf("Get(description) = %q", got)
			}
			m, ok, err := p.Money("amount")
			if err != nil || !ok || m.Cents != 1250 {
				t.Fatalf("Money(amount) = %v, %v, %v", m, ok, err)
			}
			d, err := p.Date("date")
			if err != nil || !d.Equal(core.NewDate(2025, 3, 2).Time) {
				t.Fatalf("Date(date) = %v, %v", d, err)
			}
			if p.Has("missing") || p.Get("missing") != "" || p.Optional("missing") != nil {
				t.Fatal("missing key should be absent")
			}
		})
	}
}

func TestRequestBodyParser_Malformed(t *testing.T) {
	for _, body := range []string{`{"amount":`, `[1,2]`, strings.Repeat("a", maxBodyBytes+10)} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if err := NewRequestBodyParser(req).Parse(); !errors.Is(err, ErrMalformedBody) {
			t.Fatalf("Parse(%.20q) error = %v, want ErrMalformedBody", body, err)
		}
	}
}

func TestRequestBodyParser_Optional(t *testing.T) {
	p := newParser(t, `{"title":"","target_amount":null,"current_amount":"7"}`, "application/json")

	if title := p.Optional("title"); title == nil || *title != "" {
		t.Fatalf("Optional(title) = %v, want pointer to empty string", title)
	}
	if m, err := p.OptionalMoney("target_amount"); err != nil || m != nil {
		t.Fatalf("OptionalMoney(null) = %v, %v", m, err)
	}
	m, err := p.OptionalMoney("current_amount")
	if err != nil || m == nil || m.Cents != 700 {
		t.Fatalf("OptionalMoney(current_amount) = %v, %v", m, err)
	}

	bad := newParser(t, `{"amount":"-3","date":"03/02/2025"}`, "")
	if _, _, err := bad.Money("amount"); !errors.Is(err, core.ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
	if _, err := bad.Date("date"); !errors.Is(err, core.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestRequestBodyParser_Strings(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"json array", `{"ids":["a"," b ",""]}`, []string{"a", "b"}},
		{"json csv", `{"ids":"a,b"}`, []string{"a", "b"}},
		{"form repeated", "ids=a&ids=b,c", []string{"a", "b", "c"}},
		{"absent", `{}`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, newParser(t, tt.body, "").Strings("ids")); diff != "" {
				t.Fatalf("Strings() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseReferenceDate(t *testing.T) {
	d, err := parseReferenceDate(url.Values{})
	if err != nil || !d.IsZero() {
		t.Fatalf("empty date = %v, %v", d, err)
	}
	d, err = parseReferenceDate(url.Values{"date": {"2024-02-29"}})
	if err != nil || d.String() != "2024-02-29" {
		t.Fatalf("date = %v, %v", d, err)
	}
	if _, err := parseReferenceDate(url.Values{"date": {"tomorrow"}}); !errors.Is(err, core.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("  a\x00b\tc\n "); got != "ab\tc" {
		t.Fatalf("sanitizeInput() = %q", got)
	}
}
