package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{"12,345", 1235, true},
		{" 2.50 ", 250, true},
		{"0", 0, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestParseAmountNegativeSentinel(t *testing.T) {
	if _, err := ParseAmount("-5"); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestMoneyString(t *testing.T) {
	cases := map[int64]string{
		0:      "0.00",
		5:      "0.05",
		1205:   "12.05",
		-1205:  "-12.05",
		100000: "1000.00",
	}
	for cents, want := range cases {
		if got := (Money{Cents: cents}).String(); got != want {
			t.Fatalf("%d: expected %q, got %q", cents, want, got)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A Money `json:"a"`
	}{Money{Cents: -4550}})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"a":-45.50}` {
		t.Fatalf("unexpected json %s", b)
	}

	var in struct {
		A Money `json:"a"`
		B Money `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a":12.5,"b":"3,20"}`), &in); err != nil {
		t.Fatal(err)
	}
	if in.A.Cents != 1250 || in.B.Cents != 320 {
		t.Fatalf("unexpected decode %+v", in)
	}
	if err := json.Unmarshal([]byte(`{"a":-1}`), &in); err == nil {
		t.Fatal("expected error for negative amount")
	}
}

func TestPercentOfRoundsHalfUp(t *testing.T) {
	cases := []struct {
		part, whole int64
		want        int
	}{
		{450, 500, 90},
		{1, 8, 13},
		{-1, 8, -12},
		{-3, 8, -38},
		{1, 3, 33},
		{-500, 100, -500},
	}
	for _, tc := range cases {
		if got := percentOf(tc.part, tc.whole); got != tc.want {
			t.Fatalf("percentOf(%d, %d) = %d, want %d", tc.part, tc.whole, got, tc.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		m    Money
		code string
		want string
	}{
		{Money{Cents: 123450}, "EUR", "€1,234.50"},
		{Money{Cents: 5}, "USD", "$0.05"},
		{Money{Cents: -1000}, "usd", "-$10.00"},
		{Money{Cents: 100}, "XYZ", "$1.00"},
		{Money{Cents: 123456789}, "GBP", "£1,234,567.89"},
	}
	for _, tc := range cases {
		if got := FormatMoney(tc.m, tc.code); got != tc.want {
			t.Fatalf("FormatMoney(%d, %s) = %q, want %q", tc.m.Cents, tc.code, got, tc.want)
		}
	}
}

func TestParseCurrency(t *testing.T) {
	got, err := ParseCurrency(" eur ")
	if err != nil || got != "EUR" {
		t.Fatalf("expected EUR, got %q (err=%v)", got, err)
	}
	for _, bad := range []string{"", "EURO", "12"} {
		if _, err := ParseCurrency(bad); !errors.Is(err, ErrInvalidCurrency) {
			t.Fatalf("%q expected ErrInvalidCurrency, got %v", bad, err)
		}
	}
}
