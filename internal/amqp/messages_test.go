package amqp

import (
	"errors"
	"testing"
	"time"
)

func TestNewLedgerEvent(t *testing.T) {
	ev := NewLedgerEvent(EventIncomeCreated, "u1", "i1")

	if ev.Type != EventIncomeCreated || ev.UserID != "u1" || ev.RecordID != "i1" {
		t.Fatalf("unexpected event %+v", ev)
	}
	if time.Since(ev.Timestamp) > time.Second {
		t.Error("timestamp should be recent")
	}
}

func TestLedgerEvent_JSON(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ev := LedgerEvent{Type: EventExpenseDeleted, UserID: "u1", RecordID: "e1", Timestamp: ts}

	body, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	want := `{"type":"expense.deleted","user_id":"u1","record_id":"e1","timestamp":"2025-03-01T12:00:00Z"}`
	if string(body) != want {
		t.Fatalf("ToJSON() = %s, want %s", body, want)
	}

	parsed, err := LedgerEventFromJSON(body)
	if err != nil {
		t.Fatalf("LedgerEventFromJSON() error = %v", err)
	}
	if parsed.Type != ev.Type || parsed.UserID != ev.UserID || parsed.RecordID != ev.RecordID || !parsed.Timestamp.Equal(ts) {
		t.Fatalf("parsed %+v, want %+v", parsed, ev)
	}
}

func TestLedgerEventFromJSON_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"type":`},
		{"unknown type", `{"type":"goal.created","user_id":"u1","record_id":"g1"}`},
		{"missing record", `{"type":"expense.created","user_id":"u1"}`},
		{"missing user", `{"type":"account.deleted"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LedgerEventFromJSON([]byte(tt.body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	_, err := LedgerEventFromJSON([]byte(`{"type":"goal.created","user_id":"u1"}`))
	if !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
}

func TestAccountDeletedNeedsNoRecord(t *testing.T) {
	if err := NewLedgerEvent(EventAccountDeleted, "u1", "").Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}
