package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// EventType names a ledger mutation.
type EventType string

const (
	EventExpenseCreated EventType = "expense.created"
	EventExpenseDeleted EventType = "expense.deleted"
	EventIncomeCreated  EventType = "income.created"
	EventIncomeDeleted  EventType = "income.deleted"
	EventAccountDeleted EventType = "account.deleted"
)

var ErrUnknownEvent = errors.New("unknown ledger event type")

// LedgerEvent is the message published after a ledger mutation. It only
// carries identifiers; the worker reads the full record from the database.
type LedgerEvent struct {
	Type      EventType `json:"type"`
	UserID    string    `json:"user_id"`
	RecordID  string    `json:"record_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEvent(t EventType, userID, recordID string) LedgerEvent {
	return LedgerEvent{
		Type:      t,
		UserID:    userID,
		RecordID:  recordID,
		Timestamp: time.Now().UTC(),
	}
}

// Validate rejects events the worker could never process.
func (e LedgerEvent) Validate() error {
	switch e.Type {
	case EventExpenseCreated, EventExpenseDeleted, EventIncomeCreated, EventIncomeDeleted:
		if e.RecordID == "" {
			return fmt.Errorf("%s: missing record id", e.Type)
		}
	case EventAccountDeleted:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}
	if e.UserID == "" {
		return fmt.Errorf("%s: missing user id", e.Type)
	}
	return nil
}

func (e LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON decodes and validates a message body.
func LedgerEventFromJSON(data []byte) (LedgerEvent, error) {
	var ev LedgerEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return LedgerEvent{}, err
	}
	if err := ev.Validate(); err != nil {
		return LedgerEvent{}, err
	}
	return ev, nil
}
