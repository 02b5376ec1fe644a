package memory

import (
	"context"
	"errors"
	"sync"

	"fintrack/internal/sheets"
)

var ErrMissingRecordID = errors.New("ledger row without record id")

// Store is an in-process ledger sink used in development and tests.
type Store struct {
	mu   sync.Mutex
	rows []sheets.LedgerRow
}

var _ sheets.LedgerSink = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Append stores row once per record id.
func (s *Store) Append(_ context.Context, row sheets.LedgerRow) error {
	if row.RecordID == "" {
		return ErrMissingRecordID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.RecordID == row.RecordID {
			return nil
		}
	}
	s.rows = append(s.rows, row)
	return nil
}

func (s *Store) DeleteRecord(_ context.Context, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = filter(s.rows, func(r sheets.LedgerRow) bool { return r.RecordID != recordID })
	return nil
}

func (s *Store) DeleteUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = filter(s.rows, func(r sheets.LedgerRow) bool { return r.UserID != userID })
	return nil
}

// ListRows returns the user's rows in insertion order.
func (s *Store) ListRows(_ context.Context, userID string) ([]sheets.LedgerRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sheets.LedgerRow, 0)
	for _, r := range s.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func filter(rows []sheets.LedgerRow, keep func(sheets.LedgerRow) bool) []sheets.LedgerRow {
	out := rows[:0]
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
