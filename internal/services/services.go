// Package services orchestrates the per-user use cases: each call loads
// what it needs from the store, applies the pure domain functions in core
// and writes back, then publishes ledger events and drops cached reports.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

// EventPublisher sends ledger events. Publishing is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, ev amqp.LedgerEvent) error
}

// Invalidator drops derived data cached for a user.
type Invalidator interface {
	Invalidate(userID string)
}

// Clock supplies "now" in the application timezone.
type Clock struct {
	now func() time.Time
	loc *time.Location
}

func NewClock(loc *time.Location) Clock {
	return Clock{now: time.Now, loc: loc}
}

// FixedClock always reports t; used by tests and the admin tool.
func FixedClock(t time.Time) Clock {
	return Clock{now: func() time.Time { return t }, loc: t.Location()}
}

func (c Clock) Now() time.Time {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	if c.loc == nil {
		return now().UTC()
	}
	return now().In(c.loc)
}

// Today is the calendar day of Now.
func (c Clock) Today() core.Date {
	return core.DateOf(c.Now())
}

// Deps are the collaborators shared by all services. Zero values are
// usable: no publisher, no cache, system clock in UTC, default logger.
type Deps struct {
	Publisher   EventPublisher
	Invalidator Invalidator
	Clock       Clock
	Logger      *log.Logger
}

type base struct {
	publisher   EventPublisher
	invalidator Invalidator
	clock       Clock
	logger      *log.Logger
}

func newBase(d Deps, component string) base {
	logger := d.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return base{
		publisher:   d.Publisher,
		invalidator: d.Invalidator,
		clock:       d.Clock,
		logger:      logger.WithComponent(component),
	}
}

// publish sends an event and only logs failures; the mutation already
// committed.
func (b base) publish(ctx context.Context, t amqp.EventType, userID, recordID string) {
	if b.publisher == nil {
		return
	}
	if err := b.publisher.Publish(ctx, amqp.NewLedgerEvent(t, userID, recordID)); err != nil {
		log.LogError(ctx, b.logger, "Failed to publish ledger event", err, b.logger.Component(), log.OpPublish,
			log.NewFields().WithUser(userID).WithRecord(string(t), recordID))
	}
}

func (b base) invalidate(userID string) {
	if b.invalidator != nil {
		b.invalidator.Invalidate(userID)
	}
}

// ValidationError marks input the caller must correct.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Err: err}
}

// mutationError marks domain rule violations raised inside a store
// transaction as validation errors and wraps everything else with op.
func mutationError(op string, err error) error {
	if core.IsValidationError(err) {
		return invalid(err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

var (
	ErrUnknownCategory    = errors.New("unknown category")
	ErrUnknownSubcategory = errors.New("unknown subcategory")
	ErrNoChanges          = errors.New("no fields to update")
)

// resolveShoppingCategory accepts a key or display name of a declared
// shopping category.
func resolveShoppingCategory(s string) (core.ShoppingCategory, error) {
	c := core.LookupShoppingCategory(s)
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(c)) || strings.EqualFold(s, c.Name()) {
		return c, nil
	}
	return "", invalid(ErrUnknownCategory)
}
