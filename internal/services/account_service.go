package services

import (
	"context"
	"fmt"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

type AccountStore interface {
	GetProfile(ctx context.Context, userID string) (core.Profile, error)
	UpdateProfile(ctx context.Context, p core.Profile) (core.Profile, error)
	DeleteAccount(ctx context.Context, userID string) error
}

// AccountService owns the profile and account deletion.
type AccountService struct {
	base
	store AccountStore
}

func NewAccountService(store AccountStore, deps Deps) *AccountService {
	return &AccountService{base: newBase(deps, log.ComponentAccount), store: store}
}

// ProfileUpdate edits a profile; nil fields stay unchanged.
type ProfileUpdate struct {
	FullName      *string
	Currency      *string
	MonthlyIncome *core.Money
}

func (s *AccountService) Profile(ctx context.Context, userID string) (core.Profile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return core.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID string, u ProfileUpdate) (core.Profile, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return core.Profile{}, err
	}
	if u.FullName != nil {
		p.FullName = *u.FullName
	}
	if u.Currency != nil {
		code, err := core.ParseCurrency(*u.Currency)
		if err != nil {
			return core.Profile{}, invalid(err)
		}
		p.Currency = code
	}
	if u.MonthlyIncome != nil {
		p.MonthlyIncome = *u.MonthlyIncome
	}
	if err := p.Validate(); err != nil {
		return core.Profile{}, invalid(err)
	}

	updated, err := s.store.UpdateProfile(ctx, p)
	if err != nil {
		return core.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return updated, nil
}

// DeleteAccount removes all data of userID and tells the export worker to
// drop the user's exported rows.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.store.DeleteAccount(ctx, userID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	s.invalidate(userID)
	s.publish(ctx, amqp.EventAccountDeleted, userID, "")
	s.logger.InfoContext(ctx, "Account deleted", log.FieldUserID, userID, log.FieldOperation, log.OpDelete)
	return nil
}
