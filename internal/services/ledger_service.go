package services

import (
	"context"
	"fmt"
	"strings"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

// LedgerStore is the expense and income persistence the ledger needs.
type LedgerStore interface {
	CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	GetExpense(ctx context.Context, userID, id string) (core.Expense, error)
	ListExpenses(ctx context.Context, userID string) ([]core.Expense, error)
	DeleteExpense(ctx context.Context, userID, id string) error
	CreateIncome(ctx context.Context, in core.Income) (core.Income, error)
	GetIncome(ctx context.Context, userID, id string) (core.Income, error)
	ListIncome(ctx context.Context, userID string) ([]core.Income, error)
	DeleteIncome(ctx context.Context, userID, id string) error
}

// LedgerService records expenses and income.
type LedgerService struct {
	base
	store   LedgerStore
	catalog core.Catalog
}

func NewLedgerService(store LedgerStore, catalog core.Catalog, deps Deps) *LedgerService {
	return &LedgerService{base: newBase(deps, log.ComponentLedger), store: store, catalog: catalog}
}

type ExpenseInput struct {
	Amount       core.Money
	Description  string
	Category     string
	Subcategory  string
	FamilyMember string
	// Date defaults to today when zero.
	Date core.Date
}

type ExpenseList struct {
	Items []core.Expense
	Total core.Money
}

type IncomeInput struct {
	Source      string
	Amount      core.Money
	Description string
	Date        core.Date
}

type IncomeList struct {
	Items []core.Income
	Total core.Money
}

func (s *LedgerService) CreateExpense(ctx context.Context, userID string, in ExpenseInput) (core.Expense, error) {
	e := core.Expense{
		UserID:       userID,
		Amount:       in.Amount,
		Description:  strings.TrimSpace(in.Description),
		Category:     core.LookupExpenseCategory(in.Category),
		FamilyMember: core.LookupFamilyMember(in.FamilyMember),
		Date:         in.Date,
	}
	if e.Date.IsZero() {
		e.Date = s.clock.Today()
	}

	sub, err := s.resolveSubcategory(e.Category, in.Subcategory)
	if err != nil {
		return core.Expense{}, err
	}
	e.Subcategory = sub

	if err := e.Validate(); err != nil {
		return core.Expense{}, invalid(err)
	}

	created, err := s.store.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.invalidate(userID)
	s.publish(ctx, amqp.EventExpenseCreated, userID, created.ID)
	return created, nil
}

// resolveSubcategory returns the catalog spelling of sub. An empty value is
// allowed; a value the category does not list is rejected.
func (s *LedgerService) resolveSubcategory(c core.ExpenseCategory, sub string) (string, error) {
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return "", nil
	}
	allowed := s.catalog.Info(c).Subcategories
	if len(allowed) == 0 {
		return sub, nil
	}
	for _, a := range allowed {
		if strings.EqualFold(a, sub) {
			return a, nil
		}
	}
	return "", invalid(fmt.Errorf("%w %q for %s", ErrUnknownSubcategory, sub, c))
}

// ListExpenses returns the user's expenses within scope, optionally
// restricted to one category, newest first.
func (s *LedgerService) ListExpenses(ctx context.Context, userID string, scope core.Scope, category string) (ExpenseList, error) {
	all, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		return ExpenseList{}, fmt.Errorf("list expenses: %w", err)
	}
	items := core.ScopeExpenses(all, scope, s.clock.Now())
	if strings.TrimSpace(category) != "" {
		items = core.FilterExpensesByCategory(items, core.LookupExpenseCategory(category))
	}
	return ExpenseList{Items: items, Total: core.SumExpenses(items)}, nil
}

func (s *LedgerService) DeleteExpense(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteExpense(ctx, userID, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	s.invalidate(userID)
	s.publish(ctx, amqp.EventExpenseDeleted, userID, id)
	return nil
}

func (s *LedgerService) CreateIncome(ctx context.Context, userID string, in IncomeInput) (core.Income, error) {
	inc := core.Income{
		UserID:      userID,
		Source:      strings.TrimSpace(in.Source),
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		Date:        in.Date,
	}
	if inc.Date.IsZero() {
		inc.Date = s.clock.Today()
	}
	if err := inc.Validate(); err != nil {
		return core.Income{}, invalid(err)
	}

	created, err := s.store.CreateIncome(ctx, inc)
	if err != nil {
		return core.Income{}, fmt.Errorf("save income: %w", err)
	}

	s.invalidate(userID)
	s.publish(ctx, amqp.EventIncomeCreated, userID, created.ID)
	return created, nil
}

func (s *LedgerService) ListIncome(ctx context.Context, userID string, scope core.Scope) (IncomeList, error) {
	all, err := s.store.ListIncome(ctx, userID)
	if err != nil {
		return IncomeList{}, fmt.Errorf("list income: %w", err)
	}
	items := core.ScopeIncome(all, scope, s.clock.Now())
	return IncomeList{Items: items, Total: core.SumIncome(items)}, nil
}

func (s *LedgerService) DeleteIncome(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteIncome(ctx, userID, id); err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	s.invalidate(userID)
	s.publish(ctx, amqp.EventIncomeDeleted, userID, id)
	return nil
}

// Categories returns the expense category catalog.
func (s *LedgerService) Categories() []core.CategoryInfo {
	return s.catalog.All()
}
