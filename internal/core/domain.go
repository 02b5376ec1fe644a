package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Expense struct {
		ID           string
		UserID       string
		Amount       Money
		Description  string
		Category     ExpenseCategory
		Subcategory  string
		Date         Date
		FamilyMember FamilyMember
		CreatedAt    time.Time
	}

	Income struct {
		ID          string
		UserID      string
		Source      string
		Amount      Money
		Date        Date
		Description string
		CreatedAt   time.Time
	}

	// ShoppingList groups the items of one shopping category. A user has at
	// most one list per category.
	ShoppingList struct {
		ID        string
		UserID    string
		Category  ShoppingCategory
		Name      string
		Items     []ShoppingItem
		CreatedAt time.Time
	}

	ShoppingItem struct {
		ID            string
		ListID        string
		Name          string
		EstimatedCost Money
		ActualCost    *Money
		IsPurchased   bool
		PurchasedAt   *time.Time
		CreatedAt     time.Time
	}

	SavingsGoal struct {
		ID            string
		UserID        string
		Title         string
		TargetAmount  Money
		CurrentAmount Money
		TargetDate    Date // zero when the goal has no deadline
		CreatedAt     time.Time
	}

	Habit struct {
		ID            string
		UserID        string
		Title         string
		Category      HabitCategory
		Frequency     HabitFrequency
		CurrentStreak int
		LastCompleted Date // zero when not completed
		CreatedAt     time.Time
	}

	Profile struct {
		ID            string
		FullName      string
		Currency      string
		MonthlyIncome Money
		CreatedAt     time.Time
		UpdatedAt     time.Time
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
	ErrEmptyDescription  = errors.New("empty description")
	ErrEmptySource       = errors.New("empty income source")
	ErrEmptyTitle        = errors.New("empty title")
	ErrEmptyName         = errors.New("empty name")
	ErrMissingDate       = errors.New("date is required")
	ErrItemNotPurchased  = errors.New("item is not purchased")
	ErrInvalidCurrency   = errors.New("invalid currency code")
	ErrDescriptionLength = errors.New("description too long (max 200 characters)")
	ErrTextLength        = errors.New("text too long (max 200 characters)")
	ErrMissingActualCost = errors.New("purchased item must have an actual cost")
	ErrNegativeStreak    = errors.New("streak cannot be negative")
)

// validationErrors lists the sentinels that describe bad input.
var validationErrors = []error{
	ErrInvalidAmount, ErrNegativeAmount, ErrEmptyDescription, ErrEmptySource,
	ErrEmptyTitle, ErrEmptyName, ErrMissingDate, ErrItemNotPurchased,
	ErrInvalidCurrency, ErrDescriptionLength, ErrTextLength,
	ErrMissingActualCost, ErrNegativeStreak, ErrInvalidDate,
}

// IsValidationError reports whether err stems from a domain rule.
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

const maxTextLength = 200

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateNonNegative accepts zero, which is a legal value for optional costs.
func (m Money) ValidateNonNegative() error {
	if m.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func validateText(s string, empty error) error {
	if strings.TrimSpace(s) == "" {
		return empty
	}
	if len(s) > maxTextLength {
		return ErrDescriptionLength
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := validateText(e.Description, ErrEmptyDescription); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return ErrMissingDate
	}
	if len(e.Subcategory) > maxTextLength {
		return fmt.Errorf("subcategory: %w", ErrTextLength)
	}
	return nil
}

func (i Income) Validate() error {
	if err := i.Amount.Validate(); err != nil {
		return err
	}
	if err := validateText(i.Source, ErrEmptySource); err != nil {
		return err
	}
	if i.Date.IsZero() {
		return ErrMissingDate
	}
	if len(i.Description) > maxTextLength {
		return ErrDescriptionLength
	}
	return nil
}

func (it ShoppingItem) Validate() error {
	if err := validateText(it.Name, ErrEmptyName); err != nil {
		return err
	}
	if err := it.EstimatedCost.ValidateNonNegative(); err != nil {
		return err
	}
	if it.ActualCost != nil {
		if err := it.ActualCost.ValidateNonNegative(); err != nil {
			return err
		}
	}
	if it.IsPurchased && it.ActualCost == nil {
		return ErrMissingActualCost
	}
	return nil
}

func (g SavingsGoal) Validate() error {
	if err := validateText(g.Title, ErrEmptyTitle); err != nil {
		return err
	}
	if err := g.TargetAmount.Validate(); err != nil {
		return err
	}
	if err := g.CurrentAmount.ValidateNonNegative(); err != nil {
		return err
	}
	return nil
}

func (h Habit) Validate() error {
	if err := validateText(h.Title, ErrEmptyTitle); err != nil {
		return err
	}
	if h.CurrentStreak < 0 {
		return ErrNegativeStreak
	}
	return nil
}

func (p Profile) Validate() error {
	if len(p.FullName) > maxTextLength {
		return fmt.Errorf("full name: %w", ErrTextLength)
	}
	if _, err := ParseCurrency(p.Currency); err != nil {
		return err
	}
	return p.MonthlyIncome.ValidateNonNegative()
}
