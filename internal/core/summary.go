package core

import "sort"

// CategoryAmount is an expense total for one category.
type CategoryAmount struct {
	Category ExpenseCategory `json:"category"`
	Name     string          `json:"name"`
	Amount   Money           `json:"amount"`
}

// InsightKind identifies one of the fixed analytics messages.
type InsightKind string

const (
	InsightGreatSavings  InsightKind = "great_savings"
	InsightSpendingAlert InsightKind = "spending_alert"
	InsightGoalsActive   InsightKind = "goals_active"
)

type Insight struct {
	Kind    InsightKind `json:"kind"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}

// GoalProgressEntry is one bar of the goal chart.
type GoalProgressEntry struct {
	GoalID  string `json:"goal_id"`
	Title   string `json:"title"`
	Percent int    `json:"percent"`
}

// Report is the derived analytics view of one period.
type Report struct {
	Period    Period `json:"period"`
	Year      int    `json:"year"`
	Month     int    `json:"month,omitempty"` // 1-12, zero for yearly reports
	Reference Date   `json:"reference"`

	TotalIncome   Money `json:"total_income"`
	ExpenseTotal  Money `json:"expense_total"`
	ShoppingTotal Money `json:"shopping_total"`
	TotalExpenses Money `json:"total_expenses"`
	Savings       Money `json:"savings"`
	SavingsRate   int   `json:"savings_rate"`

	CategoryBreakdown map[ExpenseCategory]Money `json:"-"`
	Insights          []Insight                 `json:"insights"`
	GoalProgress      []GoalProgressEntry       `json:"goal_progress"`
}

// Breakdown returns the category totals ordered by amount, largest first.
// Ties are ordered by category key.
func (r Report) Breakdown() []CategoryAmount {
	out := make([]CategoryAmount, 0, len(r.CategoryBreakdown))
	cat := DefaultCatalog()
	for c, amt := range r.CategoryBreakdown {
		out = append(out, CategoryAmount{Category: c, Name: cat.Name(c), Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// ShoppingListSummary holds the totals shown above a shopping list.
type ShoppingListSummary struct {
	Items          int   `json:"items"`
	Purchased      int   `json:"purchased"`
	EstimatedTotal Money `json:"estimated_total"`
	ActualTotal    Money `json:"actual_total"`
}

// GoalsSummary aggregates all savings goals of a user.
type GoalsSummary struct {
	Total      int   `json:"total"`
	Completed  int   `json:"completed"`
	TotalSaved Money `json:"total_saved"`
}
