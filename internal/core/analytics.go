package core

import (
	"fmt"
	"strings"
	"time"
)

// Period selects the aggregation window of a report.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// ParsePeriod maps user input to a Period; anything unrecognised is monthly.
func ParsePeriod(s string) Period {
	if strings.EqualFold(strings.TrimSpace(s), string(PeriodYearly)) {
		return PeriodYearly
	}
	return PeriodMonthly
}

// Contains reports whether t falls in the period around ref. Calendar fields
// are read in each value's own location.
func (p Period) Contains(t, ref time.Time) bool {
	if t.IsZero() {
		return false
	}
	if t.Year() != ref.Year() {
		return false
	}
	if p == PeriodYearly {
		return true
	}
	return t.Month() == ref.Month()
}

// Scope is the list filter of the income and expense screens.
type Scope string

const (
	ScopeThisMonth Scope = "this_month"
	ScopeThisYear  Scope = "this_year"
	ScopeAll       Scope = "all"
)

// ParseScope maps user input to a Scope; unknown values mean all.
func ParseScope(s string) Scope {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeThisMonth, "month":
		return ScopeThisMonth
	case ScopeThisYear, "year":
		return ScopeThisYear
	default:
		return ScopeAll
	}
}

func (s Scope) contains(d Date, ref time.Time) bool {
	switch s {
	case ScopeThisMonth:
		return PeriodMonthly.Contains(d.Time, ref)
	case ScopeThisYear:
		return PeriodYearly.Contains(d.Time, ref)
	default:
		return true
	}
}

// DerivationInput is everything a report is computed from. Nil slices are
// treated as empty.
type DerivationInput struct {
	Expenses      []Expense
	Income        []Income
	ShoppingLists []ShoppingList
	Goals         []SavingsGoal
	Reference     time.Time
	Period        Period
}

const (
	goalChartSize        = 4
	greatSavingsRateOver = 20
)

// Derive computes the analytics report for in.Period around in.Reference.
// It never fails: records with a zero date are outside every period.
func Derive(in DerivationInput) Report {
	period := in.Period
	if period != PeriodYearly {
		period = PeriodMonthly
	}
	ref := in.Reference

	r := Report{
		Period:            period,
		Year:              ref.Year(),
		Reference:         DateOf(ref),
		CategoryBreakdown: make(map[ExpenseCategory]Money),
		Insights:          []Insight{},
		GoalProgress:      []GoalProgressEntry{},
	}
	if period == PeriodMonthly {
		r.Month = int(ref.Month())
	}

	for _, inc := range in.Income {
		if period.Contains(inc.Date.Time, ref) {
			r.TotalIncome = r.TotalIncome.Add(inc.Amount)
		}
	}

	for _, e := range in.Expenses {
		if !period.Contains(e.Date.Time, ref) {
			continue
		}
		r.ExpenseTotal = r.ExpenseTotal.Add(e.Amount)
		r.CategoryBreakdown[e.Category] = r.CategoryBreakdown[e.Category].Add(e.Amount)
	}

	for _, list := range in.ShoppingLists {
		for _, it := range list.Items {
			if !it.IsPurchased || it.PurchasedAt == nil {
				continue
			}
			if !period.Contains(*it.PurchasedAt, ref) {
				continue
			}
			if it.ActualCost != nil {
				r.ShoppingTotal = r.ShoppingTotal.Add(*it.ActualCost)
			}
		}
	}

	r.TotalExpenses = r.ExpenseTotal.Add(r.ShoppingTotal)
	r.Savings = r.TotalIncome.Sub(r.TotalExpenses)
	if r.TotalIncome.Cents > 0 {
		r.SavingsRate = percentOf(r.Savings.Cents, r.TotalIncome.Cents)
	}

	r.Insights = insights(r, len(in.Goals))

	for i, g := range in.Goals {
		if i == goalChartSize {
			break
		}
		r.GoalProgress = append(r.GoalProgress, GoalProgressEntry{
			GoalID:  g.ID,
			Title:   g.Title,
			Percent: GoalProgressPercent(g),
		})
	}
	return r
}

func insights(r Report, goals int) []Insight {
	out := []Insight{}
	if r.SavingsRate > greatSavingsRateOver {
		out = append(out, Insight{
			Kind:    InsightGreatSavings,
			Title:   "Great Savings Rate!",
			Message: fmt.Sprintf("Your %d%% savings rate is excellent", r.SavingsRate),
		})
	}
	if r.TotalExpenses.Cents > r.TotalIncome.Cents {
		span := "month"
		if r.Period == PeriodYearly {
			span = "year"
		}
		out = append(out, Insight{
			Kind:    InsightSpendingAlert,
			Title:   "Spending Alert",
			Message: fmt.Sprintf("Your expenses exceed your income this %s", span),
		})
	}
	if goals > 0 {
		out = append(out, Insight{
			Kind:    InsightGoalsActive,
			Title:   "Savings Goals",
			Message: fmt.Sprintf("You have %d active savings goals", goals),
		})
	}
	return out
}

// ScopeIncome returns the income records inside scope, preserving order.
func ScopeIncome(income []Income, scope Scope, ref time.Time) []Income {
	out := make([]Income, 0, len(income))
	for _, inc := range income {
		if scope.contains(inc.Date, ref) {
			out = append(out, inc)
		}
	}
	return out
}

// ScopeExpenses returns the expenses inside scope, preserving order.
func ScopeExpenses(expenses []Expense, scope Scope, ref time.Time) []Expense {
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if scope.contains(e.Date, ref) {
			out = append(out, e)
		}
	}
	return out
}

// FilterExpensesByCategory keeps the expenses of one category. An empty
// category keeps everything.
func FilterExpensesByCategory(expenses []Expense, category ExpenseCategory) []Expense {
	if category == "" {
		return append([]Expense(nil), expenses...)
	}
	var out []Expense
	for _, e := range expenses {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

func SumIncome(income []Income) Money {
	var total Money
	for _, inc := range income {
		total = total.Add(inc.Amount)
	}
	return total
}

func SumExpenses(expenses []Expense) Money {
	var total Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
