package core

import (
	"fmt"
	"math"
	"time"
)

// GoalProgress returns current/target clamped to [0, 1]. A goal without a
// positive target has no progress.
func GoalProgress(g SavingsGoal) float64 {
	if g.TargetAmount.Cents <= 0 || g.CurrentAmount.Cents <= 0 {
		return 0
	}
	if g.CurrentAmount.Cents >= g.TargetAmount.Cents {
		return 1
	}
	return float64(g.CurrentAmount.Cents) / float64(g.TargetAmount.Cents)
}

// GoalProgressPercent is GoalProgress as a rounded whole percentage.
func GoalProgressPercent(g SavingsGoal) int {
	if g.TargetAmount.Cents <= 0 || g.CurrentAmount.Cents <= 0 {
		return 0
	}
	if g.CurrentAmount.Cents >= g.TargetAmount.Cents {
		return 100
	}
	return percentOf(g.CurrentAmount.Cents, g.TargetAmount.Cents)
}

// GoalProgressLabel renders the progress caption, e.g. "25% Complete".
func GoalProgressLabel(g SavingsGoal) string {
	return fmt.Sprintf("%d%% Complete", GoalProgressPercent(g))
}

// GoalRemaining is the amount still missing, never negative.
func GoalRemaining(g SavingsGoal) Money {
	if g.CurrentAmount.Cents >= g.TargetAmount.Cents {
		return Money{}
	}
	return g.TargetAmount.Sub(g.CurrentAmount)
}

// IsComplete reports whether the goal reached its target.
func (g SavingsGoal) IsComplete() bool {
	return g.TargetAmount.Cents > 0 && g.CurrentAmount.Cents >= g.TargetAmount.Cents
}

// DaysRemaining returns ceil((target_date - now) / 24h). The value is
// negative once the deadline has passed. ok is false when the goal has no
// target date.
func DaysRemaining(g SavingsGoal, now time.Time) (days int, ok bool) {
	if g.TargetDate.IsZero() {
		return 0, false
	}
	diff := g.TargetDate.Sub(now)
	return int(math.Ceil(float64(diff) / float64(24*time.Hour))), true
}

// SummarizeGoals totals the saved amounts and counts completed goals.
func SummarizeGoals(goals []SavingsGoal) GoalsSummary {
	s := GoalsSummary{Total: len(goals)}
	for _, g := range goals {
		s.TotalSaved = s.TotalSaved.Add(g.CurrentAmount)
		if g.IsComplete() {
			s.Completed++
		}
	}
	return s
}

// GoalUpdate carries the fields of a partial goal update; nil means unchanged.
type GoalUpdate struct {
	Title           *string
	TargetAmount    *Money
	CurrentAmount   *Money
	TargetDate      *Date
	ClearTargetDate bool
}

// Empty reports whether the update changes nothing.
func (u GoalUpdate) Empty() bool {
	return u.Title == nil && u.TargetAmount == nil && u.CurrentAmount == nil &&
		u.TargetDate == nil && !u.ClearTargetDate
}

// ApplyGoalUpdate returns g with u applied and validated.
func ApplyGoalUpdate(g SavingsGoal, u GoalUpdate) (SavingsGoal, error) {
	if u.Title != nil {
		g.Title = *u.Title
	}
	if u.TargetAmount != nil {
		g.TargetAmount = *u.TargetAmount
	}
	if u.CurrentAmount != nil {
		g.CurrentAmount = *u.CurrentAmount
	}
	if u.ClearTargetDate {
		g.TargetDate = Date{}
	} else if u.TargetDate != nil {
		g.TargetDate = *u.TargetDate
	}
	if err := g.Validate(); err != nil {
		return SavingsGoal{}, err
	}
	return g, nil
}
