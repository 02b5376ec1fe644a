package services

import (
	"context"
	"fmt"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

type GoalStore interface {
	CreateGoal(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error)
	GetGoal(ctx context.Context, userID, id string) (core.SavingsGoal, error)
	ListGoals(ctx context.Context, userID string) ([]core.SavingsGoal, error)
	UpdateGoal(ctx context.Context, userID, id string, u core.GoalUpdate) (core.SavingsGoal, error)
	DeleteGoal(ctx context.Context, userID, id string) error
}

type GoalService struct {
	base
	store GoalStore
}

func NewGoalService(store GoalStore, deps Deps) *GoalService {
	return &GoalService{base: newBase(deps, log.ComponentGoals), store: store}
}

// GoalView is a goal with its derived progress figures.
type GoalView struct {
	Goal      core.SavingsGoal
	Progress  float64
	Percent   int
	Label     string
	Remaining core.Money
	// DaysRemaining is nil without a target date; negative when overdue.
	DaysRemaining *int
}

type GoalList struct {
	Goals   []GoalView
	Summary core.GoalsSummary
}

type GoalInput struct {
	Title         string
	TargetAmount  core.Money
	CurrentAmount core.Money
	TargetDate    core.Date
}

func (s *GoalService) view(g core.SavingsGoal) GoalView {
	v := GoalView{
		Goal:      g,
		Progress:  core.GoalProgress(g),
		Percent:   core.GoalProgressPercent(g),
		Label:     core.GoalProgressLabel(g),
		Remaining: core.GoalRemaining(g),
	}
	if days, ok := core.DaysRemaining(g, s.clock.Now()); ok {
		v.DaysRemaining = &days
	}
	return v
}

func (s *GoalService) List(ctx context.Context, userID string) (GoalList, error) {
	goals, err := s.store.ListGoals(ctx, userID)
	if err != nil {
		return GoalList{}, fmt.Errorf("list goals: %w", err)
	}
	out := GoalList{Goals: make([]GoalView, len(goals)), Summary: core.SummarizeGoals(goals)}
	for i, g := range goals {
		out.Goals[i] = s.view(g)
	}
	return out, nil
}

func (s *GoalService) Create(ctx context.Context, userID string, in GoalInput) (GoalView, error) {
	g := core.SavingsGoal{
		UserID:        userID,
		Title:         strings.TrimSpace(in.Title),
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		TargetDate:    in.TargetDate,
	}
	if err := g.Validate(); err != nil {
		return GoalView{}, invalid(err)
	}
	created, err := s.store.CreateGoal(ctx, g)
	if err != nil {
		return GoalView{}, fmt.Errorf("save goal: %w", err)
	}
	s.invalidate(userID)
	s.logger.InfoContext(ctx, "Goal created", log.FieldUserID, userID, log.FieldRecordID, created.ID)
	return s.view(created), nil
}

// Update applies a partial update, e.g. adding to the saved amount.
func (s *GoalService) Update(ctx context.Context, userID, id string, u core.GoalUpdate) (GoalView, error) {
	if u.Empty() {
		return GoalView{}, invalid(ErrNoChanges)
	}
	if u.Title != nil {
		t := strings.TrimSpace(*u.Title)
		u.Title = &t
	}
	g, err := s.store.UpdateGoal(ctx, userID, id, u)
	if err != nil {
		return GoalView{}, mutationError("update goal", err)
	}
	s.invalidate(userID)
	return s.view(g), nil
}

func (s *GoalService) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteGoal(ctx, userID, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	s.invalidate(userID)
	return nil
}
