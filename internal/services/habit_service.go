package services

import (
	"context"
	"fmt"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

type HabitStore interface {
	CreateHabit(ctx context.Context, h core.Habit) (core.Habit, error)
	ListHabits(ctx context.Context, userID string) ([]core.Habit, error)
	UpdateHabitState(ctx context.Context, userID, id string, fn func(core.Habit) core.Habit) (core.Habit, error)
	DeleteHabit(ctx context.Context, userID, id string) error
}

type HabitService struct {
	base
	store HabitStore
}

func NewHabitService(store HabitStore, deps Deps) *HabitService {
	return &HabitService{base: newBase(deps, log.ComponentHabits), store: store}
}

// HabitView is a habit as shown today. Streak is the stored streak, or 0
// once a frequency window has been missed.
type HabitView struct {
	Habit          core.Habit
	Streak         int
	CompletedToday bool
}

type HabitInput struct {
	Title     string
	Category  string
	Frequency string
}

func (s *HabitService) view(h core.Habit) HabitView {
	today := s.clock.Today()
	return HabitView{
		Habit:          h,
		Streak:         core.ActiveStreak(h, today),
		CompletedToday: h.CompletedOn(today),
	}
}

func (s *HabitService) List(ctx context.Context, userID string) ([]HabitView, error) {
	habits, err := s.store.ListHabits(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	out := make([]HabitView, len(habits))
	for i, h := range habits {
		out[i] = s.view(h)
	}
	return out, nil
}

func (s *HabitService) Create(ctx context.Context, userID string, in HabitInput) (HabitView, error) {
	h := core.Habit{
		UserID:    userID,
		Title:     strings.TrimSpace(in.Title),
		Category:  core.LookupHabitCategory(in.Category),
		Frequency: core.LookupHabitFrequency(in.Frequency),
	}
	if err := h.Validate(); err != nil {
		return HabitView{}, invalid(err)
	}
	created, err := s.store.CreateHabit(ctx, h)
	if err != nil {
		return HabitView{}, fmt.Errorf("save habit: %w", err)
	}
	return s.view(created), nil
}

// Toggle completes the habit for today, or undoes today's completion.
func (s *HabitService) Toggle(ctx context.Context, userID, id string) (HabitView, error) {
	today := s.clock.Today()
	h, err := s.store.UpdateHabitState(ctx, userID, id, func(h core.Habit) core.Habit {
		// A lapsed streak restarts from what the user was shown.
		if !h.CompletedOn(today) {
			h.CurrentStreak = core.ActiveStreak(h, today)
		}
		return core.ToggleHabit(h, today)
	})
	if err != nil {
		return HabitView{}, mutationError("toggle habit", err)
	}
	s.logger.InfoContext(ctx, "Habit toggled",
		log.FieldUserID, userID,
		log.FieldRecordID, id,
		"streak", h.CurrentStreak)
	return s.view(h), nil
}

func (s *HabitService) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteHabit(ctx, userID, id); err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}
