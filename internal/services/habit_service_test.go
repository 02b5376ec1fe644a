package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

func TestHabitService_Toggle(t *testing.T) {
	ctx := context.Background()
	svc := NewHabitService(newTestRepo(t), testDeps(nil, nil))

	h, err := svc.Create(ctx, "u1", HabitInput{Title: "Track spending", Category: "Financial", Frequency: "daily"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if h.Habit.Category != core.HabitFinancial || h.Habit.Frequency != core.Daily || h.Streak != 0 || h.CompletedToday {
		t.Fatalf("unexpected new habit %+v", h)
	}

	done, err := svc.Toggle(ctx, "u1", h.Habit.ID)
	if err != nil {
		t.Fatal(err)
	}
	if done.Streak != 1 || !done.CompletedToday {
		t.Fatalf("expected streak 1 completed today, got %+v", done)
	}

	undone, err := svc.Toggle(ctx, "u1", h.Habit.ID)
	if err != nil {
		t.Fatal(err)
	}
	if undone.Streak != 0 || undone.CompletedToday || !undone.Habit.LastCompleted.IsZero() {
		t.Fatalf("second toggle should undo today's completion, got %+v", undone)
	}

	if _, err := svc.Toggle(ctx, "u2", h.Habit.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user, got %v", err)
	}
	if _, err := svc.Create(ctx, "u1", HabitInput{Title: ""}); !errors.Is(err, core.ErrEmptyTitle) || !IsValidation(err) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}

	if err := svc.Delete(ctx, "u1", h.Habit.ID); err != nil {
		t.Fatal(err)
	}
	list, err := svc.List(ctx, "u1")
	if err != nil || len(list) != 0 {
		t.Fatalf("expected no habits, got %d (err=%v)", len(list), err)
	}
}

func TestHabitService_LapsedStreakShowsZero(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	yesterday := NewHabitService(repo, Deps{Clock: FixedClock(testNow.Add(-24 * time.Hour))})
	h, err := yesterday.Create(ctx, "u1", HabitInput{Title: "Save", Frequency: "daily"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := yesterday.Toggle(ctx, "u1", h.Habit.ID); err != nil {
		t.Fatal(err)
	}

	later := NewHabitService(repo, Deps{Clock: FixedClock(testNow.Add(72 * time.Hour))})
	list, err := later.List(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Streak != 0 || list[0].Habit.CurrentStreak != 1 {
		t.Fatalf("lapsed streak should display as zero, got %+v", list)
	}
}

func TestHabitService_ToggleLapsedStreakRestartsFromZero(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	earlier := NewHabitService(repo, Deps{Clock: FixedClock(testNow.AddDate(0, 0, -10))})
	h, err := earlier.Create(ctx, "u1", HabitInput{Title: "Log expenses", Frequency: "daily"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := earlier.Toggle(ctx, "u1", h.Habit.ID); err != nil {
		t.Fatal(err)
	}

	svc := NewHabitService(repo, testDeps(nil, nil))
	tests := []struct {
		name      string
		toggle    bool
		streak    int
		completed bool
	}{
		{"lapsed", false, 0, false},
		{"complete", true, 1, true},
		{"undo", true, 0, false},
	}
	for _, tt := range tests {
		var got HabitView
		if tt.toggle {
			got, err = svc.Toggle(ctx, "u1", h.Habit.ID)
		} else {
			var list []HabitView
			list, err = svc.List(ctx, "u1")
			if err == nil && len(list) == 1 {
				got = list[0]
			}
		}
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got.Streak != tt.streak || got.CompletedToday != tt.completed {
			t.Fatalf("%s: streak = %d completed = %v, want %d %v", tt.name, got.Streak, got.CompletedToday, tt.streak, tt.completed)
		}
		if got.Habit.CurrentStreak != tt.streak && tt.toggle {
			t.Fatalf("%s: stored streak = %d, want %d", tt.name, got.Habit.CurrentStreak, tt.streak)
		}
	}
}
