package core

import "testing"

func TestToggleHabit(t *testing.T) {
	today := NewDate(2025, 3, 18)
	yesterday := NewDate(2025, 3, 17)

	h := Habit{Title: "Track spending", Frequency: Daily, CurrentStreak: 3, LastCompleted: yesterday}

	done := ToggleHabit(h, today)
	if done.CurrentStreak != 4 || !done.CompletedOn(today) {
		t.Fatalf("expected completion today with streak 4, got %+v", done)
	}

	undone := ToggleHabit(done, today)
	if undone.CurrentStreak != 3 {
		t.Fatalf("expected streak restored to 3, got %d", undone.CurrentStreak)
	}
	if !undone.LastCompleted.IsZero() {
		t.Fatalf("expected last_completed cleared, got %v", undone.LastCompleted)
	}
	if h.CurrentStreak != 3 || !h.LastCompleted.SameDay(yesterday) {
		t.Fatal("ToggleHabit must not modify its argument")
	}
}

func TestToggleHabitNeverNegative(t *testing.T) {
	today := NewDate(2025, 3, 18)
	h := ToggleHabit(Habit{CurrentStreak: 0, LastCompleted: today}, today)
	if h.CurrentStreak != 0 {
		t.Fatalf("expected streak floor at 0, got %d", h.CurrentStreak)
	}
}

func TestActiveStreak(t *testing.T) {
	today := NewDate(2025, 3, 18)
	cases := []struct {
		name string
		h    Habit
		want int
	}{
		{"daily done today", Habit{Frequency: Daily, CurrentStreak: 5, LastCompleted: today}, 5},
		{"daily done yesterday", Habit{Frequency: Daily, CurrentStreak: 5, LastCompleted: NewDate(2025, 3, 17)}, 5},
		{"daily missed a day", Habit{Frequency: Daily, CurrentStreak: 5, LastCompleted: NewDate(2025, 3, 16)}, 0},
		{"weekly within window", Habit{Frequency: Weekly, CurrentStreak: 2, LastCompleted: NewDate(2025, 3, 11)}, 2},
		{"weekly lapsed", Habit{Frequency: Weekly, CurrentStreak: 2, LastCompleted: NewDate(2025, 3, 10)}, 0},
		{"monthly within window", Habit{Frequency: Monthly, CurrentStreak: 7, LastCompleted: NewDate(2025, 2, 18)}, 7},
		{"monthly lapsed", Habit{Frequency: Monthly, CurrentStreak: 7, LastCompleted: NewDate(2025, 2, 17)}, 0},
		{"never completed", Habit{Frequency: Daily, CurrentStreak: 0}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ActiveStreak(tc.h, today); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
