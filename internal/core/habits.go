package core

// ToggleHabit flips today's completion of h. Completing sets last_completed
// to today and extends the streak; toggling again on the same day clears
// last_completed and shortens the streak, never below zero.
func ToggleHabit(h Habit, today Date) Habit {
	if h.LastCompleted.SameDay(today) {
		h.LastCompleted = Date{}
		if h.CurrentStreak > 0 {
			h.CurrentStreak--
		}
		return h
	}
	h.LastCompleted = DateOf(today.Time)
	h.CurrentStreak++
	return h
}

// CompletedOn reports whether h was last completed on day.
func (h Habit) CompletedOn(day Date) bool {
	return h.LastCompleted.SameDay(day)
}

// ActiveStreak is the streak as it should be displayed on today: a streak
// whose last completion is older than one frequency window has lapsed and
// shows as zero. The stored habit is not modified.
func ActiveStreak(h Habit, today Date) int {
	if h.LastCompleted.IsZero() || today.IsZero() {
		return h.CurrentStreak
	}
	last := DateOf(h.LastCompleted.Time)
	now := DateOf(today.Time)
	if last.After(now.Time) {
		return h.CurrentStreak
	}

	switch h.Frequency {
	case Weekly:
		if last.daysUntil(now) > 7 {
			return 0
		}
	case Monthly:
		if last.AddDate(0, 1, 0).Before(now.Time) {
			return 0
		}
	default:
		if last.daysUntil(now) > 1 {
			return 0
		}
	}
	return h.CurrentStreak
}
