package http

import (
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Goals.List(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, log.OpList, err)
		return
	}
	out := goalsDTO{Goals: make([]goalDTO, len(list.Goals)), Summary: list.Summary}
	for i, g := range list.Goals {
		out.Goals[i] = toGoalDTO(g)
	}
	OK(w, out)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	p, ok := parseBody(w, r)
	if !ok {
		return
	}
	target, _, err := p.Money("target_amount")
	if err != nil {
		writeError(w, r, log.OpCreate, err)
		return
	}
	current, _, err := p.Money("current_amount")
	if err != nil {
		writeError(w, r, log.OpCreate, err)
		return
	}
	date, err := p.Date("target_date")
	if err != nil {
		writeError(w, r, log.OpCreate, err)
		return
	}

	g, err := s.svc.Goals.Create(r.Context(), userID(r), services.GoalInput{
		Title:         p.Get("title"),
		TargetAmount:  target,
		CurrentAmount: current,
		TargetDate:    date,
	})
	if err != nil {
		writeError(w, r, log.OpCreate, err)
		return
	}
	Created(w, toGoalDTO(g))
}

// handleUpdateGoal applies a partial update. "target_date": null or ""
// removes the deadline.
func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	p, ok := parseBody(w, r)
	if !ok {
		return
	}

	u := core.GoalUpdate{Title: p.Optional("title")}
	var err error
	if u.TargetAmount, err = p.OptionalMoney("target_amount"); err != nil {
		writeError(w, r, log.OpUpdate, err)
		return
	}
	if u.CurrentAmount, err = p.OptionalMoney("current_amount"); err != nil {
		writeError(w, r, log.OpUpdate, err)
		return
	}
	if p.Has("target_date") {
		d, err := p.Date("target_date")
		if err != nil {
			writeError(w, r, log.OpUpdate, err)
			return
		}
		if d.IsZero() {
			u.ClearTargetDate = true
		} else {
			u.TargetDate = &d
		}
	}

	g, err := s.svc.Goals.Update(r.Context(), userID(r), r.PathValue("id"), u)
	if err != nil {
		writeError(w, r, log.OpUpdate, err)
		return
	}
	OK(w, toGoalDTO(g))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Goals.Delete(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeError(w, r, log.OpDelete, err)
		return
	}
	OK(w, map[string]string{"id": r.PathValue("id")})
}

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	views, err := s.svc.Habits.List(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, log.OpList, err)
		return
	}
	out := make([]habitDTO, len(views))
	for i, v := range views {
		out[i] = toHabitDTO(v)
	}
	OK(w, out)
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	p, ok := parseBody(w, r)
	if !ok {
		return
	}
	h, err := s.svc.Habits.Create(r.Context(), userID(r), services.HabitInput{
		Title:     p.Get("title"),
		Category:  p.Get("category"),
		Frequency: p.Get("frequency"),
	})
	if err != nil {
		writeError(w, r, log.OpCreate, err)
		return
	}
	Created(w, toHabitDTO(h))
}

func (s *Server) handleToggleHabit(w http.ResponseWriter, r *http.Request) {
	h, err := s.svc.Habits.Toggle(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeError(w, r, log.OpToggle, err)
		return
	}
	OK(w, toHabitDTO(h))
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Habits.Delete(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeError(w, r, log.OpDelete, err)
		return
	}
	OK(w, map[string]string{"id": r.PathValue("id")})
}
