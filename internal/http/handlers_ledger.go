package http

import (
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

// handleListExpenses serves ?scope=this_month|this_year|all&category=.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := s.svc.Ledger.ListExpenses(r.Context(), userID(r), core.ParseScope(q.Get("scope")), q.Get("category"))
	if err != nil {
		writeError(w, r, log.OpList, err)
		return
	}
	items := make([]expenseDTO, len(list.Items))
	for i, e := range list.Items {
		items[i] = toExpenseDTO(e)
	}
	OK(w, listDTO[expenseDTO]{Items: items, Total: list.Total})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	p, ok := parseBody(w, r)
	if !ok {
		return
	}
	amount, _, err := p.Money("amount")
	if err != nil {
		writeError(w, r, log.OpCreate, err)
		return
	}
	date, err := p.Date("date")
	if err != nil {
		writeError(w, r, log.OpCreate, err)
		return
	}

	e, err := s.svc.Ledger.CreateExpense(r.Context(), userID(r), services.ExpenseInput{
		Amount:       amount,
		Description:  p.Get("description"),
		Category:     p.Get("category"),
		Subcategory:  p.Get("subcategory"),
		FamilyMember: p.Get("family_member"),
		Date:         date,
	})
	if err != nil {
		writeError(w, r, log.OpCreate, err)
		return
	}

	log.FromContext(r.Context()).InfoContext(r.Context(), "Expense created",
		log.FieldUserID, e.UserID,
		log.FieldRecordID, e.ID,
		log.FieldAmount, e.Amount.Cents,
		log.FieldCategory, e.Category)
	Created(w, toExpenseDTO(e))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Ledger.DeleteExpense(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeError(w, r, log.OpDelete, err)
		return
	}
	OK(w, map[string]string{"id": r.PathValue("id")})
}

// handleListIncome serves ?scope=this_month|this_year|all.
func (s *Server) handleListIncome(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Ledger.ListIncome(r.Context(), userID(r), core.ParseScope(r.URL.Query().Get("scope")))
	if err != nil {
		writeError(w, r, log.OpList, err)
		return
	}
	items := make([]incomeDTO, len(list.Items))
	for i, inc := range list.Items {
		items[i] = toIncomeDTO(inc)
	}
	OK(w, listDTO[incomeDTO]{Items: items, Total: list.Total})
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	p, ok := parseBody(w, r)
	if !ok {
		return
	}
	amount, _, err := p.Money("amount")
	if err != nil {
		writeError(w, r, log.OpCreate, err)
		return
	}
	date, err := p.Date("date")
	if err != nil {
		writeError(w, r, log.OpCreate, err)
		return
	}

	inc, err := s.svc.Ledger.CreateIncome(r.Context(), userID(r), services.IncomeInput{
		Source:      p.Get("source"),
		Amount:      amount,
		Description: p.Get("description"),
		Date:        date,
	})
	if err != nil {
		writeError(w, r, log.OpCreate, err)
		return
	}
	Created(w, toIncomeDTO(inc))
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Ledger.DeleteIncome(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeError(w, r, log.OpDelete, err)
		return
	}
	OK(w, map[string]string{"id": r.PathValue("id")})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	OK(w, s.svc.Ledger.Categories())
}
