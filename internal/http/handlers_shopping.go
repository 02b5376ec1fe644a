package http

import (
	"net/http"

	"fintrack/internal/log"
	"fintrack/internal/services"
)

func (s *Server) handleShoppingLists(w http.ResponseWriter, r *http.Request) {
	views, err := s.svc.Shopping.Lists(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, log.OpList, err)
		return
	}
	out := make([]shoppingListDTO, len(views))
	for i, v := range views {
		out[i] = toShoppingListDTO(v)
	}
	OK(w, out)
}

// handleShoppingList returns the list of a category, creating it on first
// access.
func (s *Server) handleShoppingList(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Shopping.List(r.Context(), userID(r), r.PathValue("category"))
	if err != nil {
		writeError(w, r, log.OpRead, err)
		return
	}
	OK(w, toShoppingListDTO(v))
}

func (s *Server) handlePreviousItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Shopping.PreviousItems(r.Context(), userID(r), r.PathValue("category"))
	if err != nil {
		writeError(w, r, log.OpList, err)
		return
	}
	OK(w, toShoppingItemDTOs(items))
}

func (s *Server) handleAddShoppingItem(w http.ResponseWriter, r *http.Request) {
	p, ok := parseBody(w, r)
	if !ok {
		return
	}
	estimate, _, err := p.Money("estimated_cost")
	if err != nil {
		writeError(w, r, log.OpCreate, err)
		return
	}
	it, err := s.svc.Shopping.AddItem(r.Context(), userID(r), r.PathValue("category"), services.ItemInput{
		Name:          p.Get("name"),
		EstimatedCost: estimate,
	})
	if err != nil {
		writeError(w, r, log.OpCreate, err)
		return
	}
	Created(w, toShoppingItemDTO(it))
}

// handleImportShoppingItems copies previous items back; {"ids": [...]}
// restricts the import to those items.
func (s *Server) handleImportShoppingItems(w http.ResponseWriter, r *http.Request) {
	p, ok := parseBody(w, r)
	if !ok {
		return
	}
	items, err := s.svc.Shopping.Import(r.Context(), userID(r), r.PathValue("category"), p.Strings("ids"))
	if err != nil {
		writeError(w, r, log.OpImport, err)
		return
	}
	Created(w, toShoppingItemDTOs(items))
}

func (s *Server) handleToggleShoppingItem(w http.ResponseWriter, r *http.Request) {
	it, err := s.svc.Shopping.ToggleItem(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeError(w, r, log.OpToggle, err)
		return
	}
	OK(w, toShoppingItemDTO(it))
}

func (s *Server) handleUpdateShoppingItem(w http.ResponseWriter, r *http.Request) {
	p, ok := parseBody(w, r)
	if !ok {
		return
	}
	u := services.ItemUpdate{Name: p.Optional("name")}
	var err error
	if u.EstimatedCost, err = p.OptionalMoney("estimated_cost"); err != nil {
		writeError(w, r, log.OpUpdate, err)
		return
	}
	if u.ActualCost, err = p.OptionalMoney("actual_cost"); err != nil {
		writeError(w, r, log.OpUpdate, err)
		return
	}

	it, err := s.svc.Shopping.UpdateItem(r.Context(), userID(r), r.PathValue("id"), u)
	if err != nil {
		writeError(w, r, log.OpUpdate, err)
		return
	}
	OK(w, toShoppingItemDTO(it))
}

func (s *Server) handleDeleteShoppingItem(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Shopping.DeleteItem(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeError(w, r, log.OpDelete, err)
		return
	}
	OK(w, map[string]string{"id": r.PathValue("id")})
}

func (s *Server) handleDeleteShoppingList(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Shopping.DeleteList(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeError(w, r, log.OpDelete, err)
		return
	}
	OK(w, map[string]string{"id": r.PathValue("id")})
}
