package services

import (
	"context"
	"fmt"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

type ShoppingStore interface {
	ListShoppingLists(ctx context.Context, userID string) ([]core.ShoppingList, error)
	EnsureShoppingList(ctx context.Context, userID string, category core.ShoppingCategory) (core.ShoppingList, error)
	GetShoppingList(ctx context.Context, userID, id string) (core.ShoppingList, error)
	DeleteShoppingList(ctx context.Context, userID, id string) error
	AddShoppingItem(ctx context.Context, userID string, item core.ShoppingItem) (core.ShoppingItem, error)
	AddShoppingItems(ctx context.Context, userID, listID string, items []core.ShoppingItem) ([]core.ShoppingItem, error)
	UpdateShoppingItem(ctx context.Context, userID, id string, fn func(core.ShoppingItem) (core.ShoppingItem, error)) (core.ShoppingItem, error)
	DeleteShoppingItem(ctx context.Context, userID, id string) error
	ListPreviousItems(ctx context.Context, userID string, category core.ShoppingCategory) ([]core.ShoppingItem, error)
}

// ShoppingService manages the per-category shopping lists.
type ShoppingService struct {
	base
	store ShoppingStore
}

func NewShoppingService(store ShoppingStore, deps Deps) *ShoppingService {
	return &ShoppingService{base: newBase(deps, log.ComponentShopping), store: store}
}

// ListView is a list together with its totals.
type ListView struct {
	List    core.ShoppingList
	Summary core.ShoppingListSummary
}

func viewOf(l core.ShoppingList) ListView {
	return ListView{List: l, Summary: core.SummarizeShoppingList(l)}
}

type ItemInput struct {
	Name          string
	EstimatedCost core.Money
}

// ItemUpdate edits an item; nil fields stay unchanged. ActualCost is only
// accepted on purchased items.
type ItemUpdate struct {
	Name          *string
	EstimatedCost *core.Money
	ActualCost    *core.Money
}

func (u ItemUpdate) empty() bool {
	return u.Name == nil && u.EstimatedCost == nil && u.ActualCost == nil
}

// Lists returns the lists the user has opened so far.
func (s *ShoppingService) Lists(ctx context.Context, userID string) ([]ListView, error) {
	lists, err := s.store.ListShoppingLists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list shopping lists: %w", err)
	}
	out := make([]ListView, len(lists))
	for i, l := range lists {
		out[i] = viewOf(l)
	}
	return out, nil
}

// List returns the list of category, creating it on first access.
func (s *ShoppingService) List(ctx context.Context, userID, category string) (ListView, error) {
	c, err := resolveShoppingCategory(category)
	if err != nil {
		return ListView{}, err
	}
	l, err := s.store.EnsureShoppingList(ctx, userID, c)
	if err != nil {
		return ListView{}, fmt.Errorf("open shopping list: %w", err)
	}
	return viewOf(l), nil
}

func (s *ShoppingService) AddItem(ctx context.Context, userID, category string, in ItemInput) (core.ShoppingItem, error) {
	it := core.ShoppingItem{Name: strings.TrimSpace(in.Name), EstimatedCost: in.EstimatedCost}
	if err := it.Validate(); err != nil {
		return core.ShoppingItem{}, invalid(err)
	}

	view, err := s.List(ctx, userID, category)
	if err != nil {
		return core.ShoppingItem{}, err
	}
	it.ListID = view.List.ID

	added, err := s.store.AddShoppingItem(ctx, userID, it)
	if err != nil {
		return core.ShoppingItem{}, fmt.Errorf("add shopping item: %w", err)
	}
	s.logger.InfoContext(ctx, "Shopping item added",
		log.FieldUserID, userID,
		log.FieldRecordID, added.ID,
		log.FieldCategory, view.List.Category)
	return added, nil
}

// ToggleItem flips the purchased state of an item.
func (s *ShoppingService) ToggleItem(ctx context.Context, userID, id string) (core.ShoppingItem, error) {
	now := s.clock.Now()
	it, err := s.store.UpdateShoppingItem(ctx, userID, id, func(it core.ShoppingItem) (core.ShoppingItem, error) {
		return core.ToggleItem(it, now), nil
	})
	if err != nil {
		return core.ShoppingItem{}, mutationError("toggle shopping item", err)
	}
	s.invalidate(userID)
	return it, nil
}

func (s *ShoppingService) UpdateItem(ctx context.Context, userID, id string, u ItemUpdate) (core.ShoppingItem, error) {
	if u.empty() {
		return core.ShoppingItem{}, invalid(ErrNoChanges)
	}
	it, err := s.store.UpdateShoppingItem(ctx, userID, id, func(it core.ShoppingItem) (core.ShoppingItem, error) {
		if u.Name != nil {
			it.Name = strings.TrimSpace(*u.Name)
		}
		if u.EstimatedCost != nil {
			it.EstimatedCost = *u.EstimatedCost
		}
		if u.ActualCost != nil {
			return core.SetActualCost(it, *u.ActualCost)
		}
		return it, nil
	})
	if err != nil {
		return core.ShoppingItem{}, mutationError("update shopping item", err)
	}
	s.invalidate(userID)
	return it, nil
}

func (s *ShoppingService) DeleteItem(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteShoppingItem(ctx, userID, id); err != nil {
		return fmt.Errorf("delete shopping item: %w", err)
	}
	s.invalidate(userID)
	return nil
}

func (s *ShoppingService) DeleteList(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteShoppingList(ctx, userID, id); err != nil {
		return fmt.Errorf("delete shopping list: %w", err)
	}
	s.invalidate(userID)
	return nil
}

// PreviousItems lists distinct items bought before in category, most
// recent first.
func (s *ShoppingService) PreviousItems(ctx context.Context, userID, category string) ([]core.ShoppingItem, error) {
	c, err := resolveShoppingCategory(category)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ListPreviousItems(ctx, userID, c)
	if err != nil {
		return nil, fmt.Errorf("list previous items: %w", err)
	}
	return items, nil
}

// Import copies previously bought items back into the list as unpurchased
// entries. With ids set only those previous items are imported.
func (s *ShoppingService) Import(ctx context.Context, userID, category string, ids []string) ([]core.ShoppingItem, error) {
	previous, err := s.PreviousItems(ctx, userID, category)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		wanted := make(map[string]bool, len(ids))
		for _, id := range ids {
			wanted[id] = true
		}
		selected := previous[:0:0]
		for _, p := range previous {
			if wanted[p.ID] {
				selected = append(selected, p)
			}
		}
		previous = selected
	}
	if len(previous) == 0 {
		return []core.ShoppingItem{}, nil
	}

	view, err := s.List(ctx, userID, category)
	if err != nil {
		return nil, err
	}
	added, err := s.store.AddShoppingItems(ctx, userID, view.List.ID, core.ImportItems(view.List.ID, previous))
	if err != nil {
		return nil, fmt.Errorf("import shopping items: %w", err)
	}
	s.logger.InfoContext(ctx, "Imported previous items",
		log.FieldUserID, userID,
		log.FieldCategory, view.List.Category,
		log.FieldOperation, log.OpImport,
		"count", len(added))
	return added, nil
}
