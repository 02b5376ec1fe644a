package services

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

func newShopping(t *testing.T) (*ShoppingService, *countingInvalidator) {
	t.Helper()
	inv := &countingInvalidator{}
	return NewShoppingService(newTestRepo(t), testDeps(nil, inv)), inv
}

func TestShoppingService_ItemLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, inv := newShopping(t)

	view, err := svc.List(ctx, "u1", "Groceries")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if view.List.Category != core.ShoppingGroceries || len(view.List.Items) != 0 {
		t.Fatalf("unexpected new list %+v", view.List)
	}
	again, _ := svc.List(ctx, "u1", "groceries")
	if again.List.ID != view.List.ID {
		t.Fatal("opening a category twice should return the same list")
	}

	milk, err := svc.AddItem(ctx, "u1", "groceries", ItemInput{Name: " Milk ", EstimatedCost: core.Money{Cents: 250}})
	if err != nil {
		t.Fatal(err)
	}
	if milk.Name != "Milk" || milk.ListID != view.List.ID {
		t.Fatalf("unexpected item %+v", milk)
	}

	if _, err := svc.UpdateItem(ctx, "u1", milk.ID, ItemUpdate{ActualCost: &core.Money{Cents: 300}}); !errors.Is(err, core.ErrItemNotPurchased) || !IsValidation(err) {
		t.Fatalf("actual cost on an unpurchased item should be rejected, got %v", err)
	}

	bought, err := svc.ToggleItem(ctx, "u1", milk.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !bought.IsPurchased || bought.ActualCost == nil || bought.ActualCost.Cents != 250 {
		t.Fatalf("expected purchased item with estimate as cost, got %+v", bought)
	}
	if !bought.PurchasedAt.Equal(testNow) {
		t.Fatalf("purchased_at = %v, want %v", bought.PurchasedAt, testNow)
	}

	updated, err := svc.UpdateItem(ctx, "u1", milk.ID, ItemUpdate{ActualCost: &core.Money{Cents: 275}})
	if err != nil {
		t.Fatal(err)
	}
	if updated.ActualCost.Cents != 275 {
		t.Fatalf("actual cost = %d, want 275", updated.ActualCost.Cents)
	}

	view, _ = svc.List(ctx, "u1", "groceries")
	if view.Summary.Items != 1 || view.Summary.Purchased != 1 || view.Summary.ActualTotal.Cents != 275 {
		t.Fatalf("unexpected summary %+v", view.Summary)
	}
	if inv.calls["u1"] != 2 {
		t.Fatalf("expected 2 invalidations, got %d", inv.calls["u1"])
	}

	if _, err := svc.UpdateItem(ctx, "u1", milk.ID, ItemUpdate{}); !errors.Is(err, ErrNoChanges) {
		t.Fatalf("expected ErrNoChanges, got %v", err)
	}
	if _, err := svc.ToggleItem(ctx, "u2", milk.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("other users cannot toggle items, got %v", err)
	}
	if err := svc.DeleteItem(ctx, "u1", milk.ID); err != nil {
		t.Fatal(err)
	}
}

func TestShoppingService_RejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newShopping(t)

	if _, err := svc.List(ctx, "u1", "toys"); !errors.Is(err, ErrUnknownCategory) || !IsValidation(err) {
		t.Fatalf("expected unknown category, got %v", err)
	}
	if _, err := svc.AddItem(ctx, "u1", "groceries", ItemInput{Name: " "}); !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := svc.AddItem(ctx, "u1", "groceries", ItemInput{Name: "Bread", EstimatedCost: core.Money{Cents: -5}}); !IsValidation(err) {
		t.Fatalf("negative estimate should be rejected, got %v", err)
	}
}

func TestShoppingService_ImportPrevious(t *testing.T) {
	ctx := context.Background()
	svc, _ := newShopping(t)

	var ids []string
	for _, name := range []string{"Milk", "Eggs", "Bread"} {
		it, err := svc.AddItem(ctx, "u1", "groceries", ItemInput{Name: name, EstimatedCost: core.Money{Cents: 100}})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, it.ID)
	}
	for _, id := range ids[:2] {
		if _, err := svc.ToggleItem(ctx, "u1", id); err != nil {
			t.Fatal(err)
		}
	}

	prev, err := svc.PreviousItems(ctx, "u1", "groceries")
	if err != nil {
		t.Fatal(err)
	}
	if len(prev) != 2 {
		t.Fatalf("expected 2 previously bought items, got %+v", prev)
	}

	none, err := svc.Import(ctx, "u1", "groceries", []string{"missing"})
	if err != nil || len(none) != 0 {
		t.Fatalf("importing unknown ids should add nothing, got %+v, %v", none, err)
	}

	added, err := svc.Import(ctx, "u1", "groceries", []string{ids[1]})
	if err != nil {
		t.Fatal(err)
	}
	if len(added) != 1 || added[0].Name != "Eggs" || added[0].IsPurchased {
		t.Fatalf("unexpected imported items %+v", added)
	}

	all, err := svc.Import(ctx, "u1", "groceries", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both previous items imported, got %d", len(all))
	}

	view, _ := svc.List(ctx, "u1", "groceries")
	if len(view.List.Items) != 6 {
		t.Fatalf("expected 6 items after imports, got %d", len(view.List.Items))
	}

	lists, err := svc.Lists(ctx, "u1")
	if err != nil || len(lists) != 1 {
		t.Fatalf("expected one list, got %d (err=%v)", len(lists), err)
	}
	if err := svc.DeleteList(ctx, "u1", view.List.ID); err != nil {
		t.Fatal(err)
	}
	if lists, _ := svc.Lists(ctx, "u1"); len(lists) != 0 {
		t.Fatalf("expected no lists after delete, got %d", len(lists))
	}
}
