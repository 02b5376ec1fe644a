package core

import (
	"sort"
	"strings"
	"time"
)

// ToggleItem flips the purchased state of it. Marking an item purchased
// copies the estimate into the actual cost and stamps purchased_at with now;
// unmarking clears both.
func ToggleItem(it ShoppingItem, now time.Time) ShoppingItem {
	if it.IsPurchased {
		it.IsPurchased = false
		it.ActualCost = nil
		it.PurchasedAt = nil
		return it
	}
	cost := it.EstimatedCost
	at := now
	it.IsPurchased = true
	it.ActualCost = &cost
	it.PurchasedAt = &at
	return it
}

// SetActualCost records what was really paid for a purchased item.
func SetActualCost(it ShoppingItem, cost Money) (ShoppingItem, error) {
	if !it.IsPurchased {
		return ShoppingItem{}, ErrItemNotPurchased
	}
	if err := cost.ValidateNonNegative(); err != nil {
		return ShoppingItem{}, err
	}
	it.ActualCost = &cost
	return it, nil
}

// PreviousItems lists the distinct purchased items, most recent
// purchase first. Names are compared case-insensitively.
func PreviousItems(items []ShoppingItem) []ShoppingItem {
	seen := make(map[string]bool)
	var out []ShoppingItem
	for _, it := range sortedByPurchase(items) {
		if !it.IsPurchased {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(it.Name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}

func sortedByPurchase(items []ShoppingItem) []ShoppingItem {
	out := append([]ShoppingItem(nil), items...)
	purchasedAt := func(it ShoppingItem) time.Time {
		if it.PurchasedAt == nil {
			return time.Time{}
		}
		return *it.PurchasedAt
	}
	sort.SliceStable(out, func(i, j int) bool {
		return purchasedAt(out[i]).After(purchasedAt(out[j]))
	})
	return out
}

// ImportItems turns previously bought items into fresh, unpurchased entries
// for listID. Only the name and estimated cost carry over.
func ImportItems(listID string, previous []ShoppingItem) []ShoppingItem {
	out := make([]ShoppingItem, 0, len(previous))
	for _, p := range previous {
		estimate := p.EstimatedCost
		if p.ActualCost != nil && estimate.Cents == 0 {
			estimate = *p.ActualCost
		}
		out = append(out, ShoppingItem{
			ListID:        listID,
			Name:          strings.TrimSpace(p.Name),
			EstimatedCost: estimate,
		})
	}
	return out
}

// SummarizeShoppingList computes the totals shown above a list. Items that
// were never costed count as zero.
func SummarizeShoppingList(list ShoppingList) ShoppingListSummary {
	s := ShoppingListSummary{Items: len(list.Items)}
	for _, it := range list.Items {
		s.EstimatedTotal = s.EstimatedTotal.Add(it.EstimatedCost)
		if it.ActualCost != nil {
			s.ActualTotal = s.ActualTotal.Add(*it.ActualCost)
		}
		if it.IsPurchased {
			s.Purchased++
		}
	}
	return s
}

// IsCompleted reports whether every item of a non-empty list is purchased.
func (l ShoppingList) IsCompleted() bool {
	if len(l.Items) == 0 {
		return false
	}
	for _, it := range l.Items {
		if !it.IsPurchased {
			return false
		}
	}
	return true
}
