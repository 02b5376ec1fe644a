package storage

import (
	"database/sql"
	"time"

	"fintrack/internal/core"
)

func parseTime(s string) time.Time {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t
	}
	d, _ := core.ParseDate(s)
	return d.Time
}

// parseDate yields the zero Date for malformed values, which keeps such rows
// out of every period.
func parseDate(s string) core.Date {
	d, _ := core.ParseDate(s)
	return d
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDate(d core.Date) sql.NullString {
	return nullString(d.String())
}

func expenseRow(e core.Expense) Expense {
	return Expense{
		ID:           e.ID,
		UserID:       e.UserID,
		AmountCents:  e.Amount.Cents,
		Description:  e.Description,
		Category:     string(e.Category),
		Subcategory:  nullString(e.Subcategory),
		Date:         e.Date.String(),
		FamilyMember: nullString(string(e.FamilyMember)),
		CreatedAt:    e.CreatedAt.Format(timeLayout),
	}
}

func expenseFromRow(row Expense) core.Expense {
	e := core.Expense{
		ID:          row.ID,
		UserID:      row.UserID,
		Amount:      core.Money{Cents: row.AmountCents},
		Description: row.Description,
		Category:    core.LookupExpenseCategory(row.Category),
		Subcategory: row.Subcategory.String,
		Date:        parseDate(row.Date),
		CreatedAt:   parseTime(row.CreatedAt),
	}
	if row.FamilyMember.Valid {
		e.FamilyMember = core.LookupFamilyMember(row.FamilyMember.String)
	}
	return e
}

func incomeRow(in core.Income) Income {
	return Income{
		ID:          in.ID,
		UserID:      in.UserID,
		Source:      in.Source,
		AmountCents: in.Amount.Cents,
		Date:        in.Date.String(),
		Description: nullString(in.Description),
		CreatedAt:   in.CreatedAt.Format(timeLayout),
	}
}

func incomeFromRow(row Income) core.Income {
	return core.Income{
		ID:          row.ID,
		UserID:      row.UserID,
		Source:      row.Source,
		Amount:      core.Money{Cents: row.AmountCents},
		Date:        parseDate(row.Date),
		Description: row.Description.String,
		CreatedAt:   parseTime(row.CreatedAt),
	}
}

func shoppingListFromRow(row ShoppingList) core.ShoppingList {
	return core.ShoppingList{
		ID:        row.ID,
		UserID:    row.UserID,
		Category:  core.LookupShoppingCategory(row.Category),
		Name:      row.Name,
		CreatedAt: parseTime(row.CreatedAt),
	}
}

func shoppingItemRow(it core.ShoppingItem) ShoppingItem {
	row := ShoppingItem{
		ID:                 it.ID,
		ListID:             it.ListID,
		Name:               it.Name,
		EstimatedCostCents: it.EstimatedCost.Cents,
		IsPurchased:        it.IsPurchased,
		CreatedAt:          it.CreatedAt.Format(timeLayout),
	}
	if it.ActualCost != nil {
		row.ActualCostCents = sql.NullInt64{Int64: it.ActualCost.Cents, Valid: true}
	}
	if it.PurchasedAt != nil {
		row.PurchasedAt = sql.NullString{String: it.PurchasedAt.Format(timeLayout), Valid: true}
	}
	return row
}

func shoppingItemFromRow(row ShoppingItem) core.ShoppingItem {
	it := core.ShoppingItem{
		ID:            row.ID,
		ListID:        row.ListID,
		Name:          row.Name,
		EstimatedCost: core.Money{Cents: row.EstimatedCostCents},
		IsPurchased:   row.IsPurchased,
		CreatedAt:     parseTime(row.CreatedAt),
	}
	if row.ActualCostCents.Valid {
		it.ActualCost = &core.Money{Cents: row.ActualCostCents.Int64}
	}
	if row.PurchasedAt.Valid {
		t := parseTime(row.PurchasedAt.String)
		if !t.IsZero() {
			it.PurchasedAt = &t
		}
	}
	return it
}

func goalRow(g core.SavingsGoal) SavingsGoal {
	return SavingsGoal{
		ID:                 g.ID,
		UserID:             g.UserID,
		Title:              g.Title,
		TargetAmountCents:  g.TargetAmount.Cents,
		CurrentAmountCents: g.CurrentAmount.Cents,
		TargetDate:         nullDate(g.TargetDate),
		CreatedAt:          g.CreatedAt.Format(timeLayout),
	}
}

func goalFromRow(row SavingsGoal) core.SavingsGoal {
	g := core.SavingsGoal{
		ID:            row.ID,
		UserID:        row.UserID,
		Title:         row.Title,
		TargetAmount:  core.Money{Cents: row.TargetAmountCents},
		CurrentAmount: core.Money{Cents: row.CurrentAmountCents},
		CreatedAt:     parseTime(row.CreatedAt),
	}
	if row.TargetDate.Valid {
		g.TargetDate = parseDate(row.TargetDate.String)
	}
	return g
}

func habitRow(h core.Habit) Habit {
	return Habit{
		ID:            h.ID,
		UserID:        h.UserID,
		Title:         h.Title,
		Category:      string(h.Category),
		Frequency:     string(h.Frequency),
		CurrentStreak: int64(h.CurrentStreak),
		LastCompleted: nullDate(h.LastCompleted),
		CreatedAt:     h.CreatedAt.Format(timeLayout),
	}
}

func habitFromRow(row Habit) core.Habit {
	h := core.Habit{
		ID:            row.ID,
		UserID:        row.UserID,
		Title:         row.Title,
		Category:      core.LookupHabitCategory(row.Category),
		Frequency:     core.LookupHabitFrequency(row.Frequency),
		CurrentStreak: int(row.CurrentStreak),
		CreatedAt:     parseTime(row.CreatedAt),
	}
	if row.LastCompleted.Valid {
		h.LastCompleted = parseDate(row.LastCompleted.String)
	}
	return h
}

func profileFromRow(row Profile) core.Profile {
	return core.Profile{
		ID:            row.ID,
		FullName:      row.FullName,
		Currency:      row.Currency,
		MonthlyIncome: core.Money{Cents: row.MonthlyIncomeCents},
		CreatedAt:     parseTime(row.CreatedAt),
		UpdatedAt:     parseTime(row.UpdatedAt),
	}
}
