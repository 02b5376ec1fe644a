package sheets

import (
	"context"

	"fintrack/internal/core"
)

// Ledger row kinds.
const (
	KindExpense = "expense"
	KindIncome  = "income"
)

// LedgerRow is one exported expense or income record.
type LedgerRow struct {
	RecordID    string
	UserID      string
	Kind        string
	Date        core.Date
	Description string
	Category    string
	Subcategory string
	Amount      core.Money
}

// Ports for outbound ledger export adapters.
type (
	LedgerWriter interface {
		// Append adds row unless a row with the same record id already exists.
		Append(ctx context.Context, row LedgerRow) error
	}

	LedgerDeleter interface {
		DeleteRecord(ctx context.Context, recordID string) error
		DeleteUser(ctx context.Context, userID string) error
	}

	LedgerReader interface {
		ListRows(ctx context.Context, userID string) ([]LedgerRow, error)
	}

	LedgerSink interface {
		LedgerWriter
		LedgerDeleter
		LedgerReader
	}
)

func ExpenseRow(e core.Expense) LedgerRow {
	return LedgerRow{
		RecordID:    e.ID,
		UserID:      e.UserID,
		Kind:        KindExpense,
		Date:        e.Date,
		Description: e.Description,
		Category:    core.DefaultCatalog().Name(e.Category),
		Subcategory: e.Subcategory,
		Amount:      e.Amount,
	}
}

func IncomeRow(i core.Income) LedgerRow {
	desc := i.Description
	if desc == "" {
		desc = i.Source
	}
	return LedgerRow{
		RecordID:    i.ID,
		UserID:      i.UserID,
		Kind:        KindIncome,
		Date:        i.Date,
		Description: desc,
		Category:    i.Source,
		Amount:      i.Amount,
	}
}
