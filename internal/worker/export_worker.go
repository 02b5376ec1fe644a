package worker

import (
	"context"
	"errors"
	"fmt"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/sheets"
	"fintrack/internal/storage"
)

// RecordSource reads the ledger records an event refers to.
type RecordSource interface {
	GetExpense(ctx context.Context, userID, id string) (core.Expense, error)
	GetIncome(ctx context.Context, userID, id string) (core.Income, error)
	ListExpenses(ctx context.Context, userID string) ([]core.Expense, error)
	ListIncome(ctx context.Context, userID string) ([]core.Income, error)
}

// ExportWorker mirrors ledger mutations into an export sink.
type ExportWorker struct {
	source RecordSource
	sink   sheets.LedgerSink
	logger *log.Logger
}

func NewExportWorker(source RecordSource, sink sheets.LedgerSink, logger *log.Logger) *ExportWorker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &ExportWorker{
		source: source,
		sink:   sink,
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// HandleEvent applies one ledger event to the sink. A record that no longer
// exists by the time a create event arrives has been deleted since, and the
// matching delete event will clean up; the create is dropped.
func (w *ExportWorker) HandleEvent(ctx context.Context, ev amqp.LedgerEvent) error {
	w.logger.InfoContext(ctx, "Processing ledger event",
		log.FieldEventType, ev.Type,
		log.FieldUserID, ev.UserID,
		log.FieldRecordID, ev.RecordID)

	switch ev.Type {
	case amqp.EventExpenseCreated:
		e, err := w.source.GetExpense(ctx, ev.UserID, ev.RecordID)
		if errors.Is(err, storage.ErrNotFound) {
			w.logger.WarnContext(ctx, "Expense gone before export", log.FieldRecordID, ev.RecordID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("get expense: %w", err)
		}
		return w.append(ctx, sheets.ExpenseRow(e))

	case amqp.EventIncomeCreated:
		in, err := w.source.GetIncome(ctx, ev.UserID, ev.RecordID)
		if errors.Is(err, storage.ErrNotFound) {
			w.logger.WarnContext(ctx, "Income gone before export", log.FieldRecordID, ev.RecordID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("get income: %w", err)
		}
		return w.append(ctx, sheets.IncomeRow(in))

	case amqp.EventExpenseDeleted, amqp.EventIncomeDeleted:
		if err := w.sink.DeleteRecord(ctx, ev.RecordID); err != nil {
			return fmt.Errorf("delete exported record: %w", err)
		}
		return nil

	case amqp.EventAccountDeleted:
		if err := w.sink.DeleteUser(ctx, ev.UserID); err != nil {
			return fmt.Errorf("delete exported rows of user: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", amqp.ErrUnknownEvent, ev.Type)
	}
}

func (w *ExportWorker) append(ctx context.Context, row sheets.LedgerRow) error {
	if err := w.sink.Append(ctx, row); err != nil {
		return fmt.Errorf("export %s: %w", row.Kind, err)
	}
	return nil
}

// ReconcileResult counts the rows a reconciliation changed.
type ReconcileResult struct {
	Appended int
	Removed  int
}

// Reconcile brings the exported rows of userID in line with the database.
// It repairs drift left by events lost while the broker was unreachable.
func (w *ExportWorker) Reconcile(ctx context.Context, userID string) (ReconcileResult, error) {
	var res ReconcileResult

	expenses, err := w.source.ListExpenses(ctx, userID)
	if err != nil {
		return res, fmt.Errorf("list expenses: %w", err)
	}
	income, err := w.source.ListIncome(ctx, userID)
	if err != nil {
		return res, fmt.Errorf("list income: %w", err)
	}
	exported, err := w.sink.ListRows(ctx, userID)
	if err != nil {
		return res, fmt.Errorf("list exported rows: %w", err)
	}

	want := make(map[string]sheets.LedgerRow, len(expenses)+len(income))
	for _, e := range expenses {
		want[e.ID] = sheets.ExpenseRow(e)
	}
	for _, in := range income {
		want[in.ID] = sheets.IncomeRow(in)
	}

	have := make(map[string]bool, len(exported))
	for _, row := range exported {
		have[row.RecordID] = true
		if _, ok := want[row.RecordID]; ok {
			continue
		}
		if err := w.sink.DeleteRecord(ctx, row.RecordID); err != nil {
			return res, fmt.Errorf("delete stale row: %w", err)
		}
		res.Removed++
	}

	for _, e := range expenses {
		if !have[e.ID] {
			if err := w.append(ctx, want[e.ID]); err != nil {
				return res, err
			}
			res.Appended++
		}
	}
	for _, in := range income {
		if !have[in.ID] {
			if err := w.append(ctx, want[in.ID]); err != nil {
				return res, err
			}
			res.Appended++
		}
	}

	w.logger.InfoContext(ctx, "Reconciled ledger export",
		log.FieldUserID, userID,
		"appended", res.Appended,
		"removed", res.Removed)
	return res, nil
}
