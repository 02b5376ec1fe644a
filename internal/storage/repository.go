package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fintrack/internal/core"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when a row does not exist or belongs to
	// another user.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint rejects a write.
	ErrConflict = errors.New("already exists")
)

const timeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	now     func() time.Time
}

// DSN adds the connection pragmas the repository relies on to a file path.
func DSN(dbPath string) string {
	return dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", DSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &SQLiteRepository{
		db:      db,
		queries: New(db),
		now:     func() time.Time { return time.Now().UTC() },
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks that the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) withTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(r.queries.WithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func affected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *SQLiteRepository) stamp(id *string, created *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if created.IsZero() {
		*created = r.now()
	}
}

// Expenses

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	r.stamp(&e.ID, &e.CreatedAt)
	if err := r.queries.CreateExpense(ctx, expenseRow(e)); err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", e.ID,
		"user_id", e.UserID,
		"amount_cents", e.Amount.Cents,
		"category", e.Category,
		"date", e.Date.String())

	return e, nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, userID, id string) (core.Expense, error) {
	row, err := r.queries.GetExpense(ctx, id, userID)
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", notFound(err))
	}
	return expenseFromRow(row), nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context, userID string) ([]core.Expense, error) {
	rows, err := r.queries.ListExpenses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	out := make([]core.Expense, len(rows))
	for i, row := range rows {
		out[i] = expenseFromRow(row)
	}
	return out, nil
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, userID, id string) error {
	if err := affected(r.queries.DeleteExpense(ctx, id, userID)); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// Income

func (r *SQLiteRepository) CreateIncome(ctx context.Context, in core.Income) (core.Income, error) {
	r.stamp(&in.ID, &in.CreatedAt)
	if err := r.queries.CreateIncome(ctx, incomeRow(in)); err != nil {
		return core.Income{}, fmt.Errorf("create income: %w", err)
	}

	slog.InfoContext(ctx, "Income saved to SQLite",
		"id", in.ID,
		"user_id", in.UserID,
		"amount_cents", in.Amount.Cents,
		"date", in.Date.String())

	return in, nil
}

func (r *SQLiteRepository) GetIncome(ctx context.Context, userID, id string) (core.Income, error) {
	row, err := r.queries.GetIncome(ctx, id, userID)
	if err != nil {
		return core.Income{}, fmt.Errorf("get income: %w", notFound(err))
	}
	return incomeFromRow(row), nil
}

func (r *SQLiteRepository) ListIncome(ctx context.Context, userID string) ([]core.Income, error) {
	rows, err := r.queries.ListIncome(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}
	out := make([]core.Income, len(rows))
	for i, row := range rows {
		out[i] = incomeFromRow(row)
	}
	return out, nil
}

func (r *SQLiteRepository) DeleteIncome(ctx context.Context, userID, id string) error {
	if err := affected(r.queries.DeleteIncome(ctx, id, userID)); err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	return nil
}

// Shopping

// ListShoppingLists returns every list of the user with its items.
func (r *SQLiteRepository) ListShoppingLists(ctx context.Context, userID string) ([]core.ShoppingList, error) {
	lists, err := r.queries.ListShoppingLists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list shopping lists: %w", err)
	}
	items, err := r.queries.ListShoppingItemsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list shopping items: %w", err)
	}

	byList := make(map[string][]core.ShoppingItem, len(lists))
	for _, it := range items {
		byList[it.ListID] = append(byList[it.ListID], shoppingItemFromRow(it))
	}
	out := make([]core.ShoppingList, len(lists))
	for i, l := range lists {
		out[i] = shoppingListFromRow(l)
		out[i].Items = byList[l.ID]
	}
	return out, nil
}

// EnsureShoppingList returns the user's list for category, creating an empty
// one on first access.
func (r *SQLiteRepository) EnsureShoppingList(ctx context.Context, userID string, category core.ShoppingCategory) (core.ShoppingList, error) {
	row := ShoppingList{
		ID:        uuid.NewString(),
		UserID:    userID,
		Category:  string(category),
		Name:      category.Name(),
		CreatedAt: r.now().Format(timeLayout),
	}
	if err := r.queries.InsertShoppingListIfMissing(ctx, row); err != nil {
		return core.ShoppingList{}, fmt.Errorf("ensure shopping list: %w", err)
	}
	list, err := r.queries.GetShoppingListByCategory(ctx, userID, string(category))
	if err != nil {
		return core.ShoppingList{}, fmt.Errorf("get shopping list: %w", notFound(err))
	}
	return r.loadItems(ctx, shoppingListFromRow(list))
}

// CreateShoppingList creates a list; a user may hold one list per category.
func (r *SQLiteRepository) CreateShoppingList(ctx context.Context, list core.ShoppingList) (core.ShoppingList, error) {
	r.stamp(&list.ID, &list.CreatedAt)
	if strings.TrimSpace(list.Name) == "" {
		list.Name = list.Category.Name()
	}
	err := r.queries.CreateShoppingList(ctx, ShoppingList{
		ID:        list.ID,
		UserID:    list.UserID,
		Category:  string(list.Category),
		Name:      list.Name,
		CreatedAt: list.CreatedAt.Format(timeLayout),
	})
	if isUniqueViolation(err) {
		return core.ShoppingList{}, fmt.Errorf("create shopping list: %w", ErrConflict)
	}
	if err != nil {
		return core.ShoppingList{}, fmt.Errorf("create shopping list: %w", err)
	}
	list.Items = nil
	return list, nil
}

func (r *SQLiteRepository) GetShoppingList(ctx context.Context, userID, id string) (core.ShoppingList, error) {
	row, err := r.queries.GetShoppingList(ctx, id, userID)
	if err != nil {
		return core.ShoppingList{}, fmt.Errorf("get shopping list: %w", notFound(err))
	}
	return r.loadItems(ctx, shoppingListFromRow(row))
}

func (r *SQLiteRepository) loadItems(ctx context.Context, list core.ShoppingList) (core.ShoppingList, error) {
	items, err := r.queries.ListShoppingItemsByList(ctx, list.ID)
	if err != nil {
		return core.ShoppingList{}, fmt.Errorf("list shopping items: %w", err)
	}
	list.Items = make([]core.ShoppingItem, len(items))
	for i, it := range items {
		list.Items[i] = shoppingItemFromRow(it)
	}
	return list, nil
}

// DeleteShoppingList removes a list together with its items.
func (r *SQLiteRepository) DeleteShoppingList(ctx context.Context, userID, id string) error {
	err := r.withTx(ctx, func(q *Queries) error {
		if _, err := q.GetShoppingList(ctx, id, userID); err != nil {
			return notFound(err)
		}
		if err := q.DeleteShoppingItemsByList(ctx, id); err != nil {
			return err
		}
		return affected(q.DeleteShoppingList(ctx, id, userID))
	})
	if err != nil {
		return fmt.Errorf("delete shopping list: %w", err)
	}
	return nil
}

// AddShoppingItems inserts items into one of the user's lists in a single
// transaction.
func (r *SQLiteRepository) AddShoppingItems(ctx context.Context, userID, listID string, items []core.ShoppingItem) ([]core.ShoppingItem, error) {
	out := make([]core.ShoppingItem, 0, len(items))
	err := r.withTx(ctx, func(q *Queries) error {
		if _, err := q.GetShoppingList(ctx, listID, userID); err != nil {
			return notFound(err)
		}
		for _, it := range items {
			it.ListID = listID
			r.stamp(&it.ID, &it.CreatedAt)
			if err := q.CreateShoppingItem(ctx, shoppingItemRow(it)); err != nil {
				return err
			}
			out = append(out, it)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add shopping items: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) AddShoppingItem(ctx context.Context, userID string, item core.ShoppingItem) (core.ShoppingItem, error) {
	added, err := r.AddShoppingItems(ctx, userID, item.ListID, []core.ShoppingItem{item})
	if err != nil {
		return core.ShoppingItem{}, err
	}
	return added[0], nil
}

func (r *SQLiteRepository) GetShoppingItem(ctx context.Context, userID, id string) (core.ShoppingItem, error) {
	row, err := r.queries.GetShoppingItem(ctx, id, userID)
	if err != nil {
		return core.ShoppingItem{}, fmt.Errorf("get shopping item: %w", notFound(err))
	}
	return shoppingItemFromRow(row), nil
}

// UpdateShoppingItem reads the item, applies fn and writes the result back
// inside one transaction.
func (r *SQLiteRepository) UpdateShoppingItem(ctx context.Context, userID, id string, fn func(core.ShoppingItem) (core.ShoppingItem, error)) (core.ShoppingItem, error) {
	var updated core.ShoppingItem
	err := r.withTx(ctx, func(q *Queries) error {
		row, err := q.GetShoppingItem(ctx, id, userID)
		if err != nil {
			return notFound(err)
		}
		next, err := fn(shoppingItemFromRow(row))
		if err != nil {
			return err
		}
		if err := next.Validate(); err != nil {
			return err
		}
		params := shoppingItemRow(next)
		err = affected(q.UpdateShoppingItem(ctx, UpdateShoppingItemParams{
			Name:               params.Name,
			EstimatedCostCents: params.EstimatedCostCents,
			ActualCostCents:    params.ActualCostCents,
			IsPurchased:        params.IsPurchased,
			PurchasedAt:        params.PurchasedAt,
			ID:                 id,
			UserID:             userID,
		}))
		if err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return core.ShoppingItem{}, fmt.Errorf("update shopping item: %w", err)
	}
	return updated, nil
}

func (r *SQLiteRepository) DeleteShoppingItem(ctx context.Context, userID, id string) error {
	if err := affected(r.queries.DeleteShoppingItem(ctx, id, userID)); err != nil {
		return fmt.Errorf("delete shopping item: %w", err)
	}
	return nil
}

// ListPreviousItems returns the distinct items already bought in the user's
// list for category, most recent first.
func (r *SQLiteRepository) ListPreviousItems(ctx context.Context, userID string, category core.ShoppingCategory) ([]core.ShoppingItem, error) {
	rows, err := r.queries.ListPurchasedItemsByCategory(ctx, userID, string(category))
	if err != nil {
		return nil, fmt.Errorf("list previous items: %w", err)
	}
	items := make([]core.ShoppingItem, len(rows))
	for i, row := range rows {
		items[i] = shoppingItemFromRow(row)
	}
	return core.PreviousItems(items), nil
}

// Goals

func (r *SQLiteRepository) CreateGoal(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error) {
	r.stamp(&g.ID, &g.CreatedAt)
	if err := r.queries.CreateGoal(ctx, goalRow(g)); err != nil {
		return core.SavingsGoal{}, fmt.Errorf("create goal: %w", err)
	}
	return g, nil
}

func (r *SQLiteRepository) GetGoal(ctx context.Context, userID, id string) (core.SavingsGoal, error) {
	row, err := r.queries.GetGoal(ctx, id, userID)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("get goal: %w", notFound(err))
	}
	return goalFromRow(row), nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context, userID string) ([]core.SavingsGoal, error) {
	rows, err := r.queries.ListGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	out := make([]core.SavingsGoal, len(rows))
	for i, row := range rows {
		out[i] = goalFromRow(row)
	}
	return out, nil
}

// UpdateGoal applies a partial update atomically.
func (r *SQLiteRepository) UpdateGoal(ctx context.Context, userID, id string, u core.GoalUpdate) (core.SavingsGoal, error) {
	var updated core.SavingsGoal
	err := r.withTx(ctx, func(q *Queries) error {
		row, err := q.GetGoal(ctx, id, userID)
		if err != nil {
			return notFound(err)
		}
		next, err := core.ApplyGoalUpdate(goalFromRow(row), u)
		if err != nil {
			return err
		}
		if err := affected(q.UpdateGoal(ctx, goalRow(next))); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("update goal: %w", err)
	}
	return updated, nil
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, userID, id string) error {
	if err := affected(r.queries.DeleteGoal(ctx, id, userID)); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

// Habits

func (r *SQLiteRepository) CreateHabit(ctx context.Context, h core.Habit) (core.Habit, error) {
	r.stamp(&h.ID, &h.CreatedAt)
	if err := r.queries.CreateHabit(ctx, habitRow(h)); err != nil {
		return core.Habit{}, fmt.Errorf("create habit: %w", err)
	}
	return h, nil
}

func (r *SQLiteRepository) GetHabit(ctx context.Context, userID, id string) (core.Habit, error) {
	row, err := r.queries.GetHabit(ctx, id, userID)
	if err != nil {
		return core.Habit{}, fmt.Errorf("get habit: %w", notFound(err))
	}
	return habitFromRow(row), nil
}

func (r *SQLiteRepository) ListHabits(ctx context.Context, userID string) ([]core.Habit, error) {
	rows, err := r.queries.ListHabits(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	out := make([]core.Habit, len(rows))
	for i, row := range rows {
		out[i] = habitFromRow(row)
	}
	return out, nil
}

// UpdateHabitState reads the habit, applies fn and persists the new streak
// and completion date inside one transaction.
func (r *SQLiteRepository) UpdateHabitState(ctx context.Context, userID, id string, fn func(core.Habit) core.Habit) (core.Habit, error) {
	var updated core.Habit
	err := r.withTx(ctx, func(q *Queries) error {
		row, err := q.GetHabit(ctx, id, userID)
		if err != nil {
			return notFound(err)
		}
		next := fn(habitFromRow(row))
		err = affected(q.UpdateHabitState(ctx, UpdateHabitStateParams{
			CurrentStreak: int64(next.CurrentStreak),
			LastCompleted: nullDate(next.LastCompleted),
			ID:            id,
			UserID:        userID,
		}))
		if err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return core.Habit{}, fmt.Errorf("update habit: %w", err)
	}
	return updated, nil
}

func (r *SQLiteRepository) DeleteHabit(ctx context.Context, userID, id string) error {
	if err := affected(r.queries.DeleteHabit(ctx, id, userID)); err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}

// Profile

// GetProfile returns the user's profile, creating it with defaults on first
// access.
func (r *SQLiteRepository) GetProfile(ctx context.Context, userID string) (core.Profile, error) {
	if err := r.ensureProfile(ctx, r.queries, userID); err != nil {
		return core.Profile{}, err
	}
	row, err := r.queries.GetProfile(ctx, userID)
	if err != nil {
		return core.Profile{}, fmt.Errorf("get profile: %w", notFound(err))
	}
	return profileFromRow(row), nil
}

func (r *SQLiteRepository) ensureProfile(ctx context.Context, q *Queries, userID string) error {
	now := r.now().Format(timeLayout)
	err := q.EnsureProfile(ctx, EnsureProfileParams{
		ID:        userID,
		Currency:  core.DefaultCurrency,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("ensure profile: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateProfile(ctx context.Context, p core.Profile) (core.Profile, error) {
	var updated core.Profile
	err := r.withTx(ctx, func(q *Queries) error {
		if err := r.ensureProfile(ctx, q, p.ID); err != nil {
			return err
		}
		err := affected(q.UpdateProfile(ctx, UpdateProfileParams{
			FullName:           p.FullName,
			Currency:           p.Currency,
			MonthlyIncomeCents: p.MonthlyIncome.Cents,
			UpdatedAt:          r.now().Format(timeLayout),
			ID:                 p.ID,
		}))
		if err != nil {
			return err
		}
		row, err := q.GetProfile(ctx, p.ID)
		if err != nil {
			return notFound(err)
		}
		updated = profileFromRow(row)
		return nil
	})
	if err != nil {
		return core.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}

// DeleteAccount removes every row owned by the user in one transaction.
func (r *SQLiteRepository) DeleteAccount(ctx context.Context, userID string) error {
	err := r.withTx(ctx, func(q *Queries) error {
		steps := []func(context.Context, string) error{
			q.DeleteUserShoppingItems,
			q.DeleteUserShoppingLists,
			q.DeleteUserExpenses,
			q.DeleteUserIncome,
			q.DeleteUserGoals,
			q.DeleteUserHabits,
			q.DeleteProfile,
		}
		for _, step := range steps {
			if err := step(ctx, userID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	slog.InfoContext(ctx, "Account data deleted", "user_id", userID)
	return nil
}

// Categories

// SeedCategories replaces the stored category table with cat.
func (r *SQLiteRepository) SeedCategories(ctx context.Context, cat core.Catalog) error {
	err := r.withTx(ctx, func(q *Queries) error {
		if err := q.DeleteExpenseSubcategories(ctx); err != nil {
			return err
		}
		for pos, info := range cat.All() {
			err := q.UpsertExpenseCategory(ctx, ExpenseCategory{
				Key:      string(info.Key),
				Name:     info.Name,
				IsAnnual: info.Annual,
				Position: int64(pos),
			})
			if err != nil {
				return err
			}
			for i, sub := range info.Subcategories {
				err := q.InsertExpenseSubcategory(ctx, ExpenseSubcategory{
					CategoryKey: string(info.Key),
					Name:        sub,
					Position:    int64(i),
				})
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}

// ListCategories returns the stored expense categories in display order.
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.CategoryInfo, error) {
	cats, err := r.queries.ListExpenseCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	subs, err := r.queries.ListExpenseSubcategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}

	byKey := make(map[string][]string)
	for _, s := range subs {
		byKey[s.CategoryKey] = append(byKey[s.CategoryKey], s.Name)
	}
	out := make([]core.CategoryInfo, len(cats))
	for i, c := range cats {
		out[i] = core.CategoryInfo{
			Key:           core.ExpenseCategory(c.Key),
			Name:          c.Name,
			Annual:        c.IsAnnual,
			Subcategories: byKey[c.Key],
		}
	}
	return out, nil
}
