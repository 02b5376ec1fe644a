package storage

import (
	"context"
	"database/sql"
)

// ---- profiles ----

const ensureProfile = `-- name: EnsureProfile :exec
INSERT INTO profiles (id, full_name, currency, monthly_income_cents, created_at, updated_at)
VALUES (?, '', ?, 0, ?, ?)
ON CONFLICT(id) DO NOTHING
`

type EnsureProfileParams struct {
	ID        string
	Currency  string
	CreatedAt string
	UpdatedAt string
}

func (q *Queries) EnsureProfile(ctx context.Context, arg EnsureProfileParams) error {
	_, err := q.db.ExecContext(ctx, ensureProfile, arg.ID, arg.Currency, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getProfile = `-- name: GetProfile :one
SELECT id, full_name, currency, monthly_income_cents, created_at, updated_at
FROM profiles WHERE id = ?
`

func (q *Queries) GetProfile(ctx context.Context, id string) (Profile, error) {
	row := q.db.QueryRowContext(ctx, getProfile, id)
	var i Profile
	err := row.Scan(&i.ID, &i.FullName, &i.Currency, &i.MonthlyIncomeCents, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const updateProfile = `-- name: UpdateProfile :execrows
UPDATE profiles SET full_name = ?, currency = ?, monthly_income_cents = ?, updated_at = ?
WHERE id = ?
`

type UpdateProfileParams struct {
	FullName           string
	Currency           string
	MonthlyIncomeCents int64
	UpdatedAt          string
	ID                 string
}

func (q *Queries) UpdateProfile(ctx context.Context, arg UpdateProfileParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateProfile,
		arg.FullName, arg.Currency, arg.MonthlyIncomeCents, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteProfile = `-- name: DeleteProfile :exec
DELETE FROM profiles WHERE id = ?
`

func (q *Queries) DeleteProfile(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteProfile, id)
	return err
}

// ---- expenses ----

const createExpense = `-- name: CreateExpense :exec
INSERT INTO expenses (id, user_id, amount_cents, description, category, subcategory, date, family_member, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateExpense(ctx context.Context, arg Expense) error {
	_, err := q.db.ExecContext(ctx, createExpense,
		arg.ID, arg.UserID, arg.AmountCents, arg.Description, arg.Category,
		arg.Subcategory, arg.Date, arg.FamilyMember, arg.CreatedAt)
	return err
}

const expenseColumns = `id, user_id, amount_cents, description, category, subcategory, date, family_member, created_at`

const getExpense = `-- name: GetExpense :one
SELECT ` + expenseColumns + ` FROM expenses WHERE id = ? AND user_id = ?
`

func scanExpense(row interface{ Scan(...interface{}) error }) (Expense, error) {
	var i Expense
	err := row.Scan(&i.ID, &i.UserID, &i.AmountCents, &i.Description, &i.Category,
		&i.Subcategory, &i.Date, &i.FamilyMember, &i.CreatedAt)
	return i, err
}

func (q *Queries) GetExpense(ctx context.Context, id, userID string) (Expense, error) {
	return scanExpense(q.db.QueryRowContext(ctx, getExpense, id, userID))
}

const listExpenses = `-- name: ListExpenses :many
SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = ?
ORDER BY date DESC, created_at DESC
`

func (q *Queries) ListExpenses(ctx context.Context, userID string) ([]Expense, error) {
	rows, err := q.db.QueryContext(ctx, listExpenses, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Expense
	for rows.Next() {
		i, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteExpense = `-- name: DeleteExpense :execrows
DELETE FROM expenses WHERE id = ? AND user_id = ?
`

func (q *Queries) DeleteExpense(ctx context.Context, id, userID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteExpense, id, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteUserExpenses = `-- name: DeleteUserExpenses :exec
DELETE FROM expenses WHERE user_id = ?
`

func (q *Queries) DeleteUserExpenses(ctx context.Context, userID string) error {
	_, err := q.db.ExecContext(ctx, deleteUserExpenses, userID)
	return err
}

// ---- income ----

const createIncome = `-- name: CreateIncome :exec
INSERT INTO income (id, user_id, source, amount_cents, date, description, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateIncome(ctx context.Context, arg Income) error {
	_, err := q.db.ExecContext(ctx, createIncome,
		arg.ID, arg.UserID, arg.Source, arg.AmountCents, arg.Date, arg.Description, arg.CreatedAt)
	return err
}

const incomeColumns = `id, user_id, source, amount_cents, date, description, created_at`

func scanIncome(row interface{ Scan(...interface{}) error }) (Income, error) {
	var i Income
	err := row.Scan(&i.ID, &i.UserID, &i.Source, &i.AmountCents, &i.Date, &i.Description, &i.CreatedAt)
	return i, err
}

const getIncome = `-- name: GetIncome :one
SELECT ` + incomeColumns + ` FROM income WHERE id = ? AND user_id = ?
`

func (q *Queries) GetIncome(ctx context.Context, id, userID string) (Income, error) {
	return scanIncome(q.db.QueryRowContext(ctx, getIncome, id, userID))
}

const listIncome = `-- name: ListIncome :many
SELECT ` + incomeColumns + ` FROM income WHERE user_id = ?
ORDER BY date DESC, created_at DESC
`

func (q *Queries) ListIncome(ctx context.Context, userID string) ([]Income, error) {
	rows, err := q.db.QueryContext(ctx, listIncome, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Income
	for rows.Next() {
		i, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteIncome = `-- name: DeleteIncome :execrows
DELETE FROM income WHERE id = ? AND user_id = ?
`

func (q *Queries) DeleteIncome(ctx context.Context, id, userID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteIncome, id, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteUserIncome = `-- name: DeleteUserIncome :exec
DELETE FROM income WHERE user_id = ?
`

func (q *Queries) DeleteUserIncome(ctx context.Context, userID string) error {
	_, err := q.db.ExecContext(ctx, deleteUserIncome, userID)
	return err
}

// ---- shopping lists ----

const createShoppingList = `-- name: CreateShoppingList :exec
INSERT INTO shopping_lists (id, user_id, category, name, created_at)
VALUES (?, ?, ?, ?, ?)
`

func (q *Queries) CreateShoppingList(ctx context.Context, arg ShoppingList) error {
	_, err := q.db.ExecContext(ctx, createShoppingList, arg.ID, arg.UserID, arg.Category, arg.Name, arg.CreatedAt)
	return err
}

const insertShoppingListIfMissing = `-- name: InsertShoppingListIfMissing :exec
INSERT INTO shopping_lists (id, user_id, category, name, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(user_id, category) DO NOTHING
`

func (q *Queries) InsertShoppingListIfMissing(ctx context.Context, arg ShoppingList) error {
	_, err := q.db.ExecContext(ctx, insertShoppingListIfMissing, arg.ID, arg.UserID, arg.Category, arg.Name, arg.CreatedAt)
	return err
}

const shoppingListColumns = `id, user_id, category, name, created_at`

func scanShoppingList(row interface{ Scan(...interface{}) error }) (ShoppingList, error) {
	var i ShoppingList
	err := row.Scan(&i.ID, &i.UserID, &i.Category, &i.Name, &i.CreatedAt)
	return i, err
}

const getShoppingListByCategory = `-- name: GetShoppingListByCategory :one
SELECT ` + shoppingListColumns + ` FROM shopping_lists WHERE user_id = ? AND category = ?
`

func (q *Queries) GetShoppingListByCategory(ctx context.Context, userID, category string) (ShoppingList, error) {
	return scanShoppingList(q.db.QueryRowContext(ctx, getShoppingListByCategory, userID, category))
}

const getShoppingList = `-- name: GetShoppingList :one
SELECT ` + shoppingListColumns + ` FROM shopping_lists WHERE id = ? AND user_id = ?
`

func (q *Queries) GetShoppingList(ctx context.Context, id, userID string) (ShoppingList, error) {
	return scanShoppingList(q.db.QueryRowContext(ctx, getShoppingList, id, userID))
}

const listShoppingLists = `-- name: ListShoppingLists :many
SELECT ` + shoppingListColumns + ` FROM shopping_lists WHERE user_id = ?
ORDER BY created_at, category
`

func (q *Queries) ListShoppingLists(ctx context.Context, userID string) ([]ShoppingList, error) {
	rows, err := q.db.QueryContext(ctx, listShoppingLists, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ShoppingList
	for rows.Next() {
		i, err := scanShoppingList(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteShoppingList = `-- name: DeleteShoppingList :execrows
DELETE FROM shopping_lists WHERE id = ? AND user_id = ?
`

func (q *Queries) DeleteShoppingList(ctx context.Context, id, userID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteShoppingList, id, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteUserShoppingLists = `-- name: DeleteUserShoppingLists :exec
DELETE FROM shopping_lists WHERE user_id = ?
`

func (q *Queries) DeleteUserShoppingLists(ctx context.Context, userID string) error {
	_, err := q.db.ExecContext(ctx, deleteUserShoppingLists, userID)
	return err
}

// ---- shopping items ----

const createShoppingItem = `-- name: CreateShoppingItem :exec
INSERT INTO shopping_items (id, list_id, name, estimated_cost_cents, actual_cost_cents, is_purchased, purchased_at, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateShoppingItem(ctx context.Context, arg ShoppingItem) error {
	_, err := q.db.ExecContext(ctx, createShoppingItem,
		arg.ID, arg.ListID, arg.Name, arg.EstimatedCostCents, arg.ActualCostCents,
		arg.IsPurchased, arg.PurchasedAt, arg.CreatedAt)
	return err
}

const shoppingItemColumns = `i.id, i.list_id, i.name, i.estimated_cost_cents, i.actual_cost_cents, i.is_purchased, i.purchased_at, i.created_at`

func scanShoppingItem(row interface{ Scan(...interface{}) error }) (ShoppingItem, error) {
	var i ShoppingItem
	err := row.Scan(&i.ID, &i.ListID, &i.Name, &i.EstimatedCostCents, &i.ActualCostCents,
		&i.IsPurchased, &i.PurchasedAt, &i.CreatedAt)
	return i, err
}

func (q *Queries) queryShoppingItems(ctx context.Context, query string, args ...interface{}) ([]ShoppingItem, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ShoppingItem
	for rows.Next() {
		i, err := scanShoppingItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getShoppingItem = `-- name: GetShoppingItem :one
SELECT ` + shoppingItemColumns + `
FROM shopping_items i JOIN shopping_lists l ON l.id = i.list_id
WHERE i.id = ? AND l.user_id = ?
`

func (q *Queries) GetShoppingItem(ctx context.Context, id, userID string) (ShoppingItem, error) {
	return scanShoppingItem(q.db.QueryRowContext(ctx, getShoppingItem, id, userID))
}

const listShoppingItemsByUser = `-- name: ListShoppingItemsByUser :many
SELECT ` + shoppingItemColumns + `
FROM shopping_items i JOIN shopping_lists l ON l.id = i.list_id
WHERE l.user_id = ?
ORDER BY i.created_at, i.id
`

func (q *Queries) ListShoppingItemsByUser(ctx context.Context, userID string) ([]ShoppingItem, error) {
	return q.queryShoppingItems(ctx, listShoppingItemsByUser, userID)
}

const listShoppingItemsByList = `-- name: ListShoppingItemsByList :many
SELECT ` + shoppingItemColumns + `
FROM shopping_items i
WHERE i.list_id = ?
ORDER BY i.created_at, i.id
`

func (q *Queries) ListShoppingItemsByList(ctx context.Context, listID string) ([]ShoppingItem, error) {
	return q.queryShoppingItems(ctx, listShoppingItemsByList, listID)
}

const listPurchasedItemsByCategory = `-- name: ListPurchasedItemsByCategory :many
SELECT ` + shoppingItemColumns + `
FROM shopping_items i JOIN shopping_lists l ON l.id = i.list_id
WHERE l.user_id = ? AND l.category = ? AND i.is_purchased = 1
ORDER BY i.purchased_at DESC
`

func (q *Queries) ListPurchasedItemsByCategory(ctx context.Context, userID, category string) ([]ShoppingItem, error) {
	return q.queryShoppingItems(ctx, listPurchasedItemsByCategory, userID, category)
}

const updateShoppingItem = `-- name: UpdateShoppingItem :execrows
UPDATE shopping_items
SET name = ?, estimated_cost_cents = ?, actual_cost_cents = ?, is_purchased = ?, purchased_at = ?
WHERE id = ? AND list_id IN (SELECT id FROM shopping_lists WHERE user_id = ?)
`

type UpdateShoppingItemParams struct {
	Name               string
	EstimatedCostCents int64
	ActualCostCents    sql.NullInt64
	IsPurchased        bool
	PurchasedAt        sql.NullString
	ID                 string
	UserID             string
}

func (q *Queries) UpdateShoppingItem(ctx context.Context, arg UpdateShoppingItemParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateShoppingItem,
		arg.Name, arg.EstimatedCostCents, arg.ActualCostCents, arg.IsPurchased, arg.PurchasedAt,
		arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteShoppingItem = `-- name: DeleteShoppingItem :execrows
DELETE FROM shopping_items
WHERE id = ? AND list_id IN (SELECT id FROM shopping_lists WHERE user_id = ?)
`

func (q *Queries) DeleteShoppingItem(ctx context.Context, id, userID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteShoppingItem, id, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteShoppingItemsByList = `-- name: DeleteShoppingItemsByList :exec
DELETE FROM shopping_items WHERE list_id = ?
`

func (q *Queries) DeleteShoppingItemsByList(ctx context.Context, listID string) error {
	_, err := q.db.ExecContext(ctx, deleteShoppingItemsByList, listID)
	return err
}

const deleteUserShoppingItems = `-- name: DeleteUserShoppingItems :exec
DELETE FROM shopping_items
WHERE list_id IN (SELECT id FROM shopping_lists WHERE user_id = ?)
`

func (q *Queries) DeleteUserShoppingItems(ctx context.Context, userID string) error {
	_, err := q.db.ExecContext(ctx, deleteUserShoppingItems, userID)
	return err
}

// ---- savings goals ----

const createGoal = `-- name: CreateGoal :exec
INSERT INTO savings_goals (id, user_id, title, target_amount_cents, current_amount_cents, target_date, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateGoal(ctx context.Context, arg SavingsGoal) error {
	_, err := q.db.ExecContext(ctx, createGoal,
		arg.ID, arg.UserID, arg.Title, arg.TargetAmountCents, arg.CurrentAmountCents, arg.TargetDate, arg.CreatedAt)
	return err
}

const goalColumns = `id, user_id, title, target_amount_cents, current_amount_cents, target_date, created_at`

func scanGoal(row interface{ Scan(...interface{}) error }) (SavingsGoal, error) {
	var i SavingsGoal
	err := row.Scan(&i.ID, &i.UserID, &i.Title, &i.TargetAmountCents, &i.CurrentAmountCents, &i.TargetDate, &i.CreatedAt)
	return i, err
}

const getGoal = `-- name: GetGoal :one
SELECT ` + goalColumns + ` FROM savings_goals WHERE id = ? AND user_id = ?
`

func (q *Queries) GetGoal(ctx context.Context, id, userID string) (SavingsGoal, error) {
	return scanGoal(q.db.QueryRowContext(ctx, getGoal, id, userID))
}

const listGoals = `-- name: ListGoals :many
SELECT ` + goalColumns + ` FROM savings_goals WHERE user_id = ?
ORDER BY created_at DESC, id
`

func (q *Queries) ListGoals(ctx context.Context, userID string) ([]SavingsGoal, error) {
	rows, err := q.db.QueryContext(ctx, listGoals, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SavingsGoal
	for rows.Next() {
		i, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateGoal = `-- name: UpdateGoal :execrows
UPDATE savings_goals
SET title = ?, target_amount_cents = ?, current_amount_cents = ?, target_date = ?
WHERE id = ? AND user_id = ?
`

func (q *Queries) UpdateGoal(ctx context.Context, arg SavingsGoal) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateGoal,
		arg.Title, arg.TargetAmountCents, arg.CurrentAmountCents, arg.TargetDate, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteGoal = `-- name: DeleteGoal :execrows
DELETE FROM savings_goals WHERE id = ? AND user_id = ?
`

func (q *Queries) DeleteGoal(ctx context.Context, id, userID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteGoal, id, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteUserGoals = `-- name: DeleteUserGoals :exec
DELETE FROM savings_goals WHERE user_id = ?
`

func (q *Queries) DeleteUserGoals(ctx context.Context, userID string) error {
	_, err := q.db.ExecContext(ctx, deleteUserGoals, userID)
	return err
}

// ---- habits ----

const createHabit = `-- name: CreateHabit :exec
INSERT INTO habits (id, user_id, title, category, frequency, current_streak, last_completed, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateHabit(ctx context.Context, arg Habit) error {
	_, err := q.db.ExecContext(ctx, createHabit,
		arg.ID, arg.UserID, arg.Title, arg.Category, arg.Frequency, arg.CurrentStreak, arg.LastCompleted, arg.CreatedAt)
	return err
}

const habitColumns = `id, user_id, title, category, frequency, current_streak, last_completed, created_at`

func scanHabit(row interface{ Scan(...interface{}) error }) (Habit, error) {
	var i Habit
	err := row.Scan(&i.ID, &i.UserID, &i.Title, &i.Category, &i.Frequency, &i.CurrentStreak, &i.LastCompleted, &i.CreatedAt)
	return i, err
}

const getHabit = `-- name: GetHabit :one
SELECT ` + habitColumns + ` FROM habits WHERE id = ? AND user_id = ?
`

func (q *Queries) GetHabit(ctx context.Context, id, userID string) (Habit, error) {
	return scanHabit(q.db.QueryRowContext(ctx, getHabit, id, userID))
}

const listHabits = `-- name: ListHabits :many
SELECT ` + habitColumns + ` FROM habits WHERE user_id = ?
ORDER BY created_at DESC, id
`

func (q *Queries) ListHabits(ctx context.Context, userID string) ([]Habit, error) {
	rows, err := q.db.QueryContext(ctx, listHabits, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Habit
	for rows.Next() {
		i, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateHabitState = `-- name: UpdateHabitState :execrows
UPDATE habits SET current_streak = ?, last_completed = ?
WHERE id = ? AND user_id = ?
`

type UpdateHabitStateParams struct {
	CurrentStreak int64
	LastCompleted sql.NullString
	ID            string
	UserID        string
}

func (q *Queries) UpdateHabitState(ctx context.Context, arg UpdateHabitStateParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateHabitState, arg.CurrentStreak, arg.LastCompleted, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteHabit = `-- name: DeleteHabit :execrows
DELETE FROM habits WHERE id = ? AND user_id = ?
`

func (q *Queries) DeleteHabit(ctx context.Context, id, userID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteHabit, id, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteUserHabits = `-- name: DeleteUserHabits :exec
DELETE FROM habits WHERE user_id = ?
`

func (q *Queries) DeleteUserHabits(ctx context.Context, userID string) error {
	_, err := q.db.ExecContext(ctx, deleteUserHabits, userID)
	return err
}

// ---- expense categories ----

const upsertExpenseCategory = `-- name: UpsertExpenseCategory :exec
INSERT INTO expense_categories (key, name, is_annual, position)
VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET name = excluded.name, is_annual = excluded.is_annual, position = excluded.position
`

func (q *Queries) UpsertExpenseCategory(ctx context.Context, arg ExpenseCategory) error {
	_, err := q.db.ExecContext(ctx, upsertExpenseCategory, arg.Key, arg.Name, arg.IsAnnual, arg.Position)
	return err
}

const deleteExpenseSubcategories = `-- name: DeleteExpenseSubcategories :exec
DELETE FROM expense_subcategories
`

func (q *Queries) DeleteExpenseSubcategories(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteExpenseSubcategories)
	return err
}

const insertExpenseSubcategory = `-- name: InsertExpenseSubcategory :exec
INSERT OR IGNORE INTO expense_subcategories (category_key, name, position) VALUES (?, ?, ?)
`

func (q *Queries) InsertExpenseSubcategory(ctx context.Context, arg ExpenseSubcategory) error {
	_, err := q.db.ExecContext(ctx, insertExpenseSubcategory, arg.CategoryKey, arg.Name, arg.Position)
	return err
}

const listExpenseCategories = `-- name: ListExpenseCategories :many
SELECT key, name, is_annual, position FROM expense_categories ORDER BY position, key
`

func (q *Queries) ListExpenseCategories(ctx context.Context) ([]ExpenseCategory, error) {
	rows, err := q.db.QueryContext(ctx, listExpenseCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ExpenseCategory
	for rows.Next() {
		var i ExpenseCategory
		if err := rows.Scan(&i.Key, &i.Name, &i.IsAnnual, &i.Position); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listExpenseSubcategories = `-- name: ListExpenseSubcategories :many
SELECT category_key, name, position FROM expense_subcategories ORDER BY category_key, position
`

func (q *Queries) ListExpenseSubcategories(ctx context.Context) ([]ExpenseSubcategory, error) {
	rows, err := q.db.QueryContext(ctx, listExpenseSubcategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ExpenseSubcategory
	for rows.Next() {
		var i ExpenseSubcategory
		if err := rows.Scan(&i.CategoryKey, &i.Name, &i.Position); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
