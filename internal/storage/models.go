package storage

import "database/sql"

type Profile struct {
	ID                 string
	FullName           string
	Currency           string
	MonthlyIncomeCents int64
	CreatedAt          string
	UpdatedAt          string
}

type Expense struct {
	ID           string
	UserID       string
	AmountCents  int64
	Description  string
	Category     string
	Subcategory  sql.NullString
	Date         string
	FamilyMember sql.NullString
	CreatedAt    string
}

type Income struct {
	ID          string
	UserID      string
	Source      string
	AmountCents int64
	Date        string
	Description sql.NullString
	CreatedAt   string
}

type ShoppingList struct {
	ID        string
	UserID    string
	Category  string
	Name      string
	CreatedAt string
}

type ShoppingItem struct {
	ID                 string
	ListID             string
	Name               string
	EstimatedCostCents int64
	ActualCostCents    sql.NullInt64
	IsPurchased        bool
	PurchasedAt        sql.NullString
	CreatedAt          string
}

type SavingsGoal struct {
	ID                 string
	UserID             string
	Title              string
	TargetAmountCents  int64
	CurrentAmountCents int64
	TargetDate         sql.NullString
	CreatedAt          string
}

type Habit struct {
	ID            string
	UserID        string
	Title         string
	Category      string
	Frequency     string
	CurrentStreak int64
	LastCompleted sql.NullString
	CreatedAt     string
}

type ExpenseCategory struct {
	Key      string
	Name     string
	IsAnnual bool
	Position int64
}

type ExpenseSubcategory struct {
	CategoryKey string
	Name        string
	Position    int64
}
