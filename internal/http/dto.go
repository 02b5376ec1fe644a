package http

import (
	"time"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

type expenseDTO struct {
	ID           string     `json:"id"`
	Amount       core.Money `json:"amount"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	CategoryName string     `json:"category_name"`
	Subcategory  string     `json:"subcategory,omitempty"`
	FamilyMember string     `json:"family_member"`
	Date         core.Date  `json:"date"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toExpenseDTO(e core.Expense) expenseDTO {
	return expenseDTO{
		ID:           e.ID,
		Amount:       e.Amount,
		Description:  e.Description,
		Category:     string(e.Category),
		CategoryName: core.DefaultCatalog().Name(e.Category),
		Subcategory:  e.Subcategory,
		FamilyMember: string(e.FamilyMember),
		Date:         e.Date,
		CreatedAt:    e.CreatedAt,
	}
}

type incomeDTO struct {
	ID          string     `json:"id"`
	Source      string     `json:"source"`
	Amount      core.Money `json:"amount"`
	Description string     `json:"description,omitempty"`
	Date        core.Date  `json:"date"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toIncomeDTO(i core.Income) incomeDTO {
	return incomeDTO{
		ID:          i.ID,
		Source:      i.Source,
		Amount:      i.Amount,
		Description: i.Description,
		Date:        i.Date,
		CreatedAt:   i.CreatedAt,
	}
}

type listDTO[T any] struct {
	Items []T        `json:"items"`
	Total core.Money `json:"total"`
}

type shoppingItemDTO struct {
	ID            string      `json:"id"`
	ListID        string      `json:"list_id"`
	Name          string      `json:"name"`
	EstimatedCost core.Money  `json:"estimated_cost"`
	ActualCost    *core.Money `json:"actual_cost"`
	IsPurchased   bool        `json:"is_purchased"`
	PurchasedAt   *time.Time  `json:"purchased_at"`
	CreatedAt     time.Time   `json:"created_at"`
}

func toShoppingItemDTO(it core.ShoppingItem) shoppingItemDTO {
	return shoppingItemDTO{
		ID:            it.ID,
		ListID:        it.ListID,
		Name:          it.Name,
		EstimatedCost: it.EstimatedCost,
		ActualCost:    it.ActualCost,
		IsPurchased:   it.IsPurchased,
		PurchasedAt:   it.PurchasedAt,
		CreatedAt:     it.CreatedAt,
	}
}

func toShoppingItemDTOs(items []core.ShoppingItem) []shoppingItemDTO {
	out := make([]shoppingItemDTO, len(items))
	for i, it := range items {
		out[i] = toShoppingItemDTO(it)
	}
	return out
}

type shoppingListDTO struct {
	ID           string                   `json:"id"`
	Category     string                   `json:"category"`
	CategoryName string                   `json:"category_name"`
	IsCompleted  bool                     `json:"is_completed"`
	Items        []shoppingItemDTO        `json:"items"`
	Summary      core.ShoppingListSummary `json:"summary"`
	CreatedAt    time.Time                `json:"created_at"`
}

func toShoppingListDTO(v services.ListView) shoppingListDTO {
	return shoppingListDTO{
		ID:           v.List.ID,
		Category:     string(v.List.Category),
		CategoryName: v.List.Category.Name(),
		IsCompleted:  v.List.IsCompleted(),
		Items:        toShoppingItemDTOs(v.List.Items),
		Summary:      v.Summary,
		CreatedAt:    v.List.CreatedAt,
	}
}

type goalDTO struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	TargetAmount  core.Money `json:"target_amount"`
	CurrentAmount core.Money `json:"current_amount"`
	TargetDate    core.Date  `json:"target_date"`
	Progress      float64    `json:"progress"`
	Percent       int        `json:"percent"`
	Label         string     `json:"label"`
	Remaining     core.Money `json:"remaining"`
	DaysRemaining *int       `json:"days_remaining"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toGoalDTO(v services.GoalView) goalDTO {
	return goalDTO{
		ID:            v.Goal.ID,
		Title:         v.Goal.Title,
		TargetAmount:  v.Goal.TargetAmount,
		CurrentAmount: v.Goal.CurrentAmount,
		TargetDate:    v.Goal.TargetDate,
		Progress:      v.Progress,
		Percent:       v.Percent,
		Label:         v.Label,
		Remaining:     v.Remaining,
		DaysRemaining: v.DaysRemaining,
		CreatedAt:     v.Goal.CreatedAt,
	}
}

type goalsDTO struct {
	Goals   []goalDTO         `json:"goals"`
	Summary core.GoalsSummary `json:"summary"`
}

type habitDTO struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Category       string    `json:"category"`
	Frequency      string    `json:"frequency"`
	CurrentStreak  int       `json:"current_streak"`
	LastCompleted  core.Date `json:"last_completed"`
	CompletedToday bool      `json:"completed_today"`
	CreatedAt      time.Time `json:"created_at"`
}

func toHabitDTO(v services.HabitView) habitDTO {
	return habitDTO{
		ID:             v.Habit.ID,
		Title:          v.Habit.Title,
		Category:       string(v.Habit.Category),
		Frequency:      string(v.Habit.Frequency),
		CurrentStreak:  v.Streak,
		LastCompleted:  v.Habit.LastCompleted,
		CompletedToday: v.CompletedToday,
		CreatedAt:      v.Habit.CreatedAt,
	}
}

type profileDTO struct {
	ID             string     `json:"id"`
	FullName       string     `json:"full_name"`
	Currency       string     `json:"currency"`
	CurrencySymbol string     `json:"currency_symbol"`
	MonthlyIncome  core.Money `json:"monthly_income"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func toProfileDTO(p core.Profile) profileDTO {
	return profileDTO{
		ID:             p.ID,
		FullName:       p.FullName,
		Currency:       p.Currency,
		CurrencySymbol: core.CurrencySymbol(p.Currency),
		MonthlyIncome:  p.MonthlyIncome,
		UpdatedAt:      p.UpdatedAt,
	}
}

// reportDTO adds the ordered category breakdown, which Report keeps as a
// map.
type reportDTO struct {
	core.Report
	Breakdown []core.CategoryAmount `json:"category_breakdown"`
}

func toReportDTO(r core.Report) reportDTO {
	return reportDTO{Report: r, Breakdown: r.Breakdown()}
}
