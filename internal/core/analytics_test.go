package core

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var march2025 = time.Date(2025, 3, 18, 12, 0, 0, 0, time.UTC)

func money(cents int64) Money { return Money{Cents: cents} }

func moneyPtr(cents int64) *Money {
	m := money(cents)
	return &m
}

func timePtr(t time.Time) *time.Time { return &t }

func TestDeriveMonthlyExample(t *testing.T) {
	r := Derive(DerivationInput{
		Income: []Income{
			{Source: "Salary", Amount: money(50000), Date: NewDate(2025, 3, 1)},
		},
		Expenses: []Expense{
			{Description: "Lunch", Amount: money(5000), Category: CategoryFood, Date: NewDate(2025, 3, 10)},
		},
		Reference: march2025,
		Period:    PeriodMonthly,
	})

	if r.TotalIncome.Cents != 50000 || r.TotalExpenses.Cents != 5000 {
		t.Fatalf("unexpected totals %+v", r)
	}
	if r.Savings.Cents != 45000 {
		t.Fatalf("expected savings 450.00, got %s", r.Savings)
	}
	if r.SavingsRate != 90 {
		t.Fatalf("expected savings rate 90, got %d", r.SavingsRate)
	}
	if r.Month != 3 || r.Year != 2025 {
		t.Fatalf("unexpected period fields %d/%d", r.Month, r.Year)
	}
	if len(r.Insights) != 1 || r.Insights[0].Kind != InsightGreatSavings {
		t.Fatalf("unexpected insights %+v", r.Insights)
	}
	if r.Insights[0].Message != "Your 90% savings rate is excellent" {
		t.Fatalf("unexpected message %q", r.Insights[0].Message)
	}
}

func TestDerivePeriodFiltering(t *testing.T) {
	in := DerivationInput{
		Income: []Income{
			{Amount: money(10000), Date: NewDate(2025, 3, 31)},
			{Amount: money(20000), Date: NewDate(2025, 2, 28)},
			{Amount: money(40000), Date: NewDate(2024, 3, 15)},
			{Amount: money(80000)}, // no date
		},
		Expenses: []Expense{
			{Amount: money(1000), Category: CategoryFood, Date: NewDate(2025, 3, 1)},
			{Amount: money(2000), Category: CategoryHousing, Date: NewDate(2025, 1, 1)},
		},
		Reference: march2025,
	}

	monthly := Derive(in)
	if monthly.Period != PeriodMonthly {
		t.Fatalf("empty period should default to monthly, got %q", monthly.Period)
	}
	if monthly.TotalIncome.Cents != 10000 || monthly.ExpenseTotal.Cents != 1000 {
		t.Fatalf("unexpected monthly totals income=%s expenses=%s", monthly.TotalIncome, monthly.ExpenseTotal)
	}

	in.Period = PeriodYearly
	yearly := Derive(in)
	if yearly.TotalIncome.Cents != 30000 || yearly.ExpenseTotal.Cents != 3000 {
		t.Fatalf("unexpected yearly totals income=%s expenses=%s", yearly.TotalIncome, yearly.ExpenseTotal)
	}
	if yearly.Month != 0 {
		t.Fatalf("yearly report should not carry a month, got %d", yearly.Month)
	}
}

func TestDeriveKeepsRecordedCalendarDay(t *testing.T) {
	// 23:30 on March 31st at -05:00 is April 1st in UTC; it still counts for March.
	late := MustParseDate("2025-03-31T23:30:00-05:00")
	r := Derive(DerivationInput{
		Expenses:  []Expense{{Amount: money(700), Category: CategoryFood, Date: late}},
		Reference: march2025,
		Period:    PeriodMonthly,
	})
	if r.ExpenseTotal.Cents != 700 {
		t.Fatalf("expected the expense in March, got %s", r.ExpenseTotal)
	}
}

func TestDeriveSkipsUndatedRecords(t *testing.T) {
	inMarch := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	in := DerivationInput{
		Income:   []Income{{Source: "Bonus", Amount: money(90000)}},
		Expenses: []Expense{{Description: "Lost receipt", Amount: money(4000), Category: CategoryOther}},
		ShoppingLists: []ShoppingList{{Category: ShoppingGroceries, Items: []ShoppingItem{
			{Name: "Rice", IsPurchased: true, ActualCost: moneyPtr(600)},
			{Name: "Oil", IsPurchased: true, ActualCost: moneyPtr(800), PurchasedAt: timePtr(inMarch)},
		}}},
		Reference: march2025,
	}

	tests := []struct {
		period   Period
		shopping int64
	}{
		{PeriodMonthly, 800},
		{PeriodYearly, 800},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			in.Period = tt.period
			r := Derive(in)
			if r.TotalIncome.Cents != 0 || r.ExpenseTotal.Cents != 0 {
				t.Fatalf("undated records should be outside every period, got income=%s expenses=%s", r.TotalIncome, r.ExpenseTotal)
			}
			if r.ShoppingTotal.Cents != tt.shopping {
				t.Fatalf("shopping total = %s, want %d cents", r.ShoppingTotal, tt.shopping)
			}
			if len(r.CategoryBreakdown) != 0 {
				t.Fatalf("expected empty breakdown, got %+v", r.CategoryBreakdown)
			}
		})
	}
}

func TestDeriveShoppingTotals(t *testing.T) {
	inMarch := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	inFeb := time.Date(2025, 2, 5, 9, 0, 0, 0, time.UTC)
	lists := []ShoppingList{
		{Category: ShoppingGroceries, Items: []ShoppingItem{
			{Name: "Milk", IsPurchased: true, ActualCost: moneyPtr(250), PurchasedAt: timePtr(inMarch)},
			{Name: "Eggs", IsPurchased: true, PurchasedAt: timePtr(inMarch)}, // no actual cost
			{Name: "Bread", IsPurchased: true, ActualCost: moneyPtr(300)},    // no purchase time
			{Name: "Jam", IsPurchased: false, ActualCost: moneyPtr(900), PurchasedAt: timePtr(inMarch)},
			{Name: "Tea", IsPurchased: true, ActualCost: moneyPtr(400), PurchasedAt: timePtr(inFeb)},
		}},
		{Category: ShoppingHousehold, Items: []ShoppingItem{
			{Name: "Soap", IsPurchased: true, ActualCost: moneyPtr(150), PurchasedAt: timePtr(inMarch)},
		}},
	}
	r := Derive(DerivationInput{
		Income:        []Income{{Amount: money(300), Date: NewDate(2025, 3, 1)}},
		Expenses:      []Expense{{Amount: money(100), Category: CategoryFood, Date: NewDate(2025, 3, 2)}},
		ShoppingLists: lists,
		Reference:     march2025,
		Period:        PeriodMonthly,
	})

	if r.ShoppingTotal.Cents != 400 {
		t.Fatalf("expected shopping total 4.00, got %s", r.ShoppingTotal)
	}
	if r.TotalExpenses.Cents != 500 {
		t.Fatalf("expected total expenses 5.00, got %s", r.TotalExpenses)
	}
	if r.Savings.Cents != r.TotalIncome.Cents-r.TotalExpenses.Cents {
		t.Fatalf("savings %s != income %s - expenses %s", r.Savings, r.TotalIncome, r.TotalExpenses)
	}
	if r.Savings.Cents != -200 || r.SavingsRate != -67 {
		t.Fatalf("unexpected savings %s rate %d", r.Savings, r.SavingsRate)
	}
	if len(r.Insights) != 1 || r.Insights[0].Kind != InsightSpendingAlert {
		t.Fatalf("expected only a spending alert, got %+v", r.Insights)
	}
	if r.Insights[0].Message != "Your expenses exceed your income this month" {
		t.Fatalf("unexpected message %q", r.Insights[0].Message)
	}
}

func TestDeriveSavingsRateZeroWithoutIncome(t *testing.T) {
	r := Derive(DerivationInput{
		Expenses:  []Expense{{Amount: money(100), Category: CategoryFood, Date: NewDate(2025, 3, 2)}},
		Reference: march2025,
	})
	if r.SavingsRate != 0 {
		t.Fatalf("expected 0 savings rate, got %d", r.SavingsRate)
	}
	if r.Savings.Cents != -100 {
		t.Fatalf("expected negative savings, got %s", r.Savings)
	}
}

func TestDeriveEmptyInput(t *testing.T) {
	r := Derive(DerivationInput{Reference: march2025})
	if r.TotalIncome.Cents != 0 || r.TotalExpenses.Cents != 0 || r.Savings.Cents != 0 || r.SavingsRate != 0 {
		t.Fatalf("expected zero report, got %+v", r)
	}
	if len(r.CategoryBreakdown) != 0 || len(r.Breakdown()) != 0 {
		t.Fatalf("expected empty breakdown, got %v", r.CategoryBreakdown)
	}
	if r.Insights == nil || len(r.Insights) != 0 {
		t.Fatalf("expected empty non-nil insights, got %#v", r.Insights)
	}
}

func TestBreakdownSumsToExpenseTotal(t *testing.T) {
	expenses := []Expense{
		{Amount: money(1200), Category: CategoryFood, Date: NewDate(2025, 3, 1)},
		{Amount: money(800), Category: CategoryFood, Date: NewDate(2025, 3, 2)},
		{Amount: money(2000), Category: CategoryHousing, Date: NewDate(2025, 3, 3)},
		{Amount: money(2000), Category: CategoryCharity, Date: NewDate(2025, 3, 4)},
		{Amount: money(500), Category: CategoryTransport, Date: NewDate(2025, 3, 5)},
		{Amount: money(9999), Category: CategoryTransport, Date: NewDate(2025, 4, 5)},
	}
	r := Derive(DerivationInput{Expenses: expenses, Reference: march2025, Period: PeriodMonthly})

	var sum int64
	for _, amt := range r.CategoryBreakdown {
		sum += amt.Cents
	}
	if sum != r.ExpenseTotal.Cents {
		t.Fatalf("breakdown sum %d != expense total %d", sum, r.ExpenseTotal.Cents)
	}

	want := []CategoryAmount{
		{Category: CategoryCharity, Name: "Charity", Amount: money(2000)},
		{Category: CategoryFood, Name: "Food", Amount: money(2000)},
		{Category: CategoryHousing, Name: "Housing", Amount: money(2000)},
		{Category: CategoryTransport, Name: "Transport", Amount: money(500)},
	}
	if diff := cmp.Diff(want, r.Breakdown()); diff != "" {
		t.Fatalf("breakdown mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveGoalChartAndInsight(t *testing.T) {
	goals := []SavingsGoal{
		{ID: "g1", Title: "Car", TargetAmount: money(20000), CurrentAmount: money(5000)},
		{ID: "g2", Title: "Trip", TargetAmount: money(1000), CurrentAmount: money(2000)},
		{ID: "g3", Title: "Fund", TargetAmount: money(0), CurrentAmount: money(100)},
		{ID: "g4", Title: "Bike", TargetAmount: money(300), CurrentAmount: money(100)},
		{ID: "g5", Title: "Laptop", TargetAmount: money(100), CurrentAmount: money(10)},
	}
	r := Derive(DerivationInput{Goals: goals, Reference: march2025})

	want := []GoalProgressEntry{
		{GoalID: "g1", Title: "Car", Percent: 25},
		{GoalID: "g2", Title: "Trip", Percent: 100},
		{GoalID: "g3", Title: "Fund", Percent: 0},
		{GoalID: "g4", Title: "Bike", Percent: 33},
	}
	if diff := cmp.Diff(want, r.GoalProgress); diff != "" {
		t.Fatalf("goal chart mismatch (-want +got):\n%s", diff)
	}
	if len(r.Insights) != 1 || r.Insights[0].Message != "You have 5 active savings goals" {
		t.Fatalf("unexpected insights %+v", r.Insights)
	}
}

func TestScopeAndFilters(t *testing.T) {
	income := []Income{
		{ID: "a", Amount: money(100), Date: NewDate(2025, 3, 2)},
		{ID: "b", Amount: money(200), Date: NewDate(2025, 1, 2)},
		{ID: "c", Amount: money(400), Date: NewDate(2023, 3, 2)},
	}
	cases := []struct {
		scope Scope
		want  int64
	}{
		{ScopeThisMonth, 100},
		{ScopeThisYear, 300},
		{ScopeAll, 700},
	}
	for _, tc := range cases {
		got := SumIncome(ScopeIncome(income, tc.scope, march2025))
		if got.Cents != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.scope, tc.want, got.Cents)
		}
	}

	expenses := []Expense{
		{ID: "x", Amount: money(100), Category: CategoryFood, Date: NewDate(2025, 3, 2)},
		{ID: "y", Amount: money(300), Category: CategoryHealth, Date: NewDate(2025, 3, 4)},
	}
	food := FilterExpensesByCategory(expenses, CategoryFood)
	if len(food) != 1 || food[0].ID != "x" {
		t.Fatalf("unexpected filter result %+v", food)
	}
	if got := SumExpenses(FilterExpensesByCategory(expenses, "")); got.Cents != 400 {
		t.Fatalf("empty category should keep everything, got %s", got)
	}
	if got := ScopeExpenses(expenses, ScopeThisYear, march2025); len(got) != 2 {
		t.Fatalf("expected both expenses this year, got %d", len(got))
	}
}

func TestParsePeriodAndScope(t *testing.T) {
	if ParsePeriod("YEARLY") != PeriodYearly || ParsePeriod("weekly") != PeriodMonthly || ParsePeriod("") != PeriodMonthly {
		t.Fatal("unexpected period parsing")
	}
	if ParseScope("month") != ScopeThisMonth || ParseScope("this_year") != ScopeThisYear || ParseScope("bogus") != ScopeAll {
		t.Fatal("unexpected scope parsing")
	}
}
