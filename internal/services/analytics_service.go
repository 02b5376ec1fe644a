package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

// AnalyticsStore lists the collections the derivation engine reads.
type AnalyticsStore interface {
	ListExpenses(ctx context.Context, userID string) ([]core.Expense, error)
	ListIncome(ctx context.Context, userID string) ([]core.Income, error)
	ListShoppingLists(ctx context.Context, userID string) ([]core.ShoppingList, error)
	ListGoals(ctx context.Context, userID string) ([]core.SavingsGoal, error)
}

// AnalyticsService derives period reports and caches them per user until
// the next mutation.
type AnalyticsService struct {
	base
	store   AnalyticsStore
	reports cache.Cache[core.Report]

	// generations counts invalidations per user. A report is cached only
	// when no invalidation happened while its data was loading.
	mu          sync.Mutex
	generations map[string]uint64
}

// NewAnalyticsService caches in reports when non-nil.
func NewAnalyticsService(store AnalyticsStore, reports cache.Cache[core.Report], deps Deps) *AnalyticsService {
	return &AnalyticsService{
		base:        newBase(deps, log.ComponentAnalytics),
		store:       store,
		reports:     reports,
		generations: make(map[string]uint64),
	}
}

func reportKey(userID string, period core.Period, ref core.Date) string {
	return userID + "|" + string(period) + "|" + ref.String()
}

// Report derives the period report around ref; a zero ref means today.
func (s *AnalyticsService) Report(ctx context.Context, userID string, period core.Period, ref core.Date) (core.Report, error) {
	if ref.IsZero() {
		ref = s.clock.Today()
	}

	key := reportKey(userID, period, ref)
	if s.reports != nil {
		if r, ok := s.reports.Get(key); ok {
			return r, nil
		}
	}

	gen := s.generation(userID)
	in := core.DerivationInput{Reference: ref.Time, Period: period}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		in.Expenses, err = s.store.ListExpenses(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		in.Income, err = s.store.ListIncome(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		in.ShoppingLists, err = s.store.ListShoppingLists(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		in.Goals, err = s.store.ListGoals(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.Report{}, fmt.Errorf("load analytics data: %w", err)
	}

	r := core.Derive(in)
	s.cacheReport(userID, gen, key, r)

	s.logger.DebugContext(ctx, "Derived report",
		log.FieldUserID, userID,
		log.FieldPeriod, period,
		"reference", ref.String(),
		"savings_rate", r.SavingsRate)
	return r, nil
}

func (s *AnalyticsService) generation(userID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[userID]
}

// cacheReport stores r unless userID was invalidated after gen was read.
func (s *AnalyticsService) cacheReport(userID string, gen uint64, key string, r core.Report) {
	if s.reports == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[userID] != gen {
		s.logger.Debug("Skipped caching stale report", log.FieldUserID, userID)
		return
	}
	s.reports.Set(key, r)
}

// Invalidate drops every cached report of userID.
func (s *AnalyticsService) Invalidate(userID string) {
	if s.reports == nil {
		return
	}
	s.mu.Lock()
	s.generations[userID]++
	s.mu.Unlock()
	if n := s.reports.DeletePrefix(userID + "|"); n > 0 {
		s.logger.Debug("Invalidated cached reports", log.FieldUserID, userID, "count", n)
	}
}
