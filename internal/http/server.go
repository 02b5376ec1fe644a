package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/cache"
	"fintrack/internal/log"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/services"
)

// Pinger reports whether the data store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services are the use cases the API exposes.
type Services struct {
	Ledger    *services.LedgerService
	Shopping  *services.ShoppingService
	Goals     *services.GoalService
	Habits    *services.HabitService
	Accounts  *services.AccountService
	Analytics *services.AnalyticsService
}

type Options struct {
	Verifier           *auth.Verifier
	Store              Pinger
	Logger             *log.Logger
	RateLimitPerMinute int
	// Caches, when set, is stopped together with the server.
	Caches *cache.Manager
}

type Server struct {
	http.Server
	svc      Services
	verifier *auth.Verifier
	store    Pinger
	logger   *log.Logger
	caches   *cache.Manager

	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, svc Services, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	detector := security.NewDetector()
	s := &Server{
		svc:      svc,
		verifier: opts.Verifier,
		store:    opts.Store,
		logger:   logger.WithComponent(log.ComponentHTTP),
		caches:   opts.Caches,
		limiter:  ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		detector: detector,
		tracer:   trace.NewMiddleware(logger, detector.ExtractClientIP),
	}

	api := http.NewServeMux()
	s.registerAPI(api)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("/functions/v1/delete-user", s.handleDeleteUser)
	mux.Handle("/api/", auth.Middleware(s.verifier)(api))

	var h http.Handler = mux
	h = s.limiter.Middleware(detector.ExtractClientIP)(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	h = detector.Middleware(h)
	h = s.tracer.Middleware(h)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) registerAPI(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("GET /api/income", s.handleListIncome)
	mux.HandleFunc("POST /api/income", s.handleCreateIncome)
	mux.HandleFunc("DELETE /api/income/{id}", s.handleDeleteIncome)
	mux.HandleFunc("GET /api/categories", s.handleCategories)

	mux.HandleFunc("GET /api/shopping", s.handleShoppingLists)
	mux.HandleFunc("GET /api/shopping/{category}", s.handleShoppingList)
	mux.HandleFunc("GET /api/shopping/{category}/previous", s.handlePreviousItems)
	mux.HandleFunc("POST /api/shopping/{category}/items", s.handleAddShoppingItem)
	mux.HandleFunc("POST /api/shopping/{category}/import", s.handleImportShoppingItems)
	mux.HandleFunc("POST /api/shopping/items/{id}/toggle", s.handleToggleShoppingItem)
	mux.HandleFunc("PATCH /api/shopping/items/{id}", s.handleUpdateShoppingItem)
	mux.HandleFunc("DELETE /api/shopping/items/{id}", s.handleDeleteShoppingItem)
	mux.HandleFunc("DELETE /api/shopping/lists/{id}", s.handleDeleteShoppingList)

	mux.HandleFunc("GET /api/goals", s.handleListGoals)
	mux.HandleFunc("POST /api/goals", s.handleCreateGoal)
	mux.HandleFunc("PATCH /api/goals/{id}", s.handleUpdateGoal)
	mux.HandleFunc("DELETE /api/goals/{id}", s.handleDeleteGoal)

	mux.HandleFunc("GET /api/habits", s.handleListHabits)
	mux.HandleFunc("POST /api/habits", s.handleCreateHabit)
	mux.HandleFunc("POST /api/habits/{id}/toggle", s.handleToggleHabit)
	mux.HandleFunc("DELETE /api/habits/{id}", s.handleDeleteHabit)

	mux.HandleFunc("GET /api/profile", s.handleGetProfile)
	mux.HandleFunc("PUT /api/profile", s.handleUpdateProfile)
	mux.HandleFunc("GET /api/analytics", s.handleAnalytics)

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		NotFoundError("Not found").Write(w)
	})
}

// Shutdown stops background goroutines and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		if s.caches != nil {
			s.caches.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady checks the store and reports request counters.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			log.LogError(r.Context(), s.logger, "Readiness check failed", err, log.ComponentHTTP, log.OpRead, nil)
			NewJSONResponse().Status(http.StatusServiceUnavailable).Raw(map[string]any{"status": "unavailable"}).Write(w)
			return
		}
	}

	NewJSONResponse().Raw(map[string]any{
		"status":             "ready",
		"requests":           s.tracer.GetMetrics().TotalRequests,
		"rate_limited":       s.limiter.GetMetrics().TotalHits,
		"suspicious":         s.detector.GetMetrics().SuspiciousRequests,
		"rate_limit_clients": s.limiter.ActiveClients(),
	}).Write(w)
}

// userID returns the authenticated subject; auth.Middleware guarantees it
// for /api routes.
func userID(r *http.Request) string {
	id, _ := auth.UserID(r.Context())
	return id
}
