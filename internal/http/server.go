// Package http exposes the ledger over a JSON API. Handlers translate
// requests into service calls and domain errors into status codes; all
// business rules live below this layer.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"grana/internal/cache"
	"grana/internal/core"
	"grana/internal/services"
)

type Server struct {
	http.Server

	categories *services.CategoryService
	ledger     *services.LedgerService
	dashboard  *services.DashboardService

	rateLimiter *rateLimiter

	// Dashboard aggregations are cached per (user, year, month) and
	// invalidated when a write touches the month.
	summaryCache *cache.Cache[core.MonthlySummary]
	byCatCache   *cache.Cache[[]core.CategorySummary]
	byMethCache  *cache.Cache[[]core.PaymentMethodSummary]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

func NewServer(addr string, categories *services.CategoryService, ledger *services.LedgerService, dashboard *services.DashboardService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		categories:       categories,
		ledger:           ledger,
		dashboard:        dashboard,
		rateLimiter:      newRateLimiter(),
		summaryCache:     cache.New[core.MonthlySummary](200, 5*time.Minute),
		byCatCache:       cache.New[[]core.CategorySummary](200, 5*time.Minute),
		byMethCache:      cache.New[[]core.PaymentMethodSummary](200, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/v1/categories", s.authed(s.handleCreateCategory))
	mux.HandleFunc("GET /api/v1/categories", s.authed(s.handleListCategories))
	mux.HandleFunc("POST /api/v1/categories/defaults", s.authed(s.handleSeedCategories))
	mux.HandleFunc("GET /api/v1/categories/{id}", s.authed(s.handleGetCategory))
	mux.HandleFunc("PUT /api/v1/categories/{id}", s.authed(s.handleUpdateCategory))
	mux.HandleFunc("DELETE /api/v1/categories/{id}", s.authed(s.handleDeleteCategory))

	mux.HandleFunc("POST /api/v1/transactions", s.authed(s.handleCreateTransaction))
	mux.HandleFunc("GET /api/v1/transactions", s.authed(s.handleListTransactions))
	mux.HandleFunc("GET /api/v1/transactions/{id}", s.authed(s.handleGetTransaction))
	mux.HandleFunc("PUT /api/v1/transactions/{id}", s.authed(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/v1/transactions/{id}", s.authed(s.handleDeleteTransaction))
	mux.HandleFunc("PATCH /api/v1/transactions/{id}/paid", s.authed(s.handleMarkInstallmentPaid))

	mux.HandleFunc("GET /api/v1/installments/{groupID}", s.authed(s.handleGetInstallmentGroup))
	mux.HandleFunc("DELETE /api/v1/installments/{groupID}", s.authed(s.handleDeleteInstallmentGroup))

	mux.HandleFunc("GET /api/v1/dashboard/summary", s.authed(s.handleDashboardSummary))
	mux.HandleFunc("GET /api/v1/dashboard/by-category", s.authed(s.handleDashboardByCategory))
	mux.HandleFunc("GET /api/v1/dashboard/by-payment-method", s.authed(s.handleDashboardByMethod))

	return s
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed := s.summaryCache.CleanExpired() + s.byCatCache.CleanExpired() + s.byMethCache.CleanExpired()
			if removed > 0 {
				slog.Debug("Dashboard cache cleanup", "entries_removed", removed)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the HTTP server and the background cleanup goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
