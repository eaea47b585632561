package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/concilia/internal/adapter/http/handler"
	apimiddleware "github.com/iho/concilia/internal/adapter/http/middleware"
	"github.com/iho/concilia/internal/usecase"
	"github.com/iho/concilia/internal/usecase/mocks"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"text":"date,account,amount\n2025-01-05,Conta,10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/csv", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/entries/",
		"GET /api/v1/entries/",
		"DELETE /api/v1/entries/",
		"GET /api/v1/entries/summary",
		"GET /api/v1/entries/accounts",
		"PUT /api/v1/entries/{id}",
		"DELETE /api/v1/entries/{id}",
		"POST /api/v1/entries/{id}/duplicate",
		"POST /api/v1/import/csv",
		"POST /api/v1/import/json",
		"POST /api/v1/restore",
		"GET /api/v1/export/csv",
		"GET /api/v1/export/template",
		"GET /api/v1/backup",
		"POST /api/v1/normalize",
		"POST /api/v1/reconcile/suggest",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	entryRepo := mocks.NewMockEntryRepository()
	txManager := mocks.NewMockTxManager()

	cfg := RouterConfig{
		EntryHandler:     handler.NewEntryHandler(usecase.NewEntryUseCase(entryRepo, nil)),
		ImportHandler:    handler.NewImportHandler(usecase.NewImportUseCase(entryRepo, nil)),
		ExportHandler:    handler.NewExportHandler(usecase.NewExportUseCase(entryRepo)),
		NormalizeHandler: handler.NewNormalizeHandler(usecase.NewNormalizeUseCase(txManager, entryRepo, nil)),
		ReconcileHandler: handler.NewReconcileHandler(usecase.NewReconcileUseCase(txManager, entryRepo, nil)),
		HealthHandler:    &handler.HealthHandler{},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
