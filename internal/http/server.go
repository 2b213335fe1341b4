package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	applog "mercado/internal/log"
	"mercado/internal/middleware/ratelimit"
	"mercado/internal/middleware/security"
	"mercado/internal/middleware/trace"
	"mercado/internal/services"
)

// Server serves the planner over HTTP.
type Server struct {
	http.Server
	planner  *services.Planner
	logger   *applog.Logger
	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
// Writes are rate limited per client; reads are not.
func NewServer(addr string, planner *services.Planner, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.Discard()
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	s := &Server{
		planner:  planner,
		logger:   logger,
		limiter:  ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector: security.NewDetector(),
	}
	s.tracer = trace.NewMiddleware(logger, s.detector.ExtractClientIP)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/lists", s.handleListLists)
	mux.HandleFunc("POST /api/lists", s.handleCreateList)
	mux.HandleFunc("GET /api/lists/{id}", s.handleGetList)
	mux.HandleFunc("PATCH /api/lists/{id}", s.handleUpdateList)
	mux.HandleFunc("DELETE /api/lists/{id}", s.handleDeleteList)
	mux.HandleFunc("GET /api/lists/{id}/items", s.handleListItems)
	mux.HandleFunc("POST /api/lists/{id}/items", s.handleAddItem)
	mux.HandleFunc("GET /api/lists/{id}/summary", s.handleListSummary)

	mux.HandleFunc("PATCH /api/items/{id}", s.handleUpdateItem)
	mux.HandleFunc("DELETE /api/items/{id}", s.handleDeleteItem)
	mux.HandleFunc("POST /api/items/{id}/toggle", s.handleToggleItem)

	mux.HandleFunc("GET /api/overview", s.handleOverview)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("PATCH /api/categories/{id}", s.handleRenameCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)

	mux.HandleFunc("GET /api/stores", s.handleListStores)
	mux.HandleFunc("POST /api/stores", s.handleCreateStore)
	mux.HandleFunc("PATCH /api/stores/{id}", s.handleUpdateStore)
	mux.HandleFunc("DELETE /api/stores/{id}", s.handleDeleteStore)

	mux.HandleFunc("GET /api/catalog", s.handleListCatalog)
	mux.HandleFunc("POST /api/catalog", s.handleCreateCatalogItem)
	mux.HandleFunc("PATCH /api/catalog/{id}", s.handleUpdateCatalogItem)
	mux.HandleFunc("DELETE /api/catalog/{id}", s.handleDeleteCatalogItem)

	mux.HandleFunc("POST /api/seed", s.handleSeed)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	mux.HandleFunc("DELETE /api/data", s.handleReset)

	limited := s.limiter.Middleware(s.detector.ExtractClientIP, isWrite, func(w http.ResponseWriter, r *http.Request) {
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
			"client_ip", s.detector.ExtractClientIP(r))
		TooManyRequestsError().Write(w)
	})
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.tracer.Middleware(s.detector.Middleware(headers.Middleware(limited(mux)))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func isWrite(r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// fail logs err with the request logger and writes a 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	applog.FromContext(ctx).ErrorContext(ctx, "Request failed", applog.FieldError, err)
	if errors.Is(err, services.ErrPersist) {
		InternalServerError("changes could not be saved").Write(w)
		return
	}
	InternalServerError("internal error").Write(w)
}

// deleted runs a delete operation that reports whether anything was removed.
func (s *Server) deleted(w http.ResponseWriter, r *http.Request, notFound string, del func(context.Context, string) (bool, error)) {
	removed, err := del(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !removed {
		NotFoundError(notFound).Write(w)
		return
	}
	NoContent().Write(w)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
