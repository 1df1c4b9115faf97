package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/floorsight/floorplan-api/internal/analyzer"
	"github.com/floorsight/floorplan-api/internal/furniture"
	"github.com/floorsight/floorplan-api/internal/logger"
	"github.com/floorsight/floorplan-api/internal/metrics"
	"github.com/floorsight/floorplan-api/internal/search"
)

const module = "server"

const (
	serviceName    = "floor-plan-analyzer"
	serviceTitle   = "Floor Plan Analyzer API"
	serviceVersion = "1.0.0"
)

// defaultMaxUploadBytes caps image uploads at 20MB.
const defaultMaxUploadBytes = 20 << 20

// shutdownTimeout bounds how long Run waits for in-flight requests to
// drain after the context is canceled.
const shutdownTimeout = 10 * time.Second

// PlanAnalyzer runs the analysis flows behind the endpoints.
type PlanAnalyzer interface {
	Analyze(ctx context.Context, imageData []byte, contextHint string) (*analyzer.Result, error)
	AnalyzeFurniture(ctx context.Context, imageData []byte) (*furniture.Analysis, error)
	AnalyzeAndShop(ctx context.Context, imageData []byte) (*analyzer.ShopResult, error)
}

// Searcher is the product search surface used by the search endpoints.
type Searcher interface {
	Configured() bool
	SearchProducts(ctx context.Context, query string) (*search.Product, error)
	SearchByImage(ctx context.Context, imageBase64 string) (*search.Product, error)
}

// Options configures a Server. Analyzer and Agent must be set; the
// searcher may be nil, in which case the product endpoints degrade.
type Options struct {
	Analyzer PlanAnalyzer
	Agent    *search.Agent
	Searcher Searcher
	Metrics  *metrics.Metrics

	// MaxUploadBytes limits the size of uploaded images. Zero means
	// the 20MB default.
	MaxUploadBytes int64
}

// Server handles the HTTP API.
type Server struct {
	analyzer PlanAnalyzer
	agent    *search.Agent
	searcher Searcher
	metrics  *metrics.Metrics

	maxUploadBytes int64
}

// New builds a Server from opts.
func New(opts Options) *Server {
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.Agent == nil {
		opts.Agent = search.NewAgent(nil)
	}
	return &Server{
		analyzer:       opts.Analyzer,
		agent:          opts.Agent,
		searcher:       opts.Searcher,
		metrics:        opts.Metrics,
		maxUploadBytes: opts.MaxUploadBytes,
	}
}

// Handler returns the root handler with CORS and request accounting
// applied to every route.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", s.metrics.Handler())
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/analyze/image", s.handleAnalyzeImage)
	mux.HandleFunc("/analyze-furniture", s.handleAnalyzeFurniture)
	mux.HandleFunc("/search-products", s.handleSearchProducts)
	mux.HandleFunc("/analyze-and-shop", s.handleAnalyzeAndShop)
	mux.HandleFunc("/visual-search", s.handleVisualSearch)
	return corsMiddleware(s.instrument(mux))
}

// Run serves the API on addr until ctx is canceled, then drains
// in-flight requests before returning.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(module, "listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(module, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// instrument counts requests, errors, and in-flight work.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.metrics.RequestsTotal.Add(1)
		s.metrics.ActiveRequests.Add(1)
		defer s.metrics.ActiveRequests.Add(-1)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status >= http.StatusBadRequest {
			s.metrics.RequestErrors.Add(1)
		}
	})
}

// corsMiddleware allows cross-origin requests from any host and
// short-circuits preflight checks.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
