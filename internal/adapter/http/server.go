package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/fireems-testdata/internal/domain"
	"github.com/couchcryptid/fireems-testdata/internal/testdata"
)

// Catalog is the read side of the test data manager.
type Catalog interface {
	sharedobs.ReadinessChecker
	ListFixtures() ([]string, error)
	ListDatasets() ([]testdata.DatasetRef, error)
	GetFixture(name string) (*testdata.Fixture, error)
	GetDataset(category domain.Category, name string) (*testdata.Dataset, error)
}

// Server exposes health, metrics and read-only fixture browsing endpoints.
type Server struct {
	httpServer *http.Server
	catalog    Catalog
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics,
// /fixtures and /datasets routes.
func NewServer(addr string, catalog Catalog, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		catalog: catalog,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(catalog))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /fixtures", s.handleListFixtures)
	mux.HandleFunc("GET /fixtures/{name}", s.handleFixture)
	mux.HandleFunc("GET /datasets", s.handleListDatasets)
	mux.HandleFunc("GET /datasets/{category}/{name}", s.handleDataset)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleListFixtures(w http.ResponseWriter, _ *http.Request) {
	names, err := s.catalog.ListFixtures()
	if err != nil {
		s.writeError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string][]string{"fixtures": names})
}

func (s *Server) handleListDatasets(w http.ResponseWriter, _ *http.Request) {
	refs, err := s.catalog.ListDatasets()
	if err != nil {
		s.writeError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string][]testdata.DatasetRef{"datasets": refs})
}

type datasetSummary struct {
	Name        string          `json:"name"`
	Category    domain.Category `json:"category"`
	RecordCount int             `json:"record_count"`
}

type fixtureResponse struct {
	Name     string                   `json:"name"`
	Metadata testdata.FixtureMetadata `json:"metadata"`
	Datasets []datasetSummary         `json:"datasets"`
}

func (s *Server) handleFixture(w http.ResponseWriter, r *http.Request) {
	f, err := s.catalog.GetFixture(r.PathValue("name"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := fixtureResponse{Name: f.Name, Metadata: f.Metadata, Datasets: make([]datasetSummary, 0, len(f.Datasets))}
	for _, d := range f.Datasets {
		resp.Datasets = append(resp.Datasets, datasetSummary{Name: d.Name, Category: d.Category, RecordCount: len(d.Data)})
	}
	sharedobs.WriteJSON(w, http.StatusOK, resp)
}

type datasetResponse struct {
	Metadata testdata.Metadata `json:"metadata"`
	Data     []domain.Record   `json:"data"`
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	category, err := domain.ParseCategory(r.PathValue("category"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	d, err := s.catalog.GetDataset(category, r.PathValue("name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, datasetResponse{Metadata: d.Metadata, Data: d.Data})
}

// writeError maps catalog errors to status codes. Unexpected errors are
// logged and reported without detail.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case testdata.IsNotFound(err):
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, domain.ErrUnknownCategory), errors.Is(err, testdata.ErrInvalidName):
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		s.logger.Error("catalog request failed", "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
