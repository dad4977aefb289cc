package testdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/couchcryptid/fireems-testdata/internal/domain"
	"github.com/couchcryptid/fireems-testdata/internal/observability"
)

// Database is the test database the manager resets between test setups.
type Database interface {
	Reset(ctx context.Context) error
}

// SetupFunc applies a loaded fixture to the test environment, typically by
// materializing it into the database.
type SetupFunc func(ctx context.Context, f *Fixture) error

// Manager is the registry of datasets and fixtures shared by a test process.
// Loaded datasets and fixtures are cached until ResetAll. It is safe for
// concurrent use.
type Manager struct {
	store    *Store
	db       Database
	geocoder domain.Geocoder
	logger   *slog.Logger
	metrics  *observability.Metrics

	mu       sync.Mutex
	datasets map[string]*Dataset
	fixtures map[string]*Fixture
	setups   map[string]SetupFunc
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithDatabase sets the database reset by SetupForTest and ResetAll.
func WithDatabase(db Database) ManagerOption {
	return func(m *Manager) { m.db = db }
}

// WithGeocoder enables geocoding of recipe cities and station addresses.
func WithGeocoder(g domain.Geocoder) ManagerOption {
	return func(m *Manager) { m.geocoder = g }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

// WithMetrics sets the metrics sink. The default is an unregistered set.
func WithMetrics(metrics *observability.Metrics) ManagerOption {
	return func(m *Manager) { m.metrics = metrics }
}

// NewManager returns a Manager over store.
func NewManager(store *Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:    store,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		datasets: make(map[string]*Dataset),
		fixtures: make(map[string]*Fixture),
		setups:   make(map[string]SetupFunc),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.metrics == nil {
		m.metrics = observability.NewMetricsForTesting()
	}
	return m
}

// Store returns the manager's backing store.
func (m *Manager) Store() *Store { return m.store }

// GetDataset returns a cached dataset, loading it from disk on first use.
func (m *Manager) GetDataset(category domain.Category, name string) (*Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.datasetLocked(category, name)
}

func (m *Manager) datasetLocked(category domain.Category, name string) (*Dataset, error) {
	key := datasetKey(category, name)
	if d, ok := m.datasets[key]; ok {
		return d, nil
	}
	d, err := LoadDataset(m.store, category, name)
	if err != nil {
		return nil, err
	}
	m.datasets[key] = d
	return d, nil
}

// GetFixture returns a cached fixture, loading its manifest and datasets on
// first use. Datasets already in the cache are shared, not reloaded.
func (m *Manager) GetFixture(name string) (*Fixture, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fixtureLocked(name)
}

func (m *Manager) fixtureLocked(name string) (*Fixture, error) {
	if f, ok := m.fixtures[name]; ok {
		return f, nil
	}
	f, err := loadFixture(m.store, name, func(ref DatasetRef) (*Dataset, error) {
		return m.datasetLocked(ref.Category, ref.Name)
	})
	if err != nil {
		return nil, err
	}
	m.fixtures[name] = f
	return f, nil
}

// CreateDataset builds a dataset, writes it to disk and caches it. The cache
// is only updated once the write succeeds.
func (m *Manager) CreateDataset(name string, category domain.Category, records []domain.Record, opts ...DatasetOption) (*Dataset, error) {
	d := NewDataset(name, category, records, opts...)
	if err := d.Save(m.store); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.datasets[d.Key()] = d
	m.mu.Unlock()

	m.metrics.DatasetsCreated.Inc()
	m.logger.Debug("dataset created", "dataset", d.Key(), "records", len(d.Data))
	return d, nil
}

// CreateFixture composes datasets into a fixture, writes the datasets and the
// manifest, and caches all of them once the writes succeed.
func (m *Manager) CreateFixture(name, description string, datasets ...*Dataset) (*Fixture, error) {
	f := NewFixture(name, description, datasets...)
	if err := f.Save(m.store); err != nil {
		return nil, err
	}

	m.mu.Lock()
	for _, d := range datasets {
		m.datasets[d.Key()] = d
	}
	m.fixtures[name] = f
	m.mu.Unlock()

	m.metrics.FixturesCreated.Inc()
	m.logger.Info("fixture created", "fixture", name, "datasets", len(datasets))
	return f, nil
}

// RegisterSetup attaches a setup hook to a fixture name. Fixtures without a
// hook are loaded by SetupForTest but leave the database untouched.
func (m *Manager) RegisterSetup(name string, fn SetupFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setups[name] = fn
}

// SetupForTest resets the database and then, in order, loads each named
// fixture and runs its setup hook. A missing fixture stops setup with an
// error for which IsNotFound is true.
func (m *Manager) SetupForTest(ctx context.Context, names ...string) ([]*Fixture, error) {
	if m.db != nil {
		if err := m.db.Reset(ctx); err != nil {
			return nil, fmt.Errorf("reset database: %w", err)
		}
	}

	fixtures := make([]*Fixture, 0, len(names))
	for _, name := range names {
		m.mu.Lock()
		f, err := m.fixtureLocked(name)
		setup := m.setups[name]
		m.mu.Unlock()
		if err != nil {
			return nil, err
		}

		if setup != nil {
			if err := setup(ctx, f); err != nil {
				return nil, fmt.Errorf("setup fixture %s: %w", name, err)
			}
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

// ResetAll clears both caches and resets the database. Files on disk are
// kept.
func (m *Manager) ResetAll(ctx context.Context) error {
	m.mu.Lock()
	clear(m.datasets)
	clear(m.fixtures)
	m.mu.Unlock()

	if m.db != nil {
		if err := m.db.Reset(ctx); err != nil {
			return fmt.Errorf("reset database: %w", err)
		}
	}
	return nil
}

// GenerateFixture builds the recipe's graph and persists it as four datasets
// named <recipe>_<category> plus a fixture named after the recipe.
func (m *Manager) GenerateFixture(ctx context.Context, r Recipe) (*Fixture, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	base := resolveBase(ctx, r, m.geocoder, m.logger)
	graph, err := r.Build(base)
	if err != nil {
		return nil, err
	}
	if n := EnrichStations(ctx, graph.Stations, m.geocoder, m.logger); n > 0 {
		m.logger.Info("stations geocoded", "recipe", r.Name, "updated", n)
	}

	parts := []struct {
		category domain.Category
		records  []domain.Record
	}{
		{domain.CategoryDepartments, domain.AsRecords(graph.Departments)},
		{domain.CategoryStations, domain.AsRecords(graph.Stations)},
		{domain.CategoryUsers, domain.AsRecords(graph.Users)},
		{domain.CategoryIncidents, domain.AsRecords(graph.Incidents)},
	}

	datasets := make([]*Dataset, 0, len(parts))
	for _, p := range parts {
		d := NewDataset(r.Name+"_"+string(p.category), p.category, p.records,
			WithSeed(r.Seed),
			WithDescription(r.Description),
		)
		datasets = append(datasets, d)
		m.metrics.RecordsGenerated.WithLabelValues(string(p.category)).Add(float64(len(p.records)))
	}
	m.metrics.DatasetsCreated.Add(float64(len(datasets)))

	f, err := m.CreateFixture(r.Name, r.Description, datasets...)
	if err != nil {
		return nil, err
	}
	m.logger.Info("fixture generated",
		"fixture", r.Name,
		"seed", r.Seed,
		"departments", len(graph.Departments),
		"stations", len(graph.Stations),
		"users", len(graph.Users),
		"incidents", len(graph.Incidents),
	)
	return f, nil
}

// ListDatasets lists dataset files on disk.
func (m *Manager) ListDatasets() ([]DatasetRef, error) {
	return m.store.ListDatasets()
}

// ListFixtures lists fixture manifests on disk.
func (m *Manager) ListFixtures() ([]string, error) {
	return m.store.ListFixtures()
}

// CheckReadiness reports whether the fixture directory is readable.
func (m *Manager) CheckReadiness(_ context.Context) error {
	info, err := os.Stat(m.store.FixtureDir)
	if err != nil {
		return fmt.Errorf("fixture directory: %w", err)
	}
	if !info.IsDir() {
		return errors.New("fixture directory is not a directory")
	}
	return nil
}
