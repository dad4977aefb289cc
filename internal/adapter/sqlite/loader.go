package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/couchcryptid/fireems-testdata/internal/domain"
	"github.com/couchcryptid/fireems-testdata/internal/observability"
	"github.com/couchcryptid/fireems-testdata/internal/testdata"
)

// FixtureSource resolves fixtures by name. *testdata.Manager implements it.
type FixtureSource interface {
	GetFixture(name string) (*testdata.Fixture, error)
}

// Report summarizes one fixture load. Maps are keyed by table name.
type Report struct {
	Fixture    string         `json:"fixture"`
	Path       string         `json:"path"`
	Inserted   map[string]int `json:"inserted"`
	Duplicates map[string]int `json:"duplicates"`
	Orphans    []Orphan       `json:"orphans,omitempty"`
	Duration   time.Duration  `json:"duration"`
}

// TotalInserted sums inserted rows across tables.
func (r Report) TotalInserted() int {
	n := 0
	for _, v := range r.Inserted {
		n += v
	}
	return n
}

// TotalDuplicates sums skipped duplicates across tables.
func (r Report) TotalDuplicates() int {
	n := 0
	for _, v := range r.Duplicates {
		n += v
	}
	return n
}

// Loader materializes fixtures into SQLite files.
type Loader struct {
	fixtures FixtureSource
	logger   *slog.Logger
	metrics  *observability.Metrics
	strict   bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(ld *Loader) { ld.logger = l }
}

// WithMetrics sets the metrics sink. The default is an unregistered set.
func WithMetrics(m *observability.Metrics) Option {
	return func(ld *Loader) { ld.metrics = m }
}

// WithStrict makes orphaned references fail the load with
// ErrOrphanedReferences. The rows are committed either way.
func WithStrict(strict bool) Option {
	return func(ld *Loader) { ld.strict = strict }
}

// NewLoader returns a Loader resolving fixture names through fixtures, which
// may be nil when only Load is used.
func NewLoader(fixtures FixtureSource, opts ...Option) *Loader {
	l := &Loader{
		fixtures: fixtures,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.metrics == nil {
		l.metrics = observability.NewMetricsForTesting()
	}
	return l
}

// LoadFixture resolves the named fixture and loads it into the database at
// path. See Load.
func (l *Loader) LoadFixture(ctx context.Context, name, path string, overwrite bool) (Report, error) {
	if l.fixtures == nil {
		return Report{}, errors.New("loader has no fixture source")
	}
	f, err := l.fixtures.GetFixture(name)
	if err != nil {
		return Report{}, fmt.Errorf("resolve fixture %s: %w", name, err)
	}
	return l.Load(ctx, f, path, overwrite)
}

// Load creates the schema and inserts every record of f in dependency order
// within a single transaction. Records whose primary key was already
// inserted, or already exists in the database, are skipped and counted as
// duplicates; the first write wins. After commit the database is checked for
// orphaned references.
func (l *Loader) Load(ctx context.Context, f *testdata.Fixture, path string, overwrite bool) (Report, error) {
	start := time.Now()
	report := Report{
		Fixture:    f.Name,
		Path:       path,
		Inserted:   make(map[string]int),
		Duplicates: make(map[string]int),
	}

	db, err := Setup(ctx, path, overwrite)
	if err != nil {
		return report, err
	}
	defer func() { _ = db.Close() }()

	if err := l.insertAll(ctx, db, f, &report); err != nil {
		return report, err
	}

	orphans, err := Validate(ctx, db)
	if err != nil {
		return report, err
	}
	report.Orphans = orphans
	report.Duration = time.Since(start)
	l.record(report)

	if len(orphans) > 0 && l.strict {
		return report, fmt.Errorf("%w: %d in fixture %s", ErrOrphanedReferences, len(orphans), f.Name)
	}
	return report, nil
}

func (l *Loader) insertAll(ctx context.Context, db *sql.DB, f *testdata.Fixture, report *Report) (retErr error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	groups := f.ByCategory()
	for _, category := range domain.Categories() {
		table := string(category)
		seen := make(map[string]struct{})
		for _, ds := range groups[category] {
			for _, rec := range ds.Data {
				id := rec.RecordID()
				if _, dup := seen[id]; dup {
					report.Duplicates[table]++
					continue
				}
				seen[id] = struct{}{}

				if err := insertRecord(ctx, tx, rec); err != nil {
					if isConstraint(err) {
						report.Duplicates[table]++
						continue
					}
					return fmt.Errorf("insert %s %s: %w", table, id, err)
				}
				report.Inserted[table]++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (l *Loader) record(r Report) {
	for _, table := range Tables() {
		l.metrics.RowsInserted.WithLabelValues(table).Add(float64(r.Inserted[table]))
		if n := r.Duplicates[table]; n > 0 {
			l.metrics.DuplicatesSkipped.WithLabelValues(table).Add(float64(n))
			l.logger.Warn("duplicate records skipped", "fixture", r.Fixture, "table", table, "count", n)
		}
	}
	for _, o := range r.Orphans {
		l.metrics.OrphanedReferences.WithLabelValues(o.Table).Inc()
	}
	if len(r.Orphans) > 0 {
		l.logger.Warn("orphaned references", "fixture", r.Fixture, "count", len(r.Orphans), "first", r.Orphans[0].String())
	}
	l.metrics.FixtureLoadDuration.Observe(r.Duration.Seconds())

	l.logger.Info("fixture loaded",
		"fixture", r.Fixture,
		"path", r.Path,
		"departments", r.Inserted["departments"],
		"stations", r.Inserted["stations"],
		"users", r.Inserted["users"],
		"incidents", r.Inserted["incidents"],
		"duplicates", r.TotalDuplicates(),
		"duration", r.Duration,
	)
}

// isConstraint reports whether err is a SQLite constraint violation, such as
// a primary key that already exists.
func isConstraint(err error) bool {
	var se *sqlitedrv.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
