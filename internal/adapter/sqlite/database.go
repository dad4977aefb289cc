package sqlite

import (
	"context"
	"fmt"

	"github.com/couchcryptid/fireems-testdata/internal/testdata"
)

// Database is the test database a Manager resets between setups. Fixtures
// opt in to materialization by registering SetupHook.
type Database struct {
	path   string
	loader *Loader
}

// NewDatabase returns a Database for the file at path.
func NewDatabase(path string, opts ...Option) *Database {
	return &Database{path: path, loader: NewLoader(nil, opts...)}
}

// Path returns the database file path.
func (d *Database) Path() string { return d.path }

// Reset recreates the database file with an empty schema.
func (d *Database) Reset(ctx context.Context) error {
	db, err := Setup(ctx, d.path, true)
	if err != nil {
		return fmt.Errorf("reset %s: %w", d.path, err)
	}
	return db.Close()
}

// SetupHook returns a setup function that loads a fixture into the database
// on top of whatever earlier fixtures inserted.
func (d *Database) SetupHook() testdata.SetupFunc {
	return func(ctx context.Context, f *testdata.Fixture) error {
		_, err := d.loader.Load(ctx, f, d.path, false)
		return err
	}
}
