// Command testdata generates FireEMS test datasets and fixtures, materializes
// them into SQLite, replays incidents onto Kafka and serves them over HTTP.
//
// Usage:
//
//	testdata list-datasets
//	testdata list-fixtures
//	testdata show-dataset <category> <name> [-limit n]
//	testdata show-fixture <name>
//	testdata generate [-recipes file.yaml] [-only name]
//	testdata generate-custom -name n [-departments n -stations n -users n -incidents n -seed n ...]
//	testdata create-db <fixture> [-db-path p] [-overwrite] [-strict]
//	testdata validate-db [-db-path p]
//	testdata publish <fixture> [-topic t]
//	testdata serve
//
// Directories, database path, Kafka and Mapbox settings come from the
// environment; see internal/config.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/couchcryptid/fireems-testdata/internal/adapter/mapbox"
	"github.com/couchcryptid/fireems-testdata/internal/config"
	"github.com/couchcryptid/fireems-testdata/internal/domain"
	"github.com/couchcryptid/fireems-testdata/internal/observability"
	"github.com/couchcryptid/fireems-testdata/internal/testdata"
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, observability.NewMetrics())
	stop()

	if err != nil {
		if errors.Is(err, errUsage) {
			usage(os.Stderr)
		}
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// app is the wiring shared by every subcommand.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	mgr     *testdata.Manager
	out     io.Writer
}

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"list-datasets":   listDatasets,
	"list-fixtures":   listFixtures,
	"show-dataset":    showDataset,
	"show-fixture":    showFixture,
	"generate":        generateStandard,
	"generate-custom": generateCustom,
	"create-db":       createDB,
	"validate-db":     validateDB,
	"publish":         publish,
	"serve":           serve,
}

func run(ctx context.Context, args []string, out io.Writer, metrics *observability.Metrics) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := observability.NewLogger(cfg)
	slog.SetDefault(logger)

	a, err := newApp(cfg, logger, metrics, out)
	if err != nil {
		return err
	}
	return cmd(ctx, a, args[1:])
}

func newApp(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, out io.Writer) (*app, error) {
	opts := []testdata.ManagerOption{
		testdata.WithLogger(logger),
		testdata.WithMetrics(metrics),
	}

	// Geocoding is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		geocoder, err := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		if err != nil {
			return nil, err
		}
		opts = append(opts, testdata.WithGeocoder(geocoder))
		metrics.GeocodeEnabled.Set(1)
		logger.Debug("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	}

	store := testdata.NewStore(cfg.DataDir, cfg.FixturesDir)
	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		mgr:     testdata.NewManager(store, opts...),
		out:     out,
	}, nil
}

// parseArgs parses flags that may appear before, between or after positional
// arguments, and returns the positionals.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("%w: %w", errUsage, err)
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func wantArgs(name string, got []string, want ...string) error {
	if len(got) != len(want) {
		return fmt.Errorf("%w: %s expects <%s>", errUsage, name, strings.Join(want, "> <"))
	}
	return nil
}

func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func noArgs(name string, args []string) error {
	pos, err := parseArgs(newFlagSet(name), args)
	if err != nil {
		return err
	}
	if len(pos) > 0 {
		return fmt.Errorf("%w: %s takes no arguments", errUsage, name)
	}
	return nil
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(w, "usage: testdata <command> [args]\n\ncommands:\n  %s\n", strings.Join(names, "\n  "))
}

// recordCount is a display helper for fixture summaries.
func recordCount(f *testdata.Fixture, c domain.Category) int {
	return len(f.Records(c))
}
