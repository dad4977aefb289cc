package testdata

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/fireems-testdata/internal/domain"
	"github.com/couchcryptid/fireems-testdata/internal/generate"
)

//go:embed recipes.yaml
var standardRecipes []byte

var (
	ErrRecipeMissingName    = errors.New("recipe name is required")
	ErrRecipeNegativeCount  = errors.New("recipe counts must be non-negative")
	ErrRecipeNoDepartments  = errors.New("stations, users and incidents require at least one department")
	ErrRecipeDuplicateName  = errors.New("recipe names must be unique")
	ErrRecipeInvalidRadius  = errors.New("radius_km must be non-negative")
	ErrRecipeInvalidWindow  = errors.New("window_days must be non-negative")
	ErrRecipeLocationNoCity = errors.New("lat/lon requires city and state")
	ErrRecipeBookEmpty      = errors.New("recipe book has no fixtures")
)

// Recipe describes a fixture graph to generate. Counts are totals spread
// evenly across departments.
type Recipe struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Seed        int64  `yaml:"seed"`
	// Size fixes every department's size; empty samples it.
	Size        string `yaml:"size"`
	Departments int    `yaml:"departments"`
	Stations    int    `yaml:"stations"`
	Users       int    `yaml:"users"`
	Incidents   int    `yaml:"incidents"`

	// City and State anchor the graph. When a geocoder is configured the
	// city is resolved through it; otherwise Lat/Lon are used.
	City     string  `yaml:"city"`
	State    string  `yaml:"state"`
	Lat      float64 `yaml:"lat"`
	Lon      float64 `yaml:"lon"`
	RadiusKM float64 `yaml:"radius_km"`

	// WindowDays is how far back incident received times spread.
	WindowDays int  `yaml:"window_days"`
	// Live anchors timestamps at the current time instead of the fixed
	// epoch. The graph is then only reproducible at the same instant.
	Live       bool `yaml:"live"`
}

type recipeBook struct {
	Fixtures []Recipe `yaml:"fixtures"`
}

// StandardRecipes returns the built-in small, medium, large and heatmap
// recipes.
func StandardRecipes() ([]Recipe, error) {
	return ParseRecipes(standardRecipes)
}

// LoadRecipes reads a recipe file.
func LoadRecipes(path string) ([]Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}
	return ParseRecipes(data)
}

// ParseRecipes decodes and validates a YAML recipe book. Unknown keys are
// rejected.
func ParseRecipes(data []byte) ([]Recipe, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var book recipeBook
	if err := dec.Decode(&book); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse recipes: %w", err)
	}
	if len(book.Fixtures) == 0 {
		return nil, ErrRecipeBookEmpty
	}

	seen := make(map[string]bool, len(book.Fixtures))
	for _, r := range book.Fixtures {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("%w: %s", ErrRecipeDuplicateName, r.Name)
		}
		seen[r.Name] = true
	}
	return book.Fixtures, nil
}

// Validate checks the recipe for values the generators cannot satisfy.
func (r Recipe) Validate() error {
	if r.Name == "" {
		return ErrRecipeMissingName
	}
	if err := validateName(r.Name); err != nil {
		return err
	}
	if r.Departments < 0 || r.Stations < 0 || r.Users < 0 || r.Incidents < 0 {
		return fmt.Errorf("recipe %s: %w", r.Name, ErrRecipeNegativeCount)
	}
	if r.Departments == 0 && (r.Stations > 0 || r.Users > 0 || r.Incidents > 0) {
		return fmt.Errorf("recipe %s: %w", r.Name, ErrRecipeNoDepartments)
	}
	if r.Size != "" {
		if _, err := domain.SizeRangeFor(r.Size); err != nil {
			return fmt.Errorf("recipe %s: %w", r.Name, err)
		}
	}
	if r.RadiusKM < 0 {
		return fmt.Errorf("recipe %s: %w", r.Name, ErrRecipeInvalidRadius)
	}
	if r.WindowDays < 0 {
		return fmt.Errorf("recipe %s: %w", r.Name, ErrRecipeInvalidWindow)
	}
	if (r.Lat != 0 || r.Lon != 0) && (r.City == "" || r.State == "") {
		return fmt.Errorf("recipe %s: %w", r.Name, ErrRecipeLocationNoCity)
	}
	return nil
}

// Graph is a referentially consistent set of generated entities.
type Graph struct {
	Departments []domain.Department
	Stations    []domain.Station
	Users       []domain.User
	Incidents   []domain.Incident
}

// Build generates the recipe's graph. base, when non-nil, anchors every
// department; otherwise departments are placed from the recipe's lat/lon or
// a sampled city.
func (r Recipe) Build(base *domain.Location) (Graph, error) {
	if err := r.Validate(); err != nil {
		return Graph{}, err
	}
	var genOpts []generate.Option
	if r.Live {
		genOpts = append(genOpts, generate.WithClock(domain.Clock()))
	}
	g := generate.New(r.Seed, genOpts...)

	if base == nil && (r.Lat != 0 || r.Lon != 0) {
		base = &domain.Location{Lat: r.Lat, Lon: r.Lon, City: r.City, State: r.State}
	}

	var graph Graph
	for range r.Departments {
		opts := generate.DepartmentOptions{Size: r.Size}
		if base != nil {
			loc := g.Near(*base, r.RadiusKM/2)
			opts.Location = &loc
		}
		d, err := g.Department(opts)
		if err != nil {
			return Graph{}, fmt.Errorf("recipe %s: %w", r.Name, err)
		}
		graph.Departments = append(graph.Departments, d)
	}

	window := time.Duration(r.WindowDays) * 24 * time.Hour
	for i := range graph.Departments {
		d := &graph.Departments[i]

		stations, err := g.Stations(share(r.Stations, len(graph.Departments), i), generate.StationOptions{
			DepartmentID: d.ID,
			Base:         &d.Location,
			RadiusKM:     r.RadiusKM,
		})
		if err != nil {
			return Graph{}, fmt.Errorf("recipe %s: %w", r.Name, err)
		}
		stationIDs := make([]string, 0, len(stations))
		for _, s := range stations {
			stationIDs = append(stationIDs, s.ID)
		}
		syncStationCount(d, len(stations))

		users, err := g.Users(share(r.Users, len(graph.Departments), i), generate.UserBatchOptions{
			UserOptions: generate.UserOptions{DepartmentID: d.ID, EmailDomain: emailDomain(d)},
			StationIDs:  stationIDs,
		})
		if err != nil {
			return Graph{}, fmt.Errorf("recipe %s: %w", r.Name, err)
		}

		incidents, err := g.Incidents(share(r.Incidents, len(graph.Departments), i), generate.IncidentBatchOptions{
			IncidentOptions: generate.IncidentOptions{
				DepartmentID: d.ID,
				Base:         &d.Location,
				RadiusKM:     r.RadiusKM,
			},
			Stations: stations,
			Window:   window,
		})
		if err != nil {
			return Graph{}, fmt.Errorf("recipe %s: %w", r.Name, err)
		}

		graph.Stations = append(graph.Stations, stations...)
		graph.Users = append(graph.Users, users...)
		graph.Incidents = append(graph.Incidents, incidents...)
	}

	sort.SliceStable(graph.Incidents, func(i, j int) bool {
		return graph.Incidents[i].Times.Received.Before(graph.Incidents[j].Times.Received)
	})
	return graph, nil
}

// share splits total across n buckets, giving the remainder to the first
// buckets.
func share(total, n, i int) int {
	if n == 0 {
		return 0
	}
	out := total / n
	if i < total%n {
		out++
	}
	return out
}

// syncStationCount records the generated station count on the department
// when it fits the size range, keeping the graph self-consistent.
func syncStationCount(d *domain.Department, n int) {
	r, err := domain.SizeRangeFor(d.Size)
	if err != nil {
		return
	}
	if r.Stations.Contains(int64(n)) {
		d.StationCount = n
	}
}

func emailDomain(d *domain.Department) string {
	return strings.ToLower(d.Code) + ".fireems.test"
}
