package generate

import (
	"fmt"
	"sort"
	"time"

	"github.com/couchcryptid/fireems-testdata/internal/domain"
)

// Batch generators loop the single-entity generators on the shared source, so
// consecutive entities never repeat. Per-entity ID overrides are ignored.

// Departments generates n departments.
func (g *Generator) Departments(n int, opts DepartmentOptions) ([]domain.Department, error) {
	opts.ID = ""
	out := make([]domain.Department, 0, n)
	for i := range n {
		d, err := g.Department(opts)
		if err != nil {
			return nil, fmt.Errorf("department %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// Stations generates n stations with sequential station numbers starting at
// opts.StationNumber (or 1).
func (g *Generator) Stations(n int, opts StationOptions) ([]domain.Station, error) {
	opts.ID = ""
	start := opts.StationNumber
	if start == 0 {
		start = 1
	}
	out := make([]domain.Station, 0, n)
	for i := range n {
		o := opts
		o.StationNumber = start + i
		s, err := g.Station(o)
		if err != nil {
			return nil, fmt.Errorf("station %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// UserBatchOptions adds a station pool to UserOptions.
type UserBatchOptions struct {
	UserOptions
	// StationIDs are assigned round-robin. Empty leaves users unassigned
	// unless UserOptions.StationID is set.
	StationIDs []string
}

// Users generates n users.
func (g *Generator) Users(n int, opts UserBatchOptions) ([]domain.User, error) {
	o := opts.UserOptions
	o.ID = ""
	out := make([]domain.User, 0, n)
	for i := range n {
		if len(opts.StationIDs) > 0 {
			o.StationID = opts.StationIDs[i%len(opts.StationIDs)]
		}
		u, err := g.User(o)
		if err != nil {
			return nil, fmt.Errorf("user %d: %w", i, err)
		}
		out = append(out, u)
	}
	return out, nil
}

// IncidentBatchOptions adds a station pool and a time window to
// IncidentOptions.
type IncidentBatchOptions struct {
	IncidentOptions
	// Stations, when set, each incident is attributed to a random station and
	// scattered around that station's location.
	Stations []domain.Station
	// Window is how far before the epoch received times may fall. Defaults
	// to 30 days.
	Window time.Duration
}

// Incidents generates n incidents sorted by received time with sequential
// call numbers.
func (g *Generator) Incidents(n int, opts IncidentBatchOptions) ([]domain.Incident, error) {
	window := opts.Window
	if window <= 0 {
		window = defaultIncidentWindow
	}

	out := make([]domain.Incident, 0, n)
	for i := range n {
		o := opts.IncidentOptions
		o.ID = ""
		o.CallNumber = ""
		o.Received = g.epoch.Add(-time.Duration(g.int64Between(1, int64(window/time.Second))) * time.Second)
		if len(opts.Stations) > 0 {
			s := opts.Stations[g.rng.Intn(len(opts.Stations))]
			o.StationID = s.ID
			if o.DepartmentID == "" {
				o.DepartmentID = s.DepartmentID
			}
			base := s.Location
			o.Base = &base
		}
		inc, err := g.Incident(o)
		if err != nil {
			return nil, fmt.Errorf("incident %d: %w", i, err)
		}
		out = append(out, inc)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Times.Received.Before(out[j].Times.Received)
	})
	for i := range out {
		out[i].CallNumber = CallNumber(out[i].Times.Received, i+1)
	}
	return out, nil
}
