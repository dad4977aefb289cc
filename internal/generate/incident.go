package generate

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/couchcryptid/fireems-testdata/internal/domain"
)

const (
	defaultIncidentRadiusKM = 10
	defaultIncidentWindow   = 30 * 24 * time.Hour
)

// IncidentOptions overrides incident fields. Zero values are sampled.
type IncidentOptions struct {
	ID           string
	DepartmentID string
	StationID    string
	CallNumber   string
	Type         string
	// Priority must be 1 (most urgent) through 5 when set.
	Priority int
	// Received defaults to a random time in the 30 days before the epoch.
	Received time.Time
	// Base is the point incidents are scattered around. When nil a city is
	// sampled.
	Base     *domain.Location
	RadiusKM float64
}

// Incident generates one incident with its responding units.
func (g *Generator) Incident(opts IncidentOptions) (domain.Incident, error) {
	incidentType := opts.Type
	if incidentType == "" {
		incidentType = mustChoose(g.rng, incidentTypeWeights)
	}
	category, err := domain.CategoryOfType(incidentType)
	if err != nil {
		return domain.Incident{}, fmt.Errorf("%w: %w", ErrInvalidOverride, err)
	}

	priority := opts.Priority
	switch {
	case priority == 0 && slices.Contains(domain.CriticalIncidentTypes, incidentType):
		priority = mustChoose(g.rng, criticalPriorityWeights)
	case priority == 0:
		priority = mustChoose(g.rng, priorityWeights)
	case priority < 1 || priority > 5:
		return domain.Incident{}, fmt.Errorf("%w: %w: got %d", ErrInvalidOverride, domain.ErrInvalidPriority, priority)
	}

	received := opts.Received
	if received.IsZero() {
		received = g.epoch.Add(-time.Duration(g.int64Between(1, int64(defaultIncidentWindow/time.Second))) * time.Second)
	}

	departmentID := opts.DepartmentID
	if departmentID == "" {
		departmentID = g.newID()
	}
	id := opts.ID
	if id == "" {
		id = g.newID()
	}
	callNumber := opts.CallNumber
	if callNumber == "" {
		callNumber = CallNumber(received, g.intBetween(1, 999999))
	}

	radius := opts.RadiusKM
	if radius <= 0 {
		radius = defaultIncidentRadiusKM
	}
	var base domain.Location
	if opts.Base != nil {
		base = *opts.Base
	} else {
		c := mustChoose(g.rng, cities)
		base = domain.Location{Lat: c.Lat, Lon: c.Lon, City: c.Name, State: c.State}
	}
	loc := g.Near(base, radius)

	times, units := g.response(incidentType, category, priority, received)

	first, last := g.personName()
	caller := domain.CallerInfo{
		Name:     first + " " + last,
		Phone:    g.phone(g.areaCodeFor(loc.City)),
		Relation: mustChoose(g.rng, callerRelations),
	}
	outcome := mustChoose(g.rng, outcomesByCategory[category])

	return domain.Incident{
		ID:           id,
		DepartmentID: departmentID,
		StationID:    opts.StationID,
		CallNumber:   callNumber,
		Type:         incidentType,
		Category:     category,
		Priority:     priority,
		Location:     loc,
		CallerInfo:   caller,
		Times:        times,
		Units:        units,
		Outcome:      outcome,
		Notes: fmt.Sprintf("%s reported by %s at %s. %d unit(s) responded. %s.",
			incidentType, strings.ToLower(caller.Relation), loc.Address, len(units), outcome),
		CreatedAt: received,
	}, nil
}

// CallNumber formats a dispatch call number as two-digit year and a
// six-digit sequence, e.g. 24-000123.
func CallNumber(received time.Time, seq int) string {
	return fmt.Sprintf("%s-%06d", received.Format("06"), seq)
}

// response draws the incident milestones and the responding units. Each unit
// is dispatched at or after the incident dispatch and runs its own turnout,
// travel and on-scene clock; the incident's enroute and arrived are the
// earliest unit's, cleared the latest's.
func (g *Generator) response(incidentType, category string, priority int, received time.Time) (domain.IncidentTimes, []domain.Unit) {
	dispatched := received.Add(g.seconds(dispatchWindows[priority]))

	count, ok := unitCountByType[incidentType]
	if !ok {
		count = unitCountByCategory[category]
	}
	sequence, ok := unitSequenceByType[incidentType]
	if !ok {
		sequence = unitSequenceByCategory[category]
	}
	onScene, ok := onSceneByType[incidentType]
	if !ok {
		onScene = onSceneByCategory[category]
	}

	n := g.intBetween(count.Min, count.Max)
	units := make([]domain.Unit, 0, n)
	numbers := make(map[string]int, len(sequence))
	for i := range n {
		unitType := sequence[i%len(sequence)]
		spec, err := domain.ApparatusSpecFor(unitType)
		if err != nil {
			panic(err) // static tables only name known apparatus
		}
		if _, seen := numbers[unitType]; !seen {
			numbers[unitType] = g.intBetween(1, 40)
		} else {
			numbers[unitType]++
		}

		u := domain.Unit{
			ID:         fmt.Sprintf("%s%d", spec.Prefix, numbers[unitType]),
			Type:       unitType,
			Dispatched: dispatched,
		}
		if i > 0 {
			// Second-alarm units are toned out shortly after the first.
			u.Dispatched = dispatched.Add(time.Duration(g.intBetween(0, 90)) * time.Second)
		}
		u.Enroute = u.Dispatched.Add(g.seconds(turnoutWindow))
		u.Arrived = u.Enroute.Add(g.seconds(travelWindows[priority]))
		u.Cleared = u.Arrived.Add(g.seconds(onScene))
		units = append(units, u)
	}

	times := domain.IncidentTimes{
		Received:   received,
		Dispatched: dispatched,
		Enroute:    units[0].Enroute,
		Arrived:    units[0].Arrived,
		Cleared:    units[0].Cleared,
	}
	for _, u := range units[1:] {
		if u.Enroute.Before(times.Enroute) {
			times.Enroute = u.Enroute
		}
		if u.Arrived.Before(times.Arrived) {
			times.Arrived = u.Arrived
		}
		if u.Cleared.After(times.Cleared) {
			times.Cleared = u.Cleared
		}
	}
	return times, units
}
