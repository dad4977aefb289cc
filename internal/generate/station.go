package generate

import (
	"fmt"
	"slices"

	"github.com/couchcryptid/fireems-testdata/internal/domain"
)

const defaultStationRadiusKM = 15

var headquartersFeatures = []string{"Administrative Offices", "Emergency Operations Center"}

// StationOptions overrides station fields. Zero values are sampled.
type StationOptions struct {
	ID            string
	DepartmentID  string
	StationNumber int
	Type          string
	StaffingModel string
	// Base is the point stations are scattered around, usually the parent
	// department's location. When nil a city is sampled.
	Base     *domain.Location
	RadiusKM float64
}

// Station generates one station with its apparatus.
func (g *Generator) Station(opts StationOptions) (domain.Station, error) {
	stationType := opts.Type
	if stationType == "" {
		stationType = mustChoose(g.rng, stationTypes)
	}
	plan, ok := apparatusPlans[stationType]
	if !ok {
		return domain.Station{}, fmt.Errorf("%w: station type %q", ErrInvalidOverride, stationType)
	}

	allowed := domain.AllowedStaffing(stationType)
	model := opts.StaffingModel
	if model == "" {
		model = mustChoose(g.rng, restrictTo(staffingModels, allowed))
	} else if !slices.Contains(allowed, model) {
		return domain.Station{}, fmt.Errorf("%w: %s staffing on a %s station", ErrInvalidOverride, model, stationType)
	}
	shifts, err := domain.ShiftsFor(model)
	if err != nil {
		return domain.Station{}, fmt.Errorf("%w: %w", ErrInvalidOverride, err)
	}

	number := opts.StationNumber
	if number == 0 {
		number = g.intBetween(1, 99)
	}
	departmentID := opts.DepartmentID
	if departmentID == "" {
		departmentID = g.newID()
	}
	id := opts.ID
	if id == "" {
		id = g.newID()
	}

	apparatus, err := g.apparatusFor(plan, number)
	if err != nil {
		return domain.Station{}, err
	}

	perShift := 0
	for _, a := range apparatus {
		if a.Status == "In Service" {
			perShift += a.CrewSize
		}
	}
	minimum := perShift * 3 / 4
	if minimum < 1 {
		minimum = 1
	}

	radius := opts.RadiusKM
	if radius <= 0 {
		radius = defaultStationRadiusKM
	}
	var base domain.Location
	if opts.Base != nil {
		base = *opts.Base
	} else {
		c := mustChoose(g.rng, cities)
		base = domain.Location{Lat: c.Lat, Lon: c.Lon, City: c.Name, State: c.State}
	}

	features := sampleDistinct(g.rng, stationFeatures, g.intBetween(1, 4))
	if stationType == domain.StationHeadquarters {
		features = append(slices.Clone(headquartersFeatures), features...)
	}

	created := g.daysAgo(180, 3650)
	return domain.Station{
		ID:            id,
		Name:          fmt.Sprintf("Station %d", number),
		StationNumber: number,
		DepartmentID:  departmentID,
		Type:          stationType,
		Staffing: domain.Staffing{
			Model:             model,
			Shifts:            shifts,
			PersonnelPerShift: perShift,
			TotalPersonnel:    perShift * shifts,
			MinimumStaffing:   minimum,
		},
		Location:       g.Near(base, radius),
		Apparatus:      apparatus,
		AreaServedSqMi: round(5+g.rng.Float64()*45, 1),
		BuiltYear:      g.epoch.Year() - g.intBetween(1, 60),
		Features:       features,
		Status:         mustChoose(g.rng, stationStatuses),
		CreatedAt:      created,
		UpdatedAt:      g.updatedAfter(created),
	}, nil
}

// Apparatus generates one apparatus of the given type for a station.
// ordinal distinguishes multiple units of the same type at one station.
func (g *Generator) Apparatus(apparatusType string, stationNumber, ordinal int) (domain.Apparatus, error) {
	spec, err := domain.ApparatusSpecFor(apparatusType)
	if err != nil {
		return domain.Apparatus{}, fmt.Errorf("%w: %w", ErrInvalidOverride, err)
	}
	mm := mustChoose(g.rng, apparatusMakes[apparatusType])
	return domain.Apparatus{
		ID:           g.newID(),
		Type:         apparatusType,
		Designation:  fmt.Sprintf("%s%d-%d", spec.Prefix, stationNumber, ordinal),
		Status:       mustChoose(g.rng, apparatusStatuses),
		Year:         g.epoch.Year() - g.intBetween(0, 20),
		Make:         mm.Make,
		Model:        mm.Model,
		Capabilities: spec.Capabilities,
		CrewSize:     spec.CrewSize,
	}, nil
}

func (g *Generator) apparatusFor(plan apparatusPlan, stationNumber int) ([]domain.Apparatus, error) {
	types := slices.Clone(plan.Required)
	for range g.intBetween(plan.MinExtras, plan.MaxExtras) {
		types = append(types, mustChoose(g.rng, plan.Extras))
	}

	ordinals := make(map[string]int, len(types))
	out := make([]domain.Apparatus, 0, len(types))
	for i, t := range types {
		ordinals[t]++
		a, err := g.Apparatus(t, stationNumber, ordinals[t])
		if err != nil {
			return nil, err
		}
		// The station's first required unit is always staffed.
		if i == 0 {
			a.Status = "In Service"
		}
		out = append(out, a)
	}
	return out, nil
}

// restrictTo keeps only the entries whose value is in allowed.
func restrictTo(choices []Choice[string], allowed []string) []Choice[string] {
	out := make([]Choice[string], 0, len(choices))
	for _, c := range choices {
		if slices.Contains(allowed, c.Value) {
			out = append(out, c)
		}
	}
	return out
}
