package generate

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/fireems-testdata/internal/domain"
)

// DepartmentOptions overrides department fields. Zero values are sampled.
// Counts and budget are always derived from Size.
type DepartmentOptions struct {
	ID          string
	Name        string
	Type        string
	Size        string
	ServiceArea string
	// Location anchors the headquarters. When nil a city is sampled and the
	// headquarters placed within 5 km of its center.
	Location *domain.Location
}

// Department generates one department.
func (g *Generator) Department(opts DepartmentOptions) (domain.Department, error) {
	deptType := opts.Type
	if deptType == "" {
		deptType = mustChoose(g.rng, departmentTypes)
	} else if !contains(departmentTypes, deptType) {
		return domain.Department{}, fmt.Errorf("%w: department type %q", ErrInvalidOverride, deptType)
	}

	size := opts.Size
	if size == "" {
		size = mustChoose(g.rng, departmentSizes)
	}
	ranges, err := domain.SizeRangeFor(size)
	if err != nil {
		return domain.Department{}, fmt.Errorf("%w: %w", ErrInvalidOverride, err)
	}

	serviceArea := opts.ServiceArea
	if serviceArea == "" {
		serviceArea = mustChoose(g.rng, serviceAreas)
	}

	var loc domain.Location
	if opts.Location != nil {
		loc = *opts.Location
	} else {
		c := mustChoose(g.rng, cities)
		loc = g.Near(domain.Location{Lat: c.Lat, Lon: c.Lon, City: c.Name, State: c.State}, 5)
	}

	name := opts.Name
	if name == "" {
		place := loc.City
		if place == "" {
			place = g.pick(lastNames)
		}
		name = fmt.Sprintf(departmentNameFormats[deptType], place)
	}

	id := opts.ID
	if id == "" {
		id = g.newID()
	}

	// Budgets are whole thousands; every range bound is a multiple of 1000.
	budget := g.int64Between(ranges.Budget.Min, ranges.Budget.Max) / 1000 * 1000

	site := slug(name)
	chiefFirst, chiefLast := g.personName()
	created := g.daysAgo(365, 3650)

	return domain.Department{
		ID:             id,
		Name:           name,
		Code:           departmentCode(name, g.intBetween(1, 999)),
		Type:           deptType,
		Size:           size,
		ServiceArea:    serviceArea,
		StationCount:   int(g.int64Between(ranges.Stations.Min, ranges.Stations.Max)),
		PersonnelCount: int(g.int64Between(ranges.Personnel.Min, ranges.Personnel.Max)),
		VehicleCount:   int(g.int64Between(ranges.Vehicles.Min, ranges.Vehicles.Max)),
		AnnualBudget:   budget,
		Contact: domain.Contact{
			Email:   "info@" + site + ".gov",
			Phone:   g.phone(g.areaCodeFor(loc.City)),
			Website: "https://www." + site + ".gov",
			Chief:   "Chief " + chiefFirst + " " + chiefLast,
		},
		Location:  loc,
		CreatedAt: created,
		UpdatedAt: g.updatedAfter(created),
	}, nil
}

// departmentCode builds a short code from the initials of the name.
func departmentCode(name string, n int) string {
	var initials strings.Builder
	for _, word := range strings.Fields(name) {
		r := word[0]
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		if r >= 'A' && r <= 'Z' {
			initials.WriteByte(r)
		}
	}
	return fmt.Sprintf("%s-%03d", initials.String(), n)
}
