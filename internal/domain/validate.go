package domain

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidRecord wraps every invariant violation reported by Validate.
var ErrInvalidRecord = errors.New("invalid record")

// Validate checks that counts and budget fall in the range for the size.
func (d Department) Validate() error {
	r, err := SizeRangeFor(d.Size)
	if err != nil {
		return fmt.Errorf("%w: department %s: %w", ErrInvalidRecord, d.ID, err)
	}
	checks := []struct {
		field string
		value int64
		rng   Range
	}{
		{"station_count", int64(d.StationCount), r.Stations},
		{"personnel_count", int64(d.PersonnelCount), r.Personnel},
		{"vehicle_count", int64(d.VehicleCount), r.Vehicles},
		{"annual_budget", d.AnnualBudget, r.Budget},
	}
	for _, c := range checks {
		if !c.rng.Contains(c.value) {
			return fmt.Errorf("%w: department %s: %s %d outside %s range [%d, %d]",
				ErrInvalidRecord, d.ID, c.field, c.value, d.Size, c.rng.Min, c.rng.Max)
		}
	}
	return nil
}

// Validate checks staffing against the station type and the apparatus
// profiles against their type.
func (s Station) Validate() error {
	if !slices.Contains(AllowedStaffing(s.Type), s.Staffing.Model) {
		return fmt.Errorf("%w: station %s: %s staffing not allowed for %s station",
			ErrInvalidRecord, s.ID, s.Staffing.Model, s.Type)
	}
	if len(s.Apparatus) == 0 {
		return fmt.Errorf("%w: station %s: no apparatus", ErrInvalidRecord, s.ID)
	}
	for _, a := range s.Apparatus {
		spec, err := ApparatusSpecFor(a.Type)
		if err != nil {
			return fmt.Errorf("%w: station %s: %w", ErrInvalidRecord, s.ID, err)
		}
		if a.CrewSize != spec.CrewSize || !slices.Equal(a.Capabilities, spec.Capabilities) {
			return fmt.Errorf("%w: station %s: apparatus %s profile does not match %s",
				ErrInvalidRecord, s.ID, a.Designation, a.Type)
		}
	}
	return nil
}

// Validate checks the category, priority and time ordering of an incident.
func (i Incident) Validate() error {
	category, err := CategoryOfType(i.Type)
	if err != nil {
		return fmt.Errorf("%w: incident %s: %w", ErrInvalidRecord, i.ID, err)
	}
	if category != i.Category {
		return fmt.Errorf("%w: incident %s: category %q does not match type %q",
			ErrInvalidRecord, i.ID, i.Category, i.Type)
	}
	if i.Priority < 1 || i.Priority > 5 {
		return fmt.Errorf("%w: incident %s: %w", ErrInvalidRecord, i.ID, ErrInvalidPriority)
	}
	t := i.Times
	ordered := []struct {
		name string
		ok   bool
	}{
		{"dispatched before received", !t.Dispatched.Before(t.Received)},
		{"enroute before dispatched", !t.Enroute.Before(t.Dispatched)},
		{"arrived before enroute", !t.Arrived.Before(t.Enroute)},
		{"cleared before arrived", !t.Cleared.Before(t.Arrived)},
	}
	for _, o := range ordered {
		if !o.ok {
			return fmt.Errorf("%w: incident %s: %s", ErrInvalidRecord, i.ID, o.name)
		}
	}
	return nil
}
