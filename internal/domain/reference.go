package domain

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownSize          = errors.New("unknown department size")
	ErrUnknownIncidentType  = errors.New("unknown incident type")
	ErrUnknownApparatusType = errors.New("unknown apparatus type")
	ErrUnknownStaffingModel = errors.New("unknown staffing model")
	ErrInvalidPriority      = errors.New("priority must be between 1 and 5")
)

// Department sizes.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
	SizeMetro  = "metro"
)

// Incident categories.
const (
	IncidentCategoryEMS     = "EMS"
	IncidentCategoryFire    = "Fire"
	IncidentCategoryService = "Service"
)

// Station types.
const (
	StationFire         = "Fire"
	StationEMS          = "EMS"
	StationCombined     = "Combined"
	StationVolunteer    = "Volunteer"
	StationHeadquarters = "Headquarters"
)

// Staffing models.
const (
	StaffingCareer      = "Career"
	StaffingVolunteer   = "Volunteer"
	StaffingCombination = "Combination"
	StaffingPaidOnCall  = "Paid-on-call"
)

// Apparatus types.
const (
	ApparatusEngine    = "Engine"
	ApparatusLadder    = "Ladder"
	ApparatusAmbulance = "Ambulance"
	ApparatusRescue    = "Rescue"
	ApparatusHazMat    = "HazMat"
	ApparatusTanker    = "Tanker"
	ApparatusBrush     = "Brush"
	ApparatusCommand   = "Command"
)

// Range is an inclusive integer interval.
type Range struct {
	Min int64
	Max int64
}

// Contains reports whether v lies within r.
func (r Range) Contains(v int64) bool {
	return v >= r.Min && v <= r.Max
}

// SizeRange bounds the counts and budget of a department of a given size.
type SizeRange struct {
	Stations  Range
	Personnel Range
	Vehicles  Range
	Budget    Range
}

var sizeRanges = map[string]SizeRange{
	SizeSmall: {
		Stations:  Range{1, 3},
		Personnel: Range{10, 50},
		Vehicles:  Range{2, 8},
		Budget:    Range{500_000, 2_000_000},
	},
	SizeMedium: {
		Stations:  Range{4, 10},
		Personnel: Range{51, 200},
		Vehicles:  Range{9, 25},
		Budget:    Range{2_000_000, 10_000_000},
	},
	SizeLarge: {
		Stations:  Range{11, 25},
		Personnel: Range{201, 600},
		Vehicles:  Range{26, 60},
		Budget:    Range{10_000_000, 40_000_000},
	},
	SizeMetro: {
		Stations:  Range{26, 60},
		Personnel: Range{601, 2000},
		Vehicles:  Range{61, 150},
		Budget:    Range{40_000_000, 200_000_000},
	},
}

// SizeRangeFor returns the range table row for a department size.
func SizeRangeFor(size string) (SizeRange, error) {
	r, ok := sizeRanges[size]
	if !ok {
		return SizeRange{}, fmt.Errorf("%w: %q", ErrUnknownSize, size)
	}
	return r, nil
}

// incidentTypes maps each incident type to its category. The order inside
// each category is the order generators sample in.
var incidentTypes = map[string][]string{
	IncidentCategoryEMS: {
		"Medical Emergency", "Cardiac Arrest", "Difficulty Breathing", "Fall Injury",
		"Motor Vehicle Accident", "Overdose", "Stroke", "Unconscious Person",
	},
	IncidentCategoryFire: {
		"Structure Fire", "Vehicle Fire", "Brush Fire", "Fire Alarm",
		"Smoke Investigation", "Gas Leak", "Hazmat Incident",
	},
	IncidentCategoryService: {
		"Public Assist", "Lift Assist", "Water Problem", "Lockout", "Animal Rescue",
	},
}

// CategoryOfType returns the category an incident type belongs to.
func CategoryOfType(incidentType string) (string, error) {
	for category, types := range incidentTypes {
		if slices.Contains(types, incidentType) {
			return category, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownIncidentType, incidentType)
}

// CriticalIncidentTypes are dispatched with priority 1 or 2.
var CriticalIncidentTypes = []string{
	"Cardiac Arrest", "Structure Fire", "Stroke", "Unconscious Person", "Hazmat Incident",
}

// ApparatusSpec is the fixed profile of an apparatus type.
type ApparatusSpec struct {
	Prefix       string
	Capabilities []string
	CrewSize     int
}

var apparatusSpecs = map[string]ApparatusSpec{
	ApparatusEngine:    {Prefix: "E", Capabilities: []string{"Fire Suppression", "Water Supply", "Basic Life Support"}, CrewSize: 4},
	ApparatusLadder:    {Prefix: "L", Capabilities: []string{"Aerial Operations", "Ventilation", "Search and Rescue"}, CrewSize: 4},
	ApparatusAmbulance: {Prefix: "M", Capabilities: []string{"Advanced Life Support", "Patient Transport"}, CrewSize: 2},
	ApparatusRescue:    {Prefix: "R", Capabilities: []string{"Technical Rescue", "Extrication", "Rope Rescue"}, CrewSize: 4},
	ApparatusHazMat:    {Prefix: "HM", Capabilities: []string{"Hazardous Materials", "Decontamination", "Air Monitoring"}, CrewSize: 3},
	ApparatusTanker:    {Prefix: "T", Capabilities: []string{"Water Supply", "Water Shuttle"}, CrewSize: 2},
	ApparatusBrush:     {Prefix: "B", Capabilities: []string{"Wildland Fire Suppression", "Off-Road Operations"}, CrewSize: 3},
	ApparatusCommand:   {Prefix: "C", Capabilities: []string{"Incident Command", "Communications"}, CrewSize: 1},
}

// ApparatusSpecFor returns the profile for an apparatus type. The returned
// capability slice is a copy.
func ApparatusSpecFor(apparatusType string) (ApparatusSpec, error) {
	spec, ok := apparatusSpecs[apparatusType]
	if !ok {
		return ApparatusSpec{}, fmt.Errorf("%w: %q", ErrUnknownApparatusType, apparatusType)
	}
	spec.Capabilities = slices.Clone(spec.Capabilities)
	return spec, nil
}

var staffingShifts = map[string]int{
	StaffingCareer:      3,
	StaffingCombination: 2,
	StaffingVolunteer:   1,
	StaffingPaidOnCall:  1,
}

// ShiftsFor returns how many rotating shifts a staffing model runs.
func ShiftsFor(model string) (int, error) {
	n, ok := staffingShifts[model]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStaffingModel, model)
	}
	return n, nil
}

// AllowedStaffing lists the staffing models a station type may use.
func AllowedStaffing(stationType string) []string {
	switch stationType {
	case StationVolunteer:
		return []string{StaffingVolunteer, StaffingPaidOnCall}
	case StationHeadquarters:
		return []string{StaffingCareer, StaffingCombination}
	default:
		return []string{StaffingCareer, StaffingCombination, StaffingVolunteer, StaffingPaidOnCall}
	}
}

var rolePermissions = map[string][]string{
	"admin":   {"read", "write", "delete", "manage_users", "manage_department", "export_data"},
	"manager": {"read", "write", "manage_users", "export_data"},
	"user":    {"read", "write"},
	"viewer":  {"read"},
}

// PermissionsForRole returns the permission set granted to a role. Unknown
// roles get no permissions.
func PermissionsForRole(role string) []string {
	return slices.Clone(rolePermissions[role])
}
