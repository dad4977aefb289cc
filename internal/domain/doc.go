// Package domain models the fire/EMS entities used as test data for the
// FireEMS.ai application.
//
// # Entity Graph
//
//	Department ─┬─< Station ──< Apparatus (embedded)
//	            ├─< User
//	            └─< Incident ──< Unit (embedded)
//
// Stations, users and incidents reference their department by ID. Users and
// incidents may also reference a station. References are advisory: nothing in
// this package checks that a referenced department exists.
//
// # Derived Fields
//
// Several fields are never sampled on their own. They are looked up from the
// reference tables in this package so every record stays internally
// consistent:
//
//   - Department counts and budget fall inside the range for its size
//     (see [SizeRangeFor]).
//   - Incident category follows from the incident type (see [CategoryOfType]).
//   - Apparatus capabilities and crew size follow from the apparatus type
//     (see [ApparatusSpecFor]).
//   - User permissions follow from the role (see [PermissionsForRole]).
//
// # Incident Times
//
// The incident-level times are aggregates over the responding units:
//
//	received ≤ dispatched ≤ enroute (first unit) ≤ arrived (first unit) ≤ cleared (last unit)
//
// [Incident.Validate] checks this ordering.
package domain
