package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/couchcryptid/fireems-testdata/internal/domain"
)

// Execer is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Querier is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// InsertDepartment writes one department row.
func InsertDepartment(ctx context.Context, exec Execer, d domain.Department) error {
	contact, err := jsonText(d.Contact)
	if err != nil {
		return err
	}
	location, err := jsonText(d.Location)
	if err != nil {
		return err
	}
	_, err = exec.ExecContext(ctx, `INSERT INTO departments (
		id, name, code, type, size, service_area, station_count, personnel_count,
		vehicle_count, annual_budget, contact, location, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Code, d.Type, d.Size, d.ServiceArea, d.StationCount, d.PersonnelCount,
		d.VehicleCount, d.AnnualBudget, contact, location, timeText(d.CreatedAt), timeText(d.UpdatedAt),
	)
	return err
}

// InsertStation writes one station row.
func InsertStation(ctx context.Context, exec Execer, s domain.Station) error {
	staffing, err := jsonText(s.Staffing)
	if err != nil {
		return err
	}
	location, err := jsonText(s.Location)
	if err != nil {
		return err
	}
	apparatus, err := jsonText(s.Apparatus)
	if err != nil {
		return err
	}
	features, err := jsonText(s.Features)
	if err != nil {
		return err
	}
	_, err = exec.ExecContext(ctx, `INSERT INTO stations (
		id, department_id, name, station_number, type, staffing, location, apparatus,
		area_served_sq_mi, built_year, features, status, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.DepartmentID, s.Name, s.StationNumber, s.Type, staffing, location, apparatus,
		s.AreaServedSqMi, s.BuiltYear, features, s.Status, timeText(s.CreatedAt), timeText(s.UpdatedAt),
	)
	return err
}

// InsertUser writes one user row. An unassigned station is stored as NULL.
func InsertUser(ctx context.Context, exec Execer, u domain.User) error {
	permissions, err := jsonText(u.Permissions)
	if err != nil {
		return err
	}
	certifications, err := jsonText(u.Certifications)
	if err != nil {
		return err
	}
	var lastLogin sql.NullString
	if u.LastLogin != nil {
		lastLogin = sql.NullString{String: timeText(*u.LastLogin), Valid: true}
	}
	_, err = exec.ExecContext(ctx, `INSERT INTO users (
		id, department_id, station_id, email, first_name, last_name, role, rank, phone,
		permissions, certifications, is_active, last_login, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.DepartmentID, nullable(u.StationID), u.Email, u.FirstName, u.LastName, u.Role, u.Rank, u.Phone,
		permissions, certifications, u.IsActive, lastLogin, timeText(u.CreatedAt), timeText(u.UpdatedAt),
	)
	return err
}

// InsertIncident writes one incident row.
func InsertIncident(ctx context.Context, exec Execer, i domain.Incident) error {
	location, err := jsonText(i.Location)
	if err != nil {
		return err
	}
	caller, err := jsonText(i.CallerInfo)
	if err != nil {
		return err
	}
	times, err := jsonText(i.Times)
	if err != nil {
		return err
	}
	units, err := jsonText(i.Units)
	if err != nil {
		return err
	}
	_, err = exec.ExecContext(ctx, `INSERT INTO incidents (
		id, department_id, station_id, call_number, type, category, priority, location,
		caller_info, times, units, outcome, notes, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.DepartmentID, nullable(i.StationID), i.CallNumber, i.Type, i.Category, i.Priority, location,
		caller, times, units, i.Outcome, i.Notes, timeText(i.CreatedAt),
	)
	return err
}

// insertRecord dispatches on the record's concrete type.
func insertRecord(ctx context.Context, exec Execer, rec domain.Record) error {
	switch r := rec.(type) {
	case domain.Department:
		return InsertDepartment(ctx, exec, r)
	case domain.Station:
		return InsertStation(ctx, exec, r)
	case domain.User:
		return InsertUser(ctx, exec, r)
	case domain.Incident:
		return InsertIncident(ctx, exec, r)
	default:
		return fmt.Errorf("unsupported record type %T", rec)
	}
}

func jsonText(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode column: %w", err)
	}
	return string(data), nil
}

func timeText(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
