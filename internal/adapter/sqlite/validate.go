package sqlite

import (
	"context"
	"errors"
	"fmt"
)

// ErrOrphanedReferences is returned by a strict load when any row references
// a department or station that is not in the database.
var ErrOrphanedReferences = errors.New("orphaned references")

// Orphan is a row whose foreign key points at a missing parent.
type Orphan struct {
	Table     string `json:"table"`
	ID        string `json:"id"`
	Column    string `json:"column"`
	Reference string `json:"reference"`
}

func (o Orphan) String() string {
	return fmt.Sprintf("%s %s: %s %q not found", o.Table, o.ID, o.Column, o.Reference)
}

type reference struct {
	table, column, parent string
}

var references = []reference{
	{"stations", "department_id", "departments"},
	{"users", "department_id", "departments"},
	{"users", "station_id", "stations"},
	{"incidents", "department_id", "departments"},
	{"incidents", "station_id", "stations"},
}

// Validate lists every row whose department or station reference is missing.
// NULL references are allowed. Results are grouped by table in insertion
// order and sorted by id within each check.
func Validate(ctx context.Context, db Querier) ([]Orphan, error) {
	var orphans []Orphan
	for _, ref := range references {
		query := fmt.Sprintf(
			`SELECT c.id, c.%[2]s FROM %[1]s c LEFT JOIN %[3]s p ON p.id = c.%[2]s
			WHERE c.%[2]s IS NOT NULL AND p.id IS NULL ORDER BY c.id`,
			ref.table, ref.column, ref.parent,
		)
		rows, err := db.QueryContext(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("validate %s.%s: %w", ref.table, ref.column, err)
		}
		for rows.Next() {
			o := Orphan{Table: ref.table, Column: ref.column}
			if err := rows.Scan(&o.ID, &o.Reference); err != nil {
				_ = rows.Close()
				return nil, fmt.Errorf("scan %s: %w", ref.table, err)
			}
			orphans = append(orphans, o)
		}
		err = rows.Err()
		_ = rows.Close()
		if err != nil {
			return nil, fmt.Errorf("validate %s.%s: %w", ref.table, ref.column, err)
		}
	}
	return orphans, nil
}
