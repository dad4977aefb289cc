package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Counts returns the row count of every table. Each table is counted
// concurrently on its own short-lived handle; a *sql.DB is never shared
// between the probes.
func Counts(ctx context.Context, path string) (map[string]int, error) {
	tables := Tables()
	counts := make([]int, len(tables))

	g, ctx := errgroup.WithContext(ctx)
	for i, table := range tables {
		g.Go(func() error {
			n, err := countRows(ctx, path, table)
			if err != nil {
				return err
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]int, len(tables))
	for i, table := range tables {
		out[table] = counts[i]
	}
	return out, nil
}

func countRows(ctx context.Context, path, table string) (int, error) {
	db, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	var n int
	row := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// DistinctDepartments returns the department ids referenced by stations.
func DistinctDepartments(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT DISTINCT department_id FROM stations ORDER BY department_id`)
	if err != nil {
		return nil, fmt.Errorf("query station departments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan department id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
