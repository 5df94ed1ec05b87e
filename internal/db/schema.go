package db

import (
	"context"
	"database/sql"
	"errors"
)

// RequiredTables are the tables the booking engine reads or writes.
var RequiredTables = []string{"tours", "tour_packages", "bookings", "payments", "invoices", "refunds"}

func HasTable(ctx context.Context, q DBTX, table string) (bool, error) {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return name.Valid && name.String != "", nil
}

// MissingTables lists the entries of tables not present in the current schema.
func MissingTables(ctx context.Context, q DBTX, tables ...string) ([]string, error) {
	var missing []string
	for _, t := range tables {
		ok, err := HasTable(ctx, q, t)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, t)
		}
	}
	return missing, nil
}
