package database

import (
	"context"
	"database/sql"
)

// DBTX defines the database operations needed by repositories.
// Queries are written with ? placeholders and rewritten per dialect.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	GetDialect() Dialect
}

var _ DBTX = (*DB)(nil)
