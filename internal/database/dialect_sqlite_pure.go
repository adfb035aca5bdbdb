package database

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// PureSQLiteDialect implements Dialect for SQLite through the pure Go
// modernc driver, for builds without cgo such as the terminal drill.
type PureSQLiteDialect struct {
	SQLiteDialect
}

// NewPureSQLiteDialect creates a new pure Go SQLite dialect
func NewPureSQLiteDialect() *PureSQLiteDialect {
	return &PureSQLiteDialect{}
}

func (d *PureSQLiteDialect) DriverName() string {
	return "sqlite"
}

func (d *PureSQLiteDialect) DSN(config DialectConfig) string {
	return config.Path + "?_pragma=busy_timeout(5000)"
}

func (d *PureSQLiteDialect) ConfigureConnection(db *sql.DB) error {
	// a single writer avoids SQLITE_BUSY for the local drill database
	db.SetMaxOpenConns(1)
	return configureSQLite(db)
}
