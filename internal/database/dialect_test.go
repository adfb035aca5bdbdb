package database

import (
	"testing"
)

func TestDialects(t *testing.T) {
	tests := []struct {
		dialect   Dialect
		driver    string
		subdir    string
		trueValue string
	}{
		{NewSQLiteDialect(), "sqlite3", "sqlite", "1"},
		{NewPureSQLiteDialect(), "sqlite", "sqlite", "1"},
		{NewPostgresDialect(), "postgres", "postgres", "TRUE"},
		{NewMySQLDialect(), "mysql", "mysql", "TRUE"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driver {
				t.Errorf("DriverName() = %v, want %v", got, tt.driver)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.subdir {
				t.Errorf("MigrationsSubdir() = %v, want %v", got, tt.subdir)
			}
			if got := tt.dialect.BoolValue(true); got != tt.trueValue {
				t.Errorf("BoolValue(true) = %v, want %v", got, tt.trueValue)
			}
		})
	}
}

func TestDialectFor(t *testing.T) {
	tests := []struct {
		dbType string
		driver string
	}{
		{"", "sqlite3"},
		{"sqlite", "sqlite3"},
		{"sqlite-pure", "sqlite"},
		{"PostgreSQL", "postgres"},
		{"mysql", "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.dbType, func(t *testing.T) {
			dialect, err := DialectFor(tt.dbType)
			if err != nil {
				t.Fatalf("DialectFor(%q) failed: %v", tt.dbType, err)
			}
			if dialect.DriverName() != tt.driver {
				t.Errorf("DialectFor(%q) driver = %v, want %v", tt.dbType, dialect.DriverName(), tt.driver)
			}
		})
	}

	if _, err := DialectFor("oracle"); err == nil {
		t.Error("expected an error for an unsupported database type")
	}
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM quiz_progress WHERE client_id = ?",
			expected: "SELECT * FROM quiz_progress WHERE client_id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM libraries WHERE name = ?",
			expected: "SELECT * FROM libraries WHERE name = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "DELETE FROM quiz_progress WHERE client_id = ? AND namespace = ?",
			expected: "DELETE FROM quiz_progress WHERE client_id = $1 AND namespace = $2",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE display_settings SET page_scale = ? WHERE client_id = ?",
			expected: "UPDATE display_settings SET page_scale = ? WHERE client_id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestUpsert(t *testing.T) {
	keys := []string{"client_id"}
	values := []string{"page_scale", "updated_unix"}

	sqlite := NewSQLiteDialect().Upsert("display_settings", keys, values)
	want := "INSERT INTO display_settings (client_id, page_scale, updated_unix) VALUES (?, ?, ?) " +
		"ON CONFLICT (client_id) DO UPDATE SET page_scale = excluded.page_scale, updated_unix = excluded.updated_unix"
	if sqlite != want {
		t.Errorf("SQLite Upsert() = %q, want %q", sqlite, want)
	}

	mysql := NewMySQLDialect().Upsert("display_settings", keys, values)
	want = "INSERT INTO display_settings (client_id, page_scale, updated_unix) VALUES (?, ?, ?) " +
		"ON DUPLICATE KEY UPDATE page_scale = VALUES(page_scale), updated_unix = VALUES(updated_unix)"
	if mysql != want {
		t.Errorf("MySQL Upsert() = %q, want %q", mysql, want)
	}
}

func TestMySQLDSNAddsParseTime(t *testing.T) {
	d := NewMySQLDialect()
	tests := map[string]string{
		"user:pw@tcp(db:3306)/vocab":                "user:pw@tcp(db:3306)/vocab?parseTime=true",
		"user:pw@tcp(db:3306)/vocab?charset=utf8mb4": "user:pw@tcp(db:3306)/vocab?charset=utf8mb4&parseTime=true",
		"user:pw@tcp(db:3306)/vocab?parseTime=false": "user:pw@tcp(db:3306)/vocab?parseTime=false",
	}
	for in, want := range tests {
		if got := d.DSN(DialectConfig{URL: in}); got != want {
			t.Errorf("DSN(%q) = %q, want %q", in, got, want)
		}
	}
}
