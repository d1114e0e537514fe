package database

import (
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const memoryDSN = ":memory:"

// Driver names reported by health checks.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// dialectorFor picks the GORM dialector for a DATABASE_URL value.
// postgres:// and postgresql:// URLs go to Postgres; everything else is
// treated as a SQLite path, with an optional sqlite:// prefix.
func dialectorFor(url string) (gorm.Dialector, string) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), DriverPostgres
	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite://")), DriverSQLite
	default:
		return sqlite.Open(url), DriverSQLite
	}
}

// isMemory reports whether url names a private in-memory SQLite database,
// which only exists for the connection that created it.
func isMemory(url string) bool {
	path := strings.TrimPrefix(url, "sqlite://")
	return path == memoryDSN || strings.Contains(path, "mode=memory")
}
