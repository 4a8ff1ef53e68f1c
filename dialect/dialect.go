package dialect

import (
	"context"
	"strings"
)

// Dialect names for the supported databases. The values double as the
// database/sql driver names registered by the respective driver packages.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// ExecQuerier wraps the statement operations of a driver. The loader only
// reads through Query; Exec runs statements that return no rows. args is
// expected to be a []any and v a destination understood by the
// implementation (*sql.Rows for Query, *sql.Result or nil for Exec).
type ExecQuerier interface {
	Exec(ctx context.Context, query string, args, v any) error
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the data source accessor handed to a semantic network session.
type Driver interface {
	ExecQuerier
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Supported reports whether name is one of the known dialects.
func Supported(name string) bool {
	switch name {
	case MySQL, SQLite, Postgres:
		return true
	}
	return false
}

// Normalize maps driver names that carry a dialect prefix (for example a
// wrapped "mysql-traced" driver) to the dialect name.
func Normalize(name string) string {
	for _, d := range []string{MySQL, SQLite, Postgres} {
		if strings.HasPrefix(name, d) {
			return d
		}
	}
	return name
}
