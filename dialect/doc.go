// Package dialect defines the database dialect names and the driver
// interfaces the semantic network loader depends on.
//
// # Supported Dialects
//
//   - MySQL: the default, matching the UMLS MySQL load scripts
//   - Postgres: PostgreSQL
//   - SQLite: local extracts of the SRDEF and SRSTR tables
//
// # Driver Interface
//
// A Driver is anything that can run a query and fill a *sql.Rows:
//
//	type Driver interface {
//	    ExecQuerier
//	    Close() error
//	    Dialect() string
//	}
//
// The concrete implementation lives in dialect/sql:
//
//	drv, err := sql.Open(dialect.MySQL, dsn)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
package dialect
