// Package sql adapts database/sql to the dialect.Driver interface.
//
// # Opening a Driver
//
//	drv, err := sql.Open(dialect.MySQL, "umls:secret@tcp(localhost:3306)/umls")
//	if err != nil {
//	    return err
//	}
//	defer drv.Close()
//
// An existing *sql.DB (for example one created by go-sqlmock in tests) is
// wrapped with OpenDB:
//
//	db, mock, _ := sqlmock.New()
//	drv := sql.OpenDB(dialect.MySQL, db)
//
// # Querying
//
// Query fills a *Rows that the caller must close:
//
//	rows := &sql.Rows{}
//	if err := drv.Query(ctx, "SELECT STY_RL FROM SRDEF", []any{}, rows); err != nil {
//	    return err
//	}
//	defer rows.Close()
//
// # Instrumentation
//
// StatsDriver counts queries and reports slow ones, DebugDriver logs every
// statement. StatsDriver wraps a *Driver, DebugDriver wraps any
// dialect.Driver (including a StatsDriver), and both satisfy dialect.Driver.
//
// # Error Classification
//
// IsConnectionError separates failures to reach or authenticate with the
// server from failures of an individual statement.
package sql
