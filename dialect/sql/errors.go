package sql

import (
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// MySQL server and client error numbers raised while establishing a session.
const (
	mysqlDBAccessDenied    = 1044
	mysqlAccessDenied      = 1045
	mysqlBadDB             = 1049
	mysqlTooManyConns      = 1040
	mysqlHostNotPrivileged = 1130
)

// PostgreSQL SQLSTATE classes and codes raised while establishing a session.
const (
	pgClassConnectionException  = "08"
	pgClassInvalidAuthorization = "28"
	pgInvalidCatalogName        = "3D000"
	pgTooManyConnections        = "53300"
)

// sqlStateError is implemented by drivers exposing SQLSTATE codes.
type sqlStateError interface {
	SQLState() string
}

// IsConnectionError reports whether err resulted from a failure to reach,
// authenticate with, or select the database rather than from a single
// statement being rejected.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDBAccessDenied, mysqlAccessDenied, mysqlBadDB, mysqlTooManyConns, mysqlHostNotPrivileged:
			return true
		}
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return isPostgresConnState(string(pqErr.Code))
	}
	if e, ok := asError[sqlStateError](err); ok {
		return isPostgresConnState(e.SQLState())
	}

	// Fallback to string matching for drivers without typed errors.
	return containsAny(err.Error(),
		"connection refused",
		"no such host",
		"unable to open database file", // SQLite
		"password authentication failed",
		"bad connection",
	)
}

func isPostgresConnState(code string) bool {
	switch {
	case strings.HasPrefix(code, pgClassConnectionException),
		strings.HasPrefix(code, pgClassInvalidAuthorization):
		return true
	case code == pgInvalidCatalogName, code == pgTooManyConnections:
		return true
	}
	return false
}

// asError attempts to extract an error implementing interface T from the error chain.
func asError[T any](err error) (T, bool) {
	var target T
	for err != nil {
		if e, ok := err.(T); ok {
			return e, true
		}
		err = errors.Unwrap(err)
	}
	return target, false
}

// containsAny returns true if s contains any of the substrings.
func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
