package umls

// Register the database/sql drivers for every supported dialect so that
// sessions built from a Config can open any of them.
import (
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)
