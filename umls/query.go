package umls

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sanjeeku/ddbiolib/dialect"
	dsql "github.com/sanjeeku/ddbiolib/dialect/sql"
)

// Relation is one row of the SRSTR table restricted to semantic types:
// Source Label Target, as in "Physical Object isa Entity".
type Relation struct {
	Source string
	Label  string
	Target string
}

// relationQuery selects every SRSTR row carrying the given relation label
// whose two ends are semantic type definitions (RT = 'STY') in SRDEF.
const relationQuery = `SELECT C.STY_RL1, C.RL, C.STY_RL2 FROM SRSTR AS C
INNER JOIN SRDEF AS A ON C.STY_RL1 = A.STY_RL
INNER JOIN SRDEF AS B ON C.STY_RL2 = B.STY_RL
WHERE A.RT = 'STY' AND B.RT = 'STY' AND C.RL = %s`

// RelationQuery returns the relation lookup for a dialect, with the label
// as its single bind parameter.
func RelationQuery(d string) string {
	placeholder := "?"
	if dialect.Normalize(d) == dialect.Postgres {
		placeholder = "$1"
	}
	return fmt.Sprintf(relationQuery, placeholder)
}

// queryRelations runs the relation lookup and returns its rows. Rows with a
// NULL column are dropped and counted in skipped.
func queryRelations(ctx context.Context, drv dialect.Driver, label string) (rels []Relation, skipped int, err error) {
	rows := &dsql.Rows{}
	if err := drv.Query(ctx, RelationQuery(drv.Dialect()), []any{label}, rows); err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var cols [3]any
		if err := rows.Scan(&cols[0], &cols[1], &cols[2]); err != nil {
			return nil, 0, fmt.Errorf("scan relation row: %w", err)
		}
		var vals [3]string
		valid := true
		for i, c := range cols {
			vals[i], valid = stringify(c)
			if !valid {
				break
			}
		}
		if !valid {
			skipped++
			continue
		}
		rels = append(rels, Relation{Source: vals[0], Label: vals[1], Target: vals[2]})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("read relation rows: %w", err)
	}
	return rels, skipped, nil
}

// stringify coerces a scanned column to a string. It reports false for NULL.
func stringify(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case []byte:
		return string(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return fmt.Sprint(v), true
	}
}
