package umls_test

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjeeku/ddbiolib/dialect"
	dsql "github.com/sanjeeku/ddbiolib/dialect/sql"
	"github.com/sanjeeku/ddbiolib/umls"
)

var networkSchema = []string{
	`CREATE TABLE SRDEF (RT TEXT NOT NULL, UI TEXT NOT NULL, STY_RL TEXT NOT NULL)`,
	`CREATE TABLE SRSTR (STY_RL1 TEXT, RL TEXT, STY_RL2 TEXT, LS TEXT)`,
}

var networkDefs = [][3]string{
	{"STY", "T071", "Entity"},
	{"STY", "T072", "Physical Object"},
	{"STY", "T001", "Organism"},
	{"STY", "T077", "Conceptual Entity"},
	{"STY", "T051", "Event"},
	{"STY", "T052", "Activity"},
	{"RL", "T186", "isa"},
	{"RL", "T151", "affects"},
}

var networkStructure = [][3]string{
	{"Physical Object", "isa", "Entity"},
	{"Organism", "isa", "Physical Object"},
	{"Conceptual Entity", "isa", "Entity"},
	{"Activity", "isa", "Event"},
	// Dropped by the joins: an undefined type and a relation-typed end.
	{"Organism", "isa", "Unknown Thing"},
	{"affects", "isa", "isa"},
	{"Organism", "affects", "Activity"},
}

// seedNetwork creates a small SRDEF/SRSTR extract in a SQLite file and
// returns its path.
func seedNetwork(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "umls.db")
	drv, err := dsql.Open(dialect.SQLite, path)
	require.NoError(t, err)
	defer drv.Close()

	ctx := context.Background()
	for _, stmt := range networkSchema {
		require.NoError(t, drv.Exec(ctx, stmt, []any{}, nil))
	}
	for _, d := range networkDefs {
		require.NoError(t, drv.Exec(ctx, "INSERT INTO SRDEF (RT, UI, STY_RL) VALUES (?, ?, ?)", []any{d[0], d[1], d[2]}, nil))
	}
	for _, s := range networkStructure {
		require.NoError(t, drv.Exec(ctx, "INSERT INTO SRSTR (STY_RL1, RL, STY_RL2, LS) VALUES (?, ?, ?, 'D')", []any{s[0], s[1], s[2]}, nil))
	}
	return path
}

func sqliteConfig(t *testing.T) umls.Config {
	t.Helper()
	groups := filepath.Join(t.TempDir(), "SemGroups.txt")
	require.NoError(t, writeFile(groups, actiGroups))
	return umls.Config{
		Dialect:            dialect.SQLite,
		Database:           seedNetwork(t),
		GroupsPath:         groups,
		SlowQueryThreshold: time.Hour,
	}
}

func TestSQLite_IsA(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sn, err := umls.New(ctx, sqliteConfig(t), umls.WithLogger(discardLogger()))
	require.NoError(t, err)
	defer sn.Close()

	g, err := sn.IsA(ctx)
	require.NoError(t, err)

	assert.Equal(t, 7, g.Len())
	assert.Equal(t, 6, g.Size())
	assert.Equal(t, []string{"Entity", "Event"}, g.Successors(umls.Root))
	assert.Equal(t, []string{umls.Root}, g.Roots())
	assert.True(t, g.HasEdge("Entity", "Physical Object"))
	assert.True(t, g.HasEdge("Physical Object", "Organism"))
	assert.False(t, g.HasNode("Unknown Thing"))
	assert.False(t, g.HasNode("affects"))

	again, err := sn.Graph(ctx, umls.DefaultRelation)
	require.NoError(t, err)
	assert.Same(t, g, again)
	assert.Equal(t, int64(1), sn.Stats().TotalQueries)
}

func TestSQLite_OtherRelation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sn, err := umls.New(ctx, sqliteConfig(t), umls.WithLogger(discardLogger()))
	require.NoError(t, err)
	defer sn.Close()

	g, err := sn.Graph(ctx, "affects")
	require.NoError(t, err)
	assert.Equal(t, []string{"Activity", "Organism"}, g.Nodes())
	assert.True(t, g.HasEdge("Activity", "Organism"))
	assert.False(t, g.HasNode(umls.Root))

	g, err = sn.Graph(ctx, "part_of")
	require.NoError(t, err)
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, []string{"affects", "part_of"}, sn.Relations())
}

func TestSQLite_Groups(t *testing.T) {
	t.Parallel()

	sn, err := umls.New(context.Background(), sqliteConfig(t), umls.WithLogger(discardLogger()))
	require.NoError(t, err)
	defer sn.Close()

	assert.Equal(t, []string{
		"Daily or Recreational Activity",
		"Governmental or Regulatory Activity",
	}, sn.Groups().Members("Activities & Behaviors"))
}

func TestSQLite_CloseOwnedDriver(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sn, err := umls.New(ctx, sqliteConfig(t), umls.WithLogger(discardLogger()))
	require.NoError(t, err)
	require.NoError(t, sn.Close())

	_, err = sn.Graph(ctx, "isa")
	require.Error(t, err)
	assert.True(t, umls.IsQueryError(err))
}

func TestSQLite_ConnectionError(t *testing.T) {
	t.Parallel()

	cfg := sqliteConfig(t)
	cfg.Database = filepath.Join(t.TempDir(), "missing", "dir", "umls.db")

	sn, err := umls.New(context.Background(), cfg, umls.WithLogger(discardLogger()))
	require.Error(t, err)
	assert.Nil(t, sn)
	assert.True(t, umls.IsConnectionError(err))

	var ce *umls.ConnectionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, dialect.SQLite, ce.Dialect)
}

func TestSQLite_LogQueries(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := sqliteConfig(t)
	cfg.LogQueries = true
	ctx := context.Background()
	sn, err := umls.New(ctx, cfg, umls.WithLogger(logger))
	require.NoError(t, err)
	defer sn.Close()

	_, err = sn.IsA(ctx)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "query: SELECT C.STY_RL1, C.RL, C.STY_RL2 FROM SRSTR AS C")
	assert.Contains(t, buf.String(), "args: [isa]")
	// Statistics are still collected beneath the logging wrapper.
	assert.Equal(t, int64(1), sn.Stats().TotalQueries)
}
