package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjeeku/ddbiolib/dialect"
	dsql "github.com/sanjeeku/ddbiolib/dialect/sql"
)

const semGroups = `ACTI|Activities & Behaviors|T052|Activity
OBJC|Objects|T071|Entity
OBJC|Objects|T072|Physical Object
PHEN|Phenomena|T051|Event
`

// writeFixtures seeds a SQLite network with two isa roots and returns the
// path of a config file pointing at it.
func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "umls.db")

	drv, err := dsql.Open(dialect.SQLite, dbPath)
	require.NoError(t, err)
	defer drv.Close()

	ctx := context.Background()
	stmts := []string{
		`CREATE TABLE SRDEF (RT TEXT, UI TEXT, STY_RL TEXT)`,
		`CREATE TABLE SRSTR (STY_RL1 TEXT, RL TEXT, STY_RL2 TEXT, LS TEXT)`,
		`INSERT INTO SRDEF VALUES ('STY', 'T071', 'Entity'), ('STY', 'T072', 'Physical Object'),
			('STY', 'T051', 'Event'), ('STY', 'T052', 'Activity'), ('RL', 'T186', 'isa')`,
		`INSERT INTO SRSTR VALUES ('Physical Object', 'isa', 'Entity', 'D'), ('Activity', 'isa', 'Event', 'D')`,
	}
	for _, stmt := range stmts {
		require.NoError(t, drv.Exec(ctx, stmt, []any{}, nil))
	}

	groupsPath := filepath.Join(dir, "SemGroups.txt")
	require.NoError(t, os.WriteFile(groupsPath, []byte(semGroups), 0o600))

	cfgPath := filepath.Join(dir, "semnet.yaml")
	cfg := "dialect: sqlite\ndatabase: " + dbPath + "\ngroups_path: " + groupsPath + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	return cfgPath
}

func TestRun_Summary(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, io.Discard, []string{"-config", writeFixtures(t)})
	require.NoError(t, err)

	assert.Equal(t, `relation: isa
directed: true
nodes: 5
edges: 4
roots: ROOT
ROOT children: Entity, Event
groups: 3
  ACTI	Activities & Behaviors (1 subgroups)
  OBJC	Objects (2 subgroups)
  PHEN	Phenomena (1 subgroups)
`, out.String())
}

func TestRun_NoRootUndirected(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, io.Discard, []string{"-config", writeFixtures(t), "-no-root", "-undirected"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "directed: false\nnodes: 4\nedges: 2\nroots: Entity, Event\ngroups:")
}

func TestRun_Logging(t *testing.T) {
	t.Parallel()

	logs := &bytes.Buffer{}
	err := run(context.Background(), io.Discard, logs, []string{"-config", writeFixtures(t), "-log-level", "info", "-log-format", "json"})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"msg":"semantic network built"`)
	assert.Contains(t, logs.String(), `"relation":"isa"`)
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), out, io.Discard, []string{"-h"}))
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "-relation")
}

func TestRun_InvalidFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown_flag", []string{"-bogus"}},
		{"log_format", []string{"-log-format", "xml"}},
		{"log_level", []string{"-log-level", "trace"}},
		{"empty_relation", []string{"-relation", ""}},
		{"positional", []string{"extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(context.Background(), io.Discard, io.Discard, tt.args)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}

func TestRun_MissingGroupsFile(t *testing.T) {
	t.Parallel()

	cfg := writeFixtures(t)
	err := run(context.Background(), io.Discard, io.Discard,
		[]string{"-config", cfg, "-groups", filepath.Join(t.TempDir(), "none.txt")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open semantic groups")
}

func TestRun_MissingConfig(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), io.Discard, io.Discard,
		[]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")})
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
