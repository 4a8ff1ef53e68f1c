package umls

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sanjeeku/ddbiolib/dialect"
	dsql "github.com/sanjeeku/ddbiolib/dialect/sql"
	"github.com/sanjeeku/ddbiolib/graph"
)

const (
	// Root is the node added above the original roots of a relation that
	// has more than one. If the data already holds a node with this name
	// below another node, no root is added and the relation keeps its
	// original roots.
	Root = "ROOT"
	// DefaultRelation is the UMLS "is a" hierarchy label.
	DefaultRelation = "isa"
)

// SemanticNetwork is a session over the UMLS Semantic Network. It owns the
// semantic group table and a per-relation graph cache.
//
// Graphs returned by a session are shared between callers and must not be
// modified.
type SemanticNetwork struct {
	id     string
	drv    dialect.Driver
	owned  bool
	stats  *dsql.QueryStats
	groups *Groups
	log    *slog.Logger
	cache  *networkCache
}

// Option configures a SemanticNetwork.
type Option func(*options)

type options struct {
	drv    dialect.Driver
	groups *Groups
	logger *slog.Logger
}

// WithDriver makes the session use drv instead of opening a connection
// from the Config. The session does not close an injected driver.
func WithDriver(drv dialect.Driver) Option {
	return func(o *options) {
		o.drv = drv
	}
}

// WithGroups makes the session use an already loaded group table instead
// of reading Config.GroupsPath.
func WithGroups(g *Groups) Option {
	return func(o *options) {
		o.groups = g
	}
}

// WithLogger sets the session logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New opens a semantic network session. Unless given through options it
// loads the semantic groups from cfg.GroupsPath and opens and pings a
// database connection described by cfg. Any failure aborts construction.
func New(ctx context.Context, cfg Config, opts ...Option) (*SemanticNetwork, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	s := &SemanticNetwork{
		id:    uuid.NewString(),
		cache: newNetworkCache(),
	}
	s.log = o.logger.With("session", s.id)

	s.groups = o.groups
	if s.groups == nil {
		if err := cfg.validateGroups(); err != nil {
			return nil, err
		}
		g, err := LoadGroups(cfg.GroupsPath)
		if err != nil {
			return nil, err
		}
		s.groups = g
	}

	s.drv = o.drv
	if s.drv == nil {
		drv, stats, err := openDriver(ctx, cfg, s.log)
		if err != nil {
			return nil, err
		}
		s.drv, s.stats, s.owned = drv, stats, true
	} else if sd, ok := s.drv.(*dsql.StatsDriver); ok {
		s.stats = sd.QueryStats()
	}

	s.log.InfoContext(ctx, "semantic network session opened",
		"dialect", s.drv.Dialect(),
		"groups", len(s.groups.Subgroups),
	)
	return s, nil
}

// openDriver opens and pings the database described by cfg. The driver is
// wrapped with query statistics when a slow query threshold is configured,
// and with statement logging when LogQueries is set.
func openDriver(ctx context.Context, cfg Config, logger *slog.Logger) (dialect.Driver, *dsql.QueryStats, error) {
	if err := NewAggregateError(cfg.validateConn()...); err != nil {
		return nil, nil, err
	}
	sqlDrv, err := dsql.Open(cfg.Dialect, cfg.DSN())
	if err != nil {
		return nil, nil, NewConnectionError(cfg.Dialect, err)
	}
	if err := sqlDrv.Ping(ctx); err != nil {
		_ = sqlDrv.Close()
		return nil, nil, NewConnectionError(cfg.Dialect, err)
	}

	var (
		drv   dialect.Driver = sqlDrv
		stats *dsql.QueryStats
	)
	if cfg.SlowQueryThreshold > 0 {
		sd := dsql.NewStatsDriver(sqlDrv,
			dsql.WithSlowThreshold(cfg.SlowQueryThreshold),
			dsql.WithSlowQueryLog(logger),
		)
		drv, stats = sd, sd.QueryStats()
	}
	if cfg.LogQueries {
		drv = dsql.NewDebugDriver(drv, dsql.DebugWithLog(func(ctx context.Context, v ...any) {
			logger.DebugContext(ctx, fmt.Sprint(v...))
		}))
	}
	return drv, stats, nil
}

// ID returns the session identifier attached to its log records.
func (s *SemanticNetwork) ID() string { return s.id }

// Groups returns the semantic group table.
func (s *SemanticNetwork) Groups() *Groups { return s.groups }

// Stats returns the query statistics of the session driver. It is the zero
// snapshot unless the driver collects statistics.
func (s *SemanticNetwork) Stats() dsql.StatsSnapshot {
	if s.stats == nil {
		return dsql.StatsSnapshot{}
	}
	return s.stats.Stats()
}

// Close closes the database connection if the session opened it.
func (s *SemanticNetwork) Close() error {
	if !s.owned {
		return nil
	}
	return s.drv.Close()
}

// GraphOption configures how a relation graph is built. Options only apply
// to the first build of a relation; cached graphs are returned as they are.
type GraphOption func(*graphOptions)

type graphOptions struct {
	directed     bool
	simulateRoot bool
}

// Undirected builds an undirected graph. Roots are still detected from the
// parent → child direction the edges were inserted in.
func Undirected() GraphOption {
	return func(o *graphOptions) {
		o.directed = false
	}
}

// WithoutRoot leaves a relation with several roots as it is instead of
// joining them under Root.
func WithoutRoot() GraphOption {
	return func(o *graphOptions) {
		o.simulateRoot = false
	}
}

// Graph returns the graph of relation, building it from the database on the
// first request and from the session cache afterwards. At most one query
// per relation is issued over the lifetime of the session; a failed query
// is not cached and may be retried.
func (s *SemanticNetwork) Graph(ctx context.Context, relation string, opts ...GraphOption) (*graph.Graph, error) {
	if relation == "" {
		return nil, ErrEmptyRelation
	}
	if g, ok := s.cache.get(relation); ok {
		s.log.DebugContext(ctx, "semantic network cache hit", "relation", relation)
		return g, nil
	}
	return s.cache.load(relation, func() (*graph.Graph, error) {
		return s.build(ctx, relation, opts...)
	})
}

// IsA returns the graph of the DefaultRelation hierarchy.
func (s *SemanticNetwork) IsA(ctx context.Context, opts ...GraphOption) (*graph.Graph, error) {
	return s.Graph(ctx, DefaultRelation, opts...)
}

// Cached returns the graph of relation if it has been built already.
func (s *SemanticNetwork) Cached(relation string) (*graph.Graph, bool) {
	return s.cache.get(relation)
}

// Relations returns the labels of the relations built so far, sorted.
func (s *SemanticNetwork) Relations() []string {
	return s.cache.keys()
}

func (s *SemanticNetwork) build(ctx context.Context, relation string, opts ...GraphOption) (*graph.Graph, error) {
	s.log.DebugContext(ctx, "loading semantic network", "relation", relation)
	rels, skipped, err := queryRelations(ctx, s.drv, relation)
	if err != nil {
		s.log.ErrorContext(ctx, "semantic network query failed", "relation", relation, "error", err)
		return nil, NewQueryError(relation, err)
	}
	if skipped > 0 {
		s.log.WarnContext(ctx, "skipped relation rows with NULL columns", "relation", relation, "rows", skipped)
	}

	g, simulated := buildNetwork(rels, opts...)
	s.log.InfoContext(ctx, "semantic network built",
		"relation", relation,
		"directed", g.Directed(),
		"nodes", g.Len(),
		"edges", g.Size(),
		"simulated_root", simulated,
	)
	return g, nil
}

// BuildNetwork turns relation rows into a graph with an edge Target →
// Source per row, so that for "Source isa Target" rows parents point at
// their children. When the result has more than one node without incoming
// edges it adds Root with an edge to each of them, unless WithoutRoot is
// given or Root already occurs in the data as a child.
func BuildNetwork(rels []Relation, opts ...GraphOption) *graph.Graph {
	g, _ := buildNetwork(rels, opts...)
	return g
}

// buildNetwork is BuildNetwork that also reports whether Root was added
// above the original roots.
func buildNetwork(rels []Relation, opts ...GraphOption) (*graph.Graph, bool) {
	o := graphOptions{directed: true, simulateRoot: true}
	for _, opt := range opts {
		opt(&o)
	}

	g := graph.NewUndirected()
	if o.directed {
		g = graph.NewDirected()
	}
	for _, r := range rels {
		g.AddEdge(r.Target, r.Source)
	}

	roots := g.Roots()
	if len(roots) <= 1 || !o.simulateRoot {
		return g, false
	}
	// Linking the roots under a Root that already has a parent would close
	// a cycle and leave the graph without any root.
	if g.InDegree(Root) > 0 {
		return g, false
	}
	for _, r := range roots {
		if r != Root {
			g.AddEdge(Root, r)
		}
	}
	return g, true
}
