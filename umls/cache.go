package umls

import (
	"maps"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/sanjeeku/ddbiolib/graph"
)

// networkCache memoizes one graph per relation label for the lifetime of a
// session. Entries are never evicted. Concurrent misses on the same label
// share a single build; a failed build leaves no entry behind.
type networkCache struct {
	mu     sync.RWMutex
	graphs map[string]*graph.Graph
	group  singleflight.Group
}

func newNetworkCache() *networkCache {
	return &networkCache{graphs: make(map[string]*graph.Graph)}
}

// get returns the cached graph for relation.
func (c *networkCache) get(relation string) (*graph.Graph, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	g, ok := c.graphs[relation]
	return g, ok
}

// load returns the cached graph for relation, calling build on a miss.
func (c *networkCache) load(relation string, build func() (*graph.Graph, error)) (*graph.Graph, error) {
	if g, ok := c.get(relation); ok {
		return g, nil
	}
	v, err, _ := c.group.Do(relation, func() (any, error) {
		if g, ok := c.get(relation); ok {
			return g, nil
		}
		g, err := build()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.graphs[relation] = g
		c.mu.Unlock()
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*graph.Graph), nil
}

// keys returns the cached relation labels, sorted.
func (c *networkCache) keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.graphs))
}
