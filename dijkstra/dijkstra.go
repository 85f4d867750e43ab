// SPDX-License-Identifier: MIT

package dijkstra

import (
	"container/heap"
	"log/slog"

	"github.com/yourbasic/bit"

	"github.com/katalvlaran/roadgraph/core"
)

// Compute runs Dijkstra's algorithm over g from source.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. source must be non-nil (ErrNilSource).
//  3. g must contain source (ErrSourceNotFound).
//
// Every error wraps core.ErrInvalidArgument. Weights are non-negative by the
// store's contract, so no pre-scan is needed.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Compute(g *core.Graph, source *core.Location, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if g == nil {
		return nil, ErrNilGraph
	}
	if source == nil {
		return nil, ErrNilSource
	}
	stored, ok := g.LocationByName(source.Key())
	if !ok {
		return nil, ErrSourceNotFound
	}

	r := newRunner(g, stored, cfg)
	r.process()

	return r.res, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       *core.Graph
	log     *slog.Logger
	index   map[string]int // location key → ordinal in visited
	visited *bit.Set
	pq      nodePQ
	res     *Result
}

// newRunner sets dist[v] = Infinity for every v, dist[source] = 0 and seeds
// the heap with the source.
func newRunner(g *core.Graph, source *core.Location, cfg Options) *runner {
	locs := g.Locations()
	n := len(locs)
	r := &runner{
		g:       g,
		log:     cfg.Logger,
		index:   make(map[string]int, n),
		visited: new(bit.Set),
		pq:      make(nodePQ, 0, n),
		res: &Result{
			source: source,
			locs:   make(map[string]*core.Location, n),
			dist:   make(map[string]int64, n),
			prev:   make(map[string]*core.Location, n),
		},
	}
	for i, loc := range locs {
		r.index[loc.Key()] = i
		r.res.locs[loc.Key()] = loc
		r.res.dist[loc.Key()] = Infinity
	}
	r.res.dist[source.Key()] = 0

	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{loc: source, dist: 0})

	return r
}

// process pops the closest unsettled location until the frontier is empty.
func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.loc
		ord, known := r.index[u.Key()]
		if !known {
			continue
		}
		// Stale duplicate: u was settled through a shorter entry.
		if r.visited.Contains(ord) {
			continue
		}
		r.relax(u)
		r.visited.Add(ord)
		r.res.settled++
		r.log.Debug("dijkstra: settled",
			slog.String("location", u.Name()),
			slog.Int64("distance", r.res.dist[u.Key()]))
	}
}

// relax tries to improve every neighbour of u through the links touching u.
func (r *runner) relax(u *core.Location) {
	du := r.res.dist[u.Key()]
	for _, link := range r.g.LinksOf(u) {
		v := link.Other(u)
		if v == nil || v.Equal(u) {
			continue // self-loop
		}
		dv, known := r.res.dist[v.Key()]
		if !known {
			continue // inserted after the query started
		}
		nd := du + int64(link.Weight)
		if nd >= dv {
			continue
		}
		r.res.dist[v.Key()] = nd
		r.res.prev[v.Key()] = u
		heap.Push(&r.pq, &nodeItem{loc: v, dist: nd})
	}
}

// nodeItem is a frontier entry: a location and the distance it was pushed with.
type nodeItem struct {
	loc  *core.Location
	dist int64
}

// nodePQ is a min-heap of *nodeItem ordered by dist, then by location key.
// Duplicates are allowed; the visited set filters them on pop.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].loc.Key() < pq[j].loc.Key()
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
