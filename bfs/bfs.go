// Package bfs answers "which towns can be reached from here, and in how many
// roads" by breadth-first search over a core.Graph. Weights are ignored.
package bfs

import (
	"fmt"

	"github.com/yourbasic/bit"

	"github.com/katalvlaran/roadgraph/core"
)

// queueItem pairs a location with its BFS depth.
type queueItem struct {
	loc   *core.Location
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph *core.Graph
	opts  Options
	index map[string]int
	seen  *bit.Set
	queue []queueItem
	res   *Result
}

// Reachable runs breadth-first search on g from start.
// Returns ErrGraphNil or ErrStartNotFound for invalid input, ErrOptionViolation
// for bad options, the context error on cancellation, or the OnVisit error.
func Reachable(g *core.Graph, start *core.Location, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if start == nil {
		return nil, ErrStartNotFound
	}
	root, ok := g.LocationByName(start.Key())
	if !ok {
		return nil, ErrStartNotFound
	}

	locs := g.Locations()
	n := len(locs)
	w := &walker{
		graph: g,
		opts:  o,
		index: make(map[string]int, n),
		seen:  new(bit.Set),
		queue: make([]queueItem, 0, n),
		res: &Result{
			Order:  make([]*core.Location, 0, n),
			depth:  make(map[string]int, n),
			parent: make(map[string]*core.Location, n),
		},
	}
	for i, loc := range locs {
		w.index[loc.Key()] = i
	}

	w.enqueue(root, 0, nil)

	return w.res, w.loop()
}

// enqueue marks loc seen at depth d, records its parent and queues it.
func (w *walker) enqueue(loc *core.Location, d int, parent *core.Location) {
	if i, ok := w.index[loc.Key()]; ok {
		w.seen.Add(i)
	}
	w.res.depth[loc.Key()] = d
	if parent != nil {
		w.res.parent[loc.Key()] = parent
	}
	w.queue = append(w.queue, queueItem{loc: loc, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.loc)
		if err := w.opts.OnVisit(item.loc, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %q: %w", item.loc.Name(), err)
		}
		w.enqueueNeighbors(item)
	}

	return nil
}

// enqueueNeighbors queues every unseen neighbour within MaxDepth.
func (w *walker) enqueueNeighbors(item queueItem) {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return
	}
	for _, link := range w.graph.LinksOf(item.loc) {
		nbr := link.Other(item.loc)
		if nbr == nil {
			continue
		}
		i, ok := w.index[nbr.Key()]
		if !ok || w.seen.Contains(i) {
			continue
		}
		w.enqueue(nbr, next, item.loc)
	}
}
