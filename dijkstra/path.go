// SPDX-License-Identifier: MIT

package dijkstra

import "github.com/katalvlaran/roadgraph/core"

// Route reconstructs the ordered steps from the result's source to dest.
//
// The walk follows predecessors backwards and requires a live link between
// every consecutive pair; if one is missing the walk stops early. A route
// whose first step does not leave the source is reported as nil, which is
// also the answer for unreachable destinations and for dest == source.
func (r *Result) Route(g *core.Graph, dest *core.Location) []Step {
	if g == nil || dest == nil {
		return nil
	}
	cur, ok := g.LocationByName(dest.Key())
	if !ok {
		return nil
	}

	var rev []Step
	// A valid chain is at most V-1 hops; the bound guards a corrupted one.
	for hops := 0; hops <= len(r.prev); hops++ {
		prev, ok := r.prev[cur.Key()]
		if !ok {
			break
		}
		link, ok := g.FindLink(prev, cur)
		if !ok {
			break
		}
		rev = append(rev, Step{From: prev, To: cur, Link: link})
		cur = prev
	}
	if len(rev) == 0 {
		return nil
	}

	steps := make([]Step, len(rev))
	for i := range rev {
		steps[len(rev)-1-i] = rev[i]
	}
	if !steps[0].From.Equal(r.source) {
		return nil
	}

	return steps
}

// ShortestPath returns the route from source to dest as formatted step
// strings. It never fails: unknown endpoints, a missing route and
// source == dest all yield an empty slice.
func ShortestPath(g *core.Graph, source, dest *core.Location, opts ...Option) []string {
	out := []string{}
	if g == nil || !g.ContainsLocation(source) || !g.ContainsLocation(dest) {
		return out
	}
	res, err := Compute(g, source, opts...)
	if err != nil {
		return out
	}
	for _, s := range res.Route(g, dest) {
		out = append(out, s.String())
	}

	return out
}
