// SPDX-License-Identifier: MIT

package dijkstra

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/roadgraph/core"
	"github.com/katalvlaran/roadgraph/logging"
)

// Infinity is the distance reported for locations the source cannot reach.
const Infinity int64 = math.MaxInt64

// Sentinel errors returned by Compute.
var (
	// ErrNilGraph indicates that a nil *core.Graph was passed in.
	ErrNilGraph = fmt.Errorf("%w: dijkstra: graph is nil", core.ErrInvalidArgument)

	// ErrNilSource indicates that no source location was given.
	ErrNilSource = fmt.Errorf("%w: dijkstra: source is nil", core.ErrInvalidArgument)

	// ErrSourceNotFound indicates the source location is not in the graph.
	ErrSourceNotFound = fmt.Errorf("%w: dijkstra: source not found in graph", core.ErrInvalidArgument)
)

// Options configures a Compute call.
type Options struct {
	// Logger receives a debug record per settled location.
	Logger *slog.Logger
}

// Option is a functional option for Compute and ShortestPath.
type Option func(*Options)

// WithLogger routes debug output to l. Nil leaves the default discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// DefaultOptions returns Options with a logger that drops everything.
func DefaultOptions() Options {
	return Options{Logger: logging.Discard()}
}

// Step is one hop of a route.
type Step struct {
	From *core.Location
	To   *core.Location
	Link *core.Link
}

// String renders the step as "<from> via <road> to <to> <weight> mi".
func (s Step) String() string {
	return fmt.Sprintf("%s via %s to %s %d mi", s.From.Name(), s.Link.Name, s.To.Name(), s.Link.Weight)
}

// Result holds the outcome of one single-source computation.
// Maps are keyed by Location.Key.
type Result struct {
	source  *core.Location
	locs    map[string]*core.Location
	dist    map[string]int64
	prev    map[string]*core.Location
	settled int
}

// Source returns the stored source location.
func (r *Result) Source() *core.Location { return r.source }

// Settled returns how many locations were finalised.
func (r *Result) Settled() int { return r.settled }

// Distance returns the shortest distance to loc, or Infinity if loc is
// unreachable or unknown.
func (r *Result) Distance(loc *core.Location) int64 {
	if loc == nil {
		return Infinity
	}
	d, ok := r.dist[loc.Key()]
	if !ok {
		return Infinity
	}

	return d
}

// Reachable reports whether loc has a finite distance.
func (r *Result) Reachable(loc *core.Location) bool {
	return r.Distance(loc) != Infinity
}

// Predecessor returns the location from which loc's distance was last improved.
// The source and unreachable locations have none.
func (r *Result) Predecessor(loc *core.Location) (*core.Location, bool) {
	if loc == nil {
		return nil, false
	}
	p, ok := r.prev[loc.Key()]

	return p, ok
}

// Distances returns finite distances keyed by location name.
func (r *Result) Distances() map[string]int64 {
	out := make(map[string]int64, len(r.dist))
	for key, d := range r.dist {
		if d == Infinity {
			continue
		}
		out[r.locs[key].Name()] = d
	}

	return out
}
