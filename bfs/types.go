// Options, results and error definitions for breadth-first reachability.

package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/roadgraph/core"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartNotFound is returned when the start location is absent.
	ErrStartNotFound = fmt.Errorf("%w: bfs: start location not found", core.ErrInvalidArgument)

	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = fmt.Errorf("%w: bfs: graph is nil", core.ErrInvalidArgument)

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option configures BFS behavior via functional arguments.
// An invalid Option (e.g. negative depth) is recorded and surfaced as
// ErrOptionViolation when Reachable is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize a traversal.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called for each reached location. Returning an error aborts
	// the traversal and propagates that error.
	OnVisit func(loc *core.Location, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this many roads.
	MaxDepth int

	err error
}

// DefaultOptions returns Options with a background context, no depth limit
// and a no-op visit hook.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(*core.Location, int) error { return nil },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback run on every visit.
func WithOnVisit(fn func(loc *core.Location, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth limits the traversal to d roads from the start.
//
//	d > 0: limit to depth d
//	d == 0: no limit
//	d < 0: ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// Result holds the outcome of a traversal:
//   - Order: locations reached, in visit sequence (start first).
//   - depth/parent: keyed by Location.Key.
type Result struct {
	Order  []*core.Location
	depth  map[string]int
	parent map[string]*core.Location
}

// HopsTo returns the number of roads between the start and loc.
func (r *Result) HopsTo(loc *core.Location) (int, bool) {
	if loc == nil {
		return 0, false
	}
	d, ok := r.depth[loc.Key()]

	return d, ok
}

// PathTo reconstructs the fewest-roads location sequence from the start to dest.
// Returns an error if dest was not reached.
func (r *Result) PathTo(dest *core.Location) ([]*core.Location, error) {
	if _, ok := r.HopsTo(dest); !ok {
		return nil, fmt.Errorf("bfs: no path to %q", dest)
	}
	var path []*core.Location
	for cur := r.stored(dest); cur != nil; cur = r.parent[cur.Key()] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

// stored maps a possibly detached location onto the visited instance.
func (r *Result) stored(loc *core.Location) *core.Location {
	for _, v := range r.Order {
		if v.Equal(loc) {
			return v
		}
	}

	return nil
}
