// Package roadmap is the name-based query surface over the road map store.
//
// Every operation takes town and road names, never core values, and reports
// success as a boolean: contract violations from core (duplicates, unknown
// towns, negative weights) are logged and turned into false.
//
// A Manager serialises all work behind one mutex. A shortest-path query holds
// it from the Dijkstra run through route reconstruction, so no mutation can
// break the predecessor chain mid-walk.
package roadmap

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/katalvlaran/roadgraph/bfs"
	"github.com/katalvlaran/roadgraph/core"
	"github.com/katalvlaran/roadgraph/dijkstra"
	"github.com/katalvlaran/roadgraph/loader"
	"github.com/katalvlaran/roadgraph/logging"
)

// Manager owns a core.Graph and answers name-based queries about it.
type Manager struct {
	mu      sync.Mutex
	graph   *core.Graph
	log     *slog.Logger
	metrics *Metrics
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(metrics *Metrics) Option {
	return func(m *Manager) { m.metrics = metrics }
}

// NewManager returns a Manager over an empty road map.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		graph: core.NewGraph(),
		log:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// AddTown adds a town. Returns false for an empty or already known name.
func (m *Manager) AddTown(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.graph.InsertLocation(core.NewLocation(name))
	if err != nil {
		m.log.Debug("add town rejected", slog.String("town", name), slog.Any("error", err))
	}
	m.metrics.observeMutation("add_town", err == nil)

	return err == nil
}

// ContainsTown reports whether a town with this name (any case) exists.
func (m *Manager) ContainsTown(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.graph.LocationByName(name)

	return ok
}

// GetTown returns the stored town for name.
func (m *Manager) GetTown(name string) (*core.Location, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.graph.LocationByName(name)
}

// DeleteTown removes a town and every road touching it.
func (m *Manager) DeleteTown(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ok := false
	if town, found := m.graph.LocationByName(name); found {
		ok = m.graph.RemoveLocation(town)
	}
	m.metrics.observeMutation("delete_town", ok)

	return ok
}

// RenameTown renames a town, keeping its roads.
func (m *Manager) RenameTown(oldName, newName string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.graph.RenameLocation(core.NewLocation(oldName), newName)
	if err != nil {
		m.log.Debug("rename town rejected",
			slog.String("from", oldName), slog.String("to", newName), slog.Any("error", err))
	}
	m.metrics.observeMutation("rename_town", err == nil)

	return err == nil
}

// AddRoad joins two existing towns. Returns true only if a new road was
// created: unknown towns, a negative weight, or an existing road between the
// pair (first writer wins) all yield false.
func (m *Manager) AddRoad(town1, town2 string, weight int, road string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, err := m.graph.InsertLink(core.NewLocation(town1), core.NewLocation(town2), weight, road)
	switch {
	case err != nil:
		m.log.Debug("add road rejected", slog.String("road", road), slog.Any("error", err))
	case link == nil:
		m.log.Debug("add road ignored, towns already connected",
			slog.String("road", road), slog.String("from", town1), slog.String("to", town2))
	}
	created := err == nil && link != nil
	m.metrics.observeMutation("add_road", created)

	return created
}

// GetRoad returns the name of the road joining two towns.
func (m *Manager) GetRoad(town1, town2 string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.graph.FindLink(core.NewLocation(town1), core.NewLocation(town2))
	if !ok {
		return "", false
	}

	return link.Name, true
}

// ContainsRoadConnection reports whether two towns are directly joined.
func (m *Manager) ContainsRoadConnection(town1, town2 string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.graph.ContainsLink(core.NewLocation(town1), core.NewLocation(town2))
}

// DeleteRoad removes the road between two towns if both weight and name match.
func (m *Manager) DeleteRoad(town1, town2 string, weight int, road string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.graph.RemoveLink(core.NewLocation(town1), core.NewLocation(town2), weight, road)
	m.metrics.observeMutation("delete_road", ok)

	return ok
}

// DeleteRoadConnection removes the road between two towns if its name
// matches, whatever its weight.
func (m *Manager) DeleteRoadConnection(town1, town2, road string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, b := core.NewLocation(town1), core.NewLocation(town2)
	ok := false
	if link, found := m.graph.FindLink(a, b); found {
		_, ok = m.graph.RemoveLink(a, b, link.Weight, road)
	}
	m.metrics.observeMutation("delete_road", ok)

	return ok
}

// AllTowns lists town names in case-insensitive order.
func (m *Manager) AllTowns() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	locs := m.graph.Locations()
	out := make([]string, 0, len(locs))
	for _, l := range locs {
		out = append(out, l.Name())
	}

	return out
}

// AllRoads lists road names in case-insensitive order.
func (m *Manager) AllRoads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	links := m.graph.Links()
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Name)
	}

	return out
}

// Records returns every road as a loader record, in AllRoads order, so the
// map can be written back with loader.FormatLine. Isolated towns have no
// record.
func (m *Manager) Records() []loader.Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	links := m.graph.Links()
	out := make([]loader.Record, 0, len(links))
	for _, l := range links {
		out = append(out, loader.Record{Road: l.Name, Weight: l.Weight, From: l.A.Name(), To: l.B.Name()})
	}

	return out
}

// GetPath returns the shortest route between two towns as
// "<from> via <road> to <to> <weight> mi" steps. Unknown towns, no route and
// a town to itself all give an empty slice.
func (m *Manager) GetPath(town1, town2 string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	start := time.Now()
	path := dijkstra.ShortestPath(m.graph, core.NewLocation(town1), core.NewLocation(town2),
		dijkstra.WithLogger(m.log))
	m.metrics.observePath(len(path) > 0, time.Since(start))
	m.log.Debug("path query",
		slog.String("from", town1), slog.String("to", town2), slog.Int("steps", len(path)))

	return path
}

// ReachableTowns lists towns reachable from name by road, nearest first
// (by number of roads), excluding name itself. maxHops <= 0 means no limit.
func (m *Manager) ReachableTowns(name string, maxHops int) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if maxHops < 0 {
		maxHops = 0
	}
	res, err := bfs.Reachable(m.graph, core.NewLocation(name), bfs.WithMaxDepth(maxHops))
	if err != nil {
		return []string{}
	}
	out := make([]string, 0, len(res.Order))
	for _, loc := range res.Order[1:] {
		out = append(out, loc.Name())
	}

	return out
}

// Stats returns town and road counts.
func (m *Manager) Stats() core.Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.graph.Stats()
}

// View runs fn with exclusive access to the underlying graph. fn must not
// call back into m.
func (m *Manager) View(fn func(g *core.Graph) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(m.graph)
}

// Populate bulk-loads road records from r.
func (m *Manager) Populate(ctx context.Context, r io.Reader) (loader.Summary, error) {
	sum, err := loader.Load(ctx, r, m)
	if err != nil {
		m.log.Error("populate failed", slog.Any("error", err))
		return sum, err
	}
	m.log.Info("road map loaded",
		slog.Int("lines", sum.Lines), slog.Int("towns", sum.Towns), slog.Int("roads", sum.Roads))

	return sum, nil
}

// PopulateFile bulk-loads road records from the file at path.
func (m *Manager) PopulateFile(ctx context.Context, path string) (loader.Summary, error) {
	sum, err := loader.LoadFile(ctx, path, m)
	if err != nil {
		m.log.Error("populate failed", slog.String("path", path), slog.Any("error", err))
		return sum, err
	}
	m.log.Info("road map loaded", slog.String("path", path),
		slog.Int("lines", sum.Lines), slog.Int("towns", sum.Towns), slog.Int("roads", sum.Roads))

	return sum, nil
}
