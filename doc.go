// Package roadgraph is an in-memory road map of towns joined by named,
// weighted, two-way roads, with shortest-route and reachability queries.
//
// The work is split across subpackages:
//
//	core/     - Graph, Location and Link with thread-safe mutation
//	dijkstra/ - shortest routes rendered as "<from> via <road> to <to> <n> mi"
//	bfs/      - hop-bounded reachability
//	roadmap/  - name-based, serialized query surface with metrics
//	loader/   - "<road>,<weight>;<town>;<town>" bulk loader
//	persist/  - Neo4j export and import of the topology
//	config/   - YAML and environment configuration
//	logging/  - slog construction
//
// cmd/townroute wires them into a command-line tool.
package roadgraph
