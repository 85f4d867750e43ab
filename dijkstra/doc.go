// SPDX-License-Identifier: MIT

// Package dijkstra computes single-source shortest paths over a core.Graph
// road map and turns them into human-readable routes.
//
// Overview:
//
//   - Compute runs Dijkstra's algorithm from one source location and returns a
//     fresh Result (distances + predecessors). Nothing is cached between calls,
//     so concurrent queries never observe each other's working state.
//   - Result.Route walks predecessors back from a destination and yields the
//     ordered Steps; ShortestPath formats them as
//     "<from> via <road> to <to> <weight> mi".
//
// Algorithm notes:
//
//   - The frontier is a container/heap binary heap that accepts duplicate
//     entries ("lazy decrease-key"). Stale entries are discarded on pop by the
//     visited set, which is a github.com/yourbasic/bit set over a per-query
//     ordinal index of the locations.
//   - Relaxation uses a strict "<", so the first optimal predecessor found wins.
//   - Equal-distance frontier entries pop in case-folded name order, which
//     makes the recorded optimal route reproducible.
//   - Self-loops are skipped; they can never shorten a path.
//
// Path contract:
//
//   - ShortestPath returns an empty slice when either endpoint is absent,
//     when no route exists, and when source equals destination (zero steps).
//   - While walking back, every consecutive pair must still be joined by a
//     link; a broken chain stops the walk, and a route that does not start at
//     the source is discarded as "no path".
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E) (heap holds up to E duplicates)
//
// Thread safety:
//
//   - Compute reads the graph through its locked accessors, but a mutation
//     between Compute and Route can invalidate the predecessor chain. Hold one
//     lock across both; roadmap.Manager does.
package dijkstra
