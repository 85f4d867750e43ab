// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only summaries over the store.

package core

// Stats returns the current location and link counts.
// Complexity: O(1).
func (g *Graph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return Stats{Locations: len(g.locations), Links: len(g.links)}
}

// Degree returns the number of links touching loc, a self-loop counting once.
// Complexity: O(1).
func (g *Graph) Degree(loc *Location) int {
	if loc == nil {
		return 0
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.adjacency[loc.key])
}
