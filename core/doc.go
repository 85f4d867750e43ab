// SPDX-License-Identifier: MIT

// Package core provides the in-memory road map store: named locations
// (towns) joined by undirected, weighted, named links (roads).
//
// The Graph G = (V,E) keeps three guarantees at all times:
//
//   - Locations are unique by case-insensitive name (Location.Key).
//   - Every Link's endpoints are locations currently present in the store.
//   - At most one Link joins any unordered pair of locations, and it is
//     reachable from either endpoint (symmetric adjacency).
//
// Storage layout:
//
//	locations[key]            = *Location
//	adjacency[key][otherKey]  = *Link     (mirrored for both endpoints)
//	links[PairKey{lo, hi}]    = *Link     (canonical unordered pair)
//
// Core Methods:
//
//	// Location lifecycle
//	InsertLocation(loc *Location) error                  // O(1)
//	ContainsLocation(loc *Location) bool                 // O(1)
//	RemoveLocation(loc *Location) bool                   // O(deg(v))
//	RenameLocation(loc *Location, name string) error     // O(deg(v))
//
//	// Link lifecycle
//	InsertLink(a, b *Location, w int, name string) (*Link, error)  // O(1), first-writer-wins
//	FindLink(a, b *Location) (*Link, bool)                         // O(1)
//	RemoveLink(a, b *Location, w int, name string) (*Link, bool)   // O(1), exact match only
//
//	// Snapshots (sorted, case-insensitive by name)
//	Locations() []*Location
//	Links() []*Link
//	LinksOf(loc *Location) []*Link
//
// Errors:
//
//	ErrInvalidArgument   - root of every contract violation (nil/absent input, bad weight).
//	ErrDuplicate         - InsertLocation/RenameLocation collided with an existing name.
//
// Concurrency:
//
// Each method is atomic with respect to the store (one sync.RWMutex). Callers
// that need a consistent view across several calls, such as a shortest-path
// query followed by path reconstruction, must serialise externally; see
// roadmap.Manager.
package core
