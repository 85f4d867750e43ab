// SPDX-License-Identifier: MIT
//
// File: methods_vertices.go
// Role: Location lifecycle & queries.
//
// Determinism:
//   - Locations() returns locations sorted case-insensitively by name.
//
// Concurrency:
//   - Every method takes g.mu for its whole duration.

package core

import (
	"fmt"
	"sort"
)

// InsertLocation registers loc with an empty adjacency set.
// Returns ErrNilLocation for nil, ErrEmptyName for an unnamed location and
// ErrDuplicate if an equal location is already stored.
// Complexity: O(1).
func (g *Graph) InsertLocation(loc *Location) error {
	if loc == nil {
		return ErrNilLocation
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if loc.name == "" {
		return ErrEmptyName
	}
	if _, exists := g.locations[loc.key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, loc.name)
	}
	g.locations[loc.key] = loc
	g.adjacency[loc.key] = make(map[string]*Link)

	return nil
}

// ContainsLocation reports whether a location equal to loc is stored.
// Nil yields false.
// Complexity: O(1).
func (g *Graph) ContainsLocation(loc *Location) bool {
	if loc == nil {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.locations[loc.key]

	return ok
}

// LocationByName resolves name case-insensitively to the stored location.
// Complexity: O(1).
func (g *Graph) LocationByName(name string) (*Location, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	loc, ok := g.locations[keyOf(name)]

	return loc, ok
}

// RemoveLocation deletes loc and every link touching it.
// Returns false if loc is nil or absent.
// Complexity: O(deg(loc)).
func (g *Graph) RemoveLocation(loc *Location) bool {
	if loc == nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	key := loc.key
	if _, ok := g.locations[key]; !ok {
		return false
	}
	for other, link := range g.adjacency[key] {
		delete(g.links, link.Key())
		if other != key {
			delete(g.adjacency[other], key)
		}
	}
	delete(g.adjacency, key)
	delete(g.locations, key)

	return true
}

// RenameLocation changes the name of the stored location equal to loc and
// re-keys every index referencing it. Renaming to another casing of the same
// name is allowed.
//
// Errors: ErrNilLocation, ErrEmptyName, ErrLocationNotFound, ErrDuplicate.
// Complexity: O(deg(loc)).
func (g *Graph) RenameLocation(loc *Location, name string) error {
	if loc == nil {
		return ErrNilLocation
	}
	if name == "" {
		return ErrEmptyName
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	oldKey := loc.key
	stored, ok := g.locations[oldKey]
	if !ok {
		return fmt.Errorf("%w: %q", ErrLocationNotFound, loc.name)
	}
	newKey := keyOf(name)
	if newKey != oldKey {
		if _, taken := g.locations[newKey]; taken {
			return fmt.Errorf("%w: %q", ErrDuplicate, name)
		}
	}

	// Pair keys depend on the endpoint key, so drop them before mutating.
	incident := g.adjacency[oldKey]
	for _, link := range incident {
		delete(g.links, link.Key())
	}

	stored.name = name
	stored.key = newKey

	delete(g.locations, oldKey)
	g.locations[newKey] = stored
	delete(g.adjacency, oldKey)

	rekeyed := make(map[string]*Link, len(incident))
	for other, link := range incident {
		if other == oldKey {
			rekeyed[newKey] = link // self-loop
		} else {
			delete(g.adjacency[other], oldKey)
			g.adjacency[other][newKey] = link
			rekeyed[other] = link
		}
		g.links[link.Key()] = link
	}
	g.adjacency[newKey] = rekeyed

	return nil
}

// Locations returns every stored location sorted case-insensitively by name.
// Complexity: O(V log V).
func (g *Graph) Locations() []*Location {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Location, 0, len(g.locations))
	for _, loc := range g.locations {
		out = append(out, loc)
	}
	// Sorting reads key and name, which RenameLocation writes.
	sort.Slice(out, func(i, j int) bool { return lessLocation(out[i], out[j]) })

	return out
}

// lessLocation orders by case-folded name, falling back to the raw name so
// the order stays total.
func lessLocation(a, b *Location) bool {
	if a.key != b.key {
		return a.key < b.key
	}

	return a.name < b.name
}
