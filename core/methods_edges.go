// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Link lifecycle & queries.
//
// Policy:
//   - One link per unordered pair; a second insert for the same pair is ignored.
//   - Removal requires the exact stored weight and (case-sensitive) name.
//
// Determinism:
//   - Links() and LinksOf() are sorted by case-folded name, then by pair key.

package core

import (
	"fmt"
	"sort"
)

// InsertLink joins a and b with a link of the given weight and name.
//
// Returns (nil, nil) when a link already connects the pair, whatever its
// weight or name. The stored endpoints, not the arguments, are referenced by
// the new link.
//
// Errors: ErrNilLocation, ErrLocationNotFound, ErrNegativeWeight.
// Complexity: O(1).
func (g *Graph) InsertLink(a, b *Location, weight int, name string) (*Link, error) {
	if a == nil || b == nil {
		return nil, ErrNilLocation
	}
	if weight < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeWeight, weight)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	sa, ok := g.locations[a.key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLocationNotFound, a.name)
	}
	sb, ok := g.locations[b.key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLocationNotFound, b.name)
	}
	pk := pairOf(sa.key, sb.key)
	if _, exists := g.links[pk]; exists {
		return nil, nil
	}

	link := &Link{A: sa, B: sb, Weight: weight, Name: name}
	g.links[pk] = link
	g.adjacency[sa.key][sb.key] = link
	g.adjacency[sb.key][sa.key] = link

	return link, nil
}

// FindLink returns the link joining a and b, in either order.
// Complexity: O(1).
func (g *Graph) FindLink(a, b *Location) (*Link, bool) {
	if a == nil || b == nil {
		return nil, false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	link, ok := g.links[pairOf(a.key, b.key)]

	return link, ok
}

// ContainsLink reports whether a and b are directly connected.
// Complexity: O(1).
func (g *Graph) ContainsLink(a, b *Location) bool {
	_, ok := g.FindLink(a, b)

	return ok
}

// LinksOf returns every link touching loc; empty for nil, absent or isolated locations.
// Complexity: O(d log d).
func (g *Graph) LinksOf(loc *Location) []*Link {
	if loc == nil {
		return nil
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	bucket := g.adjacency[loc.key]
	out := make([]*Link, 0, len(bucket))
	for _, link := range bucket {
		out = append(out, link)
	}
	sortLinks(out)

	return out
}

// RemoveLink deletes the link between a and b only if its weight equals
// weight and its name equals name exactly. Otherwise nothing changes.
// Complexity: O(1).
func (g *Graph) RemoveLink(a, b *Location, weight int, name string) (*Link, bool) {
	if a == nil || b == nil {
		return nil, false
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	pk := pairOf(a.key, b.key)
	link, ok := g.links[pk]
	if !ok || link.Weight != weight || link.Name != name {
		return nil, false
	}
	delete(g.links, pk)
	delete(g.adjacency[pk.Lo], pk.Hi)
	delete(g.adjacency[pk.Hi], pk.Lo)

	return link, true
}

// Links returns every stored link.
// Complexity: O(E log E).
func (g *Graph) Links() []*Link {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Link, 0, len(g.links))
	for _, link := range g.links {
		out = append(out, link)
	}
	sortLinks(out)

	return out
}

// sortLinks reads endpoint keys; callers hold g.mu.
func sortLinks(links []*Link) {
	sort.Slice(links, func(i, j int) bool {
		ni, nj := keyOf(links[i].Name), keyOf(links[j].Name)
		if ni != nj {
			return ni < nj
		}
		if links[i].Name != links[j].Name {
			return links[i].Name < links[j].Name
		}
		ki, kj := links[i].Key(), links[j].Key()
		if ki.Lo != kj.Lo {
			return ki.Lo < kj.Lo
		}

		return ki.Hi < kj.Hi
	})
}
