// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Location, Link, Graph declarations, sentinel errors and the constructor.

package core

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrInvalidArgument is the root of every contract violation on a mutating operation.
	ErrInvalidArgument = errors.New("core: invalid argument")

	// ErrDuplicate indicates a location with the same (case-insensitive) name already exists.
	ErrDuplicate = errors.New("core: duplicate location")

	// ErrNilLocation indicates a required location was nil.
	ErrNilLocation = fmt.Errorf("%w: location is nil", ErrInvalidArgument)

	// ErrEmptyName indicates a location was given an empty name.
	ErrEmptyName = fmt.Errorf("%w: location name is empty", ErrInvalidArgument)

	// ErrLocationNotFound indicates an operation referenced a location absent from the store.
	ErrLocationNotFound = fmt.Errorf("%w: location not found", ErrInvalidArgument)

	// ErrNegativeWeight indicates a link weight below zero.
	ErrNegativeWeight = fmt.Errorf("%w: negative link weight", ErrInvalidArgument)
)

// DefaultWeight is the weight given to links built without an explicit weight.
const DefaultWeight = 1

// Location is a named node of the road map.
//
// Two locations are equal when their names match case-insensitively. The
// name can only change through Graph.RenameLocation, which re-keys every
// index that refers to it.
type Location struct {
	name string
	key  string
}

// NewLocation returns a detached location named name.
func NewLocation(name string) *Location {
	return &Location{name: name, key: keyOf(name)}
}

// Name returns the display name as given by the caller.
func (l *Location) Name() string { return l.name }

// Key returns the case-folded name used for hashing and equality.
func (l *Location) Key() string { return l.key }

// Equal reports whether l and o name the same location. Nil never equals anything.
func (l *Location) Equal(o *Location) bool {
	if l == nil || o == nil {
		return false
	}

	return l.key == o.key
}

// String implements fmt.Stringer.
func (l *Location) String() string { return l.name }

func keyOf(name string) string { return strings.ToLower(name) }

// PairKey is the canonical identity of an unordered location pair.
// Lo <= Hi always holds.
type PairKey struct {
	Lo string
	Hi string
}

func pairOf(a, b string) PairKey {
	if b < a {
		a, b = b, a
	}

	return PairKey{Lo: a, Hi: b}
}

// Link is an undirected, weighted, named connection between two locations.
//
// Identity is the unordered endpoint pair only; Weight and Name take part in
// removal matching but never in deduplication.
type Link struct {
	// A and B are the endpoints in insertion order. Order carries no meaning.
	A, B *Location

	// Weight is the non-negative travel cost (miles).
	Weight int

	// Name is the display name, compared case-sensitively on removal.
	Name string
}

// NewLink builds a detached link with DefaultWeight.
func NewLink(a, b *Location, name string) *Link {
	return &Link{A: a, B: b, Weight: DefaultWeight, Name: name}
}

// Key returns the canonical unordered pair key of the endpoints.
func (e *Link) Key() PairKey { return pairOf(e.A.Key(), e.B.Key()) }

// Touches reports whether loc is one of the endpoints.
func (e *Link) Touches(loc *Location) bool {
	return e.A.Equal(loc) || e.B.Equal(loc)
}

// Other returns the endpoint opposite loc. For a self-loop it returns loc's
// stored endpoint; for a location the link does not touch it returns nil.
func (e *Link) Other(loc *Location) *Location {
	switch {
	case e.A.Equal(loc):
		return e.B
	case e.B.Equal(loc):
		return e.A
	default:
		return nil
	}
}

// Equal reports whether e and o join the same unordered pair.
func (e *Link) Equal(o *Link) bool {
	if e == nil || o == nil {
		return false
	}

	return e.Key() == o.Key()
}

// String implements fmt.Stringer.
func (e *Link) String() string {
	return fmt.Sprintf("%s (%s-%s, %d mi)", e.Name, e.A.Name(), e.B.Name(), e.Weight)
}

// Graph is the road map store.
//
// mu guards every map below. adjacency is mirrored: a link between a and b
// is stored at adjacency[a][b] and adjacency[b][a] (once for a self-loop).
type Graph struct {
	mu sync.RWMutex

	locations map[string]*Location        // key → Location
	adjacency map[string]map[string]*Link // key → neighbor key → Link
	links     map[PairKey]*Link           // canonical pair → Link
}

// Stats is a point-in-time summary of catalog sizes.
type Stats struct {
	Locations int
	Links     int
}

// NewGraph creates an empty store.
// Complexity: O(1)
func NewGraph() *Graph {
	return &Graph{
		locations: make(map[string]*Location),
		adjacency: make(map[string]map[string]*Link),
		links:     make(map[PairKey]*Link),
	}
}
