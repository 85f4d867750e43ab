// SPDX-License-Identifier: MIT

package core_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadgraph/core"
)

// TestGraph_ConcurrentMutation checks that parallel writers leave the store
// consistent. Goroutines report through a channel; *testing.T stays on the
// test goroutine.
func TestGraph_ConcurrentMutation(t *testing.T) {
	const workers = 8
	const perWorker = 50

	g := core.NewGraph()
	hub := core.NewLocation("Hub")
	require.NoError(t, g.InsertLocation(hub))

	errCh := make(chan error, workers*perWorker*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				loc := core.NewLocation(fmt.Sprintf("T%d_%d", w, i))
				if err := g.InsertLocation(loc); err != nil {
					errCh <- err
					continue
				}
				if _, err := g.InsertLink(hub, loc, i, fmt.Sprintf("R%d_%d", w, i)); err != nil {
					errCh <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		assert.NoError(t, err)
	}
	assert.Equal(t, core.Stats{Locations: workers*perWorker + 1, Links: workers * perWorker}, g.Stats())
	assert.Equal(t, workers*perWorker, g.Degree(hub))
}

// TestGraph_RenameWhileListing runs renames against the sorted snapshot
// readers. Run with -race: the snapshots must sort under the store lock.
func TestGraph_RenameWhileListing(t *testing.T) {
	const rounds = 2000

	g := core.NewGraph()
	a := core.NewLocation("A")
	b := core.NewLocation("B")
	c := core.NewLocation("C")
	for _, loc := range []*core.Location{a, b, c} {
		require.NoError(t, g.InsertLocation(loc))
	}
	_, err := g.InsertLink(a, b, 3, "ab")
	require.NoError(t, err)
	_, err = g.InsertLink(a, c, 4, "ac")
	require.NoError(t, err)

	var wg sync.WaitGroup
	sizes := make(chan [3]int, rounds)
	errCh := make(chan error, rounds)
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			sizes <- [3]int{len(g.Locations()), len(g.Links()), len(g.LinksOf(b))}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			if err := g.RenameLocation(a, fmt.Sprintf("A%d", i)); err != nil {
				errCh <- err
			}
		}
	}()
	wg.Wait()
	close(sizes)
	close(errCh)

	for err := range errCh {
		assert.NoError(t, err)
	}
	for got := range sizes {
		assert.Equal(t, [3]int{3, 2, 1}, got)
	}
	assert.Equal(t, fmt.Sprintf("A%d", rounds-1), a.Name())
	assert.True(t, g.ContainsLink(a, b))
	assert.False(t, g.ContainsLink(b, c))
}
