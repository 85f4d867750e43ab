package roadmap_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadgraph/loader"
	"github.com/katalvlaran/roadgraph/roadmap"
)

func newManager(t *testing.T, towns ...string) *roadmap.Manager {
	t.Helper()
	m := roadmap.NewManager()
	for _, town := range towns {
		require.True(t, m.AddTown(town), "AddTown(%s)", town)
	}

	return m
}

func TestManager_Towns(t *testing.T) {
	m := newManager(t, "Rockville", "Germantown", "silver Spring")

	assert.False(t, m.AddTown("rockville"), "duplicate town")
	assert.False(t, m.AddTown(""), "empty name")
	assert.True(t, m.ContainsTown("Rockville"))
	assert.True(t, m.ContainsTown("GERMANTOWN"))
	assert.False(t, m.ContainsTown("Paris"))

	town, ok := m.GetTown("rockville")
	require.True(t, ok)
	assert.Equal(t, "Rockville", town.Name())

	assert.Equal(t, []string{"Germantown", "Rockville", "silver Spring"}, m.AllTowns())

	assert.True(t, m.DeleteTown("Germantown"))
	assert.False(t, m.DeleteTown("Germantown"))
	assert.Equal(t, []string{"Rockville", "silver Spring"}, m.AllTowns())
}

func TestManager_Roads(t *testing.T) {
	m := newManager(t, "A", "B", "C", "D", "E", "F")

	assert.True(t, m.AddRoad("A", "B", 10, "A-B"))
	assert.True(t, m.AddRoad("C", "D", 10, "c-D"))
	assert.True(t, m.AddRoad("E", "F", 10, "E-F"))
	assert.False(t, m.AddRoad("B", "A", 3, "other"), "pair already connected")
	assert.False(t, m.AddRoad("A", "Z", 3, "nowhere"), "unknown town")
	assert.False(t, m.AddRoad("A", "C", -3, "negative"))

	assert.True(t, m.ContainsRoadConnection("A", "B"))
	assert.True(t, m.ContainsRoadConnection("b", "a"))
	assert.False(t, m.ContainsRoadConnection("G", "H"))

	road, ok := m.GetRoad("B", "A")
	require.True(t, ok)
	assert.Equal(t, "A-B", road)
	_, ok = m.GetRoad("A", "F")
	assert.False(t, ok)

	assert.Equal(t, []string{"A-B", "c-D", "E-F"}, m.AllRoads())
	assert.Equal(t, m.AllRoads(), m.AllRoads())
}

func TestManager_DeleteRoad(t *testing.T) {
	m := newManager(t, "A", "B")
	require.True(t, m.AddRoad("A", "B", 4, "Elm"))

	assert.False(t, m.DeleteRoad("A", "B", 5, "Elm"))
	assert.False(t, m.DeleteRoad("A", "B", 4, "Oak"))
	assert.True(t, m.ContainsRoadConnection("A", "B"))

	assert.True(t, m.DeleteRoad("B", "A", 4, "Elm"))
	assert.False(t, m.ContainsRoadConnection("A", "B"))

	require.True(t, m.AddRoad("A", "B", 8, "Pine"))
	assert.False(t, m.DeleteRoadConnection("A", "B", "Elm"))
	assert.True(t, m.DeleteRoadConnection("A", "B", "Pine"))
	assert.False(t, m.DeleteRoadConnection("A", "B", "Pine"))
}

func TestManager_DeleteTownDropsRoads(t *testing.T) {
	m := newManager(t, "A", "B", "C")
	require.True(t, m.AddRoad("A", "B", 1, "ab"))
	require.True(t, m.AddRoad("B", "C", 1, "bc"))

	require.True(t, m.DeleteTown("B"))
	assert.False(t, m.ContainsRoadConnection("A", "B"))
	assert.False(t, m.ContainsRoadConnection("B", "C"))
	assert.Empty(t, m.AllRoads())
}

func TestManager_RenameTown(t *testing.T) {
	m := newManager(t, "A", "B")
	require.True(t, m.AddRoad("A", "B", 2, "ab"))

	assert.False(t, m.RenameTown("Z", "Y"))
	assert.False(t, m.RenameTown("A", "b"))
	require.True(t, m.RenameTown("a", "Aberdeen"))

	assert.Equal(t, []string{"Aberdeen", "B"}, m.AllTowns())
	assert.True(t, m.ContainsRoadConnection("Aberdeen", "B"))
	assert.Equal(t, []string{"Aberdeen via ab to B 2 mi"}, m.GetPath("aberdeen", "B"))
}

func TestManager_GetPath(t *testing.T) {
	m := newManager(t, "A", "B", "C", "Island")
	require.True(t, m.AddRoad("A", "B", 5, "AB"))
	require.True(t, m.AddRoad("B", "C", 10, "BC"))
	require.True(t, m.AddRoad("A", "C", 20, "AC"))

	assert.Equal(t, []string{"A via AB to B 5 mi", "B via BC to C 10 mi"}, m.GetPath("A", "C"))
	assert.Empty(t, m.GetPath("A", "Island"))
	assert.Empty(t, m.GetPath("A", "Atlantis"))
	assert.Empty(t, m.GetPath("A", "A"))
}

func TestManager_ReachableTowns(t *testing.T) {
	m := newManager(t, "A", "B", "C", "D", "Island")
	require.True(t, m.AddRoad("A", "B", 1, "ab"))
	require.True(t, m.AddRoad("B", "C", 1, "bc"))
	require.True(t, m.AddRoad("C", "D", 1, "cd"))

	assert.Equal(t, []string{"B", "C", "D"}, m.ReachableTowns("A", 0))
	assert.Equal(t, []string{"B", "C"}, m.ReachableTowns("A", 2))
	assert.Equal(t, []string{"B", "C", "D"}, m.ReachableTowns("A", -1))
	assert.Empty(t, m.ReachableTowns("Island", 0))
	assert.Empty(t, m.ReachableTowns("Atlantis", 0))
}

func TestManager_Populate(t *testing.T) {
	m := roadmap.NewManager()
	input := "Road_1,5;A;B\nRoad_2,10;B;C\nRoad_3,20;A;C\nRoad_4,1;c;a\n"

	sum, err := m.Populate(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, loader.Summary{Lines: 4, Towns: 3, Roads: 3}, sum)
	assert.Equal(t, []string{"Road_1", "Road_2", "Road_3"}, m.AllRoads())
	assert.Equal(t, []string{"A via Road_1 to B 5 mi", "B via Road_2 to C 10 mi"}, m.GetPath("A", "C"))

	_, err = m.Populate(context.Background(), strings.NewReader("garbage\n"))
	require.ErrorIs(t, err, loader.ErrMalformedLine)
}

func TestManager_PopulateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "towns.txt")
	require.NoError(t, os.WriteFile(path, []byte("I-95,40;Baltimore;Washington\n"), 0o600))

	m := roadmap.NewManager()
	sum, err := m.PopulateFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Towns)
	assert.Equal(t, []string{"Baltimore via I-95 to Washington 40 mi"}, m.GetPath("Baltimore", "Washington"))

	_, err = m.PopulateFile(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestManager_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := roadmap.NewManager(roadmap.WithMetrics(roadmap.NewMetrics(reg)))

	m.AddTown("A")
	m.AddTown("B")
	m.AddTown("a")
	m.AddRoad("A", "B", 1, "ab")
	m.GetPath("A", "B")
	m.GetPath("A", "Nowhere")

	count, err := testutil.GatherAndCount(reg, "roadgraph_mutations_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count, "add_town applied, add_town rejected, add_road applied")
	count, err = testutil.GatherAndCount(reg, "roadgraph_path_query_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	families, err := reg.Gather()
	require.NoError(t, err)
	var found, none float64
	for _, mf := range families {
		if mf.GetName() != "roadgraph_path_queries_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			switch metric.GetLabel()[0].GetValue() {
			case "found":
				found = metric.GetCounter().GetValue()
			case "none":
				none = metric.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, found)
	assert.Equal(t, 1.0, none)
}

func TestManager_ConcurrentQueriesAndMutations(t *testing.T) {
	m := newManager(t, "Hub")
	const n = 40
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("T%02d", i)
		require.True(t, m.AddTown(name))
		require.True(t, m.AddRoad("Hub", name, i+1, "r"+name))
	}

	var wg sync.WaitGroup
	results := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			results <- len(m.GetPath("T00", fmt.Sprintf("T%02d", (i+1)%n)))
		}(i)
		go func(i int) {
			defer wg.Done()
			m.AddTown(fmt.Sprintf("Extra%02d", i))
		}(i)
	}
	wg.Wait()
	close(results)

	for steps := range results {
		assert.Contains(t, []int{0, 2}, steps)
	}
	assert.Len(t, m.AllTowns(), 2*n+1)
}

func TestManager_RecordsReload(t *testing.T) {
	m := newManager(t, "A", "B", "C", "Island")
	require.True(t, m.AddRoad("B", "A", 5, "AB"))
	require.True(t, m.AddRoad("B", "C", 10, "BC"))

	recs := m.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, loader.Record{Road: "AB", Weight: 5, From: "B", To: "A"}, recs[0])

	lines := make([]string, 0, len(recs))
	for _, rec := range recs {
		lines = append(lines, loader.FormatLine(rec))
	}
	copyOf := roadmap.NewManager()
	_, err := copyOf.Populate(context.Background(), strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	assert.Equal(t, m.AllRoads(), copyOf.AllRoads())
	assert.Equal(t, m.GetPath("A", "C"), copyOf.GetPath("A", "C"))
}
