package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadgraph/core"
	"github.com/katalvlaran/roadgraph/persist"
)

const sampleRoads = `Road_1,5;A;B
Road_2,10;B;C
Road_3,20;A;C
`

func writeRoadMap(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roads.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleRoads+"Ferry,1;Isle;Islet\n"), 0o600))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	return runApp(t, newApp(), append([]string{"--data", writeRoadMap(t)}, args...)...)
}

// runApp executes a's command tree with args and returns what it printed.
func runApp(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := a.command()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), err
}

func TestPathCommand(t *testing.T) {
	out, err := run(t, "path", "a", "C")
	require.NoError(t, err)
	assert.Equal(t, "A via Road_1 to B 5 mi\nB via Road_2 to C 10 mi\n", out)

	out, err = run(t, "path", "A", "Isle")
	require.NoError(t, err)
	assert.Equal(t, "no route from A to Isle\n", out)
}

func TestListCommands(t *testing.T) {
	out, err := run(t, "towns")
	require.NoError(t, err)
	assert.Equal(t, "A\nB\nC\nIsle\nIslet\n", out)

	out, err = run(t, "roads")
	require.NoError(t, err)
	assert.Equal(t, "Ferry\nRoad_1\nRoad_2\nRoad_3\n", out)
}

func TestReachCommand(t *testing.T) {
	out, err := run(t, "reach", "Isle")
	require.NoError(t, err)
	assert.Equal(t, "Islet\n", out)

	out, err = run(t, "reach", "A", "--max-hops", "1")
	require.NoError(t, err)
	assert.Equal(t, "B\nC\n", out)

	_, err = run(t, "reach", "Atlantis")
	require.ErrorIs(t, err, core.ErrLocationNotFound)
}

func TestExportCommand_RequiresURI(t *testing.T) {
	t.Setenv("ROADGRAPH_NEO4J_URI", "")
	_, err := run(t, "export")
	require.ErrorIs(t, err, errNoNeo4j)
}

func TestMissingRoadMap(t *testing.T) {
	t.Setenv("ROADGRAPH_DATA_FILE", "")
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"towns"})
	require.ErrorIs(t, root.Execute(), errNoRoadMap)
}

// withClient returns an app whose Neo4j connections all go to client.
func withClient(t *testing.T, client *persist.MemoryClient) *app {
	t.Helper()
	t.Setenv("ROADGRAPH_NEO4J_URI", "bolt://roads.test:7687")
	a := newApp()
	a.newClient = func(_ context.Context, opts persist.Options) (persist.Client, error) {
		assert.Equal(t, "bolt://roads.test:7687", opts.URI)
		return client, nil
	}

	return a
}

func TestExportCommand(t *testing.T) {
	client := persist.NewMemoryClient()
	out, err := runApp(t, withClient(t, client), "--data", writeRoadMap(t), "export")
	require.NoError(t, err)
	assert.Equal(t, "exported 5 towns and 4 roads\n", out)
	assert.Len(t, client.Statements(persist.ModeWrite), 2)
	assert.True(t, client.Closed())
}

func TestImportCommand(t *testing.T) {
	client := persist.NewMemoryClient(
		persist.Result{Records: []persist.Record{{"name": "A"}, {"name": "B"}, {"name": "C"}}},
		persist.Result{Records: []persist.Record{
			{"from": "A", "to": "B", "name": "Road_1", "weight": int64(5)},
			{"from": "B", "to": "C", "name": "Road_2", "weight": int64(10)},
		}},
	)
	t.Setenv("ROADGRAPH_DATA_FILE", "")
	dst := filepath.Join(t.TempDir(), "imported.txt")

	_, err := runApp(t, withClient(t, client), "import", "--out", dst)
	require.NoError(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "Road_1,5;A;B\nRoad_2,10;B;C\n", string(data))

	// The written file loads back and answers the same route.
	out, err := runApp(t, newApp(), "--data", dst, "path", "A", "C")
	require.NoError(t, err)
	assert.Equal(t, "A via Road_1 to B 5 mi\nB via Road_2 to C 10 mi\n", out)
}

func TestImportCommand_Unreachable(t *testing.T) {
	down := errors.New("connection refused")
	t.Setenv("ROADGRAPH_DATA_FILE", "")

	_, err := runApp(t, withClient(t, persist.NewMemoryClient().FailPing(down)), "import")
	require.ErrorIs(t, err, down)
}

func TestMetricsFlag(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "roadgraph.prom")

	_, err := run(t, "--metrics", dst, "path", "A", "C")
	require.NoError(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), `roadgraph_path_queries_total{result="found"} 1`)
	assert.Contains(t, string(data), `roadgraph_mutations_total{op="add_road",result="applied"} 4`)
}
