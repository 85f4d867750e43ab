package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/roadgraph/core"
	"github.com/katalvlaran/roadgraph/loader"
	"github.com/katalvlaran/roadgraph/logging"
)

const (
	mergeTownsQuery = `UNWIND $towns AS t
MERGE (n:Town {key: t.key})
SET n.name = t.name`

	mergeRoadsQuery = `UNWIND $roads AS r
MATCH (a:Town {key: r.from}), (b:Town {key: r.to})
MERGE (a)-[e:ROAD]->(b)
SET e.name = r.name, e.weight = r.weight`

	readTownsQuery = `MATCH (n:Town) RETURN n.name AS name ORDER BY n.key`

	readRoadsQuery = `MATCH (a:Town)-[r:ROAD]->(b:Town)
RETURN a.name AS from, b.name AS to, r.name AS name, r.weight AS weight
ORDER BY a.key, b.key`
)

// ErrBadRecord is returned when a stored record lacks a field or has the
// wrong type.
var ErrBadRecord = errors.New("persist: malformed record")

// ExportSummary counts what Export wrote.
type ExportSummary struct {
	Towns int
	Roads int
}

// Exporter moves road-map topology between a core.Graph and a Client.
type Exporter struct {
	client Client
	log    *slog.Logger
}

// NewExporter wraps client. A nil logger discards output.
func NewExporter(client Client, log *slog.Logger) *Exporter {
	if log == nil {
		log = logging.Discard()
	}

	return &Exporter{client: client, log: log}
}

// Export merges every town and road of g after checking the database is
// reachable. Each road is stored once, directed from the lower to the higher
// town key.
func (e *Exporter) Export(ctx context.Context, g *core.Graph) (ExportSummary, error) {
	if g == nil {
		return ExportSummary{}, fmt.Errorf("%w: persist: nil graph", core.ErrInvalidArgument)
	}

	if err := e.client.VerifyConnectivity(ctx); err != nil {
		return ExportSummary{}, fmt.Errorf("export: %w", err)
	}

	locs := g.Locations()
	towns := make([]map[string]any, 0, len(locs))
	for _, loc := range locs {
		towns = append(towns, map[string]any{"key": loc.Key(), "name": loc.Name()})
	}

	links := g.Links()
	roads := make([]map[string]any, 0, len(links))
	for _, l := range links {
		pk := l.Key()
		roads = append(roads, map[string]any{
			"from":   pk.Lo,
			"to":     pk.Hi,
			"name":   l.Name,
			"weight": int64(l.Weight),
		})
	}

	if _, err := e.client.ExecuteWrite(ctx, mergeTownsQuery, map[string]any{"towns": towns}); err != nil {
		return ExportSummary{}, fmt.Errorf("export towns: %w", err)
	}
	if len(roads) > 0 {
		if _, err := e.client.ExecuteWrite(ctx, mergeRoadsQuery, map[string]any{"roads": roads}); err != nil {
			return ExportSummary{}, fmt.Errorf("export roads: %w", err)
		}
	}

	sum := ExportSummary{Towns: len(towns), Roads: len(roads)}
	e.log.Info("persist: exported road map", slog.Int("towns", sum.Towns), slog.Int("roads", sum.Roads))

	return sum, nil
}

// Import reads towns and roads back into sink. Towns go first so that
// isolated towns survive the round trip.
func (e *Exporter) Import(ctx context.Context, sink loader.Sink) (loader.Summary, error) {
	var sum loader.Summary
	if err := e.client.VerifyConnectivity(ctx); err != nil {
		return sum, fmt.Errorf("import: %w", err)
	}

	res, err := e.client.ExecuteRead(ctx, readTownsQuery, nil)
	if err != nil {
		return sum, fmt.Errorf("import towns: %w", err)
	}
	for i, rec := range res.Records {
		name, err := stringField(rec, "name")
		if err != nil {
			return sum, fmt.Errorf("town record %d: %w", i, err)
		}
		if sink.AddTown(name) {
			sum.Towns++
		}
	}

	res, err = e.client.ExecuteRead(ctx, readRoadsQuery, nil)
	if err != nil {
		return sum, fmt.Errorf("import roads: %w", err)
	}
	for i, rec := range res.Records {
		from, err := stringField(rec, "from")
		if err != nil {
			return sum, fmt.Errorf("road record %d: %w", i, err)
		}
		to, err := stringField(rec, "to")
		if err != nil {
			return sum, fmt.Errorf("road record %d: %w", i, err)
		}
		name, err := stringField(rec, "name")
		if err != nil {
			return sum, fmt.Errorf("road record %d: %w", i, err)
		}
		weight, err := intField(rec, "weight")
		if err != nil {
			return sum, fmt.Errorf("road record %d: %w", i, err)
		}
		sum.Lines++
		if sink.AddRoad(from, to, weight, name) {
			sum.Roads++
		}
	}

	e.log.Info("persist: imported road map", slog.Int("towns", sum.Towns), slog.Int("roads", sum.Roads))

	return sum, nil
}

func stringField(rec Record, key string) (string, error) {
	v, ok := rec[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: field %q", ErrBadRecord, key)
	}

	return v, nil
}

// intField accepts the int64 the driver returns as well as plain ints.
func intField(rec Record, key string) (int, error) {
	switch v := rec[key].(type) {
	case int64:
		return int(v), nil
	case int:
		return v, nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: field %q", ErrBadRecord, key)
	}
}
