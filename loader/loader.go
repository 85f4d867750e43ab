// Package loader reads road maps in the line format
//
//	<road>,<weight>;<town>;<town>
//
// creating both towns when absent and then the road. The road name ends at
// the first comma. A malformed line aborts the whole load.
package loader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/roadgraph/core"
)

// ErrMalformedLine is wrapped by every parse failure.
var ErrMalformedLine = fmt.Errorf("%w: loader: malformed line", core.ErrInvalidArgument)

// Sink receives parsed records. roadmap.Manager implements it.
type Sink interface {
	AddTown(name string) bool
	AddRoad(town1, town2 string, weight int, road string) bool
}

// Record is one parsed line.
type Record struct {
	Road   string
	Weight int
	From   string
	To     string
}

// Summary counts what a load did. Towns and Roads count only new entries;
// a road between already connected towns is ignored.
type Summary struct {
	Lines int
	Towns int
	Roads int
}

// ParseLine parses a single record. Surrounding whitespace on each field is
// ignored.
func ParseLine(line string) (Record, error) {
	fields := strings.Split(strings.TrimSpace(line), ";")
	if len(fields) != 3 {
		return Record{}, fmt.Errorf("%w: want 3 ';'-separated fields, got %d", ErrMalformedLine, len(fields))
	}
	head := fields[0]
	comma := strings.Index(head, ",")
	if comma < 0 {
		return Record{}, fmt.Errorf("%w: missing ',' between road name and weight", ErrMalformedLine)
	}

	rec := Record{
		Road: strings.TrimSpace(head[:comma]),
		From: strings.TrimSpace(fields[1]),
		To:   strings.TrimSpace(fields[2]),
	}
	raw := strings.TrimSpace(head[comma+1:])
	w, err := strconv.Atoi(raw)
	if err != nil {
		return Record{}, fmt.Errorf("%w: weight %q is not an integer", ErrMalformedLine, raw)
	}
	if w < 0 {
		return Record{}, fmt.Errorf("%w: weight %d is negative", ErrMalformedLine, w)
	}
	rec.Weight = w

	switch {
	case rec.Road == "":
		return Record{}, fmt.Errorf("%w: empty road name", ErrMalformedLine)
	case rec.From == "" || rec.To == "":
		return Record{}, fmt.Errorf("%w: empty town name", ErrMalformedLine)
	}

	return rec, nil
}

// FormatLine renders rec in the form ParseLine reads back.
func FormatLine(rec Record) string {
	return fmt.Sprintf("%s,%d;%s;%s", rec.Road, rec.Weight, rec.From, rec.To)
}

// Load applies every record from r to sink. Blank lines are skipped. The
// first malformed line stops the load; records before it stay applied.
func Load(ctx context.Context, r io.Reader, sink Sink) (Summary, error) {
	var sum Summary
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseLine(line)
		if err != nil {
			return sum, fmt.Errorf("line %d: %w", n, err)
		}
		sum.Lines++
		if sink.AddTown(rec.From) {
			sum.Towns++
		}
		if sink.AddTown(rec.To) {
			sum.Towns++
		}
		if sink.AddRoad(rec.From, rec.To, rec.Weight, rec.Road) {
			sum.Roads++
		}
	}
	if err := sc.Err(); err != nil {
		return sum, fmt.Errorf("read road map: %w", err)
	}

	return sum, nil
}

// LoadFile opens path and calls Load.
func LoadFile(ctx context.Context, path string, sink Sink) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("open road map: %w", err)
	}
	defer f.Close()

	return Load(ctx, f, sink)
}
