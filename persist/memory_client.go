package persist

import (
	"context"
	"maps"
	"sync"
)

// Mode tells reads from writes in a recorded Statement.
type Mode string

const (
	ModeRead  Mode = "read"
	ModeWrite Mode = "write"
)

// Statement is one Cypher call seen by a MemoryClient.
type Statement struct {
	Mode   Mode
	Cypher string
	Params map[string]any
}

// MemoryClient is a Client with no database behind it. Writes are recorded
// and answered with an empty Result; reads are answered from a script, one
// Result per call, then empty results once the script runs out.
type MemoryClient struct {
	mu      sync.Mutex
	script  []Result
	log     []Statement
	execErr error
	pingErr error
	closed  bool
}

// NewMemoryClient returns a client that answers reads from script.
func NewMemoryClient(script ...Result) *MemoryClient {
	return &MemoryClient{script: script}
}

// Fail makes every ExecuteRead and ExecuteWrite return err without
// recording the statement.
func (m *MemoryClient) Fail(err error) *MemoryClient {
	m.mu.Lock()
	m.execErr = err
	m.mu.Unlock()

	return m
}

// FailPing makes VerifyConnectivity return err.
func (m *MemoryClient) FailPing(err error) *MemoryClient {
	m.mu.Lock()
	m.pingErr = err
	m.mu.Unlock()

	return m
}

func (m *MemoryClient) ExecuteWrite(_ context.Context, cypher string, params map[string]any) (Result, error) {
	return m.record(ModeWrite, cypher, params)
}

func (m *MemoryClient) ExecuteRead(_ context.Context, cypher string, params map[string]any) (Result, error) {
	return m.record(ModeRead, cypher, params)
}

func (m *MemoryClient) record(mode Mode, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.execErr != nil {
		return Result{}, m.execErr
	}
	m.log = append(m.log, Statement{Mode: mode, Cypher: cypher, Params: maps.Clone(params)})
	if mode == ModeWrite || len(m.script) == 0 {
		return Result{}, nil
	}
	next := m.script[0]
	m.script = m.script[1:]

	return next, nil
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.pingErr
}

func (m *MemoryClient) Close(context.Context) error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	return nil
}

// Closed reports whether Close was called.
func (m *MemoryClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.closed
}

// Statements returns the recorded calls of the given mode in call order.
func (m *MemoryClient) Statements(mode Mode) []Statement {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Statement
	for _, st := range m.log {
		if st.Mode == mode {
			out = append(out, st)
		}
	}

	return out
}
