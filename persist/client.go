// Package persist copies a road map to and from a Neo4j database.
//
// Only topology is stored: (:Town {key, name}) nodes joined by
// [:ROAD {name, weight}] relationships. Computed distances are never persisted.
package persist

import (
	"context"
	"errors"
)

// Client is the minimal contract the exporter needs from a graph database.
type Client interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result is a simplified representation of a query response.
type Result struct {
	Records []Record
}

// Record groups key-value pairs returned from the graph engine.
type Record map[string]any

// Options configures a Client implementation.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("persist: graph URI is required")
