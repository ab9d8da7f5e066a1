// Package rowsource provides the query boundary to the external trade-data
// row store. Deployments differ in which backend they expose (PostgREST,
// direct Postgres, or a local SQLite snapshot), so every backend implements
// the same minimal Client interface and surfaces upstream failures as
// SourceError values that classify.go can inspect.
package rowsource

import (
	"context"
	"fmt"
)

// GenericRow is an untyped row as returned by the source. Key names carry
// whatever casing and punctuation the deployment's schema happens to use;
// callers must never index it by literal key outside the profile resolver.
type GenericRow map[string]any

// Query describes a single filtered select against one source table.
type Query struct {
	Table        string
	FilterColumn string
	FilterValue  string
	OrderColumn  string // empty means no ORDER BY clause
	Ascending    bool
	Limit        int // 0 means the source default
}

// Client is the minimal query primitive every row-store backend implements.
type Client interface {
	// Select runs one filtered, optionally ordered and limited query and
	// returns the raw rows. Backend failures are returned as *SourceError
	// so callers can classify them; an empty result is not an error.
	Select(ctx context.Context, q Query) ([]GenericRow, error)
	// Close releases any underlying connections.
	Close() error
}

// SourceError carries the upstream error code and message unchanged so the
// classifier can decide whether the failure is recoverable.
type SourceError struct {
	Code    string
	Message string
}

func (e *SourceError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("rowsource: %s", e.Message)
	}
	return fmt.Sprintf("rowsource: %s: %s", e.Code, e.Message)
}
