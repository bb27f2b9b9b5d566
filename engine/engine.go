// Package engine provides page-fetch engines for the read-only operations
// (listing locations, inspecting form structure). The HTTP engine fetches
// the registry page without launching Chrome; when the fetched HTML fails
// the caller's acceptance check (the form isn't in the static HTML), the
// fallback chain escalates to the browser engine.
package engine

import (
	"context"
	"time"
)

// Engine is the interface every fetch engine implements.
type Engine interface {
	// Name returns the engine identifier (e.g. "http", "browser").
	Name() string

	// Fetch retrieves the page content for the given request.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error)
}

// FetchRequest contains everything an engine needs to fetch a page.
type FetchRequest struct {
	URL     string
	Headers map[string]string
	Timeout time.Duration
}

// FetchResult is the output of a successful fetch.
type FetchResult struct {
	HTML       string
	Title      string
	StatusCode int
	FinalURL   string
	EngineName string
}
