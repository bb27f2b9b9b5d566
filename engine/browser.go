package engine

import (
	"context"
	"fmt"
)

// RenderFunc renders a page in the headless browser and returns its HTML.
// It is injected by the caller so this package never imports the browser
// session directly.
type RenderFunc func(ctx context.Context, req *FetchRequest) (*FetchResult, error)

// BrowserEngine renders pages through the injected browser callback. It is
// the escalation target when static HTML is not enough.
type BrowserEngine struct {
	render RenderFunc
}

// NewBrowserEngine creates a BrowserEngine around the given render callback.
func NewBrowserEngine(render RenderFunc) *BrowserEngine {
	return &BrowserEngine{render: render}
}

func (e *BrowserEngine) Name() string { return "browser" }

func (e *BrowserEngine) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	if e.render == nil {
		return nil, fmt.Errorf("browser engine: render callback not configured")
	}
	result, err := e.render(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("browser engine: %w", err)
	}
	result.EngineName = e.Name()
	return result, nil
}
