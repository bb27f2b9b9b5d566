package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// AcceptFunc decides whether a fetch result is usable. Returning an error
// makes the fallback chain escalate to the next engine; the error is kept
// for reporting if every engine is exhausted.
type AcceptFunc func(*FetchResult) error

// Fallback tries engines in order until one produces an acceptable result.
// Unlike a racing dispatcher there is no parallelism: one invocation drives
// one sequential lookup, so the cheap engine simply runs first.
type Fallback struct {
	engines []Engine
	accept  AcceptFunc
}

// NewFallback creates a fallback chain. accept may be nil, in which case any
// successful fetch is taken.
func NewFallback(accept AcceptFunc, engines ...Engine) *Fallback {
	return &Fallback{engines: engines, accept: accept}
}

// Fetch runs the chain. The returned result records which engine served it.
func (f *Fallback) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	if len(f.engines) == 0 {
		return nil, errors.New("fallback: no engines configured")
	}

	var lastErr error
	for _, eng := range f.engines {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		result, err := eng.Fetch(ctx, req)
		if err != nil {
			slog.Debug("engine fetch failed, escalating",
				"engine", eng.Name(), "url", req.URL, "error", err)
			lastErr = err
			continue
		}
		if f.accept != nil {
			if err := f.accept(result); err != nil {
				slog.Debug("engine result rejected, escalating",
					"engine", eng.Name(), "url", req.URL, "reason", err)
				lastErr = err
				continue
			}
		}
		return result, nil
	}

	return nil, fmt.Errorf("fallback: all %d engines failed: %w", len(f.engines), lastErr)
}
