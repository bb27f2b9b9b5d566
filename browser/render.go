package browser

import (
	"context"

	"github.com/herdscout/herdscout/engine"
)

// Render satisfies engine.RenderFunc: it opens a throwaway page, lets the
// DOM settle and returns the rendered HTML. Used as the escalation target
// when the plain-HTTP fast path returns something unusable.
func (s *Session) Render(ctx context.Context, req *engine.FetchRequest) (*engine.FetchResult, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	p, err := s.Open(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = p.Close() }()

	html, err := p.HTML()
	if err != nil {
		return nil, categorizeError(err, "failed to extract page HTML")
	}

	title := ""
	if res, evalErr := p.Eval(`() => document.title`); evalErr == nil {
		title = res.Value.Str()
	}
	finalURL := req.URL
	if res, evalErr := p.Eval(`() => window.location.href`); evalErr == nil && res.Value.Str() != "" {
		finalURL = res.Value.Str()
	}

	return &engine.FetchResult{
		HTML:       html,
		Title:      title,
		StatusCode: 200,
		FinalURL:   finalURL,
		EngineName: "browser",
	}, nil
}
