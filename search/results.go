package search

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/herdscout/herdscout/extract"
	"github.com/herdscout/herdscout/models"
)

// pollInterval is how often the results container is re-checked while
// waiting for the search to come back.
const pollInterval = 500 * time.Millisecond

// resultsReadyJS reports whether the results container exists and has
// either data rows or any text at all (an empty result set still renders
// a "no matches" message, which counts as ready).
const resultsReadyJS = `() => {
	const c = document.querySelector('#dvSearchResults');
	if (!c) return false;
	if (c.querySelectorAll('tr[id^="tr_"]').length > 0) return true;
	return c.innerText.trim().length > 0;
}`

// waitResults polls until the results container has content, then returns
// the full page HTML for extraction.
func waitResults(ctx context.Context, p *rod.Page, timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)

	for {
		if res, err := p.Eval(resultsReadyJS); err == nil && res.Value.Bool() {
			break
		}
		if time.Now().After(deadline) {
			return "", models.NewSearchError(models.ErrCodeResultTimeout,
				"timed out waiting for search results", nil)
		}
		select {
		case <-ctx.Done():
			return "", models.NewSearchError(models.ErrCodeResultTimeout,
				"canceled while waiting for search results", ctx.Err())
		case <-time.After(pollInterval):
		}
	}

	// Let late-arriving rows settle before reading the DOM.
	_ = p.WaitDOMStable(300*time.Millisecond, 0.1)

	html, err := p.HTML()
	if err != nil {
		return "", models.NewSearchError(models.ErrCodeNavigation,
			"failed to read results HTML", err)
	}
	return html, nil
}

// advancePage activates the next-page control and waits for the results
// container to change before returning the new HTML.
func advancePage(ctx context.Context, p *rod.Page, next extract.PageControl, timeout time.Duration) (string, error) {
	before := ""
	if res, err := p.Eval(`() => {
		const c = document.querySelector('#dvSearchResults');
		return c ? c.innerHTML : '';
	}`); err == nil {
		before = res.Value.Str()
	}

	switch {
	case next.OnClick != "":
		if _, err := p.Eval("() => { " + next.OnClick + " }"); err != nil {
			return "", models.NewSearchError(models.ErrCodeNavigation,
				"next-page handler failed", err)
		}
	case next.Selector != "":
		el, err := p.Element(next.Selector)
		if err != nil {
			return "", models.NewSearchError(models.ErrCodeNavigation,
				"next-page control not found", err)
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return "", models.NewSearchError(models.ErrCodeNavigation,
				"next-page click failed", err)
		}
	default:
		return "", models.NewSearchError(models.ErrCodeNavigation,
			"next-page control has no activation mechanism", nil)
	}

	deadline := time.Now().Add(timeout)
	for {
		if res, err := p.Eval(`(before) => {
			const c = document.querySelector('#dvSearchResults');
			return !!c && c.innerHTML !== before;
		}`, before); err == nil && res.Value.Bool() {
			break
		}
		if time.Now().After(deadline) {
			return "", models.NewSearchError(models.ErrCodeResultTimeout,
				"timed out waiting for the next results page", nil)
		}
		select {
		case <-ctx.Done():
			return "", models.NewSearchError(models.ErrCodeResultTimeout,
				"canceled while waiting for the next results page", ctx.Err())
		case <-time.After(pollInterval):
		}
	}

	_ = p.WaitDOMStable(300*time.Millisecond, 0.1)

	html, err := p.HTML()
	if err != nil {
		return "", models.NewSearchError(models.ErrCodeNavigation,
			"failed to read results HTML", err)
	}
	return html, nil
}
