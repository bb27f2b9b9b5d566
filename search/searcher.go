// Package search drives the registry's live search forms: it discovers the
// current form layout, maps filters onto it, submits, and collects the
// result rows across pages.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/herdscout/herdscout/browser"
	"github.com/herdscout/herdscout/config"
	"github.com/herdscout/herdscout/engine"
	"github.com/herdscout/herdscout/extract"
	"github.com/herdscout/herdscout/form"
	"github.com/herdscout/herdscout/models"
)

// Result is the outcome of one search: the merged result table plus timing
// and any fields that were requested but missing from the live form.
type Result struct {
	Table         *models.Table
	Timing        models.TimingInfo
	SkippedFields []string
}

// Searcher runs searches against one registry site through a shared browser
// session. Read-only lookups (locations, form info) go through the HTTP fast
// path first and only fall back to the browser when the static HTML is
// unusable.
type Searcher struct {
	session *browser.Session
	cfg     config.SiteConfig
	fetcher *engine.Fallback
}

// New wires a searcher over an already-launched browser session. proxy, if
// non-empty, applies to the HTTP fast path; the browser session carries its
// own proxy setting.
func New(session *browser.Session, cfg config.SiteConfig, proxy string) *Searcher {
	httpEng := engine.NewHTTPEngine(proxy, cfg.HTTPTimeout)
	browserEng := engine.NewBrowserEngine(session.Render)
	return &Searcher{
		session: session,
		cfg:     cfg,
		fetcher: engine.NewFallback(acceptSearchPage, httpEng, browserEng),
	}
}

// acceptSearchPage rejects fetched HTML that does not contain any of the
// search forms, forcing escalation to the rendered-DOM path.
func acceptSearchPage(res *engine.FetchResult) error {
	if strings.Contains(res.HTML, form.RanchFieldName) ||
		strings.Contains(res.HTML, form.AnimalContainerID) ||
		strings.Contains(res.HTML, form.EPDFormID) {
		return nil
	}
	return fmt.Errorf("page has no recognizable search form")
}

// SearchRanch fills and submits the ranch search form.
func (s *Searcher) SearchRanch(ctx context.Context, filter models.RanchFilter) (*Result, error) {
	if filter.Empty() {
		return nil, models.NewSearchError(models.ErrCodeInvalidInput,
			"ranch search needs at least one filter", nil)
	}

	return s.run(ctx, form.KindRanch, func(p *rod.Page, schema *form.Schema) ([]string, error) {
		var skipped []string

		fill := func(key, value string) error {
			if value == "" {
				return nil
			}
			if !schema.Has(key) {
				slog.Warn("form field missing, filter skipped", "field", key)
				skipped = append(skipped, key)
				return nil
			}
			return fillText(p, key, value)
		}

		if err := fill(form.RanchFieldName, filter.Name); err != nil {
			return nil, err
		}
		if err := fill(form.RanchFieldCity, filter.City); err != nil {
			return nil, err
		}
		if err := fill(form.RanchFieldMemberID, filter.MemberID); err != nil {
			return nil, err
		}
		if err := fill(form.RanchFieldPrefix, filter.Prefix); err != nil {
			return nil, err
		}

		if filter.Location != "" {
			if schema.Has(form.RanchFieldLocation) {
				opts, err := schema.Dropdown(form.RanchFieldLocation)
				if err != nil {
					return nil, err
				}
				opt, err := form.MatchLocation(filter.Location, opts)
				if err != nil {
					return nil, err
				}
				slog.Debug("location resolved", "input", filter.Location, "value", opt.Value)
				if err := selectOption(p, form.RanchFieldLocation, opt.Value); err != nil {
					return nil, err
				}
			} else {
				slog.Warn("form field missing, filter skipped", "field", form.RanchFieldLocation)
				skipped = append(skipped, form.RanchFieldLocation)
			}
		}

		return skipped, nil
	})
}

// SearchAnimal fills and submits the animal search form.
func (s *Searcher) SearchAnimal(ctx context.Context, filter models.AnimalFilter) (*Result, error) {
	filter.Normalize()
	if filter.Value == "" {
		return nil, models.NewSearchError(models.ErrCodeInvalidInput,
			"animal search needs a value", nil)
	}

	return s.run(ctx, form.KindAnimal, func(p *rod.Page, schema *form.Schema) ([]string, error) {
		var skipped []string

		if schema.Has(form.AnimalRadioSex) {
			if err := setRadio(p, form.AnimalRadioSex, filter.Sex); err != nil {
				return nil, err
			}
		} else if filter.Sex != "" {
			skipped = append(skipped, form.AnimalRadioSex)
		}

		if schema.Has(form.AnimalRadioField) {
			if err := setRadio(p, form.AnimalRadioField, filter.Field); err != nil {
				return nil, err
			}
		} else {
			skipped = append(skipped, form.AnimalRadioField)
		}

		if !schema.Has(form.AnimalFieldValue) {
			return nil, models.NewSearchError(models.ErrCodeFieldMissing,
				fmt.Sprintf("field %q not present on the page", form.AnimalFieldValue), nil)
		}
		if err := fillText(p, form.AnimalFieldValue, filter.Value); err != nil {
			return nil, err
		}

		return skipped, nil
	})
}

// SearchEPD fills the per-trait min/max/accuracy windows and submits.
func (s *Searcher) SearchEPD(ctx context.Context, filter models.EPDFilter) (*Result, error) {
	filter.Normalize()
	if filter.Empty() {
		return nil, models.NewSearchError(models.ErrCodeInvalidInput,
			"epd search needs at least one trait window", nil)
	}
	for key := range filter.Traits {
		if _, ok := TraitByKey(key); !ok {
			return nil, models.NewSearchError(models.ErrCodeInvalidInput,
				fmt.Sprintf("unknown trait %q (want one of %s)", key, strings.Join(TraitKeys(), ", ")), nil)
		}
	}

	return s.run(ctx, form.KindEPD, func(p *rod.Page, schema *form.Schema) ([]string, error) {
		var skipped []string

		for _, trait := range Traits {
			window, ok := filter.Traits[trait.Key]
			if !ok || window.Empty() {
				continue
			}
			for _, bound := range []struct{ field, value string }{
				{trait.MinField, window.Min},
				{trait.MaxField, window.Max},
				{trait.AccField, window.Accuracy},
			} {
				if bound.value == "" {
					continue
				}
				if !schema.Has(bound.field) {
					slog.Warn("trait input missing, bound skipped",
						"trait", trait.Key, "field", bound.field)
					skipped = append(skipped, bound.field)
					continue
				}
				if err := fillText(p, bound.field, bound.value); err != nil {
					return nil, err
				}
			}
		}

		if filter.Sex != "" && schema.Has(form.EPDRadioSex) {
			if err := setRadio(p, form.EPDRadioSex, filter.Sex); err != nil {
				return nil, err
			}
		}
		if filter.Sort != "" {
			sortVal, err := ResolveSort(filter.Sort)
			if err != nil {
				return nil, err
			}
			if schema.Has(form.EPDRadioSort) {
				if err := setRadio(p, form.EPDRadioSort, sortVal); err != nil {
					return nil, err
				}
			} else {
				skipped = append(skipped, form.EPDRadioSort)
			}
		}

		return skipped, nil
	})
}

// run is the shared search lifecycle: navigate, discover, fill (via the
// kind-specific callback), submit, wait, extract, paginate.
func (s *Searcher) run(ctx context.Context, kind form.Kind, fill func(*rod.Page, *form.Schema) ([]string, error)) (*Result, error) {
	start := time.Now()

	navCtx, cancel := context.WithTimeout(ctx, s.cfg.NavTimeout)
	defer cancel()

	p, err := s.session.Open(navCtx, s.cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = p.Close() }()

	navDone := time.Now()

	html, err := p.HTML()
	if err != nil {
		return nil, models.NewSearchError(models.ErrCodeNavigation,
			"failed to read page HTML", err)
	}
	schema, err := form.Parse(html, kind)
	if err != nil {
		return nil, err
	}
	if missing := schema.Missing(); len(missing) > 0 {
		slog.Info("form discovered with missing fields",
			"kind", kind, "missing", strings.Join(missing, ","))
	}

	// Drop the navigation deadline; filling and waiting for results run
	// under the results timeout instead.
	p = p.Context(ctx)

	skipped, err := fill(p, schema)
	if err != nil {
		return nil, err
	}

	if err := submit(p, schema.Submit); err != nil {
		return nil, err
	}

	table, err := s.collectResults(ctx, p, kind)
	if err != nil {
		return nil, err
	}

	end := time.Now()
	return &Result{
		Table: table,
		Timing: models.TimingInfo{
			TotalMs:      end.Sub(start).Milliseconds(),
			NavigationMs: navDone.Sub(start).Milliseconds(),
			ExtractionMs: end.Sub(navDone).Milliseconds(),
		},
		SkippedFields: skipped,
	}, nil
}

// collectResults waits for the first results page, then follows the "next"
// control until pagination ends or the page cap is hit.
func (s *Searcher) collectResults(ctx context.Context, p *rod.Page, kind form.Kind) (*models.Table, error) {
	html, err := waitResults(ctx, p, s.cfg.ResultsTimeout)
	if err != nil {
		return nil, err
	}

	table, err := extract.Results(html, kind)
	if err != nil {
		return nil, err
	}

	for page := 1; page < s.cfg.MaxResultPages; page++ {
		next, ok := extract.NextPage(html)
		if !ok {
			break
		}
		slog.Debug("following pagination", "page", page+1)

		html, err = advancePage(ctx, p, next, s.cfg.ResultsTimeout)
		if err != nil {
			slog.Warn("pagination stopped early", "page", page+1, "error", err)
			break
		}
		more, err := extract.Results(html, kind)
		if err != nil {
			slog.Warn("pagination stopped early", "page", page+1, "error", err)
			break
		}
		if more.Len() == 0 {
			break
		}
		table.Merge(more)
	}

	return table, nil
}

// Locations returns the live member-location dropdown options. Static HTML
// is enough, so this prefers the HTTP fast path.
func (s *Searcher) Locations(ctx context.Context) ([]form.Option, error) {
	schema, err := s.staticSchema(ctx, form.KindRanch)
	if err != nil {
		return nil, err
	}
	return schema.Dropdown(form.RanchFieldLocation)
}

// FormInfo discovers and returns the current schema of one search form
// without submitting anything.
func (s *Searcher) FormInfo(ctx context.Context, kind form.Kind) (*form.Schema, error) {
	return s.staticSchema(ctx, kind)
}

// staticSchema fetches the search page without driving the form and parses
// the requested schema out of it.
func (s *Searcher) staticSchema(ctx context.Context, kind form.Kind) (*form.Schema, error) {
	res, err := s.fetcher.Fetch(ctx, &engine.FetchRequest{
		URL:     s.cfg.BaseURL,
		Timeout: s.cfg.NavTimeout,
	})
	if err != nil {
		return nil, models.NewSearchError(models.ErrCodeNavigation,
			"failed to fetch search page", err)
	}
	slog.Debug("search page fetched", "engine", res.EngineName)
	return form.Parse(res.HTML, kind)
}
