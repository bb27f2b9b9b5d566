package browser

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/herdscout/herdscout/config"
	"github.com/herdscout/herdscout/models"
	"github.com/ysmood/gson"
)

// Session owns one headless browser process. A CLI invocation creates one
// session, drives one or more searches through it, and closes it; the serve
// mode keeps a single session alive for the process lifetime.
type Session struct {
	browser *rod.Browser
	cfg     config.BrowserConfig
}

// NewSession launches a headless browser and connects to it.
func NewSession(cfg config.BrowserConfig) (*Session, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}
	if cfg.Proxy != "" {
		l = l.Proxy(cfg.Proxy)
	}

	// ── Stealth flags ────────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-ipc-flooding-protection"))
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-prompt-on-repost"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewSearchError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, models.NewSearchError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	return &Session{browser: b, cfg: cfg}, nil
}

// Open creates a fresh page, installs stealth, navigates to rawURL and waits
// for the DOM to settle. The caller owns the returned page and must Close it.
//
// Stealth JS and extra headers are installed BEFORE navigation: they only
// take effect for navigations that happen after they are in place.
func (s *Session) Open(ctx context.Context, rawURL string) (*rod.Page, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, models.NewSearchError(
			models.ErrCodeBrowserCrash,
			"failed to create page",
			err,
		)
	}

	ok := false
	defer func() {
		if !ok {
			_ = page.Close()
		}
	}()

	if s.cfg.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", evalErr,
			)
		}
	}

	if u, parseErr := url.Parse(rawURL); parseErr == nil {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: proto.NetworkHeaders{
				"Referer": gson.New("https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())),
			},
		}.Call(page)
	}

	p := page.Context(ctx)

	if navErr := p.Navigate(rawURL); navErr != nil {
		return nil, categorizeError(navErr, "navigation to target URL failed")
	}

	if stableErr := p.WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM",
			"error", stableErr,
		)
	}

	ok = true
	return p, nil
}

// Close kills the browser process. Call on shutdown to prevent zombie
// Chrome processes.
func (s *Session) Close() {
	slog.Info("browser session shutting down")
	s.browser.MustClose()
}

// categorizeError wraps raw errors into typed SearchErrors so callers can
// map them to exit codes and HTTP statuses.
func categorizeError(err error, msg string) *models.SearchError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewSearchError(models.ErrCodeResultTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewSearchError(models.ErrCodeResultTimeout, "request canceled", err)
	default:
		return models.NewSearchError(models.ErrCodeNavigation, msg, err)
	}
}
