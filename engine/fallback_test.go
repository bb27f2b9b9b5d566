package engine

import (
	"context"
	"errors"
	"testing"
)

// stubEngine returns canned results for fallback-chain tests.
type stubEngine struct {
	name   string
	result *FetchResult
	err    error
	calls  int
}

func (s *stubEngine) Name() string { return s.name }

func (s *stubEngine) Fetch(_ context.Context, _ *FetchRequest) (*FetchResult, error) {
	s.calls++
	return s.result, s.err
}

func TestFallback_FirstEngineWins(t *testing.T) {
	first := &stubEngine{name: "http", result: &FetchResult{HTML: "ok", EngineName: "http"}}
	second := &stubEngine{name: "browser", result: &FetchResult{HTML: "ok", EngineName: "browser"}}

	res, err := NewFallback(nil, first, second).Fetch(context.Background(), &FetchRequest{URL: "http://x"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if res.EngineName != "http" {
		t.Errorf("served by %q, want http", res.EngineName)
	}
	if second.calls != 0 {
		t.Errorf("second engine called %d times, want 0", second.calls)
	}
}

func TestFallback_EscalatesOnError(t *testing.T) {
	first := &stubEngine{name: "http", err: errors.New("connection refused")}
	second := &stubEngine{name: "browser", result: &FetchResult{HTML: "ok", EngineName: "browser"}}

	res, err := NewFallback(nil, first, second).Fetch(context.Background(), &FetchRequest{URL: "http://x"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if res.EngineName != "browser" {
		t.Errorf("served by %q, want browser", res.EngineName)
	}
}

func TestFallback_EscalatesOnRejectedResult(t *testing.T) {
	accept := func(res *FetchResult) error {
		if res.HTML == "static shell" {
			return errors.New("form not present in static HTML")
		}
		return nil
	}
	first := &stubEngine{name: "http", result: &FetchResult{HTML: "static shell", EngineName: "http"}}
	second := &stubEngine{name: "browser", result: &FetchResult{HTML: "rendered form", EngineName: "browser"}}

	res, err := NewFallback(accept, first, second).Fetch(context.Background(), &FetchRequest{URL: "http://x"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if res.EngineName != "browser" {
		t.Errorf("served by %q, want browser", res.EngineName)
	}
	if first.calls != 1 {
		t.Errorf("first engine called %d times, want 1", first.calls)
	}
}

func TestFallback_AllFail(t *testing.T) {
	first := &stubEngine{name: "http", err: errors.New("refused")}
	second := &stubEngine{name: "browser", err: errors.New("crashed")}

	_, err := NewFallback(nil, first, second).Fetch(context.Background(), &FetchRequest{URL: "http://x"})
	if err == nil {
		t.Fatal("expected an error when every engine fails")
	}
	if !errors.Is(err, second.err) {
		t.Errorf("error should wrap the last failure, got: %v", err)
	}
}

func TestFallback_NoEngines(t *testing.T) {
	if _, err := NewFallback(nil).Fetch(context.Background(), &FetchRequest{URL: "http://x"}); err == nil {
		t.Fatal("expected an error with no engines configured")
	}
}
