package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lieyanc/czai/internal/commit"
	"github.com/lieyanc/czai/internal/prompt"
)

type scriptedProvider struct {
	errs  []error
	calls int
}

func (p *scriptedProvider) Generate(ctx context.Context, pctx prompt.Context, cfg Configuration) (commit.Message, error) {
	p.calls++
	if p.calls <= len(p.errs) && p.errs[p.calls-1] != nil {
		return commit.Message{}, p.errs[p.calls-1]
	}
	h, _ := commit.NewHeader("feat", "add x", "")
	return commit.New(h, commit.NewBody("", "")), nil
}

type checkedProvider struct {
	scriptedProvider
}

func (p *checkedProvider) CheckConfig(cfg Configuration) error {
	return requireAPIKey(cfg)
}

type recordedSleep struct {
	delays []time.Duration
}

func (s *recordedSleep) sleep(ctx context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return nil
}

func newTestGateway(id ProviderID, p Provider, sleep *recordedSleep) *Gateway {
	r := NewRegistry()
	r.Register(id, p)
	return NewGateway(r, WithSleep(sleep.sleep))
}

func TestExecuteRetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	p := &scriptedProvider{errs: []error{errors.New("rate limited"), &MalformedResponseError{Reason: "no json"}}}
	sleep := &recordedSleep{}
	g := newTestGateway("fake", p, sleep)

	var attempts []int
	cfg := DefaultConfiguration().WithProvider("fake").WithMaxRetries(3)
	msg, err := g.Execute(context.Background(), prompt.Context{}, cfg, func(attempt, max int, err error) {
		if max != 3 {
			t.Errorf("onRetry max got %d want 3", max)
		}
		attempts = append(attempts, attempt)
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if msg.String() != "feat: add x" {
		t.Fatalf("message got %q", msg.String())
	}
	if p.calls != 3 {
		t.Fatalf("Generate calls got %d want 3", p.calls)
	}
	if len(attempts) != 2 || attempts[0] != 1 || attempts[1] != 2 {
		t.Fatalf("onRetry attempts got %v want [1 2]", attempts)
	}
	if len(sleep.delays) != 2 || sleep.delays[0] != DefaultRetryDelay {
		t.Fatalf("delays got %v", sleep.delays)
	}
}

func TestExecuteExhausted(t *testing.T) {
	t.Parallel()

	last := errors.New("third failure")
	p := &scriptedProvider{errs: []error{errors.New("one"), errors.New("two"), last}}
	sleep := &recordedSleep{}
	g := newTestGateway("fake", p, sleep)

	_, err := g.Execute(context.Background(), prompt.Context{}, DefaultConfiguration().WithProvider("fake"), nil)

	var exhausted *GenerationExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error got %v want GenerationExhaustedError", err)
	}
	if exhausted.Attempts != 3 || !errors.Is(err, last) {
		t.Fatalf("exhausted got attempts=%d err=%v", exhausted.Attempts, exhausted.Err)
	}
	if len(sleep.delays) != 2 {
		t.Fatalf("no sleep expected after the last attempt, got %d sleeps", len(sleep.delays))
	}
}

func TestExecuteConfigErrorsAreNotRetried(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Configuration
	}{
		{name: "unsupported provider", cfg: DefaultConfiguration().WithProvider("nope").WithAPIKey("k")},
		{name: "missing api key", cfg: DefaultConfiguration().WithProvider("fake")},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := &checkedProvider{}
			g := newTestGateway("fake", p, &recordedSleep{})

			_, err := g.Execute(context.Background(), prompt.Context{}, tc.cfg, func(int, int, error) {
				t.Errorf("onRetry must not be called for configuration errors")
			})
			if !IsConfigError(err) {
				t.Fatalf("error got %v want configuration error", err)
			}
			if p.calls != 0 {
				t.Fatalf("Generate calls got %d want 0", p.calls)
			}
		})
	}
}

func TestExecuteStopsWhenContextCancelled(t *testing.T) {
	t.Parallel()

	p := &scriptedProvider{errs: []error{errors.New("one"), errors.New("two")}}
	r := NewRegistry()
	r.Register("fake", p)
	g := NewGateway(r, WithRetryDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Execute(ctx, prompt.Context{}, DefaultConfiguration().WithProvider("fake"), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error got %v want context.Canceled", err)
	}
	if p.calls != 1 {
		t.Fatalf("Generate calls got %d want 1", p.calls)
	}
}

func TestGenerateOnceDoesNotRetry(t *testing.T) {
	t.Parallel()

	p := &scriptedProvider{errs: []error{errors.New("boom")}}
	g := newTestGateway("fake", p, &recordedSleep{})

	if _, err := g.GenerateOnce(context.Background(), prompt.Context{}, DefaultConfiguration().WithProvider("fake")); err == nil {
		t.Fatalf("expected error from single attempt")
	}
	if p.calls != 1 {
		t.Fatalf("Generate calls got %d want 1", p.calls)
	}
}

func TestDefaultRegistryResolvesBuiltins(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()
	for _, id := range ProviderNames() {
		if _, err := r.Lookup(id); err != nil {
			t.Fatalf("Lookup(%q): %v", id, err)
		}
	}

	g := NewGateway(r)
	if _, err := g.resolve(DefaultConfiguration().WithProvider(ProviderOllama)); err != nil {
		t.Fatalf("ollama should not require an API key: %v", err)
	}
	_, err := g.resolve(DefaultConfiguration().WithProvider(ProviderCustom).WithAPIKey("k"))
	if !IsConfigError(err) {
		t.Fatalf("custom without base_url got %v want configuration error", err)
	}
}
