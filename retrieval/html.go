package retrieval

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/Johnpittz/ecom/config"
	"github.com/Johnpittz/ecom/fetch"
	"github.com/Johnpittz/ecom/models"
	"github.com/Johnpittz/ecom/proxy"
)

// shortBodyThreshold: a search-results page under this many bytes is an
// anti-bot interstitial or an error shell, never a real listing.
const shortBodyThreshold = 1000

// Renderer fetches a page with client-side script executed locally.
// Optional — nil means no local rendering is available.
type Renderer interface {
	Render(ctx context.Context, url string, headers map[string]string) (int, string, error)
}

// HTMLStrategy fetches the public search-results page with a cheap two-shot
// rendering-mode fallback: some anti-bot defenses block rendered requests,
// others block static ones, so when the first attempt comes back blocked or
// implausibly short we retry once with the opposite js_render flag rather
// than speculatively paying for both on every call.
type HTMLStrategy struct {
	fetcher  *fetch.Fetcher
	renderer Renderer
	builder  *proxy.Builder
	upstream config.UpstreamConfig
}

// NewHTMLStrategy creates the public-HTML strategy. renderer may be nil.
func NewHTMLStrategy(f *fetch.Fetcher, r Renderer, b *proxy.Builder, upstream config.UpstreamConfig) *HTMLStrategy {
	return &HTMLStrategy{fetcher: f, renderer: r, builder: b, upstream: upstream}
}

// Fetch performs at most two attempts and returns the full trace in order.
// It never returns an error: a total failure is visible in the trace (no
// attempt carries a usable body) and the caller reports it with the trace
// attached.
func (s *HTMLStrategy) Fetch(ctx context.Context, query string) (models.RetrievalTrace, error) {
	raw := s.upstream.ListBase + "/" + url.QueryEscape(query)

	var trace models.RetrievalTrace

	// Attempt 1: rendered through the proxy when one is configured;
	// otherwise the raw URL (through the local renderer when enabled).
	if s.builder.Enabled() {
		trace = append(trace, s.attempt(ctx, s.builder.BuildTarget(raw, url.Values{"js_render": {"true"}})))
	} else if s.renderer != nil {
		trace = append(trace, s.renderAttempt(ctx, raw))
	} else {
		trace = append(trace, s.attempt(ctx, raw))
	}

	// Attempt 2: opposite rendering mode, proxy only. Without a proxy there
	// is no second attempt regardless of the first one's outcome.
	first := trace[0]
	if (first.Status >= 400 || len(first.HTML) < shortBodyThreshold) && s.builder.Enabled() {
		slog.Info("first HTML attempt blocked or short, flipping render mode",
			"status", first.Status, "body_len", len(first.HTML))
		trace = append(trace, s.attempt(ctx, s.builder.BuildTarget(raw, url.Values{"js_render": {"false"}})))
	}

	return trace, nil
}

func (s *HTMLStrategy) attempt(ctx context.Context, target string) models.FetchAttempt {
	status, body, headers, err := s.fetcher.GetText(ctx, target, nil)
	if err != nil {
		return models.FetchAttempt{Target: target, Error: err.Error()}
	}
	return models.NewFetchAttempt(status, target, headers, body)
}

func (s *HTMLStrategy) renderAttempt(ctx context.Context, target string) models.FetchAttempt {
	status, body, err := s.renderer.Render(ctx, target, nil)
	if err != nil {
		return models.FetchAttempt{Target: target, Error: err.Error()}
	}
	return models.NewFetchAttempt(status, target, nil, body)
}
