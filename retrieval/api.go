package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Johnpittz/ecom/config"
	"github.com/Johnpittz/ecom/fetch"
	"github.com/Johnpittz/ecom/models"
	"github.com/Johnpittz/ecom/normalize"
	"github.com/Johnpittz/ecom/proxy"
)

// retryInitialDelay and retryMultiplier produce the 1.5s, 3s delay sequence
// between the up-to-3 attempts. No jitter: the upstream is a public API, not
// a fleet we need to de-synchronize against.
const (
	retryInitialDelay = 1500 * time.Millisecond
	retryMultiplier   = 2
	maxRetries        = 2 // attempts = 1 + maxRetries
)

// APIStrategy fetches the official search JSON endpoint. Timeout-class
// transport failures are retried with backoff; anything else gets exactly
// one attempt.
type APIStrategy struct {
	fetcher  *fetch.Fetcher
	builder  *proxy.Builder
	upstream config.UpstreamConfig
}

// NewAPIStrategy creates the JSON-endpoint strategy.
func NewAPIStrategy(f *fetch.Fetcher, b *proxy.Builder, upstream config.UpstreamConfig) *APIStrategy {
	return &APIStrategy{fetcher: f, builder: b, upstream: upstream}
}

// Fetch performs the retrieval. The returned trace records every attempt,
// including transport failures (Status 0 with the error message). A non-nil
// error means no attempt produced an HTTP response at all.
func (s *APIStrategy) Fetch(ctx context.Context, query string) (models.RetrievalTrace, error) {
	raw := fmt.Sprintf("%s/sites/%s/search?q=%s&limit=%d",
		s.upstream.SearchAPIBase, s.upstream.Site, url.QueryEscape(query), models.MaxRecords)
	target := s.builder.BuildTarget(raw, nil)

	var trace models.RetrievalTrace

	operation := func() error {
		status, body, headers, err := s.fetcher.GetText(ctx, target, nil)
		if err != nil {
			trace = append(trace, models.FetchAttempt{Target: target, Error: err.Error()})
			if fetch.IsTimeout(err) {
				slog.Warn("search API attempt timed out, retrying",
					"attempt", len(trace), "target", target)
				return err
			}
			return backoff.Permanent(err)
		}
		trace = append(trace, models.NewFetchAttempt(status, target, headers, body))
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInitialDelay
	b.Multiplier = retryMultiplier
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0

	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, maxRetries), ctx)); err != nil {
		return trace, models.NewSearchError(models.ErrCodeTransport, "search API unreachable", err)
	}
	return trace, nil
}

// searchAPIBody is the slice of the official search response we consume.
type searchAPIBody struct {
	Results []struct {
		Title     string  `json:"title"`
		Price     float64 `json:"price"`
		Permalink string  `json:"permalink"`
		Thumbnail string  `json:"thumbnail"`
	} `json:"results"`
}

// ParseSearchAPI decodes the endpoint's JSON body into normalized records.
// A malformed body is not an error — it returns (nil, false) and the caller
// surfaces the raw preview as a diagnostic instead of retrying.
func ParseSearchAPI(body string) ([]models.ProductRecord, bool) {
	var parsed searchAPIBody
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return nil, false
	}

	records := make([]models.ProductRecord, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		title := normalize.CleanTitle(r.Title)
		if title == "" || r.Permalink == "" {
			continue
		}
		rec := models.ProductRecord{
			Title:     title,
			Link:      normalize.NormalizeLink(r.Permalink),
			Thumbnail: normalize.NormalizeLink(r.Thumbnail),
		}
		if r.Price > 0 {
			p := int(r.Price)
			rec.Price = &p
		}
		records = append(records, rec)
		if len(records) >= models.MaxRecords {
			break
		}
	}
	return records, true
}
