package fetch

import (
	"context"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/Johnpittz/ecom/models"
)

// LocalRenderer fetches a page through a headless browser, executing
// client-side script locally. It substitutes for the proxy's js_render mode
// when no proxy is configured and local rendering is enabled.
//
// The browser launches lazily on first use and is shared by all requests;
// each request gets its own tab.
type LocalRenderer struct {
	mu      sync.Mutex
	browser *rod.Browser
}

// NewLocalRenderer creates a renderer. No browser is launched until the
// first Render call.
func NewLocalRenderer() *LocalRenderer {
	return &LocalRenderer{}
}

// Render navigates url in a fresh tab with stealth evasions installed and
// returns the post-render status code and HTML. Failures come back tagged
// models.ErrCodeTransport so the retrieval layer treats them like any other
// fetch failure.
func (r *LocalRenderer) Render(ctx context.Context, url string, headers map[string]string) (int, string, error) {
	browser, err := r.acquire()
	if err != nil {
		return 0, "", models.NewSearchError(models.ErrCodeTransport, "launch browser", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return 0, "", models.NewSearchError(models.ErrCodeTransport, "open page", err)
	}
	defer func() { _ = page.Close() }()

	// Stealth and extra headers must be installed before navigation.
	if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
		return 0, "", models.NewSearchError(models.ErrCodeTransport, "stealth injection", err)
	}
	if len(headers) > 0 {
		_ = proto.NetworkSetExtraHTTPHeaders{Headers: toHeadersMap(headers)}.Call(page)
	}

	p := page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return 0, "", models.NewSearchError(models.ErrCodeTransport, "navigate", err)
	}
	// Best-effort settle: proceed with the current DOM if it never converges.
	_ = p.WaitDOMStable(300*time.Millisecond, 0.1)

	status := 0
	if res, err := p.Eval(`() => {
		try {
			const entries = performance.getEntriesByType("navigation");
			if (entries.length > 0) return entries[0].responseStatus || 0;
		} catch(e) {}
		return 0;
	}`); err == nil {
		status = res.Value.Int()
	}
	if status == 0 {
		status = 200
	}

	html, err := p.HTML()
	if err != nil {
		return 0, "", models.NewSearchError(models.ErrCodeTransport, "extract rendered HTML", err)
	}
	return status, html, nil
}

// Close kills the launched browser, if any.
func (r *LocalRenderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser != nil {
		_ = r.browser.Close()
		r.browser = nil
	}
}

func (r *LocalRenderer) acquire() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser != nil {
		return r.browser, nil
	}
	controlURL, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return nil, err
	}
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, err
	}
	r.browser = browser
	return browser, nil
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}
