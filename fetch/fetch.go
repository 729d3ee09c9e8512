// Package fetch performs the outbound HTTP round trips. The transport
// carries a Chrome TLS fingerprint so plain requests don't announce
// themselves as a Go client to TLS-fingerprinting anti-bot layers.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	tls "github.com/refraction-networking/utls"
	"golang.org/x/time/rate"

	"github.com/Johnpittz/ecom/config"
	"github.com/Johnpittz/ecom/models"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// maxBody caps how much of a response body is read (10 MB).
const maxBody = 10 << 20

// chromeH1Spec is a Chrome-like TLS ClientHello with ALPN forced to http/1.1
// only. Computed once at init time and reused for every connection.
var chromeH1Spec tls.ClientHelloSpec

func init() {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		return
	}
	// Replace h2 with http/1.1 only in the ALPN extension so the server
	// never negotiates HTTP/2 (which Go's http.Transport cannot handle
	// over a utls connection).
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	chromeH1Spec = spec
}

// Fetcher issues single GET requests and hands back (status, body text,
// response headers) as one unit. HTTP-level failures are ordinary return
// values; only transport-level failures (timeout, refused connection, DNS)
// come back as an error, tagged models.ErrCodeTransport so callers can
// decide whether to retry.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher creates a Fetcher from the fetch configuration. The Chrome
// TLS transport is built once and reused; the per-attempt deadline comes
// from cfg.Timeout. When cfg.OutboundRPS > 0 a process-wide token bucket
// paces requests toward the marketplace.
func NewFetcher(cfg config.FetchConfig) *Fetcher {
	transport := &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{Timeout: 10 * time.Second}
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			host, _, _ := net.SplitHostPort(addr)
			tlsConn := tls.UClient(conn, &tls.Config{ServerName: host}, tls.HelloCustom)
			if err := tlsConn.ApplyPreset(&chromeH1Spec); err != nil {
				conn.Close()
				return nil, fmt.Errorf("fetch: apply tls spec: %w", err)
			}
			if err := tlsConn.HandshakeContext(ctx); err != nil {
				conn.Close()
				return nil, err
			}
			return tlsConn, nil
		},
		ForceAttemptHTTP2: false,
	}

	var limiter *rate.Limiter
	if cfg.OutboundRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.OutboundRPS), 1)
	}

	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		limiter: limiter,
	}
}

// GetText performs one GET and decodes the body as text regardless of the
// declared content type. Status codes are never errors here — the retrieval
// strategies inspect them.
func (f *Fetcher) GetText(ctx context.Context, url string, headers map[string]string) (int, string, map[string]string, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return 0, "", nil, models.NewSearchError(models.ErrCodeTransport, "outbound limiter wait", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, "", nil, models.NewSearchError(models.ErrCodeInvalidInput, "build request", err)
	}

	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, "", nil, models.NewSearchError(models.ErrCodeTransport, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return 0, "", nil, models.NewSearchError(models.ErrCodeTransport, "read body", err)
	}

	return resp.StatusCode, string(body), flattenHeaders(resp.Header), nil
}

// IsTimeout reports whether err is a timeout-class transport failure —
// the only kind the JSON-endpoint strategy retries.
func IsTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// flattenHeaders keeps the first value of each response header.
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}
