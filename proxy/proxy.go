// Package proxy wraps target URLs inside a third-party fetching/rendering
// proxy's URL scheme (ZenRows-style: a base ending in "...&url=" plus an
// optional extra query fragment).
package proxy

import (
	"net/url"

	"github.com/Johnpittz/ecom/config"
)

// Builder rewrites target URLs through the configured proxy.
// With no proxy configured it is the identity function.
type Builder struct {
	cfg config.ProxyConfig
}

// NewBuilder creates a Builder from the proxy configuration.
func NewBuilder(cfg config.ProxyConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Enabled reports whether a proxy base is configured.
func (b *Builder) Enabled() bool { return b.cfg.Enabled() }

// BuildTarget returns the effective URL to fetch for rawURL.
//
// Without a proxy, rawURL is returned unchanged. With one, the result is
// base + urlencode(rawURL) + extra, then "&" + encoded force params when
// given. Force params are appended even when extra already carries the same
// key; duplicates are left for the proxy server to resolve (last wins on
// every proxy observed so far).
func (b *Builder) BuildTarget(rawURL string, force url.Values) string {
	if !b.cfg.Enabled() {
		return rawURL
	}
	target := b.cfg.Base + url.QueryEscape(rawURL) + b.cfg.Extra
	if len(force) > 0 {
		target += "&" + force.Encode()
	}
	return target
}
