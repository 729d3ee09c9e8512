package normalize

import (
	"html"
	"net/url"
	"strings"
)

// marketplaceDomain is the locale-specific marketplace host suffix.
const marketplaceDomain = "mercadolivre.com.br"

// productSubdomain hosts product-detail pages directly.
const productSubdomain = "produto.mercadolivre.com.br"

// linkReplacer reverses the backslash-escaped slashes observed in the
// marketplace's embedded JSON blobs. HTML entities (&#47;, &#x2F;, &amp;)
// are handled by html.UnescapeString afterwards.
var linkReplacer = strings.NewReplacer(`\/`, `/`)

// NormalizeLink reverses known escape substitutions and HTML entities in a
// URL lifted from raw document text. Returns the empty string unchanged.
func NormalizeLink(raw string) string {
	if raw == "" {
		return ""
	}
	return html.UnescapeString(linkReplacer.Replace(raw))
}

// IsProductLink reports whether u points at a genuine product-detail page:
// the host belongs to the marketplace and either the path carries the
// product-ID marker ("MLB-...") or the host is the dedicated product
// subdomain. Category, ad and search-listing links fail this.
func IsProductLink(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	if host != marketplaceDomain && !strings.HasSuffix(host, "."+marketplaceDomain) {
		return false
	}
	if host == productSubdomain {
		return true
	}
	path := strings.ToUpper(parsed.Path)
	return strings.Contains(path, "MLB-") || strings.Contains(path, "/P/MLB")
}
