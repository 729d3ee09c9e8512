package normalize

import "strings"

// noiseTitles lists strings that show up in title position on listing pages
// but are not products: ad markers, related-searches boxes, summary widgets.
// Both the pt-BR strings the site renders and the English variants seen in
// proxy-rendered output are covered.
var noiseTitles = map[string]struct{}{
	"advertisement":          {},
	"publicidade":            {},
	"anúncio":                {},
	"patrocinado":            {},
	"related searches":       {},
	"buscas relacionadas":    {},
	"related questions":      {},
	"perguntas relacionadas": {},
	"resumo":                 {},
	"summary":                {},
}

// IsNoiseTitle reports whether the trimmed title equals a known non-product
// string. Comparison is case-insensitive; noise is rejected regardless of
// which extraction stage produced it.
func IsNoiseTitle(title string) bool {
	_, ok := noiseTitles[strings.ToLower(strings.TrimSpace(title))]
	return ok
}

// CleanTitle trims a raw title. Returns the empty string for noise titles
// so callers can treat "no title" and "noise title" the same way.
func CleanTitle(title string) string {
	t := strings.TrimSpace(title)
	if t == "" || IsNoiseTitle(t) {
		return ""
	}
	return t
}
