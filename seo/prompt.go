// Package seo composes the generation request for SEO copy and calls the
// Google generative-language API.
package seo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Johnpittz/ecom/models"
)

// DisabledPlaceholder is returned in seo_text when no generation credential
// is configured or the generation call fails. Requests never fail over copy.
const DisabledPlaceholder = "(descrição SEO indisponível)"

// MakePrompt builds the Portuguese SEO brief from the query and the
// normalized records. detailSnippet, when non-empty, is appended as extra
// product context (Markdown from the top result's detail page).
func MakePrompt(query string, records []models.ProductRecord, detailSnippet string) string {
	items, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		items = []byte("[]")
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Gere uma descrição persuasiva e otimizada para SEO em português
para "%s", com base nesses itens (título, preço, link):

%s

Entregue:
- Título SEO (≤60 caracteres)
- Meta description (≤155 caracteres)
- 3 bullets de benefícios
- 3 FAQs curtas
`, query, items)

	if detailSnippet != "" {
		b.WriteString("\nContexto adicional do produto mais relevante:\n\n")
		b.WriteString(detailSnippet)
		b.WriteString("\n")
	}
	return b.String()
}
