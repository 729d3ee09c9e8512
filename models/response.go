package models

// SearchResponse is the success shape for GET /meli/search and
// GET /meli/search_html.
type SearchResponse struct {
	Query   string          `json:"query"`
	Results []ProductRecord `json:"results"`
	SEOText string          `json:"seo_text"`

	// TriesCount reports how many fetch attempts the HTML strategy made.
	// Zero for the JSON-endpoint route.
	TriesCount int `json:"tries_count,omitempty"`
}

// Diagnostic carries the raw evidence of a failed upstream exchange.
// The system never turns an upstream failure into a bare error string —
// the worst outcome is a descriptive message with this attached.
type Diagnostic struct {
	Status     int               `json:"status"`
	Target     string            `json:"target"`
	Headers    map[string]string `json:"headers,omitempty"`
	RawPreview string            `json:"raw_preview,omitempty"`
	Attempts   int               `json:"attempts,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// FailureResponse is the shape for upstream non-200 / non-JSON outcomes
// on the JSON-endpoint route.
type FailureResponse struct {
	Message    string      `json:"message"`
	Diagnostic *Diagnostic `json:"diagnostic,omitempty"`
}

// EmptyResultsResponse is the shape for a valid upstream JSON response
// that yielded zero normalized records.
type EmptyResultsResponse struct {
	Message     string `json:"message"`
	MeliStatus  int    `json:"meli_status"`
	MeliPreview string `json:"meli_preview"`
}

// HTMLFailureResponse is the shape for HTML-route failures: total fetch
// failure (Tries only) or fetched-but-unparseable (Tries + HTMLPreview).
type HTMLFailureResponse struct {
	Message     string         `json:"message"`
	Tries       RetrievalTrace `json:"tries"`
	HTMLPreview string         `json:"html_preview,omitempty"`
}

// ProductDetailResponse is the shape for GET /meli/product.
type ProductDetailResponse struct {
	URL                 string `json:"url"`
	Title               string `json:"title"`
	DescriptionMarkdown string `json:"description_markdown"`
}

// DebugEnvResponse echoes masked configuration for GET /debug/env.
type DebugEnvResponse struct {
	UseProxy         bool   `json:"use_proxy"`
	ProxyBasePreview string `json:"proxy_base_preview"`
	ProxyExtra       string `json:"proxy_extra"`
}
