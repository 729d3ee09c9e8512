package models

import "strings"

// PreviewLen bounds the body prefix retained in FetchAttempt.RawPreview.
const PreviewLen = 600

// FetchAttempt records one HTTP round trip against an upstream source.
// The full body is retained (HTML field) so the extraction pipeline can pick
// the best attempt after the fact; RawPreview is what diagnostics expose.
type FetchAttempt struct {
	Status     int               `json:"status"`
	Target     string            `json:"target"`
	Headers    map[string]string `json:"headers"`
	RawPreview string            `json:"raw_preview"`
	HTML       string            `json:"-"`
	// Error is set when the attempt failed at the transport level
	// (Status is 0 in that case).
	Error string `json:"error,omitempty"`
}

// NewFetchAttempt builds an attempt, deriving RawPreview from the body.
func NewFetchAttempt(status int, target string, headers map[string]string, body string) FetchAttempt {
	return FetchAttempt{
		Status:     status,
		Target:     target,
		Headers:    headers,
		RawPreview: Preview(body, PreviewLen),
		HTML:       body,
	}
}

// RetrievalTrace is the ordered sequence of fetch attempts made while
// retrieving one document. Retained whole for diagnostics.
type RetrievalTrace []FetchAttempt

// SelectHTML scans the trace in reverse (favoring the later, more-escalated
// attempt) and returns the first attempt whose body looks like a complete
// HTML document. The boolean reports whether any attempt qualified.
func (t RetrievalTrace) SelectHTML() (FetchAttempt, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if strings.Contains(strings.ToLower(t[i].HTML), "<html") {
			return t[i], true
		}
	}
	return FetchAttempt{}, false
}

// Preview returns at most n leading bytes of s.
func Preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
