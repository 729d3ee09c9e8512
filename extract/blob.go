package extract

import (
	"regexp"
	"strings"

	"github.com/Johnpittz/ecom/models"
	"github.com/Johnpittz/ecom/normalize"
)

// blobMarkers are the embedded state-blob markers tried in order. The site
// has shipped all three naming schemes across redesigns.
var blobMarkers = []string{
	"__PRELOADED_STATE__",
	"__NEXT_DATA__",
	"window.__initialState",
}

// maxBlobLen bounds the brace-delimited substring scan. State blobs run to
// a few hundred KB; past 1 MB we are lost in the document, not in a blob.
const maxBlobLen = 1 << 20

var (
	rePermalink = regexp.MustCompile(`"permalink"\s*:\s*"([^"]+)"`)
	reTitle     = regexp.MustCompile(`"title"\s*:\s*"([^"]+)"`)
	rePrice     = regexp.MustCompile(`"price"\s*:\s*([0-9]+)`)
	reThumbnail = regexp.MustCompile(`"thumbnail"\s*:\s*"([^"]+)"`)
)

// stateBlobStage scans the raw body text for an embedded state blob and
// pattern-matches parallel field arrays inside it.
//
// The blob is not guaranteed to be well-formed JSON (it is frequently
// truncated or interleaved with template placeholders), so this is a flat
// regex scan over same-named keys, positionally zipped by occurrence index —
// not a structural parse.
type stateBlobStage struct{}

func (stateBlobStage) Name() string { return "state-blob" }

func (stateBlobStage) Run(body string) []models.ProductRecord {
	blob := findStateBlob(body)
	if blob == "" {
		return nil
	}
	return zipFieldMatches(blob)
}

// findStateBlob locates the first marker hit and returns the bounded
// brace-delimited substring that follows it. Empty when no marker matches
// or no opening brace follows one.
func findStateBlob(body string) string {
	for _, marker := range blobMarkers {
		at := strings.Index(body, marker)
		if at < 0 {
			continue
		}
		rest := body[at+len(marker):]
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			continue
		}
		return braceDelimited(rest[open:])
	}
	return ""
}

// braceDelimited returns the balanced {...} prefix of s, tracking string
// literals so braces inside values don't skew the count. If balance is never
// reached (truncated blob), the bounded prefix is returned as-is — the flat
// field scan tolerates a ragged tail.
func braceDelimited(s string) string {
	if len(s) > maxBlobLen {
		s = s[:maxBlobLen]
	}
	depth := 0
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return s
}

// zipFieldMatches scans text for permalink/title/price/thumbnail keys and
// zips them by occurrence index. Candidates failing the title blocklist or
// link predicate are dropped in-line.
func zipFieldMatches(text string) []models.ProductRecord {
	links := rePermalink.FindAllStringSubmatch(text, -1)
	titles := reTitle.FindAllStringSubmatch(text, -1)
	prices := rePrice.FindAllStringSubmatch(text, -1)
	thumbs := reThumbnail.FindAllStringSubmatch(text, -1)

	var records []models.ProductRecord
	for i, link := range links {
		raw := models.RawRecord{Link: link[1]}
		if i < len(titles) {
			raw.Title = titles[i][1]
		}
		if i < len(prices) {
			raw.PriceText = prices[i][1]
		}
		if i < len(thumbs) {
			raw.Thumbnail = thumbs[i][1]
		}
		if rec, ok := normalize.Record(raw); ok {
			records = append(records, rec)
			if len(records) >= models.MaxRecords {
				break
			}
		}
	}
	return records
}
