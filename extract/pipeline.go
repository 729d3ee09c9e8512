// Package extract turns a raw search-results document into product records.
//
// It applies an ordered sequence of strategies against the body — embedded
// state-blob scan, JSON-LD structured data, CSS card selectors, raw pattern
// scan — and returns the first strategy's output that yields at least one
// usable record. Looser strategies only run when stricter ones come up
// empty, so a layout change upstream degrades extraction quality gradually
// instead of breaking it.
package extract

import (
	"log/slog"

	"github.com/Johnpittz/ecom/models"
)

// stage is one extraction technique. Run returns the usable records it
// produced (already normalized and filtered), at most models.MaxRecords,
// in document order.
type stage interface {
	Name() string
	Run(body string) []models.ProductRecord
}

// Pipeline applies the fixed stage order to a document body.
type Pipeline struct {
	stages []stage
}

// NewPipeline creates the pipeline with its standard stage order.
func NewPipeline() *Pipeline {
	return &Pipeline{
		stages: []stage{
			stateBlobStage{},
			jsonLDStage{},
			cardStage{},
			rawScanStage{},
		},
	}
}

// Extract runs the stages in priority order and returns the first non-empty
// output plus the name of the stage that produced it. A stage that matched
// document structure but filtered every candidate out still falls through to
// the next stage — only usable records terminate the cascade. Empty output
// with stage "" means the body is unparseable by every technique.
func (p *Pipeline) Extract(body string) ([]models.ProductRecord, string) {
	for _, s := range p.stages {
		records := s.Run(body)
		if len(records) > 0 {
			slog.Debug("extraction stage produced records",
				"stage", s.Name(), "count", len(records))
			return records, s.Name()
		}
		slog.Debug("extraction stage empty, escalating", "stage", s.Name())
	}
	return nil, ""
}

// capRecords truncates records to the result cap, preserving order.
func capRecords(records []models.ProductRecord) []models.ProductRecord {
	if len(records) > models.MaxRecords {
		return records[:models.MaxRecords]
	}
	return records
}
