package extract

import (
	"github.com/Johnpittz/ecom/models"
	"github.com/Johnpittz/ecom/normalize"
)

// rawScanStage is the last resort: the same permalink/title/price zip as the
// state-blob stage, but over the whole document instead of a marker-bounded
// blob. Not precise, but it salvages results when the layout changes under
// every structural technique at once.
type rawScanStage struct{}

func (rawScanStage) Name() string { return "raw-scan" }

func (rawScanStage) Run(body string) []models.ProductRecord {
	links := rePermalink.FindAllStringSubmatch(body, -1)
	titles := reTitle.FindAllStringSubmatch(body, -1)
	prices := rePrice.FindAllStringSubmatch(body, -1)

	if len(links) > models.MaxRecords {
		links = links[:models.MaxRecords]
	}

	var records []models.ProductRecord
	for i, link := range links {
		raw := models.RawRecord{Link: link[1]}
		if i < len(titles) {
			raw.Title = titles[i][1]
		}
		if i < len(prices) {
			raw.PriceText = prices[i][1]
		}
		if rec, ok := normalize.Record(raw); ok {
			records = append(records, rec)
		}
	}
	return records
}
