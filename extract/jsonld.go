package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Johnpittz/ecom/models"
	"github.com/Johnpittz/ecom/normalize"
)

// reBraceBlock matches brace-delimited sub-objects inside a script block
// that failed whole-document JSON parsing (the site sometimes concatenates
// multiple JSON payloads into one script element).
var reBraceBlock = regexp.MustCompile(`(?s)\{.*?\}`)

// jsonLDStage walks the document's application/ld+json script blocks looking
// for an ItemList and extracting name/url/offers.price per item. Malformed
// individual blocks are skipped; a block that fails whole-parse is retried
// as independent brace-delimited sub-objects.
type jsonLDStage struct{}

func (jsonLDStage) Name() string { return "json-ld" }

func (jsonLDStage) Run(body string) []models.ProductRecord {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var records []models.ProductRecord
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		txt := strings.TrimSpace(s.Text())
		if txt == "" {
			return true
		}

		var data any
		if err := json.Unmarshal([]byte(txt), &data); err != nil {
			// Multiple concatenated JSONs: try brace-delimited blocks
			// independently.
			for _, block := range reBraceBlock.FindAllString(txt, -1) {
				var sub any
				if json.Unmarshal([]byte(block), &sub) != nil {
					continue
				}
				records = appendItemList(records, sub)
				if len(records) >= models.MaxRecords {
					return false
				}
			}
			return true
		}

		records = appendItemList(records, data)
		return len(records) < models.MaxRecords
	})

	return capRecords(records)
}

// appendItemList extracts ItemList entries from a parsed JSON-LD value and
// appends the candidates that survive normalization.
func appendItemList(records []models.ProductRecord, data any) []models.ProductRecord {
	obj, ok := data.(map[string]any)
	if !ok {
		return records
	}
	_, hasList := obj["itemListElement"]
	if !hasList && obj["@type"] != "ItemList" {
		return records
	}

	elements, _ := obj["itemListElement"].([]any)
	for _, el := range elements {
		if len(records) >= models.MaxRecords {
			break
		}
		elObj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		item, ok := elObj["item"].(map[string]any)
		if !ok {
			continue
		}

		raw := models.RawRecord{
			Title: stringField(item, "name"),
			Link:  stringField(item, "url"),
		}
		if offers, ok := item["offers"].(map[string]any); ok {
			if price, ok := offers["price"]; ok && price != nil {
				raw.PriceText = fmt.Sprint(price)
			}
		}

		if rec, ok := normalize.Record(raw); ok {
			records = append(records, rec)
		}
	}
	return records
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}
