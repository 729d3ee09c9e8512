package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/Johnpittz/ecom/models"
	"github.com/Johnpittz/ecom/normalize"
)

// Card and per-field selectors, pre-compiled once. Each cascade is ordered
// strictest-first: the first matcher that hits an element wins. The lists
// track the selector sets the site has used across layout revisions.
var (
	cardMatcher = cascadia.MustCompile(
		`[data-testid="product"], .ui-search-result__wrapper, .ui-search-layout__item, li.ui-search-layout__item`)

	anchorMatchers = []cascadia.Selector{
		cascadia.MustCompile(`a[href*="mercadolivre.com"]`),
		cascadia.MustCompile(`a[href]`),
	}
	titleMatchers = []cascadia.Selector{
		cascadia.MustCompile(`[data-testid="product-title"]`),
		cascadia.MustCompile(`h2.ui-search-item__title`),
		cascadia.MustCompile(`.ui-search-item__title`),
	}
	imageMatchers = []cascadia.Selector{
		cascadia.MustCompile(`img[data-src]`),
		cascadia.MustCompile(`img[src]`),
	}
	priceMatchers = []cascadia.Selector{
		cascadia.MustCompile(`.andes-money-amount__fraction`),
		cascadia.MustCompile(`[data-testid="price"]`),
		cascadia.MustCompile(`span.ui-search-price__part`),
	}
)

// cardStage resolves product cards structurally: match card containers, then
// per card resolve anchor, title, image and price through cascading selector
// fallbacks. Stops once the result cap is reached.
type cardStage struct{}

func (cardStage) Name() string { return "cards" }

func (cardStage) Run(body string) []models.ProductRecord {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var records []models.ProductRecord
	doc.FindMatcher(cardMatcher).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		raw := models.RawRecord{}

		if a := firstMatch(card, anchorMatchers); a != nil {
			raw.Link, _ = a.Attr("href")
		}
		if el := firstMatch(card, titleMatchers); el != nil {
			raw.Title = strings.TrimSpace(el.Text())
		}
		if img := firstMatch(card, imageMatchers); img != nil {
			if src, ok := img.Attr("data-src"); ok && src != "" {
				raw.Thumbnail = src
			} else if src, ok := img.Attr("src"); ok {
				raw.Thumbnail = src
			}
		}
		if el := firstMatch(card, priceMatchers); el != nil {
			raw.PriceText = strings.TrimSpace(el.Text())
		}

		if rec, ok := normalize.Record(raw); ok {
			records = append(records, rec)
		}
		return len(records) < models.MaxRecords
	})

	return records
}

// firstMatch returns the first element within s matched by any of the
// cascading matchers, or nil when none hit.
func firstMatch(s *goquery.Selection, matchers []cascadia.Selector) *goquery.Selection {
	for _, m := range matchers {
		if found := s.FindMatcher(m); found.Length() > 0 {
			return found.First()
		}
	}
	return nil
}
