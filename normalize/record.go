package normalize

import "github.com/Johnpittz/ecom/models"

// Record converts a raw extraction candidate into a canonical ProductRecord.
// The boolean is false when the candidate must be dropped: empty or noise
// title, or a link that is not a genuine product-detail link.
func Record(raw models.RawRecord) (models.ProductRecord, bool) {
	title := CleanTitle(raw.Title)
	if title == "" {
		return models.ProductRecord{}, false
	}

	link := NormalizeLink(raw.Link)
	if link == "" || !IsProductLink(link) {
		return models.ProductRecord{}, false
	}

	return models.ProductRecord{
		Title:     title,
		Price:     PriceToNumber(raw.PriceText),
		Link:      link,
		Thumbnail: NormalizeLink(raw.Thumbnail),
	}, true
}
