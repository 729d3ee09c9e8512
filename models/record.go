package models

// MaxRecords caps every extracted result list. Listing pages routinely carry
// 50+ cards; anything past the first dozen is noise for SEO copy.
const MaxRecords = 12

// ProductRecord is the canonical output unit: one product listing extracted
// from a marketplace search result, after normalization.
type ProductRecord struct {
	// Title is the trimmed listing title. Never empty, never a known
	// noise string (see normalize.IsNoiseTitle).
	Title string `json:"title"`

	// Price is the whole-unit numeric price with all separators stripped.
	// Nil when the source carried no parseable price.
	Price *int `json:"price"`

	// Link is the absolute product-detail URL. It has passed
	// normalize.IsProductLink — category, ad and search links are rejected.
	Link string `json:"link"`

	// Thumbnail is the listing image URL, de-escaped. Empty when absent;
	// not validated beyond presence.
	Thumbnail string `json:"thumbnail,omitempty"`
}

// RawRecord is a candidate produced by one extraction stage before
// normalization and filtering. All fields are as found in the document.
type RawRecord struct {
	Title     string
	PriceText string
	Link      string
	Thumbnail string
}
