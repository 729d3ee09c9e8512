package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Johnpittz/ecom/detail"
	"github.com/Johnpittz/ecom/extract"
	"github.com/Johnpittz/ecom/models"
	"github.com/Johnpittz/ecom/retrieval"
	"github.com/Johnpittz/ecom/seo"
)

// SearchHTML returns a handler for GET /meli/search_html — the public
// search-page route backed by the extraction pipeline.
//
// Flow:
//  1. Retrieve through the two-shot HTML strategy.
//  2. No attempt carries a complete HTML document → total fetch failure,
//     answered with the full trace for diagnosis.
//  3. Extraction pipeline over the selected body; zero records from every
//     stage → "fetched but unparseable" with trace + body preview.
//  4. Optional enrichment (?enrich=1): top result's detail page distilled
//     into the prompt context.
//  5. SEO copy (placeholder on failure) + 200.
func SearchHTML(strategy *retrieval.HTMLStrategy, pipeline *extract.Pipeline, seoClient *seo.Client, details *detail.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, models.FailureResponse{Message: "missing query parameter q"})
			return
		}

		trace, _ := strategy.Fetch(c.Request.Context(), query)

		attempt, ok := trace.SelectHTML()
		if !ok {
			c.JSON(http.StatusOK, models.HTMLFailureResponse{
				Message: "could not fetch a complete HTML document",
				Tries:   trace,
			})
			return
		}

		records, _ := pipeline.Extract(attempt.HTML)
		if len(records) == 0 {
			c.JSON(http.StatusOK, models.HTMLFailureResponse{
				Message:     "fetched but unparseable: no extraction stage produced a record",
				Tries:       trace,
				HTMLPreview: attempt.RawPreview,
			})
			return
		}

		snippet := ""
		if c.Query("enrich") == "1" {
			snippet = details.Snippet(c.Request.Context(), records[0].Link)
		}

		c.JSON(http.StatusOK, models.SearchResponse{
			Query:      query,
			Results:    records,
			SEOText:    generateSEO(c, seoClient, query, records, snippet),
			TriesCount: len(trace),
		})
	}
}
