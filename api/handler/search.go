package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Johnpittz/ecom/models"
	"github.com/Johnpittz/ecom/retrieval"
	"github.com/Johnpittz/ecom/seo"
)

// Search returns a handler for GET /meli/search — the official JSON
// endpoint route.
//
// Flow:
//  1. Retrieve through the JSON-endpoint strategy (bounded retries inside).
//  2. Non-200 or unreachable → message + diagnostic with the full evidence.
//  3. Non-JSON body → same shape, flagged as invalid JSON (not retried).
//  4. Zero normalized records → message + upstream status and preview.
//  5. Records → SEO copy (placeholder on any generation failure) + 200.
func Search(strategy *retrieval.APIStrategy, seoClient *seo.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, models.FailureResponse{Message: "missing query parameter q"})
			return
		}

		trace, err := strategy.Fetch(c.Request.Context(), query)
		if err != nil {
			c.JSON(http.StatusOK, models.FailureResponse{
				Message:    "search API unreachable",
				Diagnostic: diagnosticFromTrace(trace, err.Error()),
			})
			return
		}

		last := trace[len(trace)-1]
		if last.Status != http.StatusOK {
			c.JSON(http.StatusOK, models.FailureResponse{
				Message:    "search API returned an error status",
				Diagnostic: diagnosticFromTrace(trace, ""),
			})
			return
		}

		records, ok := retrieval.ParseSearchAPI(last.HTML)
		if !ok {
			c.JSON(http.StatusOK, models.FailureResponse{
				Message:    "search API body is not valid JSON",
				Diagnostic: diagnosticFromTrace(trace, "invalid JSON body"),
			})
			return
		}

		if len(records) == 0 {
			c.JSON(http.StatusOK, models.EmptyResultsResponse{
				Message:     "search API returned no results",
				MeliStatus:  last.Status,
				MeliPreview: last.RawPreview,
			})
			return
		}

		c.JSON(http.StatusOK, models.SearchResponse{
			Query:   query,
			Results: records,
			SEOText: generateSEO(c, seoClient, query, records, ""),
		})
	}
}

// generateSEO produces the SEO copy, downgrading every failure to the
// placeholder string. A failed generation never fails the request.
func generateSEO(c *gin.Context, client *seo.Client, query string, records []models.ProductRecord, snippet string) string {
	text, err := client.Generate(c.Request.Context(), seo.MakePrompt(query, records, snippet))
	if err != nil {
		slog.Warn("SEO generation unavailable", "query", query, "error", err)
		return seo.DisabledPlaceholder
	}
	return text
}

// diagnosticFromTrace condenses a retrieval trace into the diagnostic shape.
func diagnosticFromTrace(trace models.RetrievalTrace, errMsg string) *models.Diagnostic {
	d := &models.Diagnostic{Attempts: len(trace), Error: errMsg}
	if len(trace) > 0 {
		last := trace[len(trace)-1]
		d.Status = last.Status
		d.Target = last.Target
		d.Headers = last.Headers
		d.RawPreview = last.RawPreview
		if errMsg == "" {
			d.Error = last.Error
		}
	}
	return d
}
