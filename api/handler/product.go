package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Johnpittz/ecom/detail"
	"github.com/Johnpittz/ecom/models"
)

// Product returns a handler for GET /meli/product — distills one
// product-detail page into a title and Markdown description.
func Product(details *detail.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		pageURL := c.Query("url")
		if pageURL == "" {
			c.JSON(http.StatusBadRequest, models.FailureResponse{Message: "missing query parameter url"})
			return
		}

		title, md, err := details.Describe(c.Request.Context(), pageURL)
		if err != nil {
			var se *models.SearchError
			if errors.As(err, &se) && se.Code == models.ErrCodeInvalidInput {
				c.JSON(http.StatusBadRequest, models.FailureResponse{Message: se.Message})
				return
			}
			c.JSON(http.StatusOK, models.FailureResponse{
				Message:    "could not describe product page",
				Diagnostic: &models.Diagnostic{Target: pageURL, Error: err.Error()},
			})
			return
		}

		c.JSON(http.StatusOK, models.ProductDetailResponse{
			URL:                 pageURL,
			Title:               title,
			DescriptionMarkdown: md,
		})
	}
}
