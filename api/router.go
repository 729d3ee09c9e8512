package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Johnpittz/ecom/api/handler"
	"github.com/Johnpittz/ecom/config"
	"github.com/Johnpittz/ecom/detail"
	"github.com/Johnpittz/ecom/extract"
	"github.com/Johnpittz/ecom/retrieval"
	"github.com/Johnpittz/ecom/seo"
)

// NewRouter creates a configured Gin engine with all routes.
//
// Every upstream failure is answered with HTTP 200 and a structured
// diagnostic payload (see models): the marketplace's behavior is adversarial
// and unpredictable, so best-effort degradation with evidence attached beats
// failing closed. Only malformed client input earns a 4xx.
func NewRouter(
	apiStrategy *retrieval.APIStrategy,
	htmlStrategy *retrieval.HTMLStrategy,
	pipeline *extract.Pipeline,
	seoClient *seo.Client,
	details *detail.Service,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/health")
	})
	r.GET("/health", handler.Health())
	r.GET("/debug/env", handler.DebugEnv(cfg.Proxy))

	meli := r.Group("/meli")
	meli.GET("/search", handler.Search(apiStrategy, seoClient))
	meli.GET("/search_html", handler.SearchHTML(htmlStrategy, pipeline, seoClient, details))
	meli.GET("/product", handler.Product(details))

	return r
}
