// Package detail extracts a readable product description from a
// product-detail page: main-content extraction via readability, then
// Markdown conversion. Used to enrich the SEO prompt and to serve
// GET /meli/product.
package detail

import (
	"context"
	"fmt"
	"log/slog"
	nurl "net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	readability "github.com/go-shiori/go-readability"

	"github.com/Johnpittz/ecom/fetch"
	"github.com/Johnpittz/ecom/models"
	"github.com/Johnpittz/ecom/normalize"
	"github.com/Johnpittz/ecom/proxy"
)

// maxSnippetLen bounds the Markdown handed to the prompt composer. Product
// pages bury the description under reviews and recommendations; past this
// size the extra tokens stop improving the copy.
const maxSnippetLen = 4000

// Service fetches product pages and distills their description.
type Service struct {
	fetcher     *fetch.Fetcher
	builder     *proxy.Builder
	mdConverter *converter.Converter
}

// NewService creates the detail service. The Markdown converter is built
// once and reused across requests (goroutine-safe).
func NewService(f *fetch.Fetcher, b *proxy.Builder) *Service {
	return &Service{
		fetcher: f,
		builder: b,
		mdConverter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
	}
}

// Describe fetches pageURL (through the proxy when configured) and returns
// the page title and the main content as Markdown.
func (s *Service) Describe(ctx context.Context, pageURL string) (string, string, error) {
	if !normalize.IsProductLink(pageURL) {
		return "", "", models.NewSearchError(models.ErrCodeInvalidInput,
			"not a product-detail link", nil)
	}

	target := s.builder.BuildTarget(pageURL, nil)
	status, body, _, err := s.fetcher.GetText(ctx, target, nil)
	if err != nil {
		return "", "", err
	}
	if status >= 400 {
		return "", "", models.NewSearchError(models.ErrCodeUpstreamBlocked,
			fmt.Sprintf("product page returned %d", status), nil)
	}

	parsedURL, err := nurl.Parse(pageURL)
	if err != nil {
		return "", "", models.NewSearchError(models.ErrCodeInvalidInput, "invalid product URL", err)
	}

	article, err := readability.FromReader(strings.NewReader(body), parsedURL)
	if err != nil {
		return "", "", models.NewSearchError(models.ErrCodeUnparseableBody,
			"readability extraction failed", err)
	}

	md, err := s.mdConverter.ConvertString(article.Content, converter.WithDomain(pageURL))
	if err != nil {
		return "", "", models.NewSearchError(models.ErrCodeUnparseableBody,
			"markdown conversion failed", err)
	}
	return article.Title, md, nil
}

// Snippet is the best-effort variant used for prompt enrichment: any
// failure yields an empty snippet, never an error.
func (s *Service) Snippet(ctx context.Context, pageURL string) string {
	_, md, err := s.Describe(ctx, pageURL)
	if err != nil {
		slog.Debug("detail enrichment skipped", "url", pageURL, "error", err)
		return ""
	}
	return models.Preview(md, maxSnippetLen)
}
