// ecom-mcp exposes the ecom HTTP API as MCP tools over stdio, so agents can
// search the marketplace and request SEO copy without speaking HTTP.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// searchResponse mirrors the ecom API success shape.
type searchResponse struct {
	Query   string `json:"query"`
	Results []struct {
		Title     string `json:"title"`
		Price     *int   `json:"price"`
		Link      string `json:"link"`
		Thumbnail string `json:"thumbnail"`
	} `json:"results"`
	SEOText string `json:"seo_text"`
	Message string `json:"message"`
}

// productResponse mirrors the ecom API product-detail shape.
type productResponse struct {
	URL                 string `json:"url"`
	Title               string `json:"title"`
	DescriptionMarkdown string `json:"description_markdown"`
	Message             string `json:"message"`
}

func main() {
	apiURL := os.Getenv("ECOM_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}

	s := server.NewMCPServer(
		"ecom",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	searchTool := mcp.NewTool("search_products",
		mcp.WithDescription("Search MercadoLivre for a query and return structured product listings (title, price, link, thumbnail) plus generated SEO copy."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The product search query, e.g. 'iphone 13'"),
		),
		mcp.WithString("source",
			mcp.Description("Upstream source: 'api' (official JSON endpoint, default) or 'html' (public search page with the extraction pipeline)"),
			mcp.Enum("api", "html"),
		),
	)
	s.AddTool(searchTool, handleSearch(apiURL))

	productTool := mcp.NewTool("describe_product",
		mcp.WithDescription("Fetch one product-detail page and return its title and main description as Markdown."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The absolute product-detail URL"),
		),
	)
	s.AddTool(productTool, handleProduct(apiURL))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleSearch(apiURL string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := request.GetString("query", "")
		if query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}

		path := "/meli/search"
		if request.GetString("source", "api") == "html" {
			path = "/meli/search_html"
		}

		body, err := apiGet(ctx, client, apiURL+path+"?q="+url.QueryEscape(query))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}

		var parsed searchResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		if parsed.Message != "" && len(parsed.Results) == 0 {
			return mcp.NewToolResultError(parsed.Message), nil
		}

		return mcp.NewToolResultText(string(body)), nil
	}
}

func handleProduct(apiURL string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pageURL := request.GetString("url", "")
		if pageURL == "" {
			return mcp.NewToolResultError("url is required"), nil
		}

		body, err := apiGet(ctx, client, apiURL+"/meli/product?url="+url.QueryEscape(pageURL))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}

		var parsed productResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		if parsed.Message != "" {
			return mcp.NewToolResultError(parsed.Message), nil
		}

		return mcp.NewToolResultText(parsed.Title + "\n\n" + parsed.DescriptionMarkdown), nil
	}
}

// apiGet sends a GET request to the ecom API and returns the response body.
func apiGet(ctx context.Context, client *http.Client, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}
