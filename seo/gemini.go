package seo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Johnpittz/ecom/config"
	"github.com/Johnpittz/ecom/models"
)

// defaultBaseURL is the Google generative-language REST origin.
const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client is a lightweight Gemini REST client. It uses net/http directly —
// no SDK needed for one generateContent call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient creates a Gemini client from the SEO configuration.
// Pass nil to use a default http.Client.
func NewClient(httpClient *http.Client, cfg config.SEOConfig) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}
}

// WithBaseURL overrides the API origin (tests point it at a stub server).
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

// Enabled reports whether a credential is configured.
func (c *Client) Enabled() bool { return c.apiKey != "" }

// generateRequest is the generateContent request body.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse is the minimal generateContent response we need.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the prompt and returns the generated text. Every failure
// path returns a models.ErrCodeGenerationFailure error; callers downgrade it
// to DisabledPlaceholder rather than failing the request.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", models.NewSearchError(models.ErrCodeGenerationFailure, "no generation credential configured", nil)
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", models.NewSearchError(models.ErrCodeGenerationFailure, "marshal request", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", models.NewSearchError(models.ErrCodeGenerationFailure, "create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", models.NewSearchError(models.ErrCodeGenerationFailure, "generation request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", models.NewSearchError(models.ErrCodeGenerationFailure, "read generation response", err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", models.NewSearchError(models.ErrCodeGenerationFailure, "parse generation response", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := parsed.Error.Message
		if msg == "" {
			msg = fmt.Sprintf("generation API returned %d", resp.StatusCode)
		}
		return "", models.NewSearchError(models.ErrCodeGenerationFailure, msg, nil)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", models.NewSearchError(models.ErrCodeGenerationFailure, "generation returned no candidates", nil)
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
