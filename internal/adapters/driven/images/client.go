// Package images provides an ImageGenerator adapter backed by the external
// image generation service.
package images

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stacklight-labs/sitesmith/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.ImageGenerator = (*Client)(nil)

// DefaultTimeout covers diffusion-model latency.
const DefaultTimeout = 90 * time.Second

// Config holds configuration for the image service client.
type Config struct {
	// BaseURL is the generation service endpoint.
	BaseURL string

	// Timeout is the request timeout (default: 90s).
	Timeout time.Duration
}

// Client calls the image generation service over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
}

// generateRequest is the service's /generate request format.
type generateRequest struct {
	Prompt string `json:"prompt"`
}

// generateResponse is the service's /generate response format.
type generateResponse struct {
	URL string `json:"url"`
}

// NewClient creates a new image service client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
	}
}

// GenerateImage returns the stored asset URL for a generated image.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call image service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("image service returned status %d: %s", resp.StatusCode, string(data))
	}

	var payload generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode image response: %w", err)
	}
	if payload.URL == "" {
		return "", fmt.Errorf("image service returned no asset URL")
	}

	return payload.URL, nil
}
