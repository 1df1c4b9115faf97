package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/floorsight/floorplan-api/internal/imaging"
	"github.com/floorsight/floorplan-api/internal/upstream"
)

// apiVersion is the protocol version sent with every request.
const apiVersion = "2023-06-01"

// defaultModel is used when no model is configured.
const defaultModel = "claude-sonnet-4-20250514"

// ErrNotConfigured is returned when the client has no API key. Callers
// that can degrade gracefully should treat it as "no vision available"
// rather than a hard failure.
var ErrNotConfigured = errors.New("vision client not configured: missing API key")

// Options configure a vision Client.
type Options struct {
	BaseURL string        // API endpoint, default https://api.anthropic.com
	APIKey  string        // empty key leaves the client unconfigured
	Model   string        // model identifier, default claude-sonnet-4-20250514
	Timeout time.Duration // per-request timeout, default 60s
}

// Client calls a vision-capable LLM over the Messages API to read
// floor plans and room photos.
//
// Client is safe for concurrent use.
type Client struct {
	hc      *http.Client
	baseURL string
	apiKey  string
	model   string
}

// New creates a vision client. A client without an API key is valid
// but every call on it returns ErrNotConfigured.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.anthropic.com"
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &Client{
		hc:      &http.Client{Timeout: opts.Timeout},
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		model:   opts.Model,
	}
}

// Configured reports whether the client has an API key and can make
// requests.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Messages API wire format (request).
type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

// Messages API wire format (response, minimal fields).
type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Complete sends a text-only prompt and returns the model's reply with
// any surrounding markdown fence removed.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return c.invoke(ctx, []contentBlock{{Type: "text", Text: prompt}}, maxTokens)
}

// CompleteWithImage sends an image alongside a text prompt. The image
// media type is detected from the bytes; undecodable input is still
// sent, labeled as PNG, and left for the model to reject.
func (c *Client) CompleteWithImage(ctx context.Context, prompt string, image []byte, maxTokens int) (string, error) {
	mediaType := "image/png"
	if _, format, err := imaging.Decode(image); err == nil {
		mediaType = imaging.MediaType(format)
	}

	blocks := []contentBlock{
		{Type: "image", Source: &imageSource{
			Type:      "base64",
			MediaType: mediaType,
			Data:      base64.StdEncoding.EncodeToString(image),
		}},
		{Type: "text", Text: prompt},
	}
	return c.invoke(ctx, blocks, maxTokens)
}

func (c *Client) invoke(ctx context.Context, blocks []contentBlock, maxTokens int) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(messagesRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: blocks}},
	})
	if err != nil {
		return "", fmt.Errorf("encode vision request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build vision request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("vision request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", upstream.ErrorFrom("vision", resp)
	}

	var mr messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return "", fmt.Errorf("decode vision response: %w", err)
	}

	for _, block := range mr.Content {
		if block.Type == "text" && block.Text != "" {
			return stripFences(strings.TrimSpace(block.Text)), nil
		}
	}
	return "", fmt.Errorf("vision response contained no text content")
}

var (
	fenceOpen  = regexp.MustCompile("^```\\w*\n?")
	fenceClose = regexp.MustCompile("\n?```$")
)

// stripFences removes a surrounding markdown code fence, which models
// sometimes emit despite instructions to return bare JSON.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = fenceOpen.ReplaceAllString(text, "")
	return fenceClose.ReplaceAllString(text, "")
}
