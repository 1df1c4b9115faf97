// Package raster calls the raster-to-vector service that converts a
// floor plan image into a colored room overlay.
//
// The service accepts a base64-encoded image and responds with JSON
// carrying a base64 overlay, possibly wrapped in a data URI and with
// its padding stripped. The client decodes that into an image.Image;
// compositing over the original plan is the annotate package's job.
package raster

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strings"
	"time"

	"github.com/floorsight/floorplan-api/internal/imaging"
	"github.com/floorsight/floorplan-api/internal/upstream"
)

// defaultURL is the production vectorization endpoint.
const defaultURL = "https://backend.rasterscan.com/raster-to-vector-base64"

// ErrNotConfigured is returned when the client has no API key. The
// analyzer treats it as "no overlay available" and annotates with the
// plain floor plan instead.
var ErrNotConfigured = errors.New("raster client not configured: missing API key")

// Options configure a raster Client.
type Options struct {
	URL     string        // endpoint, default production RasterScan URL
	APIKey  string        // empty key leaves the client unconfigured
	Timeout time.Duration // per-request timeout, default 60s
}

// Client requests room overlays from the vectorization service.
//
// Client is safe for concurrent use.
type Client struct {
	hc     *http.Client
	url    string
	apiKey string
}

// New creates a raster client. A client without an API key is valid
// but Vectorize on it returns ErrNotConfigured.
func New(opts Options) *Client {
	if opts.URL == "" {
		opts.URL = defaultURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &Client{
		hc:     &http.Client{Timeout: opts.Timeout},
		url:    opts.URL,
		apiKey: opts.APIKey,
	}
}

// Configured reports whether the client has an API key.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Vectorize sends a floor plan image to the service and returns the
// decoded overlay image.
//
// The overlay keeps whatever dimensions the service produced; callers
// resize as needed. The response's data URI prefix and missing base64
// padding are both tolerated.
func (c *Client) Vectorize(ctx context.Context, imageData []byte) (image.Image, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(map[string]string{
		"image": base64.StdEncoding.EncodeToString(imageData),
	})
	if err != nil {
		return nil, fmt.Errorf("encode raster request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build raster request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("raster request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, upstream.ErrorFrom("raster", resp)
	}

	var wire struct {
		Message string `json:"message"`
		Data    struct {
			Image string `json:"image"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode raster response: %w", err)
	}
	if strings.TrimSpace(wire.Data.Image) == "" {
		return nil, fmt.Errorf("raster response missing image data")
	}

	overlay, _, err := imaging.DecodeBase64(wire.Data.Image)
	if err != nil {
		return nil, fmt.Errorf("decode raster overlay: %w", err)
	}
	return overlay, nil
}
