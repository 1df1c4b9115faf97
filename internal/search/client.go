package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/floorsight/floorplan-api/internal/upstream"
)

// Default endpoints for the scraper API and the image host.
const (
	defaultBaseURL   = "https://scraperapi.thordata.com/request"
	defaultUploadURL = "https://api.imgbb.com/1/upload"
)

// Service names used in upstream errors.
const (
	serviceSearch    = "search"
	serviceImageHost = "imagehost"
)

// ErrNotConfigured is returned when the scraper API key is missing.
var ErrNotConfigured = errors.New("search client not configured: missing API key")

// ErrNoUploader is returned by image uploads when the image host key
// is missing.
var ErrNoUploader = errors.New("image host not configured: missing API key")

// Options configure a search Client.
type Options struct {
	BaseURL   string        // scraper endpoint, default production scraper API
	APIKey    string        // scraper Bearer token, empty leaves searches unconfigured
	UploadURL string        // image host endpoint, default production image host
	UploadKey string        // image host API key, empty disables visual search uploads
	Timeout   time.Duration // per-request timeout, default 30s
}

// Client runs product searches through a scraper API fronting Google
// text search and Google Lens.
//
// Client is safe for concurrent use.
type Client struct {
	hc        *http.Client
	baseURL   string
	apiKey    string
	uploadURL string
	uploadKey string
}

// New creates a search client. A client without an API key is valid
// but its searches return ErrNotConfigured.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.UploadURL == "" {
		opts.UploadURL = defaultUploadURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Client{
		hc:        &http.Client{Timeout: opts.Timeout},
		baseURL:   opts.BaseURL,
		apiKey:    opts.APIKey,
		uploadURL: opts.UploadURL,
		uploadKey: opts.UploadKey,
	}
}

// Configured reports whether the scraper API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// SearchProducts runs a text product search for the query and returns
// the best match, preferring shopping results with prices over organic
// hits. It returns (nil, nil) when the engine produced no usable
// results.
func (c *Client) SearchProducts(ctx context.Context, query string) (*Product, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	form := url.Values{
		"engine": {"google"},
		"q":      {query + " buy"},
		"json":   {"1"},
	}
	var result struct {
		Shopping       []wireProduct `json:"shopping_results"`
		Popular        []wireProduct `json:"popular_products"`
		Organic        []wireProduct `json:"organic"`
		OrganicResults []wireProduct `json:"organic_results"`
	}
	if err := c.postForm(ctx, serviceSearch, c.baseURL, form, "Bearer "+c.apiKey, &result); err != nil {
		return nil, err
	}

	shopping := result.Shopping
	if len(shopping) == 0 {
		shopping = result.Popular
	}
	if len(shopping) > 0 {
		product := shopping[0].toShopping()
		return &product, nil
	}

	organic := result.Organic
	if len(organic) == 0 {
		organic = result.OrganicResults
	}
	if len(organic) > 0 {
		product := organic[0].toOrganic()
		return &product, nil
	}
	return nil, nil
}

// SearchByImageURL runs a Google Lens visual search on a hosted image
// and returns the best visual match, or (nil, nil) when there is none.
func (c *Client) SearchByImageURL(ctx context.Context, imageURL string) (*Product, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	form := url.Values{
		"engine": {"google_lens"},
		"url":    {imageURL},
		"json":   {"1"},
	}
	var result struct {
		VisualMatches []wireProduct `json:"visual_matches"`
		Products      []wireProduct `json:"products"`
	}
	if err := c.postForm(ctx, serviceSearch, c.baseURL, form, "Bearer "+c.apiKey, &result); err != nil {
		return nil, err
	}

	matches := result.VisualMatches
	if len(matches) == 0 {
		matches = result.Products
	}
	if len(matches) == 0 {
		return nil, nil
	}
	product := matches[0].toVisual()
	return &product, nil
}

// UploadImage stages a base64-encoded image on the public image host
// and returns its URL, for engines that only accept image URLs.
func (c *Client) UploadImage(ctx context.Context, imageBase64 string) (string, error) {
	if c.uploadKey == "" {
		return "", ErrNoUploader
	}

	form := url.Values{
		"key":   {c.uploadKey},
		"image": {imageBase64},
	}
	var result struct {
		Success bool `json:"success"`
		Data    struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := c.postForm(ctx, serviceImageHost, c.uploadURL, form, "", &result); err != nil {
		return "", err
	}
	if !result.Success || result.Data.URL == "" {
		return "", fmt.Errorf("image host rejected upload")
	}
	return result.Data.URL, nil
}

// SearchByImage uploads a base64-encoded image and runs a visual
// search on the hosted copy.
func (c *Client) SearchByImage(ctx context.Context, imageBase64 string) (*Product, error) {
	imageURL, err := c.UploadImage(ctx, imageBase64)
	if err != nil {
		return nil, err
	}
	return c.SearchByImageURL(ctx, imageURL)
}

// postForm sends a form-encoded POST to an endpoint and decodes its
// JSON response into out. auth, when non-empty, becomes the
// Authorization header.
func (c *Client) postForm(ctx context.Context, service, endpoint string, form url.Values, auth string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build %s request: %w", service, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return upstream.ErrorFrom(service, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", service, err)
	}
	return nil
}
