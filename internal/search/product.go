package search

import (
	"encoding/json"
	"strconv"
)

// Product is a single shopping result.
type Product struct {
	// Title is the product listing title.
	Title string `json:"title"`

	// Link points at the listing, or at a retailer search page when
	// the engine returned no direct link.
	Link string `json:"link"`

	// Price is the display price, or a hint such as "Visit site for
	// price" when the engine carried none.
	Price string `json:"price"`

	// Source names the seller or the site the result came from.
	Source string `json:"source"`

	// Rating is the listing's review score, when present.
	Rating float64 `json:"rating,omitempty"`

	// Thumbnail is a preview image URL, when present.
	Thumbnail string `json:"thumbnail,omitempty"`

	// Snippet is the page excerpt carried by organic results.
	Snippet string `json:"snippet,omitempty"`
}

// wireProduct covers the result field variants the scraper API emits
// across its engines. Prices arrive as strings or bare numbers
// depending on the result block.
type wireProduct struct {
	Title          string          `json:"title"`
	Link           string          `json:"link"`
	ProductLink    string          `json:"product_link"`
	URL            string          `json:"url"`
	SerpapiLink    string          `json:"serpapi_link"`
	Price          json.RawMessage `json:"price"`
	ExtractedPrice json.RawMessage `json:"extracted_price"`
	Source         string          `json:"source"`
	Merchant       string          `json:"merchant"`
	DisplayedLink  string          `json:"displayed_link"`
	Rating         float64         `json:"rating"`
	Thumbnail      string          `json:"thumbnail"`
	Snippet        string          `json:"snippet"`
}

// toShopping converts a shopping result, trying every known link field
// before falling back to a Google Shopping search for the title.
func (w wireProduct) toShopping() Product {
	link := w.Link
	for _, alt := range []string{w.ProductLink, w.URL, w.SerpapiLink} {
		if link != "" {
			break
		}
		link = alt
	}
	if link == "" && w.Title != "" {
		link = StoreLink(storeGoogleShopping, w.Title)
	}

	price := priceText(w.Price)
	if price == "" {
		price = priceText(w.ExtractedPrice)
	}
	if price == "" {
		price = "Price not available"
	}

	source := w.Source
	if source == "" {
		source = w.Merchant
	}

	return Product{
		Title:     w.Title,
		Link:      link,
		Price:     price,
		Source:    source,
		Rating:    w.Rating,
		Thumbnail: w.Thumbnail,
	}
}

// toOrganic converts an organic result, which never carries a price.
func (w wireProduct) toOrganic() Product {
	return Product{
		Title:   w.Title,
		Link:    w.Link,
		Price:   "Visit site for price",
		Source:  w.DisplayedLink,
		Snippet: w.Snippet,
	}
}

// toVisual converts a Google Lens visual match.
func (w wireProduct) toVisual() Product {
	return Product{
		Title:     w.Title,
		Link:      w.Link,
		Price:     priceText(w.Price),
		Source:    w.Source,
		Thumbnail: w.Thumbnail,
	}
}

// priceText renders a price field that may arrive as a JSON string, a
// bare number, or null.
func priceText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}
