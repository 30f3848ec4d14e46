package product

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"ai-shopassist-be/internal/constant"
	"ai-shopassist-be/pkg/search"
)

// Product is the fully-defaulted internal view of a raw marketplace record.
// Every field always has a value; missing source data becomes a sentinel.
type Product struct {
	Rank     int    `json:"rank"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Link     string `json:"link"`
	Image    string `json:"image"`
	Shipping string `json:"shipping"`
	Rating   string `json:"rating"`
	Reason   string `json:"reason"`
}

var (
	ErrInvalidProductData  = errors.New("product data is not a usable list")
	ErrNoProductsAvailable = errors.New("no products available to rank")
)

// NormalizeTop converts the raw list into at most limit normalized products.
// Rank is 1-based positional labeling of the kept subset in source order.
// The selection order from the search capability is never re-sorted.
// A nil or empty input is a hard failure: callers must show a distinct
// "be more specific" message, never an empty-but-successful list.
func NormalizeTop(raw []search.RawProduct, limit int) ([]Product, error) {
	if raw == nil {
		return nil, ErrInvalidProductData
	}
	if len(raw) == 0 {
		return nil, ErrNoProductsAvailable
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit %d", ErrInvalidProductData, limit)
	}

	if len(raw) < limit {
		limit = len(raw)
	}

	products := make([]Product, 0, limit)
	for i := 0; i < limit; i++ {
		products = append(products, normalizeOne(raw[i], i+1))
	}
	return products, nil
}

func normalizeOne(raw search.RawProduct, rank int) Product {
	title := stringField(raw, "product_title", constant.FieldNotAvailable)

	link := stringField(raw, "product_url", "")
	if link == "" {
		link = marketplaceSearchURL(title)
	}

	rating := stringField(raw, "product_star_rating", constant.RatingNotRated)
	if rating != constant.RatingNotRated {
		if count := stringField(raw, "product_num_ratings", ""); count != "" {
			rating = fmt.Sprintf("%s (%s ratings)", rating, count)
		}
	}

	return Product{
		Rank:     rank,
		Title:    title,
		Price:    stringField(raw, "product_price", constant.FieldNotAvailable),
		Link:     link,
		Image:    stringField(raw, "product_photo", constant.FieldNotAvailable),
		Shipping: stringField(raw, "delivery", constant.FieldNotAvailable),
		Rating:   rating,
		Reason:   constant.ReasonTopMatch,
	}
}

// stringField coerces a loosely-typed field into a display string. Numbers
// arrive as float64 from JSON decoding; integral values drop the decimals.
func stringField(raw search.RawProduct, key, fallback string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return fallback
	}
	switch c := v.(type) {
	case string:
		if strings.TrimSpace(c) == "" {
			return fallback
		}
		return c
	case float64:
		if c == float64(int64(c)) {
			return fmt.Sprintf("%d", int64(c))
		}
		return fmt.Sprintf("%g", c)
	case bool:
		return fmt.Sprintf("%t", c)
	default:
		return fmt.Sprintf("%v", c)
	}
}

func marketplaceSearchURL(title string) string {
	return fmt.Sprintf(constant.MarketplaceSearchURLTemplate, url.QueryEscape(title))
}
