package product

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"ai-shopassist-be/internal/constant"
	"ai-shopassist-be/pkg/search"
)

func rawProduct(title string) search.RawProduct {
	return search.RawProduct{
		"product_title":       title,
		"product_price":       "$19.99",
		"product_photo":       "https://img.example.com/p.jpg",
		"product_url":         "https://example.com/p",
		"product_star_rating": "4.5",
		"product_num_ratings": float64(120),
		"delivery":            "Free delivery",
	}
}

func TestNormalizeTopInvalidInputs(t *testing.T) {
	if _, err := NormalizeTop(nil, 3); !errors.Is(err, ErrInvalidProductData) {
		t.Errorf("nil input error = %v, want ErrInvalidProductData", err)
	}
	if _, err := NormalizeTop([]search.RawProduct{}, 3); !errors.Is(err, ErrNoProductsAvailable) {
		t.Errorf("empty input error = %v, want ErrNoProductsAvailable", err)
	}
	if _, err := NormalizeTop([]search.RawProduct{rawProduct("x")}, 0); !errors.Is(err, ErrInvalidProductData) {
		t.Errorf("zero limit error = %v, want ErrInvalidProductData", err)
	}
}

func TestNormalizeTopBoundsAndRanks(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		limit   int
		wantLen int
	}{
		{"more products than limit", 5, 3, 3},
		{"fewer products than limit", 2, 5, 2},
		{"exact fit", 3, 3, 3},
		{"single product", 1, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := make([]search.RawProduct, tt.n)
			for i := range raw {
				raw[i] = rawProduct(fmt.Sprintf("Item %d", i))
			}

			got, err := NormalizeTop(raw, tt.limit)
			if err != nil {
				t.Fatalf("NormalizeTop() error = %v", err)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("length = %d, want %d", len(got), tt.wantLen)
			}
			for i, p := range got {
				if p.Rank != i+1 {
					t.Errorf("rank[%d] = %d, want %d", i, p.Rank, i+1)
				}
				if p.Title != fmt.Sprintf("Item %d", i) {
					t.Errorf("order not preserved: title[%d] = %q", i, p.Title)
				}
			}
		})
	}
}

func TestNormalizeMissingFieldsGetSentinels(t *testing.T) {
	raw := []search.RawProduct{{
		"product_title": "Mystery Gadget",
	}}

	got, err := NormalizeTop(raw, 3)
	if err != nil {
		t.Fatalf("NormalizeTop() error = %v", err)
	}

	p := got[0]
	if p.Image != constant.FieldNotAvailable {
		t.Errorf("image = %q, want sentinel", p.Image)
	}
	if p.Price != constant.FieldNotAvailable {
		t.Errorf("price = %q, want sentinel", p.Price)
	}
	if p.Shipping != constant.FieldNotAvailable {
		t.Errorf("shipping = %q, want sentinel", p.Shipping)
	}
	if p.Rating != constant.RatingNotRated {
		t.Errorf("rating = %q, want %q", p.Rating, constant.RatingNotRated)
	}
	wantLink := fmt.Sprintf(constant.MarketplaceSearchURLTemplate, url.QueryEscape("Mystery Gadget"))
	if p.Link != wantLink {
		t.Errorf("link = %q, want synthesized %q", p.Link, wantLink)
	}
	if !strings.Contains(p.Link, "Mystery+Gadget") {
		t.Errorf("link does not contain encoded title: %q", p.Link)
	}
	if p.Reason != constant.ReasonTopMatch {
		t.Errorf("reason = %q, want %q", p.Reason, constant.ReasonTopMatch)
	}
}

func TestNormalizeDirectLinkPreserved(t *testing.T) {
	got, err := NormalizeTop([]search.RawProduct{rawProduct("Kept Link")}, 1)
	if err != nil {
		t.Fatalf("NormalizeTop() error = %v", err)
	}
	if got[0].Link != "https://example.com/p" {
		t.Errorf("link = %q, want direct product URL", got[0].Link)
	}
	if got[0].Rating != "4.5 (120 ratings)" {
		t.Errorf("rating = %q, want combined stars and count", got[0].Rating)
	}
}

func TestNormalizeCoercesOddShapes(t *testing.T) {
	raw := []search.RawProduct{{
		"product_title":       "Odd Shapes",
		"product_price":       float64(25),
		"product_star_rating": float64(4.2),
	}}

	got, err := NormalizeTop(raw, 1)
	if err != nil {
		t.Fatalf("NormalizeTop() error = %v", err)
	}
	if got[0].Price != "25" {
		t.Errorf("price = %q, want coerced \"25\"", got[0].Price)
	}
	if !strings.HasPrefix(got[0].Rating, "4.2") {
		t.Errorf("rating = %q, want prefix \"4.2\"", got[0].Rating)
	}
}
