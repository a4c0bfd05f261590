// Package models defines the core domain entities for the catalog dashboard:
// products, reviews, sentiment rows, and the aggregate view-model types the
// analytics package produces. All numeric fields that cross the backend
// boundary use the Number type so string/number/null duality is resolved once.
//
// Terminology:
//   - Main category: the first segment of a pipe-delimited category string
//     such as "Electronics|Mobile Phones|Smartphones".
//   - Bucket: a named aggregate (a category or the synthetic "Other") with a
//     count and its share of the total.
package models

import (
	"errors"
	"strings"
)

// Product is one catalog record as returned by the backend. Price and count
// fields regularly arrive as decorated strings, hence Number.
type Product struct {
	ID                 string `json:"_id,omitempty"`
	ProductName        string `json:"product_name"`
	Category           string `json:"category"`
	DiscountedPrice    Number `json:"discounted_price"`
	ActualPrice        Number `json:"actual_price"`
	DiscountPercentage Number `json:"discount_percentage"`
	Rating             Number `json:"rating"`
	RatingCount        Number `json:"rating_count"`
	AboutProduct       string `json:"about_product,omitempty"`
	ImgLink            string `json:"img_link,omitempty"`
	ProductLink        string `json:"product_link,omitempty"`
}

// UnknownCategory is the grouping key used for records without a category.
const UnknownCategory = "Unknown"

// MainCategory returns the first pipe-delimited segment of the category
// hierarchy, or UnknownCategory when the field is empty.
func (p *Product) MainCategory() string {
	if p.Category == "" {
		return UnknownCategory
	}
	main, _, _ := strings.Cut(p.Category, "|")
	main = strings.TrimSpace(main)
	if main == "" {
		return UnknownCategory
	}
	return main
}

// Validate checks the fields required before a product is sent to the backend.
func (p *Product) Validate() error {
	if p.ProductName == "" {
		return errors.New("product name must not be empty")
	}
	if p.Category == "" {
		return errors.New("product category must not be empty")
	}
	if r, ok := p.Rating.Float64(); ok && (r < 0 || r > 5) {
		return errors.New("rating must be between 0 and 5")
	}
	return nil
}

// Review is one user review. HelpfulCount is the only piece of client-held
// mutable state in the module; it is owned by the reviews.Tracker.
type Review struct {
	ReviewID      string `json:"review_id"`
	ProductID     string `json:"product_id"`
	UserID        string `json:"user_id"`
	ReviewContent string `json:"review_content"`
	Rating        Number `json:"rating"`
	ReviewDate    string `json:"review_date"`
	HelpfulCount  int    `json:"helpful_count"`
}

// Validate checks that a review carries the fields the tracker relies on.
func (r *Review) Validate() error {
	if r.ReviewID == "" {
		return errors.New("review ID must not be empty")
	}
	if r.ProductID == "" {
		return errors.New("review product ID must not be empty")
	}
	if rating, ok := r.Rating.Float64(); ok && (rating < 0 || rating > 5) {
		return errors.New("review rating must be between 0 and 5")
	}
	if r.HelpfulCount < 0 {
		return errors.New("helpful count must not be negative")
	}
	return nil
}

// SentimentRow is one per-subcategory sentiment record from
// /analytics/sentiment_distribution.
type SentimentRow struct {
	MainCategory       string `json:"main_category"`
	Subcategory        string `json:"subcategory"`
	Positive           int    `json:"positive"`
	Neutral            int    `json:"neutral"`
	Negative           int    `json:"negative"`
	Total              int    `json:"total"`
	PositivePercentage Number `json:"positive_percentage"`
	NeutralPercentage  Number `json:"neutral_percentage"`
	NegativePercentage Number `json:"negative_percentage"`
	AverageRating      Number `json:"average_rating"`
}

// Validate checks internal consistency of a sentiment row.
func (s *SentimentRow) Validate() error {
	if s.MainCategory == "" {
		return errors.New("sentiment row main category must not be empty")
	}
	if s.Positive < 0 || s.Neutral < 0 || s.Negative < 0 {
		return errors.New("sentiment counts must not be negative")
	}
	if s.Total != s.Positive+s.Neutral+s.Negative {
		return errors.New("sentiment total must equal positive + neutral + negative")
	}
	if avg, ok := s.AverageRating.Float64(); ok && (avg < 0 || avg > 5) {
		return errors.New("average rating must be between 0 and 5")
	}
	return nil
}
