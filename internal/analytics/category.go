// Package analytics is the pure aggregation library behind the dashboard
// charts. Each chart view used to carry its own copy of this logic; here it
// lives once, as functions with no I/O, so every view adapter consumes the
// same arithmetic.
//
// All functions fail fast instead of letting a divide-by-zero produce NaN
// that would silently flow into a chart.
package analytics

import (
	"github.com/Architv27/Data-Dashboard/internal/models"
)

// DefaultOtherThreshold is the minimum share a category needs to be emitted
// as its own bucket. Categories below it are folded into the synthetic
// "Other" bucket. The 5% line is a product decision carried over from the
// dashboard, not a business rule; override it via CategoryAggregator.
const DefaultOtherThreshold = 0.05

// DefaultOtherLabel is the key of the synthetic catch-all bucket.
const DefaultOtherLabel = "Other"

// CategoryAggregator groups products by main category and collapses the long
// tail into a single catch-all bucket.
type CategoryAggregator struct {
	// Threshold is the minimum share of total a category needs to keep its
	// own bucket. Zero disables folding entirely.
	Threshold float64
	// OtherLabel names the catch-all bucket. Empty means DefaultOtherLabel.
	OtherLabel string
}

// NewCategoryAggregator returns an aggregator with the dashboard defaults.
func NewCategoryAggregator() CategoryAggregator {
	return CategoryAggregator{
		Threshold:  DefaultOtherThreshold,
		OtherLabel: DefaultOtherLabel,
	}
}

// Aggregate reduces products into ordered buckets keyed by main category.
//
// Buckets appear in first-seen key order. Any key whose share of the total is
// below the threshold is not emitted individually; its count accumulates into
// the catch-all bucket, which is emitted last and only when non-empty. The
// counts of the returned buckets always sum to len(products), and the shares
// sum to 1 within floating-point epsilon.
//
// Empty input is valid and yields an empty, non-nil slice.
func (a CategoryAggregator) Aggregate(products []models.Product) []models.AggregationBucket {
	buckets := []models.AggregationBucket{}
	if len(products) == 0 {
		return buckets
	}

	otherLabel := a.OtherLabel
	if otherLabel == "" {
		otherLabel = DefaultOtherLabel
	}

	counts := make(map[string]int)
	var order []string
	for i := range products {
		key := products[i].MainCategory()
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	total := len(products)
	otherCount := 0
	for _, key := range order {
		count := counts[key]
		share := float64(count) / float64(total)
		if share < a.Threshold {
			otherCount += count
			continue
		}
		buckets = append(buckets, models.AggregationBucket{
			Key:          key,
			Count:        count,
			ShareOfTotal: share,
		})
	}

	if otherCount > 0 {
		buckets = append(buckets, models.AggregationBucket{
			Key:          otherLabel,
			Count:        otherCount,
			ShareOfTotal: float64(otherCount) / float64(total),
		})
	}

	return buckets
}
