package models

import (
	"errors"
	"math"
)

// AggregationBucket is one named aggregate produced by the category
// aggregator: a main category (or the synthetic "Other") with its record
// count and its share of the total.
type AggregationBucket struct {
	Key          string  `json:"key"`
	Count        int     `json:"count"`
	ShareOfTotal float64 `json:"share_of_total"`
}

// Validate checks a single bucket. Cross-bucket invariants (counts summing to
// the input length, shares summing to 1) are properties of a whole
// aggregation run and are asserted by the aggregator's tests.
func (b *AggregationBucket) Validate() error {
	if b.Key == "" {
		return errors.New("bucket key must not be empty")
	}
	if b.Count <= 0 {
		return errors.New("bucket count must be positive")
	}
	if b.ShareOfTotal < 0 || b.ShareOfTotal > 1 {
		return errors.New("bucket share must be between 0 and 1")
	}
	return nil
}

// SentimentSummary is a sentiment distribution for one group (a subcategory
// or a rolled-up main category). AverageRating is nil when the group has no
// reviews; percentages are each computed independently and are not forced to
// sum to exactly 100.
type SentimentSummary struct {
	GroupKey           string   `json:"group_key"`
	Positive           int      `json:"positive"`
	Neutral            int      `json:"neutral"`
	Negative           int      `json:"negative"`
	Total              int      `json:"total"`
	AverageRating      *float64 `json:"average_rating"`
	PositivePercentage float64  `json:"positive_percentage"`
	NeutralPercentage  float64  `json:"neutral_percentage"`
	NegativePercentage float64  `json:"negative_percentage"`
}

// Validate checks the count identity and that no NaN leaked into the summary.
func (s *SentimentSummary) Validate() error {
	if s.GroupKey == "" {
		return errors.New("summary group key must not be empty")
	}
	if s.Total != s.Positive+s.Neutral+s.Negative {
		return errors.New("summary total must equal positive + neutral + negative")
	}
	if s.AverageRating != nil && math.IsNaN(*s.AverageRating) {
		return errors.New("average rating must not be NaN")
	}
	return nil
}

// WordCloudEntry is one weighted term of a sentiment word cloud.
type WordCloudEntry struct {
	Text  string `json:"text"`
	Value Number `json:"value"`
}

// SentimentWordCloud holds the weighted review terms split by polarity, from
// /analytics/sentiment_wordcloud.
type SentimentWordCloud struct {
	Positive []WordCloudEntry `json:"positive"`
	Negative []WordCloudEntry `json:"negative"`
}

// CategoryStat is one per-category entry of the KPI summary.
type CategoryStat struct {
	TotalProducts   int    `json:"total_products"`
	AverageDiscount Number `json:"average_discount"`
	TotalSales      Number `json:"total_sales"`
}

// RankedProduct is a product reference inside the KPI summary lists
// (top sellers, low stock, rating stats).
type RankedProduct struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Sales       Number `json:"sales,omitempty"`
	Inventory   Number `json:"inventory,omitempty"`
	Rating      Number `json:"rating,omitempty"`
	RatingCount Number `json:"rating_count,omitempty"`
}

// SalesPoint is one point of the sales-over-time series.
type SalesPoint struct {
	Date  string `json:"date"`
	Sales Number `json:"sales"`
}

// Summary is the aggregated KPI object from /analytics/summary.
type Summary struct {
	TotalProducts      int                     `json:"total_products"`
	TotalSales         Number                  `json:"total_sales"`
	TotalRevenue       Number                  `json:"total_revenue"`
	TotalProfit        Number                  `json:"total_profit"`
	CategoryStats      map[string]CategoryStat `json:"category_stats"`
	TopSellingProducts []RankedProduct         `json:"top_selling_products"`
	LowStockProducts   []RankedProduct         `json:"low_stock_products"`
	RatingStats        []RankedProduct         `json:"rating_stats"`
	SalesOverTime      []SalesPoint            `json:"sales_over_time"`
}

// PriceTrendPoint is one point of the predicted price trend from
// /analytics/price_trend.
type PriceTrendPoint struct {
	ActualPrice              Number `json:"actual_price"`
	PredictedDiscountedPrice Number `json:"predicted_discounted_price"`
}

// DiscountStats holds the overall discount statistics of the price/discount
// analysis payload.
type DiscountStats struct {
	AverageDiscountPercentage Number `json:"average_discount_percentage"`
	MedianDiscountPercentage  Number `json:"median_discount_percentage"`
}

// PriceRangeStats holds the pre-bucketed per-price-range statistics. The
// bucketing itself happens server side; the analyzer only reformats.
type PriceRangeStats struct {
	PriceRange                string `json:"price_range"`
	AverageDiscountPercentage Number `json:"average_discount_percentage"`
	MedianDiscountPercentage  Number `json:"median_discount_percentage"`
	ProductCount              int    `json:"product_count"`
}

// PriceDiscountAnalysis is the raw /analytics/price_discount_analysis payload.
// OverallStats is a pointer so its absence is detectable rather than zeroed.
type PriceDiscountAnalysis struct {
	OverallStats       *DiscountStats               `json:"overall_stats"`
	PerPriceRangeStats []PriceRangeStats            `json:"per_price_range_stats"`
	Correlation        map[string]map[string]Number `json:"price_discount_correlation"`
}

// PriceDiscountReport is the display form of the analysis: every statistic
// rounded to two decimals, the correlation reduced to the single
// price-versus-discount scalar the dashboard shows.
type PriceDiscountReport struct {
	AverageDiscountPercentage float64               `json:"average_discount_percentage"`
	MedianDiscountPercentage  float64               `json:"median_discount_percentage"`
	Correlation               float64               `json:"correlation"`
	PerPriceRange             []PriceRangeReportRow `json:"per_price_range"`
}

// PriceRangeReportRow is one display row of the per-range table.
type PriceRangeReportRow struct {
	PriceRange                string  `json:"price_range"`
	AverageDiscountPercentage float64 `json:"average_discount_percentage"`
	MedianDiscountPercentage  float64 `json:"median_discount_percentage"`
	ProductCount              int     `json:"product_count"`
}

// CorrelationMatrix is the field-by-field correlation payload from
// /analytics/rating_discount_correlation.
type CorrelationMatrix map[string]map[string]Number

// CorrelationCell is one cell of the flattened heatmap form of the matrix.
type CorrelationCell struct {
	X     string  `json:"x"`
	Y     string  `json:"y"`
	Value float64 `json:"value"`
}

// TopProduct is one entry of the top-products response.
type TopProduct struct {
	ProductID       string `json:"product_id"`
	ProductName     string `json:"product_name"`
	Category        string `json:"category"`
	Rating          Number `json:"rating"`
	RatingCount     Number `json:"rating_count"`
	TotalSales      Number `json:"total_sales"`
	Profit          Number `json:"profit"`
	PopularityScore Number `json:"popularity_score"`
}

// TopProductsPage is one page of the top-products response along with the
// pagination metadata needed to compute the total page count.
type TopProductsPage struct {
	Products   []TopProduct `json:"products"`
	TotalCount int          `json:"total_count"`
	PageSize   int          `json:"page_size,omitempty"`
}
