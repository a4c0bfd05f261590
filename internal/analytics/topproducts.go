package analytics

import (
	"net/url"
	"strconv"
)

// SortKey selects the ordering of the top-products endpoint.
type SortKey string

// Valid sort keys for top-products queries.
const (
	SortByPopularity SortKey = "popularity"
	SortByTotalSales SortKey = "total_sales"
	SortByProfit     SortKey = "profit"
)

// Rating bounds of the full, unfiltered range. When a query carries exactly
// this range the bounds are omitted from the request so the backend is not
// asked to filter on a no-op.
const (
	MinRatingBound = 0.0
	MaxRatingBound = 5.0
)

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 10

// TopProductsQuery is an immutable request descriptor for the top-products
// endpoint. Every With method returns a new value; a query is never mutated
// in place, so each filter change is a fresh value that triggers a fresh
// fetch. Changing any filter resets the page to 1, because a changed result
// set invalidates prior pagination.
type TopProductsQuery struct {
	Categories []string
	MinRating  float64
	MaxRating  float64
	SortKey    SortKey
	Page       int
	PageSize   int
}

// NewTopProductsQuery returns the default query: no category filter, the full
// rating range, popularity ordering, first page.
func NewTopProductsQuery() TopProductsQuery {
	return TopProductsQuery{
		MinRating: MinRatingBound,
		MaxRating: MaxRatingBound,
		SortKey:   SortByPopularity,
		Page:      1,
		PageSize:  DefaultPageSize,
	}
}

// WithCategories returns a copy filtered to the given categories and resets
// the page to 1. The slice is copied so the query stays a value.
func (q TopProductsQuery) WithCategories(categories ...string) TopProductsQuery {
	q.Categories = append([]string(nil), categories...)
	q.Page = 1
	return q
}

// WithRatingRange returns a copy bounded to [min, max], clamped to the valid
// rating range, and resets the page to 1. An inverted range collapses to a
// single point at min.
func (q TopProductsQuery) WithRatingRange(min, max float64) TopProductsQuery {
	if min < MinRatingBound {
		min = MinRatingBound
	}
	if max > MaxRatingBound {
		max = MaxRatingBound
	}
	if max < min {
		max = min
	}
	q.MinRating = min
	q.MaxRating = max
	q.Page = 1
	return q
}

// WithSortKey returns a copy ordered by key and resets the page to 1.
// Unknown keys fall back to popularity.
func (q TopProductsQuery) WithSortKey(key SortKey) TopProductsQuery {
	switch key {
	case SortByPopularity, SortByTotalSales, SortByProfit:
		q.SortKey = key
	default:
		q.SortKey = SortByPopularity
	}
	q.Page = 1
	return q
}

// WithPage returns a copy on the given page, leaving every filter untouched.
// Pages below 1 are pinned to 1. Pages beyond the last page are legal; the
// backend answers them with an empty result set.
func (q TopProductsQuery) WithPage(page int) TopProductsQuery {
	if page < 1 {
		page = 1
	}
	q.Page = page
	return q
}

// WithPageSize returns a copy with the given page size and resets the page to
// 1, since resizing pages re-partitions the result set.
func (q TopProductsQuery) WithPageSize(size int) TopProductsQuery {
	if size < 1 {
		size = DefaultPageSize
	}
	q.PageSize = size
	q.Page = 1
	return q
}

// Values encodes the query with only non-default fields populated: the
// categories parameter is omitted when no filter is set, and the rating
// bounds are omitted when they cover the full range. Sort key and pagination
// are always sent.
func (q TopProductsQuery) Values() url.Values {
	values := url.Values{}

	for _, category := range q.Categories {
		values.Add("categories", category)
	}
	if q.MinRating != MinRatingBound || q.MaxRating != MaxRatingBound {
		values.Set("min_rating", strconv.FormatFloat(q.MinRating, 'f', -1, 64))
		values.Set("max_rating", strconv.FormatFloat(q.MaxRating, 'f', -1, 64))
	}

	sortKey := q.SortKey
	if sortKey == "" {
		sortKey = SortByPopularity
	}
	values.Set("sort_by", string(sortKey))

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	values.Set("page", strconv.Itoa(page))
	values.Set("page_size", strconv.Itoa(pageSize))

	return values
}

// TotalPages derives the page count from the response metadata. A
// non-positive page size or an empty result set yields zero pages.
func TotalPages(totalCount, pageSize int) int {
	if totalCount <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}
