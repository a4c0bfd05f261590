// Package catalog provides the HTTP client for the dashboard backend. Every
// operation issues a single request against a named endpoint and decodes the
// JSON response into typed models; there is no automatic retry, so each
// failure is terminal for that fetch until the caller triggers a reload.
//
// Failures are classified into three types usable with errors.As:
// NetworkError (transport failure or non-2xx status), DataShapeError (body
// does not decode into the expected shape), and MissingFieldError (a required
// nested field is absent).
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Architv27/Data-Dashboard/internal/analytics"
	"github.com/Architv27/Data-Dashboard/internal/models"
)

// Client provides access to the dashboard backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new backend client. The timeout applies per request on
// top of any context deadline the caller supplies.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchProducts retrieves the full product list.
func (c *Client) FetchProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.getJSON(ctx, "/products/", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchSummary retrieves the aggregated KPI summary.
func (c *Client) FetchSummary(ctx context.Context) (*models.Summary, error) {
	var summary models.Summary
	if err := c.getJSON(ctx, "/analytics/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// FetchPriceTrend retrieves the predicted price trend points.
func (c *Client) FetchPriceTrend(ctx context.Context) ([]models.PriceTrendPoint, error) {
	var points []models.PriceTrendPoint
	if err := c.getJSON(ctx, "/analytics/price_trend", nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// FetchPriceDiscountAnalysis retrieves the price/discount analysis payload.
// A response without overall stats is rejected with MissingFieldError here,
// at the boundary, so the analyzer never renders NaN from a half-empty
// payload.
func (c *Client) FetchPriceDiscountAnalysis(ctx context.Context) (*models.PriceDiscountAnalysis, error) {
	const endpoint = "/analytics/price_discount_analysis"
	var analysis models.PriceDiscountAnalysis
	if err := c.getJSON(ctx, endpoint, nil, &analysis); err != nil {
		return nil, err
	}
	if analysis.OverallStats == nil {
		return nil, &MissingFieldError{Endpoint: endpoint, Field: "overall_stats"}
	}
	return &analysis, nil
}

// FetchSentimentDistribution retrieves the per-subcategory sentiment rows.
func (c *Client) FetchSentimentDistribution(ctx context.Context) ([]models.SentimentRow, error) {
	var rows []models.SentimentRow
	if err := c.getJSON(ctx, "/analytics/sentiment_distribution", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchSentimentWordCloud retrieves the weighted review terms by polarity.
func (c *Client) FetchSentimentWordCloud(ctx context.Context) (*models.SentimentWordCloud, error) {
	var cloud models.SentimentWordCloud
	if err := c.getJSON(ctx, "/analytics/sentiment_wordcloud", nil, &cloud); err != nil {
		return nil, err
	}
	return &cloud, nil
}

// FetchCorrelationMatrix retrieves the field-by-field correlation matrix.
func (c *Client) FetchCorrelationMatrix(ctx context.Context) (models.CorrelationMatrix, error) {
	var matrix models.CorrelationMatrix
	if err := c.getJSON(ctx, "/analytics/rating_discount_correlation", nil, &matrix); err != nil {
		return nil, err
	}
	return matrix, nil
}

// FetchTopProducts retrieves one page of top products for the given query.
// Requests beyond the last page are permitted and return an empty page.
func (c *Client) FetchTopProducts(ctx context.Context, query analytics.TopProductsQuery) (*models.TopProductsPage, error) {
	var page models.TopProductsPage
	if err := c.getJSON(ctx, "/analytics/top_products", query.Values(), &page); err != nil {
		return nil, err
	}
	if page.PageSize == 0 {
		page.PageSize = query.PageSize
	}
	return &page, nil
}

// FetchReviews retrieves the review records for the review tracker.
func (c *Client) FetchReviews(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	if err := c.getJSON(ctx, "/analytics/reviews", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ConfirmHelpfulVote reports a helpful-vote change for a review to the
// backend. The backend acknowledges without a body contract, so only the
// status is checked.
func (c *Client) ConfirmHelpfulVote(ctx context.Context, reviewID string, delta int) error {
	endpoint := fmt.Sprintf("/analytics/reviews/%s/helpful", url.PathEscape(reviewID))
	body := struct {
		Change int `json:"change"`
	}{Change: delta}
	return c.sendJSON(ctx, http.MethodPost, endpoint, body, nil)
}

// CreateProduct adds a product to the catalog and returns the stored record.
func (c *Client) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}
	var created models.Product
	if err := c.sendJSON(ctx, http.MethodPost, "/products/", product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct replaces an existing product and returns the stored record.
func (c *Client) UpdateProduct(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}
	endpoint := "/products/" + url.PathEscape(id)
	var updated models.Product
	if err := c.sendJSON(ctx, http.MethodPut, endpoint, product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a product from the catalog.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	endpoint := "/products/" + url.PathEscape(id)
	return c.sendJSON(ctx, http.MethodDelete, endpoint, nil, nil)
}

// getJSON performs a GET against endpoint and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	target := c.baseURL + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &NetworkError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, endpoint, out)
}

// sendJSON performs a request with a JSON body and optionally decodes the
// response into out.
func (c *Client) sendJSON(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return &NetworkError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, endpoint, out)
}

func (c *Client) do(req *http.Request, endpoint string, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &NetworkError{Endpoint: endpoint, Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DataShapeError{Endpoint: endpoint, Err: err}
	}
	return nil
}
