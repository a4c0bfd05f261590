package analytics

import (
	"errors"
	"math"
	"sort"

	"github.com/Architv27/Data-Dashboard/internal/models"
)

// ErrMissingOverallStats is returned when a price/discount analysis payload
// arrives without its overall statistics block. The report builder refuses to
// render rather than emitting zeros for data that was never there.
var ErrMissingOverallStats = errors.New("price discount analysis has no overall stats")

// correlationPriceField and correlationDiscountField select the single
// correlation scalar the dashboard displays out of the full matrix.
const (
	correlationPriceField    = "actual_price"
	correlationDiscountField = "discount_percentage"
)

// BuildPriceDiscountReport reformats a price/discount analysis for display.
// The per-range statistics arrive pre-bucketed from the backend; the only
// work here is rounding everything to two decimals and extracting the
// price-versus-discount correlation scalar.
func BuildPriceDiscountReport(analysis *models.PriceDiscountAnalysis) (*models.PriceDiscountReport, error) {
	if analysis == nil || analysis.OverallStats == nil {
		return nil, ErrMissingOverallStats
	}

	report := &models.PriceDiscountReport{
		AverageDiscountPercentage: round2(analysis.OverallStats.AverageDiscountPercentage.Or(0)),
		MedianDiscountPercentage:  round2(analysis.OverallStats.MedianDiscountPercentage.Or(0)),
	}

	if row, ok := analysis.Correlation[correlationPriceField]; ok {
		report.Correlation = round2(row[correlationDiscountField].Or(0))
	}

	report.PerPriceRange = make([]models.PriceRangeReportRow, 0, len(analysis.PerPriceRangeStats))
	for _, stats := range analysis.PerPriceRangeStats {
		report.PerPriceRange = append(report.PerPriceRange, models.PriceRangeReportRow{
			PriceRange:                stats.PriceRange,
			AverageDiscountPercentage: round2(stats.AverageDiscountPercentage.Or(0)),
			MedianDiscountPercentage:  round2(stats.MedianDiscountPercentage.Or(0)),
			ProductCount:              stats.ProductCount,
		})
	}

	return report, nil
}

// FlattenCorrelation turns one row of the correlation matrix into heatmap
// cells over the full label cross product. Labels are sorted so the output is
// deterministic regardless of map iteration order. An unknown field yields an
// empty, non-nil slice.
func FlattenCorrelation(matrix models.CorrelationMatrix, field string) []models.CorrelationCell {
	cells := []models.CorrelationCell{}
	row, ok := matrix[field]
	if !ok {
		return cells
	}

	labels := make([]string, 0, len(row))
	for label := range row {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, y := range labels {
		for _, x := range labels {
			cells = append(cells, models.CorrelationCell{
				X:     x,
				Y:     y,
				Value: row[x].Or(0),
			})
		}
	}
	return cells
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
