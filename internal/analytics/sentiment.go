package analytics

import (
	"github.com/Architv27/Data-Dashboard/internal/models"
)

// SummarizeSubcategories reformats per-subcategory sentiment rows into
// summaries keyed by subcategory. No aggregation happens at this granularity;
// percentages are recomputed from the counts so the output never depends on
// the backend's own rounding.
func SummarizeSubcategories(rows []models.SentimentRow) []models.SentimentSummary {
	summaries := make([]models.SentimentSummary, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		s := models.SentimentSummary{
			GroupKey: row.Subcategory,
			Positive: row.Positive,
			Neutral:  row.Neutral,
			Negative: row.Negative,
			Total:    row.Positive + row.Neutral + row.Negative,
		}
		if s.Total > 0 {
			if avg, ok := row.AverageRating.Float64(); ok {
				s.AverageRating = &avg
			}
			fillPercentages(&s)
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// RollUpCategories aggregates per-subcategory sentiment rows to main-category
// granularity. Counts are summed; the average rating is the count-weighted
// mean of the subcategory averages:
//
//	avg = Σ(subcategory.average_rating × subcategory.total) / Σ(subcategory.total)
//
// A category whose subcategories hold no reviews has an undefined average,
// signalled by a nil AverageRating rather than a division by zero. Categories
// appear in first-seen order.
func RollUpCategories(rows []models.SentimentRow) []models.SentimentSummary {
	type accumulator struct {
		positive, neutral, negative int
		weightedRating              float64
		ratedTotal                  int
	}

	groups := make(map[string]*accumulator)
	var order []string
	for i := range rows {
		row := &rows[i]
		acc, seen := groups[row.MainCategory]
		if !seen {
			acc = &accumulator{}
			groups[row.MainCategory] = acc
			order = append(order, row.MainCategory)
		}
		acc.positive += row.Positive
		acc.neutral += row.Neutral
		acc.negative += row.Negative
		if avg, ok := row.AverageRating.Float64(); ok && row.Total > 0 {
			acc.weightedRating += avg * float64(row.Total)
			acc.ratedTotal += row.Total
		}
	}

	summaries := make([]models.SentimentSummary, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		s := models.SentimentSummary{
			GroupKey: key,
			Positive: acc.positive,
			Neutral:  acc.neutral,
			Negative: acc.negative,
			Total:    acc.positive + acc.neutral + acc.negative,
		}
		if acc.ratedTotal > 0 {
			avg := acc.weightedRating / float64(acc.ratedTotal)
			s.AverageRating = &avg
		}
		if s.Total > 0 {
			fillPercentages(&s)
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// fillPercentages computes each sentiment percentage independently. The three
// values are not forced to sum to exactly 100; rounding is the consumer's
// concern.
func fillPercentages(s *models.SentimentSummary) {
	total := float64(s.Total)
	s.PositivePercentage = float64(s.Positive) / total * 100
	s.NeutralPercentage = float64(s.Neutral) / total * 100
	s.NegativePercentage = float64(s.Negative) / total * 100
}
