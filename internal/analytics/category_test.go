package analytics

import (
	"math"
	"testing"

	"github.com/Architv27/Data-Dashboard/internal/models"
)

func productsWithCategories(categories ...string) []models.Product {
	products := make([]models.Product, len(categories))
	for i, c := range categories {
		products[i] = models.Product{ProductName: "p", Category: c}
	}
	return products
}

func repeatCategory(category string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = category
	}
	return out
}

func TestAggregateEmptyInput(t *testing.T) {
	agg := NewCategoryAggregator()

	buckets := agg.Aggregate(nil)
	if buckets == nil {
		t.Fatal("Aggregate(nil) returned nil, want empty slice")
	}
	if len(buckets) != 0 {
		t.Errorf("Aggregate(nil) returned %d buckets, want 0", len(buckets))
	}

	buckets = agg.Aggregate([]models.Product{})
	if len(buckets) != 0 {
		t.Errorf("Aggregate(empty) returned %d buckets, want 0", len(buckets))
	}
}

func TestAggregateMainCategoryExtraction(t *testing.T) {
	agg := CategoryAggregator{Threshold: 0} // no folding
	products := productsWithCategories(
		"Electronics|Mobile Phones",
		"Electronics|Accessories|Cables",
		"Home&Kitchen|Appliances",
		"",
	)

	buckets := agg.Aggregate(products)
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d: %+v", len(buckets), buckets)
	}
	// First-seen order.
	wantKeys := []string{"Electronics", "Home&Kitchen", models.UnknownCategory}
	wantCounts := []int{2, 1, 1}
	for i, b := range buckets {
		if b.Key != wantKeys[i] {
			t.Errorf("bucket[%d].Key = %q, want %q", i, b.Key, wantKeys[i])
		}
		if b.Count != wantCounts[i] {
			t.Errorf("bucket[%d].Count = %d, want %d", i, b.Count, wantCounts[i])
		}
	}
}

func TestAggregateLongTailFoldsIntoOther(t *testing.T) {
	// 30 records: 28 × "X" (93.33%), 1 × "B", 1 × "C" (3.33% each).
	// B and C are below the 5% threshold and must fold into "Other".
	categories := repeatCategory("X", 28)
	categories = append(categories, "B", "C")
	products := productsWithCategories(categories...)

	buckets := NewCategoryAggregator().Aggregate(products)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d: %+v", len(buckets), buckets)
	}

	if buckets[0].Key != "X" || buckets[0].Count != 28 {
		t.Errorf("bucket[0] = %+v, want X with count 28", buckets[0])
	}
	if got, want := buckets[0].ShareOfTotal, 28.0/30.0; got != want {
		t.Errorf("bucket[0].ShareOfTotal = %v, want %v", got, want)
	}

	if buckets[1].Key != DefaultOtherLabel || buckets[1].Count != 2 {
		t.Errorf("bucket[1] = %+v, want Other with count 2", buckets[1])
	}
	if got, want := buckets[1].ShareOfTotal, 2.0/30.0; got != want {
		t.Errorf("bucket[1].ShareOfTotal = %v, want %v", got, want)
	}
}

func TestAggregateExactShareArithmetic(t *testing.T) {
	// 12 records: 10 × "X", 1 × "B", 1 × "C". B and C hold 1/12 ≈ 8.33% each,
	// which clears the 5% threshold, so nothing folds into Other.
	categories := repeatCategory("X", 10)
	categories = append(categories, "B", "C")
	products := productsWithCategories(categories...)

	buckets := NewCategoryAggregator().Aggregate(products)
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets (no folding at 1/12 share), got %d: %+v", len(buckets), buckets)
	}
	if got, want := buckets[0].ShareOfTotal, 10.0/12.0; got != want {
		t.Errorf("X share = %v, want exactly %v", got, want)
	}
	if got, want := buckets[1].ShareOfTotal, 1.0/12.0; got != want {
		t.Errorf("B share = %v, want exactly %v", got, want)
	}
}

func TestAggregateInvariants(t *testing.T) {
	categories := repeatCategory("Electronics", 40)
	categories = append(categories, repeatCategory("Home&Kitchen", 7)...)
	categories = append(categories, "Toys&Games", "OfficeProducts", "Car&Motorbike")
	products := productsWithCategories(categories...)

	buckets := NewCategoryAggregator().Aggregate(products)

	countSum := 0
	shareSum := 0.0
	for _, b := range buckets {
		if err := b.Validate(); err != nil {
			t.Errorf("bucket %q invalid: %v", b.Key, err)
		}
		countSum += b.Count
		shareSum += b.ShareOfTotal
	}
	if countSum != len(products) {
		t.Errorf("bucket counts sum to %d, want %d", countSum, len(products))
	}
	if math.Abs(shareSum-1.0) > 1e-9 {
		t.Errorf("bucket shares sum to %v, want 1.0", shareSum)
	}

	// Other must be last when present.
	for i, b := range buckets {
		if b.Key == DefaultOtherLabel && i != len(buckets)-1 {
			t.Errorf("Other bucket emitted at position %d of %d", i, len(buckets))
		}
	}

	// No sub-threshold category survives as its own bucket.
	for _, b := range buckets {
		if b.Key != DefaultOtherLabel && b.ShareOfTotal < DefaultOtherThreshold {
			t.Errorf("bucket %q has share %v below threshold", b.Key, b.ShareOfTotal)
		}
	}
}

func TestAggregateCustomThresholdAndLabel(t *testing.T) {
	agg := CategoryAggregator{Threshold: 0.5, OtherLabel: "Misc"}
	products := productsWithCategories("A", "A", "A", "B")

	buckets := agg.Aggregate(products)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[1].Key != "Misc" || buckets[1].Count != 1 {
		t.Errorf("bucket[1] = %+v, want Misc with count 1", buckets[1])
	}
}

func TestAggregateAllFoldedStillSumsToTotal(t *testing.T) {
	// Every category below threshold: a single Other bucket carries everything.
	agg := CategoryAggregator{Threshold: 0.9}
	products := productsWithCategories("A", "B", "C")

	buckets := agg.Aggregate(products)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d: %+v", len(buckets), buckets)
	}
	if buckets[0].Key != DefaultOtherLabel || buckets[0].Count != 3 {
		t.Errorf("bucket[0] = %+v, want Other with count 3", buckets[0])
	}
	if buckets[0].ShareOfTotal != 1.0 {
		t.Errorf("Other share = %v, want 1.0", buckets[0].ShareOfTotal)
	}
}
