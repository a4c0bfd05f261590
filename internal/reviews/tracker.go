// Package reviews owns the in-memory review list, the only client-held
// mutable state in the module, and applies helpful-vote mutations to it.
//
// Votes are optimistic: the local count changes immediately so the caller can
// reflect it without waiting on the network, then the backend is asked to
// confirm. Each optimistic mutation is keyed by a pending-operation ID; if
// confirmation fails the mutation is reverted by that ID, so a failed vote
// never leaves the local count diverged from the server. Derived views are
// computed from the canonical list on demand rather than copied, so every
// observer of the tracker sees a single source of truth.
package reviews

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Architv27/Data-Dashboard/internal/models"
)

// Confirmer reports a vote to the backend. *catalog.Client satisfies it.
type Confirmer interface {
	ConfirmHelpfulVote(ctx context.Context, reviewID string, delta int) error
}

// pendingVote tracks one optimistic mutation awaiting confirmation.
type pendingVote struct {
	reviewID string
	delta    int
}

// Tracker holds the canonical review list and serializes vote mutations.
type Tracker struct {
	mu      sync.Mutex
	reviews []models.Review
	index   map[string]int // review ID → position in reviews
	pending map[string]pendingVote

	confirmer Confirmer
}

// NewTracker creates a tracker over the given reviews. Invalid records are
// rejected up front so the tracker never holds a review it cannot vote on.
func NewTracker(reviews []models.Review, confirmer Confirmer) (*Tracker, error) {
	t := &Tracker{
		reviews: make([]models.Review, 0, len(reviews)),
		index:   make(map[string]int, len(reviews)),
		pending: make(map[string]pendingVote),

		confirmer: confirmer,
	}
	for i := range reviews {
		if err := reviews[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid review at index %d: %w", i, err)
		}
		if _, dup := t.index[reviews[i].ReviewID]; dup {
			return nil, fmt.Errorf("duplicate review ID %s", reviews[i].ReviewID)
		}
		t.index[reviews[i].ReviewID] = len(t.reviews)
		t.reviews = append(t.reviews, reviews[i])
	}
	return t, nil
}

// ApplyVote applies a helpful-vote delta (+1 or -1) to the review.
//
// The local count is mutated first, keyed by a pending-operation ID, and the
// backend is then asked to confirm. On confirmation failure the optimistic
// mutation is reverted and the error returned; on success the new count is
// returned. Votes on the same review serialize on the tracker lock; the
// confirmation request itself runs outside the lock so a slow backend does
// not block votes on other reviews.
func (t *Tracker) ApplyVote(ctx context.Context, reviewID string, delta int) (int, error) {
	if delta != 1 && delta != -1 {
		return 0, fmt.Errorf("vote delta must be +1 or -1, got %d", delta)
	}

	opID := uuid.New().String()
	count, err := t.applyOptimistic(opID, reviewID, delta)
	if err != nil {
		return 0, err
	}

	if err := t.confirmer.ConfirmHelpfulVote(ctx, reviewID, delta); err != nil {
		reverted := t.revert(opID)
		return reverted, fmt.Errorf("vote on review %s not confirmed: %w", reviewID, err)
	}

	t.mu.Lock()
	delete(t.pending, opID)
	t.mu.Unlock()
	return count, nil
}

// applyOptimistic mutates the local count and records the pending operation.
func (t *Tracker) applyOptimistic(opID, reviewID string, delta int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.index[reviewID]
	if !ok {
		return 0, fmt.Errorf("review not found: %s", reviewID)
	}
	t.reviews[i].HelpfulCount += delta
	t.pending[opID] = pendingVote{reviewID: reviewID, delta: delta}
	return t.reviews[i].HelpfulCount, nil
}

// revert undoes the mutation recorded under opID and returns the resulting
// count. Reverting an already-settled operation is a no-op.
func (t *Tracker) revert(opID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	op, ok := t.pending[opID]
	if !ok {
		return 0
	}
	delete(t.pending, opID)

	i, ok := t.index[op.reviewID]
	if !ok {
		return 0
	}
	t.reviews[i].HelpfulCount -= op.delta
	return t.reviews[i].HelpfulCount
}

// HelpfulCount returns the current local count for a review.
func (t *Tracker) HelpfulCount(reviewID string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.index[reviewID]
	if !ok {
		return 0, fmt.Errorf("review not found: %s", reviewID)
	}
	return t.reviews[i].HelpfulCount, nil
}

// Reviews returns a copy of the canonical list in its original order.
func (t *Tracker) Reviews() []models.Review {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]models.Review, len(t.reviews))
	copy(out, t.reviews)
	return out
}

// FilterByRatingBucket returns the reviews whose rating r satisfies
// bucket ≤ r < bucket+width. The one-star-wide bucket is the dashboard's
// filter convention; the width is a parameter because that convention is a
// product choice, not an invariant. Reviews without a rating never match.
func (t *Tracker) FilterByRatingBucket(bucket, width float64) []models.Review {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := []models.Review{}
	for i := range t.reviews {
		r, ok := t.reviews[i].Rating.Float64()
		if !ok {
			continue
		}
		if r >= bucket && r < bucket+width {
			out = append(out, t.reviews[i])
		}
	}
	return out
}

// TopReviews returns up to n reviews ordered by helpful count descending,
// ties broken by review ID for determinism.
func (t *Tracker) TopReviews(n int) []models.Review {
	return t.sortedByHelpful(n, true)
}

// WorstReviews returns up to n reviews ordered by helpful count ascending.
func (t *Tracker) WorstReviews(n int) []models.Review {
	return t.sortedByHelpful(n, false)
}

func (t *Tracker) sortedByHelpful(n int, descending bool) []models.Review {
	t.mu.Lock()
	sorted := make([]models.Review, len(t.reviews))
	copy(sorted, t.reviews)
	t.mu.Unlock()

	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a].HelpfulCount != sorted[b].HelpfulCount {
			if descending {
				return sorted[a].HelpfulCount > sorted[b].HelpfulCount
			}
			return sorted[a].HelpfulCount < sorted[b].HelpfulCount
		}
		return sorted[a].ReviewID < sorted[b].ReviewID
	})

	if n < 0 || n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// PendingVotes reports the number of optimistic mutations still awaiting
// confirmation. Useful for draining checks at shutdown.
func (t *Tracker) PendingVotes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}
