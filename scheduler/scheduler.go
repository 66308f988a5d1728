package scheduler

import (
	"math/rand"
	"sort"
	"time"

	"github.com/andrewpaige1/lexideck-api/models"
)

const (
	// DefaultDueLimit caps SelectDue when no limit is given.
	DefaultDueLimit = 50
	// MaxIntervalDays is the longest gap the review-status path schedules.
	MaxIntervalDays = 30

	day = 24 * time.Hour
)

// Answer is a study-session answer. IsKnown is nil when the caller did not send it.
type Answer struct {
	Confidence Confidence
	IsKnown    *bool
}

// ReviewUpdate is a review-status update. Nil fields keep the card's current value.
type ReviewUpdate struct {
	Confidence *Confidence
	IsKnown    *bool
}

// RecordAnswer applies a study-session answer. It bumps the review count,
// stamps LastReviewed and stores the confidence. NextReview is left alone.
func RecordAnswer(state models.ReviewState, a Answer, now time.Time) (models.ReviewState, error) {
	if err := a.Confidence.Validate(); err != nil {
		return state, err
	}
	next := touch(state, now)
	next.ConfidenceLevel = int(a.Confidence)
	if a.IsKnown != nil {
		next.IsKnown = *a.IsKnown
	}
	return next, nil
}

// UpdateReviewStatus applies a review-status update and schedules the next
// review: min(2c+1, 30) days out for known cards, one day for the rest.
func UpdateReviewStatus(state models.ReviewState, u ReviewUpdate, now time.Time) (models.ReviewState, error) {
	confidence := Confidence(state.ConfidenceLevel)
	if u.Confidence != nil {
		confidence = *u.Confidence
	}
	if err := confidence.Validate(); err != nil {
		return state, err
	}
	next := touch(state, now)
	next.ConfidenceLevel = int(confidence)
	if u.IsKnown != nil {
		next.IsKnown = *u.IsKnown
	}
	due := now.Add(NextReviewInterval(confidence, next.IsKnown))
	next.NextReview = &due
	return next, nil
}

// NextReviewInterval is the gap UpdateReviewStatus puts before the next review.
func NextReviewInterval(c Confidence, known bool) time.Duration {
	if !known {
		return day
	}
	days := int(c)*2 + 1
	if days > MaxIntervalDays {
		days = MaxIntervalDays
	}
	return time.Duration(days) * day
}

func touch(state models.ReviewState, now time.Time) models.ReviewState {
	next := state
	next.ReviewCount = state.ReviewCount + 1
	reviewed := now
	next.LastReviewed = &reviewed
	if state.NextReview != nil {
		v := *state.NextReview
		next.NextReview = &v
	}
	return next
}

// ResetState is the state every card in a folder is put back to by a progress reset.
func ResetState() models.ReviewState {
	return models.ReviewState{}
}

// IsDue reports whether a card should be shown now: not known, and either
// never scheduled or scheduled at or before now.
func IsDue(state models.ReviewState, now time.Time) bool {
	if state.IsKnown {
		return false
	}
	return state.NextReview == nil || !state.NextReview.After(now)
}

// SelectDue returns the due cards ordered by NextReview ascending with
// unscheduled cards first, capped at limit (DefaultDueLimit when limit <= 0).
// Ties fall back to creation time and then id so the result is deterministic.
// The input slice is not modified.
func SelectDue(cards []models.Flashcard, now time.Time, limit int) []models.Flashcard {
	if limit <= 0 {
		limit = DefaultDueLimit
	}
	due := make([]models.Flashcard, 0, len(cards))
	for _, c := range cards {
		if IsDue(c.ReviewState, now) {
			due = append(due, c)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i], due[j]
		switch {
		case a.NextReview == nil && b.NextReview != nil:
			return true
		case a.NextReview != nil && b.NextReview == nil:
			return false
		case a.NextReview != nil && !a.NextReview.Equal(*b.NextReview):
			return a.NextReview.Before(*b.NextReview)
		case !a.CreatedAt.Equal(b.CreatedAt):
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	if len(due) > limit {
		due = due[:limit]
	}
	return due
}

// SelectByConfidence keeps the cards in folderID (any folder when nil) whose
// confidence is in levels (any level when levels is empty).
func SelectByConfidence(cards []models.Flashcard, folderID *string, levels ConfidenceSet) []models.Flashcard {
	out := make([]models.Flashcard, 0, len(cards))
	for _, c := range cards {
		if folderID != nil && (c.FolderID == nil || *c.FolderID != *folderID) {
			continue
		}
		if !levels.IsEmpty() && !levels.Contains(Confidence(c.ConfidenceLevel)) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Shuffle returns the cards in random presentation order. The input is not modified.
func Shuffle(cards []models.Flashcard, rng *rand.Rand) []models.Flashcard {
	out := make([]models.Flashcard, len(cards))
	copy(out, cards)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
