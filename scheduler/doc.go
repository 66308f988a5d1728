// Package scheduler implements the confidence-leveling review scheme for
// flashcards.
//
// Every function is pure: it takes the current review state (or a slice of
// cards) and returns the new state without touching its inputs. Persistence
// is the store's job.
//
// There are two distinct ways to answer a card:
//
//	// during a study session: confidence and counters only
//	next, err := scheduler.RecordAnswer(card.ReviewState, scheduler.Answer{Confidence: scheduler.Easy}, now)
//
//	// through the review-status endpoint: also schedules NextReview
//	next, err := scheduler.UpdateReviewStatus(card.ReviewState, scheduler.ReviewUpdate{IsKnown: &known}, now)
package scheduler
