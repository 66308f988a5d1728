package store

import (
	"context"
	"strings"

	"github.com/andrewpaige1/lexideck-api/apperr"
	"github.com/andrewpaige1/lexideck-api/models"
	"github.com/andrewpaige1/lexideck-api/scheduler"
	"gorm.io/gorm"
)

// FlashcardFilter narrows ListFlashcards. Zero fields do not filter.
type FlashcardFilter struct {
	FolderID *string
	IsKnown  *bool
	Levels   scheduler.ConfidenceSet
	Search   string
}

// FlashcardUpdate carries the fields of a direct edit. Nil pointers are left
// alone. MoveFolder must be set for FolderID to be applied, so a nil FolderID
// with MoveFolder unassigns the card.
type FlashcardUpdate struct {
	FrontContent  *string
	FrontImage    *string
	BackContent   *string
	BackImage     *string
	Pronunciation *string
	PartOfSpeech  *string
	Example       *string
	ExampleSource *string
	AudioURL      *string
	Tags          *[]string

	MoveFolder bool
	FolderID   *string

	ReviewCount     *int
	ConfidenceLevel *int
	IsKnown         *bool
}

func (s *Store) ListFlashcards(ctx context.Context, userID string, f FlashcardFilter) ([]models.Flashcard, error) {
	q := s.conn(ctx).Where("user_id = ?", userID)
	if f.FolderID != nil {
		q = q.Where("folder_id = ?", *f.FolderID)
	}
	if f.IsKnown != nil {
		q = q.Where("is_known = ?", *f.IsKnown)
	}
	if !f.Levels.IsEmpty() {
		q = q.Where("confidence_level IN ?", f.Levels.Ints())
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("(LOWER(front_content) LIKE ? OR LOWER(back_content) LIKE ?)", like, like)
	}

	var cards []models.Flashcard
	if err := q.Order("created_at DESC").Order("id DESC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// ListUnknownFlashcards returns every card the user has not marked known,
// the candidate set for due selection.
func (s *Store) ListUnknownFlashcards(ctx context.Context, userID string) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	err := s.conn(ctx).
		Where("user_id = ? AND is_known = ?", userID, false).
		Find(&cards).Error
	return cards, err
}

func (s *Store) GetFlashcard(ctx context.Context, userID, id string) (*models.Flashcard, error) {
	return getFlashcard(s.conn(ctx), userID, id)
}

func getFlashcard(tx *gorm.DB, userID, id string) (*models.Flashcard, error) {
	var card models.Flashcard
	if err := tx.First(&card, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, notFound(err, "flashcard")
	}
	return &card, nil
}

// CreateFlashcard inserts card with a fresh review state and bumps its folder count.
func (s *Store) CreateFlashcard(ctx context.Context, card *models.Flashcard) error {
	return s.CreateFlashcards(ctx, []*models.Flashcard{card})
}

// CreateFlashcards inserts cards in one transaction. Every referenced folder
// must belong to the card's owner.
func (s *Store) CreateFlashcards(ctx context.Context, cards []*models.Flashcard) error {
	if len(cards) == 0 {
		return apperr.Validation("at least one flashcard is required")
	}
	return s.transaction(ctx, func(tx *gorm.DB) error {
		added := map[string]int{}
		checked := map[string]bool{}
		for _, card := range cards {
			card.ReviewState = scheduler.ResetState()
			if card.FolderID == nil {
				continue
			}
			if !checked[*card.FolderID] {
				if _, err := getFolder(tx, card.UserID, *card.FolderID); err != nil {
					return err
				}
				checked[*card.FolderID] = true
			}
			added[*card.FolderID]++
		}
		if err := tx.Create(cards).Error; err != nil {
			return err
		}
		for folderID, n := range added {
			if err := adjustFolderCount(tx, &folderID, n); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateFlashcard applies u to the user's card. A folder change moves the
// card's contribution between the two cached counts in the same transaction.
func (s *Store) UpdateFlashcard(ctx context.Context, userID, id string, u FlashcardUpdate) (*models.Flashcard, error) {
	var card *models.Flashcard
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var err error
		card, err = getFlashcard(tx, userID, id)
		if err != nil {
			return err
		}
		if err := u.validate(); err != nil {
			return err
		}

		oldFolder := card.FolderID
		u.apply(card)
		if u.MoveFolder && !sameFolder(oldFolder, u.FolderID) {
			if u.FolderID != nil {
				if _, err := getFolder(tx, userID, *u.FolderID); err != nil {
					return err
				}
			}
			if err := adjustFolderCount(tx, oldFolder, -1); err != nil {
				return err
			}
			if err := adjustFolderCount(tx, u.FolderID, 1); err != nil {
				return err
			}
			card.FolderID = u.FolderID
		}
		return tx.Save(card).Error
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (u FlashcardUpdate) validate() error {
	if u.ConfidenceLevel != nil {
		if err := scheduler.Confidence(*u.ConfidenceLevel).Validate(); err != nil {
			return err
		}
	}
	if u.ReviewCount != nil && *u.ReviewCount < 0 {
		return apperr.Validation("reviewCount must not be negative")
	}
	if u.FrontContent != nil && strings.TrimSpace(*u.FrontContent) == "" {
		return apperr.Validation("front content is required")
	}
	if u.BackContent != nil && strings.TrimSpace(*u.BackContent) == "" {
		return apperr.Validation("back content is required")
	}
	return nil
}

func (u FlashcardUpdate) apply(card *models.Flashcard) {
	setString(&card.FrontContent, u.FrontContent)
	setString(&card.FrontImage, u.FrontImage)
	setString(&card.BackContent, u.BackContent)
	setString(&card.BackImage, u.BackImage)
	setString(&card.Pronunciation, u.Pronunciation)
	setString(&card.PartOfSpeech, u.PartOfSpeech)
	setString(&card.Example, u.Example)
	setString(&card.ExampleSource, u.ExampleSource)
	setString(&card.AudioURL, u.AudioURL)
	if u.Tags != nil {
		card.Tags = *u.Tags
	}
	if u.ReviewCount != nil {
		card.ReviewCount = *u.ReviewCount
	}
	if u.ConfidenceLevel != nil {
		card.ConfidenceLevel = *u.ConfidenceLevel
	}
	if u.IsKnown != nil {
		card.IsKnown = *u.IsKnown
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// SaveReviewState writes only the scheduling columns of the card.
func (s *Store) SaveReviewState(ctx context.Context, userID, id string, state models.ReviewState) (*models.Flashcard, error) {
	res := s.conn(ctx).Model(&models.Flashcard{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(reviewColumns(state))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("flashcard")
	}
	return s.GetFlashcard(ctx, userID, id)
}

func reviewColumns(state models.ReviewState) map[string]any {
	return map[string]any{
		"review_count":     state.ReviewCount,
		"last_reviewed":    state.LastReviewed,
		"next_review":      state.NextReview,
		"is_known":         state.IsKnown,
		"confidence_level": state.ConfidenceLevel,
	}
}

// ResetFolderProgress sets every card of the user's folder to state in one
// bulk update and returns how many cards were reset.
func (s *Store) ResetFolderProgress(ctx context.Context, userID, folderID string, state models.ReviewState) (int64, error) {
	var reset int64
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if _, err := getFolder(tx, userID, folderID); err != nil {
			return err
		}
		res := tx.Model(&models.Flashcard{}).
			Where("user_id = ? AND folder_id = ?", userID, folderID).
			Updates(reviewColumns(state))
		reset = res.RowsAffected
		return res.Error
	})
	return reset, err
}

func (s *Store) DeleteFlashcard(ctx context.Context, userID, id string) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		card, err := getFlashcard(tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.Flashcard{}, "id = ?", card.ID).Error; err != nil {
			return err
		}
		return adjustFolderCount(tx, card.FolderID, -1)
	})
}
