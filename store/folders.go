package store

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/andrewpaige1/lexideck-api/apperr"
	"github.com/andrewpaige1/lexideck-api/models"
	"gorm.io/gorm"
)

// GoodConfidence is the level at which a card counts towards a folder's goodCount.
const GoodConfidence = 5

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// FolderWithStats is a folder as listed: its cached count plus a live count
// of cards at GoodConfidence.
type FolderWithStats struct {
	models.Folder
	GoodCount int `json:"goodCount"`
}

// FolderDetail is a folder with its cards and direct children.
type FolderDetail struct {
	models.Folder
	Flashcards []models.Flashcard `json:"flashcards"`
	Children   []models.Folder    `json:"childFolders"`
}

type FolderUpdate struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string

	MoveParent     bool
	ParentFolderID *string
}

func getFolder(tx *gorm.DB, userID, id string) (*models.Folder, error) {
	var f models.Folder
	if err := tx.First(&f, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, notFound(err, "folder")
	}
	return &f, nil
}

func loadArena(tx *gorm.DB, userID string) (*folderArena, error) {
	var folders []models.Folder
	if err := tx.Select("id", "parent_folder_id").Where("user_id = ?", userID).Find(&folders).Error; err != nil {
		return nil, err
	}
	return newFolderArena(folders), nil
}

func adjustFolderCount(tx *gorm.DB, folderID *string, delta int) error {
	if folderID == nil || delta == 0 {
		return nil
	}
	return tx.Model(&models.Folder{}).
		Where("id = ?", *folderID).
		UpdateColumn("flashcard_count", gorm.Expr("flashcard_count + ?", delta)).Error
}

func sameFolder(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func validateFolderFields(name, description, color string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Validation("folder name is required")
	}
	if len(name) > 100 {
		return apperr.Validation("folder name cannot exceed 100 characters")
	}
	if len(description) > 500 {
		return apperr.Validation("description cannot exceed 500 characters")
	}
	if !hexColor.MatchString(color) {
		return apperr.Validation("color must be a hex value like %s", models.DefaultFolderColor)
	}
	return nil
}

func (s *Store) CreateFolder(ctx context.Context, f *models.Folder) error {
	if f.Color == "" {
		f.Color = models.DefaultFolderColor
	}
	if err := validateFolderFields(f.Name, f.Description, f.Color); err != nil {
		return err
	}
	f.FlashcardCount = 0
	return s.transaction(ctx, func(tx *gorm.DB) error {
		if f.ParentFolderID != nil {
			if _, err := getFolder(tx, f.UserID, *f.ParentFolderID); err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					return apperr.NotFound("parent folder")
				}
				return err
			}
		}
		return tx.Create(f).Error
	})
}

// ListFolders returns the user's folders, optionally only the children of
// parentID (an empty parentID with rootsOnly lists the top level).
func (s *Store) ListFolders(ctx context.Context, userID string, parentID *string, rootsOnly bool) ([]FolderWithStats, error) {
	q := s.conn(ctx).Where("user_id = ?", userID)
	switch {
	case parentID != nil:
		q = q.Where("parent_folder_id = ?", *parentID)
	case rootsOnly:
		q = q.Where("parent_folder_id IS NULL")
	}
	var folders []models.Folder
	if err := q.Order("created_at DESC").Order("id").Find(&folders).Error; err != nil {
		return nil, err
	}

	var good []struct {
		FolderID string
		Total    int
	}
	err := s.conn(ctx).Model(&models.Flashcard{}).
		Select("folder_id, COUNT(*) AS total").
		Where("user_id = ? AND folder_id IS NOT NULL AND confidence_level >= ?", userID, GoodConfidence).
		Group("folder_id").
		Scan(&good).Error
	if err != nil {
		return nil, err
	}
	goodByFolder := make(map[string]int, len(good))
	for _, g := range good {
		goodByFolder[g.FolderID] = g.Total
	}

	out := make([]FolderWithStats, 0, len(folders))
	for _, f := range folders {
		out = append(out, FolderWithStats{Folder: f, GoodCount: goodByFolder[f.ID]})
	}
	return out, nil
}

func (s *Store) GetFolder(ctx context.Context, userID, id string) (*models.Folder, error) {
	return getFolder(s.conn(ctx), userID, id)
}

func (s *Store) GetFolderDetail(ctx context.Context, userID, id string) (*FolderDetail, error) {
	f, err := s.GetFolder(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	d := &FolderDetail{Folder: *f, Flashcards: []models.Flashcard{}, Children: []models.Folder{}}
	if err := s.conn(ctx).
		Where("user_id = ? AND folder_id = ?", userID, id).
		Order("created_at DESC").Find(&d.Flashcards).Error; err != nil {
		return nil, err
	}
	if err := s.conn(ctx).
		Where("user_id = ? AND parent_folder_id = ?", userID, id).
		Order("created_at DESC").Find(&d.Children).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateFolder applies u. A parent change is checked against the owner's
// folder tree: a folder may not become its own ancestor.
func (s *Store) UpdateFolder(ctx context.Context, userID, id string, u FolderUpdate) (*models.Folder, error) {
	var f *models.Folder
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var err error
		f, err = getFolder(tx, userID, id)
		if err != nil {
			return err
		}
		setString(&f.Name, u.Name)
		setString(&f.Description, u.Description)
		setString(&f.Color, u.Color)
		setString(&f.Icon, u.Icon)
		if err := validateFolderFields(f.Name, f.Description, f.Color); err != nil {
			return err
		}
		if u.MoveParent && !sameFolder(f.ParentFolderID, u.ParentFolderID) {
			if err := checkParent(tx, userID, id, u.ParentFolderID); err != nil {
				return err
			}
			f.ParentFolderID = u.ParentFolderID
		}
		return tx.Save(f).Error
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// MoveFolder re-parents the folder. A nil parent moves it to the top level.
func (s *Store) MoveFolder(ctx context.Context, userID, id string, parentID *string) (*models.Folder, error) {
	return s.UpdateFolder(ctx, userID, id, FolderUpdate{MoveParent: true, ParentFolderID: parentID})
}

func checkParent(tx *gorm.DB, userID, id string, parentID *string) error {
	if parentID == nil {
		return nil
	}
	arena, err := loadArena(tx, userID)
	if err != nil {
		return err
	}
	if !arena.has(*parentID) {
		return apperr.NotFound("parent folder")
	}
	if arena.wouldCycle(id, *parentID) {
		return apperr.Conflict("a folder cannot be moved into itself or one of its subfolders")
	}
	return nil
}

// DeleteFolder removes the folder and every descendant, and unassigns all
// cards that were in the removed subtree. Either all of it happens or none.
func (s *Store) DeleteFolder(ctx context.Context, userID, id string) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		if _, err := getFolder(tx, userID, id); err != nil {
			return err
		}
		arena, err := loadArena(tx, userID)
		if err != nil {
			return err
		}
		doomed := arena.subtree(id)

		if err := tx.Model(&models.Flashcard{}).
			Where("user_id = ? AND folder_id IN ?", userID, doomed).
			Update("folder_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.StudySession{}).
			Where("user_id = ? AND folder_id IN ?", userID, doomed).
			Update("folder_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND id IN ?", userID, doomed).Delete(&models.Folder{}).Error
	})
}

// RecountFolder recomputes the cached count from the cards actually assigned.
func (s *Store) RecountFolder(ctx context.Context, userID, id string) (*models.Folder, error) {
	var f *models.Folder
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var err error
		if f, err = getFolder(tx, userID, id); err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&models.Flashcard{}).Where("folder_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		f.FlashcardCount = int(n)
		return tx.Model(f).UpdateColumn("flashcard_count", n).Error
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// AddCardToFolder assigns the card to the folder, moving its count from any
// previous folder. Adding a card to the folder it is already in changes nothing.
func (s *Store) AddCardToFolder(ctx context.Context, userID, folderID, cardID string) (*models.Flashcard, error) {
	var card *models.Flashcard
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if _, err := getFolder(tx, userID, folderID); err != nil {
			return err
		}
		var err error
		if card, err = getFlashcard(tx, userID, cardID); err != nil {
			return err
		}
		if sameFolder(card.FolderID, &folderID) {
			return nil
		}
		if err := adjustFolderCount(tx, card.FolderID, -1); err != nil {
			return err
		}
		if err := adjustFolderCount(tx, &folderID, 1); err != nil {
			return err
		}
		card.FolderID = &folderID
		return tx.Model(card).Update("folder_id", folderID).Error
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// RemoveCardFromFolder unassigns a card that is currently in the folder.
func (s *Store) RemoveCardFromFolder(ctx context.Context, userID, folderID, cardID string) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		if _, err := getFolder(tx, userID, folderID); err != nil {
			return err
		}
		res := tx.Model(&models.Flashcard{}).
			Where("id = ? AND user_id = ? AND folder_id = ?", cardID, userID, folderID).
			Update("folder_id", nil)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("flashcard in this folder")
		}
		return adjustFolderCount(tx, &folderID, -1)
	})
}
