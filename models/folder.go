package models

import "time"

const DefaultFolderColor = "#6366f1"

// Folder groups flashcards. Folders nest through ParentFolderID and never form a cycle.
type Folder struct {
	ID             string    `gorm:"primaryKey;size:21" json:"id"`
	UserID         string    `gorm:"not null;size:21;index:idx_folders_user_parent" json:"userId"`
	ParentFolderID *string   `gorm:"size:21;index:idx_folders_user_parent" json:"parentFolder"`
	Name           string    `gorm:"not null;size:100" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	Color          string    `gorm:"size:7" json:"color"`
	Icon           string    `gorm:"size:50" json:"icon"`
	FlashcardCount int       `gorm:"not null;default:0" json:"flashcardCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
