package models

import "time"

// StudySession records one finished pass over a set of flashcards
type StudySession struct {
	ID             string    `gorm:"primaryKey;size:21" json:"id"`
	UserID         string    `gorm:"not null;size:21;index" json:"userId"`
	FolderID       *string   `gorm:"size:21" json:"folderId"`
	CardsStudied   int       `gorm:"not null;default:0" json:"cardsStudied"`
	CorrectAnswers int       `gorm:"not null;default:0" json:"correctAnswers"`
	Duration       int       `gorm:"not null;default:0" json:"duration"`
	CompletedAt    time.Time `gorm:"index" json:"completedAt"`
	CreatedAt      time.Time `json:"createdAt"`
}
