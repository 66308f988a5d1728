package models

import (
	"time"

	"gorm.io/datatypes"
)

// ReviewState is the scheduling part of a flashcard. It is embedded in
// Flashcard and is the only thing the scheduler reads or writes.
type ReviewState struct {
	ReviewCount     int        `gorm:"not null;default:0" json:"reviewCount"`
	LastReviewed    *time.Time `json:"lastReviewed"`
	NextReview      *time.Time `gorm:"index" json:"nextReview"`
	IsKnown         bool       `gorm:"not null;default:false;index" json:"isKnown"`
	ConfidenceLevel int        `gorm:"not null;default:0" json:"confidenceLevel"`
}

// Flashcard represents an individual flashcard
type Flashcard struct {
	ID       string  `gorm:"primaryKey;size:21" json:"id"`
	UserID   string  `gorm:"not null;size:21;index" json:"userId"`
	FolderID *string `gorm:"size:21;index" json:"folderId"`

	FrontContent  string `gorm:"type:text;not null" json:"frontContent"`
	FrontImage    string `gorm:"size:255" json:"frontImage"`
	BackContent   string `gorm:"type:text;not null" json:"backContent"`
	BackImage     string `gorm:"size:255" json:"backImage"`
	Pronunciation string `gorm:"size:100" json:"pronunciation"`
	PartOfSpeech  string `gorm:"size:50" json:"partOfSpeech"`
	Example       string `gorm:"type:text" json:"example"`
	ExampleSource string `gorm:"size:255" json:"exampleSource"`
	AudioURL      string `gorm:"size:255" json:"audioUrl"`

	Tags datatypes.JSONSlice[string] `json:"tags"`

	ReviewState

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PartsOfSpeech lists the accepted values for Flashcard.PartOfSpeech.
var PartsOfSpeech = []string{
	"noun", "verb", "adjective", "adverb", "pronoun",
	"preposition", "conjunction", "interjection", "other", "",
}
