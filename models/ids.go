package models

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

// assignID fills an empty primary key with a nanoid before insert.
func assignID(id *string) error {
	if *id != "" {
		return nil
	}
	publicID, err := gonanoid.New()
	if err != nil {
		return err
	}
	*id = publicID
	return nil
}

func (u *User) BeforeCreate(tx *gorm.DB) error         { return assignID(&u.ID) }
func (f *Folder) BeforeCreate(tx *gorm.DB) error       { return assignID(&f.ID) }
func (f *Flashcard) BeforeCreate(tx *gorm.DB) error    { return assignID(&f.ID) }
func (q *Quiz) BeforeCreate(tx *gorm.DB) error         { return assignID(&q.ID) }
func (a *QuizAttempt) BeforeCreate(tx *gorm.DB) error  { return assignID(&a.ID) }
func (s *StudySession) BeforeCreate(tx *gorm.DB) error { return assignID(&s.ID) }
