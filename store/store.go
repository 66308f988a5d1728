// Package store is the gorm repository layer. It owns ownership checks,
// transactions and the folder card counters; the scheduler and quiz
// packages decide what to write.
package store

import (
	"context"
	"errors"

	"github.com/andrewpaige1/lexideck-api/apperr"
	"github.com/andrewpaige1/lexideck-api/models"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the handle for health checks and pool metrics.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Migrate creates or updates every table the API uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Folder{},
		&models.Flashcard{},
		&models.Quiz{},
		&models.QuizAttempt{},
		&models.StudySession{},
	)
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *Store) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.conn(ctx).Transaction(fn)
}

// notFound turns gorm's missing-row error into the domain error for resource.
func notFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(resource)
	}
	return err
}
