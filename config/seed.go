package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/andrewpaige1/lexideck-api/models"
	"github.com/andrewpaige1/lexideck-api/store"
	"github.com/sirupsen/logrus"
)

// seedQuiz tells omitted settings apart from explicit zeros. Omitted
// settings take the model defaults and omitted isPublic means public.
type seedQuiz struct {
	models.Quiz
	IsPublic     *bool `json:"isPublic"`
	TimeLimit    *int  `json:"timeLimit"`
	PassingScore *int  `json:"passingScore"`
}

func (e seedQuiz) quiz() *models.Quiz {
	q := e.Quiz
	q.ID = ""
	q.IsPublic = e.IsPublic == nil || *e.IsPublic
	q.TimeLimit = models.DefaultTimeLimit
	if e.TimeLimit != nil {
		q.TimeLimit = *e.TimeLimit
	}
	q.PassingScore = models.DefaultPassingScore
	if e.PassingScore != nil {
		q.PassingScore = *e.PassingScore
	}
	return &q
}

// SeedQuizzes loads a JSON array of quizzes from path and upserts each one by
// title. Questions may be given as an array or as a JSON-encoded string.
func SeedQuizzes(ctx context.Context, s *store.Store, path string, log logrus.FieldLogger) (created, updated int, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("seed: read %s: %w", path, err)
	}
	var entries []seedQuiz
	if err := json.Unmarshal(raw, &entries); err != nil {
		return 0, 0, fmt.Errorf("seed: decode %s: %w", path, err)
	}

	for i := range entries {
		q := entries[i].quiz()
		isNew, err := s.UpsertQuizByTitle(ctx, q)
		if err != nil {
			return created, updated, fmt.Errorf("seed: quiz %q: %w", q.Title, err)
		}
		if isNew {
			created++
		} else {
			updated++
		}
		log.WithFields(logrus.Fields{
			"quiz_id":   q.ID,
			"title":     q.Title,
			"questions": len(q.Questions),
			"created":   isNew,
		}).Debug("seeded quiz")
	}
	return created, updated, nil
}
