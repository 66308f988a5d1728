package store

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/andrewpaige1/lexideck-api/apperr"
	"github.com/andrewpaige1/lexideck-api/models"
	"gorm.io/gorm"
)

const (
	QuizAttemptsLimit = 10
	MyAttemptsLimit   = 20
)

// QuizFilter narrows ListQuizzes. Empty fields do not filter.
type QuizFilter struct {
	Category   string
	Difficulty string
}

// QuizBrief identifies the quiz an attempt belongs to in attempt listings.
type QuizBrief struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

// AttemptWithQuiz is an attempt listed across quizzes.
type AttemptWithQuiz struct {
	models.QuizAttempt
	Quiz *QuizBrief `json:"quiz"`
}

// ValidateQuiz checks the quiz-level fields and every question.
func ValidateQuiz(q *models.Quiz) error {
	if strings.TrimSpace(q.Title) == "" {
		return apperr.Validation("quiz title is required")
	}
	if q.Category != "" && !slices.Contains(models.QuizCategories, q.Category) {
		return apperr.Validation("unknown quiz category %q", q.Category)
	}
	if q.Difficulty != "" && !slices.Contains(models.QuizDifficulties, q.Difficulty) {
		return apperr.Validation("unknown quiz difficulty %q", q.Difficulty)
	}
	if q.PassingScore < 0 || q.PassingScore > 100 {
		return apperr.Validation("passing score must be between 0 and 100")
	}
	if q.TimeLimit < 0 {
		return apperr.Validation("time limit must not be negative")
	}
	return q.Questions.Validate()
}

// normalizeQuiz fills in an empty question list. A zero time limit or
// passing score is a real setting and is stored as given.
func normalizeQuiz(q *models.Quiz) {
	if q.Questions == nil {
		q.Questions = models.QuestionList{}
	}
}

// ListQuizzes returns public quizzes, newest first.
func (s *Store) ListQuizzes(ctx context.Context, f QuizFilter) ([]models.Quiz, error) {
	q := s.conn(ctx).Where("is_public = ?", true)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Difficulty != "" {
		q = q.Where("difficulty = ?", f.Difficulty)
	}
	var quizzes []models.Quiz
	err := q.Order("created_at DESC").Order("id").Find(&quizzes).Error
	return quizzes, err
}

func (s *Store) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	var q models.Quiz
	if err := s.conn(ctx).First(&q, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "quiz")
	}
	return &q, nil
}

func (s *Store) CreateQuiz(ctx context.Context, q *models.Quiz) error {
	normalizeQuiz(q)
	if err := ValidateQuiz(q); err != nil {
		return err
	}
	q.TotalAttempts = 0
	return s.conn(ctx).Create(q).Error
}

// UpsertQuizByTitle creates q, or overwrites the content of the quiz that
// already carries its title. The attempt counter of an existing quiz is kept.
func (s *Store) UpsertQuizByTitle(ctx context.Context, q *models.Quiz) (created bool, err error) {
	normalizeQuiz(q)
	if err := ValidateQuiz(q); err != nil {
		return false, err
	}
	err = s.transaction(ctx, func(tx *gorm.DB) error {
		var existing models.Quiz
		lookup := tx.Where("title = ?", q.Title).Limit(1).Find(&existing)
		if lookup.Error != nil {
			return lookup.Error
		}
		if lookup.RowsAffected == 0 {
			created = true
			return tx.Create(q).Error
		}
		q.ID = existing.ID
		q.TotalAttempts = existing.TotalAttempts
		q.CreatedAt = existing.CreatedAt
		return tx.Model(&existing).
			Select("description", "category", "difficulty", "questions", "time_limit", "passing_score", "is_public").
			Updates(q).Error
	})
	return created, err
}

// CreateAttempt inserts the attempt and increments the quiz's attempt
// counter by exactly one, in one transaction.
func (s *Store) CreateAttempt(ctx context.Context, a *models.QuizAttempt) error {
	if a.CompletedAt.IsZero() {
		a.CompletedAt = time.Now().UTC()
	}
	if a.Answers == nil {
		a.Answers = models.AnswerSheet{}
	}
	return s.transaction(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&models.Quiz{}).
			Where("id = ?", a.QuizID).
			UpdateColumn("total_attempts", gorm.Expr("total_attempts + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("quiz")
		}
		return tx.Create(a).Error
	})
}

// ListAttempts returns the user's most recent attempts at one quiz.
func (s *Store) ListAttempts(ctx context.Context, userID, quizID string, limit int) ([]models.QuizAttempt, error) {
	if limit <= 0 {
		limit = QuizAttemptsLimit
	}
	var attempts []models.QuizAttempt
	err := s.conn(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("completed_at DESC").Order("id DESC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}

func (s *Store) LatestAttempt(ctx context.Context, userID, quizID string) (*models.QuizAttempt, error) {
	var a models.QuizAttempt
	err := s.conn(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("completed_at DESC").Order("id DESC").
		First(&a).Error
	if err != nil {
		return nil, notFound(err, "quiz attempt")
	}
	return &a, nil
}

// ListUserAttempts returns the user's most recent attempts across all quizzes,
// each with a brief of its quiz (nil when the quiz no longer exists).
func (s *Store) ListUserAttempts(ctx context.Context, userID string, limit int) ([]AttemptWithQuiz, error) {
	if limit <= 0 {
		limit = MyAttemptsLimit
	}
	var attempts []models.QuizAttempt
	if err := s.conn(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").Order("id DESC").
		Limit(limit).
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(attempts))
	for _, a := range attempts {
		if !slices.Contains(ids, a.QuizID) {
			ids = append(ids, a.QuizID)
		}
	}
	briefs := map[string]*QuizBrief{}
	if len(ids) > 0 {
		var quizzes []models.Quiz
		if err := s.conn(ctx).
			Select("id", "title", "category", "difficulty").
			Where("id IN ?", ids).
			Find(&quizzes).Error; err != nil {
			return nil, err
		}
		for _, q := range quizzes {
			briefs[q.ID] = &QuizBrief{ID: q.ID, Title: q.Title, Category: q.Category, Difficulty: q.Difficulty}
		}
	}

	out := make([]AttemptWithQuiz, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, AttemptWithQuiz{QuizAttempt: a, Quiz: briefs[a.QuizID]})
	}
	return out, nil
}
