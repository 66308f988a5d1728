package store

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/andrewpaige1/lexideck-api/apperr"
	"github.com/andrewpaige1/lexideck-api/models"
)

const DefaultSessionPageSize = 20

// SessionPage is one page of a user's sessions, newest first.
type SessionPage struct {
	Sessions   []models.StudySession `json:"sessions"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"currentPage"`
	TotalPages int                   `json:"totalPages"`
}

// SessionStats aggregates the sessions of a period.
type SessionStats struct {
	TotalSessions     int     `json:"totalSessions"`
	TotalCardsStudied int     `json:"totalCardsStudied"`
	TotalCorrect      int     `json:"totalCorrectAnswers"`
	TotalDuration     int     `json:"totalDuration"`
	AverageAccuracy   float64 `json:"averageAccuracy"`
	AverageDuration   int     `json:"averageSessionDuration"`
}

// PeriodStart maps a stats period to the earliest completion time it
// includes. "all" has no lower bound; an empty period means "week".
func PeriodStart(period string, now time.Time) (*time.Time, error) {
	var start time.Time
	switch period {
	case "", "week":
		start = now.AddDate(0, 0, -7)
	case "month":
		start = now.AddDate(0, -1, 0)
	case "year":
		start = now.AddDate(-1, 0, 0)
	case "all":
		return nil, nil
	default:
		return nil, apperr.Validation("unknown period %q", period)
	}
	return &start, nil
}

func (s *Store) CreateSession(ctx context.Context, sess *models.StudySession) error {
	if sess.CardsStudied < 0 || sess.CorrectAnswers < 0 || sess.Duration < 0 {
		return apperr.Validation("session figures must not be negative")
	}
	if sess.CorrectAnswers > sess.CardsStudied {
		return apperr.Validation("correct answers cannot exceed cards studied")
	}
	if sess.FolderID != nil {
		if _, err := s.GetFolder(ctx, sess.UserID, *sess.FolderID); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return apperr.NotFound("folder")
			}
			return err
		}
	}
	if sess.CompletedAt.IsZero() {
		sess.CompletedAt = time.Now().UTC()
	}
	return s.conn(ctx).Create(sess).Error
}

func (s *Store) ListSessions(ctx context.Context, userID string, page, limit int) (*SessionPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultSessionPageSize
	}
	base := s.conn(ctx).Model(&models.StudySession{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}
	sessions := []models.StudySession{}
	if err := s.conn(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").Order("id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return &SessionPage{
		Sessions:   sessions,
		Total:      total,
		Page:       page,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// ListSessionsSince returns every session completed at or after since; nil means all.
func (s *Store) ListSessionsSince(ctx context.Context, userID string, since *time.Time) ([]models.StudySession, error) {
	q := s.conn(ctx).Where("user_id = ?", userID)
	if since != nil {
		q = q.Where("completed_at >= ?", *since)
	}
	var sessions []models.StudySession
	if err := q.Order("completed_at DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// SummarizeSessions totals the sessions. Accuracy is a percentage rounded to
// two decimals; average duration is rounded to whole seconds.
func SummarizeSessions(sessions []models.StudySession) SessionStats {
	st := SessionStats{TotalSessions: len(sessions)}
	for _, sess := range sessions {
		st.TotalCardsStudied += sess.CardsStudied
		st.TotalCorrect += sess.CorrectAnswers
		st.TotalDuration += sess.Duration
	}
	if st.TotalCardsStudied > 0 {
		acc := float64(st.TotalCorrect) / float64(st.TotalCardsStudied) * 100
		st.AverageAccuracy = math.Round(acc*100) / 100
	}
	if st.TotalSessions > 0 {
		st.AverageDuration = int(math.Round(float64(st.TotalDuration) / float64(st.TotalSessions)))
	}
	return st
}
