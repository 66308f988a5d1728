package store

import (
	"context"
	"testing"
	"time"

	"github.com/andrewpaige1/lexideck-api/apperr"
	"github.com/andrewpaige1/lexideck-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSessionValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "sess")

	err := s.CreateSession(ctx, &models.StudySession{UserID: u.ID, CardsStudied: 2, CorrectAnswers: 3})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	err = s.CreateSession(ctx, &models.StudySession{UserID: u.ID, FolderID: strPtr("ghost"), CardsStudied: 1})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	ok := &models.StudySession{UserID: u.ID, CardsStudied: 4, CorrectAnswers: 3, Duration: 60}
	require.NoError(t, s.CreateSession(ctx, ok))
	assert.False(t, ok.CompletedAt.IsZero())
}

func TestListSessionsPaging(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "pager")
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.CreateSession(ctx, &models.StudySession{
			UserID: u.ID, CardsStudied: i, CompletedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	page, err := s.ListSessions(ctx, u.ID, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Sessions, 2)
	assert.Equal(t, 4, page.Sessions[0].CardsStudied)

	last, err := s.ListSessions(ctx, u.ID, 3, 2)
	require.NoError(t, err)
	require.Len(t, last.Sessions, 1)
	assert.Equal(t, 0, last.Sessions[0].CardsStudied)

	defaults, err := s.ListSessions(ctx, u.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, defaults.Page)
	assert.Equal(t, 1, defaults.TotalPages)
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

	week, err := PeriodStart("", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 24, 12, 0, 0, 0, time.UTC), *week)

	year, err := PeriodStart("year", now)
	require.NoError(t, err)
	assert.Equal(t, 2023, year.Year())

	all, err := PeriodStart("all", now)
	require.NoError(t, err)
	assert.Nil(t, all)

	_, err = PeriodStart("decade", now)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestSessionStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "stats")
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	for _, sess := range []models.StudySession{
		{CardsStudied: 3, CorrectAnswers: 2, Duration: 100, CompletedAt: now.AddDate(0, 0, -1)},
		{CardsStudied: 3, CorrectAnswers: 3, Duration: 51, CompletedAt: now.AddDate(0, 0, -3)},
		{CardsStudied: 10, CorrectAnswers: 1, Duration: 999, CompletedAt: now.AddDate(0, -2, 0)},
	} {
		sess.UserID = u.ID
		require.NoError(t, s.CreateSession(ctx, &sess))
	}

	since, err := PeriodStart("week", now)
	require.NoError(t, err)
	recent, err := s.ListSessionsSince(ctx, u.ID, since)
	require.NoError(t, err)
	st := SummarizeSessions(recent)
	assert.Equal(t, 2, st.TotalSessions)
	assert.Equal(t, 6, st.TotalCardsStudied)
	assert.Equal(t, 5, st.TotalCorrect)
	assert.InDelta(t, 83.33, st.AverageAccuracy, 1e-9)
	assert.Equal(t, 76, st.AverageDuration)

	everything, err := s.ListSessionsSince(ctx, u.ID, nil)
	require.NoError(t, err)
	assert.Len(t, everything, 3)

	empty := SummarizeSessions(nil)
	assert.Zero(t, empty.AverageAccuracy)
	assert.Zero(t, empty.AverageDuration)
}

func TestListSessionsSinceBound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "bound")
	other := seedUser(t, s, "other")
	since := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)

	for _, sess := range []models.StudySession{
		{UserID: u.ID, CardsStudied: 1, CompletedAt: since},
		{UserID: u.ID, CardsStudied: 2, CompletedAt: since.Add(time.Hour)},
		{UserID: u.ID, CardsStudied: 3, CompletedAt: since.Add(-time.Second)},
		{UserID: other.ID, CardsStudied: 4, CompletedAt: since.Add(time.Hour)},
	} {
		require.NoError(t, s.CreateSession(ctx, &sess))
	}

	got, err := s.ListSessionsSince(ctx, u.ID, &since)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].CardsStudied, "newest first")
	assert.Equal(t, 1, got[1].CardsStudied, "the bound itself is included")
}
