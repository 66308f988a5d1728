package store

import (
	"context"
	"testing"
	"time"

	"github.com/andrewpaige1/lexideck-api/apperr"
	"github.com/andrewpaige1/lexideck-api/models"
	"github.com/andrewpaige1/lexideck-api/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireCountsTrue checks every folder's cached count against its real card count.
func requireCountsTrue(t *testing.T, s *Store, userID string) {
	t.Helper()
	folders, err := s.ListFolders(context.Background(), userID, nil, false)
	require.NoError(t, err)
	for _, f := range folders {
		var n int64
		require.NoError(t, s.DB().Model(&models.Flashcard{}).Where("folder_id = ?", f.ID).Count(&n).Error)
		require.EqualValues(t, n, f.FlashcardCount, "folder %s", f.Name)
	}
}

func TestFolderCountConservation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "an")
	a := seedFolder(t, s, u.ID, "A", nil)
	b := seedFolder(t, s, u.ID, "B", nil)

	cards := []*models.Flashcard{
		{UserID: u.ID, FolderID: &a.ID, FrontContent: "one", BackContent: "1"},
		{UserID: u.ID, FolderID: &a.ID, FrontContent: "two", BackContent: "2"},
		{UserID: u.ID, FolderID: &b.ID, FrontContent: "three", BackContent: "3"},
		{UserID: u.ID, FrontContent: "four", BackContent: "4"},
	}
	require.NoError(t, s.CreateFlashcards(ctx, cards))
	requireCountsTrue(t, s, u.ID)

	// move A -> B
	_, err := s.UpdateFlashcard(ctx, u.ID, cards[0].ID, FlashcardUpdate{MoveFolder: true, FolderID: &b.ID})
	require.NoError(t, err)
	requireCountsTrue(t, s, u.ID)

	// an edit that does not mention the folder leaves it alone
	_, err = s.UpdateFlashcard(ctx, u.ID, cards[1].ID, FlashcardUpdate{FrontContent: strPtr("deux")})
	require.NoError(t, err)
	requireCountsTrue(t, s, u.ID)

	// unassign
	_, err = s.UpdateFlashcard(ctx, u.ID, cards[2].ID, FlashcardUpdate{MoveFolder: true})
	require.NoError(t, err)
	requireCountsTrue(t, s, u.ID)

	// add into the folder it is already in
	_, err = s.AddCardToFolder(ctx, u.ID, b.ID, cards[0].ID)
	require.NoError(t, err)
	requireCountsTrue(t, s, u.ID)

	_, err = s.AddCardToFolder(ctx, u.ID, a.ID, cards[3].ID)
	require.NoError(t, err)
	requireCountsTrue(t, s, u.ID)

	require.NoError(t, s.RemoveCardFromFolder(ctx, u.ID, a.ID, cards[3].ID))
	requireCountsTrue(t, s, u.ID)

	require.NoError(t, s.DeleteFlashcard(ctx, u.ID, cards[0].ID))
	requireCountsTrue(t, s, u.ID)

	got, err := s.GetFolder(ctx, u.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.FlashcardCount)
	got, err = s.GetFolder(ctx, u.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.FlashcardCount)
}

func TestCreateFlashcardsRejectsForeignFolder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "owner")
	other := seedUser(t, s, "other")
	f := seedFolder(t, s, owner.ID, "Mine", nil)

	err := s.CreateFlashcards(ctx, []*models.Flashcard{
		{UserID: other.ID, FrontContent: "ok", BackContent: "ok"},
		{UserID: other.ID, FolderID: &f.ID, FrontContent: "x", BackContent: "y"},
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	cards, err := s.ListFlashcards(ctx, other.ID, FlashcardFilter{})
	require.NoError(t, err)
	assert.Empty(t, cards, "nothing from a failed batch is kept")
	requireCountsTrue(t, s, owner.ID)
}

func TestCreateFlashcardStartsFresh(t *testing.T) {
	s := newTestStore(t)
	u := seedUser(t, s, "fresh")
	c := &models.Flashcard{
		UserID: u.ID, FrontContent: "hola", BackContent: "hello",
		ReviewState: models.ReviewState{ReviewCount: 9, ConfidenceLevel: 4, IsKnown: true},
	}
	require.NoError(t, s.CreateFlashcard(context.Background(), c))

	got, err := s.GetFlashcard(context.Background(), u.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ReviewCount)
	assert.Equal(t, 0, got.ConfidenceLevel)
	assert.False(t, got.IsKnown)
	assert.Nil(t, got.NextReview)
}

func TestListFlashcardsFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "filter")
	f := seedFolder(t, s, u.ID, "Verbs", nil)

	run := seedCard(t, s, u.ID, &f.ID, "Run")
	walk := seedCard(t, s, u.ID, &f.ID, "walk")
	seedCard(t, s, u.ID, nil, "table")

	_, err := s.SaveReviewState(ctx, u.ID, run.ID, models.ReviewState{ConfidenceLevel: 1, ReviewCount: 1})
	require.NoError(t, err)
	_, err = s.SaveReviewState(ctx, u.ID, walk.ID, models.ReviewState{ConfidenceLevel: 5, IsKnown: true, ReviewCount: 3})
	require.NoError(t, err)

	all, err := s.ListFlashcards(ctx, u.ID, FlashcardFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	inFolder, err := s.ListFlashcards(ctx, u.ID, FlashcardFilter{FolderID: &f.ID})
	require.NoError(t, err)
	assert.Len(t, inFolder, 2)

	known := true
	knownCards, err := s.ListFlashcards(ctx, u.ID, FlashcardFilter{IsKnown: &known})
	require.NoError(t, err)
	require.Len(t, knownCards, 1)
	assert.Equal(t, walk.ID, knownCards[0].ID)

	levels, err := scheduler.ParseConfidenceSet("0,1,2")
	require.NoError(t, err)
	weak, err := s.ListFlashcards(ctx, u.ID, FlashcardFilter{Levels: levels})
	require.NoError(t, err)
	assert.Len(t, weak, 2)

	found, err := s.ListFlashcards(ctx, u.ID, FlashcardFilter{Search: "RUN"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, run.ID, found[0].ID)

	other := seedUser(t, s, "someone")
	none, err := s.ListFlashcards(ctx, other.ID, FlashcardFilter{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSaveReviewStateRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "review")
	c := seedCard(t, s, u.ID, nil, "gato")

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	known := true
	state, err := scheduler.UpdateReviewStatus(c.ReviewState, scheduler.ReviewUpdate{IsKnown: &known}, now)
	require.NoError(t, err)

	got, err := s.SaveReviewState(ctx, u.ID, c.ID, state)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ReviewCount)
	require.NotNil(t, got.NextReview)
	assert.True(t, got.NextReview.Equal(now.AddDate(0, 0, 1)))

	_, err = s.SaveReviewState(ctx, "intruder", c.ID, state)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateFlashcardValidatesReviewFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "direct")
	c := seedCard(t, s, u.ID, nil, "perro")

	bad := 6
	_, err := s.UpdateFlashcard(ctx, u.ID, c.ID, FlashcardUpdate{ConfidenceLevel: &bad})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	neg := -1
	_, err = s.UpdateFlashcard(ctx, u.ID, c.ID, FlashcardUpdate{ReviewCount: &neg})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = s.UpdateFlashcard(ctx, u.ID, c.ID, FlashcardUpdate{BackContent: strPtr("  ")})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	ok := 4
	tags := []string{"animals"}
	got, err := s.UpdateFlashcard(ctx, u.ID, c.ID, FlashcardUpdate{ConfidenceLevel: &ok, Tags: &tags})
	require.NoError(t, err)
	assert.Equal(t, 4, got.ConfidenceLevel)
	assert.Equal(t, []string{"animals"}, []string(got.Tags))
}

func TestResetFolderProgress(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "reset")
	f := seedFolder(t, s, u.ID, "Nouns", nil)
	outside := seedCard(t, s, u.ID, nil, "outside")

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := now.AddDate(0, 0, 5)
	states := []models.ReviewState{
		{ReviewCount: 1, ConfidenceLevel: 1, LastReviewed: &now},
		{ReviewCount: 4, ConfidenceLevel: 3, LastReviewed: &now, NextReview: &later},
		{ReviewCount: 9, ConfidenceLevel: 5, IsKnown: true, LastReviewed: &now, NextReview: &later},
	}
	for i, st := range states {
		c := seedCard(t, s, u.ID, &f.ID, string(rune('a'+i)))
		_, err := s.SaveReviewState(ctx, u.ID, c.ID, st)
		require.NoError(t, err)
	}
	_, err := s.SaveReviewState(ctx, u.ID, outside.ID, states[2])
	require.NoError(t, err)

	n, err := s.ResetFolderProgress(ctx, u.ID, f.ID, scheduler.ResetState())
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	cards, err := s.ListFlashcards(ctx, u.ID, FlashcardFilter{FolderID: &f.ID})
	require.NoError(t, err)
	require.Len(t, cards, 3)
	for _, c := range cards {
		assert.Equal(t, 0, c.ConfidenceLevel)
		assert.Equal(t, 0, c.ReviewCount)
		assert.False(t, c.IsKnown)
		assert.Nil(t, c.NextReview)
		assert.Nil(t, c.LastReviewed)
	}

	untouched, err := s.GetFlashcard(ctx, u.ID, outside.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, untouched.ReviewCount)

	_, err = s.ResetFolderProgress(ctx, "stranger", f.ID, scheduler.ResetState())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
