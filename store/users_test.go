package store

import (
	"context"
	"testing"

	"github.com/andrewpaige1/lexideck-api/apperr"
	"github.com/andrewpaige1/lexideck-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRejectsDuplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "mai")
	assert.Len(t, u.ID, 21)

	err := s.CreateUser(ctx, &models.User{Username: "other", Email: "mai@example.com", Password: "x"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	err = s.CreateUser(ctx, &models.User{Username: "mai", Email: "new@example.com", Password: "x"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "linh")

	got, err := s.GetUserByEmail(ctx, "linh@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "hoa")
	seedUser(t, s, "taken")

	avatar := "https://cdn.example/hoa.png"
	got, err := s.UpdateUser(ctx, u.ID, UserUpdate{Avatar: &avatar, Username: strPtr("hoa2")})
	require.NoError(t, err)
	assert.Equal(t, "hoa2", got.Username)
	assert.Equal(t, avatar, got.Avatar)

	_, err = s.UpdateUser(ctx, u.ID, UserUpdate{Email: strPtr("taken@example.com")})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// unchanged values are not conflicts with yourself
	_, err = s.UpdateUser(ctx, u.ID, UserUpdate{Email: strPtr("hoa@example.com")})
	assert.NoError(t, err)

	_, err = s.UpdateUser(ctx, "missing", UserUpdate{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
