package store

import (
	"context"
	"testing"
	"time"

	"github.com/andrewpaige1/lexideck-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return New(db)
}

func seedUser(t *testing.T, s *Store, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@example.com", Password: "hash"}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func seedFolder(t *testing.T, s *Store, userID, name string, parent *string) *models.Folder {
	t.Helper()
	f := &models.Folder{UserID: userID, Name: name, ParentFolderID: parent}
	require.NoError(t, s.CreateFolder(context.Background(), f))
	return f
}

func seedCard(t *testing.T, s *Store, userID string, folderID *string, front string) *models.Flashcard {
	t.Helper()
	c := &models.Flashcard{UserID: userID, FolderID: folderID, FrontContent: front, BackContent: front + " back"}
	require.NoError(t, s.CreateFlashcard(context.Background(), c))
	return c
}

func strPtr(s string) *string { return &s }
