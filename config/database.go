package config

import (
	"strings"
	"time"

	"github.com/andrewpaige1/lexideck-api/store"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database named by url and migrates it. A "sqlite:"
// prefix selects SQLite (file path or :memory:); anything else is handed to
// the postgres driver.
func Connect(url string, debug bool) (*gorm.DB, error) {
	dialector, inMemory := dialectorFor(url)

	level := logger.Warn
	if debug {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  logger.Default.LogMode(level),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if inMemory {
		// every connection to :memory: is a separate database
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := store.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func dialectorFor(url string) (gorm.Dialector, bool) {
	if path, ok := strings.CutPrefix(url, "sqlite:"); ok {
		return sqlite.Open(path), strings.Contains(path, ":memory:")
	}
	return postgres.Open(url), false
}
