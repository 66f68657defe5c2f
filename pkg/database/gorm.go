package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"llamadesk-be/internal/model"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func getLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)
}

// NewGormDB opens (creating if needed) the embedded database file and
// migrates the three tables. SQLite ships with foreign-key enforcement
// switched off, so it is enabled here once at handle construction; the
// message->session constraint in appendMessage depends on it.
func NewGormDB(path string) (*gorm.DB, error) {
	// _fk=1 enables the pragma on every pooled connection, not just the one
	// that happens to run the statement below.
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_fk=1"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: getLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %s: %w", path, err)
	}

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := db.AutoMigrate(&model.Group{}, &model.ChatSession{}, &model.ChatMessage{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	// A single writer keeps transaction semantics trivial; the app serves
	// one local client.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// IsForeignKeyViolation reports whether err is the SQLite foreign-key
// constraint error, e.g. inserting a message for a session that no longer
// exists.
func IsForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
