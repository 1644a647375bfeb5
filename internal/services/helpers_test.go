package services

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lingoqr/lingoqr/internal/models"
)

// newTestDB returns an isolated in-memory database with the schema
// migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Translation{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// stubTranslator is a canned Translator for tests.
type stubTranslator struct {
	enabled       bool
	result        *TranslateResult
	translateErr  error
	languages     []Language
	languagesErr  error
	languageCalls int
}

func (s *stubTranslator) Translate(_ context.Context, _, _ string) (*TranslateResult, error) {
	if !s.enabled {
		return nil, ErrNotConfigured
	}
	if s.translateErr != nil {
		return nil, s.translateErr
	}
	return s.result, nil
}

func (s *stubTranslator) SupportedLanguages(_ context.Context) ([]Language, error) {
	s.languageCalls++
	if !s.enabled {
		return nil, ErrNotConfigured
	}
	if s.languagesErr != nil {
		return nil, s.languagesErr
	}
	return s.languages, nil
}

func (s *stubTranslator) IsEnabled() bool {
	return s.enabled
}
