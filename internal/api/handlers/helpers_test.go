package handlers

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lingoqr/lingoqr/internal/models"
	"github.com/lingoqr/lingoqr/internal/services"
	"github.com/lingoqr/lingoqr/web"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubTranslator is a canned provider for handler tests.
type stubTranslator struct {
	enabled   bool
	result    *services.TranslateResult
	err       error
	languages []services.Language
}

func (s *stubTranslator) Translate(_ context.Context, _, _ string) (*services.TranslateResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubTranslator) SupportedLanguages(_ context.Context) ([]services.Language, error) {
	if !s.enabled {
		return nil, services.ErrNotConfigured
	}
	return s.languages, nil
}

func (s *stubTranslator) IsEnabled() bool {
	return s.enabled
}

type testApp struct {
	router  *gin.Engine
	db      *gorm.DB
	store   *services.TranslationStore
	archive *services.ImageArchive
}

// newTestApp wires the full HTTP surface against an in-memory database
// and the given provider stub.
func newTestApp(t *testing.T, translator services.Translator) *testApp {
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

	store := services.NewTranslationStore(db)
	catalog := services.NewLanguageCatalog(translator)
	archive := services.NewImageArchive(t.TempDir())
	resolver := services.NewResolver(store, catalog, archive)

	router := gin.New()
	tmpl, err := web.Templates()
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}
	router.SetHTMLTemplate(tmpl)

	limiter := rate.NewLimiter(rate.Inf, 1)
	translateHandler := NewTranslateHandler(translator, store, archive, catalog, "", limiter)
	readHandler := NewReadHandler(resolver)

	router.GET("/", translateHandler.HomePage)
	router.POST("/translate", translateHandler.Translate)
	router.GET("/read/:id", readHandler.ReadPage)
	router.GET("/api/languages", translateHandler.ListLanguages)
	router.POST("/api/translate", translateHandler.TranslateJSON)
	router.GET("/api/translations/:id", readHandler.GetTranslation)

	return &testApp{router: router, db: db, store: store, archive: archive}
}

// onlyRecord fetches the single stored translation.
func (a *testApp) onlyRecord(t *testing.T) *models.Translation {
	t.Helper()

	var records []models.Translation
	if err := a.db.Find(&records).Error; err != nil {
		t.Fatalf("Failed to list records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected exactly one stored record, got %d", len(records))
	}
	return &records[0]
}
