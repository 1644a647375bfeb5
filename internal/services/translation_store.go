package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lingoqr/lingoqr/internal/metrics"
	"github.com/lingoqr/lingoqr/internal/models"
)

// TranslationStore persists completed translations. Create is the only
// write path; records are never updated, only deleted.
type TranslationStore struct {
	db *gorm.DB
}

func NewTranslationStore(db *gorm.DB) *TranslationStore {
	return &TranslationStore{db: db}
}

// Create persists a new record, assigning its id and creation time.
func (s *TranslationStore) Create(sourceText, translatedText, sourceLang, targetLang string) (*models.Translation, error) {
	record := &models.Translation{
		ID:             uuid.NewString(),
		SourceText:     sourceText,
		TranslatedText: translatedText,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
		CreatedAt:      time.Now(),
	}

	if err := s.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to store translation: %w", err)
	}

	metrics.TranslationsStoredTotal.Inc()
	debugLog("Stored translation %s (%s -> %s)", record.ID, record.SourceLanguage, record.TargetLanguage)
	return record, nil
}

// Get loads a record by id. Unknown ids return ErrNotFound; expired
// records are still returned here, expiry is the resolver's concern.
func (s *TranslationStore) Get(id string) (*models.Translation, error) {
	var record models.Translation
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load translation: %w", err)
	}
	return &record, nil
}

// Delete removes a record. Deleting an id that no longer exists is not an
// error.
func (s *TranslationStore) Delete(id string) error {
	if err := s.db.Delete(&models.Translation{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete translation: %w", err)
	}
	return nil
}

// DeleteExpired removes every record older than the TTL at the given
// instant and returns the ids that were removed.
func (s *TranslationStore) DeleteExpired(now time.Time) ([]string, error) {
	cutoff := now.Add(-models.TranslationTTL)

	var ids []string
	if err := s.db.Model(&models.Translation{}).Where("created_at < ?", cutoff).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list expired translations: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	if err := s.db.Where("id IN ?", ids).Delete(&models.Translation{}).Error; err != nil {
		return nil, fmt.Errorf("failed to delete expired translations: %w", err)
	}
	return ids, nil
}

// Count returns the number of stored records.
func (s *TranslationStore) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.Translation{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count translations: %w", err)
	}
	return count, nil
}
