package metrics

import (
	"log"

	"gorm.io/gorm"

	"github.com/lingoqr/lingoqr/internal/models"
)

// UpdateStoreMetrics refreshes the stored-translations gauge from the
// database. Called at startup and after sweeps.
func UpdateStoreMetrics(db *gorm.DB) {
	if db == nil {
		return
	}

	var count int64
	if err := db.Model(&models.Translation{}).Count(&count).Error; err != nil {
		log.Printf("Metrics: failed to count stored translations: %v", err)
		return
	}
	StoredTranslations.Set(float64(count))
}
