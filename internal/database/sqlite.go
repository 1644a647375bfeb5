package database

import (
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lingoqr/lingoqr/internal/models"
)

// Initialize opens the SQLite database, migrates the schema, and prunes
// rows that aged out while the process was down.
func Initialize(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connected successfully")

	if err := db.AutoMigrate(&models.Translation{}); err != nil {
		return nil, err
	}

	pruneExpired(db)

	return db, nil
}

// pruneExpired deletes translations that expired while the server was not
// running. Safe to run multiple times; the resolver performs the same
// check on every read, so correctness never depends on this pass.
func pruneExpired(db *gorm.DB) {
	cutoff := time.Now().Add(-models.TranslationTTL)
	result := db.Where("created_at < ?", cutoff).Delete(&models.Translation{})
	if result.Error != nil {
		log.Printf("Warning: failed to prune expired translations: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Pruned %d expired translations at startup", result.RowsAffected)
	}
}
