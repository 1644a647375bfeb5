package services

import (
	"errors"
	"testing"
	"time"

	"github.com/lingoqr/lingoqr/internal/models"
)

func TestSweepNowRemovesOnlyExpired(t *testing.T) {
	db := newTestDB(t)
	store := NewTranslationStore(db)
	archive := NewImageArchive(t.TempDir())
	sweeper := NewSweeper(store, archive)

	now := time.Now()
	expired := models.Translation{
		ID: "expired", SourceText: "a", TranslatedText: "b",
		CreatedAt: now.Add(-models.TranslationTTL - time.Minute),
	}
	fresh := models.Translation{
		ID: "fresh", SourceText: "c", TranslatedText: "d",
		CreatedAt: now,
	}
	if err := db.Create(&expired).Error; err != nil {
		t.Fatalf("Failed to seed expired record: %v", err)
	}
	if err := db.Create(&fresh).Error; err != nil {
		t.Fatalf("Failed to seed fresh record: %v", err)
	}
	if err := archive.Save("expired", []byte("png")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	removed, err := sweeper.SweepNow()
	if err != nil {
		t.Fatalf("SweepNow failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("SweepNow removed %d, want 1", removed)
	}

	if _, err := store.Get("expired"); !errors.Is(err, ErrNotFound) {
		t.Error("Expired record survived the sweep")
	}
	if _, err := store.Get("fresh"); err != nil {
		t.Errorf("Fresh record removed by the sweep: %v", err)
	}
	if archive.Count() != 0 {
		t.Error("Archived image for swept record not removed")
	}

	status := sweeper.GetStatus()
	if status.RemovedTotal != 1 {
		t.Errorf("RemovedTotal = %d, want 1", status.RemovedTotal)
	}
	if status.LastSweepTime.IsZero() {
		t.Error("LastSweepTime not recorded")
	}
}

func TestSweepNowEmptyStore(t *testing.T) {
	sweeper := NewSweeper(NewTranslationStore(newTestDB(t)), nil)

	removed, err := sweeper.SweepNow()
	if err != nil {
		t.Fatalf("SweepNow failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("SweepNow removed %d on empty store, want 0", removed)
	}
}
