package models

import "time"

// TranslationTTL bounds how long a translation stays resolvable.
// Records older than this are deleted on the next read (and by the sweeper).
const TranslationTTL = 24 * time.Hour

// Translation stores one completed translation. The id doubles as the
// public lookup key embedded in the QR code, so it must be sparse enough
// that identifiers cannot be enumerated (uuid v4).
//
// Records are immutable after creation; the only state change is deletion.
type Translation struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	SourceText     string    `gorm:"not null" json:"source_text"`
	TranslatedText string    `gorm:"not null" json:"translated_text"`
	SourceLanguage string    `gorm:"size:10" json:"source_language"` // detected by the provider
	TargetLanguage string    `gorm:"size:10" json:"target_language"` // requested by the user
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (Translation) TableName() string {
	return "translations"
}

// Age returns how old the record is at the given instant.
func (t *Translation) Age(now time.Time) time.Duration {
	return now.Sub(t.CreatedAt)
}

// IsExpired reports whether the record has outlived TranslationTTL.
// A record exactly TranslationTTL old is still fresh.
func (t *Translation) IsExpired(now time.Time) bool {
	return t.Age(now) > TranslationTTL
}
