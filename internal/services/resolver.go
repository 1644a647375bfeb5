package services

import (
	"context"
	"time"

	"github.com/lingoqr/lingoqr/internal/metrics"
)

// DisplayData is what the read page shows: the translated text and the
// two language names. The original source text is never exposed.
type DisplayData struct {
	TranslatedText string `json:"translated_text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

// Resolver looks up stored translations and enforces the expiry policy on
// every read. Per record it sees three states: fresh (age <= TTL),
// expired (age > TTL, deleted on sight), and gone.
type Resolver struct {
	store   *TranslationStore
	catalog *LanguageCatalog
	archive *ImageArchive

	now func() time.Time // test override
}

func NewResolver(store *TranslationStore, catalog *LanguageCatalog, archive *ImageArchive) *Resolver {
	return &Resolver{
		store:   store,
		catalog: catalog,
		archive: archive,
		now:     time.Now,
	}
}

// Resolve returns display data for a stored translation. A record exactly
// at the TTL boundary is still fresh. Expired records are deleted before
// ErrExpired is returned, so a retried resolve on the same id yields
// ErrNotFound, never stale data.
func (r *Resolver) Resolve(ctx context.Context, id string) (*DisplayData, error) {
	record, err := r.store.Get(id)
	if err != nil {
		metrics.ResolveOutcomes.WithLabelValues("not_found").Inc()
		return nil, err
	}

	if record.IsExpired(r.now()) {
		if err := r.store.Delete(record.ID); err != nil {
			infoLog("Failed to delete expired translation %s: %v", record.ID, err)
		}
		if r.archive != nil {
			if err := r.archive.Delete(record.ID); err != nil {
				infoLog("Failed to delete archived QR image %s: %v", record.ID, err)
			}
		}
		metrics.ResolveOutcomes.WithLabelValues("expired").Inc()
		metrics.TranslationsExpiredTotal.Inc()
		debugLog("Translation %s expired (age %s), removed", record.ID, record.Age(r.now()))
		return nil, ErrExpired
	}

	metrics.ResolveOutcomes.WithLabelValues("fresh").Inc()
	return &DisplayData{
		TranslatedText: record.TranslatedText,
		SourceLanguage: r.languageName(ctx, record.SourceLanguage),
		TargetLanguage: r.languageName(ctx, record.TargetLanguage),
	}, nil
}

// languageName maps a code to a display name, falling back to the raw
// code when the catalog is empty or does not know it.
func (r *Resolver) languageName(ctx context.Context, code string) string {
	if name := r.catalog.NameFor(ctx, code); name != "" {
		return name
	}
	return code
}
