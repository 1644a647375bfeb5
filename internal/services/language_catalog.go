package services

import (
	"context"
	"sync"
)

// LanguageCatalog caches the provider's supported-language list for the
// life of the process. The list is fetched lazily on first use; staleness
// over a long-running process is accepted. A failed fetch is not latched,
// so the next call retries.
type LanguageCatalog struct {
	translator Translator

	mu        sync.Mutex
	loaded    bool
	languages []Language
}

func NewLanguageCatalog(translator Translator) *LanguageCatalog {
	return &LanguageCatalog{translator: translator}
}

// Languages returns the supported languages in provider order. When the
// provider is not configured or the fetch fails, it returns an empty list
// rather than an error; dropdowns render empty and name lookups fall back
// to raw codes.
func (c *LanguageCatalog) Languages(ctx context.Context) []Language {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.languages
	}
	if c.translator == nil || !c.translator.IsEnabled() {
		return nil
	}

	languages, err := c.translator.SupportedLanguages(ctx)
	if err != nil {
		infoLog("Language catalog fetch failed: %v", err)
		return nil
	}

	c.languages = languages
	c.loaded = true
	infoLog("Language catalog loaded: %d languages", len(languages))
	return c.languages
}

// NameFor maps a language code to its display name. Unknown codes return
// the empty string; callers show the raw code instead.
func (c *LanguageCatalog) NameFor(ctx context.Context, code string) string {
	for _, l := range c.Languages(ctx) {
		if l.Code == code {
			return l.Name
		}
	}
	return ""
}

// CachedCount reports the catalog size without triggering a fetch.
func (c *LanguageCatalog) CachedCount() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.languages), c.loaded
}
