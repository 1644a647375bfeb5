package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lingoqr/lingoqr/internal/services"
)

// AdminHandler exposes operational endpoints: store stats and a manual
// sweep trigger. Routes using it sit behind the admin-key middleware.
type AdminHandler struct {
	store   *services.TranslationStore
	catalog *services.LanguageCatalog
	archive *services.ImageArchive
	sweeper *services.Sweeper
}

func NewAdminHandler(store *services.TranslationStore, catalog *services.LanguageCatalog, archive *services.ImageArchive, sweeper *services.Sweeper) *AdminHandler {
	return &AdminHandler{
		store:   store,
		catalog: catalog,
		archive: archive,
		sweeper: sweeper,
	}
}

// GetStats returns store, catalog, and sweeper statistics.
// GET /api/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	count, err := h.store.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	catalogSize, catalogLoaded := h.catalog.CachedCount()

	c.JSON(http.StatusOK, gin.H{
		"stored_translations": count,
		"archived_qr_images":  h.archive.Count(),
		"catalog_loaded":      catalogLoaded,
		"catalog_size":        catalogSize,
		"sweeper":             h.sweeper.GetStatus(),
	})
}

// TriggerSweep runs one sweep pass immediately.
// POST /api/admin/sweep
func (h *AdminHandler) TriggerSweep(c *gin.Context) {
	removed, err := h.sweeper.SweepNow()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sweep completed",
		"removed": removed,
	})
}
