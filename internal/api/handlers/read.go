package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lingoqr/lingoqr/internal/services"
)

// expiredMessage and notFoundMessage are deliberately distinct: an expired
// translation once existed and the user should understand why it is gone.
const (
	expiredMessage  = "This translation has expired. Translations are kept for 24 hours."
	notFoundMessage = "This translation is not available."
)

// ReadHandler owns the resolve flow: look up a record by the id embedded
// in the scanned QR code and display it.
type ReadHandler struct {
	resolver *services.Resolver
}

func NewReadHandler(resolver *services.Resolver) *ReadHandler {
	return &ReadHandler{resolver: resolver}
}

// ReadPage renders the translation a scanned QR code points at.
// GET /read/:id
func (h *ReadHandler) ReadPage(c *gin.Context) {
	data, err := h.resolver.Resolve(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrExpired):
		c.HTML(http.StatusGone, "read.html", gin.H{"message": expiredMessage})
	case errors.Is(err, services.ErrNotFound):
		c.HTML(http.StatusNotFound, "read.html", gin.H{"message": notFoundMessage})
	case err != nil:
		c.HTML(http.StatusInternalServerError, "read.html", gin.H{"message": "Something went wrong. Please try again."})
	default:
		c.HTML(http.StatusOK, "read.html", gin.H{"translation": data})
	}
}

// GetTranslation is the JSON twin of ReadPage.
// GET /api/translations/:id
func (h *ReadHandler) GetTranslation(c *gin.Context) {
	data, err := h.resolver.Resolve(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrExpired):
		c.JSON(http.StatusGone, gin.H{"error": "translation expired"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "translation not available"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusOK, data)
	}
}
