package handlers

import (
	"encoding/base64"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/lingoqr/lingoqr/internal/models"
	"github.com/lingoqr/lingoqr/internal/services"
)

// TranslateHandler owns the create flow: translate the input, persist the
// record, and hand back a QR code pointing at the resolve URL.
type TranslateHandler struct {
	translator services.Translator
	store      *services.TranslationStore
	archive    *services.ImageArchive
	catalog    *services.LanguageCatalog
	baseURL    string
	limiter    *rate.Limiter
}

func NewTranslateHandler(
	translator services.Translator,
	store *services.TranslationStore,
	archive *services.ImageArchive,
	catalog *services.LanguageCatalog,
	baseURL string,
	limiter *rate.Limiter,
) *TranslateHandler {
	return &TranslateHandler{
		translator: translator,
		store:      store,
		archive:    archive,
		catalog:    catalog,
		baseURL:    baseURL,
		limiter:    limiter,
	}
}

// HomePage renders the translation form.
// GET /
func (h *TranslateHandler) HomePage(c *gin.Context) {
	h.renderHome(c, http.StatusOK, "")
}

// Translate handles the form submission: translates the text, stores the
// record, and returns a downloadable QR code PNG of the resolve URL.
// Failures re-render the form with a user-visible message.
// POST /translate
func (h *TranslateHandler) Translate(c *gin.Context) {
	if h.limiter != nil && !h.limiter.Allow() {
		h.renderHome(c, http.StatusTooManyRequests, "Too many requests. Please wait a moment and try again.")
		return
	}

	text := strings.TrimSpace(c.PostForm("textToTranslate"))
	target := strings.TrimSpace(c.PostForm("targetLanguage"))
	if text == "" || target == "" {
		h.renderHome(c, http.StatusBadRequest, "Both the text and a target language are required.")
		return
	}

	_, png, err := h.createTranslation(c, text, target)
	if err != nil {
		status, message := userMessage(err)
		h.renderHome(c, status, message)
		return
	}

	c.Header("Content-Disposition", `attachment; filename=qr_code.png`)
	c.Data(http.StatusOK, "image/png", png)
}

// translateJSONRequest is the body of the JSON create flow.
type translateJSONRequest struct {
	Text           string `json:"text" binding:"required"`
	TargetLanguage string `json:"target_language" binding:"required"`
}

// TranslateJSON is the JSON twin of the form flow.
// POST /api/translate
func (h *TranslateHandler) TranslateJSON(c *gin.Context) {
	if h.limiter != nil && !h.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
		return
	}

	var req translateJSONRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text and target_language are required"})
		return
	}

	record, png, err := h.createTranslation(c, strings.TrimSpace(req.Text), strings.TrimSpace(req.TargetLanguage))
	if err != nil {
		status, message := userMessage(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              record.ID,
		"resolve_url":     h.resolveURL(c, record.ID),
		"source_language": record.SourceLanguage,
		"target_language": record.TargetLanguage,
		"qr_code_png":     base64.StdEncoding.EncodeToString(png),
	})
}

// ListLanguages returns the supported-language catalog. Empty when the
// provider is not configured.
// GET /api/languages
func (h *TranslateHandler) ListLanguages(c *gin.Context) {
	languages := h.catalog.Languages(c.Request.Context())
	if languages == nil {
		languages = []services.Language{}
	}
	c.JSON(http.StatusOK, gin.H{"languages": languages})
}

// createTranslation runs the create flow shared by the form and JSON
// handlers. The provider call strictly precedes the store write; only a
// successful translation is persisted.
func (h *TranslateHandler) createTranslation(c *gin.Context, text, target string) (record *models.Translation, png []byte, err error) {
	result, err := h.translator.Translate(c.Request.Context(), text, target)
	if err != nil {
		return nil, nil, err
	}

	record, err = h.store.Create(text, result.TranslatedText, result.DetectedSourceLanguage, target)
	if err != nil {
		return nil, nil, err
	}

	png, err = services.EncodeQRCode(h.resolveURL(c, record.ID))
	if err != nil {
		return nil, nil, err
	}

	if h.archive != nil {
		if archiveErr := h.archive.Save(record.ID, png); archiveErr != nil {
			log.Printf("Warning: failed to archive QR image for %s: %v", record.ID, archiveErr)
		}
	}

	return record, png, nil
}

// resolveURL builds the public URL embedded in the QR code. Falls back to
// the request Host when no public base URL is configured.
func (h *TranslateHandler) resolveURL(c *gin.Context, id string) string {
	base := h.baseURL
	if base == "" {
		base = "http://" + c.Request.Host
	}
	return strings.TrimRight(base, "/") + "/read/" + id
}

// renderHome renders the form page with the language catalog and an
// optional error message.
func (h *TranslateHandler) renderHome(c *gin.Context, status int, errorMessage string) {
	c.HTML(status, "home.html", gin.H{
		"languages": h.catalog.Languages(c.Request.Context()),
		"error":     errorMessage,
	})
}
