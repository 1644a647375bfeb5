package handlers

import (
	"errors"
	"net/http"

	"github.com/lingoqr/lingoqr/internal/services"
)

// userMessage converts service errors into a status code and text safe to
// show end users. Every error class maps to a response; nothing here
// crashes the process.
func userMessage(err error) (int, string) {
	var providerErr *services.TranslationError
	switch {
	case errors.Is(err, services.ErrNotConfigured):
		return http.StatusServiceUnavailable, "Translation is not configured on this server. The operator needs to install provider credentials."
	case errors.As(err, &providerErr):
		return http.StatusBadGateway, "Translation failed: " + providerErr.Message
	default:
		return http.StatusInternalServerError, "Something went wrong. Please try again."
	}
}
