package services

import (
	"log"
	"os"
	"strings"
)

var translateDebugEnabled = false

func init() {
	if v := os.Getenv("TRANSLATE_DEBUG"); v != "" {
		v = strings.ToLower(v)
		translateDebugEnabled = v == "1" || v == "true" || v == "yes"
		if translateDebugEnabled {
			log.Println("[TRANSLATE] Debug logging: ENABLED")
		}
	}
}

// debugLog logs only when TRANSLATE_DEBUG is enabled.
// Use this for per-request details: record ids, expiry checks, catalog hits.
func debugLog(format string, args ...interface{}) {
	if translateDebugEnabled {
		log.Printf("[TRANSLATE DEBUG] "+format, args...)
	}
}

// infoLog always logs important translation events.
// Use this for provider errors, catalog fetch failures, expiry deletions.
func infoLog(format string, args ...interface{}) {
	log.Printf("[TRANSLATE] "+format, args...)
}
