package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds server-level settings. Translation provider credentials are
// resolved separately by the translation service (see services package).
type Config struct {
	ListenAddr   string `env:"LISTEN_ADDR" envDefault:":8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/translations.db"`

	// PublicBaseURL is the externally reachable base URL embedded in QR
	// codes. When empty, the request Host header is used instead.
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	// AdminKey guards the /api/admin endpoints. Empty disables auth.
	AdminKey string `env:"ADMIN_KEY"`

	// QRArchiveDir is where generated QR images are archived on disk.
	QRArchiveDir string `env:"QR_ARCHIVE_DIR" envDefault:"./data/qr_codes"`

	// TranslateRPS caps translate requests per second across all clients.
	TranslateRPS float64 `env:"TRANSLATE_RPS" envDefault:"5"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
