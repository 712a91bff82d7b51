package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	// PasswordSecret keys the password hasher. The server refuses to start
	// without it.
	PasswordSecret string
	// SessionSecret signs session tokens. When unset, the token layer derives
	// a signing key from PasswordSecret instead of reusing it directly.
	SessionSecret string

	SessionTTL    time.Duration
	RememberMeTTL time.Duration

	AdminSecrets AdminSecrets
}

// AdminSecrets is the fixed set of shared admin credentials, resolved once at
// startup and treated as immutable afterwards.
type AdminSecrets struct {
	// Global grants organization-wide admin.
	Global string
	// LegacyGlobal is an older secret still honored at the global tier.
	LegacyGlobal string
	// GenericWing grants the wing tier without binding to a specific wing.
	GenericWing string
	// PerWing maps a wing name to the secret that administers exactly that wing.
	PerWing map[string]string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		PasswordSecret: os.Getenv("PASSWORD_SECRET"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
	}

	if cfg.PasswordSecret == "" {
		return nil, fmt.Errorf("PASSWORD_SECRET must be set")
	}

	var err error
	cfg.SessionTTL, err = parseDuration(getEnv("SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.RememberMeTTL, err = parseDuration(getEnv("REMEMBER_ME_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMEMBER_ME_TTL: %w", err)
	}

	cfg.AdminSecrets = AdminSecrets{
		Global:       os.Getenv("ADMIN_SECRET"),
		LegacyGlobal: os.Getenv("ADMIN_SECRET_LEGACY"),
		GenericWing:  os.Getenv("WING_ADMIN_SECRET"),
		PerWing:      parseWingSecrets(os.Getenv("WING_ADMIN_SECRETS")),
	}

	return cfg, nil
}

// parseWingSecrets parses "ALPHA WING=s3cret,BETA WING=0ther" into a map.
func parseWingSecrets(raw string) map[string]string {
	secrets := make(map[string]string)
	if raw == "" {
		return secrets
	}

	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		wing := strings.TrimSpace(parts[0])
		secret := strings.TrimSpace(parts[1])
		if wing == "" || secret == "" {
			continue
		}
		secrets[wing] = secret
	}

	return secrets
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
