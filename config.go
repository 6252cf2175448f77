package clinicfolio

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for a clinicfolio site.
type Config struct {
	SiteName        string // Site name for feeds and meta tags (default "Clinic")
	SiteURL         string // Canonical URL (default "http://localhost:3000")
	SiteDescription string // Site description for the RSS channel

	Addr         string // Listen address (default ":3000")
	Env          string // "development" or "production" (default "development")
	DatabasePath string // SQLite path (default "data/site.db")
	UploadsDir   string // Directory for uploaded images (default "public/uploads")

	CookieSecure bool // Set true when serving over HTTPS

	SessionTTL   time.Duration // Session lifetime (default 24h)
	PostCacheTTL time.Duration // Published-post cache TTL (default 5min)
}

// LoadConfig reads configuration from environment variables. A .env file in
// the working directory is loaded first when present; missing file is not an
// error so production environments relying on real env vars keep working.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		SiteName:        getEnv("SITE_NAME", "Clinic"),
		SiteURL:         strings.TrimSuffix(getEnv("SITE_URL", "http://localhost:3000"), "/"),
		SiteDescription: getEnv("SITE_DESCRIPTION", ""),
		Addr:            ":" + getEnv("PORT", "3000"),
		Env:             getEnv("ENV", "development"),
		DatabasePath:    getEnv("DATABASE_PATH", "data/site.db"),
		UploadsDir:      getEnv("UPLOADS_DIR", "public/uploads"),
		CookieSecure:    strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),
	}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	if c.SiteName == "" {
		c.SiteName = "Clinic"
	}
	if c.SiteURL == "" {
		c.SiteURL = "http://localhost:3000"
	}
	if c.Addr == "" || c.Addr == ":" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.UploadsDir == "" {
		c.UploadsDir = "public/uploads"
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = 24 * time.Hour
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
