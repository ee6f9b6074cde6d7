package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	CatalogSourceFile     = "file"
	CatalogSourceDatabase = "database"

	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"

	defaultSessionSecret = "changeme"
)

type Config struct {
	// Server
	Port          string
	Environment   string
	PublicBaseURL string
	StaticDir     string
	FrontendURLs  []string

	// Catalog
	DataDir       string
	CatalogSource string

	// Persistence
	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	DatabaseURL   string

	// Sessions
	SessionSecret string
	SessionTTL    time.Duration

	// OAuth
	GoogleClientID      string
	GoogleClientSecret  string
	GoogleCallbackURL   string
	DiscordClientID     string
	DiscordClientSecret string
	DiscordCallbackURL  string

	// Logging
	LogLevel string
	LogFile  string

	// Frontend
	SearchDebounce time.Duration
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		Port:                getEnv("PORT", "5000"),
		Environment:         getEnv("ENVIRONMENT", getEnv("NODE_ENV", EnvDevelopment)),
		PublicBaseURL:       strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
		StaticDir:           getEnv("STATIC_DIR", ""),
		FrontendURLs:        getEnvList("FRONTEND_URLS"),
		DataDir:             getEnv("DATA_DIR", "data"),
		CatalogSource:       getEnv("CATALOG_SOURCE", CatalogSourceFile),
		MongoURI:            getEnv("MONGODB_URI", ""),
		MongoDatabase:       getEnv("MONGODB_DATABASE", "uvotake"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		SessionSecret:       getEnv("SESSION_SECRET", ""),
		SessionTTL:          time.Duration(getEnvInt("SESSION_TTL_HOURS", 24*7)) * time.Hour,
		GoogleClientID:      getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:  getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleCallbackURL:   firstListEntry(getEnv("GOOGLE_CALLBACK_URL", "")),
		DiscordClientID:     getEnv("DISCORD_CLIENT_ID", ""),
		DiscordClientSecret: getEnv("DISCORD_CLIENT_SECRET", ""),
		DiscordCallbackURL:  getEnv("DISCORD_CALLBACK_URL", ""),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFile:             getEnv("LOG_FILE", ""),
		SearchDebounce:      SearchDebounceFromEnv(),
	}

	cfg.StoreDriver = getEnv("STORE_DRIVER", defaultStoreDriver(cfg))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchDebounceFromEnv reads SEARCH_DEBOUNCE_MS, the pause after the last
// keystroke before a search is issued.
func SearchDebounceFromEnv() time.Duration {
	return time.Duration(getEnvInt("SEARCH_DEBOUNCE_MS", 400)) * time.Millisecond
}

func defaultStoreDriver(cfg *Config) string {
	switch {
	case cfg.MongoURI != "":
		return StoreMongo
	case cfg.DatabaseURL != "":
		return StorePostgres
	}
	return StoreMemory
}

// Validate checks cross-field requirements and fills defaults that depend on
// the environment.
func (c *Config) Validate() error {
	switch c.CatalogSource {
	case CatalogSourceFile, CatalogSourceDatabase:
	default:
		return fmt.Errorf("CATALOG_SOURCE must be %q or %q, got %q", CatalogSourceFile, CatalogSourceDatabase, c.CatalogSource)
	}

	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI environment variable is required for the mongo store")
		}
	case StorePostgres, StoreSQLite:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for the %s store", c.StoreDriver)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.CatalogSource == CatalogSourceDatabase && c.StoreDriver != StorePostgres && c.StoreDriver != StoreSQLite {
		return fmt.Errorf("CATALOG_SOURCE=database requires STORE_DRIVER postgres or sqlite")
	}

	if c.SessionSecret == "" {
		if !c.IsDevelopment() {
			return fmt.Errorf("SESSION_SECRET environment variable is required when ENVIRONMENT is %q", c.Environment)
		}
		c.SessionSecret = defaultSessionSecret
	}

	if c.SearchDebounce < 0 {
		return fmt.Errorf("SEARCH_DEBOUNCE_MS must not be negative")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func (c *Config) DiscordEnabled() bool {
	return c.DiscordClientID != "" && c.DiscordClientSecret != ""
}

// CallbackURL returns the OAuth redirect for provider. Relative callbacks are
// resolved against PublicBaseURL when one is set.
func (c *Config) CallbackURL(provider string) string {
	var configured string
	switch provider {
	case "google":
		configured = c.GoogleCallbackURL
	case "discord":
		configured = c.DiscordCallbackURL
		// an authorize URL pasted in place of the callback
		if strings.Contains(configured, "discord.com/oauth2/authorize") {
			configured = ""
		}
	}
	if configured == "" {
		configured = "/auth/" + provider + "/callback"
	}
	if strings.HasPrefix(configured, "/") {
		return c.PublicBaseURL + configured
	}
	return configured
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstListEntry(value string) string {
	first, _, _ := strings.Cut(value, ",")
	return strings.TrimSpace(first)
}
