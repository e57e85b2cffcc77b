package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	StorageDriver string
	RunMigrations bool
	Port          string
	IsProduction  bool
	LogLevel      slog.Level

	RateLimit          string // ulule/limiter formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string

	DefaultCategoryName string

	// CSV import
	CSVDelimiter   rune // 0 means detect from the header row
	CSVEncoding    string
	CSVDateLayouts []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("STORAGE_DRIVER", StoragePostgres)
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("PORT", "5000")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("DEFAULT_CATEGORY_NAME", "Uncategorized")
	viper.SetDefault("CSV_DELIMITER", ";")
	viper.SetDefault("CSV_ENCODING", "utf-8")
	viper.SetDefault("CSV_DATE_LAYOUTS", "2006-01-02")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:         viper.GetString("PGSQL_URL"),
		StorageDriver:       strings.ToLower(viper.GetString("STORAGE_DRIVER")),
		RunMigrations:       viper.GetBool("RUN_MIGRATIONS"),
		Port:                viper.GetString("PORT"),
		IsProduction:        viper.GetBool("IS_PRODUCTION"),
		RateLimit:           viper.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:  splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		DefaultCategoryName: strings.TrimSpace(viper.GetString("DEFAULT_CATEGORY_NAME")),
		CSVEncoding:         viper.GetString("CSV_ENCODING"),
		CSVDateLayouts:      splitList(viper.GetString("CSV_DATE_LAYOUTS")),
	}

	if cfg.Port == "" {
		cfg.Port = "5000"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when STORAGE_DRIVER is %q", StoragePostgres)
		}
	case StorageMemory:
		log.Println("Warning: using in-memory storage, data is lost on restart.")
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(viper.GetString("LOG_LEVEL"))); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", viper.GetString("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	if cfg.DefaultCategoryName == "" {
		return nil, fmt.Errorf("DEFAULT_CATEGORY_NAME must not be empty")
	}

	delim, err := parseDelimiter(viper.GetString("CSV_DELIMITER"))
	if err != nil {
		return nil, err
	}
	cfg.CSVDelimiter = delim

	return cfg, nil
}

func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("CSV_DELIMITER must be a single character, 'tab' or 'auto', got %q", s)
	}
	return r[0], nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
