package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig holds all application configuration
type AppConfig struct {
	API      APIConfig      `json:"api"`
	Database DatabaseConfig `json:"database"`
	Business BusinessConfig `json:"business"`
	System   SystemConfig   `json:"system"`
}

// APIConfig holds the remote booking API settings
type APIConfig struct {
	BaseURL          string `json:"base_url"`
	AppointmentsPath string `json:"appointments_path"`
	HealthPath       string `json:"health_path"`
	ConnectTimeout   int    `json:"connect_timeout"` // seconds
	ReadTimeout      int    `json:"read_timeout"`    // seconds
	WriteTimeout     int    `json:"write_timeout"`   // seconds
	AuthEnabled      bool   `json:"auth_enabled"`
	AuthToken        string `json:"auth_token"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	// URL takes priority when set (postgres DSN for a shared database)
	URL string `json:"url"`
	// Path is the local SQLite file used when URL is empty
	Path string `json:"path"`
}

// BusinessConfig holds the business information printed on invoices
type BusinessConfig struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Series  string `json:"series"` // default invoice series
}

// SystemConfig holds system settings
type SystemConfig struct {
	DataPath string `json:"data_path"` // base dir for database, logs and generated PDFs
	Language string `json:"language"`
}

// Load reads configuration from the environment, with an optional .env file
// next to the executable. Missing keys fall back to hardcoded defaults, a
// missing .env is not an error.
func Load() *AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded, using environment and defaults")
	}

	cfg := &AppConfig{
		API: APIConfig{
			BaseURL:          getEnv("API_BASE_URL", "http://localhost:8080/api"),
			AppointmentsPath: getEnv("API_APPOINTMENTS_PATH", "/citas"),
			HealthPath:       getEnv("API_HEALTH_PATH", "/health"),
			ConnectTimeout:   getEnvInt("API_CONNECT_TIMEOUT", 10),
			ReadTimeout:      getEnvInt("API_READ_TIMEOUT", 30),
			WriteTimeout:     getEnvInt("API_WRITE_TIMEOUT", 30),
			AuthEnabled:      getEnvBool("API_AUTH_ENABLED", false),
			AuthToken:        getEnv("API_AUTH_TOKEN", ""),
		},
		Database: DatabaseConfig{
			URL:  getEnv("DATABASE_URL", ""),
			Path: getEnv("DB_PATH", ""),
		},
		Business: BusinessConfig{
			Name:    getEnv("BUSINESS_NAME", "Lavadero El Brillo"),
			TaxID:   getEnv("BUSINESS_TAX_ID", ""),
			Address: getEnv("BUSINESS_ADDRESS", ""),
			Phone:   getEnv("BUSINESS_PHONE", ""),
			Email:   getEnv("BUSINESS_EMAIL", ""),
			Series:  getEnv("INVOICE_SERIES", "F-2025"),
		},
		System: SystemConfig{
			DataPath: getEnv("DATA_PATH", ""),
			Language: getEnv("LANGUAGE", "es"),
		},
	}

	if cfg.System.DataPath == "" {
		cfg.System.DataPath = defaultDataPath()
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = filepath.Join(cfg.System.DataPath, "lavadero.db")
	}

	return cfg
}

// defaultDataPath returns the per-user application data directory
func defaultDataPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(homeDir, ".lavadero")
}

// EnsureDataPath creates the data directory if it does not exist
func (c *AppConfig) EnsureDataPath() error {
	if err := os.MkdirAll(c.System.DataPath, 0755); err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid integer for %s: %q, using default %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: invalid boolean for %s: %q, using default %v", key, value, fallback)
		return fallback
	}
	return b
}
