package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Storage  StorageConfig
	Database DatabaseConfig
	JWT      JWTConfig
	CORS     CORSConfig
}

// StorageConfig selects and configures the state store backend
type StorageConfig struct {
	// Driver is "file" (single JSON document) or "mysql".
	Driver string
	// FilePath is the JSON document path for the file driver.
	FilePath string
}

// DatabaseConfig holds database configuration (mysql driver only)
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Storage:  loadStorageConfig(),
		Database: loadDatabaseConfig(appMode),
		JWT:      loadJWTConfig(appMode),
		CORS:     loadCORSConfig(appMode),
	}

	if config.Storage.Driver != "file" && config.Storage.Driver != "mysql" {
		return nil, fmt.Errorf("invalid STORAGE_DRIVER: '%s' (must be 'file' or 'mysql')", config.Storage.Driver)
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s, STORAGE: %s]", appMode, config.Storage.Driver)
	return config, nil
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Driver:   strings.TrimSpace(getEnv("STORAGE_DRIVER", "file")),
		FilePath: getEnv("STORAGE_FILE_PATH", "data/simpanse.json"),
	}
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "kgtk_simpanse"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "60"))

	return JWTConfig{
		Secret:          getEnv(prefix+"JWT_SECRET", "default_secret"),
		AccessTokenMins: accessMins,
	}
}

func loadCORSConfig(mode string) CORSConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return CORSConfig{
		AllowedOrigins: getEnv(prefix+"ALLOWED_ORIGINS", "http://localhost:5173"),
	}
}

// IsDev returns true when running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// GetAllowedOrigins returns the comma-separated CORS origin list
func (c *Config) GetAllowedOrigins() string {
	return c.CORS.AllowedOrigins
}

// DSN builds the MySQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

// getEnv gets an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
