package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	App        AppConfig
	Attendance AttendanceConfig
	FaceAPI    FaceAPIConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the work-hour window used to classify punches.
// Grace extends the on-time window on both the entry and exit boundary.
type AttendanceConfig struct {
	WorkStart    string // "HH:MM"
	WorkEnd      string // "HH:MM"
	GraceMinutes int
}

// FaceAPIConfig holds the face-recognition service endpoint and timeouts.
type FaceAPIConfig struct {
	BaseURL        string
	ConnectTimeout time.Duration
	Timeout        time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}
	if minConns > maxConns {
		return nil, fmt.Errorf("DB_MIN_CONNS %d exceeds DB_MAX_CONNS %d", minConns, maxConns)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "absensi"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Work-hour window
	grace, err := strconv.Atoi(getEnv("GRACE_MINUTES", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid GRACE_MINUTES: %w", err)
	}

	config.Attendance = AttendanceConfig{
		WorkStart:    getEnv("WORK_START", "10:00"),
		WorkEnd:      getEnv("WORK_END", "16:00"),
		GraceMinutes: grace,
	}

	// Face recognition service
	connectTimeout, err := time.ParseDuration(getEnv("FACE_API_CONNECT_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_API_CONNECT_TIMEOUT: %w", err)
	}
	timeout, err := time.ParseDuration(getEnv("FACE_API_TIMEOUT", "45s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_API_TIMEOUT: %w", err)
	}

	config.FaceAPI = FaceAPIConfig{
		BaseURL:        getEnv("FACE_API_URL", "http://localhost:8000"),
		ConnectTimeout: connectTimeout,
		Timeout:        timeout,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Attendance.GraceMinutes < 0 {
		return fmt.Errorf("GRACE_MINUTES must not be negative")
	}
	if c.FaceAPI.BaseURL == "" {
		return fmt.Errorf("FACE_API_URL is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
