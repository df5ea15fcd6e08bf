package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Payroll    PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds bearer-token verification configuration. Token issuing is
// handled by the identity service; this backend only verifies.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the organization's attendance policy.
type AttendanceConfig struct {
	ShiftStartHour   int
	ShiftStartMinute int
	GracePeriod      time.Duration
	Timezone         string
	AutoMarkAbsent   bool
}

// PayrollConfig holds the organization's payroll policy.
type PayrollConfig struct {
	LatePenaltyPerMinute decimal.Decimal
	HalfDayWeight        decimal.Decimal
	Workers              int
}

func Load() (*Config, error) {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "corehive"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
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

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Attendance policy
	shiftStart := getEnv("SHIFT_START", "09:00")
	shiftStartParsed, err := time.Parse("15:04", shiftStart)
	if err != nil {
		return nil, fmt.Errorf("invalid SHIFT_START: %w", err)
	}

	graceMinutes, err := strconv.Atoi(getEnv("GRACE_PERIOD_MINUTES", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid GRACE_PERIOD_MINUTES: %w", err)
	}

	config.Attendance = AttendanceConfig{
		ShiftStartHour:   shiftStartParsed.Hour(),
		ShiftStartMinute: shiftStartParsed.Minute(),
		GracePeriod:      time.Duration(graceMinutes) * time.Minute,
		Timezone:         getEnv("COMPANY_TIMEZONE", "UTC"),
		AutoMarkAbsent:   getEnv("AUTO_MARK_ABSENT", "false") == "true",
	}

	// Payroll policy
	latePenalty, err := decimal.NewFromString(getEnv("LATE_PENALTY_PER_MINUTE", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid LATE_PENALTY_PER_MINUTE: %w", err)
	}

	halfDayWeight, err := decimal.NewFromString(getEnv("HALF_DAY_WEIGHT", "0.5"))
	if err != nil {
		return nil, fmt.Errorf("invalid HALF_DAY_WEIGHT: %w", err)
	}

	workers, err := strconv.Atoi(getEnv("PAYROLL_WORKERS", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_WORKERS: %w", err)
	}

	config.Payroll = PayrollConfig{
		LatePenaltyPerMinute: latePenalty,
		HalfDayWeight:        halfDayWeight,
		Workers:              workers,
	}

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
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Payroll.Workers < 1 {
		return fmt.Errorf("PAYROLL_WORKERS must be at least 1")
	}
	if c.Payroll.LatePenaltyPerMinute.IsNegative() {
		return fmt.Errorf("LATE_PENALTY_PER_MINUTE must not be negative")
	}
	if c.Payroll.HalfDayWeight.IsNegative() || c.Payroll.HalfDayWeight.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("HALF_DAY_WEIGHT must be between 0 and 1")
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
