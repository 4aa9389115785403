package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort            string
	StorageBackend      string
	LogLevel            string
	DefaultCurrency     string
	WarningThreshold    decimal.Decimal
	FutureDateLimitDays int
	OperatorWorkers     int
}

// PostgresDSN builds the lib/pq connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUsername, c.PostgresPassword, c.PostgresAddress, c.PostgresPort, c.PostgresDB)
}

func ProcessEnvironmentVariables() (*Config, error) {
	// A missing .env is fine, the process environment still applies.
	_ = godotenv.Load()

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:     "localhost",
		PostgresPort:        "5433",
		PostgresDB:          "postgres",
		PostgresUsername:    "postgres",
		PostgresPassword:    "testpassword",
		HTTPPort:            "8080",
		StorageBackend:      StoragePostgres,
		LogLevel:            "info",
		DefaultCurrency:     "USD",
		WarningThreshold:    decimal.NewFromInt(80),
		FutureDateLimitDays: 7,
		OperatorWorkers:     1,
	}

	setString(&env.PostgresAddress, "POSTGRES_ADDRESS")
	setString(&env.PostgresPort, "POSTGRES_PORT")
	setString(&env.PostgresDB, "POSTGRES_DB")
	setString(&env.PostgresUsername, "POSTGRES_USERNAME")
	setString(&env.PostgresPassword, "POSTGRES_PASSWORD")
	setString(&env.HTTPPort, "HTTP_PORT")
	setString(&env.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("STORAGE_BACKEND"); len(v) != 0 {
		backend := strings.ToLower(v)
		if backend != StorageMemory && backend != StoragePostgres {
			return nil, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageMemory, StoragePostgres, v)
		}
		env.StorageBackend = backend
	}

	if v := os.Getenv("DEFAULT_CURRENCY"); len(v) != 0 {
		currency := strings.ToUpper(strings.TrimSpace(v))
		if len(currency) != 3 {
			return nil, fmt.Errorf("DEFAULT_CURRENCY must be a 3 letter code, got %q", v)
		}
		env.DefaultCurrency = currency
	}

	if v := os.Getenv("WARNING_THRESHOLD"); len(v) != 0 {
		threshold, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("WARNING_THRESHOLD: %w", err)
		}
		if threshold.IsNegative() || threshold.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("WARNING_THRESHOLD must be between 0 and 100, got %s", v)
		}
		env.WarningThreshold = threshold
	}

	if err := setInt(&env.FutureDateLimitDays, "FUTURE_DATE_LIMIT_DAYS", 0); err != nil {
		return nil, err
	}
	if err := setInt(&env.OperatorWorkers, "OPERATOR_WORKERS", 1); err != nil {
		return nil, err
	}

	return &env, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); len(v) != 0 {
		*dst = v
	}
}

func setInt(dst *int, key string, minimum int) error {
	v := os.Getenv(key)
	if len(v) == 0 {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if n < minimum {
		return fmt.Errorf("%s must be at least %d, got %d", key, minimum, n)
	}
	*dst = n
	return nil
}
