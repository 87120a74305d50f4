// Package config loads harness configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Policy modes selectable via POLICY_MODE.
const (
	PolicyModeDelta   = "delta"   // built-in Black-Scholes delta baseline
	PolicyModeService = "service" // external policy service over HTTP
	PolicyModeFlat    = "flat"    // constant position, index 0
)

// Config holds application configuration
type Config struct {
	Episodes      int
	RollingWindow int
	Seed          int64
	LogLevel      string
	Pretty        bool

	PolicyMode       string
	PolicyServiceURL string

	ResultsDBPath         string // empty disables persistence
	TrajectoryArchivePath string // empty disables the msgpack archive

	Serve    bool
	Port     int
	EvalCron string // empty disables scheduled re-runs in serve mode

	Env EnvConfig
}

// EnvConfig configures the reference simulation environment.
type EnvConfig struct {
	Tickers       []string
	ExpiryChoices []int // days to expiry, drawn uniformly per episode
	ActionLevels  int   // discrete hedge positions spread over [0, 1]
	Volatility    float64
	Drift         float64
	RiskFreeRate  float64
	Risk          float64 // sizing multiplier applied to the premium
	Shares        float64
	StrikePrice   float64
}

// defaultTickers is the evaluation universe used when TICKERS is unset.
var defaultTickers = []string{
	"AAPL", "MSFT", "IBM", "JNJ", "MCD",
	"KO", "PG", "WMT", "XOM", "GE",
	"MMM", "F", "T", "CSCO", "PFE",
	"INTC", "BA", "CAT", "CVX", "PEP",
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Episodes:      getEnvAsInt("EPISODES", 1000),
		RollingWindow: getEnvAsInt("ROLLING_WINDOW", 20),
		Seed:          int64(getEnvAsInt("SEED", 42)),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Pretty:        getEnvAsBool("LOG_PRETTY", true),

		PolicyMode:       getEnv("POLICY_MODE", PolicyModeDelta),
		PolicyServiceURL: getEnv("POLICY_SERVICE_URL", "http://localhost:8000"),

		ResultsDBPath:         getEnv("RESULTS_DB_PATH", ""),
		TrajectoryArchivePath: getEnv("TRAJECTORY_ARCHIVE_PATH", ""),

		Serve:    getEnvAsBool("SERVE", false),
		Port:     getEnvAsInt("GO_PORT", 8001),
		EvalCron: getEnv("EVAL_CRON", ""),

		Env: EnvConfig{
			Tickers:       getEnvAsList("TICKERS", defaultTickers),
			ExpiryChoices: getEnvAsIntList("EXPIRY_CHOICES", []int{21, 42, 63}),
			ActionLevels:  getEnvAsInt("ACTION_LEVELS", 11),
			Volatility:    getEnvAsFloat("VOLATILITY", 0.2),
			Drift:         getEnvAsFloat("DRIFT", 0.05),
			RiskFreeRate:  getEnvAsFloat("RISK_FREE_RATE", 0.02),
			Risk:          getEnvAsFloat("RISK", 1.0),
			Shares:        getEnvAsFloat("SHARES", 100),
			StrikePrice:   getEnvAsFloat("STRIKE_PRICE", 100),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Episodes <= 0 {
		return fmt.Errorf("EPISODES must be positive, got %d", c.Episodes)
	}
	if c.RollingWindow <= 0 {
		return fmt.Errorf("ROLLING_WINDOW must be positive, got %d", c.RollingWindow)
	}

	switch c.PolicyMode {
	case PolicyModeDelta, PolicyModeFlat:
	case PolicyModeService:
		if c.PolicyServiceURL == "" {
			return fmt.Errorf("POLICY_SERVICE_URL is required when POLICY_MODE=service")
		}
	default:
		return fmt.Errorf("unknown POLICY_MODE %q", c.PolicyMode)
	}

	if len(c.Env.Tickers) == 0 {
		return fmt.Errorf("TICKERS must not be empty")
	}
	if len(c.Env.ExpiryChoices) == 0 {
		return fmt.Errorf("EXPIRY_CHOICES must not be empty")
	}
	for _, d := range c.Env.ExpiryChoices {
		if d < 2 {
			return fmt.Errorf("EXPIRY_CHOICES entries must be at least 2 days, got %d", d)
		}
	}
	if c.Env.ActionLevels < 2 {
		return fmt.Errorf("ACTION_LEVELS must be at least 2, got %d", c.Env.ActionLevels)
	}
	if c.Env.Shares <= 0 {
		return fmt.Errorf("SHARES must be positive")
	}
	if c.Env.StrikePrice <= 0 {
		return fmt.Errorf("STRIKE_PRICE must be positive")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvAsIntList(key string, defaultValue []int) []int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []int
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		intVal, err := strconv.Atoi(trimmed)
		if err != nil {
			return defaultValue
		}
		out = append(out, intVal)
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
