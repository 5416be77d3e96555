// Package config reads the snowball settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/snowball"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	State         string // State is the kv URL of the portfolio state.
	Quotes        string // Quotes is the path of a quote document.
	QuotesMapping string // QuotesMapping is the path of a JSONPath mapping for Quotes.
	Currency      string
	CostMethod    string
	LogLevel      string
	LogPretty     bool
	TaxRates      snowball.TaxRates
}

// Default returns the configuration used when the environment sets nothing.
func Default() *Config {
	return &Config{
		State:      ".snowball",
		Currency:   "USD",
		CostMethod: "average",
		LogLevel:   "warn",
		LogPretty:  true,
		TaxRates:   snowball.DefaultTaxRates,
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	def := Default()
	cfg := &Config{
		State:         getEnv("SNOWBALL_STATE", def.State),
		Quotes:        getEnv("SNOWBALL_QUOTES", def.Quotes),
		QuotesMapping: getEnv("SNOWBALL_QUOTES_MAPPING", def.QuotesMapping),
		Currency:      strings.ToUpper(getEnv("SNOWBALL_CURRENCY", def.Currency)),
		CostMethod:    getEnv("SNOWBALL_COST_METHOD", def.CostMethod),
		LogLevel:      getEnv("SNOWBALL_LOG_LEVEL", def.LogLevel),
		LogPretty:     getEnvAsBool("SNOWBALL_LOG_PRETTY", def.LogPretty),
	}
	var err error
	rates := def.TaxRates
	if rates.Qualified, err = getEnvAsPercent("SNOWBALL_TAX_QUALIFIED", rates.Qualified); err != nil {
		return nil, err
	}
	if rates.Ordinary, err = getEnvAsPercent("SNOWBALL_TAX_ORDINARY", rates.Ordinary); err != nil {
		return nil, err
	}
	if rates.Foreign, err = getEnvAsPercent("SNOWBALL_TAX_FOREIGN", rates.Foreign); err != nil {
		return nil, err
	}
	cfg.TaxRates = rates

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.State == "" {
		return fmt.Errorf("SNOWBALL_STATE is required")
	}
	if _, err := snowball.ParseCostBasisMethod(c.CostMethod); err != nil {
		return fmt.Errorf("SNOWBALL_COST_METHOD: %w", err)
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvAsPercent reads a rate such as "15" or "15%".
func getEnvAsPercent(key string, defaultValue snowball.Percent) (snowball.Percent, error) {
	value := strings.TrimSuffix(strings.TrimSpace(os.Getenv(key)), "%")
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 || f > 100 {
		return 0, fmt.Errorf("%s: invalid rate %q", key, os.Getenv(key))
	}
	return snowball.Percent(f), nil
}
