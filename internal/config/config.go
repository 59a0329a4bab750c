package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sheetops/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data     DataConfig
	Category CategoryConfig
	Fuzzy    FuzzyConfig
	Display  DisplayConfig
	LogLevel string
}

// DataConfig holds input file locations, relative to Dir unless absolute
type DataConfig struct {
	Dir          string
	SalesPattern string
	StatusFile   string
	CompFile     string
	SalesFile    string
	TypesFile    string
	SheetName    string
}

// CategoryConfig holds the customer status categories
type CategoryConfig struct {
	Default string
	Order   []string
}

// FuzzyConfig holds approximate matching settings
type FuzzyConfig struct {
	Cutoff int
}

// DisplayConfig holds printing settings
type DisplayConfig struct {
	CurrencySymbol string
	Rows           int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:     *loadDataConfig(),
		Category: *loadCategoryConfig(),
		Fuzzy:    FuzzyConfig{Cutoff: getEnvIntOrDefault("FUZZY_CUTOFF", 80)},
		Display:  *loadDisplayConfig(),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:          ".",
			SalesPattern: "sales*.xlsx",
			StatusFile:   "customer-status.xlsx",
			CompFile:     "excel-comp-data.xlsx",
			SalesFile:    "sample-salesv3.xlsx",
			TypesFile:    "sales_data_types.csv",
		},
		Category: CategoryConfig{
			Default: "bronze",
			Order:   []string{"gold", "silver", "bronze"},
		},
		Fuzzy:    FuzzyConfig{Cutoff: 80},
		Display:  DisplayConfig{CurrencySymbol: "$", Rows: 5},
		LogLevel: "INFO",
	}
}

func loadDataConfig() *DataConfig {
	d := Default().Data
	return &DataConfig{
		Dir:          getEnvOrDefault("DATA_DIR", d.Dir),
		SalesPattern: getEnvOrDefault("SALES_PATTERN", d.SalesPattern),
		StatusFile:   getEnvOrDefault("STATUS_FILE", d.StatusFile),
		CompFile:     getEnvOrDefault("COMP_FILE", d.CompFile),
		SalesFile:    getEnvOrDefault("SALES_FILE", d.SalesFile),
		TypesFile:    getEnvOrDefault("TYPES_FILE", d.TypesFile),
		SheetName:    getEnvOrDefault("SHEET_NAME", ""),
	}
}

func loadCategoryConfig() *CategoryConfig {
	c := Default().Category
	return &CategoryConfig{
		Default: getEnvOrDefault("DEFAULT_STATUS", c.Default),
		Order:   getEnvListOrDefault("STATUS_ORDER", c.Order),
	}
}

func loadDisplayConfig() *DisplayConfig {
	d := Default().Display
	return &DisplayConfig{
		CurrencySymbol: getEnvOrDefault("CURRENCY_SYMBOL", d.CurrencySymbol),
		Rows:           getEnvIntOrDefault("DISPLAY_ROWS", d.Rows),
	}
}

// Validate checks the settings that would otherwise fail deep inside a walkthrough
func (c *Config) Validate() error {
	if c.Fuzzy.Cutoff < 0 || c.Fuzzy.Cutoff > 100 {
		return errors.ConfigInvalid(fmt.Sprintf("FUZZY_CUTOFF must be within 0..100, got %d", c.Fuzzy.Cutoff))
	}
	if len(c.Category.Order) == 0 {
		return errors.ConfigInvalid("STATUS_ORDER must name at least one category")
	}
	found := false
	for _, cat := range c.Category.Order {
		if cat == c.Category.Default {
			found = true
			break
		}
	}
	if !found {
		return errors.ConfigInvalid(fmt.Sprintf("DEFAULT_STATUS %q is not listed in STATUS_ORDER", c.Category.Default))
	}
	if c.Display.Rows < 0 {
		return errors.ConfigInvalid("DISPLAY_ROWS must not be negative")
	}
	if c.Data.SalesPattern == "" {
		return errors.ConfigInvalid("SALES_PATTERN is required")
	}
	return nil
}

// Path resolves a data file name against the data directory
func (d DataConfig) Path(name string) string {
	if filepath.IsAbs(name) || d.Dir == "" {
		return name
	}
	return filepath.Join(d.Dir, name)
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
