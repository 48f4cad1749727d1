// =============================================================================
// Survey Workbook Extractor - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration. Settings
// come from three layers, later layers winning:
//   1. Built-in defaults (the fixed values of the survey tabulation template)
//   2. A YAML configuration file (optional; missing file means defaults)
//   3. SURVEYX_* environment variables
//
// The positional offsets of the extraction template (header row, summary
// rows, fixed response columns) deliberately do NOT appear here: they are
// part of the template contract and live as named constants in the types
// package.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/surveyetl/surveyextract/internal/types"
)

// envPrefix is the prefix for environment variable overrides,
// e.g. SURVEYX_INPUT_DIR.
const envPrefix = "surveyx"

// DefaultOutputName is the master workbook filename used when output_file is
// not set. The file is placed inside the input directory.
const DefaultOutputName = "Master_Survey_Data.xlsx"

// DefaultCountryPattern matches the poll workbook naming convention and
// captures the country name.
const DefaultCountryPattern = `P030045_89up_European_Poll_(.*?)_wtd_Tables`

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the resolved application configuration.
type Config struct {
	// InputDir is the directory scanned (non-recursively) for .xlsx
	// workbooks.
	// Default: "./input"
	InputDir string `yaml:"input_dir" envconfig:"INPUT_DIR"`

	// OutputFile is the path of the master workbook written at the end of a
	// run. When empty it defaults to DefaultOutputName inside InputDir.
	OutputFile string `yaml:"output_file" envconfig:"OUTPUT_FILE"`

	// CSVMirror, when true, also writes the master table as a CSV file next
	// to the master workbook (same name, .csv extension, UTF-8 BOM).
	// Default: false
	CSVMirror bool `yaml:"csv_mirror" envconfig:"CSV_MIRROR"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`

	// Sheets is the allow-list of sheet names to extract. Sheets not in
	// this list contribute nothing regardless of their content.
	// Default: ["Table 196", "Table 197"]
	Sheets []string `yaml:"sheets" envconfig:"SHEETS"`

	// CountryPattern is the regular expression applied to each workbook's
	// base filename; its first capture group is the country name.
	// Default: DefaultCountryPattern
	CountryPattern string `yaml:"country_pattern" envconfig:"COUNTRY_PATTERN"`

	// AgeGroups is the fixed set of demographic bracket labels resolved per
	// sheet from the header row. The defaults are the 13 labels of the
	// master schema; overriding this also changes the output schema.
	AgeGroups []string `yaml:"age_groups" envconfig:"AGE_GROUPS"`

	// countryRe is the compiled CountryPattern, set by Validate.
	countryRe *regexp.Regexp
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration file at configPath, applies environment
// overrides and defaults, and validates the result. A missing configuration
// file is not an error: the built-in defaults describe a complete run.
func Load(configPath string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	// Environment variables override file values.
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	if c.InputDir == "" {
		c.InputDir = "./input"
	}
	if c.OutputFile == "" {
		c.OutputFile = filepath.Join(c.InputDir, DefaultOutputName)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if len(c.Sheets) == 0 {
		c.Sheets = []string{"Table 196", "Table 197"}
	}
	if c.CountryPattern == "" {
		c.CountryPattern = DefaultCountryPattern
	}
	if len(c.AgeGroups) == 0 {
		c.AgeGroups = append([]string(nil), types.AgeGroupColumns...)
	}
}

// Validate checks the configuration and compiles the country pattern.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q (want debug, info, warn or error)", c.LogLevel)
	}

	re, err := regexp.Compile(c.CountryPattern)
	if err != nil {
		return fmt.Errorf("invalid country pattern: %w", err)
	}
	if re.NumSubexp() < 1 {
		return fmt.Errorf("country pattern %q has no capture group for the country name", c.CountryPattern)
	}
	c.countryRe = re

	return nil
}

// CountryRegexp returns the compiled country pattern. Validate must have
// been called (Load always does).
func (c *Config) CountryRegexp() *regexp.Regexp {
	return c.countryRe
}

// SheetAllowed reports whether the given sheet name is in the allow-list.
func (c *Config) SheetAllowed(name string) bool {
	for _, s := range c.Sheets {
		if s == name {
			return true
		}
	}
	return false
}

// CSVMirrorPath returns the path of the CSV mirror: the output file with a
// .csv extension.
func (c *Config) CSVMirrorPath() string {
	ext := filepath.Ext(c.OutputFile)
	return c.OutputFile[:len(c.OutputFile)-len(ext)] + ".csv"
}
