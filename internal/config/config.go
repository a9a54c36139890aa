// =============================================================================
// Bakery Order Report - Configuration Module
// =============================================================================
//
// This module loads the two configuration files the tool understands.
//
// CONFIGURATION FILES:
//   1. Main Config (config.yaml): Global settings (output, logging, CSV
//      parsing, report labels). Every value can be overridden from the
//      environment with the BAKERY_ prefix, e.g. BAKERY_OUTPUT_DIR or
//      BAKERY_CSV_ENCODING.
//   2. Job Config (job.yaml): Per-sale settings that the operator would
//      otherwise set step by step: column mapping overrides, price overrides
//      and the date groups.
//
// LOAD ORDER (main config):
//   YAML file -> defaults for unset values -> environment -> validation
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/bakery-order-report/internal/types"
	"github.com/ginjaninja78/bakery-order-report/internal/validation"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "BAKERY"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is where reports and price files are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`

	// ReportFileFormat is the report file name pattern.
	// Placeholders:
	//   {date}      - Current date (YYYY-MM-DD)
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - A random UUID
	// Default: "BakeryReport_{date}.xlsx"
	ReportFileFormat string `yaml:"report_file_format" envconfig:"REPORT_FILE_FORMAT" validate:"required"`

	// PriceFileFormat is the exported price file name pattern, with the same
	// placeholders as ReportFileFormat.
	// Default: "prices_{date}.json"
	PriceFileFormat string `yaml:"price_file_format" envconfig:"PRICE_FILE_FORMAT" validate:"required"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	// LogFormat selects the log handler.
	// Valid values: "text", "json"
	// Default: "text"
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT" validate:"oneof=text json"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// CSV contains settings for parsing uploaded CSV files.
	CSV CSVSettings `yaml:"csv" envconfig:"CSV"`

	// IdentityBaseURL is prefixed to the identity cell of each order.
	// Default: "https://www.instagram.com/"
	IdentityBaseURL string `yaml:"identity_base_url" envconfig:"IDENTITY_BASE_URL" validate:"required,url"`

	// Labels are the fixed texts written into the report.
	Labels Labels `yaml:"labels" envconfig:"LABELS"`
}

// =============================================================================
// CSV SETTINGS STRUCTURE
// =============================================================================

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the character used to separate fields in the CSV.
	// Common values: "," (comma), ";" (semicolon), "|" (pipe), "tab"
	// Default: ","
	Delimiter string `yaml:"delimiter" envconfig:"DELIMITER"`

	// Encoding is the character encoding of the CSV file. A byte-order mark
	// in the file always takes precedence.
	// Common values: "UTF-8", "UTF-16", "Big5"
	// Default: "UTF-8"
	Encoding string `yaml:"encoding" envconfig:"ENCODING"`
}

// =============================================================================
// REPORT LABELS
// =============================================================================

// Labels are the sheet names and fixed column titles of the report.
type Labels struct {
	AllSheet      string `yaml:"all_sheet" envconfig:"ALL_SHEET" validate:"required"`
	ShippingSheet string `yaml:"shipping_sheet" envconfig:"SHIPPING_SHEET" validate:"required"`
	PickupSheet   string `yaml:"pickup_sheet" envconfig:"PICKUP_SHEET" validate:"required"`
	Summary       string `yaml:"summary" envconfig:"SUMMARY" validate:"required"`
	Status        string `yaml:"status" envconfig:"STATUS"`
	Total         string `yaml:"total" envconfig:"TOTAL"`
	Identity      string `yaml:"identity" envconfig:"IDENTITY"`
}

// =============================================================================
// JOB CONFIGURATION STRUCTURE
// =============================================================================

// JobConfig holds the settings for one sale. Everything is optional: an empty
// job means "use what inference finds and do not group".
type JobConfig struct {
	// Sheet selects the worksheet of an XLSX upload. Default: the first one.
	Sheet string `yaml:"sheet"`

	// Mapping overrides the inferred column mapping. Empty fields keep the
	// inferred value.
	Mapping types.ColumnMapping `yaml:"mapping"`

	// Prices overrides inferred unit prices and display labels by header.
	Prices []PriceOverride `yaml:"prices" validate:"dive"`

	// Groups are the date batches, in priority order.
	Groups []types.GroupDefinition `yaml:"groups" validate:"dive"`

	// GroupByDate creates one group per distinct date when Groups is empty.
	GroupByDate bool `yaml:"group_by_date"`
}

// PriceOverride replaces the inferred price settings of one column.
type PriceOverride struct {
	// Header is the exact column header the override applies to.
	Header string `yaml:"header" validate:"required"`

	// UnitPrice replaces the inferred price when set.
	UnitPrice *float64 `yaml:"unit_price" validate:"omitempty,gte=0"`

	// DisplayLabel replaces the inferred label when set.
	DisplayLabel *string `yaml:"display_label"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration.
//
// PARAMETERS:
//   - configPath: The path to the YAML file. An empty path, or a path that
//     does not exist, yields the defaults (plus environment overrides).
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be parsed or the result is invalid.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
			// Defaults only.
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	applyMainConfigDefaults(&config)

	if err := envconfig.Process(EnvPrefix, &config); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := validation.Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.ReportFileFormat == "" {
		config.ReportFileFormat = "BakeryReport_{date}.xlsx"
	}
	if config.PriceFileFormat == "" {
		config.PriceFileFormat = "prices_{date}.json"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
	if config.CSV.Delimiter == "" {
		config.CSV.Delimiter = ","
	}
	if config.CSV.Encoding == "" {
		config.CSV.Encoding = "UTF-8"
	}
	if config.IdentityBaseURL == "" {
		config.IdentityBaseURL = "https://www.instagram.com/"
	}

	labels := &config.Labels
	if labels.AllSheet == "" {
		labels.AllSheet = "所有訂單"
	}
	if labels.ShippingSheet == "" {
		labels.ShippingSheet = "寄送訂單"
	}
	if labels.PickupSheet == "" {
		labels.PickupSheet = "面交訂單"
	}
	if labels.Summary == "" {
		labels.Summary = "總計"
	}
	if labels.Status == "" {
		labels.Status = "選項"
	}
	if labels.Total == "" {
		labels.Total = "總額"
	}
	if labels.Identity == "" {
		labels.Identity = "IG 網址"
	}
}

// LoadJobConfig loads a job configuration file. An empty path yields an
// empty job.
func LoadJobConfig(path string) (*JobConfig, error) {
	var job JobConfig
	if path == "" {
		return &job, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}

	if err := validation.Struct(&job); err != nil {
		return nil, fmt.Errorf("invalid job file: %w", err)
	}

	return &job, nil
}

// =============================================================================
// APPLYING A JOB
// =============================================================================

// ApplyMapping overlays the non-empty mapping fields of the job on inferred.
func (j *JobConfig) ApplyMapping(inferred types.ColumnMapping) types.ColumnMapping {
	mapping := inferred
	if j.Mapping.IdentityColumn != "" {
		mapping.IdentityColumn = j.Mapping.IdentityColumn
	}
	if j.Mapping.DateColumn != "" {
		mapping.DateColumn = j.Mapping.DateColumn
	}
	if j.Mapping.FulfillmentColumn != "" {
		mapping.FulfillmentColumn = j.Mapping.FulfillmentColumn
	}
	return mapping
}

// ApplyPrices returns a copy of prices with the job's overrides applied to
// every entry whose header matches.
func (j *JobConfig) ApplyPrices(prices []types.PriceEntry) []types.PriceEntry {
	out := append([]types.PriceEntry(nil), prices...)
	for _, o := range j.Prices {
		for i := range out {
			if out[i].SourceHeader != o.Header {
				continue
			}
			if o.UnitPrice != nil {
				out[i].UnitPrice = decimal.NewFromFloat(*o.UnitPrice)
			}
			if o.DisplayLabel != nil {
				out[i].DisplayLabel = *o.DisplayLabel
			}
		}
	}
	return out
}
