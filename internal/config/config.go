// Package config loads and validates the scansheet configuration file.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	scanerrors "github.com/anstrom/scansheet/internal/errors"
	"github.com/anstrom/scansheet/internal/logging"
	"github.com/anstrom/scansheet/internal/workbook"
)

const (
	configDirPerm  = 0o755
	configFilePerm = 0o644
)

// Config represents the complete scansheet configuration
type Config struct {
	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Report output configuration
	Report ReportConfig `yaml:"report" json:"report"`

	// Metrics configuration
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level" json:"level" validate:"required,oneof=debug info warn error"`

	// Log format (text, json)
	Format string `yaml:"format" json:"format" validate:"required,oneof=text json"`

	// Log output (stdout, stderr, file path)
	Output string `yaml:"output" json:"output" validate:"required,max=255"`

	// Include source file and line in log records
	AddSource bool `yaml:"add_source" json:"add_source"`
}

// ReportConfig holds workbook settings
type ReportConfig struct {
	// Default output file, used when no --output flag is given
	Output string `yaml:"output" json:"output" validate:"omitempty,xlsx"`

	// Excel built-in table style
	TableStyle string `yaml:"table_style" json:"table_style" validate:"required,startswith=TableStyle"`

	// Keep the header row visible while scrolling
	FreezeHeader bool `yaml:"freeze_header" json:"freeze_header"`

	// Size columns to their content
	AutoFitColumns bool `yaml:"auto_fit_columns" json:"auto_fit_columns"`
}

// MetricsConfig holds metrics export settings
type MetricsConfig struct {
	// Write run metrics to this file in Prometheus text format; empty disables
	TextfilePath string `yaml:"textfile_path" json:"textfile_path" validate:"omitempty,max=255"`
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	opts := workbook.DefaultOptions()
	return &Config{
		Logging: LoggingConfig{
			Level:  string(logging.LevelInfo),
			Format: string(logging.FormatText),
			Output: "stderr",
		},
		Report: ReportConfig{
			TableStyle:     opts.TableStyle,
			FreezeHeader:   opts.FreezeHeader,
			AutoFitColumns: opts.AutoFitColumns,
		},
	}
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path) //nolint:gosec // config path is chosen by the operator
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, scanerrors.WrapConfigError(scanerrors.CodeConfiguration, "Failed to read config file", err)
	}

	// JSON is a subset of YAML, so one decoder serves both.
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, scanerrors.WrapConfigError(scanerrors.CodeConfiguration,
			"Failed to parse config file "+filepath.Base(path), err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirPerm); err != nil {
		return scanerrors.WrapConfigError(scanerrors.CodeConfiguration, "Failed to create config directory", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return scanerrors.WrapConfigError(scanerrors.CodeConfiguration, "Failed to marshal config", err)
	}

	if err := os.WriteFile(path, data, configFilePerm); err != nil {
		return scanerrors.WrapConfigError(scanerrors.CodeConfiguration, "Failed to write config file", err)
	}

	return nil
}

// Validate checks every field against its validate tag. The first failing
// field is reported by its YAML path, e.g. "logging.level".
func (c *Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return scanerrors.WrapConfigError(scanerrors.CodeValidation, "Invalid configuration", err)
	}

	fe := fieldErrs[0]
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	if fe.Tag() == "required" {
		return scanerrors.ErrConfigMissing(field)
	}
	return scanerrors.ErrConfigInvalid(field, fe.Value())
}

// newValidator reports fields by their yaml names. The xlsx tag accepts the
// extension in any case, as excelize does when saving.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("xlsx", func(fl validator.FieldLevel) bool {
		return strings.EqualFold(filepath.Ext(fl.Field().String()), ".xlsx")
	})
	return v
}

// LoggingOptions converts the logging section for logging.New.
func (c *Config) LoggingOptions() logging.Config {
	return logging.Config{
		Level:     logging.LogLevel(c.Logging.Level),
		Format:    logging.LogFormat(c.Logging.Format),
		Output:    c.Logging.Output,
		AddSource: c.Logging.AddSource,
	}
}

// WorkbookOptions converts the report section for workbook.Create.
func (c *Config) WorkbookOptions() workbook.Options {
	return workbook.Options{
		TableStyle:     c.Report.TableStyle,
		FreezeHeader:   c.Report.FreezeHeader,
		AutoFitColumns: c.Report.AutoFitColumns,
	}
}
