// Package cli provides the command-line interface for scansheet.
// It implements the Cobra command tree, loads configuration from file,
// environment and flags, and sets up structured logging before a command runs.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/anstrom/scansheet/internal/config"
	scanerrors "github.com/anstrom/scansheet/internal/errors"
	"github.com/anstrom/scansheet/internal/logging"
)

const (
	envPrefix = "SCANSHEET"

	// exitCanceled follows the shell convention for SIGINT.
	exitCanceled = 130
)

var (
	cfgFile string
	verbose bool

	// appConfig is the configuration resolved for the running command.
	appConfig *config.Config
)

// Build information - these will be set by ldflags during build.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "scansheet",
	Short: "Turn nmap scan results into spreadsheets",
	Long: `Scansheet converts nmap XML output into an Excel workbook with one
worksheet per view: services per host, operating system per host and hosts
per operating system.`,
	Version:           getVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadRuntimeConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logging.Error("command failed", "code", scanerrors.GetCode(err), "error", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	if scanerrors.IsCode(err, scanerrors.CodeCanceled) {
		return exitCanceled
	}
	return 1
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./scansheet.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind verbose flag: %v\n", err)
	}
}

// initConfig locates the config file and enables SCANSHEET_* environment
// overrides, e.g. SCANSHEET_REPORT_OUTPUT for report.output.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("scansheet")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// loadRuntimeConfig resolves the configuration and installs the default logger.
func loadRuntimeConfig(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	appConfig = cfg
	initLogging(cfg)
	return nil
}

// resolveConfig loads the config file, if any, then applies environment
// variables and flags on top. The result is validated again afterwards.
func resolveConfig() (*config.Config, error) {
	cfg := config.Default()

	if path := configPath(); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return viper.ConfigFileUsed()
}

// applyOverrides copies every key set through the environment or a flag.
func applyOverrides(cfg *config.Config) {
	strs := map[string]*string{
		"logging.level":         &cfg.Logging.Level,
		"logging.format":        &cfg.Logging.Format,
		"logging.output":        &cfg.Logging.Output,
		"report.output":         &cfg.Report.Output,
		"report.table_style":    &cfg.Report.TableStyle,
		"metrics.textfile_path": &cfg.Metrics.TextfilePath,
	}
	for key, dst := range strs {
		if viper.IsSet(key) {
			*dst = viper.GetString(key)
		}
	}

	bools := map[string]*bool{
		"logging.add_source":      &cfg.Logging.AddSource,
		"report.freeze_header":    &cfg.Report.FreezeHeader,
		"report.auto_fit_columns": &cfg.Report.AutoFitColumns,
	}
	for key, dst := range bools {
		if viper.IsSet(key) {
			*dst = viper.GetBool(key)
		}
	}

	if viper.GetBool("verbose") {
		cfg.Logging.Level = string(logging.LevelDebug)
	}
}

// getVersion returns the version string.
func getVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime)
}

// SetVersion sets the version information (called from main).
func SetVersion(v, c, bt string) {
	version = v
	commit = c
	buildTime = bt
	rootCmd.Version = getVersion()
}

// initLogging initializes structured logging based on configuration.
func initLogging(cfg *config.Config) {
	logger, err := logging.New(cfg.LoggingOptions())
	if err != nil {
		logger = logging.NewDefault()
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	logging.SetDefault(logger)

	if verbose {
		logging.Info("Structured logging initialized", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	}
}
