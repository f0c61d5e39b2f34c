package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	scanerrors "github.com/anstrom/scansheet/internal/errors"
	"github.com/anstrom/scansheet/internal/logging"
)

const defaultConfigFile = "scansheet.yaml"

var configForce bool

// configCmd groups configuration helpers.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage scansheet configuration",
}

// configInitCmd writes the resolved configuration to a YAML file.
var configInitCmd = &cobra.Command{
	Use:   "init [FILE]",
	Short: "Write the current configuration to a file",
	Long: `Write the configuration in effect (defaults, config file, environment
and flags combined) as YAML. The default file is ./scansheet.yaml.`,
	Example: `  scansheet config init
  SCANSHEET_REPORT_OUTPUT=report.xlsx scansheet config init --force team.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := defaultConfigFile
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return scanerrors.NewConfigFieldError(scanerrors.CodeConfiguration, "Config file already exists, use --force to overwrite", "file", path)
	}

	if err := appConfig.Save(path); err != nil {
		return err
	}

	logging.Debug("configuration written", "path", path)
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
	return err
}
