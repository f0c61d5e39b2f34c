package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	scanerrors "github.com/anstrom/scansheet/internal/errors"
	"github.com/anstrom/scansheet/internal/logging"
	"github.com/anstrom/scansheet/internal/metrics"
	"github.com/anstrom/scansheet/internal/report"
)

var nmapSummary bool

// nmapCmd represents the nmap command
var nmapCmd = &cobra.Command{
	Use:   "nmap [flags] FILE...",
	Short: "Build a workbook from nmap XML output",
	Long: `Read one or more nmap XML files and write a workbook with three
worksheets: "Host vs Services", "Host vs OSs" and "OS vs Hosts".

Files are processed in the order given. Arguments may be glob patterns;
a pattern that matches nothing is passed through unchanged.`,
	Example: `  scansheet nmap -o report.xlsx scan.xml
  scansheet nmap -o report.xlsx 'scans/*.xml' extra.xml
  scansheet nmap -o report.xlsx --summary --metrics-file scansheet.prom scan.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNmap,
}

func init() {
	rootCmd.AddCommand(nmapCmd)

	nmapCmd.Flags().StringP("output", "o", "", "Workbook file to write (.xlsx)")
	nmapCmd.Flags().String("metrics-file", "", "Write run metrics to this file in Prometheus text format")
	nmapCmd.Flags().BoolVar(&nmapSummary, "summary", false, "Print the rows written per worksheet")

	bindFlag("report.output", nmapCmd.Flags().Lookup("output"))
	bindFlag("metrics.textfile_path", nmapCmd.Flags().Lookup("metrics-file"))
}

func runNmap(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	if cfg.Report.Output == "" {
		return scanerrors.ErrConfigMissing("report.output")
	}

	inputs := expandInputs(args)
	logging.Debug("resolved inputs", "patterns", args, "files", inputs)
	pm := metrics.NewPrometheusMetrics()

	gen := report.NewGenerator(report.Config{
		Inputs:   inputs,
		Output:   cfg.Report.Output,
		Workbook: cfg.WorkbookOptions(),
	}, report.WithLogger(logging.Default()), report.WithMetrics(pm))

	summary, runErr := gen.Run(cmd.Context())

	if path := cfg.Metrics.TextfilePath; path != "" {
		if err := pm.WriteTextfile(path); err != nil {
			logging.Warn("failed to write metrics file", "path", path, "error", err)
		}
	}

	if runErr != nil {
		return runErr
	}

	if nmapSummary {
		return printSummary(cmd.OutOrStdout(), summary)
	}
	return nil
}

// expandInputs replaces each glob pattern by its matches. Patterns without
// matches, and plain paths, are kept as given.
func expandInputs(args []string) []string {
	inputs := make([]string, 0, len(args))
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil || len(matches) == 0 {
			inputs = append(inputs, arg)
			continue
		}
		inputs = append(inputs, matches...)
	}
	return inputs
}

// printSummary renders the rows written per worksheet.
func printSummary(w io.Writer, summary *report.Summary) error {
	table := tablewriter.NewWriter(w)
	table.Header("Worksheet", "Rows")

	for _, sheet := range summary.Sheets {
		if err := table.Append([]string{sheet.Name, strconv.Itoa(sheet.Rows)}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d file(s), %d host(s) up, %d down, written to %s in %s\n",
		len(summary.Inputs), summary.Hosts.Up, summary.Hosts.Down, summary.Output, summary.Duration.Round(time.Millisecond))
	return err
}

// bindFlag ties a config key to a flag so that an explicit flag wins over
// the environment and the config file.
func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag.Name, err))
	}
}
