// Package report reshapes parsed nmap results into the three scansheet
// worksheets and writes them to a workbook.
//
// Extraction (ExtractServiceRows, ExtractHostOSRows, OSHostsIndex) works on a
// single parsed file. The Build* functions combine every file of a run into
// one Table each, applying the ordering rules of that worksheet. Generator
// drives a whole run: parse, build, write, save.
package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	scanerrors "github.com/anstrom/scansheet/internal/errors"
	"github.com/anstrom/scansheet/internal/logging"
	"github.com/anstrom/scansheet/internal/metrics"
	"github.com/anstrom/scansheet/internal/scanning"
	"github.com/anstrom/scansheet/internal/workbook"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Config describes one report run.
type Config struct {
	// Inputs are nmap XML files, processed in this order
	Inputs []string
	// Output is the .xlsx file to write
	Output string
	// Workbook controls table rendering
	Workbook workbook.Options
}

// Loader parses one scan file.
type Loader func(path string) (*scanning.Result, error)

// SheetSummary reports what was written to one worksheet.
type SheetSummary struct {
	Name string
	Rows int
}

// Summary describes a finished run.
type Summary struct {
	RunID    string
	Inputs   []string
	Output   string
	Hosts    scanning.HostStats
	Sheets   []SheetSummary
	Duration time.Duration
}

// Generator produces one workbook from a set of scan files.
type Generator struct {
	cfg     Config
	logger  *logging.Logger
	metrics metrics.Recorder
	load    Loader
	runID   string
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. The default is logging.Default(); nil keeps it.
func WithLogger(logger *logging.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder. The default discards metrics.
func WithMetrics(m metrics.Recorder) Option {
	return func(g *Generator) {
		if m != nil {
			g.metrics = m
		}
	}
}

// WithLoader replaces the scan file parser.
func WithLoader(load Loader) Option {
	return func(g *Generator) {
		g.load = load
	}
}

// NewGenerator creates a generator for cfg.
func NewGenerator(cfg Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:     cfg,
		logger:  logging.Default(),
		metrics: metrics.Nop{},
		load:    scanning.LoadFile,
		runID:   uuid.NewString(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.WithComponent("report").WithRunID(g.runID)
	return g
}

// Run parses every input, writes the three worksheets and saves the workbook.
// Parse failures abort the run before anything is written. A failure to save
// the workbook is logged and returned together with the summary of what was
// built.
func (g *Generator) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	summary := &Summary{
		RunID:  g.runID,
		Inputs: append([]string(nil), g.cfg.Inputs...),
		Output: g.cfg.Output,
	}

	err := g.run(ctx, summary)
	summary.Duration = time.Since(start)

	status := statusSuccess
	if err != nil {
		status = statusError
	}
	g.metrics.RunCompleted(status, summary.Duration)

	return summary, err
}

func (g *Generator) run(ctx context.Context, summary *Summary) error {
	if len(g.cfg.Inputs) == 0 {
		return scanerrors.ErrConfigMissing("inputs")
	}
	if g.cfg.Output == "" {
		return scanerrors.ErrConfigMissing("output")
	}

	g.logResolvedFiles()

	results, err := g.parseAll(ctx)
	if err != nil {
		return err
	}
	for _, res := range results {
		stats := res.Stats()
		summary.Hosts.Up += stats.Up
		summary.Hosts.Down += stats.Down
		summary.Hosts.Total += stats.Total
	}
	g.countSkippedHosts(results)

	wb, err := workbook.Create(g.cfg.Output, g.cfg.Workbook)
	if err != nil {
		return err
	}

	builders := []struct {
		name  string
		build func() Table
	}{
		{SheetHostServices, func() Table { return BuildHostServices(results) }},
		{SheetHostOS, func() Table { return BuildHostOS(results, g.logger) }},
		{SheetOSHosts, func() Table { return BuildOSHosts(results, g.logger) }},
	}

	for _, b := range builders {
		g.logger.InfoSheet("generating worksheet", b.name)

		table := b.build()
		if err := writeTable(wb, table); err != nil {
			_ = wb.Discard()
			return err
		}

		g.metrics.RowsWritten(table.Name, len(table.Rows))
		summary.Sheets = append(summary.Sheets, SheetSummary{Name: table.Name, Rows: len(table.Rows)})
	}

	if err := wb.Close(); err != nil {
		g.logger.ErrorWorkbook("failed to save workbook", wb.Path(), err)
		return err
	}

	g.logger.Info("workbook written", "output", wb.Path(), "sheets", wb.Sheets())
	return nil
}

func writeTable(wb *workbook.Workbook, table Table) error {
	ws, err := wb.AddWorksheet(table.Name)
	if err != nil {
		return err
	}
	return ws.WriteTable(table.Headers, table.Rows)
}

// logResolvedFiles logs the input names in sorted order and the output name.
func (g *Generator) logResolvedFiles() {
	inputs := append([]string(nil), g.cfg.Inputs...)
	sort.Strings(inputs)
	g.logger.Info("input file(s)", "files", inputs)
	g.logger.Info("output file", "file", g.cfg.Output)
}

// parseAll parses the inputs in order. The first failure aborts the run.
func (g *Generator) parseAll(ctx context.Context) ([]*scanning.Result, error) {
	results := make([]*scanning.Result, 0, len(g.cfg.Inputs))
	for _, path := range g.cfg.Inputs {
		if err := ctx.Err(); err != nil {
			return nil, scanerrors.WrapParseError(scanerrors.CodeCanceled, "Run canceled", path, err)
		}

		res, err := g.load(path)
		if err != nil {
			g.metrics.FileParsed(statusError)
			return nil, err
		}
		g.metrics.FileParsed(statusSuccess)

		stats := res.Stats()
		g.metrics.HostsSeen(stats)
		g.logger.WithFile(path).Debug("parsed scan file", "hosts", stats.Total, "up", stats.Up)

		results = append(results, res)
	}
	return results, nil
}

// countSkippedHosts records each host missing from the OS worksheets once.
func (g *Generator) countSkippedHosts(results []*scanning.Result) {
	for _, res := range results {
		for i := range res.Hosts {
			if reason := osSkipReason(&res.Hosts[i]); reason != "" {
				g.metrics.HostSkipped(reason)
			}
		}
	}
}
