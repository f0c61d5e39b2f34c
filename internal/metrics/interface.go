// Package metrics provides interfaces for metrics collection and monitoring.
package metrics

import (
	"time"

	"github.com/anstrom/scansheet/internal/scanning"
)

//go:generate mockgen -source=interface.go -destination=mocks/mock_recorder.go -package=mocks

// Recorder defines what a report run reports about itself.
// This interface allows for easy mocking and testing of metrics functionality.
type Recorder interface {
	// FileParsed counts an input file by outcome ("success" or "error").
	FileParsed(status string)

	// HostsSeen adds the up/down host counts of one parsed file.
	HostsSeen(stats scanning.HostStats)

	// HostSkipped counts a host left out of the OS worksheets.
	HostSkipped(reason string)

	// RowsWritten records the number of data rows written to a worksheet.
	RowsWritten(sheet string, rows int)

	// RunCompleted records the run duration by outcome.
	RunCompleted(status string, duration time.Duration)
}

// Nop discards everything.
type Nop struct{}

func (Nop) FileParsed(string) {}

func (Nop) HostsSeen(scanning.HostStats) {}

func (Nop) HostSkipped(string) {}

func (Nop) RowsWritten(string, int) {}

func (Nop) RunCompleted(string, time.Duration) {}

// Ensure that both implementations satisfy Recorder.
var (
	_ Recorder = Nop{}
	_ Recorder = (*PrometheusMetrics)(nil)
)
