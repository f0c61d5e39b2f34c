package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anstrom/scansheet/internal/scanning"
)

func TestPrometheusMetricsCounters(t *testing.T) {
	pm := NewPrometheusMetrics()

	pm.FileParsed("success")
	pm.FileParsed("success")
	pm.FileParsed("error")
	pm.HostsSeen(scanning.HostStats{Up: 3, Down: 2, Total: 5})
	pm.HostSkipped("host down")
	pm.RowsWritten("Host vs Services", 7)
	pm.RowsWritten("Host vs Services", 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(pm.filesParsed.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.filesParsed.WithLabelValues("error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(pm.hostsSeen.WithLabelValues("up")))
	assert.Equal(t, 2.0, testutil.ToFloat64(pm.hostsSeen.WithLabelValues("down")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.hostsSkipped.WithLabelValues("host down")))
	assert.Equal(t, 8.0, testutil.ToFloat64(pm.rowsWritten.WithLabelValues("Host vs Services")))
}

func TestPrometheusMetricsRunCompleted(t *testing.T) {
	pm := NewPrometheusMetrics()

	pm.RunCompleted("success", 250*time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(pm.runDuration))
	assert.Greater(t, testutil.ToFloat64(pm.lastRun), 0.0)
}

func TestWriteTextfile(t *testing.T) {
	pm := NewPrometheusMetrics()
	pm.FileParsed("success")
	pm.RowsWritten("OS vs Hosts", 2)

	path := filepath.Join(t.TempDir(), "scansheet.prom")
	require.NoError(t, pm.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.Contains(out, `scansheet_input_files_total{status="success"} 1`), out)
	assert.True(t, strings.Contains(out, `scansheet_report_rows_total{sheet="OS vs Hosts"} 2`), out)
}

func TestNop(t *testing.T) {
	var r Recorder = Nop{}
	r.FileParsed("success")
	r.HostsSeen(scanning.HostStats{Up: 1})
	r.HostSkipped("host down")
	r.RowsWritten("sheet", 1)
	r.RunCompleted("success", time.Second)
}
