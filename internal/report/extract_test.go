package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anstrom/scansheet/internal/logging"
	"github.com/anstrom/scansheet/internal/scanning"
)

func upHost(addr string, ports ...scanning.Port) scanning.Host {
	return scanning.Host{Address: addr, Status: scanning.StateUp, Ports: ports}
}

func withOS(h scanning.Host, matches ...scanning.OSMatch) scanning.Host {
	h.OSFingerprinted = true
	h.OSMatches = matches
	return h
}

func tcp(n uint16, service string) scanning.Port {
	return scanning.Port{Number: n, Protocol: "tcp", State: "open", Reason: "syn-ack", Service: service}
}

func TestExtractServiceRows(t *testing.T) {
	res := &scanning.Result{
		File: "a.xml",
		Hosts: []scanning.Host{
			upHost("10.0.0.1",
				scanning.Port{Number: 22, Protocol: "tcp", State: "open", Reason: "syn-ack", Service: "ssh", Banner: "product: OpenSSH"},
				tcp(80, "http"),
			),
			{Address: "10.0.0.2", Status: scanning.StateDown, Ports: []scanning.Port{tcp(443, "https")}},
			upHost("10.0.0.3"),
		},
	}

	rows := ExtractServiceRows(res)

	require.Len(t, rows, 2, "down hosts are never visited")
	assert.NotContains(t, rows, "10.0.0.2")

	require.Len(t, rows["10.0.0.1"], 2)
	assert.Equal(t, ServiceRow{
		File:     "a.xml",
		Address:  "10.0.0.1",
		Port:     22,
		Protocol: "tcp",
		Service:  "ssh",
		State:    "open",
		Banner:   "product: OpenSSH",
		Reason:   "syn-ack",
	}, rows["10.0.0.1"][0])
	assert.Equal(t, uint16(80), rows["10.0.0.1"][1].Port, "port order is kept")

	services, ok := rows["10.0.0.3"]
	assert.True(t, ok, "reachable host without ports is present")
	assert.Empty(t, services)
}

func TestExtractHostOSRows(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(logging.Config{Level: logging.LevelDebug}, &buf)

	res := &scanning.Result{
		File: "a.xml",
		Hosts: []scanning.Host{
			withOS(upHost("10.0.0.1"),
				scanning.OSMatch{Name: "Linux 4.x", Accuracy: 95},
				scanning.OSMatch{Name: "Linux 3.x", Accuracy: 99},
			),
			upHost("10.0.0.2"),
			withOS(upHost("10.0.0.3")),
			withOS(scanning.Host{Address: "10.0.0.4", Status: scanning.StateDown},
				scanning.OSMatch{Name: "Windows", Accuracy: 90},
			),
		},
	}

	rows := ExtractHostOSRows(res, logger)

	require.Len(t, rows, 1)
	assert.Equal(t, HostOSRow{File: "a.xml", Address: "10.0.0.1", OS: "Linux 4.x", Accuracy: 95}, rows["10.0.0.1"],
		"the first match wins even if a later one scores higher")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "host=10.0.0.2")
	assert.Contains(t, out, skipNoFingerprint)
	assert.Contains(t, out, "host=10.0.0.3")
	assert.Contains(t, out, skipNoMatches)
	assert.Contains(t, out, "host=10.0.0.4")
}

func TestExtractHostOSRowsNilLogger(t *testing.T) {
	res := &scanning.Result{File: "a.xml", Hosts: []scanning.Host{upHost("10.0.0.2")}}
	assert.Empty(t, ExtractHostOSRows(res, nil))
}

func TestOSHostsIndexMerge(t *testing.T) {
	logger := logging.NewDiscard()
	linux := scanning.OSMatch{Name: "Linux 4.x", Accuracy: 95}

	first := &scanning.Result{
		File: "a.xml",
		Hosts: []scanning.Host{
			withOS(upHost("10.0.0.10"), linux),
			withOS(upHost("10.0.0.2"), linux),
			upHost("10.0.0.3"),
		},
	}
	second := &scanning.Result{
		File: "b.xml",
		Hosts: []scanning.Host{
			withOS(upHost("10.0.0.2"), linux),
			withOS(upHost("10.0.0.5"), scanning.OSMatch{Name: "FreeBSD 13", Accuracy: 88}),
		},
	}

	idx := ExtractOSHostsRows(first, logger)
	require.Len(t, idx, 1)
	assert.Equal(t, 2, idx["Linux 4.x"].Count())

	idx.Merge(second, logger)
	require.Len(t, idx, 2)

	row := idx["Linux 4.x"]
	assert.Equal(t, 2, row.Count(), "an address seen in two files counts once")
	assert.Equal(t, []string{"a.xml", "b.xml"}, sortedKeys(row.Files))
	assert.Equal(t, []string{"10.0.0.10", "10.0.0.2"}, sortedKeys(row.Addresses))

	bsd := idx["FreeBSD 13"]
	assert.Equal(t, []string{"b.xml"}, sortedKeys(bsd.Files))
	assert.Equal(t, 1, bsd.Count())
}

func TestOSSkipReason(t *testing.T) {
	tests := []struct {
		name string
		host scanning.Host
		want string
	}{
		{"down", scanning.Host{Status: scanning.StateDown}, skipHostDown},
		{"not fingerprinted", upHost("10.0.0.1"), skipNoFingerprint},
		{"no matches", withOS(upHost("10.0.0.1")), skipNoMatches},
		{"eligible", withOS(upHost("10.0.0.1"), scanning.OSMatch{Name: "Linux"}), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, osSkipReason(&tt.host))
		})
	}
}
