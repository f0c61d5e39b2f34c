package report

import (
	"github.com/anstrom/scansheet/internal/logging"
	"github.com/anstrom/scansheet/internal/scanning"
)

// Reasons a host is left out of the OS views.
const (
	skipHostDown      = "host down"
	skipNoFingerprint = "OS fingerprinting has not been performed"
	skipNoMatches     = "OS fingerprinting produced no matches"
)

// ServiceRow is one reported port of a reachable host.
type ServiceRow struct {
	File     string
	Address  string
	Port     uint16
	Protocol string
	Service  string
	State    string
	Banner   string
	Reason   string
}

// HostOSRow is the best OS match of one host in one file.
type HostOSRow struct {
	File     string
	Address  string
	OS       string
	Accuracy int
}

// OSHostsRow aggregates every file and host whose best match is OS.
type OSHostsRow struct {
	OS        string
	Files     map[string]struct{}
	Addresses map[string]struct{}
}

// Count returns the number of distinct host addresses.
func (r *OSHostsRow) Count() int {
	return len(r.Addresses)
}

// OSHostsIndex maps an OS name to its aggregated row. One index is shared by
// every input file of a run.
type OSHostsIndex map[string]*OSHostsRow

// add inserts the row for osName on first sight and records file and address.
func (idx OSHostsIndex) add(osName, file, address string) {
	row, ok := idx[osName]
	if !ok {
		row = &OSHostsRow{
			OS:        osName,
			Files:     make(map[string]struct{}),
			Addresses: make(map[string]struct{}),
		}
		idx[osName] = row
	}
	row.Files[file] = struct{}{}
	row.Addresses[address] = struct{}{}
}

// Merge folds the eligible hosts of res into the index.
func (idx OSHostsIndex) Merge(res *scanning.Result, logger *logging.Logger) {
	eachTopOSMatch(res, logger, func(host *scanning.Host, match scanning.OSMatch) {
		idx.add(match.Name, res.File, host.Address)
	})
}

// ExtractServiceRows lists the ports of every reachable host, keyed by address.
// A reachable host without reported ports maps to an empty slice.
func ExtractServiceRows(res *scanning.Result) map[string][]ServiceRow {
	rows := make(map[string][]ServiceRow)
	for i := range res.Hosts {
		host := &res.Hosts[i]
		if !host.IsUp() {
			continue
		}

		services := make([]ServiceRow, 0, len(host.Ports))
		for _, p := range host.Ports {
			services = append(services, ServiceRow{
				File:     res.File,
				Address:  host.Address,
				Port:     p.Number,
				Protocol: p.Protocol,
				Service:  p.Service,
				State:    p.State,
				Banner:   p.Banner,
				Reason:   p.Reason,
			})
		}
		rows[host.Address] = services
	}
	return rows
}

// ExtractHostOSRows returns the top OS match of every reachable,
// fingerprinted host, keyed by address.
func ExtractHostOSRows(res *scanning.Result, logger *logging.Logger) map[string]HostOSRow {
	rows := make(map[string]HostOSRow)
	eachTopOSMatch(res, logger, func(host *scanning.Host, match scanning.OSMatch) {
		rows[host.Address] = HostOSRow{
			File:     res.File,
			Address:  host.Address,
			OS:       match.Name,
			Accuracy: match.Accuracy,
		}
	})
	return rows
}

// ExtractOSHostsRows builds a fresh index for a single file.
func ExtractOSHostsRows(res *scanning.Result, logger *logging.Logger) OSHostsIndex {
	idx := make(OSHostsIndex)
	idx.Merge(res, logger)
	return idx
}

// eachTopOSMatch calls fn for every host that is up and has at least one OS
// match. Other hosts are logged at debug level and skipped.
func eachTopOSMatch(res *scanning.Result, logger *logging.Logger, fn func(*scanning.Host, scanning.OSMatch)) {
	for i := range res.Hosts {
		host := &res.Hosts[i]
		if reason := osSkipReason(host); reason != "" {
			if logger != nil {
				logger.WithFile(res.File).Debug(reason, "host", host.Address)
			}
			continue
		}
		match, _ := host.TopOSMatch()
		fn(host, match)
	}
}

// osSkipReason explains why host has no OS row, or returns "".
func osSkipReason(host *scanning.Host) string {
	switch {
	case !host.IsUp():
		return skipHostDown
	case !host.OSFingerprinted:
		return skipNoFingerprint
	case len(host.OSMatches) == 0:
		return skipNoMatches
	default:
		return ""
	}
}
