package report

import (
	"sort"
	"strings"

	"github.com/anstrom/scansheet/internal/logging"
	"github.com/anstrom/scansheet/internal/scanning"
)

// Worksheet names, in the order they appear in the workbook.
const (
	SheetHostServices = "Host vs Services"
	SheetHostOS       = "Host vs OSs"
	SheetOSHosts      = "OS vs Hosts"
)

// listSeparator joins file names and addresses in the OS vs Hosts sheet.
const listSeparator = ";"

// Table is one worksheet worth of rows.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]any
}

var (
	hostServicesHeaders = []string{"File", "Host IP", "Port", "Protocol", "Service", "State", "Banner", "Reason"}
	hostOSHeaders       = []string{"File", "Host IP", "Operating System", "Accuracy"}
	osHostsHeaders      = []string{"File", "Operating System", "Host IP Count", "Host IP"}
)

// BuildHostServices lists every port of every reachable host. Files keep the
// order they were supplied in; within a file hosts are sorted by address text
// and ports keep their scan order. The same host in two files appears twice.
func BuildHostServices(results []*scanning.Result) Table {
	table := Table{Name: SheetHostServices, Headers: hostServicesHeaders, Rows: [][]any{}}

	for _, res := range results {
		byHost := ExtractServiceRows(res)
		for _, addr := range sortedAddresses(byHost) {
			for _, r := range byHost[addr] {
				table.Rows = append(table.Rows, []any{
					r.File, addr, r.Port, r.Protocol, r.Service, r.State, r.Banner, r.Reason,
				})
			}
		}
	}
	return table
}

// BuildHostOS lists the best OS match of each fingerprinted host, one row per
// file and host, hosts sorted by address text within a file.
func BuildHostOS(results []*scanning.Result, logger *logging.Logger) Table {
	table := Table{Name: SheetHostOS, Headers: hostOSHeaders, Rows: [][]any{}}

	for _, res := range results {
		byHost := ExtractHostOSRows(res, logger)
		for _, addr := range sortedAddresses(byHost) {
			r := byHost[addr]
			table.Rows = append(table.Rows, []any{r.File, addr, r.OS, r.Accuracy})
		}
	}
	return table
}

// BuildOSHosts groups hosts by their best OS match across all files. Rows are
// sorted by OS name; file names are joined in lexical order and addresses in
// numeric octet order.
func BuildOSHosts(results []*scanning.Result, logger *logging.Logger) Table {
	table := Table{Name: SheetOSHosts, Headers: osHostsHeaders, Rows: [][]any{}}

	idx := make(OSHostsIndex)
	for _, res := range results {
		idx.Merge(res, logger)
	}

	names := make([]string, 0, len(idx))
	for name := range idx {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		row := idx[name]
		addrs := sortedKeys(row.Addresses)
		sortAddressesNumeric(addrs)
		table.Rows = append(table.Rows, []any{
			strings.Join(sortedKeys(row.Files), listSeparator),
			name,
			row.Count(),
			strings.Join(addrs, listSeparator),
		})
	}
	return table
}

func sortedAddresses[V any](m map[string]V) []string {
	addrs := make([]string, 0, len(m))
	for addr := range m {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	return addrs
}
