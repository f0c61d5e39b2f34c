package scanning

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/Ullaakut/nmap/v3"

	scanerrors "github.com/anstrom/scansheet/internal/errors"
)

// Service detection method nmap records when the service answered its
// version scan, as opposed to "table" for a port-number guess.
const methodVersionScan = "probed"

// LoadFile reads and parses an nmap XML result file.
// It returns the parsed results or a *errors.ParseError.
func LoadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path) //nolint:gosec // reading user-supplied scan files is the point
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, scanerrors.ErrFileNotFound(path, err)
		case errors.Is(err, fs.ErrPermission):
			return nil, scanerrors.WrapParseError(scanerrors.CodeFilePermission, "Scan file not readable", path, err)
		default:
			return nil, scanerrors.WrapParseError(scanerrors.CodeParse, "Failed to read scan file", path, err)
		}
	}

	return Parse(path, data)
}

// Parse decodes nmap XML content. file is recorded on the result and in errors.
func Parse(file string, data []byte) (*Result, error) {
	var run nmap.Run
	if err := nmap.Parse(data, &run); err != nil {
		return nil, scanerrors.ErrParse(file, err)
	}

	return convertNmapRun(file, &run), nil
}

// convertNmapRun converts nmap results to our internal format.
func convertNmapRun(file string, run *nmap.Run) *Result {
	result := &Result{
		File:  file,
		Hosts: make([]Host, 0, len(run.Hosts)),
	}

	for i := range run.Hosts {
		if host := convertNmapHost(&run.Hosts[i]); host != nil {
			result.Hosts = append(result.Hosts, *host)
		}
	}

	return result
}

// convertNmapHost converts a single nmap host to our format.
func convertNmapHost(h *nmap.Host) *Host {
	address := hostAddress(h.Addresses)
	if address == "" {
		return nil
	}

	host := &Host{
		Address:         address,
		Status:          h.Status.State,
		Ports:           make([]Port, 0, len(h.Ports)),
		OSFingerprinted: len(h.OS.Matches) > 0 || len(h.OS.Fingerprints) > 0 || len(h.OS.PortsUsed) > 0,
		OSMatches:       make([]OSMatch, 0, len(h.OS.Matches)),
	}

	for j := range h.Ports {
		p := &h.Ports[j]
		host.Ports = append(host.Ports, Port{
			Number:   p.ID,
			Protocol: p.Protocol,
			State:    p.State.State,
			Reason:   p.State.Reason,
			Service:  p.Service.Name,
			Banner:   serviceBanner(&p.Service),
		})
	}

	// nmap already lists matches by descending accuracy
	for _, m := range h.OS.Matches {
		host.OSMatches = append(host.OSMatches, OSMatch{
			Name:     m.Name,
			Accuracy: m.Accuracy,
		})
	}

	return host
}

// hostAddress picks the IPv4 address, then IPv6, then whatever comes first.
func hostAddress(addrs []nmap.Address) string {
	for _, kind := range []string{"ipv4", "ipv6"} {
		for _, a := range addrs {
			if a.AddrType == kind && a.Addr != "" {
				return a.Addr
			}
		}
	}
	for _, a := range addrs {
		if a.Addr != "" {
			return a.Addr
		}
	}
	return ""
}

// serviceBanner renders the version scan fingerprint as "key: value" pairs.
// Services identified from the port table alone have no banner.
func serviceBanner(s *nmap.Service) string {
	if s.Method != methodVersionScan {
		return ""
	}

	fields := []struct {
		key   string
		value string
	}{
		{"product", s.Product},
		{"version", s.Version},
		{"extrainfo", s.ExtraInfo},
		{"ostype", s.OSType},
		{"hostname", s.Hostname},
		{"devicetype", s.DeviceType},
	}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.value != "" {
			parts = append(parts, f.key+": "+f.value)
		}
	}
	return strings.Join(parts, " ")
}
