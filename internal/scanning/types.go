package scanning

// Host states as reported by nmap.
const (
	StateUp   = "up"
	StateDown = "down"
)

// Result holds every host parsed from one scan file.
type Result struct {
	// File is the input path as supplied by the caller
	File string
	// Hosts in document order
	Hosts []Host
}

// Host represents a scanned host and its findings.
type Host struct {
	// Address is the IPv4 address when present, otherwise IPv6 or MAC
	Address string
	// Status indicates whether the host is "up" or "down"
	Status string
	// Ports contains every port nmap reported for the host
	Ports []Port
	// OSFingerprinted is set when the host carries any OS detection data
	OSFingerprinted bool
	// OSMatches are the OS candidates, highest accuracy first
	OSMatches []OSMatch
}

// IsUp reports whether the host was reachable.
func (h Host) IsUp() bool {
	return h.Status == StateUp
}

// TopOSMatch returns the highest ranked OS candidate. The second return
// value is false when the host has no usable fingerprint.
func (h Host) TopOSMatch() (OSMatch, bool) {
	if !h.OSFingerprinted || len(h.OSMatches) == 0 {
		return OSMatch{}, false
	}
	return h.OSMatches[0], true
}

// Port represents the scan results for a single port.
type Port struct {
	// Number is the port number (1-65535)
	Number uint16
	// Protocol is the transport protocol ("tcp", "udp", "sctp")
	Protocol string
	// State is "open", "closed", "filtered", ...
	State string
	// Reason is nmap's reason for the state, e.g. "syn-ack"
	Reason string
	// Service is the detected service name, if any
	Service string
	// Banner summarizes the version scan fingerprint
	Banner string
}

// OSMatch is one OS detection candidate.
type OSMatch struct {
	Name     string
	Accuracy int
}

// HostStats contains summary statistics about a scan file.
type HostStats struct {
	// Up is the number of hosts that were up
	Up int
	// Down is the number of hosts that were down
	Down int
	// Total is the total number of hosts in the file
	Total int
}

// Stats counts up and down hosts in the result.
func (r *Result) Stats() HostStats {
	stats := HostStats{Total: len(r.Hosts)}
	for i := range r.Hosts {
		if r.Hosts[i].IsUp() {
			stats.Up++
		} else {
			stats.Down++
		}
	}
	return stats
}
