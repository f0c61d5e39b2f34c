package report

import (
	"sort"
	"strconv"
	"strings"
)

// parseDottedQuad splits an IPv4 address into its four octets.
func parseDottedQuad(addr string) ([4]int, bool) {
	var octets [4]int
	parts := strings.Split(addr, ".")
	if len(parts) != len(octets) {
		return octets, false
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return octets, false
		}
		octets[i] = n
	}
	return octets, true
}

// lessNumeric orders dotted quads octet by octet. Anything else sorts after
// every dotted quad, lexically among its kind.
func lessNumeric(a, b string) bool {
	qa, okA := parseDottedQuad(a)
	qb, okB := parseDottedQuad(b)
	switch {
	case okA && okB:
		for i := range qa {
			if qa[i] != qb[i] {
				return qa[i] < qb[i]
			}
		}
		return a < b
	case okA != okB:
		return okA
	default:
		return a < b
	}
}

// sortAddressesNumeric sorts addrs in place, "10.0.0.2" before "10.0.0.10".
func sortAddressesNumeric(addrs []string) {
	sort.SliceStable(addrs, func(i, j int) bool {
		return lessNumeric(addrs[i], addrs[j])
	})
}

// sortedKeys returns the keys of a set in lexical order.
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
