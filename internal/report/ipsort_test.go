package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDottedQuad(t *testing.T) {
	tests := []struct {
		addr string
		want [4]int
		ok   bool
	}{
		{"10.0.0.2", [4]int{10, 0, 0, 2}, true},
		{"192.168.100.250", [4]int{192, 168, 100, 250}, true},
		{"10.0.0", [4]int{}, false},
		{"fe80::1", [4]int{}, false},
		{"10.0.x.1", [4]int{}, false},
		{"", [4]int{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			got, ok := parseDottedQuad(tt.addr)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSortAddressesNumeric(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "last octet compared as a number",
			in:   []string{"10.0.0.10", "10.0.0.2", "10.0.0.1"},
			want: []string{"10.0.0.1", "10.0.0.2", "10.0.0.10"},
		},
		{
			name: "earlier octets take precedence",
			in:   []string{"10.0.1.1", "9.255.255.255", "10.0.0.200"},
			want: []string{"9.255.255.255", "10.0.0.200", "10.0.1.1"},
		},
		{
			name: "non ipv4 addresses go last",
			in:   []string{"fe80::2", "10.0.0.5", "fe80::1", "host.example"},
			want: []string{"10.0.0.5", "fe80::1", "fe80::2", "host.example"},
		},
		{
			name: "empty",
			in:   []string{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := append([]string{}, tt.in...)
			sortAddressesNumeric(got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortedKeys(t *testing.T) {
	set := map[string]struct{}{"b.xml": {}, "a.xml": {}, "c.xml": {}}
	assert.Equal(t, []string{"a.xml", "b.xml", "c.xml"}, sortedKeys(set))
	assert.Empty(t, sortedKeys(nil))
}
