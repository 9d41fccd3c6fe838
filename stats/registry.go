// Package stats maintains per-protocol packet counters and periodically
// persists them to a JSON snapshot and an optional database table.
package stats

import "sync/atomic"

// Tag identifies one of the fixed set of countable protocols.
type Tag int

const (
	TagEthernet Tag = iota
	TagIPv4
	TagIPv6
	TagTCP
	TagUDP
	TagICMP
	TagARP
	TagDNS
	TagHTTP
	TagHTTPS
	TagDHCP

	numTags
)

var tagNames = [numTags]string{
	TagEthernet: "ethernet",
	TagIPv4:     "ipv4",
	TagIPv6:     "ipv6",
	TagTCP:      "tcp",
	TagUDP:      "udp",
	TagICMP:     "icmp",
	TagARP:      "arp",
	TagDNS:      "dns",
	TagHTTP:     "http",
	TagHTTPS:    "https",
	TagDHCP:     "dhcp",
}

// String returns the lower-case protocol name used by JSON snapshots and
// database column names.
func (t Tag) String() string {
	if t < 0 || int(t) >= int(numTags) {
		return "unknown"
	}
	return tagNames[t]
}

// Registry holds one atomic counter per protocol tag plus a running total.
// Every Increment also advances Total, so Total always equals the sum of
// every per-tag Increment call. Each decoded layer bumps its own tag, so
// Total grows by more than one per frame (an ARP frame adds 2: Ethernet
// and ARP) and exceeds the Ethernet count.
type Registry struct {
	counters [numTags]atomic.Uint64
	total    atomic.Uint64
}

// NewRegistry returns a zeroed registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Increment atomically bumps the counter for tag and the running total.
func (r *Registry) Increment(tag Tag) {
	if tag < 0 || int(tag) >= int(numTags) {
		return
	}
	r.counters[tag].Add(1)
	r.total.Add(1)
}

// Snapshot is an unsynchronized point-in-time read of every counter. Torn
// reads relative to concurrent Increment calls are acceptable; the snapshot
// is advisory, used only for periodic persistence.
type Snapshot struct {
	Total    uint64 `json:"total_packets"`
	Ethernet uint64 `json:"ethernet"`
	IPv4     uint64 `json:"ipv4"`
	IPv6     uint64 `json:"ipv6"`
	TCP      uint64 `json:"tcp"`
	UDP      uint64 `json:"udp"`
	ICMP     uint64 `json:"icmp"`
	ARP      uint64 `json:"arp"`
	DNS      uint64 `json:"dns"`
	HTTP     uint64 `json:"http"`
	HTTPS    uint64 `json:"https"`
	DHCP     uint64 `json:"dhcp"`
}

// Snapshot reads every counter. Field order matches the JSON key order and
// database column order required by the persisted-state contract.
func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		Total:    r.total.Load(),
		Ethernet: r.counters[TagEthernet].Load(),
		IPv4:     r.counters[TagIPv4].Load(),
		IPv6:     r.counters[TagIPv6].Load(),
		TCP:      r.counters[TagTCP].Load(),
		UDP:      r.counters[TagUDP].Load(),
		ICMP:     r.counters[TagICMP].Load(),
		ARP:      r.counters[TagARP].Load(),
		DNS:      r.counters[TagDNS].Load(),
		HTTP:     r.counters[TagHTTP].Load(),
		HTTPS:    r.counters[TagHTTPS].Load(),
		DHCP:     r.counters[TagDHCP].Load(),
	}
}

// Seed sets every counter from a previously persisted snapshot. Used once
// at startup before any capture begins.
func (r *Registry) Seed(s Snapshot) {
	r.total.Store(s.Total)
	r.counters[TagEthernet].Store(s.Ethernet)
	r.counters[TagIPv4].Store(s.IPv4)
	r.counters[TagIPv6].Store(s.IPv6)
	r.counters[TagTCP].Store(s.TCP)
	r.counters[TagUDP].Store(s.UDP)
	r.counters[TagICMP].Store(s.ICMP)
	r.counters[TagARP].Store(s.ARP)
	r.counters[TagDNS].Store(s.DNS)
	r.counters[TagHTTP].Store(s.HTTP)
	r.counters[TagHTTPS].Store(s.HTTPS)
	r.counters[TagDHCP].Store(s.DHCP)
}
