package domain

import "strings"

// Node represents a single host observed in a dump. A node always carries
// an IP; the hardware address is present only when the dump reported it
// directly (ARP tables do, traceroutes and routing tables do not).
//
// Nodes are value types and are never mutated after creation; the graph
// replaces a stored node when a later observation adds information.
type Node struct {
	IP  string `json:"ip" yaml:"ip"`
	MAC string `json:"mac,omitempty" yaml:"mac,omitempty"`
}

// NewNode creates a node known only by IP
func NewNode(ip string) Node {
	return Node{IP: ip}
}

// NewNodeWithMAC creates a node with a directly observed hardware address
func NewNodeWithMAC(ip, mac string) Node {
	return Node{IP: ip, MAC: mac}
}

// Equal reports whether two nodes identify the same host. Nodes are equal
// iff their IPs match and, when both carry a hardware address, the
// addresses also match. The comparison is symmetric: Equal(a,b) always
// agrees with Equal(b,a).
func (n Node) Equal(other Node) bool {
	if n.IP != other.IP {
		return false
	}
	if n.MAC != "" && other.MAC != "" {
		return strings.EqualFold(n.MAC, other.MAC)
	}
	return true
}

func (n Node) String() string {
	if n.MAC == "" {
		return n.IP
	}
	return n.IP + " [" + n.MAC + "]"
}
