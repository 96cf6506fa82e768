package domain

import (
	"crypto/sha256"
	"fmt"
)

// EdgeKind represents what an edge asserts about two hosts
type EdgeKind string

const (
	// EdgeKindDirectNeighbor asserts link-layer adjacency, from an ARP table
	EdgeKindDirectNeighbor EdgeKind = "direct-neighbor"
	// EdgeKindPathHop asserts consecutive-hop adjacency along a traced path
	EdgeKindPathHop EdgeKind = "path-hop"
	// EdgeKindNonAdjacentRoute is a reachability fact from a routing table.
	// The growth engine never materialises edges of this kind; the constant
	// exists so codecs can round-trip graphs that were built elsewhere.
	EdgeKindNonAdjacentRoute EdgeKind = "non-adjacent-route"
)

// Edge represents an undirected relationship between two hosts, keyed by
// their IPs. Endpoints are normalised so A <= B regardless of the order
// they were discovered in.
type Edge struct {
	ID   string   `json:"id"`
	A    string   `json:"a"`
	B    string   `json:"b"`
	Kind EdgeKind `json:"kind"`
}

// NewEdge creates an edge between two host IPs with normalised endpoints
func NewEdge(a, b string, kind EdgeKind) Edge {
	if a > b {
		a, b = b, a
	}
	e := Edge{A: a, B: b, Kind: kind}
	e.ID = e.GenerateID()
	return e
}

// GenerateID creates a deterministic ID from the normalised endpoints
func (e Edge) GenerateID() string {
	key := fmt.Sprintf("%s-%s-%s", e.A, e.B, e.Kind)
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", hash[:8])
}

// Same reports whether two edges connect the same endpoints with the
// same kind
func (e Edge) Same(other Edge) bool {
	return e.A == other.A && e.B == other.B && e.Kind == other.Kind
}
