// Package engine merges extractor output into the persisted topology
// graph, applying the edge semantics of each dump type.
package engine

import (
	"netgrapher/internal/domain"
	"netgrapher/internal/extractor"
)

// Grow merges an extraction result into the graph.
//
//   - arp: the centre and every discovered host become nodes, with a
//     direct-neighbor edge from the centre to each host.
//   - traceroute: every hop becomes a node, with a path-hop edge between
//     each consecutive pair; the centre is hop 0.
//   - route: discovered hosts become nodes, with no edges at all.
//
// Growing the same result twice changes nothing: nodes dedup by the
// identity rule and edges by endpoint pair and kind. An unknown dump type
// fails before any mutation.
func Grow(g *domain.Graph, res *extractor.Result, dumpType domain.DumpType) error {
	switch dumpType {
	case domain.DumpTypeARP:
		centre := g.AddNode(res.Centre)
		for _, n := range res.Discovered {
			stored := g.AddNode(n)
			g.AddEdge(centre.IP, stored.IP, domain.EdgeKindDirectNeighbor)
		}

	case domain.DumpTypeTraceroute:
		prev := g.AddNode(res.Centre)
		for _, hop := range res.Discovered {
			cur := g.AddNode(hop)
			g.AddEdge(prev.IP, cur.IP, domain.EdgeKindPathHop)
			prev = cur
		}

	case domain.DumpTypeRoute:
		g.AddNode(res.Centre)
		for _, n := range res.Discovered {
			g.AddNode(n)
		}

	default:
		return &domain.UnsupportedFormatError{
			Descriptor: domain.Descriptor{Type: dumpType, OS: domain.DumpOSUnknown},
		}
	}

	return nil
}
