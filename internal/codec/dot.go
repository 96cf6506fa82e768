package codec

import (
	"bufio"
	"fmt"
	"io"
	"regexp"

	"netgrapher/internal/domain"
)

// DOTCodec writes the graph in graphviz dot syntax so the savefile can be
// fed straight to the graphviz layout programs. Decode understands the
// subset Encode emits, which is all a round-trip needs.
type DOTCodec struct{}

// NewDOTCodec creates a new DOT codec
func NewDOTCodec() *DOTCodec {
	return &DOTCodec{}
}

// Format returns the codec format identifier
func (c *DOTCodec) Format() string {
	return "dot"
}

// Encode writes the graph as an undirected dot graph
func (c *DOTCodec) Encode(g *domain.Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "graph netgrapher {")
	for _, n := range g.Nodes {
		if n.MAC != "" {
			fmt.Fprintf(bw, "\t%q [mac=%q];\n", n.IP, n.MAC)
		} else {
			fmt.Fprintf(bw, "\t%q;\n", n.IP)
		}
	}
	for _, e := range g.Edges {
		fmt.Fprintf(bw, "\t%q -- %q [kind=%q];\n", e.A, e.B, e.Kind)
	}
	fmt.Fprintln(bw, "}")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write DOT: %w", err)
	}
	return nil
}

var (
	dotEdgeLine = regexp.MustCompile(`^\s*"([^"]+)"\s+--\s+"([^"]+)"(?:\s+\[kind="([^"]+)"\])?;\s*$`)
	dotNodeLine = regexp.MustCompile(`^\s*"([^"]+)"(?:\s+\[mac="([^"]+)"\])?;\s*$`)
)

// Decode reads a graph previously written by Encode
func (c *DOTCodec) Decode(r io.Reader) (*domain.Graph, error) {
	g := domain.NewGraph()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		// edges first: an edge line would also satisfy the node pattern
		// up to its first quoted name
		if m := dotEdgeLine.FindStringSubmatch(line); m != nil {
			kind := domain.EdgeKind(m[3])
			if m[3] == "" {
				kind = domain.EdgeKindDirectNeighbor
			}
			g.Edges = append(g.Edges, domain.NewEdge(m[1], m[2], kind))
			continue
		}
		if m := dotNodeLine.FindStringSubmatch(line); m != nil {
			g.Nodes = append(g.Nodes, domain.Node{IP: m[1], MAC: m[2]})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse DOT: %w", err)
	}

	return g, nil
}
