package codec

import (
	"bytes"
	"strings"
	"testing"

	"netgrapher/internal/domain"
)

func testGraphs() map[string]*domain.Graph {
	single := domain.NewGraph()
	single.AddNode(domain.NewNodeWithMAC("10.137.2.1", "fe-ff-ff-ff-ff-ff"))

	mixed := domain.NewGraph()
	mixed.AddNode(domain.NewNode("10.0.0.1"))
	mixed.AddNode(domain.NewNodeWithMAC("10.137.2.1", "fe-ff-ff-ff-ff-ff"))
	mixed.AddNode(domain.NewNode("10.137.4.1"))
	mixed.AddEdge("10.0.0.1", "10.137.2.1", domain.EdgeKindDirectNeighbor)
	mixed.AddEdge("10.0.0.1", "10.137.4.1", domain.EdgeKindPathHop)

	return map[string]*domain.Graph{
		"empty graph":      domain.NewGraph(),
		"single node":      single,
		"mixed edge kinds": mixed,
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range Formats() {
		c, err := ForFormat(format)
		if err != nil {
			t.Fatalf("ForFormat(%s): %v", format, err)
		}

		for name, g := range testGraphs() {
			t.Run(format+"/"+name, func(t *testing.T) {
				var buf bytes.Buffer
				if err := c.Encode(g, &buf); err != nil {
					t.Fatalf("Encode: %v", err)
				}

				got, err := c.Decode(&buf)
				if err != nil {
					t.Fatalf("Decode: %v", err)
				}
				if !got.Equal(g) {
					t.Errorf("round trip lost content:\nwant nodes=%v edges=%v\ngot  nodes=%v edges=%v",
						g.Nodes, g.Edges, got.Nodes, got.Edges)
				}
			})
		}
	}
}

func TestForFormatUnknown(t *testing.T) {
	if _, err := ForFormat("gexf"); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestJSONDecodeGarbage(t *testing.T) {
	if _, err := NewJSONCodec().Decode(strings.NewReader("not json at all")); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestDOTOutputShape(t *testing.T) {
	g := domain.NewGraph()
	g.AddNode(domain.NewNodeWithMAC("10.0.0.1", "fe-ff-ff-ff-ff-ff"))
	g.AddNode(domain.NewNode("10.0.0.2"))
	g.AddEdge("10.0.0.1", "10.0.0.2", domain.EdgeKindDirectNeighbor)

	var buf bytes.Buffer
	if err := NewDOTCodec().Encode(g, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"graph netgrapher {",
		`"10.0.0.1" [mac="fe-ff-ff-ff-ff-ff"];`,
		`"10.0.0.1" -- "10.0.0.2" [kind="direct-neighbor"];`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
}

func TestGraphMLCarriesAttributes(t *testing.T) {
	g := domain.NewGraph()
	g.AddNode(domain.NewNodeWithMAC("10.0.0.1", "fe-ff-ff-ff-ff-ff"))
	g.AddNode(domain.NewNode("10.0.0.2"))
	g.AddEdge("10.0.0.1", "10.0.0.2", domain.EdgeKindPathHop)

	var buf bytes.Buffer
	c := NewGraphMLCodec()
	if err := c.Encode(g, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := c.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Nodes[0].MAC != "fe-ff-ff-ff-ff-ff" {
		t.Errorf("node MAC lost: %v", got.Nodes[0])
	}
	if got.Edges[0].Kind != domain.EdgeKindPathHop {
		t.Errorf("edge kind lost: %v", got.Edges[0])
	}
}
