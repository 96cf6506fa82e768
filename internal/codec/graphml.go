package codec

import (
	"encoding/xml"
	"fmt"
	"io"

	"netgrapher/internal/domain"
)

// GraphMLCodec handles GraphML encode/decode
type GraphMLCodec struct{}

// NewGraphMLCodec creates a new GraphML codec
func NewGraphMLCodec() *GraphMLCodec {
	return &GraphMLCodec{}
}

// Format returns the codec format identifier
func (c *GraphMLCodec) Format() string {
	return "graphml"
}

const graphmlNS = "http://graphml.graphdrawing.org/xmlns"

type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	XMLNS   string       `xml:"xmlns,attr"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	ID          string        `xml:"id,attr"`
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	ID     string        `xml:"id,attr"`
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// Encode writes the graph as GraphML
func (c *GraphMLCodec) Encode(g *domain.Graph, w io.Writer) error {
	doc := graphmlDoc{
		XMLNS: graphmlNS,
		Keys: []graphmlKey{
			{ID: "mac", For: "node", AttrName: "mac", AttrType: "string"},
			{ID: "kind", For: "edge", AttrName: "kind", AttrType: "string"},
		},
		Graph: graphmlGraph{
			ID:          "netgrapher",
			EdgeDefault: "undirected",
		},
	}

	for _, n := range g.Nodes {
		gn := graphmlNode{ID: n.IP}
		if n.MAC != "" {
			gn.Data = append(gn.Data, graphmlData{Key: "mac", Value: n.MAC})
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, gn)
	}
	for _, e := range g.Edges {
		doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{
			ID:     e.ID,
			Source: e.A,
			Target: e.B,
			Data:   []graphmlData{{Key: "kind", Value: string(e.Kind)}},
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write GraphML: %w", err)
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode GraphML: %w", err)
	}
	return nil
}

// Decode reads a graph from GraphML
func (c *GraphMLCodec) Decode(r io.Reader) (*domain.Graph, error) {
	var doc graphmlDoc
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse GraphML: %w", err)
	}

	g := domain.NewGraph()
	for _, gn := range doc.Graph.Nodes {
		n := domain.Node{IP: gn.ID}
		for _, d := range gn.Data {
			if d.Key == "mac" {
				n.MAC = d.Value
			}
		}
		g.Nodes = append(g.Nodes, n)
	}
	for _, ge := range doc.Graph.Edges {
		kind := domain.EdgeKindDirectNeighbor
		for _, d := range ge.Data {
			if d.Key == "kind" {
				kind = domain.EdgeKind(d.Value)
			}
		}
		e := domain.Edge{ID: ge.ID, A: ge.Source, B: ge.Target, Kind: kind}
		if e.ID == "" {
			e.ID = e.GenerateID()
		}
		g.Edges = append(g.Edges, e)
	}

	return g, nil
}
