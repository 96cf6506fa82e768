package codec

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"netgrapher/internal/domain"
)

// YAMLCodec handles YAML encode/decode
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlGraph represents the YAML structure for graph data
type yamlGraph struct {
	Nodes []yamlNode `yaml:"nodes"`
	Edges []yamlEdge `yaml:"edges"`
}

type yamlNode struct {
	IP  string `yaml:"ip"`
	MAC string `yaml:"mac,omitempty"`
}

type yamlEdge struct {
	ID   string `yaml:"id,omitempty"`
	A    string `yaml:"a"`
	B    string `yaml:"b"`
	Kind string `yaml:"kind"`
}

// Encode writes the graph as YAML
func (c *YAMLCodec) Encode(g *domain.Graph, w io.Writer) error {
	yg := yamlGraph{
		Nodes: make([]yamlNode, 0, len(g.Nodes)),
		Edges: make([]yamlEdge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		yg.Nodes = append(yg.Nodes, yamlNode{IP: n.IP, MAC: n.MAC})
	}
	for _, e := range g.Edges {
		yg.Edges = append(yg.Edges, yamlEdge{ID: e.ID, A: e.A, B: e.B, Kind: string(e.Kind)})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yg); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// Decode reads a graph from YAML
func (c *YAMLCodec) Decode(r io.Reader) (*domain.Graph, error) {
	var yg yamlGraph
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&yg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	g := domain.NewGraph()
	for _, yn := range yg.Nodes {
		g.Nodes = append(g.Nodes, domain.Node{IP: yn.IP, MAC: yn.MAC})
	}
	for _, ye := range yg.Edges {
		e := domain.Edge{ID: ye.ID, A: ye.A, B: ye.B, Kind: domain.EdgeKind(ye.Kind)}
		if e.ID == "" {
			e.ID = e.GenerateID()
		}
		g.Edges = append(g.Edges, e)
	}

	return g, nil
}
