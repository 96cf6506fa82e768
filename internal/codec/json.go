package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"netgrapher/internal/domain"
)

// JSONCodec handles JSON encode/decode
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Encode writes the graph as an indented JSON document
func (c *JSONCodec) Encode(g *domain.Graph, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(g); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// Decode reads a graph from JSON
func (c *JSONCodec) Decode(r io.Reader) (*domain.Graph, error) {
	g := domain.NewGraph()
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(g); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if g.Nodes == nil {
		g.Nodes = make([]domain.Node, 0)
	}
	if g.Edges == nil {
		g.Edges = make([]domain.Edge, 0)
	}
	for i, e := range g.Edges {
		if e.ID == "" {
			g.Edges[i].ID = e.GenerateID()
		}
	}

	return g, nil
}
