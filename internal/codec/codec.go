// Package codec serialises the topology graph to and from the supported
// on-disk formats. Every codec round-trips losslessly: decoding what it
// encoded yields the same node and edge sets.
package codec

import (
	"fmt"
	"io"

	"netgrapher/internal/domain"
)

// Codec handles one graph serialization format
type Codec interface {
	// Format returns the codec format identifier, also used as the
	// savefile extension
	Format() string

	// Encode writes the graph
	Encode(g *domain.Graph, w io.Writer) error

	// Decode reads a graph previously written by Encode
	Decode(r io.Reader) (*domain.Graph, error)
}

// Formats lists the supported format identifiers
func Formats() []string {
	return []string{"json", "yaml", "dot", "graphml"}
}

// ForFormat returns the codec for a format identifier
func ForFormat(format string) (Codec, error) {
	switch format {
	case "json":
		return NewJSONCodec(), nil
	case "yaml":
		return NewYAMLCodec(), nil
	case "dot":
		return NewDOTCodec(), nil
	case "graphml":
		return NewGraphMLCodec(), nil
	default:
		return nil, fmt.Errorf("unknown graph format %q", format)
	}
}
