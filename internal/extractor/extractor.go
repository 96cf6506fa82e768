// Package extractor parses raw dump text into a centre node plus the
// hosts discovered around it, one implementation per (dump type,
// operating system) pair.
package extractor

import (
	"fmt"
	"io"

	"netgrapher/internal/domain"
)

// Result is what an extractor yields from a single dump: the host the
// dump was captured on and the hosts it revealed. For traceroutes the
// discovered slice is ordered by hop distance from the centre.
type Result struct {
	Centre     domain.Node
	Discovered []domain.Node
}

// Extractor parses one dump format. Extract receives the full dump text
// and the operator-supplied centre IP hint, which may be empty; each
// implementation decides whether the hint is required, optional, or
// cross-checked against what the dump itself reports.
type Extractor interface {
	// Descriptor returns the (type, OS) pair this extractor supports
	Descriptor() domain.Descriptor

	// Extract parses the dump. It either returns a complete result or an
	// error; there are no partial results.
	Extract(r io.Reader, centreIP string) (*Result, error)
}

// Registry maps dump descriptors to extractor implementations. An
// unsupported combination is a lookup miss, not a fallthrough chain.
type Registry struct {
	extractors map[domain.Descriptor]Extractor
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[domain.Descriptor]Extractor),
	}
}

// Register adds an extractor to the registry
func (r *Registry) Register(e Extractor) error {
	d := e.Descriptor()
	if _, exists := r.extractors[d]; exists {
		return fmt.Errorf("extractor for %s already registered", d)
	}
	r.extractors[d] = e
	return nil
}

// Lookup returns the extractor for a descriptor, or an
// UnsupportedFormatError when none is registered
func (r *Registry) Lookup(d domain.Descriptor) (Extractor, error) {
	e, ok := r.extractors[d]
	if !ok {
		return nil, &domain.UnsupportedFormatError{Descriptor: d}
	}
	return e, nil
}

// DefaultRegistry returns a registry with every built-in extractor
// registered
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, e := range []Extractor{
		&WindowsARP{},
		&LinuxARP{},
		&OpenBSDARP{},
		&LinuxTraceroute{},
		&WindowsTraceroute{},
		&LinuxRoute{},
		&WindowsRoute{},
	} {
		// descriptors of the built-ins are distinct by construction
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
	return r
}
