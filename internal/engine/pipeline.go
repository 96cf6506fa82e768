package engine

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"netgrapher/internal/classify"
	"netgrapher/internal/domain"
	"netgrapher/internal/extractor"
)

// Options carry the per-invocation overrides from the CLI. Empty fields
// mean "work it out from the dump".
type Options struct {
	// CentreIP is the host the dump was captured on
	CentreIP string
	// Type overrides the classifier's dump-type guess
	Type domain.DumpType
	// OS overrides the classifier's operating-system guess
	OS domain.DumpOS
}

// Pipeline wires the classifier, the extractor registry, and the growth
// engine into the classify → extract → grow sequence. All validation
// happens before any merge, so a failing invocation leaves the graph
// untouched.
type Pipeline struct {
	classifier *classify.Classifier
	registry   *extractor.Registry
	log        zerolog.Logger
}

// New creates a pipeline
func New(classifier *classify.Classifier, registry *extractor.Registry, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		registry:   registry,
		log:        log,
	}
}

// Ingest classifies and parses one dump file and merges the result into
// the graph. Dump files are small diagnostic captures, so the whole file
// is buffered in memory and read from there.
func (p *Pipeline) Ingest(g *domain.Graph, path string, opts Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read dump file: %w", err)
	}

	desc, err := p.resolve(data, path, opts)
	if err != nil {
		return err
	}
	p.log.Debug().
		Str("file", path).
		Stringer("descriptor", desc).
		Msg("dump classified")

	ext, err := p.registry.Lookup(desc)
	if err != nil {
		return err
	}

	res, err := ext.Extract(bytes.NewReader(data), opts.CentreIP)
	if err != nil {
		return err
	}
	p.log.Debug().
		Str("centre", res.Centre.String()).
		Int("discovered", len(res.Discovered)).
		Msg("dump extracted")

	nodesBefore, edgesBefore := len(g.Nodes), len(g.Edges)
	if err := Grow(g, res, desc.Type); err != nil {
		return err
	}
	p.log.Info().
		Str("file", path).
		Stringer("descriptor", desc).
		Int("new_nodes", len(g.Nodes)-nodesBefore).
		Int("new_edges", len(g.Edges)-edgesBefore).
		Msg("graph grown")

	return nil
}

// resolve picks the dump descriptor: explicit overrides take precedence,
// the classifier fills in whatever is left.
func (p *Pipeline) resolve(data []byte, path string, opts Options) (domain.Descriptor, error) {
	desc := domain.Descriptor{Type: opts.Type, OS: opts.OS}
	if desc.IsKnown() {
		return desc, nil
	}

	guessed, err := p.classifier.Classify(bytes.NewReader(data))
	if err != nil {
		return domain.UnknownDescriptor, err
	}
	if desc.Type == "" || desc.Type == domain.DumpTypeUnknown {
		desc.Type = guessed.Type
	}
	if desc.OS == "" || desc.OS == domain.DumpOSUnknown {
		desc.OS = guessed.OS
	}

	if !desc.IsKnown() {
		return domain.UnknownDescriptor, &domain.ClassificationError{File: path}
	}
	return desc, nil
}
