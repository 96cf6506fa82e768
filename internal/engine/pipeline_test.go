package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"netgrapher/internal/classify"
	"netgrapher/internal/domain"
	"netgrapher/internal/extractor"
)

func newTestPipeline() *Pipeline {
	return New(classify.NewClassifier(), extractor.DefaultRegistry(), zerolog.Nop())
}

func writeDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write dump: %v", err)
	}
	return path
}

func TestIngestWindowsARP(t *testing.T) {
	path := writeDump(t, "Interface: 10.137.2.16 --- 0x11\n  10.137.2.1   fe-ff-ff-ff-ff-ff   dynamic\n")

	g := domain.NewGraph()
	if err := newTestPipeline().Ingest(g, path, Options{}); err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}

	if len(g.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(g.Nodes))
	}
	want := domain.NewEdge("10.137.2.16", "10.137.2.1", domain.EdgeKindDirectNeighbor)
	if !g.HasEdge(want) {
		t.Error("expected a direct-neighbor edge between centre and host")
	}
}

func TestIngestIsIdempotent(t *testing.T) {
	path := writeDump(t, "Interface: 10.137.2.16 --- 0x11\n  10.137.2.1   fe-ff-ff-ff-ff-ff   dynamic\n")
	p := newTestPipeline()

	g := domain.NewGraph()
	if err := p.Ingest(g, path, Options{}); err != nil {
		t.Fatalf("first Ingest: %v", err)
	}
	nodes, edges := len(g.Nodes), len(g.Edges)

	if err := p.Ingest(g, path, Options{}); err != nil {
		t.Fatalf("second Ingest: %v", err)
	}
	if len(g.Nodes) != nodes || len(g.Edges) != edges {
		t.Error("ingesting the same dump twice changed the graph")
	}
}

func TestIngestUnclassifiableDump(t *testing.T) {
	path := writeDump(t, "nothing recognisable\n")

	g := domain.NewGraph()
	err := newTestPipeline().Ingest(g, path, Options{})

	var cerr *domain.ClassificationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ClassificationError, got %v", err)
	}
	if cerr.File != path {
		t.Errorf("error names %q, want %q", cerr.File, path)
	}
	if len(g.Nodes) != 0 {
		t.Error("failed ingest must not mutate the graph")
	}
}

func TestIngestWithOverrides(t *testing.T) {
	// content alone would not classify; overrides decide
	path := writeDump(t, " 1  10.137.4.1  0.550 ms  0.463 ms  0.383 ms\n")

	g := domain.NewGraph()
	opts := Options{
		CentreIP: "10.0.0.1",
		Type:     domain.DumpTypeTraceroute,
		OS:       domain.DumpOSLinux,
	}
	if err := newTestPipeline().Ingest(g, path, opts); err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}

	if len(g.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(g.Nodes))
	}
	want := domain.NewEdge("10.0.0.1", "10.137.4.1", domain.EdgeKindPathHop)
	if !g.HasEdge(want) {
		t.Error("expected a path-hop edge between centre and hop 1")
	}
}

func TestIngestPartialOverride(t *testing.T) {
	// the classifier guesses (arp, windows); the type override agrees and
	// the OS comes from the guess
	path := writeDump(t, "Interface: 10.137.2.16 --- 0x11\n  10.137.2.1   fe-ff-ff-ff-ff-ff   dynamic\n")

	g := domain.NewGraph()
	if err := newTestPipeline().Ingest(g, path, Options{Type: domain.DumpTypeARP}); err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if len(g.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(g.Nodes))
	}
}

func TestIngestUnsupportedCombination(t *testing.T) {
	path := writeDump(t, "anything\n")

	g := domain.NewGraph()
	err := newTestPipeline().Ingest(g, path, Options{
		Type: domain.DumpTypeTraceroute,
		OS:   domain.DumpOSOpenBSD,
	})

	var uerr *domain.UnsupportedFormatError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
	if len(g.Nodes) != 0 {
		t.Error("failed ingest must not mutate the graph")
	}
}

func TestIngestMissingFile(t *testing.T) {
	g := domain.NewGraph()
	err := newTestPipeline().Ingest(g, filepath.Join(t.TempDir(), "absent"), Options{})
	if err == nil {
		t.Fatal("expected an error for a missing dump file")
	}
}
