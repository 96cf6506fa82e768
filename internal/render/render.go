// Package render draws the persisted graph to an image by shelling out
// to the graphviz layout programs. Rendering is a freebie on top of the
// saved graph: a failure here never invalidates the savefile.
package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"netgrapher/internal/codec"
	"netgrapher/internal/domain"
)

// DefaultLayout is the graphviz program used when none is configured
const DefaultLayout = "circo"

// Render writes the graph as DOT to a temp file and runs a graphviz
// layout program over it to produce a PNG at outPath
func Render(ctx context.Context, g *domain.Graph, outPath, layout string) error {
	if layout == "" {
		layout = DefaultLayout
	}
	if _, err := exec.LookPath(layout); err != nil {
		return fmt.Errorf("graphviz program %q not found: %w", layout, err)
	}

	tmp, err := os.CreateTemp("", "netgrapher-*.dot")
	if err != nil {
		return fmt.Errorf("create temp dot file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := codec.NewDOTCodec().Encode(g, tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write dot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write dot file: %w", err)
	}

	cmd := exec.CommandContext(ctx, layout, "-Tpng", "-o", outPath, tmpName)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", filepath.Base(layout), err, out)
	}
	return nil
}
