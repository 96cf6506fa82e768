package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"netgrapher/internal/codec"
	"netgrapher/internal/domain"
)

// FileStore persists the graph as a single file in a codec-chosen format.
// Save first copies any existing file to <path>.bak, then writes to a
// temp file in the same directory and renames it over the target, so a
// crash mid-write never loses the prior good copy.
type FileStore struct {
	path  string
	codec codec.Codec
	log   zerolog.Logger
}

// NewFileStore creates a file store for the given savefile path
func NewFileStore(path string, c codec.Codec, log zerolog.Logger) *FileStore {
	return &FileStore{path: path, codec: c, log: log}
}

// Path returns the savefile path
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the persisted graph. A missing savefile yields a fresh empty
// graph; unparsable content is a PersistenceError.
func (s *FileStore) Load(_ context.Context) (*domain.Graph, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		s.log.Info().Str("savefile", s.path).Msg("savefile not found, initialising new graph")
		return domain.NewGraph(), nil
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	defer f.Close()

	g, err := s.codec.Decode(f)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	return g, nil
}

// Save persists the graph, backing up any previous savefile first
func (s *FileStore) Save(_ context.Context, g *domain.Graph) error {
	if _, err := os.Stat(s.path); err == nil {
		bak := s.path + ".bak"
		if err := copyFile(s.path, bak); err != nil {
			return &domain.PersistenceError{Op: "backup", Path: s.path, Err: err}
		}
		s.log.Info().Str("backup", bak).Msg("savefile backup written")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".netgrapher-*")
	if err != nil {
		return &domain.PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	tmpName := tmp.Name()

	if err := s.codec.Encode(g, tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &domain.PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &domain.PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &domain.PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	s.log.Info().Str("savefile", s.path).Str("format", s.codec.Format()).Msg("graph saved")
	return nil
}

// Close is a no-op for file stores
func (s *FileStore) Close() error {
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}
