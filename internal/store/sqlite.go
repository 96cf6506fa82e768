package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"netgrapher/internal/domain"
)

// SQLiteStore persists the graph in a SQLite database. Unlike the file
// store there is no backup file: writes happen inside a transaction, so
// the previous good copy survives a crash by construction.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (creating if needed) a SQLite-backed store
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, &domain.PersistenceError{Op: "open", Path: path, Err: err}
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, &domain.PersistenceError{Op: "migrate", Path: path, Err: err}
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS nodes (
		ip  TEXT PRIMARY KEY,
		mac TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS edges (
		id   TEXT PRIMARY KEY,
		a    TEXT NOT NULL,
		b    TEXT NOT NULL,
		kind TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_edges_a ON edges(a);
	CREATE INDEX IF NOT EXISTS idx_edges_b ON edges(b);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Load reads the complete graph from the database. A freshly created
// database yields an empty graph.
func (s *SQLiteStore) Load(ctx context.Context) (*domain.Graph, error) {
	g := domain.NewGraph()

	rows, err := s.db.QueryContext(ctx, `SELECT ip, mac FROM nodes ORDER BY rowid`)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Path: s.path, Err: fmt.Errorf("query nodes: %w", err)}
	}
	defer rows.Close()

	for rows.Next() {
		var n domain.Node
		if err := rows.Scan(&n.IP, &n.MAC); err != nil {
			return nil, &domain.PersistenceError{Op: "load", Path: s.path, Err: fmt.Errorf("scan node: %w", err)}
		}
		g.Nodes = append(g.Nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "load", Path: s.path, Err: fmt.Errorf("iterate nodes: %w", err)}
	}

	edgeRows, err := s.db.QueryContext(ctx, `SELECT id, a, b, kind FROM edges ORDER BY rowid`)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Path: s.path, Err: fmt.Errorf("query edges: %w", err)}
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var e domain.Edge
		var kind string
		if err := edgeRows.Scan(&e.ID, &e.A, &e.B, &kind); err != nil {
			return nil, &domain.PersistenceError{Op: "load", Path: s.path, Err: fmt.Errorf("scan edge: %w", err)}
		}
		e.Kind = domain.EdgeKind(kind)
		g.Edges = append(g.Edges, e)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "load", Path: s.path, Err: fmt.Errorf("iterate edges: %w", err)}
	}

	return g, nil
}

// Save writes the graph inside a single transaction, replacing the
// stored state with the merged in-memory graph
func (s *SQLiteStore) Save(ctx context.Context, g *domain.Graph) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM nodes`); err != nil {
		return &domain.PersistenceError{Op: "save", Path: s.path, Err: fmt.Errorf("clear nodes: %w", err)}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM edges`); err != nil {
		return &domain.PersistenceError{Op: "save", Path: s.path, Err: fmt.Errorf("clear edges: %w", err)}
	}

	for _, n := range g.Nodes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO nodes (ip, mac) VALUES (?, ?)
			 ON CONFLICT(ip) DO UPDATE SET mac = excluded.mac`,
			n.IP, n.MAC); err != nil {
			return &domain.PersistenceError{Op: "save", Path: s.path, Err: fmt.Errorf("insert node %s: %w", n.IP, err)}
		}
	}
	for _, e := range g.Edges {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO edges (id, a, b, kind) VALUES (?, ?, ?, ?)
			 ON CONFLICT(id) DO NOTHING`,
			e.ID, e.A, e.B, string(e.Kind)); err != nil {
			return &domain.PersistenceError{Op: "save", Path: s.path, Err: fmt.Errorf("insert edge %s: %w", e.ID, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &domain.PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
