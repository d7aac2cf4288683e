// Package sqlite persists the board in a SQLite database carrying the same
// flat shape as the TOML store: ordered list rows, ordered item rows.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hylla/tavla/internal/domain"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Store reads and writes the board through one database handle.
type Store struct {
	db *sql.DB
}

// Open opens (and migrates) the database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// OpenInMemory opens a throwaway in-memory database, for tests.
func OpenInMemory() (*Store, error) {
	db, err := sql.Open(driverName, "file::memory:?cache=shared")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lists (
			position INTEGER PRIMARY KEY,
			name TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS items (
			list_position INTEGER NOT NULL,
			position INTEGER NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (list_position, position)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// Load reads all list and item rows in position order. An empty database is
// an empty board.
func (s *Store) Load() (*domain.Board, error) {
	board := domain.NewBoard()

	rows, err := s.db.Query(`SELECT position, name FROM lists ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query lists: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pos int
		var name string
		if err := rows.Scan(&pos, &name); err != nil {
			return nil, fmt.Errorf("scan list row: %w", err)
		}
		board.Lists = append(board.Lists, domain.List{Name: name, Items: []string{}})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate list rows: %w", err)
	}

	itemRows, err := s.db.Query(`SELECT list_position, text FROM items ORDER BY list_position, position`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var listPos int
		var text string
		if err := itemRows.Scan(&listPos, &text); err != nil {
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		if listPos < 0 || listPos >= board.ListCount() {
			return nil, fmt.Errorf("item row references list %d of %d: %w", listPos, board.ListCount(), domain.ErrInvariant)
		}
		board.Lists[listPos].Items = append(board.Lists[listPos].Items, text)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item rows: %w", err)
	}

	board.Normalize()
	return board, nil
}

// Save rewrites the full board in one transaction, replacing whatever was
// persisted before.
func (s *Store) Save(board *domain.Board) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM items`); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM lists`); err != nil {
		return fmt.Errorf("clear lists: %w", err)
	}

	for listPos, lst := range board.Lists {
		if _, err := tx.Exec(`INSERT INTO lists (position, name) VALUES (?, ?)`, listPos, lst.Name); err != nil {
			return fmt.Errorf("insert list row: %w", err)
		}
		for itemPos, text := range lst.Items {
			if _, err := tx.Exec(
				`INSERT INTO items (list_position, position, text) VALUES (?, ?, ?)`,
				listPos, itemPos, text,
			); err != nil {
				return fmt.Errorf("insert item row: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save tx: %w", err)
	}
	return nil
}
