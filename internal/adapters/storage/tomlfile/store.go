// Package tomlfile persists the board as a single TOML document: an ordered
// array of list tables, each with a name and its items in order.
package tomlfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hylla/tavla/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

// Store reads and writes one board file. Save always rewrites the whole
// document; Load of a missing file yields an empty board.
type Store struct {
	path string
}

// document is the on-disk shape.
type document struct {
	Lists []listRecord `toml:"lists"`
}

type listRecord struct {
	Name  string   `toml:"name"`
	Items []string `toml:"items"`
}

// New constructs a store over the given file path.
func New(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("board file path is required")
	}
	return &Store{path: path}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load parses the board file. A missing file is an empty board, never an
// error.
func (s *Store) Load() (*domain.Board, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewBoard(), nil
		}
		return nil, fmt.Errorf("read board file: %w", err)
	}

	var doc document
	if err := toml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("decode board toml: %w", err)
	}

	board := domain.NewBoard()
	for _, rec := range doc.Lists {
		board.Lists = append(board.Lists, domain.List{
			Name:  rec.Name,
			Items: rec.Items,
		})
	}
	board.Normalize()
	return board, nil
}

// Save serializes the board and replaces the file contents in full. The
// write goes to a uniquely named temp file in the same directory and is
// renamed into place, so a crash mid-write never truncates the prior state.
func (s *Store) Save(board *domain.Board) error {
	doc := document{Lists: make([]listRecord, 0, board.ListCount())}
	for _, lst := range board.Lists {
		doc.Lists = append(doc.Lists, listRecord{
			Name:  lst.Name,
			Items: append([]string{}, lst.Items...),
		})
	}

	encoded, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode board toml: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create board dir: %w", err)
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(s.path), uuid.NewString()))
	if err := os.WriteFile(tmp, encoded, 0o644); err != nil {
		return fmt.Errorf("write board temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace board file: %w", err)
	}
	return nil
}
