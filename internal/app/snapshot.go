package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/hylla/tavla/internal/domain"
)

// SnapshotVersion identifies the snapshot document schema.
const SnapshotVersion = "tavla.snapshot.v1"

// Snapshot is the portable export of one board: ordered list records, each
// with a name and its items in order. The same flat shape the stores carry.
type Snapshot struct {
	Version    string         `json:"version"`
	ExportedAt time.Time      `json:"exported_at"`
	Lists      []SnapshotList `json:"lists"`
}

// SnapshotList is one list record in a snapshot.
type SnapshotList struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// ExportSnapshot captures the current board as a snapshot document.
func (s *Service) ExportSnapshot() Snapshot {
	board := s.board
	snap := Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: s.clock().UTC(),
		Lists:      make([]SnapshotList, 0, board.ListCount()),
	}
	for _, lst := range board.Lists {
		snap.Lists = append(snap.Lists, SnapshotList{
			Name:  lst.Name,
			Items: append([]string{}, lst.Items...),
		})
	}
	return snap
}

// ImportSnapshot replaces the board wholesale with the snapshot contents and
// resets the undo history, since the prior command stream no longer matches
// the board it was recorded against. The result is persisted immediately.
func (s *Service) ImportSnapshot(snap Snapshot) error {
	if v := strings.TrimSpace(snap.Version); v != "" && v != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %q", snap.Version)
	}
	board := domain.NewBoard()
	for _, lst := range snap.Lists {
		board.Lists = append(board.Lists, domain.List{
			Name:  lst.Name,
			Items: append([]string{}, lst.Items...),
		})
	}
	board.Normalize()
	if err := board.Check(); err != nil {
		return err
	}

	s.board.Lists = board.Lists
	s.resetHistory()
	s.logger.Info("snapshot imported", "lists", s.board.ListCount(), "items", s.board.TotalItemCount())
	return s.Save()
}

func (s *Service) resetHistory() {
	s.history.Reset()
}
