package app

import "github.com/hylla/tavla/internal/domain"

// Store is the persistence boundary. Load yields an empty board when no
// state has ever been saved; Save overwrites the prior state in full.
type Store interface {
	Load() (*domain.Board, error)
	Save(*domain.Board) error
}
