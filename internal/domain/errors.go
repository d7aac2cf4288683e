package domain

import "errors"

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNotEmpty        = errors.New("list is not empty")
	ErrInvariant       = errors.New("invariant violation")
)
