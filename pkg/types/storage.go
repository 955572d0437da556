package types

import "errors"

// Storage reads and writes the ordered item list at a single location.
type Storage interface {
	// Read returns the persisted items in their stored order. When nothing
	// has been persisted yet the returned error satisfies
	// errors.Is(err, fs.ErrNotExist). Content that does not decode as an
	// item list wraps ErrFormat; any other failure wraps ErrIO.
	Read() ([]Item, error)

	// Write replaces the persisted list with items, creating the location
	// (including parent directories) when absent. Failures wrap ErrIO.
	Write(items []Item) error

	// Location returns the path the storage reads and writes.
	Location() string
}

// Store operation errors.
var (
	ErrEmptyText       = errors.New("todo text must not be empty")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Persistence errors.
var (
	ErrIO     = errors.New("storage i/o failure")
	ErrFormat = errors.New("malformed todo data")
)
