// Package todo implements the ordered todo list and its load/save
// operations against a single storage location.
//
// A Store is not safe for concurrent use. Every mutating call persists the
// whole list before returning, so the file on disk tracks the in-memory list
// after each successful operation.
package todo

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/todoapp/pkg/types"
)

// ChangeFunc receives a copy of the list after it changes.
type ChangeFunc func(items []types.Item)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence events.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// Store is the in-memory ordered list of items bound to a Storage.
type Store struct {
	storage   types.Storage
	items     []types.Item
	listeners []ChangeFunc
	log       zerolog.Logger
}

// New returns an empty store bound to storage. Call Load to hydrate it.
func New(storage types.Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the storage location.
func (s *Store) Path() string {
	return s.storage.Location()
}

// Subscribe registers fn to run after every successful mutation and after a
// successful Load.
func (s *Store) Subscribe(fn ChangeFunc) {
	s.listeners = append(s.listeners, fn)
}

// Add trims raw and appends it as a pending item. Input that trims to
// nothing returns ErrEmptyText and leaves the list untouched. Invalid UTF-8
// sequences are replaced with U+FFFD so the stored text is what a later
// Load returns.
//
// An error wrapping ErrIO means the item was added in memory but the list
// could not be persisted.
func (s *Store) Add(raw string) error {
	text := strings.TrimSpace(raw)
	if text == "" {
		return types.ErrEmptyText
	}
	text = strings.ToValidUTF8(text, "\uFFFD")
	s.items = append(s.items, types.NewItem(text))
	return s.changed("add")
}

// RemoveAt deletes the item at index, shifting later items down by one.
func (s *Store) RemoveAt(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return s.changed("remove")
}

// ToggleAt flips the done flag of the item at index.
func (s *Store) ToggleAt(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.items[index].Toggle()
	return s.changed("toggle")
}

// Save writes the current list to storage, replacing what was there.
func (s *Store) Save() error {
	if err := s.storage.Write(s.items); err != nil {
		return fmt.Errorf("save %s: %w", s.storage.Location(), err)
	}
	s.log.Debug().Str("path", s.storage.Location()).Int("count", len(s.items)).Msg("todos saved")
	return nil
}

// Load replaces the list with the persisted one. A storage location that
// does not exist yet is not an error and leaves the list as it is. On any
// failure the in-memory list is unchanged.
func (s *Store) Load() error {
	items, err := s.storage.Read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug().Str("path", s.storage.Location()).Msg("no saved todos")
			return nil
		}
		return fmt.Errorf("load %s: %w", s.storage.Location(), err)
	}

	s.items = append(s.items[:0:0], items...)
	s.log.Debug().Str("path", s.storage.Location()).Int("count", len(s.items)).Msg("todos loaded")
	s.notify()
	return nil
}

// Count returns the number of items.
func (s *Store) Count() int {
	return len(s.items)
}

// DoneCount returns the number of items marked done.
func (s *Store) DoneCount() int {
	n := 0
	for _, it := range s.items {
		if it.Done {
			n++
		}
	}
	return n
}

// Items returns a copy of the list in order.
func (s *Store) Items() []types.Item {
	out := make([]types.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Item returns a copy of the item at index.
func (s *Store) Item(index int) (types.Item, error) {
	if err := s.checkIndex(index); err != nil {
		return types.Item{}, err
	}
	return s.items[index], nil
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: %d not in [0, %d)", types.ErrIndexOutOfRange, index, len(s.items))
	}
	return nil
}

// changed persists after a mutation and then notifies listeners. The
// mutation stands even when persisting fails.
func (s *Store) changed(op string) error {
	err := s.Save()
	if err != nil {
		s.log.Warn().Err(err).Str("op", op).Msg("auto-save failed")
	}
	s.notify()
	return err
}

func (s *Store) notify() {
	if len(s.listeners) == 0 {
		return
	}
	snapshot := s.Items()
	for _, fn := range s.listeners {
		fn(snapshot)
	}
}
