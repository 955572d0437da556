// Package storage implements the persistence backends for the todo store.
// This file provides the JSON file backend with atomic persistence.
package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/todoapp/pkg/types"
)

// DefaultJSONFileName is the file the JSON backend writes inside the data
// directory.
const DefaultJSONFileName = "todos.json"

const dataFileMode fs.FileMode = 0o644

// itemJSON is the on-disk record. It mirrors types.Item so that the file
// format cannot drift when the entity grows methods or fields. Decoding
// matches keys case-insensitively, so Text/Done files load too.
type itemJSON struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// JSONFile stores the item list as an indented JSON array in one file.
type JSONFile struct {
	path string
}

// NewJSONFile returns a JSON backend bound to path. The file is not touched
// until the first Read or Write.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Location returns the file path.
func (j *JSONFile) Location() string {
	return j.path
}

// Read parses the file into items. A missing file, or one holding the JSON
// null document, yields an error wrapping fs.ErrNotExist: neither holds a
// saved list.
func (j *JSONFile) Read() ([]types.Item, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: reading %s: %w", types.ErrIO, j.path, err)
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, fmt.Errorf("%s holds null: %w", j.path, fs.ErrNotExist)
	}
	return decodeItems(data)
}

// Write replaces the file with items using the temp-file, fsync, rename
// pattern. Parent directories are created when missing.
func (j *JSONFile) Write(items []types.Item) error {
	data, err := encodeItems(items)
	if err != nil {
		return fmt.Errorf("%w: encoding items: %w", types.ErrIO, err)
	}
	if err := writeFileAtomic(j.path, data); err != nil {
		return fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	return nil
}

// encodeItems renders items as the indented JSON array with a trailing
// newline. An empty list encodes as [].
func encodeItems(items []types.Item) ([]byte, error) {
	records := make([]itemJSON, 0, len(items))
	for _, it := range items {
		records = append(records, itemJSON{Text: it.Text, Done: it.Done})
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// decodeItems validates data against the file schema and converts it to
// items. Every failure wraps types.ErrFormat.
func decodeItems(data []byte) ([]types.Item, error) {
	if err := validateDocument(data); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrFormat, err)
	}

	var records []itemJSON
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrFormat, err)
	}

	items := make([]types.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, types.Item{Text: rec.Text, Done: rec.Done})
	}
	return items, nil
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".todos-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	// CreateTemp opens with 0600 and Rename keeps it.
	if err := tmp.Chmod(dataFileMode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("setting temp file mode: %w", err)
	}

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
