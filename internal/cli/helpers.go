package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/mesh-intelligence/todoapp/internal/storage"
	"github.com/mesh-intelligence/todoapp/pkg/todo"
	"github.com/mesh-intelligence/todoapp/pkg/types"
)

// itemView is the JSON output shape for a single item.
type itemView struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Done  bool   `json:"done"`
}

// statusView is the JSON output shape for the summary.
type statusView struct {
	Total int    `json:"total"`
	Done  int    `json:"done"`
	Path  string `json:"path"`
}

// newStore resolves storage from config and returns an empty store bound
// to it.
func (a *app) newStore() (*todo.Store, error) {
	cfg, err := a.storageConfig()
	if err != nil {
		return nil, err
	}

	st, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}
	return todo.New(st, todo.WithLogger(a.log)), nil
}

// openStore returns a store hydrated from storage.
func (a *app) openStore() (*todo.Store, error) {
	store, err := a.newStore()
	if err != nil {
		return nil, err
	}
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}

// parseIndex converts a 0-based index argument.
func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an index", errInvalidArg, arg)
	}
	return i, nil
}

// statusLine renders the summary shown under the list.
func statusLine(store *todo.Store) string {
	return fmt.Sprintf("Total: %d    Done: %d", store.Count(), store.DoneCount())
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeItem prints one item, prefixed by verb in text mode.
func (a *app) writeItem(w io.Writer, verb string, index int, it types.Item) error {
	if a.flags.jsonMode {
		return writeJSON(w, itemView{Index: index, Text: it.Text, Done: it.Done})
	}
	_, err := fmt.Fprintf(w, "%s %d: %s\n", verb, index, it.Display())
	return err
}
