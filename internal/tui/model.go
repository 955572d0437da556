// Package tui provides the interactive terminal front end for the todo
// store. It only calls store operations and re-renders from the store's
// change notifications; it holds no list logic of its own.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mesh-intelligence/todoapp/pkg/todo"
	"github.com/mesh-intelligence/todoapp/pkg/types"
)

// flashDuration is how long a transient status message stays visible.
const flashDuration = 1200 * time.Millisecond

// Flash messages.
const (
	msgEmptyInput   = "Type something to add a todo."
	msgSelectToggle = "Select an item to toggle."
	msgSelectRemove = "Select an item to remove."
	msgSaved        = "Todos saved."
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// flashExpiredMsg reverts the status line. id ties it to the flash that
// scheduled it so a newer flash is not cut short.
type flashExpiredMsg struct{ id int }

// Model is the Bubble Tea model for the todo list.
type Model struct {
	store *todo.Store
	rows  []types.Item

	input  textinput.Model
	help   help.Model
	keys   keyMap
	theme  theme
	focus  focusArea
	cursor int
	width  int

	flash    string
	flashErr bool
	flashID  int
}

// NewModel returns a model bound to store. The store is loaded by Init.
func NewModel(store *todo.Store) *Model {
	ti := textinput.New()
	ti.Placeholder = "New todo"
	ti.Prompt = "> "
	ti.Focus()

	m := &Model{
		store: store,
		rows:  store.Items(),
		input: ti,
		help:  help.New(),
		keys:  defaultKeyMap(),
		theme: defaultTheme(),
	}
	store.Subscribe(m.onChange)
	return m
}

// Run starts the TUI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, store *todo.Store) error {
	program := tea.NewProgram(NewModel(store), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// onChange re-reads the list after a store mutation.
func (m *Model) onChange(items []types.Item) {
	m.rows = items
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Init loads the persisted list. A load failure is shown and the session
// continues with whatever the store already holds.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if err := m.store.Load(); err != nil {
		cmds = append(cmds, m.setFlash("Load failed: "+err.Error(), true))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-8, 10)
		return m, nil

	case flashExpiredMsg:
		if msg.id == m.flashID {
			m.flash = ""
			m.flashErr = false
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Save):
			return m, m.save()
		case key.Matches(msg, m.keys.SwitchFocus):
			m.switchFocus()
			return m, nil
		}

		if m.focus == focusInput {
			if key.Matches(msg, m.keys.Submit) {
				return m, m.add()
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, m.updateList(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.QuitList):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Submit), key.Matches(msg, m.keys.Toggle):
		return m.toggle()
	case key.Matches(msg, m.keys.Remove):
		return m.remove()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) switchFocus() {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m *Model) add() tea.Cmd {
	err := m.store.Add(m.input.Value())
	switch {
	case errors.Is(err, types.ErrEmptyText):
		return m.setFlash(msgEmptyInput, true)
	case err != nil:
		// The item was added but not persisted.
		m.input.Reset()
		m.cursor = len(m.rows) - 1
		return m.setFlash("Save failed: "+err.Error(), true)
	}
	m.input.Reset()
	m.cursor = len(m.rows) - 1
	return nil
}

func (m *Model) toggle() tea.Cmd {
	err := m.store.ToggleAt(m.cursor)
	switch {
	case errors.Is(err, types.ErrIndexOutOfRange):
		return m.setFlash(msgSelectToggle, true)
	case err != nil:
		return m.setFlash("Save failed: "+err.Error(), true)
	}
	return nil
}

func (m *Model) remove() tea.Cmd {
	err := m.store.RemoveAt(m.cursor)
	switch {
	case errors.Is(err, types.ErrIndexOutOfRange):
		return m.setFlash(msgSelectRemove, true)
	case err != nil:
		return m.setFlash("Save failed: "+err.Error(), true)
	}
	return nil
}

func (m *Model) save() tea.Cmd {
	if err := m.store.Save(); err != nil {
		return m.setFlash("Save failed: "+err.Error(), true)
	}
	return m.setFlash(msgSaved, false)
}

// setFlash shows text in the status line and schedules its removal.
func (m *Model) setFlash(text string, isErr bool) tea.Cmd {
	m.flashID++
	m.flash = text
	m.flashErr = isErr
	id := m.flashID
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{id: id}
	})
}

// statusLine is the flash message when one is showing, otherwise the
// totals.
func (m *Model) statusLine() string {
	if m.flash != "" {
		if m.flashErr {
			return m.theme.FlashErr.Render(m.flash)
		}
		return m.theme.Flash.Render(m.flash)
	}
	return m.theme.Status.Render(fmt.Sprintf("Total: %d    Done: %d", m.store.Count(), m.store.DoneCount()))
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("TodoApp"))
	b.WriteString("\n\n")

	inputStyle := m.theme.Blurred
	if m.focus == focusInput {
		inputStyle = m.theme.Input
	}
	b.WriteString(inputStyle.Render(m.input.View()))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(m.theme.Empty.Render("  Nothing to do."))
		b.WriteString("\n")
	}
	for i, it := range m.rows {
		b.WriteString(m.renderRow(i, it))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderRow(i int, it types.Item) string {
	prefix := "  "
	if m.focus == focusList && i == m.cursor {
		prefix = m.theme.Cursor.Render("▸ ")
	}

	style := m.theme.Pending
	if it.Done {
		style = m.theme.Done
	}
	return prefix + m.theme.Index.Render(fmt.Sprintf("%2d ", i)) + style.Render(it.Display())
}
