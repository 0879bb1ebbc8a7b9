package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/todoforge/internal/todo"
)

// PickerModel is a bubbletea model that toggles the done flag of todos.
type PickerModel struct {
	todos     []todo.Todo
	cursor    int
	idLength  int
	saved     bool
	cancelled bool
}

// NewPicker returns a picker over a copy of todos.
func NewPicker(todos []todo.Todo, idLength int) PickerModel {
	items := make([]todo.Todo, len(todos))
	copy(items, todos)
	return PickerModel{todos: items, idLength: idLength}
}

// Todos returns the todos with their current done flags.
func (m PickerModel) Todos() []todo.Todo {
	return m.todos
}

// Cursor returns the highlighted index.
func (m PickerModel) Cursor() int {
	return m.cursor
}

// Saved reports whether the user confirmed the selection.
func (m PickerModel) Saved() bool {
	return m.saved
}

// Cancelled reports whether the user left without saving.
func (m PickerModel) Cancelled() bool {
	return m.cancelled
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "enter":
		m.saved = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.todos)-1 {
			m.cursor++
		}
	case " ", "x":
		m.todos = todo.ToggleAt(m.todos, m.cursor)
	}
	return m, nil
}

func (m PickerModel) View() string {
	if m.saved || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(captionStyle.Render("Toggle todos"))
	b.WriteString("\n\n")
	for i, t := range m.todos {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s %s  %s\n", pointer, mark(t.Done),
			faintStyle.Render(todo.ShortID(t.ID, m.idLength)), t.Title)
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("up/down move | space toggle | enter save | q cancel"))
	b.WriteString("\n")
	return b.String()
}

// RunPicker runs the toggle picker on in and out. It returns the edited
// todos and whether the user saved them.
func RunPicker(ctx context.Context, todos []todo.Todo, idLength int, in io.Reader, out io.Writer) ([]todo.Todo, bool, error) {
	program := tea.NewProgram(NewPicker(todos, idLength),
		tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := program.Run()
	if err != nil {
		return nil, false, err
	}
	m, ok := final.(PickerModel)
	if !ok || !m.saved {
		return nil, false, nil
	}
	return m.todos, true, nil
}
