package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PromptModel asks for a single line of text.
type PromptModel struct {
	label     string
	input     textinput.Model
	done      bool
	cancelled bool
}

// NewPrompt returns a focused prompt prefilled with initial.
func NewPrompt(label, initial string) PromptModel {
	ti := textinput.New()
	ti.Placeholder = "Todo title"
	ti.CharLimit = 256
	ti.Width = 60
	ti.SetValue(initial)
	ti.Focus()
	return PromptModel{label: label, input: ti}
}

// Value returns the trimmed input.
func (m PromptModel) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Done reports whether the input was submitted.
func (m PromptModel) Done() bool {
	return m.done
}

// Cancelled reports whether the prompt was abandoned.
func (m PromptModel) Cancelled() bool {
	return m.cancelled
}

func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.Value() == "" {
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m PromptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n\n%s\n", captionStyle.Render(m.label), m.input.View(),
		faintStyle.Render("enter confirm | esc cancel"))
}

// Prompt asks for a line of text. ok is false when the user cancelled.
func Prompt(ctx context.Context, label, initial string, in io.Reader, out io.Writer) (string, bool, error) {
	program := tea.NewProgram(NewPrompt(label, initial),
		tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := program.Run()
	if err != nil {
		return "", false, err
	}
	m, ok := final.(PromptModel)
	if !ok || !m.done {
		return "", false, nil
	}
	return m.Value(), true, nil
}

// ReadLine prints label on out and reads one trimmed line from in.
// It is used instead of Prompt when in is not a terminal.
func ReadLine(in io.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprintf(out, "%s: ", label)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question on out and reads the answer from in.
// Anything but y or yes is a no.
func Confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
