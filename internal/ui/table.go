package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/todoforge/internal/todo"
)

// EmptyHint is printed below an empty todo table.
const EmptyHint = "mmm... looks like you have no tasks at the moment. C'mon now create some new ones :)"

// TableTitle is the caption rendered above the todo table.
const TableTitle = "Todo List"

// TableOptions controls how RenderTodos formats ids.
type TableOptions struct {
	FullID        bool
	ShortIDLength int
}

// RenderTodos renders todos as a markdown-bordered table in the given order.
func RenderTodos(todos []todo.Todo, opts TableOptions) string {
	rows := make([][]string, 0, len(todos))
	for _, t := range todos {
		id := t.ID
		if !opts.FullID {
			id = todo.ShortID(id, opts.ShortIDLength)
		}
		rows = append(rows, []string{id, strings.TrimSpace(t.Title), mark(t.Done)})
	}

	tbl := table.New().
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers("Id", "Title", "Done").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			switch col {
			case 0:
				return idStyle
			case 1:
				return titleStyle
			}
			if row >= 0 && row < len(todos) && todos[row].Done {
				return doneStyle
			}
			return undoneStyle
		})

	var b strings.Builder
	b.WriteString(captionStyle.Render(TableTitle))
	b.WriteString("\n\n")
	b.WriteString(tbl.Render())
	b.WriteString("\n")
	return b.String()
}

// RenderSpaces lists spaces one per line, marking the current one.
func RenderSpaces(spaces []string, current string) string {
	var b strings.Builder
	for _, name := range spaces {
		marker := " "
		if name == current {
			marker = currentMarker
		}
		fmt.Fprintf(&b, "%s %s\n", marker, name)
	}
	return b.String()
}

// RenderSummary returns a one-line count of pending and done todos.
func RenderSummary(space string, c *todo.Collection) string {
	pending, done := c.Counts()
	return faintStyle.Render(fmt.Sprintf("%s: %d pending, %d done", space, pending, done))
}
