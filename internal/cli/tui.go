package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lhartmann/guestree/pkg/store"
)

// Editor styles
var (
	editorCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editorCellStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	editorDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	editorEditStyle   = lipgloss.NewStyle().Foreground(colorYellow)
)

// Editable columns, in display order. The ID column is shown but read-only.
var editorColumns = []string{"Name", "Side", "Invited", "+1", "Email", "Phone", "Notes"}

// editorColWidths keeps the table readable without a full layout engine.
var editorColWidths = []int{20, 10, 7, 4, 22, 14, 20}

// =============================================================================
// EditorModel - Interactive guest table editing
// =============================================================================

// EditorModel is the bubbletea model for the guest table editor.
//
// The rows it holds are the COMPLETE table; on save they are handed to the
// store's table reconciliation, which deletes anyone missing from them.
type EditorModel struct {
	Rows   []store.Row
	Cursor int
	Col    int
	Saved  bool

	editing bool
	input   string
	height  int
	offset  int
}

// NewEditorModel creates an editor over the full row set.
func NewEditorModel(rows []store.Row) EditorModel {
	return EditorModel{Rows: rows, height: 15}
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateNavigation(msg)
	case tea.WindowSizeMsg:
		m.height = msg.Height - 7
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m EditorModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.setCell(m.Cursor, m.Col, m.input)
		m.editing = false
	case "esc":
		m.editing = false
	case "backspace":
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	default:
		if msg.Type == tea.KeyRunes || msg.String() == " " {
			m.input += string(msg.Runes)
		}
	}
	return m, nil
}

func (m EditorModel) updateNavigation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "ctrl+s":
		m.Saved = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
			if m.Cursor < m.offset {
				m.offset = m.Cursor
			}
		}
	case "down", "j":
		if m.Cursor < len(m.Rows)-1 {
			m.Cursor++
			if m.Cursor >= m.offset+m.height {
				m.offset = m.Cursor - m.height + 1
			}
		}
	case "left", "h":
		if m.Col > 0 {
			m.Col--
		}
	case "right", "l":
		if m.Col < len(editorColumns)-1 {
			m.Col++
		}
	case "enter":
		if len(m.Rows) == 0 {
			return m, nil
		}
		if m.boolColumn() {
			m.toggleCell(m.Cursor, m.Col)
			return m, nil
		}
		m.editing = true
		m.input = m.cell(m.Cursor, m.Col)
	case " ":
		if len(m.Rows) > 0 && m.boolColumn() {
			m.toggleCell(m.Cursor, m.Col)
		}
	case "a":
		m.Rows = append(m.Rows, store.Row{Invited: true})
		m.Cursor = len(m.Rows) - 1
		m.Col = 0
		m.editing = true
		m.input = ""
	case "d":
		if len(m.Rows) > 0 {
			m.Rows = append(m.Rows[:m.Cursor], m.Rows[m.Cursor+1:]...)
			if m.Cursor >= len(m.Rows) && m.Cursor > 0 {
				m.Cursor--
			}
		}
	}
	return m, nil
}

func (m EditorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Guest Table"))
	b.WriteString("\n")
	b.WriteString(editorDimStyle.Render("↑/↓/←/→ navigate  ⏎ edit/toggle  a add  d delete  ctrl+s save  q quit"))
	b.WriteString("\n\n")

	header := "     " + padCell("ID", 6)
	for i, col := range editorColumns {
		header += padCell(col, editorColWidths[i])
	}
	b.WriteString(editorDimStyle.Render(header))
	b.WriteString("\n")

	end := m.offset + m.height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	for i := m.offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = editorCursorStyle.Render("▸ ")
		}

		line := cursor + "   " + editorDimStyle.Render(padCell(m.Rows[i].ID, 6))
		for col := range editorColumns {
			text := m.cellAt(i, col)
			if i == m.Cursor && col == m.Col && m.editing {
				line += editorEditStyle.Render(padCell(m.input+"▏", editorColWidths[col]))
				continue
			}
			style := editorCellStyle
			if i == m.Cursor && col == m.Col {
				style = editorCursorStyle
			}
			line += style.Render(padCell(text, editorColWidths[col]))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.Rows) == 0 {
		b.WriteString(editorDimStyle.Render("  (empty - press a to add a person)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(editorDimStyle.Render(fmt.Sprintf("%d people", len(m.Rows))))
	return b.String()
}

// boolColumn reports whether the current column holds a checkbox.
func (m EditorModel) boolColumn() bool {
	return editorColumns[m.Col] == "Invited" || editorColumns[m.Col] == "+1"
}

// cell returns the raw text of an editable cell.
func (m EditorModel) cell(row, col int) string {
	r := m.Rows[row]
	switch editorColumns[col] {
	case "Name":
		return r.Name
	case "Side":
		return r.Side
	case "Email":
		return r.Email
	case "Phone":
		return r.Phone
	case "Notes":
		return r.Notes
	}
	return ""
}

// cellAt returns the display text of a cell, rendering checkboxes.
func (m EditorModel) cellAt(row, col int) string {
	r := m.Rows[row]
	switch editorColumns[col] {
	case "Invited":
		return checkbox(r.Invited)
	case "+1":
		return checkbox(r.PlusOne)
	}
	return m.cell(row, col)
}

// setCell writes edited text back into the row.
func (m *EditorModel) setCell(row, col int, value string) {
	r := &m.Rows[row]
	switch editorColumns[col] {
	case "Name":
		r.Name = value
	case "Side":
		r.Side = value
	case "Email":
		r.Email = value
	case "Phone":
		r.Phone = value
	case "Notes":
		r.Notes = value
	}
}

// toggleCell flips a checkbox column.
func (m *EditorModel) toggleCell(row, col int) {
	r := &m.Rows[row]
	switch editorColumns[col] {
	case "Invited":
		r.Invited = !r.Invited
	case "+1":
		r.PlusOne = !r.PlusOne
	}
}

func checkbox(v bool) string {
	if v {
		return "[x]"
	}
	return "[ ]"
}

// padCell truncates or pads text to the column width plus one space.
func padCell(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		r = append(r[:width-1], '…')
	}
	return string(r) + strings.Repeat(" ", width-len(r)+1)
}
