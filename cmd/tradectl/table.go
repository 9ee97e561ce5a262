package main

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// textTable renders rows as a bordered plain-text table.
type textTable struct {
	headers []string
	rows    [][]string
	right   map[int]bool
	footer  []string
}

func newTextTable(headers ...string) *textTable {
	return &textTable{headers: headers, right: map[int]bool{}}
}

// alignRight right-aligns the given columns, e.g. amounts.
func (t *textTable) alignRight(cols ...int) *textTable {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

func (t *textTable) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *textTable) setFooter(cells ...string) {
	t.footer = cells
}

func (t *textTable) widths() []int {
	widths := make([]int, len(t.headers))
	measure := func(row []string) {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	measure(t.headers)
	for _, row := range t.rows {
		measure(row)
	}
	measure(t.footer)
	// Width includes the cell padding
	for i := range widths {
		widths[i] += 2
	}
	return widths
}

func (t *textTable) renderRow(sb *strings.Builder, row []string, widths []int, style lipgloss.Style) {
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		s := style.Width(w)
		if t.right[i] {
			s = s.Align(lipgloss.Right)
		}
		sb.WriteString(s.Render(cell))
		if i < len(widths)-1 {
			sb.WriteString(mutedStyle.Render("|"))
		}
	}
	sb.WriteString("\n")
}

func (t *textTable) divider(sb *strings.Builder, widths []int) {
	total := len(widths) - 1
	for _, w := range widths {
		total += w
	}
	sb.WriteString(mutedStyle.Render(strings.Repeat("-", total)) + "\n")
}

// Render writes the table to out.
func (t *textTable) Render(out io.Writer) error {
	widths := t.widths()
	var sb strings.Builder
	t.renderRow(&sb, t.headers, widths, headerStyle)
	t.divider(&sb, widths)
	for _, row := range t.rows {
		t.renderRow(&sb, row, widths, cellStyle)
	}
	if t.footer != nil {
		t.divider(&sb, widths)
		t.renderRow(&sb, t.footer, widths, headerStyle)
	}
	_, err := io.WriteString(out, sb.String())
	return err
}
