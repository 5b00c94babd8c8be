// Package output renders checklist state for the terminal. It is a stateless
// projection over orchestrator snapshots; nothing here mutates state.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"weekly/internal/document"
	"weekly/internal/sync"
	"weekly/internal/timekey"
)

// DayNames are the column headers, Mon=0..Fri=4.
var DayNames = [document.Columns]string{"Mon", "Tue", "Wed", "Thu", "Fri"}

// Printer formats output for one writer. Styles degrade to plain text when
// the writer is not a terminal.
type Printer struct {
	w       io.Writer
	today   lipgloss.Style
	success lipgloss.Style
	muted   lipgloss.Style
}

// New creates a printer for w.
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		today:   r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
		muted:   r.NewStyle().Faint(true),
	}
}

// WeekTable renders the week range label, the acting role, and the
// completion table with today's column marked.
func (p *Printer) WeekTable(snap sync.Snapshot) {
	fmt.Fprintln(p.w, snap.Keys.RangeLabel())
	fmt.Fprintf(p.w, "role: %s\n\n", snap.Role)

	fmt.Fprintf(p.w, "%4s  %-16s", "#", "task")
	for i, name := range DayNames {
		if i == snap.Keys.Column {
			name += "*"
		}
		cell := fmt.Sprintf("%5s", name)
		if i == snap.Keys.Column {
			cell = p.today.Render(cell)
		}
		fmt.Fprint(p.w, cell)
	}
	fmt.Fprintln(p.w)

	if len(snap.Tasks) == 0 {
		fmt.Fprintln(p.w, p.muted.Render("  (no tasks configured)"))
		return
	}
	for i, t := range snap.Tasks {
		fmt.Fprintf(p.w, "%4d  %-16s", i+1, normalizeLabel(t.Label))
		row := snap.Week[t.ID]
		for col := range DayNames {
			mark := "."
			if row[col] {
				mark = "x"
			}
			cell := fmt.Sprintf("%5s", mark)
			if col == snap.Keys.Column {
				cell = p.today.Render(cell)
			}
			fmt.Fprint(p.w, cell)
		}
		fmt.Fprintln(p.w)
	}
}

// EditorList renders the config editor listing: numbers, labels, and ids.
// Shown only when editor visibility allows; a non-keyholder sees it marked
// read-only.
func (p *Printer) EditorList(snap sync.Snapshot) {
	fmt.Fprintln(p.w, "\neditor:")
	if len(snap.Tasks) == 0 {
		fmt.Fprintln(p.w, p.muted.Render("  (no tasks)"))
	}
	for i, t := range snap.Tasks {
		fmt.Fprintf(p.w, "%4d  %-16s  %s\n", i+1, normalizeLabel(t.Label), t.ID)
	}
	if !snap.Role.CanEditConfig() {
		fmt.Fprintln(p.w, p.muted.Render("  (read-only: keyholder mode required)"))
	}
}

// Rollover renders the re-derived display state after a day change.
func (p *Printer) Rollover(keys timekey.Keys) {
	fmt.Fprintf(p.w, "day rolled over to %s (%s)\n", keys.DayKey, keys.RangeLabel())
}

// Success renders a one-line success banner.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, p.success.Render(msg))
}

// normalizeLabel prepares a task label for display: newlines become spaces
// and blank labels render as a placeholder.
func normalizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	if strings.TrimSpace(label) == "" {
		return "(unnamed task)"
	}
	return label
}
