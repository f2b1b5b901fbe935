package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/jrsteele09/internship-portal/applications"
	"github.com/jrsteele09/internship-portal/internships"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	columnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// table writes aligned rows with a styled header
type table struct {
	w *tabwriter.Writer
}

func newTable(out io.Writer, columns ...string) *table {
	t := &table{w: tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)}
	styled := make([]string, len(columns))
	for i, c := range columns {
		styled[i] = columnStyle.Render(c)
	}
	fmt.Fprintln(t.w, strings.Join(styled, "\t"))
	return t
}

func (t *table) row(cells ...string) {
	fmt.Fprintln(t.w, strings.Join(cells, "\t"))
}

func (t *table) flush() error {
	return t.w.Flush()
}

func heading(out io.Writer, format string, args ...any) {
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf(format, args...)))
}

func internshipStatus(s internships.Status) string {
	if s == internships.StatusOpen {
		return goodStyle.Render(string(s))
	}
	return mutedStyle.Render(string(s))
}

func applicationStatus(s applications.Status) string {
	switch s {
	case applications.StatusShortlisted:
		return goodStyle.Render(string(s))
	case applications.StatusNotShortlisted:
		return badStyle.Render(string(s))
	}
	return warnStyle.Render(string(s))
}

func yesNo(v bool) string {
	if v {
		return goodStyle.Render("yes")
	}
	return mutedStyle.Render("no")
}

func formatFields(fields map[string][]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		msg := strings.Join(fields[name], " ")
		if name == "non_field_errors" {
			parts = append(parts, msg)
			continue
		}
		parts = append(parts, name+": "+msg)
	}
	return strings.Join(parts, "; ")
}
