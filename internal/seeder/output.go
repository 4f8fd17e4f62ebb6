package seeder

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	primaryStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	nameStyle    = lipgloss.NewStyle().Width(28)
	countStyle   = lipgloss.NewStyle().Width(16).Align(lipgloss.Right)
)

// Render writes a human-readable summary to w
func (s *Summary) Render(w io.Writer) error {
	var b strings.Builder

	if s.DryRun {
		b.WriteString(warningStyle.Render("○ Dry run: nothing was written"))
	} else {
		b.WriteString(successStyle.Render("✓ Category hierarchy seeded"))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("backend %s · removed %d · inserted %d", s.Backend, s.Deleted, s.Inserted)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		primaryStyle.Inherit(nameStyle).Render("Main category"),
		primaryStyle.Inherit(countStyle).Render("Sub-categories"),
		primaryStyle.Inherit(countStyle).Render("Items"),
	))
	b.WriteString("\n")
	for _, m := range s.Mains {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			nameStyle.Render(m.Main),
			countStyle.Render(fmt.Sprint(m.SubCategories)),
			countStyle.Render(fmt.Sprint(m.Leaves)),
		))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(primaryStyle.Render(fmt.Sprintf("Total rows: %d", s.Inserted)))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
