package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/adanyl0v/nonbon/internal/client"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

func ok(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render("✔ "+msg))
}

func fail(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render("✖ "+msg))
}

func panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, panelStyle.Render(strings.Join(lines, "\n")))
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "Active":
		return activeStyle
	case "Done", "Archived":
		return doneStyle
	default:
		return accentStyle
	}
}

// itemLine renders "id: title [area] (status)".
func itemLine(item client.Item) string {
	area := item.Area
	if area == "" {
		area = "-"
	}
	return fmt.Sprintf("%s %s %s %s",
		mutedStyle.Render(fmt.Sprintf("%d:", item.ID)),
		item.Title,
		mutedStyle.Render("["+area+"]"),
		statusStyle(item.Status).Render("("+item.Status+")"),
	)
}

func itemLines(items []client.Item, empty string) []string {
	if len(items) == 0 {
		return []string{mutedStyle.Render(empty)}
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, itemLine(item))
	}
	return lines
}

var statusOrder = []string{"Active", "Backlog", "Done", "Archived"}

// groupedLines renders items under one heading per status.
func groupedLines(items []client.Item) []string {
	groups := make(map[string][]client.Item)
	for _, item := range items {
		groups[item.Status] = append(groups[item.Status], item)
	}

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		titleStyle.Render("Focus"),
		activeStyle.Render("Active"), len(groups["Active"]),
		accentStyle.Render("Backlog"), len(groups["Backlog"]),
		successStyle.Render("Total"), len(items),
	)
	lines := []string{header, ""}
	for _, status := range statusOrder {
		if len(groups[status]) == 0 {
			continue
		}
		lines = append(lines, statusStyle(status).Render(status))
		for _, item := range groups[status] {
			lines = append(lines, "  "+itemLine(item))
		}
	}
	if len(items) == 0 {
		lines = append(lines, mutedStyle.Render("no focus items"))
	}
	return lines
}
