package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adanyl0v/nonbon/internal/client"
)

type menuState int

const (
	stateMenu menuState = iota
	stateTitle
	stateArea
	stateCreateStatus
	statePickItem
	statePickStatus
)

var menuOptions = []string{
	"List active focuses",
	"List backlog",
	"Add new focus",
	"Change focus status",
	"Suggest a random backlog item",
}

var (
	areaChoices   = []string{"Work", "Learning", "Home"}
	statusChoices = []string{"Backlog", "Active", "Done"}
)

// resultMsg carries the outcome of an API call back into the model.
type resultMsg struct {
	lines []string
	err   error
}

type backlogMsg struct {
	items []client.Item
	err   error
}

type menuModel struct {
	ctx    context.Context
	client focusClient

	state  menuState
	cursor int
	output []string
	busy   bool

	ti      textinput.Model
	title   string
	area    string
	backlog []client.Item
	picked  client.Item
}

func newMenuModel(ctx context.Context, c focusClient) menuModel {
	ti := textinput.New()
	ti.Prompt = "Title: "
	ti.Placeholder = "Finish spring cleaning"
	ti.CharLimit = 200
	ti.Cursor.SetMode(cursor.CursorStatic)

	return menuModel{
		ctx:    ctx,
		client: c,
		ti:     ti,
	}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.busy = false
		m.state = stateMenu
		if msg.err != nil {
			m.output = []string{errorStyle.Render("✖ " + msg.err.Error())}
		} else {
			m.output = msg.lines
		}
		return m, nil

	case backlogMsg:
		m.busy = false
		if msg.err != nil {
			m.state = stateMenu
			m.output = []string{errorStyle.Render("✖ " + msg.err.Error())}
			return m, nil
		}
		if len(msg.items) == 0 {
			m.state = stateMenu
			m.output = []string{mutedStyle.Render("Backlog is empty. Nothing to update.")}
			return m, nil
		}
		m.backlog = msg.items
		m.state = statePickItem
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		if msg.Type == tea.KeyEsc && m.state != stateMenu {
			m.state = stateMenu
			m.ti.Blur()
			m.cursor = 0
			return m, nil
		}
		switch m.state {
		case stateMenu:
			return m.updateMenu(msg)
		case stateTitle:
			return m.updateTitle(msg)
		case stateArea:
			return m.updateArea(msg)
		case stateCreateStatus:
			return m.updateCreateStatus(msg)
		case statePickItem:
			return m.updatePickItem(msg)
		case statePickStatus:
			return m.updatePickStatus(msg)
		}
	}
	return m, nil
}

func (m menuModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	choice := -1
	switch key := msg.String(); key {
	case "q", "0":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuOptions)-1 {
			m.cursor++
		}
	case "enter":
		choice = m.cursor + 1
	case "1", "2", "3", "4", "5":
		choice = int(key[0] - '0')
	}
	if choice < 0 {
		return m, nil
	}

	m.output = nil
	switch choice {
	case 1:
		m.busy = true
		return m, m.listActive()
	case 2:
		m.busy = true
		return m, m.listBacklog()
	case 3:
		m.state = stateTitle
		m.ti.SetValue("")
		cmd := m.ti.Focus()
		return m, cmd
	case 4:
		m.busy = true
		return m, m.fetchBacklog()
	case 5:
		m.busy = true
		return m, m.suggest()
	}
	return m, nil
}

func (m menuModel) updateTitle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		m.title = m.ti.Value()
		m.ti.Blur()
		m.state = stateArea
		return m, nil
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m menuModel) updateArea(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.area = pickChoice(msg.String(), areaChoices, "Other")
	m.state = stateCreateStatus
	return m, nil
}

func (m menuModel) updateCreateStatus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	status := pickChoice(msg.String(), statusChoices, "Backlog")
	m.busy = true
	return m, m.create(client.CreateItemRequest{
		Title:  m.title,
		Area:   m.area,
		Status: status,
	})
}

func (m menuModel) updatePickItem(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.backlog)-1 {
			m.cursor++
		}
	case "enter":
		m.picked = m.backlog[m.cursor]
		m.state = statePickStatus
	}
	return m, nil
}

func (m menuModel) updatePickStatus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	status := pickChoice(msg.String(), statusChoices, "Backlog")
	m.busy = true
	return m, m.updateStatus(m.picked.ID, status)
}

// pickChoice maps "1".."n" to choices and anything else to fallback.
func pickChoice(key string, choices []string, fallback string) string {
	if len(key) == 1 && key[0] >= '1' && int(key[0]-'0') <= len(choices) {
		return choices[key[0]-'1']
	}
	return fallback
}

func (m menuModel) listActive() tea.Cmd {
	return func() tea.Msg {
		items, err := m.client.ListActive(m.ctx)
		return resultMsg{lines: itemLines(items, "No active focuses."), err: err}
	}
}

func (m menuModel) listBacklog() tea.Cmd {
	return func() tea.Msg {
		items, err := m.client.ListBacklog(m.ctx)
		return resultMsg{lines: itemLines(items, "Backlog is empty."), err: err}
	}
}

func (m menuModel) fetchBacklog() tea.Cmd {
	return func() tea.Msg {
		items, err := m.client.ListBacklog(m.ctx)
		return backlogMsg{items: items, err: err}
	}
}

func (m menuModel) suggest() tea.Cmd {
	return func() tea.Msg {
		item, err := m.client.RandomBacklog(m.ctx)
		if client.IsNotFound(err) {
			return resultMsg{lines: []string{mutedStyle.Render("No backlog items to suggest.")}}
		}
		if err != nil {
			return resultMsg{err: err}
		}
		return resultMsg{lines: []string{"Suggested focus from backlog:", itemLine(item)}}
	}
}

func (m menuModel) create(req client.CreateItemRequest) tea.Cmd {
	return func() tea.Msg {
		item, err := m.client.Create(m.ctx, req)
		if err != nil {
			return resultMsg{err: fmt.Errorf("failed to add focus: %w", err)}
		}
		return resultMsg{lines: []string{successStyle.Render("✔ Focus added."), itemLine(item)}}
	}
}

func (m menuModel) updateStatus(id int64, status string) tea.Cmd {
	return func() tea.Msg {
		if err := m.client.UpdateStatus(m.ctx, id, status); err != nil {
			return resultMsg{err: fmt.Errorf("failed to update status: %w", err)}
		}
		return resultMsg{lines: []string{successStyle.Render("✔ Status updated.")}}
	}
}

func (m menuModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("NonBon (Not Another New Backlog)"))
	b.WriteString("\n\n")

	switch m.state {
	case stateMenu:
		for i, opt := range menuOptions {
			line := fmt.Sprintf("%d) %s", i+1, opt)
			if i == m.cursor {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("  0) Exit\n")
	case stateTitle:
		b.WriteString(m.ti.View() + "\n")
	case stateArea:
		b.WriteString("Area:\n")
		writeChoices(&b, areaChoices)
		b.WriteString(helpStyle.Render("any other key: Other") + "\n")
	case stateCreateStatus:
		b.WriteString("Status:\n")
		writeChoices(&b, statusChoices)
		b.WriteString(helpStyle.Render("any other key: Backlog") + "\n")
	case statePickItem:
		b.WriteString("Select an item from the backlog:\n")
		for i, item := range m.backlog {
			line := fmt.Sprintf("%d) %s [%s]", i+1, item.Title, item.Area)
			if i == m.cursor {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line + "\n")
		}
	case statePickStatus:
		fmt.Fprintf(&b, "Select the status for %q:\n", m.picked.Title)
		writeChoices(&b, []string{"Move to Backlog", "Move to Active", "Move to Done"})
	}

	if m.busy {
		b.WriteString("\n" + mutedStyle.Render("working...") + "\n")
	}
	if len(m.output) > 0 {
		b.WriteString("\n" + panelStyle.Render(strings.Join(m.output, "\n")) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("↑/↓ move • enter select • esc back • q quit"))
	return b.String()
}

func writeChoices(b *strings.Builder, choices []string) {
	for i, choice := range choices {
		fmt.Fprintf(b, "  %d) %s\n", i+1, choice)
	}
}
