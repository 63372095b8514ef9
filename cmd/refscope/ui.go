// # cmd/refscope/ui.go
package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"refscope/internal/app"
	"refscope/internal/usage"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list       list.Model
	update     app.Update
	lastUpdate time.Time
}

type updateMsg struct {
	update app.Update
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.update = msg.update
		m.lastUpdate = time.Now()

		items := []list.Item{}
		for _, label := range usage.AllLabels() {
			count, ok := m.update.UsageCounts[label]
			if !ok {
				continue
			}
			items = append(items, item{
				title: label,
				desc:  fmt.Sprintf("%d references", count),
			})
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files | %d symbols",
		m.lastUpdate.Format("15:04:05"), m.update.FileCount, m.update.SymbolCount))

	var summary string
	if m.update.ReferenceCount == 0 {
		summary = emptyStyle.Render("No references indexed")
	} else {
		summary = successStyle.Render(fmt.Sprintf("%d references", m.update.ReferenceCount))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Symbol Usage Monitor"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func initialModel() model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Usage Breakdown"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:       l,
		lastUpdate: time.Now(),
	}
}

func runUI(a *app.App) error {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())

	a.SetUpdateHandler(func(update app.Update) {
		p.Send(updateMsg{update: update})
	})

	// Push the initial scan's state before the first change event arrives.
	go p.Send(updateMsg{update: a.CurrentUpdate()})

	_, err := p.Run()
	return err
}
