package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"langlens/internal/app"
	"langlens/internal/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	failureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	diagnosticStyle = lipgloss.NewStyle().
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
	list        list.Model
	failures    int
	diagnostics int
	fileCount   int
	lastUpdate  time.Time
}

type updateMsg struct {
	run report.Run
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
		syntax, imports, structure, diagnostics := msg.run.CountInvalid()
		m.failures = syntax + imports + structure
		m.diagnostics = diagnostics
		m.fileCount = len(msg.run.Files)
		m.lastUpdate = time.Now()
		m.list.SetItems(runItems(msg.run))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func runItems(run report.Run) []list.Item {
	items := []list.Item{}
	for _, f := range run.Files {
		if !f.Analysis.SyntaxValid {
			items = append(items, item{title: "Syntax Failure", desc: f.Path})
		}
		if !f.Analysis.ImportsValid {
			items = append(items, item{title: "Import Convention Failure", desc: f.Path})
		}
		if !f.Analysis.StructureValid {
			items = append(items, item{title: "Structure Failure", desc: f.Path})
		}
		for _, d := range f.Diagnostics {
			items = append(items, item{
				title: "Diagnostic",
				desc:  fmt.Sprintf("%s:%d:%d %s", f.Path, d.Line+1, d.Column+1, d.Message),
			})
		}
	}
	return items
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files",
		m.lastUpdate.Format("15:04:05"), m.fileCount))

	var summary string
	if m.failures == 0 && m.diagnostics == 0 {
		summary = successStyle.Render("✅ All files clean")
	} else {
		summary = fmt.Sprintf("⚠️  %s | %s",
			failureStyle.Render(fmt.Sprintf("%d Failures", m.failures)),
			diagnosticStyle.Render(fmt.Sprintf("%d Diagnostics", m.diagnostics)))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Source Analysis Monitor"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func initialModel() model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Detected Issues"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:       l,
		lastUpdate: time.Now(),
	}
}

func runUI(application *app.App) error {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())

	application.SetUpdateHook(func(run report.Run) {
		p.Send(updateMsg{run: run})
	})

	// Seed the UI with the scan that ran before the watcher started.
	go p.Send(updateMsg{run: application.LastRun()})

	_, err := p.Run()
	return err
}
