package display

import (
	"fmt"
	"time"

	"github.com/bnema/poe2-chicken-bot/internal/domain"
	"github.com/bnema/poe2-chicken-bot/internal/ports"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const statusHistory = 5

type valueMsg struct {
	key   domain.ResourceKey
	value int64
}

type escapeMsg struct {
	escaped bool
}

type statusMsg struct {
	text     string
	severity ports.Severity
	at       time.Time
}

type startResultMsg struct {
	err error
}

// Dashboard is a live bubbletea view of the running session. It doubles
// as the DisplaySink: monitor updates arrive as program messages, so the
// polling goroutine never blocks on the terminal.
type Dashboard struct {
	selected  domain.ResourceKey
	threshold string
	program   *tea.Program
}

var _ ports.DisplaySink = (*Dashboard)(nil)

func NewDashboard(selected domain.ResourceKey, thresholdText string, start func() error, stop func()) *Dashboard {
	d := &Dashboard{
		selected:  selected,
		threshold: thresholdText,
	}
	d.program = tea.NewProgram(newDashboardModel(selected, thresholdText, start, stop))
	return d
}

// Run blocks until the user quits the dashboard.
func (d *Dashboard) Run() error {
	_, err := d.program.Run()
	return err
}

func (d *Dashboard) SelectedResource() domain.ResourceKey {
	return d.selected
}

func (d *Dashboard) ThresholdText() string {
	return d.threshold
}

func (d *Dashboard) SetCurrentValue(key domain.ResourceKey, value int64) {
	d.program.Send(valueMsg{key: key, value: value})
}

func (d *Dashboard) SetEscaped(escaped bool) {
	d.program.Send(escapeMsg{escaped: escaped})
}

func (d *Dashboard) ReportStatus(msg string, severity ports.Severity) {
	d.program.Send(statusMsg{text: msg, severity: severity, at: time.Now()})
}

type dashboardStyles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	escaped lipgloss.Style
	calm    lipgloss.Style
	info    lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	help    lipgloss.Style
}

func newDashboardStyles() dashboardStyles {
	return dashboardStyles{
		title:   lipgloss.NewStyle().Bold(true),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		value:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		escaped: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		calm:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		info:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		err:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		help:    lipgloss.NewStyle().Faint(true),
	}
}

type dashboardModel struct {
	selected  domain.ResourceKey
	threshold string
	start     func() error
	stop      func()

	spinner  spinner.Model
	attached bool
	startErr error
	value    int64
	hasValue bool
	escaped  bool
	statuses []statusMsg
	styles   dashboardStyles
}

func newDashboardModel(selected domain.ResourceKey, thresholdText string, start func() error, stop func()) dashboardModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return dashboardModel{
		selected:  selected,
		threshold: thresholdText,
		start:     start,
		stop:      stop,
		spinner:   s,
		styles:    newDashboardStyles(),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			return startResultMsg{err: m.start()}
		},
	)
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case startResultMsg:
		if msg.err != nil {
			m.startErr = msg.err
			return m, tea.Quit
		}
		m.attached = true
		return m, nil
	case valueMsg:
		m.value = msg.value
		m.hasValue = true
		return m, nil
	case escapeMsg:
		m.escaped = msg.escaped
		return m, nil
	case statusMsg:
		m.statuses = append(m.statuses, msg)
		if len(m.statuses) > statusHistory {
			m.statuses = m.statuses[len(m.statuses)-statusHistory:]
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.stop()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.startErr != nil {
		return m.styles.err.Render("start failed: "+m.startErr.Error()) + "\n"
	}

	lines := []string{
		m.styles.title.Render("PoE2 Chicken Bot"),
	}

	if !m.attached {
		lines = append(lines, m.spinner.View()+m.styles.label.Render(" attaching..."))
	} else {
		current := "-"
		if m.hasValue {
			current = fmt.Sprintf("%d", m.value)
		}
		lines = append(lines,
			m.styles.label.Render(m.selected.Label()+": ")+m.styles.value.Render(current),
			m.styles.label.Render("Threshold: ")+m.styles.info.Render(m.threshold),
			m.styles.label.Render("Escaped?: ")+m.renderEscaped(),
		)
	}

	for _, status := range m.statuses {
		style := m.styles.info
		switch status.severity {
		case ports.SeverityWarn:
			style = m.styles.warn
		case ports.SeverityError:
			style = m.styles.err
		}
		lines = append(lines, m.styles.label.Render(status.at.Format("15:04:05")+" ")+style.Render(status.text))
	}

	lines = append(lines, m.styles.help.Render("q to quit"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func (m dashboardModel) renderEscaped() string {
	if m.escaped {
		return m.styles.escaped.Render("Yes")
	}
	return m.styles.calm.Render("No")
}
