package resources

import (
	"errors"
	"io"

	"github.com/bnema/poe2-chicken-bot/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	specs      []domain.ResourceSpec
	thresholds map[domain.ResourceKey]int64
	styles     styles
	output     string
}

func newModel(specs []domain.ResourceSpec, thresholds map[domain.ResourceKey]int64) model {
	return model{
		specs:      specs,
		thresholds: thresholds,
		styles:     newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.specs, m.thresholds, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render formats the configured resource chains as a styled block of text.
// The thresholds map carries the persisted user thresholds; specs whose
// key is missing from it fall back to their configured default.
func Render(specs []domain.ResourceSpec, thresholds map[domain.ResourceKey]int64) (string, error) {
	p := tea.NewProgram(
		newModel(specs, thresholds),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
