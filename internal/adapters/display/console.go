// Package display provides the DisplaySink implementations standing in
// for the original desktop form: a line-oriented console sink and a live
// bubbletea dashboard.
package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/bnema/poe2-chicken-bot/internal/domain"
	"github.com/bnema/poe2-chicken-bot/internal/ports"
	"github.com/charmbracelet/lipgloss"
)

type consoleStyles struct {
	timestamp lipgloss.Style
	info      lipgloss.Style
	warn      lipgloss.Style
	err       lipgloss.Style
	value     lipgloss.Style
	escaped   lipgloss.Style
}

func newConsoleStyles() consoleStyles {
	return consoleStyles{
		timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		info:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		err:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		value:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		escaped:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}

// ConsoleSink prints timestamped status lines and value/escape changes.
// The monitor samples every 50 ms, so value and escape updates are only
// printed when they change.
type ConsoleSink struct {
	out       io.Writer
	clock     ports.Clock
	styles    consoleStyles
	selected  domain.ResourceKey
	threshold string

	mu        sync.Mutex
	lastValue int64
	hasValue  bool
	escaped   bool
}

var _ ports.DisplaySink = (*ConsoleSink)(nil)

func NewConsoleSink(out io.Writer, selected domain.ResourceKey, thresholdText string, clock ports.Clock) *ConsoleSink {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &ConsoleSink{
		out:       out,
		clock:     clock,
		styles:    newConsoleStyles(),
		selected:  selected,
		threshold: thresholdText,
	}
}

func (c *ConsoleSink) SelectedResource() domain.ResourceKey {
	return c.selected
}

func (c *ConsoleSink) ThresholdText() string {
	return c.threshold
}

func (c *ConsoleSink) SetCurrentValue(key domain.ResourceKey, value int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hasValue && c.lastValue == value {
		return
	}
	c.lastValue = value
	c.hasValue = true

	c.printLine(c.styles.value.Render(fmt.Sprintf("%s: %d", key.Label(), value)))
}

func (c *ConsoleSink) SetEscaped(escaped bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.escaped == escaped {
		return
	}
	c.escaped = escaped

	label := "No"
	style := c.styles.info
	if escaped {
		label = "Yes"
		style = c.styles.escaped
	}
	c.printLine(style.Render("Escaped?: " + label))
}

func (c *ConsoleSink) ReportStatus(msg string, severity ports.Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	style := c.styles.info
	switch severity {
	case ports.SeverityWarn:
		style = c.styles.warn
	case ports.SeverityError:
		style = c.styles.err
	}
	c.printLine(style.Render(msg))
}

// printLine is called with c.mu held.
func (c *ConsoleSink) printLine(text string) {
	stamp := c.styles.timestamp.Render(c.clock.Now().Format("15:04:05"))
	fmt.Fprintf(c.out, "%s %s\n", stamp, text)
}
