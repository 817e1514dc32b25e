package resources

import (
	"fmt"
	"strings"

	"github.com/bnema/poe2-chicken-bot/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func renderView(specs []domain.ResourceSpec, thresholds map[domain.ResourceKey]int64, s styles) string {
	lines := []string{
		s.title.Render("Configured resources"),
		s.header.Render(fmt.Sprintf("resources: %d", len(specs))),
	}

	if len(specs) == 0 {
		lines = append(lines, s.empty.Render("No resource chains configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, spec := range specs {
		lines = append(lines, s.section.Render(renderResource(spec, thresholds, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderResource(spec domain.ResourceSpec, thresholds map[domain.ResourceKey]int64, s styles) string {
	threshold := spec.Threshold
	if value, ok := thresholds[spec.Key]; ok {
		threshold = value
	}

	parts := []string{
		s.resource.Render(fmt.Sprintf("%s (%s)", spec.Key.Label(), spec.Key)),
		s.detail.Render(fmt.Sprintf("base: 0x%08x", spec.Base)),
		s.offset.Render(fmt.Sprintf("offsets: %s", formatOffsets(spec.Offsets))),
		s.detail.Render(fmt.Sprintf("threshold: %d", threshold)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func formatOffsets(offsets []uint64) string {
	if len(offsets) == 0 {
		return "none"
	}

	fields := make([]string, 0, len(offsets))
	for _, offset := range offsets {
		fields = append(fields, fmt.Sprintf("%#x", offset))
	}

	return strings.Join(fields, " -> ")
}
