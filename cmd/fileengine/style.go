package main

import (
	"strings"

	"github.com/GriffinCanCode/fileengine/internal/engine"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	deniedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	detailStyle  = lipgloss.NewStyle().PaddingLeft(2)
)

func styleFor(kind engine.OutcomeKind) lipgloss.Style {
	switch kind {
	case engine.OutcomeSuccess:
		return successStyle
	case engine.OutcomeNotice:
		return noticeStyle
	case engine.OutcomeDenied:
		return deniedStyle
	default:
		return errorStyle
	}
}

// render formats an outcome for the terminal: the message, then any detail
// lines indented below it.
func render(out engine.Outcome) string {
	var b strings.Builder
	b.WriteString(styleFor(out.Kind).Render(out.Message))
	for _, line := range out.Lines {
		b.WriteByte('\n')
		b.WriteString(detailStyle.Render(line))
	}
	return b.String()
}
