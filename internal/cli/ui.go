package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/quantfold/marketagent/internal/agent"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	answerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#10B981")).
			Padding(1, 2).
			Width(80)

	toolCallStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8B5CF6"))

	toolResultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

// RenderStep formats one trace entry for the terminal.
func RenderStep(step agent.Step) string {
	switch step.Kind {
	case agent.StepToolCall:
		call := toolCallStyle.Render(fmt.Sprintf("→ %s(%s)", step.Tool, step.Arguments))
		result := toolResultStyle.Render("  " + truncateLine(step.Result, 200))
		return call + "\n" + result
	case agent.StepFinalAnswer:
		return toolCallStyle.Render("✓ final answer")
	case agent.StepFailure:
		return errorStyle.Render("✗ " + step.Failure)
	default:
		return ""
	}
}

// RenderAnswer formats the final answer box.
func RenderAnswer(answer string) string {
	return answerStyle.Render(answer)
}

// RenderTitle formats the banner above a run.
func RenderTitle(question string) string {
	return titleStyle.Render("marketagent") + " " + question
}

// RenderError formats a terminal failure.
func RenderError(err error) string {
	return errorStyle.Render("error: " + err.Error())
}

// truncateLine flattens s to one line of at most max runes. Cutting on
// byte offsets would split multi-byte characters in tool results.
func truncateLine(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}
