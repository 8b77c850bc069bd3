package cli

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#D97706") // amber
	dim     = lipgloss.Color("#6B7280") // muted gray
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red

	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle     = lipgloss.NewStyle().Foreground(dim)
	successStyle = lipgloss.NewStyle().Foreground(success)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(danger)

	statusColors = map[string]lipgloss.Color{
		"new":       accent,
		"new_paid":  success,
		"completed": success,
		"cancelled": danger,
		"refund":    danger,
	}
)

// renderStatus colors a wire status; cancellation reasons share the
// cancelled color.
func renderStatus(status string) string {
	color, ok := statusColors[status]
	if !ok {
		if len(status) > 7 && status[:7] == "cancel_" {
			color = danger
		} else {
			color = dim
		}
	}
	return lipgloss.NewStyle().Foreground(color).Render(status)
}
