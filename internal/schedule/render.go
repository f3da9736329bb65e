package schedule

import (
	"fmt"
	"strings"
)

// Markdown renders the plan as a checklist, one item per line, with an
// optional stats block after a blank line. An empty plan renders as an
// empty string.
func (p Plan) Markdown() string {
	if p.Empty() {
		return ""
	}

	var sb strings.Builder
	for i, line := range p.Lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("- [ ] %s - %s %s", line.Start, line.End, line.Label))
	}

	if p.settings.IncludeStats {
		sb.WriteString("\n\n")
		sb.WriteString(fmt.Sprintf("  Total pomodoros: %d\n", p.Pomodoros))
		sb.WriteString(fmt.Sprintf("  Total work time: %s\n", formatMinutes(p.TotalWorkMinutes)))
		sb.WriteString(fmt.Sprintf("  Total rest time: %s", formatMinutes(p.TotalRestMinutes)))
	}

	return sb.String()
}

// formatMinutes renders a duration as "H hours, M minutes" once it
// reaches an hour, else "M minutes".
func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%d minutes", m)
	}
	if m%60 == 0 {
		return fmt.Sprintf("%d hours", m/60)
	}
	return fmt.Sprintf("%d hours, %d minutes", m/60, m%60)
}
