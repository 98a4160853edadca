package rendering

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/skillscan/internal/scoring"
	"github.com/jonathan/skillscan/internal/types"
)

// Palette
var (
	Primary = lipgloss.Color("#7C3AED")
	Accent  = lipgloss.Color("#10B981")
	Muted   = lipgloss.Color("#6B7280")
	Warning = lipgloss.Color("#F59E0B")
	Danger  = lipgloss.Color("#EF4444")
)

var (
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	weekStyle     = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	labelStyle    = lipgloss.NewStyle().Bold(true)
	sectionStyle  = lipgloss.NewStyle().Underline(true)
	resourceStyle = lipgloss.NewStyle().Foreground(Muted)
	boldStyle     = lipgloss.NewStyle().Bold(true)
)

// Terminal renders classified blocks as styled terminal text, one line per block.
func Terminal(blocks []types.Block) string {
	lines := make([]string, len(blocks))
	for i, b := range blocks {
		lines[i] = terminalLine(b)
	}
	return strings.Join(lines, "\n")
}

func terminalLine(b types.Block) string {
	switch b.Kind {
	case types.KindHeading:
		return headingStyle.Render(b.Text)
	case types.KindWeekHeader:
		return weekStyle.Render(fmt.Sprintf("Week %d", b.WeekNumber)) + "  " + b.Title
	case types.KindLabeledField:
		return labelStyle.Render(b.Label+":") + " " + b.Content
	case types.KindSectionLabel:
		return sectionStyle.Render(b.Text)
	case types.KindResourceItem:
		return "  • " + resourceStyle.Render("["+string(b.Resource)+"]") + " " + b.Content
	case types.KindBulletItem:
		return "  • " + b.Content
	case types.KindNumberedItem:
		return fmt.Sprintf("  %d. %s", b.Index, b.Content)
	case types.KindBlank:
		return ""
	default:
		return b.Text
	}
}

// TerminalAnalysis renders an analysis report with bold spans styled.
func TerminalAnalysis(text string) string {
	parsed := ParseAnalysis(text)
	lines := make([]string, len(parsed))
	for i, line := range parsed {
		switch line.Kind {
		case AnalysisHeading:
			lines[i] = headingStyle.Render(line.Text)
		case AnalysisSection:
			lines[i] = weekStyle.Render(fmt.Sprintf("%d.", line.Number)) + " " + boldStyle.Render(line.Text)
		default:
			var sb strings.Builder
			for _, span := range line.Spans {
				if span.Bold {
					sb.WriteString(boldStyle.Render(span.Text))
				} else {
					sb.WriteString(span.Text)
				}
			}
			lines[i] = sb.String()
		}
	}
	return strings.Join(lines, "\n")
}

// ScoreColor returns the colour of a score's band.
func ScoreColor(score int) lipgloss.Color {
	switch scoring.BandFor(score) {
	case scoring.BandHigh:
		return Accent
	case scoring.BandMedium:
		return Warning
	default:
		return Danger
	}
}

// TerminalScores renders a score bundle as labelled, colour-banded lines.
func TerminalScores(b types.ScoreBundle) string {
	rows := []struct {
		label string
		score int
	}{
		{"Overall ATS Score", b.Overall},
		{"Relevance", b.Relevance},
		{"Keywords Match", b.KeywordsMatch},
		{"Skills Match", b.SkillsMatch},
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		value := lipgloss.NewStyle().Bold(true).Foreground(ScoreColor(row.score)).Render(fmt.Sprintf("%3d/100", row.score))
		lines[i] = fmt.Sprintf("%-18s %s", row.label, value)
	}
	return strings.Join(lines, "\n")
}
