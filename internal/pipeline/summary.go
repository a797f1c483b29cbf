package pipeline

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"selfplay-gen/internal/scale"
)

var (
	planBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	planTitleStyle = lipgloss.NewStyle().Bold(true)
	planLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderPlan shows the operator what the run will look like before any game
// is played.
func renderPlan(runID string, nps int64, tc scale.TimeControl, est scale.Estimate, concurrency int) string {
	var b strings.Builder
	b.WriteString(planTitleStyle.Render("Run plan "+runID) + "\n")
	line := func(label, value string) {
		b.WriteString(planLabelStyle.Render(fmt.Sprintf("%-16s", label)) + value + "\n")
	}
	line("measured speed", fmt.Sprintf("%d nps", nps))
	line("time control", tc.String())
	line("game length", fmt.Sprintf("~%.1f s", float64(est.GameLengthMs)/1000))
	line("throughput", fmt.Sprintf("~%d games/hour at concurrency 1", est.GamesPerHour))
	if concurrency > 1 {
		line("", fmt.Sprintf("~%d games/hour at concurrency %d", est.GamesPerHour*int64(concurrency), concurrency))
	}
	return planBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
