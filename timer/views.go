package timer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/readtime/goal"
	"github.com/ayoisaiah/readtime/internal/timeutil"
)

var (
	baseStyle    = lipgloss.NewStyle().Padding(1, padding)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mainStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFDF5"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"})
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	secondaryCol = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#A8A8A8"}
)

func (m *Model) bookView() string {
	if m.book.ID == "" {
		return hintStyle.Render("No book selected")
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render(m.book.Title))

	if m.book.Author != "" {
		s.WriteString(
			lipgloss.NewStyle().Foreground(secondaryCol).Render(" by " + m.book.Author),
		)
	}

	s.WriteString("\n")
	s.WriteString(hintStyle.Render(
		fmt.Sprintf("Page %d of %d", m.book.CurrentPage, m.book.TotalPages),
	))

	return s.String()
}

// goalView shows today's total against the daily goal.
func (m *Model) goalView() string {
	var s strings.Builder

	s.WriteString(fmt.Sprintf(
		"%s  %s",
		mainStyle.Render(timeutil.FormatClock(m.state.AccumulatedSecondsToday)),
		hintStyle.Render(fmt.Sprintf(
			"%d/%d min today",
			int(m.state.AccumulatedSecondsToday/60),
			timeutil.Round(m.state.DailyGoalMinutes),
		)),
	))
	s.WriteString("\n\n")
	s.WriteString(m.progress.ViewAs(goal.Progress(m.state)))

	return s.String()
}

func (m *Model) sessionView() string {
	label := pausedStyle.Render("[Idle]")
	if m.tracker.Status() == goal.Active {
		label = activeStyle.Render("[Reading]")
	}

	return fmt.Sprintf(
		"%s session %s",
		label,
		timeutil.FormatClock(m.tracker.Elapsed().Seconds()),
	)
}

func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(m.bookView())
	s.WriteString("\n\n")
	s.WriteString(m.goalView())
	s.WriteString("\n\n")
	s.WriteString(m.sessionView())

	if m.status != "" {
		s.WriteString("\n\n" + hintStyle.Render(m.status))
	}

	if m.err != nil {
		s.WriteString("\n\n" + errorStyle.Render(m.err.Error()))
	}

	if m.pageForm != nil {
		s.WriteString("\n\n" + m.pageForm.View())
	} else {
		s.WriteString("\n\n" + m.help.ShortHelpView(defaultKeymap.ShortHelp()))
	}

	return baseStyle.Render(s.String())
}
