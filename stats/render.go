package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/readtime/internal/timeutil"
	"github.com/ayoisaiah/readtime/internal/ui"
)

const (
	barChartChar  = "▇"
	noSessionsMsg = "No reading recorded in this week"
	dayLabel      = "Mon Jan 02"
)

// FormatMinutes renders a minute count as "1h 05m" or "42m".
func FormatMinutes(minutes float64) string {
	hrs, mins := timeutil.MinsToHoursAndMins(timeutil.Round(minutes))
	if hrs == 0 {
		return fmt.Sprintf("%dm", mins)
	}

	return fmt.Sprintf("%dh %02dm", hrs, mins)
}

func getSummary(week Week) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s\n", ui.Blue("Summary")))
	b.WriteString(fmt.Sprintf(
		"Time read: %s\n",
		ui.Green(FormatMinutes(week.TotalMinutes())),
	))
	b.WriteString(fmt.Sprintf(
		"Daily average: %s\n",
		ui.Green(FormatMinutes(week.AverageMinutesPerDay())),
	))
	b.WriteString(fmt.Sprintf(
		"Daily goal: %s\n",
		ui.Green(FormatMinutes(week.GoalMinutes)),
	))
	b.WriteString(fmt.Sprintf(
		"Goal achievement: %s (%d of %d days)\n",
		ui.Green(fmt.Sprintf("%d%%", week.GoalAchievementRate())),
		week.DaysAtGoal(),
		len(week.Days),
	))
	b.WriteString(fmt.Sprintf(
		"Average progress: %s\n",
		ui.Green(fmt.Sprintf("%d%%", timeutil.Round(week.AverageProgress()*100))),
	))

	if best, err := week.BestDay(); err == nil && best.MinutesRead > 0 {
		b.WriteString(fmt.Sprintf(
			"Best day: %s (%s)\n",
			ui.Green(best.Date.Format(dayLabel)),
			FormatMinutes(best.MinutesRead),
		))
	}

	return b.String()
}

func getBooks(books []BookTotal) string {
	if len(books) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(fmt.Sprintf("\n%s\n", ui.Blue("Books")))

	for _, bt := range books {
		b.WriteString(fmt.Sprintf(
			"%s: %s\n",
			bt.Title,
			ui.Green(FormatMinutes(bt.Minutes)),
		))
	}

	return b.String()
}

func getBarChart(week Week) string {
	header := ui.Blue("\nDaily breakdown (minutes)")

	if week.TotalMinutes() == 0 {
		return header + "\n" + noSessionsMsg
	}

	bars := make(pterm.Bars, 0, len(week.Days))

	for _, d := range week.Days {
		bars = append(bars, pterm.Bar{
			Label: d.Date.Format(dayLabel),
			Value: timeutil.Round(d.MinutesRead),
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + chart
}

// Render prints the weekly report.
func Render(w io.Writer, week Week, books []BookTotal) {
	last := week.StartDate.AddDate(0, 0, len(week.Days)-1)

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln(
			"Reading period: %s - %s",
			week.StartDate.Format("January 02, 2006"),
			last.Format("January 02, 2006"),
		)

	output := fmt.Sprint(
		header,
		getSummary(week),
		getBooks(books),
		getBarChart(week),
	)

	fmt.Fprintln(w, strings.TrimSpace(output))
}
