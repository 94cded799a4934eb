package timer

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/readtime/events"
	"github.com/ayoisaiah/readtime/goal"
	"github.com/ayoisaiah/readtime/internal/timeutil"
)

type (
	tickMsg struct {
		at  time.Time
		gen int
	}

	rolloverMsg struct{}

	eventMsg struct {
		event events.Event
	}

	cmdDoneMsg struct {
		err error
	}

	notifiedMsg struct {
		err error
	}
)

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{at: t, gen: gen}
	})
}

func rolloverCmd() tea.Cmd {
	return tea.Tick(rolloverInterval, func(time.Time) tea.Msg {
		return rolloverMsg{}
	})
}

// waitForEvent delivers the next bus event as a message.
func waitForEvent(ch <-chan events.Event) tea.Cmd {
	if ch == nil {
		return nil
	}

	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}

		return eventMsg{event: e}
	}
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if msg.gen != m.gen || m.tracker.Status() != goal.Active {
		return nil
	}

	dt := msg.at.Sub(m.lastTick)
	m.lastTick = msg.at

	m.state = m.tracker.Tick(m.state, dt)

	m.saver.Do(m.persist)

	return tea.Batch(tickCmd(m.gen), m.checkGoal())
}

// checkGoal sends the goal-reached notification once per day.
func (m *Model) checkGoal() tea.Cmd {
	if !goal.Reached(m.state) || m.notified == m.state.LastResetDate {
		return nil
	}

	m.notified = m.state.LastResetDate
	m.status = "Daily goal reached"

	if !m.cfg.Notifications.Enabled {
		return nil
	}

	title := "Daily reading goal reached"
	body := fmt.Sprintf(
		"You have read %s today",
		timeutil.FormatClock(m.state.AccumulatedSecondsToday),
	)

	return func() tea.Msg {
		return notifiedMsg{err: notify(title, body)}
	}
}

func (m *Model) handleRollover() tea.Cmd {
	before := m.state.LastResetDate

	m.state = m.tracker.Observe(m.state)
	if m.state.LastResetDate != before {
		m.persist()
	}

	return rolloverCmd()
}

func (m *Model) handleEvent(e events.Event) tea.Cmd {
	switch e := e.(type) {
	case events.DailyProgressReset:
		m.status = "New day, progress reset"
	case events.ReadingProgressUpdated:
		if e.BookID == m.book.ID {
			m.refreshBook()
		}
	}

	return waitForEvent(m.events)
}

func (m *Model) refreshBook() {
	book, err := m.books.Get(m.book.ID)
	if err != nil {
		m.err = err
		return
	}

	m.book = book
}

func (m *Model) start() tea.Cmd {
	if m.book.ID == "" {
		m.status = "No book selected. Add one with `readtime book add`"
		return nil
	}

	state, err := m.tracker.Start(m.state, m.book.ID)
	m.state = state

	if err != nil {
		m.err = err
		return nil
	}

	m.err = nil
	m.status = ""
	m.gen++
	m.lastTick = m.clock.Now()

	return tickCmd(m.gen)
}

func (m *Model) pause() {
	m.state = m.tracker.Pause(m.state)
	m.gen++
	m.status = "Paused. Starting again begins a new session"
	m.persist()
}

func (m *Model) cancel() {
	if m.tracker.Status() != goal.Active {
		return
	}

	m.state = m.tracker.Cancel(m.state)
	m.gen++
	m.status = "Session discarded"
	m.persist()
}

// openPageForm asks for the page the reader stopped on.
func (m *Model) openPageForm() tea.Cmd {
	if m.tracker.Status() != goal.Active {
		m.status = "No session is running"
		return nil
	}

	m.pageInput = strconv.Itoa(m.book.CurrentPage)

	m.pageForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Which page did you stop on? (0-%d)", m.book.TotalPages)).
				Value(&m.pageInput).
				Validate(m.validatePage),
		),
	).WithShowHelp(false)

	return m.pageForm.Init()
}

func (m *Model) validatePage(s string) error {
	page, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}

	return m.books.ValidatePage(m.book.ID, page)
}

// stopAndSave ends the session on page and records it.
func (m *Model) stopAndSave(page int) tea.Cmd {
	state, session, err := m.tracker.StopAndSave(m.ctx, m.state, page)
	m.state = state

	if err != nil {
		m.err = err
		return nil
	}

	m.err = nil
	m.gen++
	m.persist()
	m.refreshBook()

	m.status = fmt.Sprintf(
		"Saved %s of reading",
		timeutil.FormatClock(session.DurationSeconds),
	)

	if m.cfg.Settings.Cmd == "" {
		return nil
	}

	ctx, cmdStr := m.ctx, m.cfg.Settings.Cmd

	return func() tea.Msg {
		return cmdDoneMsg{err: runSessionCmd(ctx, cmdStr)}
	}
}

func (m *Model) quit() tea.Cmd {
	if m.tracker.Status() == goal.Active {
		m.state = m.tracker.Pause(m.state)
	}

	m.gen++
	m.persist()

	return tea.Batch(tea.ClearScreen, tea.Quit)
}

func (m *Model) updatePageForm(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.pageForm = nil
		return nil
	}

	form, cmd := m.pageForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.pageForm = f
	}

	switch m.pageForm.State {
	case huh.StateCompleted:
		m.pageForm = nil
		// the input validator has already accepted the value
		page, _ := strconv.Atoi(strings.TrimSpace(m.pageInput))

		return m.stopAndSave(page)
	case huh.StateAborted:
		m.pageForm = nil
		return nil
	case huh.StateNormal:
	}

	return cmd
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, defaultKeymap.quit):
		return m.quit()

	case key.Matches(msg, defaultKeymap.togglePlay):
		if m.tracker.Status() == goal.Active {
			m.pause()
			return nil
		}

		return m.start()

	case key.Matches(msg, defaultKeymap.save):
		return m.openPageForm()

	case key.Matches(msg, defaultKeymap.cancel):
		m.cancel()
	}

	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, m.handleTick(msg)

	case rolloverMsg:
		return m, m.handleRollover()

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress, _ = progressModel.(progress.Model)

		return m, cmd

	case eventMsg:
		return m, m.handleEvent(msg.event)

	case cmdDoneMsg:
		if msg.err != nil {
			slog.Error("session command failed", slog.Any("error", msg.err))
			m.err = msg.err
		}

		return m, nil

	case notifiedMsg:
		if msg.err != nil {
			slog.Warn("unable to show notification", slog.Any("error", msg.err))
		}

		return m, nil
	}

	slog.Debug(spew.Sdump(msg))

	if m.pageForm != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
			return m, m.quit()
		}

		return m, m.updatePageForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-padding*2-4, maxWidth)
	}

	return m, nil
}
