package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/readtime/export"
	"github.com/ayoisaiah/readtime/internal/apperr"
	"github.com/ayoisaiah/readtime/internal/config"
	"github.com/ayoisaiah/readtime/internal/models"
	"github.com/ayoisaiah/readtime/stats"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "readtime-app")
	if err != nil {
		panic(err)
	}

	// keep logs and default paths out of the real home directory
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	os.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	xdg.Reload()

	code := m.Run()

	_ = os.RemoveAll(dir)

	os.Exit(code)
}

type cliTest struct {
	dir string
}

func newCLITest(t *testing.T) *cliTest {
	t.Helper()

	return &cliTest{dir: t.TempDir()}
}

// run executes readtime with args against the test's own config and
// database, and returns what was written to config.Stdout.
func (c *cliTest) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	config.Stdout = &out

	t.Cleanup(func() {
		config.Stdout = os.Stdout
		config.Stdin = os.Stdin
	})

	base := []string{
		"readtime",
		"--config", filepath.Join(c.dir, "config.yml"),
		"--db-path", filepath.Join(c.dir, "readtime.db"),
		"--no-color",
	}

	err := Get().Run(append(base, args...))

	return out.String(), err
}

func (c *cliTest) books(t *testing.T) []models.Book {
	t.Helper()

	out, err := c.run(t, "book", "list", "--json")
	require.NoError(t, err)

	var books []models.Book
	require.NoError(t, json.Unmarshal([]byte(out), &books))

	return books
}

func (c *cliTest) snapshot(t *testing.T) export.Snapshot {
	t.Helper()

	out, err := c.run(t, "export", "--format", "json")
	require.NoError(t, err)

	var snap export.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))

	return snap
}

func TestBookLifecycle(t *testing.T) {
	c := newCLITest(t)

	_, err := c.run(t, "book", "add",
		"--title", "The Left Hand of Darkness",
		"--author", "Ursula K. Le Guin",
		"--pages", "304",
	)
	require.NoError(t, err)

	books := c.books(t)
	require.Len(t, books, 1)
	assert.Equal(t, "The Left Hand of Darkness", books[0].Title)
	assert.Equal(t, 304, books[0].TotalPages)
	assert.Zero(t, books[0].CurrentPage)

	_, err = c.run(t, "book", "progress", shortID(books[0].ID), "120")
	require.NoError(t, err)
	assert.Equal(t, 120, c.books(t)[0].CurrentPage)

	_, err = c.run(t, "book", "progress", "left hand", "305")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, 120, c.books(t)[0].CurrentPage)

	_, err = c.run(t, "book", "note", "darkness", "Genly", "meets", "Estraven")
	require.NoError(t, err)

	notes := c.books(t)[0].Notes
	require.Len(t, notes, 1)
	assert.Equal(t, "Genly meets Estraven", notes[0].Content)

	out, err := c.run(t, "book", "search", "--json", "GUIN")
	require.NoError(t, err)
	assert.Contains(t, out, "The Left Hand of Darkness")

	config.Stdin = strings.NewReader("\n")

	_, err = c.run(t, "book", "remove", "darkness")
	require.NoError(t, err)
	assert.Empty(t, c.books(t))
}

func TestBookAddValidation(t *testing.T) {
	c := newCLITest(t)

	_, err := c.run(t, "book", "add", "--title", "Untitled", "--author", "Anon")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	_, err = c.run(t, "book", "add",
		"--title", "Untitled",
		"--author", "Anon",
		"--pages", "10",
		"--pdf", filepath.Join(c.dir, "book.pdf"),
	)
	require.ErrorIs(t, err, errPageCount)
}

func TestUnknownBook(t *testing.T) {
	c := newCLITest(t)

	_, err := c.run(t, "book", "progress", "nothing", "1")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestBookListRejectsUnknownSort(t *testing.T) {
	c := newCLITest(t)

	_, err := c.run(t, "book", "list", "--sort", "colour")
	require.ErrorIs(t, err, errSortOrder)
}

func TestGoalSet(t *testing.T) {
	c := newCLITest(t)

	assert.InDelta(t, 30, c.snapshot(t).Goal.DailyGoalMinutes, 1e-9)

	_, err := c.run(t, "goal", "set", "45")
	require.NoError(t, err)
	assert.InDelta(t, 45, c.snapshot(t).Goal.DailyGoalMinutes, 1e-9)

	_, err = c.run(t, "goal", "set", "0")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	_, err = c.run(t, "goal", "set", "lots")
	require.ErrorIs(t, err, errNotANumber)

	out, err := c.run(t, "goal")
	require.NoError(t, err)
	assert.Contains(t, out, "45m")
}

func TestAccount(t *testing.T) {
	c := newCLITest(t)

	out, err := c.run(t, "account", "show")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = c.run(t, "account", "signin")
	require.ErrorIs(t, err, errSignIn)

	_, err = c.run(t, "account", "signin",
		"--user-id", "u-42",
		"--name", "Ada",
	)
	require.NoError(t, err)

	snap := c.snapshot(t)
	require.NotNil(t, snap.Identity)
	assert.Equal(t, "u-42", snap.Identity.UserID)

	out, err = c.run(t, "account", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "User: u-42")
	assert.Contains(t, out, "Name: Ada")

	_, err = c.run(t, "account", "signout")
	require.NoError(t, err)
	assert.Nil(t, c.snapshot(t).Identity)
}

func TestLogAndStatsOnEmptyData(t *testing.T) {
	c := newCLITest(t)

	out, err := c.run(t, "log", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)

	_, err = c.run(t, "log", "--period", "fortnight")
	require.ErrorIs(t, err, errPeriod)

	out, err = c.run(t, "stats", "--json", "--date", "2026-10-18")
	require.NoError(t, err)

	var report stats.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Zero(t, report.TotalMinutes)
	assert.Len(t, report.Week.Days, 7)
	assert.Equal(t, 18, report.Week.Days[6].Date.Day())
}

func TestExportYAML(t *testing.T) {
	c := newCLITest(t)

	_, err := c.run(t, "book", "add",
		"--title", "Kindred",
		"--author", "Octavia E. Butler",
		"--pages", "264",
	)
	require.NoError(t, err)

	out, err := c.run(t, "export", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "title: Kindred")

	_, err = c.run(t, "export", "--format", "csv")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "0190a1b2", shortID("0190a1b2-7c3d-4e5f"))
}
