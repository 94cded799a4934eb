package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"

	"github.com/ayoisaiah/readtime/internal/osutil"
)

type GoldenTest interface {
	Output() ([]byte, string)
}

// CompareGoldenFile verifies that the output of an operation matches
// the expected output.
func CompareGoldenFile(t *testing.T, tc GoldenTest) {
	t.Helper()

	if runtime.GOOS == osutil.Windows {
		// TODO: need to sort out line endings
		t.Skip("skipping golden file test in Windows")
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir("testdata"),
	)

	snap, golden := tc.Output()

	if snap != nil {
		g.Assert(t, golden, snap)
		return
	}

	f := filepath.Join("testdata", golden+".golden")
	if _, err := os.Stat(f); err == nil || errors.Is(err, os.ErrExist) {
		t.Fatalf("expected no output, but golden file exists: %s", f)
	}
}

// Golden is a GoldenTest for a fixed output.
type Golden struct {
	Name string
	Data []byte
}

func (g Golden) Output() ([]byte, string) {
	return g.Data, g.Name
}

// FixedClock always reports the same instant.
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.T
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}

// Date returns midnight in the local zone for the given day, offset by h
// hours.
func Date(year int, month time.Month, day, h int) time.Time {
	return time.Date(year, month, day, h, 0, 0, 0, time.Local)
}
