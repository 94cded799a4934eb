// Package export writes a full copy of the user's reading data
package export

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ayoisaiah/readtime/internal/apperr"
	"github.com/ayoisaiah/readtime/internal/models"
	"github.com/ayoisaiah/readtime/store"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var errFormat = &apperr.Error{
	Message: "unknown export format %q: must be json or yaml",
	Kind:    apperr.KindValidation,
}

// Snapshot is everything readtime stores.
type Snapshot struct {
	Identity *models.Identity        `json:"identity,omitempty" yaml:"identity,omitempty"`
	Books    []models.Book           `json:"books" yaml:"books"`
	Sessions []models.ReadingSession `json:"sessions" yaml:"sessions"`
	Goal     models.DailyGoalState   `json:"goal" yaml:"goal"`
}

// Collect loads a Snapshot from db.
func Collect(ctx context.Context, db store.Gateway) (Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)

	snap.Books, err = db.LoadBooks(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	snap.Sessions, err = db.LoadSessions(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	snap.Goal, err = db.LoadGoalState(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	id, err := db.LoadIdentity(ctx)

	switch {
	case err == nil:
		snap.Identity = &id
	case !errors.Is(err, store.ErrNoIdentity):
		return Snapshot{}, err
	}

	return snap, nil
}

// Write encodes snap to w in the given format.
func Write(w io.Writer, snap Snapshot, format Format) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(snap)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(snap); err != nil {
			return err
		}

		return enc.Close()
	default:
		return errFormat.Fmt(format)
	}
}
