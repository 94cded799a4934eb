// Package identity stores the user returned by the external sign-in
// provider. It never authenticates anyone.
package identity

import (
	"context"
	"log/slog"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/ayoisaiah/readtime/internal/apperr"
	"github.com/ayoisaiah/readtime/internal/models"
	"github.com/ayoisaiah/readtime/store"
)

var (
	errToken = &apperr.Error{
		Message: "unable to read identity token",
		Kind:    apperr.KindValidation,
	}

	errNoSubject = &apperr.Error{
		Message: "identity token has no subject",
		Kind:    apperr.KindValidation,
	}

	errNoUserID = &apperr.Error{
		Message: "a user id is required to sign in",
		Kind:    apperr.KindValidation,
	}
)

// FromToken reads the sub, name and email claims of a provider token. The
// signature is not checked.
func FromToken(token string) (models.Identity, error) {
	claims := jwt.MapClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(strings.TrimSpace(token), claims)
	if err != nil {
		return models.Identity{}, errToken.Wrap(err)
	}

	str := func(key string) string {
		v, _ := claims[key].(string)
		return strings.TrimSpace(v)
	}

	id := models.Identity{
		UserID:      str("sub"),
		DisplayName: str("name"),
		Email:       str("email"),
	}

	if id.UserID == "" {
		return models.Identity{}, errNoSubject
	}

	return id, nil
}

// Manager signs users in and out.
type Manager struct {
	db store.IdentityStore
}

func NewManager(db store.IdentityStore) *Manager {
	return &Manager{db: db}
}

// SignIn stores id as the current user.
func (m *Manager) SignIn(ctx context.Context, id models.Identity) error {
	id.UserID = strings.TrimSpace(id.UserID)
	if id.UserID == "" {
		return errNoUserID
	}

	if err := m.db.SaveIdentity(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "signed in", slog.String("user_id", id.UserID))

	return nil
}

func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.db.ClearIdentity(ctx); err != nil {
		return err
	}

	slog.InfoContext(ctx, "signed out")

	return nil
}

// Current returns the signed-in user, or an error matching
// store.ErrNoIdentity.
func (m *Manager) Current(ctx context.Context) (models.Identity, error) {
	return m.db.LoadIdentity(ctx)
}
