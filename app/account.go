package app

import (
	"errors"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/readtime/identity"
	"github.com/ayoisaiah/readtime/internal/models"
	"github.com/ayoisaiah/readtime/store"
)

func accountShowAction(ctx *cli.Context) (err error) {
	e, err := openEngine(ctx, false)
	if err != nil {
		return err
	}

	defer closeEngine(e, &err)

	id, err := identity.NewManager(e.db).Current(e.ctx)
	if errors.Is(err, store.ErrNoIdentity) {
		pterm.Info.Println("Not signed in")
		return nil
	}

	if err != nil {
		return err
	}

	printf("User: %s\n", id.UserID)

	if id.DisplayName != "" {
		printf("Name: %s\n", id.DisplayName)
	}

	if id.Email != "" {
		printf("Email: %s\n", id.Email)
	}

	return nil
}

// accountSignInAction stores the identity from --token, or the one given by
// --user-id, --name and --email.
func accountSignInAction(ctx *cli.Context) (err error) {
	var id models.Identity

	switch token := ctx.String("token"); {
	case token != "":
		id, err = identity.FromToken(token)
		if err != nil {
			return err
		}
	case ctx.String("user-id") != "":
		id = models.Identity{
			UserID:      ctx.String("user-id"),
			DisplayName: ctx.String("name"),
			Email:       ctx.String("email"),
		}
	default:
		return errSignIn
	}

	e, err := openEngine(ctx, false)
	if err != nil {
		return err
	}

	defer closeEngine(e, &err)

	if err = identity.NewManager(e.db).SignIn(e.ctx, id); err != nil {
		return err
	}

	pterm.Success.Printfln("Signed in as %s", id.UserID)

	return nil
}

func accountSignOutAction(ctx *cli.Context) (err error) {
	e, err := openEngine(ctx, false)
	if err != nil {
		return err
	}

	defer closeEngine(e, &err)

	if err = identity.NewManager(e.db).SignOut(e.ctx); err != nil {
		return err
	}

	pterm.Success.Println("Signed out")

	return nil
}
