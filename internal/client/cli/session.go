package cli

import (
	"context"
	"fmt"
)

// Login starts a session for the user named in args or asked for
// interactively.
func (a *App) Login(ctx context.Context, args []string) error {
	var user string
	if len(args) > 0 {
		user = args[0]
	} else {
		var err error
		if user, err = GetSimpleText(a.reader, "User id"); err != nil {
			return err
		}
	}

	token, err := a.sessions.Issue(user)
	if err != nil {
		return err
	}
	p, err := a.sessions.Principal(token)
	if err != nil {
		return err
	}

	a.token, a.userName = token, p.ID
	a.logger.Info(ctx, "logged in", "user", p.ID)
	fmt.Fprintf(a.out, "Logged in as %s\n", p.ID)
	return nil
}

// Logout drops the session.
func (a *App) Logout(ctx context.Context) error {
	a.logger.Info(ctx, "logged out", "user", a.userName)
	a.token, a.userName = "", ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
