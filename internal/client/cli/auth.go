package cli

import (
	"errors"

	"github.com/dmitrijs2005/snipkeeper/internal/client/models"
	"github.com/spf13/cobra"
)

func (a *App) credentials(args []string) (string, string, error) {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		var err error
		if username, err = GetSimpleText(a.reader, "Username", a.out); err != nil {
			return "", "", err
		}
	}
	if username == "" {
		return "", "", errors.New("username is required")
	}

	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return "", "", err
	}
	if password == "" {
		return "", "", errors.New("password is required")
	}
	return username, password, nil
}

func (a *App) pingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := a.api.Ping(cmd.Context())
			if err != nil {
				return a.explain(err)
			}
			a.printf("%s\n", msg)
			return nil
		},
	}
}

func (a *App) registerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register [username]",
		Short: "Create an account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, password, err := a.credentials(args)
			if err != nil {
				return err
			}

			u, err := a.api.Register(cmd.Context(), username, password)
			if err != nil {
				return a.explain(err)
			}
			a.printf("Registered %s (%s)\n", u.Username, u.ID)
			return nil
		},
	}
}

func (a *App) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login [username]",
		Short: "Log in and store the session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, password, err := a.credentials(args)
			if err != nil {
				return err
			}

			token, u, err := a.api.Login(cmd.Context(), username, password)
			if err != nil {
				return a.explain(err)
			}

			sess := &models.Session{ServerURL: a.config.ServerURL, AccessToken: token, User: *u}
			if err := a.sessions.Save(sess); err != nil {
				return err
			}
			a.printf("Logged in as %s\n", displayName(u))
			return nil
		},
	}
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sessions.Clear(); err != nil {
				return err
			}
			a.printf("Logged out\n")
			return nil
		},
	}
}

func (a *App) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.authorize(); err != nil {
				return err
			}
			u, err := a.api.Profile(cmd.Context())
			if err != nil {
				return a.explain(err)
			}
			a.printUser(u)
			return nil
		},
	}
}

func displayName(u *models.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

func (a *App) printUser(u *models.User) {
	a.printf("ID:       %s\n", u.ID)
	a.printf("Username: %s\n", u.Username)
	if u.DisplayName != "" {
		a.printf("Name:     %s\n", u.DisplayName)
	}
	if u.HasAvatar {
		a.printf("Avatar:   %s/user/profile-picture/%s\n", a.config.ServerURL, u.ID)
	}
}
