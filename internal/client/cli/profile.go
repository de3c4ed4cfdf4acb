package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/snipkeeper/internal/client/models"
	"github.com/spf13/cobra"
)

func (a *App) profileCommand() *cobra.Command {
	var name, avatar string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
		Long: `Without flags, prints the current profile. With --name or --avatar,
updates it.

Examples:
  snipctl profile
  snipctl profile --name "Alice" --avatar ./me.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.authorize()
			if err != nil {
				return err
			}

			if name == "" && avatar == "" {
				u, err := a.api.Profile(cmd.Context())
				if err != nil {
					return a.explain(err)
				}
				a.printUser(u)
				return nil
			}

			upd := models.ProfileUpdate{DisplayName: name}
			if avatar != "" {
				data, err := os.ReadFile(avatar)
				if err != nil {
					return fmt.Errorf("read %s: %w", avatar, err)
				}
				if len(data) == 0 {
					return errors.New("avatar file is empty")
				}
				upd.Avatar = data
				upd.AvatarName = filepath.Base(avatar)
			}

			u, err := a.api.UpdateProfile(cmd.Context(), upd)
			if err != nil {
				return a.explain(err)
			}

			// Token claims keep the old profile; keep the local copy fresh.
			sess.User = *u
			if err := a.sessions.Save(sess); err != nil {
				return err
			}

			a.printf("Profile updated\n")
			a.printUser(u)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new display name")
	cmd.Flags().StringVarP(&avatar, "avatar", "a", "", "path to a new profile picture")
	return cmd
}
