package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the snipctl command tree reading prompts from in
// and writing results to out.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	a := newApp(in, out)

	root := &cobra.Command{
		Use:   "snipctl",
		Short: "Command-line client for SnipKeeper",
		Long: `snipctl manages your code snippets on a SnipKeeper server.

Quick Start:
  snipctl register alice          Create an account
  snipctl login alice             Log in and remember the session
  snipctl add -t hello -l go -f main.go
  snipctl list                    Show your snippets`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to JSON config file")
	root.PersistentFlags().StringVarP(&a.serverURL, "server", "s", "", "API base URL, e.g. http://127.0.0.1:5000/api")

	root.AddCommand(
		a.pingCommand(),
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.listCommand(),
		a.showCommand(),
		a.addCommand(),
		a.editCommand(),
		a.deleteCommand(),
		a.profileCommand(),
	)

	return root
}
