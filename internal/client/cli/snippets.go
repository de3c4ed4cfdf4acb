package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/snipkeeper/internal/client/models"
	"github.com/spf13/cobra"
)

// readCode loads code from path, "-" meaning the command's stdin.
func (a *App) readCode(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(a.reader)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func (a *App) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your snippets, most recently updated first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.authorize(); err != nil {
				return err
			}
			list, err := a.api.ListSnippets(cmd.Context())
			if err != nil {
				return a.explain(err)
			}
			if len(list) == 0 {
				a.printf("No snippets yet\n")
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tLANGUAGE\tUPDATED")
			for _, s := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Title, s.Language, s.UpdatedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		},
	}
}

// showCommand prints one snippet. The API has no single-item read, so the
// owner's list is searched.
func (a *App) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a snippet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.authorize(); err != nil {
				return err
			}
			list, err := a.api.ListSnippets(cmd.Context())
			if err != nil {
				return a.explain(err)
			}
			for _, s := range list {
				if s.ID == args[0] {
					a.printf("# %s (%s)\n%s\n", s.Title, s.Language, strings.TrimRight(s.Code, "\n"))
					return nil
				}
			}
			return fmt.Errorf("snippet %s not found", args[0])
		},
	}
}

func (a *App) addCommand() *cobra.Command {
	var title, language, file string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a snippet",
		Long: `Create a snippet. Missing values are prompted for.

Examples:
  snipctl add -t "http server" -l go -f server.go
  cat query.sql | snipctl add -t report -l sql -f -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.authorize(); err != nil {
				return err
			}

			var err error
			if title == "" {
				if title, err = GetSimpleText(a.reader, "Title", a.out); err != nil {
					return err
				}
			}
			if language == "" {
				if language, err = GetSimpleText(a.reader, "Language", a.out); err != nil {
					return err
				}
			}
			var code string
			if file != "" {
				code, err = a.readCode(file)
			} else {
				code, err = GetMultiline(a.reader, "Code", a.out)
			}
			if err != nil {
				return err
			}

			s, err := a.api.CreateSnippet(cmd.Context(), models.NewSnippet{Title: title, Language: language, Code: code})
			if err != nil {
				return a.explain(err)
			}
			a.printf("Created %s\n", s.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "snippet title")
	cmd.Flags().StringVarP(&language, "language", "l", "", "snippet language")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read code from file (\"-\" for stdin)")
	return cmd
}

func (a *App) editCommand() *cobra.Command {
	var title, language, file string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a snippet's title, language or code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ch models.SnippetChanges
			if cmd.Flags().Changed("title") {
				ch.Title = &title
			}
			if cmd.Flags().Changed("language") {
				ch.Language = &language
			}
			if cmd.Flags().Changed("file") {
				code, err := a.readCode(file)
				if err != nil {
					return err
				}
				ch.Code = &code
			}
			if ch.Empty() {
				return errors.New("nothing to change, pass --title, --language or --file")
			}

			if _, err := a.authorize(); err != nil {
				return err
			}
			s, err := a.api.UpdateSnippet(cmd.Context(), args[0], ch)
			if err != nil {
				return a.explain(err)
			}
			a.printf("Updated %s\n", s.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&language, "language", "l", "", "new language")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read new code from file (\"-\" for stdin)")
	return cmd
}

func (a *App) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a snippet",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.authorize(); err != nil {
				return err
			}
			if err := a.api.DeleteSnippet(cmd.Context(), args[0]); err != nil {
				return a.explain(err)
			}
			a.printf("Deleted %s\n", args[0])
			return nil
		},
	}
}
