package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ramanasai/journal/internal/journal"
	"github.com/ramanasai/journal/internal/render"
	"github.com/spf13/cobra"
)

var errNotFound = errors.New("entry not found")

func newNewCmd(g *globalOptions) *cobra.Command {
	var title, content string

	c := &cobra.Command{
		Use:     "new [content...]",
		Aliases: []string{"add"},
		Short:   "Write a new entry",
		Long: `Examples:
	journal new -t "Morning" "Coffee on the balcony"
	journal new -t "Notes" -m "Read two chapters"
	echo "long thoughts" | journal new -t "Evening" -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("content") {
				content = strings.Join(args, " ")
			}
			text, err := readDash(cmd.InOrStdin(), content)
			if err != nil {
				return err
			}

			a, err := g.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			e, err := a.Entries.Create(cmd.Context(), title, text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.ID)
			return nil
		},
	}
	c.Flags().StringVarP(&title, "title", "t", "", "Entry title")
	c.Flags().StringVarP(&content, "content", "m", "", "Entry content (- reads stdin)")
	return c
}

func newListCmd(g *globalOptions) *cobra.Command {
	var (
		format string
		limit  int
		hideID bool
	)

	c := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List entries, newest first",
		Long: `Examples:
	journal list
	journal list --format compact --limit 10
	journal list --format json > backup.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			a, err := g.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			entries := a.Entries.ListSortedByRecency()
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}

			rc := render.DefaultConfig()
			rc.Format = f
			rc.Color = g.color()
			rc.Dark = a.Theme.IsDark()
			rc.ShowID = !hideID

			out, err := render.NewRenderer(rc).Entries(entries)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	c.Flags().StringVarP(&format, "format", "f", "default", "Output format: default, json, compact, quiet")
	c.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most n entries (0 = all)")
	c.Flags().BoolVar(&hideID, "no-id", false, "Hide entry ids")
	return c
}

func newShowCmd(g *globalOptions) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			a, err := g.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			e, ok := a.Entries.Get(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", errNotFound, args[0])
			}

			rc := render.DefaultConfig()
			rc.Format = f
			rc.Color = g.color()
			rc.Dark = a.Theme.IsDark()

			r := render.NewRenderer(rc)
			if f != render.FormatDefault {
				out, err := r.Entries([]journal.Entry{e})
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.Entry(e))
			return nil
		},
	}
	c.Flags().StringVarP(&format, "format", "f", "default", "Output format: default, json, compact, quiet")
	return c
}

func newEditCmd(g *globalOptions) *cobra.Command {
	var title, content string

	c := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title or content of an entry",
		Long: `Flags that are not given keep the current value.

Examples:
	journal edit 0192... -t "Better title"
	cat draft.txt | journal edit 0192... -m -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			titleSet := cmd.Flags().Changed("title")
			contentSet := cmd.Flags().Changed("content")
			if !titleSet && !contentSet {
				return errors.New("nothing to change: pass --title and/or --content")
			}

			a, err := g.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			e, ok := a.Entries.Get(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", errNotFound, args[0])
			}
			if titleSet {
				e.Title = title
			}
			if contentSet {
				text, err := readDash(cmd.InOrStdin(), content)
				if err != nil {
					return err
				}
				e.Content = text
			}

			_, _, err = a.Entries.Update(cmd.Context(), e.ID, e.Title, e.Content)
			return err
		},
	}
	c.Flags().StringVarP(&title, "title", "t", "", "New title")
	c.Flags().StringVarP(&content, "content", "m", "", "New content (- reads stdin)")
	return c
}

func newDeleteCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete entries",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			for _, id := range args {
				if _, err := a.Entries.Delete(cmd.Context(), id); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// readDash returns s, or all of r when s is "-".
func readDash(r io.Reader, s string) (string, error) {
	if strings.TrimSpace(s) != "-" {
		return s, nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}
