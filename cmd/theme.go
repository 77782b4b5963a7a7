package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newThemeCmd(g *globalOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "theme",
		Short: "Show or toggle the light/dark theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showTheme(cmd, g)
		},
	}

	c.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the active theme",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return showTheme(cmd, g)
			},
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch between light and dark and remember the choice",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := g.openApp(cmd)
				if err != nil {
					return err
				}
				defer a.Close()

				if _, err := a.Theme.Toggle(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), a.Theme.Name())
				return nil
			},
		},
	)
	return c
}

func showTheme(cmd *cobra.Command, g *globalOptions) error {
	a, err := g.openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	fmt.Fprintln(cmd.OutOrStdout(), a.Theme.Name())
	return nil
}
