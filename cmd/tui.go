package cmd

import (
	"github.com/ramanasai/journal/internal/app"
	"github.com/ramanasai/journal/internal/notify"
	"github.com/ramanasai/journal/internal/ui"
	"github.com/spf13/cobra"
)

func newTUICmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the full-screen journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, g)
		},
	}
}

func runTUI(cmd *cobra.Command, g *globalOptions) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	rec := &notify.Recorder{}
	a, err := app.Open(cmd.Context(), cfg, app.WithNotifier(rec))
	if err != nil {
		return err
	}
	defer a.Close()
	return ui.Run(cmd.Context(), a.Entries, a.Theme, rec)
}
