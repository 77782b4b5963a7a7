package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ramanasai/journal/internal/app"
	"github.com/ramanasai/journal/internal/config"
	"github.com/ramanasai/journal/internal/notify"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	dataDir    string
	noColor    bool
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func NewRootCmd() *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   "journal",
		Short: "A daily journal for the terminal",
		Long: `Capture your thoughts, one entry at a time.

Run without a command to open the full-screen journal.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, g)
		},
	}

	root.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default ~/.config/journal/config.yaml)")
	root.PersistentFlags().StringVar(&g.dataDir, "data-dir", "", "Directory holding the journal database")
	root.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newTUICmd(g),
		newNewCmd(g),
		newListCmd(g),
		newShowCmd(g),
		newEditCmd(g),
		newDeleteCmd(g),
		newThemeCmd(g),
		newRemindCmd(g),
		newVersionCmd(),
	)
	return root
}

func (g *globalOptions) loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if g.configPath != "" {
		cfg, err = config.LoadFile(g.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}
	if d := strings.TrimSpace(g.dataDir); d != "" {
		cfg.DataDir = d
	}
	return cfg, nil
}

// openApp loads config and both stores; store notifications are printed to
// the command's output.
func (g *globalOptions) openApp(cmd *cobra.Command, opts ...app.Option) (*app.App, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	opts = append([]app.Option{app.WithNotifier(notify.Writer{W: cmd.OutOrStdout(), Color: g.color()})}, opts...)
	return app.Open(cmd.Context(), cfg, opts...)
}

func (g *globalOptions) color() bool {
	return !g.noColor && os.Getenv("NO_COLOR") == ""
}
