package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/ramanasai/journal/internal/app"
	"github.com/ramanasai/journal/internal/journal"
	"github.com/ramanasai/journal/internal/notify"
	"github.com/ramanasai/journal/internal/schedule"
	"github.com/spf13/cobra"
)

func newRemindCmd(g *globalOptions) *cobra.Command {
	var once bool

	c := &cobra.Command{
		Use:   "remind",
		Short: "Send a daily desktop reminder to write an entry",
		Long: `Runs in the foreground and sends a desktop notification at reminder.time
on reminder.workdays (see config). Use --once to send one reminder now.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			prompt := func() {
				// reopen so entries written since the last reminder are counted
				a, err := app.Open(cmd.Context(), cfg)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "remind:", err)
					return
				}
				defer a.Close()
				n := countSince(a.Entries.ListSortedByRecency(), startOfDay(time.Now().In(cfg.Location())))
				notify.Desktop{Log: a.Log}.Notify(notify.FormatDailyPrompt(n))
				a.Log.Info("reminder sent", "entries_today", n)
			}

			if once {
				prompt()
				return nil
			}
			if !cfg.Reminder.Enabled {
				return errors.New("reminders are disabled (set reminder.enabled: true)")
			}
			next := schedule.NextAt(time.Now(), cfg)
			fmt.Fprintf(cmd.OutOrStdout(), "Next reminder: %s\n", next.Format("Mon Jan 2 15:04 MST"))
			schedule.RunConfigured(cmd.Context(), cfg, prompt)
			return nil
		},
	}
	c.Flags().BoolVar(&once, "once", false, "Send a single reminder and exit")
	return c
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// countSince counts entries created at or after t. entries must be newest first.
func countSince(entries []journal.Entry, t time.Time) int {
	n := 0
	for _, e := range entries {
		if e.Created().Before(t) {
			break
		}
		n++
	}
	return n
}
