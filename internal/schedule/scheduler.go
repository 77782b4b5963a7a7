package schedule

import (
	"context"
	"time"

	"github.com/ramanasai/journal/internal/config"
)

// NextAt computes the next reminder time that falls on a configured workday
// and not on a holiday. Workdays are expected normalized ("Mon", "Tue", ...).
func NextAt(now time.Time, cfg config.Config) time.Time {
	loc := cfg.Location()
	now = now.In(loc)

	// parse "HH:MM"
	hour, min := 21, 0
	if t, err := time.ParseInLocation("15:04", cfg.Reminder.Time, loc); err == nil {
		hour, min = t.Hour(), t.Minute()
	}

	workdays := map[string]bool{}
	for _, d := range cfg.Reminder.Workdays {
		workdays[d] = true
	}
	holidays := map[string]bool{}
	for _, h := range cfg.Reminder.Holidays {
		holidays[h] = true
	}

	cand := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, loc)
	if !now.Before(cand) {
		cand = cand.AddDate(0, 0, 1)
	}
	// a week without workdays would loop forever
	for i := 0; i < 366; i++ {
		if (len(workdays) == 0 || workdays[cand.Weekday().String()[:3]]) && !holidays[cand.Format("2006-01-02")] {
			return cand
		}
		cand = cand.AddDate(0, 0, 1)
	}
	return cand
}

// RunConfigured calls f at every reminder time until ctx is canceled.
func RunConfigured(ctx context.Context, cfg config.Config, f func()) {
	t := time.NewTimer(time.Until(NextAt(time.Now(), cfg)))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			f()
			t.Reset(time.Until(NextAt(time.Now(), cfg)))
		}
	}
}
