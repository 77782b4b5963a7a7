package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/ramanasai/journal/internal/config"
	"github.com/stretchr/testify/assert"
)

func cfgWith(at string, workdays, holidays []string) config.Config {
	cfg := config.Default()
	cfg.Reminder.Time = at
	cfg.Reminder.Workdays = workdays
	cfg.Reminder.Holidays = holidays
	cfg.Reminder.Timezone = "UTC"
	return cfg
}

func TestNextAt_LaterToday(t *testing.T) {
	// Monday
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)
	got := NextAt(now, cfgWith("21:00", []string{"Mon"}, nil))
	assert.Equal(t, time.Date(2026, time.October, 19, 21, 0, 0, 0, time.UTC), got)
}

func TestNextAt_SkipsPastTimeWeekendAndHoliday(t *testing.T) {
	// Friday 22:00, Monday is a holiday
	now := time.Date(2026, time.October, 23, 22, 0, 0, 0, time.UTC)
	cfg := cfgWith("08:30", []string{"Mon", "Tue", "Wed", "Thu", "Fri"}, []string{"2026-10-26"})
	got := NextAt(now, cfg)
	assert.Equal(t, time.Date(2026, time.October, 27, 8, 30, 0, 0, time.UTC), got)
}

func TestNextAt_NoWorkdaysMeansEveryDay(t *testing.T) {
	now := time.Date(2026, time.October, 24, 23, 0, 0, 0, time.UTC)
	got := NextAt(now, cfgWith("07:00", nil, nil))
	assert.Equal(t, time.Date(2026, time.October, 25, 7, 0, 0, 0, time.UTC), got)
}

func TestRunConfigured_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunConfigured(ctx, cfgWith("21:00", nil, nil), func() {})
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunConfigured did not return after cancel")
	}
}
