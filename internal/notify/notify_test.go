package notify

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	w := Writer{W: &buf}

	w.Notify(Notification{Title: "Entry added", Description: "Your journal entry has been saved."})
	w.Notify(Notification{Title: "Done"})

	assert.Equal(t, "Entry added  Your journal entry has been saved.\nDone\n", buf.String())
}

func TestMultiAndRecorder(t *testing.T) {
	var a, b Recorder
	m := Multi{&a, nil, &b}

	_, ok := a.Last()
	require.False(t, ok)

	m.Notify(Notification{Title: "one"})
	m.Notify(Notification{Title: "two", Variant: Destructive})

	require.Len(t, a.All(), 2)
	require.Len(t, b.All(), 2)
	last, ok := b.Last()
	require.True(t, ok)
	assert.Equal(t, "two", last.Title)
	assert.Equal(t, Destructive, last.Variant)
}

func TestNotificationString(t *testing.T) {
	assert.Equal(t, "a: b", Notification{Title: "a", Description: "b"}.String())
	assert.Equal(t, "a", Notification{Title: "a"}.String())
}

func TestFormatDailyPrompt(t *testing.T) {
	assert.Contains(t, FormatDailyPrompt(0).Description, "No entry yet")
	assert.Contains(t, FormatDailyPrompt(1).Description, "1 entry")
	assert.Contains(t, FormatDailyPrompt(3).Description, "3 entries")
}

func TestDesktop_LogsSendFailure(t *testing.T) {
	var logs bytes.Buffer
	var alerts []bool
	d := Desktop{
		Log: slog.New(slog.NewTextHandler(&logs, nil)),
		send: func(title, message string, alert bool) error {
			alerts = append(alerts, alert)
			assert.Equal(t, "Journal: Missing information", title)
			return errors.New("no dbus")
		},
	}

	d.Notify(Notification{Title: "Missing information", Variant: Destructive})
	assert.Equal(t, []bool{true}, alerts)
	assert.Contains(t, logs.String(), "desktop notification failed")
	assert.Contains(t, logs.String(), "no dbus")

	// no logger: failure is dropped without panicking
	d.Log = nil
	d.Notify(Notification{Title: "Missing information"})
	assert.Equal(t, []bool{true, false}, alerts)
}
