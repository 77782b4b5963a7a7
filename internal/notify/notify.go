package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/gen2brain/beeep"
)

type Variant int

const (
	Default Variant = iota
	Destructive
)

// Notification is a short-lived message shown after an operation.
type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

func (n Notification) String() string {
	if n.Description == "" {
		return n.Title
	}
	return n.Title + ": " + n.Description
}

type Notifier interface {
	Notify(n Notification)
}

// Desktop raises OS notifications; destructive ones use an alert. Failures
// are logged to Log when set.
type Desktop struct {
	AppName string
	Log     *slog.Logger

	// send is beeep.Notify or beeep.Alert when nil
	send func(title, message string, alert bool) error
}

func (d Desktop) Notify(n Notification) {
	alert := n.Variant == Destructive
	send := d.send
	if send == nil {
		send = beeepSend
	}
	if err := send(d.appName()+": "+n.Title, n.Description, alert); err != nil && d.Log != nil {
		d.Log.Warn("desktop notification failed", "title", n.Title, "err", err)
	}
}

func beeepSend(title, message string, alert bool) error {
	if alert {
		return beeep.Alert(title, message, "")
	}
	return beeep.Notify(title, message, "")
}

func (d Desktop) appName() string {
	if d.AppName == "" {
		return "Journal"
	}
	return d.AppName
}

// Writer prints one styled line per notification.
type Writer struct {
	W     io.Writer
	Color bool
}

var (
	okStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1"))
	errStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8"))
	dimStyle = lipgloss.NewStyle().Faint(true)
)

func (w Writer) Notify(n Notification) {
	title, desc := n.Title, n.Description
	if w.Color {
		if n.Variant == Destructive {
			title = errStyle.Render(title)
		} else {
			title = okStyle.Render(title)
		}
		desc = dimStyle.Render(desc)
	}
	if n.Description == "" {
		fmt.Fprintln(w.W, title)
		return
	}
	fmt.Fprintf(w.W, "%s  %s\n", title, desc)
}

// Multi fans a notification out to every non-nil notifier.
type Multi []Notifier

func (m Multi) Notify(n Notification) {
	for _, x := range m {
		if x != nil {
			x.Notify(n)
		}
	}
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu  sync.Mutex
	all []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, n)
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.all))
	copy(out, r.all)
	return out
}

// Last returns the most recent notification, if any.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.all) == 0 {
		return Notification{}, false
	}
	return r.all[len(r.all)-1], true
}

func FormatDailyPrompt(entriesToday int) Notification {
	if entriesToday > 0 {
		return Notification{
			Title:       "Daily journal reminder",
			Description: fmt.Sprintf("You wrote %d entr%s today. Anything else on your mind?", entriesToday, plural(entriesToday)),
		}
	}
	return Notification{
		Title:       "Daily journal reminder",
		Description: "No entry yet today. What's on your mind?",
	}
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
