// Package app wires configuration, storage and the two stores together for
// the CLI and the TUI.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ramanasai/journal/internal/config"
	"github.com/ramanasai/journal/internal/encryption"
	"github.com/ramanasai/journal/internal/journal"
	"github.com/ramanasai/journal/internal/kv"
	"github.com/ramanasai/journal/internal/logging"
	"github.com/ramanasai/journal/internal/notify"
	"github.com/ramanasai/journal/internal/theme"
)

const PassphraseEnv = "JOURNAL_PASSPHRASE"

var ErrNoPassphrase = errors.New("encryption is enabled but " + PassphraseEnv + " is not set")

type App struct {
	Config  config.Config
	Log     *slog.Logger
	Entries *journal.Store
	Theme   *theme.State

	db      *kv.SQLite
	closers []io.Closer
}

type options struct {
	notifiers []notify.Notifier
	appliers  []theme.Applier
	logWriter io.Writer
}

type Option func(*options)

// WithNotifier adds a notifier next to the desktop one (when enabled).
func WithNotifier(n notify.Notifier) Option {
	return func(o *options) { o.notifiers = append(o.notifiers, n) }
}

func WithThemeApplier(a theme.Applier) Option {
	return func(o *options) { o.appliers = append(o.appliers, a) }
}

// WithLogWriter sends logs to w instead of the rotated log file.
func WithLogWriter(w io.Writer) Option {
	return func(o *options) { o.logWriter = w }
}

// Open builds an App from cfg and loads both stores. Malformed stored entries
// are logged and reported through the notifiers; they do not fail Open.
func Open(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{Config: cfg}
	if o.logWriter != nil {
		a.Log = logging.NewWithWriter(o.logWriter, cfg.Log.Level)
	} else {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		l, c := logging.New(cfg.LogPath(), cfg.Log.Level)
		a.Log = l
		a.closers = append(a.closers, c)
	}

	db, err := kv.Open(cfg.DBPath())
	if err != nil {
		a.Close()
		return nil, err
	}
	a.db = db
	var storage kv.Storage = db

	if cfg.Encryption.Enabled {
		pass := os.Getenv(PassphraseEnv)
		if pass == "" {
			a.Close()
			return nil, ErrNoPassphrase
		}
		enc, err := encryption.NewEncryptor(pass, cfg.SaltPath())
		if err != nil {
			a.Close()
			return nil, err
		}
		storage = kv.NewEncrypted(storage, enc)
	}

	notifiers := notify.Multi(o.notifiers)
	if cfg.Notify.Desktop {
		notifiers = append(notifiers, notify.Desktop{Log: a.Log.With("component", "notify")})
	}

	a.Entries = journal.NewStore(storage,
		journal.WithNotifier(notifiers),
		journal.WithLogger(a.Log.With("component", "journal")),
		journal.WithDateLayout(cfg.DateLayout),
	)

	themeOpts := []theme.Option{
		theme.WithSystemPreference(theme.FromConfig(cfg.Theme.System)),
		theme.WithLogger(a.Log.With("component", "theme")),
	}
	for _, ap := range o.appliers {
		themeOpts = append(themeOpts, theme.WithApplier(ap))
	}
	a.Theme = theme.New(storage, themeOpts...)

	if err := a.Entries.Load(ctx); err != nil {
		var merr *journal.MalformedError
		if !errors.As(err, &merr) {
			a.Close()
			return nil, err
		}
		notifiers.Notify(notify.Notification{
			Title:       "Stored entries were damaged",
			Description: merr.Error(),
			Variant:     notify.Destructive,
		})
	}
	if err := a.Theme.Initialize(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) Close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
