// Package theme holds the dark/light preference and mirrors it to the
// renderer and to storage.
package theme

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/ramanasai/journal/internal/kv"
)

const (
	Dark  = "dark"
	Light = "light"
)

// Applier receives every change of the dark flag.
type Applier func(dark bool)

// SystemPreference reports whether the host prefers a dark scheme.
type SystemPreference func() bool

// TerminalPreference asks the terminal for its background colour.
func TerminalPreference() bool { return lipgloss.HasDarkBackground() }

// Fixed returns a SystemPreference that always answers dark.
func Fixed(dark bool) SystemPreference { return func() bool { return dark } }

// FromConfig maps the theme.system setting (auto|dark|light) to a preference.
func FromConfig(system string) SystemPreference {
	switch system {
	case Dark:
		return Fixed(true)
	case Light:
		return Fixed(false)
	default:
		return TerminalPreference
	}
}

type State struct {
	storage  kv.Storage
	system   SystemPreference
	appliers []Applier
	log      *slog.Logger

	isDark bool
}

type Option func(*State)

func WithSystemPreference(p SystemPreference) Option { return func(s *State) { s.system = p } }

// WithApplier adds a listener; lipgloss.SetHasDarkBackground is always applied.
func WithApplier(a Applier) Option { return func(s *State) { s.appliers = append(s.appliers, a) } }

func WithLogger(l *slog.Logger) Option { return func(s *State) { s.log = l } }

func New(storage kv.Storage, opts ...Option) *State {
	s := &State{
		storage:  storage,
		system:   TerminalPreference,
		appliers: []Applier{lipgloss.SetHasDarkBackground},
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Initialize reads the saved preference, falling back to the system one when
// nothing was saved, and applies it. Any saved value other than "dark" means
// light.
func (s *State) Initialize(ctx context.Context) error {
	saved, ok, err := s.storage.Get(ctx, kv.KeyTheme)
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}
	if ok {
		s.isDark = saved == Dark
	} else {
		s.isDark = s.system()
	}
	s.log.Debug("theme initialized", "dark", s.isDark, "saved", ok)
	s.apply()
	return nil
}

// Toggle flips the preference, applies it and saves it. When saving fails
// the previous value is restored.
func (s *State) Toggle(ctx context.Context) (bool, error) {
	s.isDark = !s.isDark
	s.apply()
	if err := s.storage.Set(ctx, kv.KeyTheme, s.Name()); err != nil {
		s.isDark = !s.isDark
		s.apply()
		return s.isDark, fmt.Errorf("save theme: %w", err)
	}
	return s.isDark, nil
}

func (s *State) IsDark() bool { return s.isDark }

func (s *State) Name() string {
	if s.isDark {
		return Dark
	}
	return Light
}

func (s *State) apply() {
	for _, a := range s.appliers {
		a(s.isDark)
	}
}
