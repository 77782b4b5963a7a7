package render

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ramanasai/journal/internal/journal"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatJSON    OutputFormat = "json"
	FormatCompact OutputFormat = "compact"
	FormatQuiet   OutputFormat = "quiet"
)

func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatDefault:
		return FormatDefault, nil
	case FormatJSON, FormatCompact, FormatQuiet:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (default, json, compact, quiet)", s)
	}
}

// Config contains configuration for output rendering
type Config struct {
	Format OutputFormat
	Width  int
	ShowID bool
	Color  bool
	Dark   bool
}

// DefaultConfig returns a default render configuration
func DefaultConfig() *Config {
	width := 100
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}
	return &Config{
		Format: FormatDefault,
		Width:  width,
		ShowID: true,
		Color:  true,
		Dark:   true,
	}
}

// Renderer handles output formatting
type Renderer struct {
	config *Config
	styles *Styles
}

// Styles contains lipgloss styles for different elements
type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Meta      lipgloss.Style
	Date      lipgloss.Style
	Heading   lipgloss.Style
	Text      lipgloss.Style
}

func NewRenderer(config *Config) *Renderer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Renderer{config: config, styles: initStyles(config.Color, config.Dark)}
}

func initStyles(color, dark bool) *Styles {
	if !color {
		return &Styles{
			Title:     lipgloss.NewStyle().Bold(true),
			Separator: lipgloss.NewStyle(),
			Meta:      lipgloss.NewStyle(),
			Date:      lipgloss.NewStyle(),
			Heading:   lipgloss.NewStyle().Bold(true),
			Text:      lipgloss.NewStyle(),
		}
	}

	accent, muted, date := lipgloss.Color("#A6E3A1"), lipgloss.Color("#6C7086"), lipgloss.Color("#CBA6F7")
	if !dark {
		accent, muted, date = lipgloss.Color("#40A02B"), lipgloss.Color("#8C8FA1"), lipgloss.Color("#8839EF")
	}
	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Separator: lipgloss.NewStyle().Foreground(muted),
		Meta:      lipgloss.NewStyle().Faint(true),
		Date:      lipgloss.NewStyle().Foreground(date),
		Heading:   lipgloss.NewStyle().Bold(true),
		Text:      lipgloss.NewStyle(),
	}
}

// Entries renders entries, already in display order.
func (r *Renderer) Entries(entries []journal.Entry) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return r.renderJSON(entries)
	case FormatCompact:
		return r.renderCompact(entries), nil
	case FormatQuiet:
		return r.renderQuiet(entries), nil
	default:
		return r.renderDefault(entries), nil
	}
}

// Entry renders a single entry the same way the default list does.
func (r *Renderer) Entry(e journal.Entry) string {
	return r.renderSingle(e)
}

func (r *Renderer) separator() string {
	return r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 120))) + "\n"
}

func (r *Renderer) renderDefault(entries []journal.Entry) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render("Daily Journal"))
	b.WriteString("  ")
	b.WriteString(r.styles.Meta.Render(fmt.Sprintf("%d entr%s", len(entries), pluralY(len(entries)))))
	b.WriteString("\n")
	b.WriteString(r.separator())

	if len(entries) == 0 {
		b.WriteString(r.styles.Meta.Render("No entries yet. Start writing your first journal entry!"))
		b.WriteString("\n")
		return b.String()
	}
	for _, e := range entries {
		b.WriteString(r.renderSingle(e))
		b.WriteString(r.separator())
	}
	return b.String()
}

func (r *Renderer) renderSingle(e journal.Entry) string {
	var b strings.Builder

	meta := []string{r.styles.Date.Render(e.Date)}
	if r.config.ShowID {
		meta = append(meta, r.styles.Meta.Render("["+e.ID+"]"))
	}
	b.WriteString(strings.Join(meta, "  "))
	b.WriteString("\n")
	b.WriteString(r.styles.Heading.Render(e.Title))
	b.WriteString("\n")
	for _, line := range strings.Split(e.Content, "\n") {
		b.WriteString(r.styles.Text.Render("  " + line))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) renderJSON(entries []journal.Entry) (string, error) {
	if entries == nil {
		entries = []journal.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func (r *Renderer) renderCompact(entries []journal.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		text := strings.ReplaceAll(e.Content, "\n", " ")
		if runes := []rune(text); len(runes) > 60 {
			text = string(runes[:57]) + "..."
		}
		line := e.Title + "  " + r.styles.Meta.Render(text)
		if r.config.ShowID {
			line = r.styles.Meta.Render(e.ID) + "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderQuiet prints ids only (for scripting)
func (r *Renderer) renderQuiet(entries []journal.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.ID)
		b.WriteString("\n")
	}
	return b.String()
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
