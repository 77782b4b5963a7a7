package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ramanasai/journal/internal/journal"
	"github.com/ramanasai/journal/internal/notify"
	"github.com/ramanasai/journal/internal/theme"
	"github.com/ramanasai/journal/internal/version"
)

type mode int

const (
	modeList mode = iota
	modeCreate
	modeEdit
	modeHelp
)

const (
	fieldTitle = iota
	fieldContent
)

const statusTTL = 4 * time.Second

type clearStatusMsg struct{ seq int }

type Model struct {
	ctx     context.Context
	entries *journal.Store
	theme   *theme.State
	toasts  *notify.Recorder

	// layout
	width, height int
	mode          mode

	// list
	list   []journal.Entry
	cursor int
	offset int

	// form
	title   textinput.Model
	content textarea.Model
	field   int
	editID  string

	// the entry being edited and its values as the widgets hold them; a field
	// still equal to its loaded value is saved as originally stored
	orig       journal.Entry
	loadedText [2]string

	// status line
	status    notify.Notification
	hasStatus bool
	statusSeq int
	seenToast int
}

// NewModel builds the TUI model. toasts must be the notifier the store was
// built with; its latest notification is shown in the status line.
func NewModel(ctx context.Context, entries *journal.Store, th *theme.State, toasts *notify.Recorder) Model {
	ti := textinput.New()
	ti.Placeholder = "Entry title..."
	ti.CharLimit = 0
	ti.Prompt = ""

	ta := textarea.New()
	ta.Placeholder = "What's on your mind today?"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0

	m := Model{
		ctx:     ctx,
		entries: entries,
		theme:   th,
		toasts:  toasts,
		width:   80,
		height:  24,
		title:   ti,
		content: ta,
	}
	if all := toasts.All(); len(all) > 0 {
		// surfaced while loading, before the program started
		m.seenToast = len(all)
		m.status, m.hasStatus = all[len(all)-1], true
		m.statusSeq = 1
	}
	m.refresh()
	m.resize()
	return m
}

// Run starts the full-screen TUI.
func Run(ctx context.Context, entries *journal.Store, th *theme.State, toasts *notify.Recorder) error {
	p := tea.NewProgram(NewModel(ctx, entries, th, toasts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	if !m.hasStatus {
		return nil
	}
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.hasStatus = false
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeCreate, modeEdit:
			return m.updateForm(msg)
		case modeHelp:
			m.mode = modeList
			return m, nil
		default:
			return m.updateList(msg.String())
		}
	}
	return m, nil
}

func (m Model) updateList(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "q", "esc":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.list)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(len(m.list)-1, 0)
	case "n", "a":
		return m.openForm(modeCreate, journal.Entry{})
	case "e", "enter":
		if e, ok := m.selected(); ok {
			return m.openForm(modeEdit, e)
		}
	case "d", "x", "delete":
		if e, ok := m.selected(); ok {
			_, err := m.entries.Delete(m.ctx, e.ID)
			m.refresh()
			cmd := m.afterOp(err)
			return m, cmd
		}
	case "t":
		dark, err := m.theme.Toggle(m.ctx)
		if err != nil {
			cmd := m.afterOp(err)
			return m, cmd
		}
		name := "Light theme"
		if dark {
			name = "Dark theme"
		}
		cmd := m.showStatus(notify.Notification{Title: name, Description: "Preference saved."})
		return m, cmd
	case "?":
		m.mode = modeHelp
	}
	m.scrollToCursor()
	return m, nil
}

func (m Model) openForm(md mode, e journal.Entry) (tea.Model, tea.Cmd) {
	m.mode = md
	m.editID = e.ID
	m.orig = e
	m.title.SetValue(e.Title)
	m.content.SetValue(e.Content)
	m.loadedText = [2]string{m.title.Value(), m.content.Value()}
	m.field = fieldTitle
	m.content.Blur()
	cmd := m.title.Focus()
	return m, cmd
}

func (m Model) closeForm() Model {
	m.mode = modeList
	m.editID = ""
	m.orig = journal.Entry{}
	m.loadedText = [2]string{}
	m.title.Reset()
	m.content.Reset()
	m.title.Blur()
	m.content.Blur()
	return m
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closeForm(), nil
	case "tab", "shift+tab":
		if m.field == fieldTitle {
			m.field = fieldContent
			m.title.Blur()
			cmd := m.content.Focus()
			return m, cmd
		}
		m.field = fieldTitle
		m.content.Blur()
		cmd := m.title.Focus()
		return m, cmd
	case "ctrl+s":
		return m.save()
	case "enter":
		if m.field == fieldTitle {
			m.field = fieldContent
			m.title.Blur()
			cmd := m.content.Focus()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	if m.field == fieldTitle {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

func (m Model) save() (tea.Model, tea.Cmd) {
	var (
		saved journal.Entry
		err   error
	)
	if m.mode == modeEdit {
		title, content := m.title.Value(), m.content.Value()
		if title == m.loadedText[fieldTitle] {
			title = m.orig.Title
		}
		if content == m.loadedText[fieldContent] {
			content = m.orig.Content
		}
		saved, _, err = m.entries.Update(m.ctx, m.editID, title, content)
	} else {
		saved, err = m.entries.Create(m.ctx, m.title.Value(), m.content.Value())
	}
	if err != nil {
		// validation failures keep the form open, like any other failure
		cmd := m.afterOp(err)
		return m, cmd
	}
	m = m.closeForm()
	m.refresh()
	m.selectID(saved.ID)
	cmd := m.afterOp(nil)
	return m, cmd
}

// afterOp surfaces the newest store notification, or err when the store had
// nothing to say about it.
func (m *Model) afterOp(err error) tea.Cmd {
	all := m.toasts.All()
	if len(all) > m.seenToast {
		m.seenToast = len(all)
		return m.showStatus(all[len(all)-1])
	}
	if err != nil && !errors.Is(err, journal.ErrValidation) {
		return m.showStatus(notify.Notification{Title: "Error", Description: err.Error(), Variant: notify.Destructive})
	}
	return nil
}

func (m *Model) showStatus(n notify.Notification) tea.Cmd {
	m.status, m.hasStatus = n, true
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *Model) refresh() {
	m.list = m.entries.ListSortedByRecency()
	if m.cursor >= len(m.list) {
		m.cursor = max(len(m.list)-1, 0)
	}
	m.scrollToCursor()
}

func (m *Model) selectID(id string) {
	for i, e := range m.list {
		if e.ID == id {
			m.cursor = i
			break
		}
	}
	m.scrollToCursor()
}

func (m Model) selected() (journal.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.list) {
		return journal.Entry{}, false
	}
	return m.list[m.cursor], true
}

func (m *Model) scrollToCursor() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	// cards have variable height; keep at most a few cards above the cursor
	if visible := max(m.visibleCards(), 1); m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m Model) visibleCards() int {
	// header, add prompt and status take about 8 lines, a short card about 6
	return (m.height - 8) / 6
}

func (m *Model) resize() {
	w := m.contentWidth()
	m.title.Width = w - 4
	m.content.SetWidth(w - 4)
	m.content.SetHeight(max(min(m.height-14, 12), 3))
}

func (m Model) contentWidth() int {
	return max(min(m.width-2, 100), 30)
}

// ------------------------------
// View
// ------------------------------

func (m Model) View() string {
	th := themeFor(m.theme.IsDark())
	w := m.contentWidth()

	var b strings.Builder
	b.WriteString(m.header(th, w))
	b.WriteString("\n")

	switch m.mode {
	case modeHelp:
		b.WriteString(m.helpView(th, w))
	case modeCreate, modeEdit:
		b.WriteString(m.formView(th, w))
		b.WriteString("\n")
		if m.mode == modeCreate {
			b.WriteString(m.listView(th, w))
		}
	default:
		b.WriteString(th.Card.Width(w - 2).Render(th.Label.Render("n") + "  Write a new entry"))
		b.WriteString("\n")
		b.WriteString(m.listView(th, w))
	}

	b.WriteString("\n")
	b.WriteString(m.statusBar(th, w))
	return b.String()
}

func (m Model) header(th Theme, w int) string {
	icon := "☾"
	if m.theme.IsDark() {
		icon = "☀"
	}
	title := th.Title.Render("Daily Journal")
	toggle := th.Hint.Render(icon + " t")
	gap := max(w-lipgloss.Width(title)-lipgloss.Width(toggle), 1)
	return title + strings.Repeat(" ", gap) + toggle + "\n" +
		th.Tagline.Render("Capture your thoughts, one entry at a time") + "\n"
}

func (m Model) formView(th Theme, w int) string {
	heading := "New entry"
	if m.mode == modeEdit {
		heading = "Edit entry"
	}
	body := th.Heading.Render(heading) + "\n\n" +
		th.Label.Render("Title") + "\n" + m.title.View() + "\n\n" +
		th.Label.Render("Content") + "\n" + m.content.View() + "\n\n" +
		th.Hint.Render("ctrl+s save • tab switch field • esc cancel")
	return th.Selected.Width(w - 2).Render(body)
}

func (m Model) listView(th Theme, w int) string {
	if len(m.list) == 0 {
		return th.Card.Width(w-2).Align(lipgloss.Center).Padding(1, 1).
			Render(th.Tagline.Render("No entries yet. Start writing your first journal entry!")) + "\n"
	}

	budget := m.height - 10
	var b strings.Builder
	for i := m.offset; i < len(m.list); i++ {
		card := m.renderCard(th, w, m.list[i], m.mode == modeList && i == m.cursor)
		h := lipgloss.Height(card)
		if i > m.offset && h > budget {
			b.WriteString(th.Hint.Render(fmt.Sprintf("  … %d more", len(m.list)-i)) + "\n")
			break
		}
		b.WriteString(card)
		b.WriteString("\n")
		budget -= h
	}
	return b.String()
}

func (m Model) renderCard(th Theme, w int, e journal.Entry, highlight bool) string {
	style := th.Card
	if highlight {
		style = th.Selected
	}
	inner := w - 6
	body := th.Badge.Render(e.Date) + "\n" +
		th.Heading.Width(inner).Render(e.Title) + "\n" +
		th.Body.Width(inner).Render(e.Content)
	return style.Width(w - 2).Render(body)
}

func (m Model) helpView(th Theme, w int) string {
	rows := [][2]string{
		{"n / a", "write a new entry"},
		{"e / enter", "edit the selected entry"},
		{"d / x", "delete the selected entry"},
		{"j k / ↑ ↓", "move selection"},
		{"g / G", "first / last entry"},
		{"t", "toggle light / dark theme"},
		{"ctrl+s", "save the form"},
		{"tab", "switch between title and content"},
		{"esc", "cancel the form"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(th.Heading.Render("Keys") + "\n\n")
	for _, r := range rows {
		b.WriteString(th.Label.Render(fmt.Sprintf("%-12s", r[0])) + "  " + r[1] + "\n")
	}
	b.WriteString("\n" + th.Hint.Render(version.GetVersionInfo()))
	return th.Card.Width(w-2).Render(b.String()) + "\n"
}

func (m Model) statusBar(th Theme, w int) string {
	if !m.hasStatus {
		return th.Hint.Width(w).Render(fmt.Sprintf("%d entr%s • ? help • q quit", len(m.list), pluralY(len(m.list))))
	}
	title := th.Success.Render(m.status.Title)
	if m.status.Variant == notify.Destructive {
		title = th.Error.Render(m.status.Title)
	}
	return title + "  " + th.Tagline.Render(m.status.Description)
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
