package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ramanasai/journal/internal/journal"
	"github.com/ramanasai/journal/internal/kv"
	"github.com/ramanasai/journal/internal/notify"
	"github.com/ramanasai/journal/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	m       Model
	store   *journal.Store
	theme   *theme.State
	storage *kv.Memory
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()
	storage := kv.NewMemory()
	rec := &notify.Recorder{}

	clock := time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)
	n := 0
	store := journal.NewStore(storage,
		journal.WithNotifier(rec),
		journal.WithClock(func() time.Time { clock = clock.Add(time.Minute); return clock }),
		journal.WithIDGenerator(func() (string, error) { n++; return fmt.Sprintf("e%d", n), nil }),
	)
	require.NoError(t, store.Load(ctx))

	th := theme.New(storage, theme.WithSystemPreference(theme.Fixed(true)))
	require.NoError(t, th.Initialize(ctx))

	h := &harness{store: store, theme: th, storage: storage}
	h.m = NewModel(ctx, store, th, rec)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 40})
	return h
}

func (h *harness) send(msg tea.Msg) {
	next, _ := h.m.Update(msg)
	h.m = next.(Model)
}

func (h *harness) keys(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) press(k tea.KeyType) {
	h.send(tea.KeyMsg{Type: k})
}

func (h *harness) typeRunes(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) create(title, content string) {
	h.keys("n")
	h.typeRunes(title)
	h.press(tea.KeyTab)
	h.typeRunes(content)
	h.press(tea.KeyCtrlS)
}

func TestEmptyState(t *testing.T) {
	h := newHarness(t)
	view := h.m.View()
	assert.Contains(t, view, "Daily Journal")
	assert.Contains(t, view, "No entries yet")
}

func TestCreateThroughForm(t *testing.T) {
	h := newHarness(t)
	h.create("Day One", "Went for a walk")

	assert.Equal(t, modeList, h.m.mode)
	list := h.store.ListSortedByRecency()
	require.Len(t, list, 1)
	assert.Equal(t, "Day One", list[0].Title)
	assert.Equal(t, "Went for a walk", list[0].Content)

	assert.True(t, h.m.hasStatus)
	assert.Equal(t, "Entry added", h.m.status.Title)
	assert.Contains(t, h.m.View(), "Day One")
}

func TestCreate_ValidationKeepsFormOpen(t *testing.T) {
	h := newHarness(t)
	h.keys("n")
	h.typeRunes("only a title")
	h.press(tea.KeyCtrlS)

	assert.Equal(t, modeCreate, h.m.mode)
	assert.Equal(t, 0, h.store.Len())
	assert.Equal(t, "Missing information", h.m.status.Title)
	assert.Equal(t, notify.Destructive, h.m.status.Variant)

	h.press(tea.KeyEsc)
	assert.Equal(t, modeList, h.m.mode)
	assert.Equal(t, 0, h.store.Len())
}

func TestEditPrefillsAndSaves(t *testing.T) {
	h := newHarness(t)
	h.create("Day One", "Went for a walk")
	h.create("Day Two", "Read a book")

	// newest first; move to Day One
	h.keys("j")
	h.press(tea.KeyEnter)
	require.Equal(t, modeEdit, h.m.mode)
	assert.Equal(t, "Day One", h.m.title.Value())
	assert.Equal(t, "Went for a walk", h.m.content.Value())

	h.typeRunes(" Edited")
	h.press(tea.KeyCtrlS)

	e, ok := h.store.Get("e1")
	require.True(t, ok)
	assert.Equal(t, "Day One Edited", e.Title)
	assert.Equal(t, "Entry updated", h.m.status.Title)
	assert.Equal(t, 1, h.m.cursor)
}

func longEntry() (string, string) {
	title := strings.Repeat("t", 250)
	lines := make([]string, 0, 151)
	for i := 0; i < 150; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	lines[3] = "\tindented with a tab"
	lines = append(lines, strings.Repeat("w", 600))
	return title, strings.Join(lines, "\n")
}

func TestEdit_LongEntrySavedUnchanged(t *testing.T) {
	h := newHarness(t)
	title, content := longEntry()
	before, err := h.store.Create(context.Background(), title, content)
	require.NoError(t, err)
	h.m.refresh()

	h.keys("e")
	require.Equal(t, modeEdit, h.m.mode)
	assert.Len(t, h.m.title.Value(), 250)
	assert.Len(t, strings.Split(h.m.content.Value(), "\n"), 151)

	h.press(tea.KeyCtrlS)
	require.Equal(t, modeList, h.m.mode)

	after, ok := h.store.Get(before.ID)
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestEdit_LongTitleCanGrow(t *testing.T) {
	h := newHarness(t)
	title, content := longEntry()
	before, err := h.store.Create(context.Background(), title, content)
	require.NoError(t, err)
	h.m.refresh()

	h.keys("e")
	h.typeRunes(" more")
	h.press(tea.KeyCtrlS)

	after, ok := h.store.Get(before.ID)
	require.True(t, ok)
	assert.Equal(t, title+" more", after.Title)
	assert.Equal(t, content, after.Content)
}

func TestDeleteSelected(t *testing.T) {
	h := newHarness(t)
	h.create("Day One", "Went for a walk")
	h.create("Day Two", "Read a book")

	h.keys("d")
	list := h.store.ListSortedByRecency()
	require.Len(t, list, 1)
	assert.Equal(t, "Day One", list[0].Title)
	assert.Equal(t, "Entry deleted", h.m.status.Title)

	h.keys("d")
	h.keys("d")
	assert.Equal(t, 0, h.store.Len())
	assert.Equal(t, 0, h.m.cursor)
}

func TestToggleTheme(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.theme.IsDark())

	h.keys("t")
	assert.False(t, h.theme.IsDark())
	assert.Equal(t, "Light theme", h.m.status.Title)

	saved, _, err := h.storage.Get(context.Background(), kv.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "light", saved)
}

func TestStatusClearsOnlyForLatest(t *testing.T) {
	h := newHarness(t)
	h.keys("t")
	first := h.m.statusSeq
	h.keys("t")

	h.send(clearStatusMsg{seq: first})
	assert.True(t, h.m.hasStatus)

	h.send(clearStatusMsg{seq: h.m.statusSeq})
	assert.False(t, h.m.hasStatus)
}

func TestHelpAndQuit(t *testing.T) {
	h := newHarness(t)
	h.keys("?")
	assert.Equal(t, modeHelp, h.m.mode)
	assert.Contains(t, h.m.View(), "toggle light / dark theme")

	h.keys("x")
	assert.Equal(t, modeList, h.m.mode)

	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
