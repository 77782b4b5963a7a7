// Package journal holds the entry collection and keeps it written through to
// a kv.Storage slot after every mutation.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ramanasai/journal/internal/config"
	"github.com/ramanasai/journal/internal/kv"
	"github.com/ramanasai/journal/internal/notify"
)

var (
	notifyMissing = notify.Notification{
		Title:       "Missing information",
		Description: "Please fill in both title and content.",
		Variant:     notify.Destructive,
	}
	notifyAdded = notify.Notification{
		Title:       "Entry added",
		Description: "Your journal entry has been saved.",
	}
	notifyUpdated = notify.Notification{
		Title:       "Entry updated",
		Description: "Your changes have been saved.",
	}
	notifyDeleted = notify.Notification{
		Title:       "Entry deleted",
		Description: "The journal entry has been removed.",
	}
)

// BackupSuffix is appended to the entries key when unusable data is set aside.
const BackupSuffix = ".corrupt"

type Store struct {
	storage    kv.Storage
	key        string
	notifier   notify.Notifier
	log        *slog.Logger
	now        func() time.Time
	newID      func() (string, error)
	dateLayout string

	// stored order: newest creation first
	entries []Entry
}

type Option func(*Store)

func WithNotifier(n notify.Notifier) Option { return func(s *Store) { s.notifier = n } }

func WithLogger(l *slog.Logger) Option { return func(s *Store) { s.log = l } }

func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

func WithIDGenerator(f func() (string, error)) Option { return func(s *Store) { s.newID = f } }

// WithDateLayout sets the time layout of the human-readable date label.
func WithDateLayout(layout string) Option { return func(s *Store) { s.dateLayout = layout } }

func WithKey(key string) Option { return func(s *Store) { s.key = key } }

func NewStore(storage kv.Storage, opts ...Option) *Store {
	s := &Store{
		storage:    storage,
		key:        kv.KeyEntries,
		log:        slog.Default(),
		now:        time.Now,
		newID:      newUUIDv7,
		dateLayout: config.DefaultDateLayout,
		entries:    []Entry{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Load replaces the in-memory collection with the persisted one. A missing
// slot yields an empty collection. Unreadable data or entries that break an
// invariant are copied to the backup slot and left out; the returned
// *MalformedError describes what happened and the store stays usable.
func (s *Store) Load(ctx context.Context) error {
	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}
	s.entries = []Entry{}
	if !ok {
		return nil
	}

	var decoded []Entry
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return s.setAside(ctx, raw, &MalformedError{Err: err})
	}

	seen := make(map[string]struct{}, len(decoded))
	kept := make([]Entry, 0, len(decoded))
	for _, e := range decoded {
		if _, dup := seen[e.ID]; dup || e.ID == "" || blank(e.Title) || blank(e.Content) {
			continue
		}
		seen[e.ID] = struct{}{}
		kept = append(kept, e)
	}
	s.entries = kept
	if dropped := len(decoded) - len(kept); dropped > 0 {
		return s.setAside(ctx, raw, &MalformedError{Dropped: dropped})
	}
	s.log.Debug("entries loaded", "count", len(kept))
	return nil
}

func (s *Store) setAside(ctx context.Context, raw string, merr *MalformedError) error {
	merr.BackupKey = s.key + BackupSuffix
	if err := s.storage.Set(ctx, merr.BackupKey, raw); err != nil {
		return fmt.Errorf("back up malformed entries: %w", err)
	}
	s.log.Warn("malformed stored entries set aside", "backup", merr.BackupKey, "dropped", merr.Dropped, "err", merr.Err)
	return merr
}

// Create adds a new entry at the front of the collection and persists it.
func (s *Store) Create(ctx context.Context, title, content string) (Entry, error) {
	if err := s.validate(title, content); err != nil {
		return Entry{}, err
	}

	id, err := s.newID()
	if err != nil {
		return Entry{}, fmt.Errorf("generate id: %w", err)
	}
	if s.index(id) >= 0 {
		return Entry{}, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}

	now := s.now()
	e := Entry{
		ID:        id,
		Title:     strings.TrimSpace(title),
		Content:   strings.TrimSpace(content),
		Date:      now.Format(s.dateLayout),
		CreatedAt: now.UnixMilli(),
	}

	next := make([]Entry, 0, len(s.entries)+1)
	next = append(next, e)
	next = append(next, s.entries...)
	if err := s.commit(ctx, next); err != nil {
		return Entry{}, err
	}

	s.log.Debug("entry created", "id", e.ID)
	s.notify(notifyAdded)
	return e, nil
}

// Update replaces the title and content of the entry with the given id. An
// unknown id changes nothing and reports found=false without an error.
func (s *Store) Update(ctx context.Context, id, title, content string) (Entry, bool, error) {
	if err := s.validate(title, content); err != nil {
		return Entry{}, false, err
	}

	next := slices.Clone(s.entries)
	i := s.index(id)
	if i >= 0 {
		next[i].Title = strings.TrimSpace(title)
		next[i].Content = strings.TrimSpace(content)
	}
	if err := s.commit(ctx, next); err != nil {
		return Entry{}, false, err
	}

	s.notify(notifyUpdated)
	if i < 0 {
		s.log.Debug("update of unknown entry", "id", id)
		return Entry{}, false, nil
	}
	s.log.Debug("entry updated", "id", id)
	return next[i], true, nil
}

// Delete removes the entry with the given id, if any.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	next := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.ID != id {
			next = append(next, e)
		}
	}
	removed := len(next) != len(s.entries)
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}

	s.log.Debug("entry delete", "id", id, "removed", removed)
	s.notify(notifyDeleted)
	return removed, nil
}

// ListSortedByRecency returns a copy of the collection, newest createdAt first.
// Equal timestamps keep their stored order.
func (s *Store) ListSortedByRecency() []Entry {
	out := slices.Clone(s.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out
}

func (s *Store) Get(id string) (Entry, bool) {
	if i := s.index(id); i >= 0 {
		return s.entries[i], true
	}
	return Entry{}, false
}

func (s *Store) Len() int { return len(s.entries) }

// commit writes next through to storage and only then makes it current.
func (s *Store) commit(ctx context.Context, next []Entry) error {
	b, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	if err := s.storage.Set(ctx, s.key, string(b)); err != nil {
		s.log.Error("persist entries", "err", err)
		return fmt.Errorf("persist entries: %w", err)
	}
	s.entries = next
	return nil
}

func (s *Store) validate(title, content string) error {
	if blank(title) || blank(content) {
		s.notify(notifyMissing)
		return ErrValidation
	}
	return nil
}

func (s *Store) notify(n notify.Notification) {
	if s.notifier != nil {
		s.notifier.Notify(n)
	}
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool { return e.ID == id })
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
