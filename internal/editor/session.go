package editor

import (
	"strings"
	"sync"
	"time"

	"github.com/kronika/internal/schedule"
)

const (
	// draftDelay debounces local draft snapshots.
	draftDelay = 400 * time.Millisecond
	// autosaveDelay debounces background server saves.
	autosaveDelay = 1200 * time.Millisecond
)

// Saver pushes a snapshot to the server-side article store. Autosave
// always requests slug preservation.
type Saver interface {
	Save(key Key, snapshot Snapshot, preserveSlug bool) error
}

// Session drives one editing session: it debounces draft persistence,
// schedules silent background autosaves in edit mode, and applies the
// local-edits-win recovery policy on load.
type Session struct {
	mu    sync.Mutex
	key   Key
	store *Store
	saver Saver
	sched schedule.Scheduler

	snapshot    Snapshot
	dirty       bool
	lastSavedAt time.Time

	draftHandle schedule.Handle
	saveHandle  schedule.Handle
}

// NewSession prepares a session for the given key. Entering a fresh create
// session clears any stale draft left by a previous creation attempt.
func NewSession(key Key, store *Store, saver Saver, sched schedule.Scheduler) (*Session, error) {
	s := &Session{key: key, store: store, saver: saver, sched: sched}
	if key.Mode == ModeCreate {
		if err := store.Clear(key); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Key returns the session's draft key.
func (s *Session) Key() Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

// LoadInitial seeds the session from freshly loaded server state. If a
// draft exists for the key its fields overwrite the server data outright;
// this is an explicit recover-unsaved-work policy, not a merge.
func (s *Session) LoadInitial(server Snapshot) (Snapshot, error) {
	draft, ok, err := s.store.Load(s.key)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.snapshot = *draft
		s.dirty = true
	} else {
		s.snapshot = server
	}
	return s.snapshot, nil
}

// Apply records an edit and restarts both debounce windows. Earlier
// pending flushes for this session are superseded, not run concurrently.
func (s *Session) Apply(snapshot Snapshot) {
	s.mu.Lock()
	s.snapshot = snapshot
	s.dirty = true

	if s.draftHandle != nil {
		s.draftHandle.Stop()
	}
	s.draftHandle = s.sched.Schedule(draftDelay, s.flushDraft)

	if s.key.Mode == ModeEdit {
		if s.saveHandle != nil {
			s.saveHandle.Stop()
		}
		s.saveHandle = s.sched.Schedule(autosaveDelay, s.autosave)
	}
	s.mu.Unlock()
}

// Flush writes the draft immediately, for tab-hide and unload paths.
func (s *Session) Flush() error {
	s.mu.Lock()
	if s.draftHandle != nil {
		s.draftHandle.Stop()
		s.draftHandle = nil
	}
	snapshot := s.snapshot
	dirty := s.dirty
	key := s.key
	s.mu.Unlock()

	if !dirty {
		return nil
	}
	return s.store.Save(key, snapshot)
}

// Dirty reports whether unsaved edits exist.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// LastSavedAt returns when the last successful autosave completed.
func (s *Session) LastSavedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSavedAt
}

// MigrateSlug moves the session and its draft to a new slug after a manual
// save changed the article's identity.
func (s *Session) MigrateSlug(newSlug string) error {
	s.mu.Lock()
	from := s.key
	to := Key{Locale: s.key.Locale, Mode: s.key.Mode, Slug: newSlug}
	s.key = to
	s.mu.Unlock()

	return s.store.Migrate(from, to)
}

// ClearDraft drops the stored draft, used after an explicit manual save.
func (s *Session) ClearDraft() error {
	s.mu.Lock()
	key := s.key
	s.dirty = false
	s.mu.Unlock()
	return s.store.Clear(key)
}

func (s *Session) flushDraft() {
	s.mu.Lock()
	snapshot := s.snapshot
	key := s.key
	s.mu.Unlock()

	// Draft persistence failures are not surfaced; the next edit retries.
	_ = s.store.Save(key, snapshot)
}

// autosave pushes the current snapshot with the slug preserved. It runs
// only when the minimum field set for the current mode is satisfied, never
// redirects, and swallows failures so the next debounce cycle retries.
func (s *Session) autosave() {
	s.mu.Lock()
	snapshot := s.snapshot
	key := s.key
	s.mu.Unlock()

	if !autosaveReady(snapshot) {
		return
	}

	if err := s.saver.Save(key, snapshot, true); err != nil {
		return
	}

	s.mu.Lock()
	s.dirty = false
	s.lastSavedAt = time.Now()
	s.mu.Unlock()

	// Server now holds the latest state; the local draft is redundant.
	_ = s.store.Clear(key)
}

func autosaveReady(snapshot Snapshot) bool {
	if snapshot.Title.IsEmpty() {
		return false
	}
	if snapshot.VideoOnly {
		return strings.TrimSpace(snapshot.VideoURL) != ""
	}
	return !snapshot.Content.IsEmpty() && snapshot.CategoryID != nil
}
