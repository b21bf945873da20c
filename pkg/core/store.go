package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// StoreConfig holds the wiring for a document store.
type StoreConfig struct {
	KV        KV
	Key       string    // snapshot key; DocumentsKey when empty
	Scheduler Scheduler // debounce channel; a TimerScheduler with DefaultDebounce when nil
	Clock     Clock     // SystemClock when nil
	Logger    *slog.Logger

	// EventBufferSize is the per-subscriber channel capacity.
	EventBufferSize int
}

// Store is the single source of truth for the document set and the active
// selection. All mutations apply to in-memory state synchronously; durability
// is debounced onto a single write channel, so bursts of edits collapse into
// one snapshot write. Failed writes never roll back in-memory state.
type Store struct {
	mu     sync.Mutex
	kv     KV
	key    string
	sched  Scheduler
	clock  Clock
	logger *slog.Logger

	docs        []Document // most-recent-first: new documents are prepended
	activeID    string
	lastStamp   int64
	status      Status
	loadErr     string
	initialized bool

	bufSize int
	subsMu  sync.Mutex
	subs    map[chan Event]struct{}
}

// NewStore creates a store. Call Initialize before any other operation.
func NewStore(cfg StoreConfig) *Store {
	if cfg.Key == "" {
		cfg.Key = DocumentsKey
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = NewTimerScheduler(DefaultDebounce)
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.EventBufferSize <= 0 {
		cfg.EventBufferSize = 16
	}
	return &Store{
		kv:      cfg.KV,
		key:     cfg.Key,
		sched:   cfg.Scheduler,
		clock:   cfg.Clock,
		logger:  cfg.Logger,
		status:  Status{State: StateSaved},
		bufSize: cfg.EventBufferSize,
		subs:    make(map[chan Event]struct{}),
	}
}

// Initialize loads the persisted snapshot, or bootstraps a first document.
//
// A missing snapshot creates the "Welcome" document without triggering a
// write: the first write is deferred until the user mutates something. A
// snapshot that cannot be read or parsed is discarded, a fresh default
// document takes its place and LoadError reports the failure. The store is
// never left empty, and no storage failure escapes this method; the only
// error returned is calling Initialize twice.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return fmt.Errorf("store already initialized")
	}
	s.initialized = true

	raw, found, err := s.kv.Read(ctx, s.key)
	switch {
	case err != nil:
		s.logger.Warn("snapshot read failed, continuing in memory", "key", s.key, "error", err)
		s.loadErr = MsgLoadFailed
		s.bootstrapLocked(DefaultDocumentName, "")
	case !found:
		s.bootstrapLocked(WelcomeDocumentName, WelcomeContent)
	default:
		var docs []Document
		if err := json.Unmarshal([]byte(raw), &docs); err != nil {
			s.logger.Warn("snapshot is corrupt, starting fresh", "key", s.key, "error", err)
			s.loadErr = MsgLoadFailed
			s.bootstrapLocked(DefaultDocumentName, "")
			break
		}
		if len(docs) == 0 {
			s.bootstrapLocked(WelcomeDocumentName, WelcomeContent)
			break
		}
		s.docs = docs
		s.activeID = mostRecent(docs)
		for _, d := range docs {
			if d.UpdatedAt > s.lastStamp {
				s.lastStamp = d.UpdatedAt
			}
		}
	}
	return nil
}

// mostRecent returns the id of the document with the maximum UpdatedAt.
// Ties resolve to the first occurrence in stored order.
func mostRecent(docs []Document) string {
	best := 0
	for i := range docs {
		if docs[i].UpdatedAt > docs[best].UpdatedAt {
			best = i
		}
	}
	return docs[best].ID
}

// bootstrapLocked replaces the collection with one fresh document.
// It does not schedule a write.
func (s *Store) bootstrapLocked(name, content string) {
	doc := s.newDocumentLocked(name)
	doc.Content = content
	s.docs = []Document{doc}
	s.activeID = doc.ID
}

func (s *Store) newDocumentLocked(name string) Document {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultDocumentName
	}
	return Document{
		ID:        uuid.NewString(),
		Name:      name,
		UpdatedAt: s.stampLocked(),
	}
}

// stampLocked returns a timestamp that never goes backwards within this store.
func (s *Store) stampLocked() int64 {
	now := s.clock.NowMillis()
	if now < s.lastStamp {
		now = s.lastStamp
	}
	s.lastStamp = now
	return now
}

// CreateDocument constructs a new empty document, prepends it to the
// collection, makes it active and schedules persistence. A blank name falls
// back to DefaultDocumentName.
func (s *Store) CreateDocument(name string) Document {
	s.mu.Lock()
	doc := s.newDocumentLocked(name)
	s.docs = append([]Document{doc}, s.docs...)
	s.activeID = doc.ID
	s.scheduleFlushLocked()
	s.mu.Unlock()

	s.notify(Event{Type: EventCreate, ID: doc.ID, Timestamp: doc.UpdatedAt})
	return doc
}

// RenameDocument updates a document's name. A whitespace-only name or an
// unknown id is a no-op; the surrounding whitespace of a valid name is
// trimmed. Returns whether the rename was applied.
func (s *Store) RenameDocument(id, newName string) bool {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return false
	}

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.docs[i].Name = newName
	s.docs[i].UpdatedAt = s.stampLocked()
	stamp := s.docs[i].UpdatedAt
	s.scheduleFlushLocked()
	s.mu.Unlock()

	s.notify(Event{Type: EventModify, ID: id, Timestamp: stamp})
	return true
}

// DeleteDocument removes a document and schedules persistence. Deleting the
// last document synchronously replaces it with a fresh default one; deleting
// the active document reassigns the selection to the first remaining
// document. Returns whether a document was removed.
func (s *Store) DeleteDocument(id string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.docs = append(s.docs[:i], s.docs[i+1:]...)

	var created *Document
	if len(s.docs) == 0 {
		doc := s.newDocumentLocked(DefaultDocumentName)
		s.docs = []Document{doc}
		s.activeID = doc.ID
		created = &doc
	} else if s.activeID == id {
		s.activeID = s.docs[0].ID
	}
	s.scheduleFlushLocked()
	stamp := s.lastStamp
	s.mu.Unlock()

	s.notify(Event{Type: EventDelete, ID: id, Timestamp: stamp})
	if created != nil {
		s.notify(Event{Type: EventCreate, ID: created.ID, Timestamp: created.UpdatedAt})
	}
	return true
}

// UpdateContent replaces the active document's content and schedules
// persistence. A no-op when there is no active document.
func (s *Store) UpdateContent(content string) bool {
	s.mu.Lock()
	i := s.indexLocked(s.activeID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.docs[i].Content = content
	s.docs[i].UpdatedAt = s.stampLocked()
	id, stamp := s.docs[i].ID, s.docs[i].UpdatedAt
	s.scheduleFlushLocked()
	s.mu.Unlock()

	s.notify(Event{Type: EventModify, ID: id, Timestamp: stamp})
	return true
}

// SetActive changes the selection. Selection is not persisted: after a
// restart the active document is re-derived from UpdatedAt recency, so this
// schedules nothing. Returns false for an unknown id.
func (s *Store) SetActive(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(id) < 0 {
		return false
	}
	s.activeID = id
	return true
}

func (s *Store) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.docs {
		if s.docs[i].ID == id {
			return i
		}
	}
	return -1
}

// scheduleFlushLocked captures the current collection and arms the debounce
// channel. The captured snapshot is the state at the latest mutation: any
// further mutation re-captures and replaces the pending write, so the write
// that eventually fires always carries the newest state.
func (s *Store) scheduleFlushLocked() {
	s.status = Status{State: StateSaving}
	snapshot := s.snapshotLocked()
	s.sched.Schedule(func() { s.flush(snapshot) })
}

func (s *Store) snapshotLocked() []Document {
	out := make([]Document, len(s.docs))
	copy(out, s.docs)
	return out
}

func (s *Store) flush(docs []Document) {
	err := s.writeSnapshot(context.Background(), docs)
	s.finishFlush(err)
}

func (s *Store) writeSnapshot(ctx context.Context, docs []Document) error {
	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	if err := s.kv.Write(ctx, s.key, string(data)); err != nil {
		return err
	}
	return nil
}

// finishFlush projects the write result onto the save status. If a newer
// write was scheduled while this one ran, the status stays "saving" and the
// newer write decides the final state.
func (s *Store) finishFlush(err error) {
	if err != nil {
		s.logger.Warn("snapshot write failed", "key", s.key, "error", err)
	}

	s.mu.Lock()
	if !s.sched.Pending() {
		s.status = statusAfterWrite(err)
	}
	stamp := s.stampLocked()
	s.mu.Unlock()

	s.notify(Event{Type: EventStatus, Timestamp: stamp})
}

// FlushNow cancels any pending debounced write and persists the current
// snapshot synchronously. Used on process shutdown and by the CLI, where a
// process exit would otherwise outrun the debounce window.
func (s *Store) FlushNow(ctx context.Context) error {
	s.sched.Cancel()
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	err := s.writeSnapshot(ctx, snapshot)
	s.finishFlush(err)
	if err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return nil
}

// Close cancels any pending write without firing it and releases all
// subscriber channels. In-memory state is discarded, as on component
// teardown.
func (s *Store) Close() {
	s.sched.Stop()

	s.subsMu.Lock()
	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
	s.subsMu.Unlock()
}

// Documents returns a copy of the collection in iteration order
// (most recently created first).
func (s *Store) Documents() []Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Document returns the document with the given id.
func (s *Store) Document(id string) (Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return Document{}, false
	}
	return s.docs[i], true
}

// Active returns the currently selected document.
func (s *Store) Active() (Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(s.activeID)
	if i < 0 {
		return Document{}, false
	}
	return s.docs[i], true
}

// ActiveID returns the id of the currently selected document.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Status returns the current save status.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LoadError reports whether Initialize recovered from a broken snapshot,
// and the user-facing message if so.
func (s *Store) LoadError() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr, s.loadErr != ""
}

// Subscribe registers an event channel. The returned function unsubscribes
// and closes the channel. Slow subscribers drop events rather than block
// mutations.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, s.bufSize)
	s.subsMu.Lock()
	s.subs[ch] = struct{}{}
	s.subsMu.Unlock()

	cancel := func() {
		s.subsMu.Lock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
		s.subsMu.Unlock()
	}
	return ch, cancel
}

func (s *Store) notify(e Event) {
	s.subsMu.Lock()
	for ch := range s.subs {
		select {
		case ch <- e:
		default:
		}
	}
	s.subsMu.Unlock()
}
