package core_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/hikmetgulsesli/markdown-notepad/pkg/adapters/memory"
	"github.com/hikmetgulsesli/markdown-notepad/pkg/core"
)

// fakeClock implements core.Clock with manually driven time.
type fakeClock struct {
	now int64
}

func (c *fakeClock) NowMillis() int64 { return c.now }

func (c *fakeClock) advance(ms int64) { c.now += ms }

// manualScheduler implements core.Scheduler without real timers.
// fire() runs the pending action, mirroring TimerScheduler semantics
// (pending clears before the action runs).
type manualScheduler struct {
	fn      *func()
	stopped bool
}

func (m *manualScheduler) Schedule(fn func()) {
	if m.stopped {
		return
	}
	m.fn = &fn
}

func (m *manualScheduler) Cancel() bool {
	was := m.fn != nil
	m.fn = nil
	return was
}

func (m *manualScheduler) Pending() bool { return m.fn != nil }

func (m *manualScheduler) Stop() {
	m.stopped = true
	m.fn = nil
}

func (m *manualScheduler) fire() {
	if m.fn == nil {
		return
	}
	fn := *m.fn
	m.fn = nil
	fn()
}

func setupStore(t *testing.T) (*core.Store, *memory.KV, *manualScheduler, *fakeClock) {
	t.Helper()

	kv := memory.NewKV()
	sched := &manualScheduler{}
	clock := &fakeClock{now: 1000}
	store := core.NewStore(core.StoreConfig{
		KV:        kv,
		Scheduler: sched,
		Clock:     clock,
	})
	return store, kv, sched, clock
}

func TestInitialize(t *testing.T) {
	t.Run("Bootstraps Welcome Document When Empty", func(t *testing.T) {
		store, kv, _, _ := setupStore(t)

		if err := store.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}

		docs := store.Documents()
		if len(docs) != 1 {
			t.Fatalf("expected 1 document, got %d", len(docs))
		}
		if docs[0].Name != core.WelcomeDocumentName {
			t.Errorf("expected name %q, got %q", core.WelcomeDocumentName, docs[0].Name)
		}
		if store.ActiveID() != docs[0].ID {
			t.Errorf("expected welcome document to be active")
		}
		if _, ok := store.LoadError(); ok {
			t.Error("expected no load error on clean bootstrap")
		}
		// Bootstrap must not write: the first write waits for a user mutation.
		if kv.Writes() != 0 {
			t.Errorf("expected 0 writes after bootstrap, got %d", kv.Writes())
		}
	})

	t.Run("Recovers From Corrupt Snapshot", func(t *testing.T) {
		store, kv, _, _ := setupStore(t)
		kv.Seed(core.DocumentsKey, "{not json[")

		if err := store.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}

		docs := store.Documents()
		if len(docs) != 1 {
			t.Fatalf("expected exactly 1 document after recovery, got %d", len(docs))
		}
		if docs[0].Name != core.DefaultDocumentName {
			t.Errorf("expected fallback name %q, got %q", core.DefaultDocumentName, docs[0].Name)
		}
		msg, ok := store.LoadError()
		if !ok {
			t.Fatal("expected load error to be reported")
		}
		if msg != core.MsgLoadFailed {
			t.Errorf("unexpected load error message: %q", msg)
		}
	})

	t.Run("Continues In Memory When Storage Unreadable", func(t *testing.T) {
		store, kv, _, _ := setupStore(t)
		kv.FailReads(fmt.Errorf("denied: %w", core.ErrStorageUnavailable))

		if err := store.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
		if len(store.Documents()) != 1 {
			t.Fatal("expected store to bootstrap despite unreadable storage")
		}
		if _, ok := store.LoadError(); !ok {
			t.Error("expected load error to be reported")
		}
	})

	t.Run("Selects Most Recently Updated Document", func(t *testing.T) {
		store, kv, _, _ := setupStore(t)
		seedSnapshot(t, kv,
			core.Document{ID: "a", Name: "Old", UpdatedAt: 1000},
			core.Document{ID: "b", Name: "New", UpdatedAt: 2000},
		)

		if err := store.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
		if store.ActiveID() != "b" {
			t.Errorf("expected active id 'b', got %q", store.ActiveID())
		}
	})

	t.Run("Ties Resolve To First In Stored Order", func(t *testing.T) {
		store, kv, _, _ := setupStore(t)
		seedSnapshot(t, kv,
			core.Document{ID: "first", UpdatedAt: 5000},
			core.Document{ID: "second", UpdatedAt: 5000},
		)

		if err := store.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
		if store.ActiveID() != "first" {
			t.Errorf("expected tie to resolve to 'first', got %q", store.ActiveID())
		}
	})

	t.Run("Rejects Double Initialize", func(t *testing.T) {
		store, _, _, _ := setupStore(t)
		if err := store.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
		if err := store.Initialize(context.Background()); err == nil {
			t.Error("expected second Initialize to fail")
		}
	})
}

func seedSnapshot(t *testing.T, kv *memory.KV, docs ...core.Document) {
	t.Helper()
	data, err := json.Marshal(docs)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	kv.Seed(core.DocumentsKey, string(data))
}

func TestCreateDocument(t *testing.T) {
	t.Run("Defaults Name And Becomes Active", func(t *testing.T) {
		store, kv, sched, _ := setupStore(t)
		kv.Seed(core.DocumentsKey, "[]")
		_ = store.Initialize(context.Background())
		before := store.Documents()

		doc := store.CreateDocument("   ")

		if doc.Name != core.DefaultDocumentName {
			t.Errorf("expected default name, got %q", doc.Name)
		}
		docs := store.Documents()
		if len(docs) != len(before)+1 {
			t.Fatalf("expected %d documents, got %d", len(before)+1, len(docs))
		}
		// Newest first.
		if docs[0].ID != doc.ID {
			t.Error("expected new document to be prepended")
		}
		if store.ActiveID() != doc.ID {
			t.Error("expected new document to be active")
		}
		if !sched.Pending() {
			t.Error("expected a persistence write to be scheduled")
		}
	})

	t.Run("Trims Given Name", func(t *testing.T) {
		store, _, _, _ := setupStore(t)
		_ = store.Initialize(context.Background())

		doc := store.CreateDocument("  Meeting Notes  ")
		if doc.Name != "Meeting Notes" {
			t.Errorf("expected trimmed name, got %q", doc.Name)
		}
	})
}

func TestRenameDocument(t *testing.T) {
	t.Run("Trims Whitespace", func(t *testing.T) {
		store, _, _, clock := setupStore(t)
		_ = store.Initialize(context.Background())
		doc := store.CreateDocument("One")
		clock.advance(10)

		if !store.RenameDocument(doc.ID, "  New Name  ") {
			t.Fatal("expected rename to apply")
		}
		got, _ := store.Document(doc.ID)
		if got.Name != "New Name" {
			t.Errorf("expected 'New Name', got %q", got.Name)
		}
		if got.UpdatedAt <= doc.UpdatedAt {
			t.Errorf("expected UpdatedAt to advance: %d -> %d", doc.UpdatedAt, got.UpdatedAt)
		}
	})

	t.Run("Blank Name Is A NoOp", func(t *testing.T) {
		store, _, _, clock := setupStore(t)
		_ = store.Initialize(context.Background())
		doc := store.CreateDocument("Keep Me")
		clock.advance(10)

		if store.RenameDocument(doc.ID, "   \t ") {
			t.Fatal("expected blank rename to be rejected")
		}
		got, _ := store.Document(doc.ID)
		if got.Name != "Keep Me" {
			t.Errorf("name changed on blank rename: %q", got.Name)
		}
		if got.UpdatedAt != doc.UpdatedAt {
			t.Errorf("UpdatedAt changed on blank rename: %d -> %d", doc.UpdatedAt, got.UpdatedAt)
		}
	})

	t.Run("Unknown ID Is A NoOp", func(t *testing.T) {
		store, _, _, _ := setupStore(t)
		_ = store.Initialize(context.Background())

		if store.RenameDocument("nope", "Name") {
			t.Error("expected rename of unknown id to be rejected")
		}
	})
}

func TestDeleteDocument(t *testing.T) {
	t.Run("Last Document Is Replaced Synchronously", func(t *testing.T) {
		store, _, _, _ := setupStore(t)
		_ = store.Initialize(context.Background())
		only := store.Documents()[0]

		if !store.DeleteDocument(only.ID) {
			t.Fatal("expected delete to apply")
		}
		docs := store.Documents()
		if len(docs) != 1 {
			t.Fatalf("expected 1 document after deleting the last one, got %d", len(docs))
		}
		if docs[0].ID == only.ID {
			t.Error("expected a fresh document, got the deleted one")
		}
		if docs[0].Name != core.DefaultDocumentName {
			t.Errorf("expected default name, got %q", docs[0].Name)
		}
		if store.ActiveID() != docs[0].ID {
			t.Error("expected replacement document to be active")
		}
	})

	t.Run("Active Selection Moves To First Remaining", func(t *testing.T) {
		store, _, _, _ := setupStore(t)
		_ = store.Initialize(context.Background())
		a := store.CreateDocument("A")
		b := store.CreateDocument("B") // prepended, so order is B, A, Welcome

		if store.ActiveID() != b.ID {
			t.Fatalf("precondition: expected %q active", b.ID)
		}
		store.DeleteDocument(b.ID)

		docs := store.Documents()
		if docs[0].ID != a.ID {
			t.Fatalf("expected %q first after delete", a.ID)
		}
		if store.ActiveID() != a.ID {
			t.Errorf("expected active to move to first remaining, got %q", store.ActiveID())
		}
	})

	t.Run("Inactive Delete Keeps Selection", func(t *testing.T) {
		store, _, _, _ := setupStore(t)
		_ = store.Initialize(context.Background())
		a := store.CreateDocument("A")
		b := store.CreateDocument("B")

		store.DeleteDocument(a.ID)
		if store.ActiveID() != b.ID {
			t.Errorf("expected selection unchanged, got %q", store.ActiveID())
		}
	})

	t.Run("Collection Never Empty Under Churn", func(t *testing.T) {
		store, _, _, _ := setupStore(t)
		_ = store.Initialize(context.Background())

		for i := 0; i < 20; i++ {
			store.CreateDocument(fmt.Sprintf("doc-%d", i))
			for _, d := range store.Documents() {
				store.DeleteDocument(d.ID)
			}
			if len(store.Documents()) == 0 {
				t.Fatal("collection became empty")
			}
			active := store.ActiveID()
			if _, ok := store.Document(active); !ok {
				t.Fatalf("active id %q does not exist", active)
			}
		}
	})
}

func TestUpdateContent(t *testing.T) {
	t.Run("Touches Only The Active Document", func(t *testing.T) {
		store, _, _, clock := setupStore(t)
		_ = store.Initialize(context.Background())
		other := store.CreateDocument("Other")
		target := store.CreateDocument("Target")
		clock.advance(10)

		if !store.UpdateContent("# hello") {
			t.Fatal("expected update to apply")
		}
		got, _ := store.Document(target.ID)
		if got.Content != "# hello" {
			t.Errorf("content not updated: %q", got.Content)
		}
		untouched, _ := store.Document(other.ID)
		if untouched.UpdatedAt != other.UpdatedAt || untouched.Content != "" {
			t.Error("inactive document was touched")
		}
	})
}

func TestSetActive(t *testing.T) {
	store, _, sched, _ := setupStore(t)
	_ = store.Initialize(context.Background())
	a := store.CreateDocument("A")
	b := store.CreateDocument("B")
	sched.fire() // drain the creation writes

	if !store.SetActive(a.ID) {
		t.Fatal("expected SetActive to succeed")
	}
	if store.ActiveID() != a.ID {
		t.Errorf("expected %q active, got %q", a.ID, store.ActiveID())
	}
	// Selection is not durable state, so nothing gets scheduled.
	if sched.Pending() {
		t.Error("SetActive must not schedule persistence")
	}
	if store.SetActive("missing") {
		t.Error("expected SetActive of unknown id to fail")
	}
	_ = b
}

func TestPersistence(t *testing.T) {
	t.Run("Burst Collapses To One Write With Latest State", func(t *testing.T) {
		store, kv, sched, _ := setupStore(t)
		_ = store.Initialize(context.Background())

		doc := store.CreateDocument("Draft")
		store.UpdateContent("v1")
		store.UpdateContent("v2")
		store.RenameDocument(doc.ID, "Final")

		if kv.Writes() != 0 {
			t.Fatalf("expected no writes before the timer fires, got %d", kv.Writes())
		}
		sched.fire()
		if kv.Writes() != 1 {
			t.Fatalf("expected exactly one write, got %d", kv.Writes())
		}

		raw, _ := kv.Value(core.DocumentsKey)
		var persisted []core.Document
		if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
			t.Fatalf("persisted snapshot is not valid JSON: %v", err)
		}
		if persisted[0].Name != "Final" || persisted[0].Content != "v2" {
			t.Errorf("snapshot does not carry the latest state: %+v", persisted[0])
		}
	})

	t.Run("Status Transitions", func(t *testing.T) {
		store, _, sched, _ := setupStore(t)
		_ = store.Initialize(context.Background())

		if st := store.Status(); st.State != core.StateSaved {
			t.Fatalf("expected initial state saved, got %s", st.State)
		}
		store.UpdateContent("dirty")
		if st := store.Status(); st.State != core.StateSaving {
			t.Errorf("expected saving while pending, got %s", st.State)
		}
		sched.fire()
		if st := store.Status(); st.State != core.StateSaved {
			t.Errorf("expected saved after flush, got %s", st.State)
		}
	})

	t.Run("Quota Failure Keeps Edit And Reports Specific Message", func(t *testing.T) {
		store, kv, sched, _ := setupStore(t)
		_ = store.Initialize(context.Background())
		kv.FailWrites(fmt.Errorf("backend full: %w", core.ErrQuotaExceeded))

		store.UpdateContent("precious edit")
		sched.fire()

		st := store.Status()
		if st.State != core.StateError {
			t.Fatalf("expected error state, got %s", st.State)
		}
		if st.Message != core.MsgQuotaExceeded {
			t.Errorf("expected %q, got %q", core.MsgQuotaExceeded, st.Message)
		}
		active, _ := store.Active()
		if active.Content != "precious edit" {
			t.Error("in-memory edit was lost on write failure")
		}
	})

	t.Run("Generic Failure Then Success Clears Error", func(t *testing.T) {
		store, kv, sched, _ := setupStore(t)
		_ = store.Initialize(context.Background())

		kv.FailWrites(fmt.Errorf("disk detached"))
		store.UpdateContent("v1")
		sched.fire()
		if st := store.Status(); st.State != core.StateError || st.Message != core.MsgWriteFailed {
			t.Fatalf("expected generic write error, got %+v", st)
		}

		// No retry timer: the next mutation is what retries.
		kv.FailWrites(nil)
		store.UpdateContent("v2")
		sched.fire()
		if st := store.Status(); st.State != core.StateSaved || st.Message != "" {
			t.Errorf("expected saved with cleared message, got %+v", st)
		}
	})

	t.Run("FlushNow Persists Without Waiting", func(t *testing.T) {
		store, kv, sched, _ := setupStore(t)
		_ = store.Initialize(context.Background())

		store.UpdateContent("sync me")
		if err := store.FlushNow(context.Background()); err != nil {
			t.Fatalf("FlushNow failed: %v", err)
		}
		if kv.Writes() != 1 {
			t.Fatalf("expected one write, got %d", kv.Writes())
		}
		if sched.Pending() {
			t.Error("expected pending timer to be canceled by FlushNow")
		}
		if st := store.Status(); st.State != core.StateSaved {
			t.Errorf("expected saved, got %s", st.State)
		}
	})

	t.Run("Close Cancels Pending Write", func(t *testing.T) {
		store, kv, _, _ := setupStore(t)
		_ = store.Initialize(context.Background())

		store.UpdateContent("never persisted")
		store.Close()
		if kv.Writes() != 0 {
			t.Errorf("expected no writes after Close, got %d", kv.Writes())
		}
	})
}

func TestTimestamps(t *testing.T) {
	t.Run("Never Go Backwards", func(t *testing.T) {
		store, _, _, clock := setupStore(t)
		_ = store.Initialize(context.Background())
		doc := store.CreateDocument("Doc")

		clock.now -= 500 // wall clock jumped back
		store.UpdateContent("edit")

		got, _ := store.Document(doc.ID)
		if got.UpdatedAt < doc.UpdatedAt {
			t.Errorf("UpdatedAt went backwards: %d -> %d", doc.UpdatedAt, got.UpdatedAt)
		}
	})
}

func TestSubscribe(t *testing.T) {
	store, _, sched, _ := setupStore(t)
	_ = store.Initialize(context.Background())

	events, cancel := store.Subscribe()
	defer cancel()

	doc := store.CreateDocument("Watched")
	e := <-events
	if e.Type != core.EventCreate || e.ID != doc.ID {
		t.Errorf("unexpected event: %+v", e)
	}

	store.RenameDocument(doc.ID, "Renamed")
	e = <-events
	if e.Type != core.EventModify || e.ID != doc.ID {
		t.Errorf("unexpected event: %+v", e)
	}

	sched.fire()
	e = <-events
	if e.Type != core.EventStatus {
		t.Errorf("expected status event after flush, got %+v", e)
	}
}
