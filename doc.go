// Package notepad is the composition root for the markdown notepad.
//
// It connects the core document store (Domain Layer) with the storage
// adapters (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// The notepad treats a user's markdown documents as one atomic snapshot in a
// key-value store. Edits hit in-memory state synchronously, so the UI is
// never blocked on storage; a debounced writer persists the full snapshot
// after each quiet period. Storage failures are classified and surfaced as a
// save status, never as lost edits.
//
// Features:
//
//   - **Hexagonal Architecture**: core domain is isolated from persistence details.
//   - **Debounced persistence**: bursts of edits collapse into one snapshot write.
//   - **Typed failure classification**: quota exhaustion vs. generic failure.
//   - **Swappable backends**: filesystem (default), SQLite, PostgreSQL, in-memory.
//   - **Theme preference**: stored choice > environment signal > default.
//
// Usage:
//
//	app, err := notepad.New(ctx,
//		notepad.WithDataDir("~/.local/share/mdnote"),
//		notepad.WithLogger(logger),
//	)
//	doc := app.Store.CreateDocument("Ideas")
//	app.Store.UpdateContent("# scratch\n")
package notepad
