// Document is the central entity of the domain.
package core

// Default names assigned by the store.
const (
	// DefaultDocumentName is used when a document is created without a name.
	DefaultDocumentName = "Untitled Document"

	// WelcomeDocumentName is the name of the document created on first run,
	// when no snapshot exists yet.
	WelcomeDocumentName = "Welcome"
)

// WelcomeContent seeds the first-run document.
const WelcomeContent = `# Welcome

This is your markdown notepad. Everything you type is kept in memory
immediately and saved to local storage after a short pause.

## A few things to try

- Create a new document from the document list
- Rename this one
- Export your notes as .md files

*Your documents never leave this machine.*
`

// Document represents a single markdown note.
// The JSON field names define the persisted snapshot layout.
type Document struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Content   string `json:"content"`
	UpdatedAt int64  `json:"updatedAt"` // milliseconds since epoch, ordering only
}
