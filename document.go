package blaze

// ═══════════════════════════════════════════════════════════════════════════════
// DOCUMENTS
// ═══════════════════════════════════════════════════════════════════════════════
// A Document is the unit of content the index knows how to store and search.
// It carries nothing but an identity and its original bytes: every other piece
// of information the index needs (terms, positions, highlights) is derived from
// Content on demand, never cached on the Document itself.
// ═══════════════════════════════════════════════════════════════════════════════

// Document is a single piece of indexed content.
//
// The index identifies a Document by its ID alone: two Documents with the same
// ID are the same document at different points in time, and indexing one
// replaces the other. Document has no equality method of its own; == on two
// Document values compares both ID and Content.
type Document struct {
	// ID identifies the document. Re-indexing a Document with an ID already
	// present in an Index replaces the previous content under that ID.
	ID uint64
	// Content is the full original text, preserved byte-for-byte. Position
	// offsets recorded by the analyzer index into this string, so it must
	// never be mutated out from under a Document already passed to Index.
	Content string
}

// NewDocument constructs a Document from an id and its content.
func NewDocument(id uint64, content string) Document {
	return Document{ID: id, Content: content}
}
