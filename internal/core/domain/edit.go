package domain

// EditOperation is one localized document mutation: search text expected to
// exist in the running document, and its replacement. An empty Replace
// signifies deletion. Operations are ordered; each one's Search is evaluated
// against the document state after prior operations have been applied.
type EditOperation struct {
	Search  string
	Replace string
}

// Attachment is an image supplied alongside an edit instruction.
type Attachment struct {
	// MediaType is the MIME type, e.g. "image/png".
	MediaType string

	// Data is the raw image bytes.
	Data []byte

	// URL is the stored asset location, when the attachment has already
	// been uploaded to the asset store.
	URL string
}

// EditRequest carries one natural-language edit against a document.
type EditRequest struct {
	Instruction string
	CurrentHTML string
	Attachments []Attachment
}

// EditResult is the outcome of applying an edit request.
type EditResult struct {
	// HTML is the updated document. Empty when no change was made.
	HTML string

	// Thinking is the model's short rationale.
	Thinking string

	// UserMessage is the plain-language summary shown to the end user.
	// On failure it explains that no change was made and why.
	UserMessage string

	// Applied is how many operations matched and were applied.
	Applied int

	// Attempted is how many operations the model proposed.
	Attempted int

	// FailedSearches lists the search strings that matched nothing,
	// for diagnostics.
	FailedSearches []string

	// Changed is true when HTML differs from the input document.
	Changed bool
}
