package domain

// SectionResult is the outcome of generating one section. Every SectionSpec
// in a blueprint produces exactly one SectionResult, success or not.
type SectionResult struct {
	// ID matches the originating SectionSpec's ID.
	ID string

	Type SectionType

	// HTML is the generated markup fragment. On success its root element
	// carries an id equal to ID; the assembler enforces this if the model
	// omitted it. On failure it is a labeled placeholder block.
	HTML string

	Success bool

	// Err describes the failure when Success is false.
	Err error
}
