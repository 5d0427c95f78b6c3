package domain

import "time"

// ValidationResult reports whether a document still contains unresolved
// placeholder tokens after post-processing.
type ValidationResult struct {
	Valid bool

	// Unresolved lists the tokens that remained and were stripped.
	Unresolved []string

	Count int
}

// GeneratedDocument is the final product of a generation run: the assembled
// markup plus its validation outcome. Documents are only handed to callers
// after validation; unresolved tokens are stripped rather than surfaced.
type GeneratedDocument struct {
	ID string

	BusinessName string
	Category     string

	// HTML is the full assembled and post-processed document.
	HTML string

	// Thinking is the rationale text accumulated across pipeline stages.
	Thinking string

	// PipelineVersion identifies the generation pipeline that produced
	// this document.
	PipelineVersion string

	Validation ValidationResult

	CreatedAt time.Time
	UpdatedAt time.Time
}
