package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates the model service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates the model API rate limit was exceeded.
	// The batch scheduler treats this as retryable, distinct from other
	// call failures.
	ErrRateLimited = errors.New("rate limited")

	// ErrTruncated indicates a model response was cut short. A legacy
	// full-document edit response failing the length-ratio guard is
	// reported as truncation, not accepted as a rewrite.
	ErrTruncated = errors.New("response truncated")

	// ErrNoStructuredPayload indicates no parseable structured block was
	// found in a model response. Distinct from ErrEmptyPayload: the
	// response contained no candidate at all.
	ErrNoStructuredPayload = errors.New("no structured payload in response")

	// ErrEmptyPayload indicates a structured block was located but held
	// no usable content.
	ErrEmptyPayload = errors.New("empty structured payload")

	// ErrNoOperationsApplied indicates none of an edit's operations
	// matched the document. The edit fails explicitly; the original
	// document is returned unchanged.
	ErrNoOperationsApplied = errors.New("no edit operations applied")

	// ErrNoVisibleContent indicates an assembled document failed the
	// structural content check and must not be accepted as complete.
	ErrNoVisibleContent = errors.New("document has no visible content")

	// ErrIdentityUnavailable indicates the identity extraction
	// collaborator failed. This is a top-level pipeline failure.
	ErrIdentityUnavailable = errors.New("identity extraction unavailable")
)
