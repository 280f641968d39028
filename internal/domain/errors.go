package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the core taxonomy - match with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrAmbiguous    = errors.New("ambiguous reference")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUnsupported  = errors.New("unsupported operation")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (container, item)
	ResourceID   int64  // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Candidate is one possible match for an ambiguous by-name lookup.
// The label carries enough context (full path or owner) for the caller
// to re-request by ID.
type Candidate struct {
	ID          int64  `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// AmbiguousError indicates a by-name lookup matched more than one resource.
// It carries the candidate list so the caller can disambiguate by ID.
type AmbiguousError struct {
	Message    string
	Candidates []Candidate
}

// Error implements the error interface
func (e *AmbiguousError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrAmbiguous
func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguous
}

// NewAmbiguousError builds an AmbiguousError for the given name and candidates
func NewAmbiguousError(name string, candidates []Candidate) *AmbiguousError {
	return &AmbiguousError{
		Message:    fmt.Sprintf("multiple matches found for %q; be more specific or use the ID", name),
		Candidates: candidates,
	}
}
