package retrieval

import (
	"fmt"
	"strings"
)

// InvalidSubjectError reports a subject missing from the taxonomy. It carries
// the valid subject list so the boundary can show callers what to fix.
type InvalidSubjectError struct {
	Subject string
	Valid   []string
}

func (e *InvalidSubjectError) Error() string {
	return fmt.Sprintf(
		"invalid subject %q; must be one of: %s",
		e.Subject,
		strings.Join(e.Valid, ", "),
	)
}

// InvalidTopicError reports an empty search topic.
type InvalidTopicError struct{}

func (e *InvalidTopicError) Error() string {
	return "topic is required and must be non-empty"
}

// InvalidLimitError reports a limit outside [1, MaxLimit]. Out-of-contract
// limits are rejected rather than clamped.
type InvalidLimitError struct {
	Limit int
}

func (e *InvalidLimitError) Error() string {
	return fmt.Sprintf("limit %d is out of range [1, %d]", e.Limit, MaxLimit)
}

// EmbeddingUnavailableError wraps an embedding provider failure, timeout, or
// malformed vector. The whole query is safe to retry.
type EmbeddingUnavailableError struct {
	Cause error
}

func (e *EmbeddingUnavailableError) Error() string {
	return fmt.Sprintf("embedding generation failed: %v", e.Cause)
}

func (e *EmbeddingUnavailableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// CatalogUnavailableError wraps a catalog store search or connectivity
// failure. The whole query is safe to retry.
type CatalogUnavailableError struct {
	Cause error
}

func (e *CatalogUnavailableError) Error() string {
	return fmt.Sprintf("catalog search failed: %v", e.Cause)
}

func (e *CatalogUnavailableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
