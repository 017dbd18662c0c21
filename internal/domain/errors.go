package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest signals a malformed search or ingest request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrDimensionMismatch signals embedding vectors of differing lengths.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	// ErrEmbeddingFailure signals an embedding provider failure.
	ErrEmbeddingFailure = errors.New("embedding provider failure")
	// ErrRetrievalFailure signals a chunk store failure.
	ErrRetrievalFailure = errors.New("chunk store failure")
	// ErrDocumentNotFound signals a document with no stored chunks.
	ErrDocumentNotFound = errors.New("document not found")
)

// DimensionMismatchError wraps ErrDimensionMismatch with the expected and actual lengths.
type DimensionMismatchError struct {
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: want %d, got %d", ErrDimensionMismatch.Error(), e.Want, e.Got)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

// NewDimensionMismatch creates a dimension mismatch error.
func NewDimensionMismatch(want, got int) error {
	return &DimensionMismatchError{Want: want, Got: got}
}
