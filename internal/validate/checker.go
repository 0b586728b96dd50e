package validate

import (
	"context"

	"loreweaver/internal/store"
)

// Checker is the part of store.Store a consistency report reads.
type Checker interface {
	VerifyIndex(ctx context.Context) ([]store.IndexDrift, error)
	DanglingReferences(ctx context.Context) ([]store.DanglingReference, error)
}
