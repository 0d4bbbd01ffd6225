// Package store persists saved dashboard layouts.
//
// The Store interface abstracts the backend; implementations exist for
// in-memory maps (development and tests), the local filesystem (CLI),
// Redis, and MongoDB (multi-instance deployments). Records are keyed
// by UUID and carry the full layout document plus an update timestamp.
//
// All backends report missing records with a NOT_FOUND structured
// error and emit store hooks for observability.
package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/griddeck/griddeck/pkg/errors"
	"github.com/griddeck/griddeck/pkg/layoutio"
)

// Record is one saved dashboard layout.
type Record struct {
	ID        string            `json:"id" bson:"_id"`
	Document  layoutio.Document `json:"document" bson:"document"`
	UpdatedAt time.Time         `json:"updated_at" bson:"updated_at"`
}

// Store persists layout records. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the record with the given id, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)

	// Put inserts or replaces a record and stamps UpdatedAt.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a record. Deleting an absent id is a NOT_FOUND
	// error.
	Delete(ctx context.Context, id string) error

	// List returns all records, most recently updated first.
	List(ctx context.Context) ([]Record, error)

	// Close releases backend resources.
	Close() error
}

// NewID returns a fresh layout id.
func NewID() string {
	return uuid.NewString()
}

// ValidateID rejects ids that could escape a storage namespace. File
// and key-value backends interpolate the id into paths and keys, so
// the rules are conservative: non-empty, no path separators, no
// traversal sequences, at most 128 characters.
func ValidateID(id string) error {
	if id == "" {
		return errors.New(errors.ErrCodeInvalidLayout, "layout id cannot be empty")
	}
	if len(id) > 128 {
		return errors.New(errors.ErrCodeInvalidLayout, "layout id too long (max 128 characters)")
	}
	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return errors.New(errors.ErrCodeInvalidLayout, "layout id contains invalid characters: %q", id)
	}
	return nil
}

// notFound builds the shared missing-record error.
func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "layout %s not found", id)
}
