// Package store keeps arranged tag clouds so they can be fetched and
// re-rendered later.
//
// Two backends are provided:
//   - [MemoryStore]: in-process storage for the CLI, development and tests
//   - [MongoStore]: MongoDB storage shared by every server instance
//
// Records are keyed by a random UUID assigned on [Store.Save]:
//
//	rec := &store.Record{Layout: result.Layout, InputHash: result.InputHash}
//	if err := s.Save(ctx, rec); err != nil {
//	    return err
//	}
//	again, err := s.Get(ctx, rec.ID)
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/tagcloud/pkg/cloud"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("not found")

// Record is a stored cloud.
type Record struct {
	ID        string       `json:"id" bson:"_id"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	InputHash string       `json:"input_hash,omitempty" bson:"input_hash,omitempty"`
	Layout    cloud.Layout `json:"layout" bson:"layout"`
}

// Store persists records.
type Store interface {
	// Save stores rec, assigning ID and CreatedAt when they are empty.
	Save(ctx context.Context, rec *Record) error
	// Get returns the record with id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)
	Close() error
}

// prepare fills in the generated fields of rec.
func prepare(rec *Record, now time.Time) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now.UTC().Truncate(time.Millisecond)
	}
}

// ValidID reports whether id has the form of a generated record ID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
