// Package snapshot stores styled graph snapshots under stable identifiers.
//
// A snapshot is the immutable output of one styling run: the styled graph,
// the query that produced it, and any warnings. The HTTP API writes a
// snapshot per render so results can be fetched again by ID without
// re-running the pipeline.
//
// Two backends are provided: an in-memory store for tests and single-node
// deployments, and a MongoDB store for shared deployments. Both honor a
// TTL; expired snapshots behave as missing.
package snapshot

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/graphtint/graphtint/pkg/graph"
)

// Snapshot is one stored styling result.
type Snapshot struct {
	ID        string       `json:"id" bson:"_id"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time    `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
	Query     string       `json:"query" bson:"query"`
	Graph     *graph.Graph `json:"graph" bson:"graph"`
	Warnings  []string     `json:"warnings,omitempty" bson:"warnings,omitempty"`
}

// Store is the snapshot persistence interface.
type Store interface {
	// Put stores a snapshot, assigning an ID and timestamps if unset.
	Put(ctx context.Context, snap *Snapshot) error

	// Get retrieves a snapshot by ID. Missing or expired snapshots return
	// an error with code ErrCodeSnapshotNotFound.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// Delete removes a snapshot. Deleting a missing snapshot is not an
	// error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// prepare fills in the ID and timestamps ahead of a write.
func prepare(snap *Snapshot, ttl time.Duration, now time.Time) {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = now
	}
	if ttl > 0 && snap.ExpiresAt.IsZero() {
		snap.ExpiresAt = now.Add(ttl)
	}
}

// expired reports whether a snapshot is past its expiry.
func expired(snap *Snapshot, now time.Time) bool {
	return !snap.ExpiresAt.IsZero() && now.After(snap.ExpiresAt)
}
