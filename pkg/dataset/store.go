package dataset

import (
	"context"
	"time"
)

// Store keeps the current snapshot of every session. Sessions never see
// each other's data.
type Store interface {
	// Get returns the snapshot of a session or a store-not-found error.
	Get(ctx context.Context, sessionID string) (*Snapshot, error)

	// Put replaces the snapshot of a session.
	Put(ctx context.Context, sessionID string, snap *Snapshot) error

	// Delete removes the snapshot of a session. Deleting a missing session
	// is not an error.
	Delete(ctx context.Context, sessionID string) error

	// Purge removes sessions last updated before the given time and
	// returns how many were removed.
	Purge(ctx context.Context, before time.Time) (int, error)

	// Close releases resources of the store.
	Close() error
}

// Event describes an accepted upload.
type Event struct {
	SessionID   string    `json:"session_id"`
	DatasetID   string    `json:"dataset_id"`
	Filename    string    `json:"filename"`
	Rows        int       `json:"rows"`
	Species     int       `json:"species"`
	HasLocation bool      `json:"has_location"`
	HasImages   bool      `json:"has_images"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewEvent creates an Event for a snapshot stored under a session.
func NewEvent(sessionID string, snap *Snapshot) Event {
	return Event{
		SessionID:   sessionID,
		DatasetID:   snap.ID,
		Filename:    snap.Filename,
		Rows:        len(snap.Records),
		Species:     snap.Index.Len() - 1,
		HasLocation: snap.Capabilities.HasLocation,
		HasImages:   snap.Capabilities.HasImages,
		CreatedAt:   snap.CreatedAt,
	}
}

// Notifier announces accepted uploads.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
	Close() error
}
