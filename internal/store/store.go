package store

import (
	"context"
	"time"
)

// Turn roles as persisted in the transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one role-tagged message within a session transcript.
// Turns are immutable once appended; order is insertion order.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationStore persists session transcripts as append-only,
// TTL-keyed logs.
type ConversationStore interface {
	// History returns the full transcript for a session in insertion
	// order. A session with no transcript yields an empty slice.
	History(ctx context.Context, sessionID string) ([]Turn, error)

	// Append adds turns to the end of the transcript and refreshes
	// the transcript's expiry.
	Append(ctx context.Context, sessionID string, turns ...Turn) error
}
