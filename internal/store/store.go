// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/ashureev/matter/internal/domain"
)

// DocumentKey is the fixed key the progression document lives under.
const DocumentKey = "forest_of_intent_data_v1"

// Repository persists anonymous users and their key-value documents.
type Repository interface {
	// GetUser retrieves a user by their user ID. Returns nil, nil when absent.
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// UpsertUser creates or updates a user record.
	UpsertUser(ctx context.Context, user *domain.User) error

	// UpdateLastSeen updates the last_seen_at timestamp for a user.
	UpdateLastSeen(ctx context.Context, userID string, lastSeen time.Time) error

	// GetDocument returns the raw value stored under key, or nil when absent.
	GetDocument(ctx context.Context, userID, key string) ([]byte, error)

	// PutDocument overwrites the value stored under key in one write.
	PutDocument(ctx context.Context, userID, key string, body []byte) error

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
