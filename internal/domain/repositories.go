package domain

import (
	"context"
)

// CatalogRepository provides access to the two remote collections.
// Implementations are thin I/O wrappers; all caching happens above them.
type CatalogRepository interface {
	// ListItems returns the full collection of a kind, ordered by rating
	// descending (server-defined order).
	ListItems(ctx context.Context, kind Kind) ([]Item, error)

	// GetItem returns a single item or ErrNotFound.
	GetItem(ctx context.Context, kind Kind, id string) (Item, error)

	// InsertItem creates a new item and returns the stored record.
	InsertItem(ctx context.Context, kind Kind, fields ItemFields) (Item, error)

	// UpdateItem replaces an item's mutable fields and returns the stored record.
	UpdateItem(ctx context.Context, kind Kind, id string, fields ItemFields) (Item, error)

	// DeleteItem removes an item.
	DeleteItem(ctx context.Context, kind Kind, id string) error
}

// ReviewRepository provides access to per-item review threads.
type ReviewRepository interface {
	// ListReviews returns an item's reviews ordered by creation time
	// descending (newest first).
	ListReviews(ctx context.Context, kind Kind, itemID string) ([]Review, error)

	// InsertReview creates a review and returns the stored record.
	InsertReview(ctx context.Context, kind Kind, review Review) (Review, error)
}

// Authenticator checks credentials once at session start.
type Authenticator interface {
	// Authenticate returns the user's identity or ErrAuthFailed.
	Authenticate(ctx context.Context, username, password string) (User, error)
}
