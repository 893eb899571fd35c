package repository

import (
	"context"

	"shortener/internal/domain"
)

// URLRepository abstracts the mapping store. The store's uniqueness
// constraints are the concurrency control primitive for the whole system:
// Create acts as an atomic insert-if-absent, and the service layer resolves
// races by branching on which constraint rejected the row.
type URLRepository interface {
	// Create inserts a new mapping and fills in its ID and CreatedAt.
	// Returns domain.ErrShortCodeTaken when the candidate code is already
	// claimed, and domain.ErrURLExists when a concurrent writer already
	// mapped the same original URL.
	Create(ctx context.Context, mapping *domain.URLMapping) error

	// GetByShortCode retrieves a mapping by exact short code match.
	// Returns domain.ErrNotFound when no mapping exists.
	GetByShortCode(ctx context.Context, shortCode string) (*domain.URLMapping, error)

	// GetByOriginalURL retrieves a mapping by its original URL, byte-exact.
	// Returns domain.ErrNotFound when no mapping exists.
	GetByOriginalURL(ctx context.Context, originalURL string) (*domain.URLMapping, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}
