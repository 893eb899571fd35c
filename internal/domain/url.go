package domain

import (
	"errors"
	"time"
)

// URLMapping is the sole entity in the system: one short code mapped
// one-to-one to an original URL. All fields are immutable once stored;
// mappings are never updated or deleted.
type URLMapping struct {
	ID          int64     // Surrogate key, assigned by the store
	ShortCode   string    // Fixed-length alphanumeric code, globally unique
	OriginalURL string    // Destination URL, stored verbatim
	CreatedAt   time.Time // When the mapping was first created
}

// Domain errors. Callers branch on these with errors.Is, so they must stay
// stable sentinels.
var (
	// ErrNotFound means no mapping exists for the given short code. This is
	// a normal outcome of a lookup, not a failure.
	ErrNotFound = errors.New("short code not found")

	// ErrShortCodeTaken means an insert lost to a row that already holds the
	// candidate short code. The caller regenerates and retries.
	ErrShortCodeTaken = errors.New("short code already taken")

	// ErrURLExists means an insert lost to a concurrent writer that claimed
	// the same original URL first. The caller re-queries and returns the
	// winner's code.
	ErrURLExists = errors.New("original URL already mapped")

	// ErrTooManyCollisions means the generate-and-insert loop exhausted its
	// attempt cap. With an 8-character base62 code space this indicates a
	// degenerate store or random source, so it is surfaced, not retried.
	ErrTooManyCollisions = errors.New("could not allocate a unique short code")
)

// NewURLMapping creates a mapping ready for insertion. ID and CreatedAt are
// filled in by the store.
func NewURLMapping(originalURL, shortCode string) *URLMapping {
	return &URLMapping{
		OriginalURL: originalURL,
		ShortCode:   shortCode,
	}
}
