package inmemory

import (
	"context"
	"sync"
	"time"

	"shortener/internal/domain"
	"shortener/internal/repository"
)

// Store is an in-memory implementation of repository.URLRepository with the
// same uniqueness semantics as the PostgreSQL schema: one row per short code
// and one row per original URL, arbitrated under a single mutex so that
// concurrent Create calls observe insert-if-absent behavior. Used by tests
// that need real insert-if-absent arbitration rather than a mock.
type Store struct {
	mu     sync.Mutex
	byCode map[string]*domain.URLMapping
	byURL  map[string]*domain.URLMapping
	nextID int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		byCode: make(map[string]*domain.URLMapping),
		byURL:  make(map[string]*domain.URLMapping),
	}
}

var _ repository.URLRepository = (*Store)(nil)

// Create inserts a mapping, enforcing both uniqueness constraints
// atomically. The URL check runs first, mirroring the order a concurrent
// shorten race hits in practice: the loser should learn the URL is claimed,
// not that its fresh code collided.
func (s *Store) Create(_ context.Context, mapping *domain.URLMapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byURL[mapping.OriginalURL]; ok {
		return domain.ErrURLExists
	}
	if _, ok := s.byCode[mapping.ShortCode]; ok {
		return domain.ErrShortCodeTaken
	}

	s.nextID++
	mapping.ID = s.nextID
	mapping.CreatedAt = time.Now()

	stored := *mapping
	s.byCode[mapping.ShortCode] = &stored
	s.byURL[mapping.OriginalURL] = &stored

	return nil
}

// GetByShortCode retrieves a mapping by exact short code match.
func (s *Store) GetByShortCode(_ context.Context, shortCode string) (*domain.URLMapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mapping, ok := s.byCode[shortCode]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *mapping
	return &copied, nil
}

// GetByOriginalURL retrieves a mapping by its original URL, byte-exact.
func (s *Store) GetByOriginalURL(_ context.Context, originalURL string) (*domain.URLMapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mapping, ok := s.byURL[originalURL]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *mapping
	return &copied, nil
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// Len returns the number of stored mappings.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byCode)
}
