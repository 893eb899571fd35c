package service

import (
	"context"
	"errors"
	"fmt"

	"shortener/internal/domain"
	"shortener/internal/metrics"
	"shortener/internal/repository"
	"shortener/pkg/validator"
)

// maxCreateAttempts caps the generate-and-insert loop. A collision on an
// 8-character base62 code has probability ~1/62^8 per attempt, so hitting
// the cap means the store or the random source is misbehaving.
const maxCreateAttempts = 10

// Cache is the subset of cache operations the service needs. The cache is
// an optimization only; every answer it gives must also exist in the store.
type Cache interface {
	GetMapping(ctx context.Context, shortCode string) (*domain.URLMapping, error)
	SetMapping(ctx context.Context, mapping *domain.URLMapping) error
}

// URLService owns short code allocation and lookup. It holds no mutable
// state of its own: correctness under concurrent writers is delegated
// entirely to the store's uniqueness constraints.
type URLService struct {
	repo       repository.URLRepository
	cache      Cache // may be nil when Redis is disabled
	codeLength int
}

// NewURLService creates the shortener service. cache may be nil.
func NewURLService(repo repository.URLRepository, cache Cache, codeLength int) *URLService {
	return &URLService{
		repo:       repo,
		cache:      cache,
		codeLength: codeLength,
	}
}

// Shorten returns the mapping for originalURL, creating it on first use.
// Shortening is strictly idempotent: the same URL always yields the same
// code, including when multiple callers submit it concurrently.
//
// The write path is a compare-and-swap loop over the store's constraints:
//  1. Look up an existing mapping by original URL and return it if present.
//  2. Generate a random candidate code and attempt the insert.
//  3. If the code was already claimed, regenerate and retry up to the cap.
//     If the URL was claimed by a concurrent writer between steps 1 and 2,
//     re-query and return the winner's mapping instead of erroring.
func (s *URLService) Shorten(ctx context.Context, originalURL string) (*domain.URLMapping, error) {
	// Validation never reaches the store.
	if err := validator.ValidateURL(originalURL); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByOriginalURL(ctx, originalURL)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up original URL: %w", err)
	}

	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		code, err := GenerateShortCode(s.codeLength)
		if err != nil {
			return nil, err
		}

		mapping := domain.NewURLMapping(originalURL, code)

		err = s.repo.Create(ctx, mapping)
		switch {
		case err == nil:
			metrics.RecordURLCreated()
			s.cacheSet(ctx, mapping)
			return mapping, nil

		case errors.Is(err, domain.ErrShortCodeTaken):
			metrics.RecordShortCodeCollision()
			continue

		case errors.Is(err, domain.ErrURLExists):
			// Lost the race on this URL. The winner's row is committed, so
			// read it back and return the same code every caller sees.
			winner, err := s.repo.GetByOriginalURL(ctx, originalURL)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch winning mapping: %w", err)
			}
			return winner, nil

		default:
			return nil, fmt.Errorf("failed to store mapping: %w", err)
		}
	}

	return nil, domain.ErrTooManyCollisions
}

// Resolve returns the mapping for an exact short code. A missing code
// surfaces as domain.ErrNotFound, which is a normal outcome rather than a
// failure.
func (s *URLService) Resolve(ctx context.Context, shortCode string) (*domain.URLMapping, error) {
	if s.cache != nil {
		cached, err := s.cache.GetMapping(ctx, shortCode)
		if err == nil && cached != nil {
			return cached, nil
		}
		// Cache errors degrade to the store, never to the caller.
	}

	mapping, err := s.repo.GetByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve short code: %w", err)
	}

	s.cacheSet(ctx, mapping)

	return mapping, nil
}

// cacheSet best-effort stores a mapping in cache. Failures are ignored: the
// store already holds the row.
func (s *URLService) cacheSet(ctx context.Context, mapping *domain.URLMapping) {
	if s.cache == nil {
		return
	}
	_ = s.cache.SetMapping(ctx, mapping)
}
