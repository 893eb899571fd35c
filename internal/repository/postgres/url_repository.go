package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shortener/internal/domain"
	"shortener/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error code for unique_violation.
const pgErrUniqueViolation = "23505"

// Constraint names from the urls table. Named explicitly in the schema so
// the insert path can tell which uniqueness rule rejected a row.
const (
	constraintShortCode   = "urls_short_code_key"
	constraintOriginalURL = "urls_original_url_key"
)

// urlRepository is the PostgreSQL implementation of repository.URLRepository.
type urlRepository struct {
	db *pgxpool.Pool
}

// NewURLRepository creates a PostgreSQL-backed URL repository.
func NewURLRepository(db *pgxpool.Pool) repository.URLRepository {
	return &urlRepository{db: db}
}

// Create inserts a new mapping. The two unique constraints on the table are
// the authoritative guard against duplicate codes and duplicate URLs; a
// unique violation is translated into the matching domain error so the
// service can branch the two race causes.
func (r *urlRepository) Create(ctx context.Context, mapping *domain.URLMapping) error {
	query := `
		INSERT INTO urls (short_code, original_url)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, mapping.ShortCode, mapping.OriginalURL).
		Scan(&mapping.ID, &mapping.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			switch pgErr.ConstraintName {
			case constraintShortCode:
				return domain.ErrShortCodeTaken
			case constraintOriginalURL:
				return domain.ErrURLExists
			}
			return fmt.Errorf("unexpected unique violation on %q: %w", pgErr.ConstraintName, err)
		}
		return fmt.Errorf("failed to create mapping: %w", err)
	}

	return nil
}

// GetByShortCode retrieves a mapping by exact short code match.
func (r *urlRepository) GetByShortCode(ctx context.Context, shortCode string) (*domain.URLMapping, error) {
	query := `
		SELECT id, short_code, original_url, created_at
		FROM urls
		WHERE short_code = $1
	`

	mapping := &domain.URLMapping{}
	err := r.db.QueryRow(ctx, query, shortCode).Scan(
		&mapping.ID,
		&mapping.ShortCode,
		&mapping.OriginalURL,
		&mapping.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get mapping by short code: %w", err)
	}

	return mapping, nil
}

// GetByOriginalURL retrieves a mapping by its original URL. The URL is
// matched byte-exact: no normalization happens anywhere in the system.
func (r *urlRepository) GetByOriginalURL(ctx context.Context, originalURL string) (*domain.URLMapping, error) {
	query := `
		SELECT id, short_code, original_url, created_at
		FROM urls
		WHERE original_url = $1
	`

	mapping := &domain.URLMapping{}
	err := r.db.QueryRow(ctx, query, originalURL).Scan(
		&mapping.ID,
		&mapping.ShortCode,
		&mapping.OriginalURL,
		&mapping.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get mapping by original URL: %w", err)
	}

	return mapping, nil
}

// Ping verifies connectivity to the database.
func (r *urlRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// InitDB initializes the database connection pool. Called once at startup.
func InitDB(ctx context.Context, dsn string, maxConns, minConns int, maxLifetime time.Duration) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	config.MaxConns = int32(maxConns)
	config.MinConns = int32(minConns)
	config.MaxConnLifetime = maxLifetime
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// Migrate creates the urls table if it does not exist. The constraints are
// named so Create can map unique violations back to domain errors.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS urls (
			id           BIGSERIAL PRIMARY KEY,
			short_code   VARCHAR(16) NOT NULL,
			original_url TEXT NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT urls_short_code_key UNIQUE (short_code),
			CONSTRAINT urls_original_url_key UNIQUE (original_url)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create urls table: %w", err)
	}
	return nil
}
