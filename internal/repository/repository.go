package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movie-magic/movie-magic-backend/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// ErrForbidden indicates the entity exists but is owned by another subject.
var ErrForbidden = errors.New("repository: forbidden")

// Repository aggregates the per-kind annotation repositories.
type Repository struct {
	Reviews   *ReviewsRepository
	Comments  *CommentsRepository
	Likes     *LikesRepository
	Favorites *FavoritesRepository
	Watchlist *WatchlistRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Reviews:   &ReviewsRepository{pool: pool},
		Comments:  &CommentsRepository{pool: pool},
		Likes:     &LikesRepository{pool: pool},
		Favorites: &FavoritesRepository{pool: pool},
		Watchlist: &WatchlistRepository{pool: pool},
	}
}

// classifyMiss resolves why an owner-scoped mutation touched zero rows.
// existsQuery must be a single-column EXISTS query over the record id.
// A record that exists belongs to someone else; one that doesn't is a
// lookup failure. The existence check runs only on the miss path, so the
// happy path stays a single conditional statement.
func classifyMiss(ctx context.Context, pool *pgxpool.Pool, existsQuery string, id int64) error {
	var exists bool
	if err := pool.QueryRow(ctx, existsQuery, id).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrForbidden
	}
	return ErrNotFound
}
