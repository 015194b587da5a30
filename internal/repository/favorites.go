package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movie-magic/movie-magic-backend/internal/domain"
)

// FavoritesRepository provides persistence helpers for favorites.
type FavoritesRepository struct {
	pool *pgxpool.Pool
}

const favoriteColumns = `id, user_id, tmdb_id, media_type, added_at`

const favoriteExistsQuery = `SELECT EXISTS (SELECT 1 FROM favorites WHERE id = $1)`

// FavoriteCreateParams bundles the fields required to create a favorite.
type FavoriteCreateParams struct {
	UserID    string
	TmdbID    int64
	MediaType domain.MediaType
}

// Create records a favorite, deduplicated on (owner, item, type).
// Favoriting the same item twice returns the existing row.
func (r *FavoritesRepository) Create(ctx context.Context, params FavoriteCreateParams) (domain.Favorite, error) {
	query := fmt.Sprintf(`
        INSERT INTO favorites (user_id, tmdb_id, media_type)
        VALUES ($1,$2,$3)
        ON CONFLICT (user_id, tmdb_id, media_type) DO UPDATE SET tmdb_id = EXCLUDED.tmdb_id
        RETURNING %s
    `, favoriteColumns)

	row := r.pool.QueryRow(ctx, query, params.UserID, params.TmdbID, params.MediaType)
	return scanFavorite(row)
}

// ListByOwner returns a subject's favorites, newest first.
func (r *FavoritesRepository) ListByOwner(ctx context.Context, owner string) ([]domain.Favorite, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM favorites
        WHERE user_id = $1
        ORDER BY added_at DESC, id DESC
    `, favoriteColumns)

	rows, err := r.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.Favorite, 0)
	for rows.Next() {
		favorite, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, favorite)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteOwned removes a favorite scoped by (id, owner).
func (r *FavoritesRepository) DeleteOwned(ctx context.Context, id int64, owner string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return classifyMiss(ctx, r.pool, favoriteExistsQuery, id)
	}
	return nil
}

func scanFavorite(row pgx.Row) (domain.Favorite, error) {
	var favorite domain.Favorite
	err := row.Scan(
		&favorite.ID,
		&favorite.UserID,
		&favorite.TmdbID,
		&favorite.MediaType,
		&favorite.AddedAt,
	)
	if err != nil {
		return domain.Favorite{}, err
	}
	return favorite, nil
}
