package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movie-magic/movie-magic-backend/internal/domain"
)

// WatchlistRepository provides persistence helpers for watchlist entries.
type WatchlistRepository struct {
	pool *pgxpool.Pool
}

const watchlistColumns = `id, user_id, tmdb_id, media_type, status, added_at, updated_at`

const watchlistExistsQuery = `SELECT EXISTS (SELECT 1 FROM watchlist WHERE id = $1)`

// WatchlistCreateParams bundles the fields required to create an entry.
type WatchlistCreateParams struct {
	UserID    string
	TmdbID    int64
	MediaType domain.MediaType
	Status    domain.WatchStatus
}

// Create inserts a new watchlist row and returns the stored entity.
func (r *WatchlistRepository) Create(ctx context.Context, params WatchlistCreateParams) (domain.WatchlistEntry, error) {
	query := fmt.Sprintf(`
        INSERT INTO watchlist (user_id, tmdb_id, media_type, status)
        VALUES ($1,$2,$3,$4)
        RETURNING %s
    `, watchlistColumns)

	row := r.pool.QueryRow(ctx, query, params.UserID, params.TmdbID, params.MediaType, params.Status)
	return scanWatchlistEntry(row)
}

// ListByOwner returns a subject's watchlist, newest first.
func (r *WatchlistRepository) ListByOwner(ctx context.Context, owner string) ([]domain.WatchlistEntry, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM watchlist
        WHERE user_id = $1
        ORDER BY added_at DESC, id DESC
    `, watchlistColumns)

	rows, err := r.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.WatchlistEntry, 0)
	for rows.Next() {
		entry, err := scanWatchlistEntry(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateStatusOwned changes the entry's status, the only mutable field,
// in a single statement scoped by (id, owner).
func (r *WatchlistRepository) UpdateStatusOwned(ctx context.Context, id int64, owner string, status domain.WatchStatus) (domain.WatchlistEntry, error) {
	query := fmt.Sprintf(`
        UPDATE watchlist
        SET status = $3, updated_at = now()
        WHERE id = $1 AND user_id = $2
        RETURNING %s
    `, watchlistColumns)

	entry, err := scanWatchlistEntry(r.pool.QueryRow(ctx, query, id, owner, status))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.WatchlistEntry{}, classifyMiss(ctx, r.pool, watchlistExistsQuery, id)
		}
		return domain.WatchlistEntry{}, err
	}
	return entry, nil
}

// DeleteOwned removes a watchlist entry scoped by (id, owner).
func (r *WatchlistRepository) DeleteOwned(ctx context.Context, id int64, owner string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM watchlist WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return classifyMiss(ctx, r.pool, watchlistExistsQuery, id)
	}
	return nil
}

func scanWatchlistEntry(row pgx.Row) (domain.WatchlistEntry, error) {
	var entry domain.WatchlistEntry
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.TmdbID,
		&entry.MediaType,
		&entry.Status,
		&entry.AddedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return domain.WatchlistEntry{}, err
	}
	return entry, nil
}
