package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movie-magic/movie-magic-backend/internal/domain"
)

// LikesRepository provides helpers for review likes. Likes have no
// surrogate id; the (review, user) pair is unique at the store level and
// re-creating an existing like is a no-op.
type LikesRepository struct {
	pool *pgxpool.Pool
}

// Create records a like. Idempotent: liking an already-liked review
// returns the existing row unchanged.
func (r *LikesRepository) Create(ctx context.Context, reviewID int64, owner string) (domain.Like, error) {
	const query = `
        INSERT INTO likes (review_id, user_id)
        VALUES ($1,$2)
        ON CONFLICT (review_id, user_id) DO UPDATE SET user_id = EXCLUDED.user_id
        RETURNING review_id, user_id, created_at
    `

	var like domain.Like
	err := r.pool.QueryRow(ctx, query, reviewID, owner).Scan(
		&like.ReviewID,
		&like.UserID,
		&like.CreatedAt,
	)
	if err != nil {
		return domain.Like{}, err
	}
	return like, nil
}

// Delete removes the caller's like. Deleting an absent like succeeds:
// the pair is already in the desired state.
func (r *LikesRepository) Delete(ctx context.Context, reviewID int64, owner string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM likes WHERE review_id = $1 AND user_id = $2`, reviewID, owner)
	return err
}

// Status returns the exact like count for a review together with whether
// the given subject is among the likers, in one round trip.
func (r *LikesRepository) Status(ctx context.Context, reviewID int64, subject string) (domain.LikeStatus, error) {
	const query = `
        SELECT COUNT(*)::int8,
               COALESCE(bool_or(user_id = $2), FALSE)
        FROM likes
        WHERE review_id = $1
    `

	var status domain.LikeStatus
	err := r.pool.QueryRow(ctx, query, reviewID, subject).Scan(&status.Count, &status.Liked)
	if err != nil {
		return domain.LikeStatus{}, err
	}
	return status, nil
}
