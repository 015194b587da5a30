package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movie-magic/movie-magic-backend/internal/domain"
)

// ReviewsRepository provides persistence helpers for review entities.
type ReviewsRepository struct {
	pool *pgxpool.Pool
}

const reviewColumns = `id, user_id, tmdb_id, media_type, rating, review_text, created_at, updated_at`

const reviewExistsQuery = `SELECT EXISTS (SELECT 1 FROM reviews WHERE id = $1)`

// ReviewCreateParams bundles the fields required to create a review.
// UserID is always the verified subject, never a client-supplied value.
type ReviewCreateParams struct {
	UserID     string
	TmdbID     int64
	MediaType  domain.MediaType
	Rating     int
	ReviewText string
}

// Create inserts a new review row and returns the stored entity.
func (r *ReviewsRepository) Create(ctx context.Context, params ReviewCreateParams) (domain.Review, error) {
	query := fmt.Sprintf(`
        INSERT INTO reviews (user_id, tmdb_id, media_type, rating, review_text)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING %s
    `, reviewColumns)

	row := r.pool.QueryRow(ctx, query, params.UserID, params.TmdbID, params.MediaType, params.Rating, params.ReviewText)
	return scanReview(row)
}

// ListByItem returns all reviews for one catalog item, newest first.
func (r *ReviewsRepository) ListByItem(ctx context.Context, tmdbID int64, mediaType domain.MediaType) ([]domain.Review, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM reviews
        WHERE tmdb_id = $1 AND media_type = $2
        ORDER BY created_at DESC, id DESC
    `, reviewColumns)

	rows, err := r.pool.Query(ctx, query, tmdbID, mediaType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// GetByID fetches a review by its identifier.
func (r *ReviewsRepository) GetByID(ctx context.Context, id int64) (domain.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE id = $1`, reviewColumns)
	review, err := scanReview(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, err
	}
	return review, nil
}

// UpdateOwned updates rating and body of a review in a single statement
// scoped by (id, owner). Owner and item reference are immutable.
func (r *ReviewsRepository) UpdateOwned(ctx context.Context, id int64, owner string, rating int, reviewText string) (domain.Review, error) {
	query := fmt.Sprintf(`
        UPDATE reviews
        SET rating = $3, review_text = $4, updated_at = now()
        WHERE id = $1 AND user_id = $2
        RETURNING %s
    `, reviewColumns)

	review, err := scanReview(r.pool.QueryRow(ctx, query, id, owner, rating, reviewText))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Review{}, classifyMiss(ctx, r.pool, reviewExistsQuery, id)
		}
		return domain.Review{}, err
	}
	return review, nil
}

// DeleteOwned removes a review scoped by (id, owner). Attached comments
// and likes cascade at the store level.
func (r *ReviewsRepository) DeleteOwned(ctx context.Context, id int64, owner string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return classifyMiss(ctx, r.pool, reviewExistsQuery, id)
	}
	return nil
}

func scanReview(row pgx.Row) (domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.TmdbID,
		&review.MediaType,
		&review.Rating,
		&review.ReviewText,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return domain.Review{}, err
	}
	return review, nil
}
