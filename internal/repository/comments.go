package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movie-magic/movie-magic-backend/internal/domain"
)

// CommentsRepository provides persistence helpers for review comments.
type CommentsRepository struct {
	pool *pgxpool.Pool
}

const commentColumns = `id, review_id, user_id, comment_text, created_at, updated_at`

const commentExistsQuery = `SELECT EXISTS (SELECT 1 FROM comments WHERE id = $1)`

// CommentCreateParams bundles the fields required to create a comment.
type CommentCreateParams struct {
	ReviewID    int64
	UserID      string
	CommentText string
}

// Create inserts a new comment row and returns the stored entity.
// A dangling review reference fails on the foreign key.
func (r *CommentsRepository) Create(ctx context.Context, params CommentCreateParams) (domain.Comment, error) {
	query := fmt.Sprintf(`
        INSERT INTO comments (review_id, user_id, comment_text)
        VALUES ($1,$2,$3)
        RETURNING %s
    `, commentColumns)

	row := r.pool.QueryRow(ctx, query, params.ReviewID, params.UserID, params.CommentText)
	return scanComment(row)
}

// ListByReview returns a review's comments in chronological thread order,
// oldest first.
func (r *CommentsRepository) ListByReview(ctx context.Context, reviewID int64) ([]domain.Comment, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM comments
        WHERE review_id = $1
        ORDER BY created_at ASC, id ASC
    `, commentColumns)

	rows, err := r.pool.Query(ctx, query, reviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateOwned updates the comment body in a single statement scoped by
// (id, owner).
func (r *CommentsRepository) UpdateOwned(ctx context.Context, id int64, owner, commentText string) (domain.Comment, error) {
	query := fmt.Sprintf(`
        UPDATE comments
        SET comment_text = $3, updated_at = now()
        WHERE id = $1 AND user_id = $2
        RETURNING %s
    `, commentColumns)

	comment, err := scanComment(r.pool.QueryRow(ctx, query, id, owner, commentText))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Comment{}, classifyMiss(ctx, r.pool, commentExistsQuery, id)
		}
		return domain.Comment{}, err
	}
	return comment, nil
}

// DeleteOwned removes a comment scoped by (id, owner).
func (r *CommentsRepository) DeleteOwned(ctx context.Context, id int64, owner string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return classifyMiss(ctx, r.pool, commentExistsQuery, id)
	}
	return nil
}

func scanComment(row pgx.Row) (domain.Comment, error) {
	var comment domain.Comment
	err := row.Scan(
		&comment.ID,
		&comment.ReviewID,
		&comment.UserID,
		&comment.CommentText,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}
