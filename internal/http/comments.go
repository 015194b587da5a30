package httpserver

import (
	"net/http"
	"time"

	"github.com/movie-magic/movie-magic-backend/internal/domain"
	"github.com/movie-magic/movie-magic-backend/internal/repository"
)

type commentCreateRequest struct {
	ReviewID    int64  `json:"review_id" validate:"required,gt=0"`
	CommentText string `json:"comment_text" validate:"required"`
}

type commentUpdateRequest struct {
	CommentText string `json:"comment_text" validate:"required"`
}

type commentResponse struct {
	ID          int64     `json:"id"`
	ReviewID    int64     `json:"review_id"`
	UserID      string    `json:"user_id"`
	CommentText string    `json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req commentCreateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	comment, err := s.repo.Comments.Create(r.Context(), repository.CommentCreateParams{
		ReviewID:    req.ReviewID,
		UserID:      subject,
		CommentText: req.CommentText,
	})
	if err != nil {
		s.respondRepoError(w, err, "create comment")
		return
	}
	s.respondJSON(w, http.StatusCreated, toCommentResponse(comment))
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	reviewID, err := parseInt64Query(r, "review_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	comments, err := s.repo.Comments.ListByReview(r.Context(), reviewID)
	if err != nil {
		s.respondRepoError(w, err, "list comments")
		return
	}

	items := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		items = append(items, toCommentResponse(comment))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := idParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req commentUpdateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	comment, err := s.repo.Comments.UpdateOwned(r.Context(), id, subject, req.CommentText)
	if err != nil {
		s.respondRepoError(w, err, "update comment")
		return
	}
	s.respondJSON(w, http.StatusOK, toCommentResponse(comment))
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := idParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.repo.Comments.DeleteOwned(r.Context(), id, subject); err != nil {
		s.respondRepoError(w, err, "delete comment")
		return
	}
	s.respondJSON(w, http.StatusOK, successResponse{Success: true})
}

func toCommentResponse(comment domain.Comment) commentResponse {
	return commentResponse{
		ID:          comment.ID,
		ReviewID:    comment.ReviewID,
		UserID:      comment.UserID,
		CommentText: comment.CommentText,
		CreatedAt:   comment.CreatedAt,
		UpdatedAt:   comment.UpdatedAt,
	}
}
