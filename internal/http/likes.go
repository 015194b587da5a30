package httpserver

import (
	"net/http"
	"time"

	"github.com/movie-magic/movie-magic-backend/internal/domain"
)

type likeCreateRequest struct {
	ReviewID int64 `json:"review_id" validate:"required,gt=0"`
}

type likeResponse struct {
	ReviewID  int64     `json:"review_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type likeStatusResponse struct {
	Count int64 `json:"count"`
	Liked bool  `json:"liked"`
}

func (s *Server) handleCreateLike(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req likeCreateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	like, err := s.repo.Likes.Create(r.Context(), req.ReviewID, subject)
	if err != nil {
		s.respondRepoError(w, err, "create like")
		return
	}
	s.respondJSON(w, http.StatusCreated, toLikeResponse(like))
}

// handleLikeStatus composes the exact count with the caller's own liked
// flag; the toggle decision stays with the client.
func (s *Server) handleLikeStatus(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	reviewID, err := parseInt64Query(r, "review_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	status, err := s.repo.Likes.Status(r.Context(), reviewID, subject)
	if err != nil {
		s.respondRepoError(w, err, "fetch like status")
		return
	}
	s.respondJSON(w, http.StatusOK, likeStatusResponse{Count: status.Count, Liked: status.Liked})
}

// handleDeleteLike removes the caller's like. The pair key already scopes
// the delete to the subject, so no separate ownership check is needed.
func (s *Server) handleDeleteLike(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	reviewID, err := parseInt64Query(r, "review_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.repo.Likes.Delete(r.Context(), reviewID, subject); err != nil {
		s.respondRepoError(w, err, "delete like")
		return
	}
	s.respondJSON(w, http.StatusOK, successResponse{Success: true})
}

func toLikeResponse(like domain.Like) likeResponse {
	return likeResponse{
		ReviewID:  like.ReviewID,
		UserID:    like.UserID,
		CreatedAt: like.CreatedAt,
	}
}
