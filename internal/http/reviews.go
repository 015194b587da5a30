package httpserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/movie-magic/movie-magic-backend/internal/domain"
	"github.com/movie-magic/movie-magic-backend/internal/repository"
)

type reviewCreateRequest struct {
	TmdbID     int64  `json:"tmdb_id" validate:"required,gt=0"`
	Type       string `json:"type" validate:"required,oneof=movie tv"`
	Rating     int    `json:"rating" validate:"required,gte=1,lte=10"`
	ReviewText string `json:"review_text" validate:"required"`
	// Accepted so clients sending it don't trip the strict decoder, but
	// never read: the owner always comes from the verified subject.
	UserID string `json:"user_id"`
}

type reviewUpdateRequest struct {
	Rating     int    `json:"rating" validate:"required,gte=1,lte=10"`
	ReviewText string `json:"review_text" validate:"required"`
}

type reviewResponse struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	TmdbID     int64     `json:"tmdb_id"`
	Type       string    `json:"type"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req reviewCreateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	review, err := s.repo.Reviews.Create(r.Context(), repository.ReviewCreateParams{
		UserID:     subject,
		TmdbID:     req.TmdbID,
		MediaType:  domain.MediaType(req.Type),
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	})
	if err != nil {
		s.respondRepoError(w, err, "create review")
		return
	}
	s.respondJSON(w, http.StatusCreated, toReviewResponse(review))
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	tmdbID, err := parseInt64Query(r, "tmdb_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	mediaType := domain.MediaType(strings.TrimSpace(r.URL.Query().Get("type")))
	if !mediaType.Valid() {
		s.respondError(w, http.StatusBadRequest, "invalid type value")
		return
	}

	reviews, err := s.repo.Reviews.ListByItem(r.Context(), tmdbID, mediaType)
	if err != nil {
		s.respondRepoError(w, err, "list reviews")
		return
	}

	items := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, toReviewResponse(review))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
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

	var req reviewUpdateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	review, err := s.repo.Reviews.UpdateOwned(r.Context(), id, subject, req.Rating, req.ReviewText)
	if err != nil {
		s.respondRepoError(w, err, "update review")
		return
	}
	s.respondJSON(w, http.StatusOK, toReviewResponse(review))
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
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

	if err := s.repo.Reviews.DeleteOwned(r.Context(), id, subject); err != nil {
		s.respondRepoError(w, err, "delete review")
		return
	}
	s.respondJSON(w, http.StatusOK, successResponse{Success: true})
}

func toReviewResponse(review domain.Review) reviewResponse {
	return reviewResponse{
		ID:         review.ID,
		UserID:     review.UserID,
		TmdbID:     review.TmdbID,
		Type:       string(review.MediaType),
		Rating:     review.Rating,
		ReviewText: review.ReviewText,
		CreatedAt:  review.CreatedAt,
		UpdatedAt:  review.UpdatedAt,
	}
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id parameter")
	}
	return id, nil
}

func parseInt64Query(r *http.Request, key string) (int64, error) {
	val := strings.TrimSpace(r.URL.Query().Get(key))
	if val == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("invalid %s value", key)
	}
	return parsed, nil
}
