package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/movie-magic/movie-magic-backend/internal/domain"
	"github.com/movie-magic/movie-magic-backend/internal/repository"
)

type favoriteCreateRequest struct {
	TmdbID int64  `json:"tmdb_id" validate:"required,gt=0"`
	Type   string `json:"type" validate:"required,oneof=movie tv"`
}

type favoriteResponse struct {
	ID      int64     `json:"id"`
	UserID  string    `json:"user_id"`
	TmdbID  int64     `json:"tmdb_id"`
	Type    string    `json:"type"`
	AddedAt time.Time `json:"added_at"`
}

func (s *Server) handleCreateFavorite(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req favoriteCreateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	favorite, err := s.repo.Favorites.Create(r.Context(), repository.FavoriteCreateParams{
		UserID:    subject,
		TmdbID:    req.TmdbID,
		MediaType: domain.MediaType(req.Type),
	})
	if err != nil {
		s.respondRepoError(w, err, "create favorite")
		return
	}
	s.respondJSON(w, http.StatusCreated, toFavoriteResponse(favorite))
}

// handleListFavorites is public: profiles are shareable, so the owner is
// named by query parameter rather than derived from a credential.
func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	owner := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if owner == "" {
		s.respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	favorites, err := s.repo.Favorites.ListByOwner(r.Context(), owner)
	if err != nil {
		s.respondRepoError(w, err, "list favorites")
		return
	}

	items := make([]favoriteResponse, 0, len(favorites))
	for _, favorite := range favorites {
		items = append(items, toFavoriteResponse(favorite))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleDeleteFavorite(w http.ResponseWriter, r *http.Request) {
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

	if err := s.repo.Favorites.DeleteOwned(r.Context(), id, subject); err != nil {
		s.respondRepoError(w, err, "delete favorite")
		return
	}
	s.respondJSON(w, http.StatusOK, successResponse{Success: true})
}

func toFavoriteResponse(favorite domain.Favorite) favoriteResponse {
	return favoriteResponse{
		ID:      favorite.ID,
		UserID:  favorite.UserID,
		TmdbID:  favorite.TmdbID,
		Type:    string(favorite.MediaType),
		AddedAt: favorite.AddedAt,
	}
}
