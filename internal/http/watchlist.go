package httpserver

import (
	"net/http"
	"time"

	"github.com/movie-magic/movie-magic-backend/internal/domain"
	"github.com/movie-magic/movie-magic-backend/internal/repository"
)

type watchlistCreateRequest struct {
	TmdbID int64  `json:"tmdb_id" validate:"required,gt=0"`
	Type   string `json:"type" validate:"required,oneof=movie tv"`
	Status string `json:"status" validate:"required,oneof=want watching watched"`
}

type watchlistUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=want watching watched"`
}

type watchlistResponse struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	TmdbID    int64     `json:"tmdb_id"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	AddedAt   time.Time `json:"added_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Server) handleCreateWatchlistEntry(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req watchlistCreateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := s.repo.Watchlist.Create(r.Context(), repository.WatchlistCreateParams{
		UserID:    subject,
		TmdbID:    req.TmdbID,
		MediaType: domain.MediaType(req.Type),
		Status:    domain.WatchStatus(req.Status),
	})
	if err != nil {
		s.respondRepoError(w, err, "create watchlist entry")
		return
	}
	s.respondJSON(w, http.StatusCreated, toWatchlistResponse(entry))
}

func (s *Server) handleListWatchlist(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	entries, err := s.repo.Watchlist.ListByOwner(r.Context(), subject)
	if err != nil {
		s.respondRepoError(w, err, "list watchlist")
		return
	}

	items := make([]watchlistResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, toWatchlistResponse(entry))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleUpdateWatchlistEntry(w http.ResponseWriter, r *http.Request) {
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

	var req watchlistUpdateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := s.repo.Watchlist.UpdateStatusOwned(r.Context(), id, subject, domain.WatchStatus(req.Status))
	if err != nil {
		s.respondRepoError(w, err, "update watchlist entry")
		return
	}
	s.respondJSON(w, http.StatusOK, toWatchlistResponse(entry))
}

func (s *Server) handleDeleteWatchlistEntry(w http.ResponseWriter, r *http.Request) {
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

	if err := s.repo.Watchlist.DeleteOwned(r.Context(), id, subject); err != nil {
		s.respondRepoError(w, err, "delete watchlist entry")
		return
	}
	s.respondJSON(w, http.StatusOK, successResponse{Success: true})
}

func toWatchlistResponse(entry domain.WatchlistEntry) watchlistResponse {
	return watchlistResponse{
		ID:        entry.ID,
		UserID:    entry.UserID,
		TmdbID:    entry.TmdbID,
		Type:      string(entry.MediaType),
		Status:    string(entry.Status),
		AddedAt:   entry.AddedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}
