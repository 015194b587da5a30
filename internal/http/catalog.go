package httpserver

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/movie-magic/movie-magic-backend/internal/catalog"
	"github.com/movie-magic/movie-magic-backend/internal/domain"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params, err := buildSearchParams(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	payload, err := s.catalog.Search(r.Context(), params)
	if err != nil {
		s.logger.Printf("catalog search error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to search catalog")
		return
	}
	s.respondRaw(w, http.StatusOK, payload)
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	mediaType, id, err := catalogItemParams(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	payload, err := s.catalog.Details(r.Context(), mediaType, id, r.URL.Query().Get("language"))
	if err != nil {
		s.logger.Printf("catalog details error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to fetch details")
		return
	}
	s.respondRaw(w, http.StatusOK, payload)
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	mediaType, id, err := catalogItemParams(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	page := 0
	if val := strings.TrimSpace(r.URL.Query().Get("page")); val != "" {
		page, err = strconv.Atoi(val)
		if err != nil || page < 1 {
			s.respondError(w, http.StatusBadRequest, "invalid page value")
			return
		}
	}

	payload, err := s.catalog.Similar(r.Context(), mediaType, id, r.URL.Query().Get("language"), page)
	if err != nil {
		s.logger.Printf("catalog similar error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to fetch similar items")
		return
	}
	s.respondRaw(w, http.StatusOK, payload)
}

// buildSearchParams parses the inbound filter set. The translation into
// the catalog dialect itself lives in the catalog client; this only
// validates shape.
func buildSearchParams(query url.Values) (catalog.SearchParams, error) {
	var params catalog.SearchParams

	params.Query = strings.TrimSpace(query.Get("query"))
	if params.Query == "" {
		return params, fmt.Errorf("query is required")
	}

	params.MediaType = domain.MediaTypeMovie
	if val := strings.TrimSpace(query.Get("type")); val != "" {
		mediaType := domain.MediaType(val)
		if !mediaType.Valid() {
			return params, fmt.Errorf("invalid type value")
		}
		params.MediaType = mediaType
	}

	if val := strings.TrimSpace(query.Get("page")); val != "" {
		page, err := strconv.Atoi(val)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid page value")
		}
		params.Page = page
	}
	if val := strings.TrimSpace(query.Get("genre_ids")); val != "" {
		params.GenreIDs = val
	}
	if val := strings.TrimSpace(query.Get("year")); val != "" {
		year, err := strconv.Atoi(val)
		if err != nil {
			return params, fmt.Errorf("invalid year value")
		}
		params.Year = &year
	}
	if val := strings.TrimSpace(query.Get("year_from")); val != "" {
		year, err := strconv.Atoi(val)
		if err != nil {
			return params, fmt.Errorf("invalid year_from value")
		}
		params.YearFrom = &year
	}
	if val := strings.TrimSpace(query.Get("year_to")); val != "" {
		year, err := strconv.Atoi(val)
		if err != nil {
			return params, fmt.Errorf("invalid year_to value")
		}
		params.YearTo = &year
	}
	if val := strings.TrimSpace(query.Get("min_rating")); val != "" {
		rating, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return params, fmt.Errorf("invalid min_rating value")
		}
		params.MinRating = &rating
	}
	if val := strings.TrimSpace(query.Get("language")); val != "" {
		params.Language = val
	}

	return params, nil
}

func catalogItemParams(r *http.Request) (domain.MediaType, int64, error) {
	mediaType := domain.MediaType(chi.URLParam(r, "type"))
	if !mediaType.Valid() {
		return "", 0, fmt.Errorf("invalid type parameter")
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return "", 0, fmt.Errorf("invalid id parameter")
	}
	return mediaType, id, nil
}
