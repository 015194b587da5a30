package httpserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"github.com/movie-magic/movie-magic-backend/internal/repository"
)

const maxRequestBody = 1 << 20 // 1 MiB

// validate is shared across handlers; validator caches struct metadata and
// is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// decodeAndValidate decodes the request body into dst and runs its
// validation tags. Any failure has already been responded to with a 400.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := decodeJSONBody(w, r, dst); err != nil {
		s.respondDecodeError(w, err)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		s.respondValidationError(w, err)
		return false
	}
	return true
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Printf("failed to encode response: %v", err)
		}
	}
}

// respondRaw relays upstream bytes verbatim.
func (s *Server) respondRaw(w http.ResponseWriter, status int, payload json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		s.logger.Printf("failed to write response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Error: message})
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, http.StatusBadRequest, "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusBadRequest, "Request body cannot be empty")
	default:
		s.respondError(w, http.StatusBadRequest, "Unable to parse request body")
	}
}

func (s *Server) respondValidationError(w http.ResponseWriter, err error) {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	details := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		details = append(details, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	s.respondJSON(w, http.StatusBadRequest, errorResponse{
		Error:   "Invalid request body",
		Details: details,
	})
}

// respondRepoError maps repository failures onto the status contract:
// another subject's record is Forbidden, everything else (including a
// missing record) surfaces as a generic service error.
func (s *Server) respondRepoError(w http.ResponseWriter, err error, action string) {
	if errors.Is(err, repository.ErrForbidden) {
		s.respondError(w, http.StatusForbidden, "Forbidden")
		return
	}
	s.logger.Printf("%s: %v", action, err)
	s.respondError(w, http.StatusInternalServerError, "Failed to "+action)
}
