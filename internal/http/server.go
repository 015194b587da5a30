package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/movie-magic/movie-magic-backend/internal/catalog"
	"github.com/movie-magic/movie-magic-backend/internal/config"
	"github.com/movie-magic/movie-magic-backend/internal/identity"
	"github.com/movie-magic/movie-magic-backend/internal/repository"
	"github.com/movie-magic/movie-magic-backend/internal/store"
)

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg      config.Config
	store    *store.Store
	repo     *repository.Repository
	catalog  catalog.Client
	identity identity.Verifier
	logger   *log.Logger
	router   chi.Router
	httpSrv  *http.Server
}

// New constructs the HTTP server with base middleware and routes.
func New(cfg config.Config, st *store.Store, repo *repository.Repository, catalogClient catalog.Client, verifier identity.Verifier, logger *log.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:      cfg,
		store:    st,
		repo:     repo,
		catalog:  catalogClient,
		identity: verifier,
		logger:   logger,
		router:   r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)

		r.Get("/reviews", s.handleListReviews)
		r.Get("/comments", s.handleListComments)
		r.Get("/favorites", s.handleListFavorites)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Post("/reviews", s.handleCreateReview)
			r.Put("/reviews/{id:[0-9]+}", s.handleUpdateReview)
			r.Delete("/reviews/{id:[0-9]+}", s.handleDeleteReview)

			r.Post("/comments", s.handleCreateComment)
			r.Put("/comments/{id:[0-9]+}", s.handleUpdateComment)
			r.Delete("/comments/{id:[0-9]+}", s.handleDeleteComment)

			r.Post("/likes", s.handleCreateLike)
			r.Get("/likes", s.handleLikeStatus)
			r.Delete("/likes", s.handleDeleteLike)

			r.Post("/favorites", s.handleCreateFavorite)
			r.Delete("/favorites/{id:[0-9]+}", s.handleDeleteFavorite)

			r.Post("/watchlist", s.handleCreateWatchlistEntry)
			r.Get("/watchlist", s.handleListWatchlist)
			r.Put("/watchlist/{id:[0-9]+}", s.handleUpdateWatchlistEntry)
			r.Delete("/watchlist/{id:[0-9]+}", s.handleDeleteWatchlistEntry)
		})

		// Registered after the static routes; chi prefers those over the
		// {type} wildcard.
		r.Get("/{type:movie|tv}/{id:[0-9]+}", s.handleDetails)
		r.Get("/{type:movie|tv}/{id:[0-9]+}/similar", s.handleSimilar)
	})
}

// Start boots the HTTP server asynchronously.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.HealthCheck(ctx); err != nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// contextKey is unexported so only this package can read or write the
// authenticated subject in a request context.
type contextKey string

const subjectKey contextKey = "subject"

// requireAuth gates protected routes. The verifier collapses every failure
// subtype into the same unauthorized outcome, so the response never leaks
// why a credential was rejected. Unauthenticated requests stop here and
// never reach the repositories.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			s.respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		subject, err := s.identity.Verify(r.Context(), token)
		if err != nil {
			s.respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		ctx := context.WithValue(r.Context(), subjectKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the credential from a standard authorization header.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// subjectFromContext returns the authenticated subject placed by requireAuth.
func subjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok && subject != ""
}
