package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/movie-magic/movie-magic-backend/internal/catalog"
	"github.com/movie-magic/movie-magic-backend/internal/config"
	httpserver "github.com/movie-magic/movie-magic-backend/internal/http"
	"github.com/movie-magic/movie-magic-backend/internal/identity"
	"github.com/movie-magic/movie-magic-backend/internal/repository"
	"github.com/movie-magic/movie-magic-backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.New(os.Stdout, "[movie-magic] ", log.LstdFlags|log.Lshortfile)

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	storeOpts := store.Options{
		MaxConns:               int32(cfg.DBMaxConns),
		MinConns:               int32(cfg.DBMinConns),
		MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		StatementCacheCapacity: cfg.DBStatementCache,
		Logger:                 logger,
	}

	st, err := store.New(dbCtx, cfg.DBURL, storeOpts)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer st.Close()

	catalogClient, err := catalog.NewHTTPClient(cfg.CatalogURL, cfg.CatalogAPIKey, cfg.CatalogDefaultLanguage, time.Duration(cfg.CatalogTimeoutSecs)*time.Second, logger)
	if err != nil {
		log.Fatalf("init catalog client: %v", err)
	}

	verifier, err := identity.NewHTTPVerifier(cfg.IdentityURL, cfg.IdentityAPIKey, time.Duration(cfg.IdentityTimeoutSecs)*time.Second, logger)
	if err != nil {
		log.Fatalf("init identity verifier: %v", err)
	}

	repo := repository.New(st)
	server := httpserver.New(cfg, st, repo, catalogClient, verifier, logger)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			log.Printf("server error: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("graceful shutdown error: %v", err)
	}
}
