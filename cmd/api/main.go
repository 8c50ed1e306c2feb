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

	"github.com/joho/godotenv"

	"github.com/cvescope/backend/internal/config"
	"github.com/cvescope/backend/internal/handler"
	"github.com/cvescope/backend/internal/handler/assets"
	"github.com/cvescope/backend/internal/service/flags"
	"github.com/cvescope/backend/internal/service/inference"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var inferenceSvc inference.Service
	if cfg.Inference.Enabled() {
		inferenceSvc, err = inference.New(ctx, cfg.Inference)
		if err != nil {
			log.Printf("warning: failed to initialize inference service: %v", err)
			log.Println("continuing without inference; /api/chat will report errors")
			inferenceSvc = nil
		} else {
			log.Printf("inference provider %q ready (model=%s, max_tokens=%d, stream=%v)",
				cfg.Inference.Provider, cfg.Inference.Model, cfg.Inference.MaxTokens, cfg.Inference.Stream)
		}
	} else {
		log.Println("inference credentials not configured; /api/chat will report errors")
	}

	// Key-value flag binding, declared for deployments that toggle behavior
	// out of band. No request path reads it.
	flagStore := flags.NewMemoryStore(nil)

	var assetHandler http.Handler
	if cfg.Assets.Dir != "" {
		assetHandler = assets.New(cfg.Assets.Dir)
		log.Printf("serving static assets from %s", cfg.Assets.Dir)
	} else {
		log.Println("static asset dir not configured; non-API paths return 404")
	}

	router := handler.NewRouter(handler.Bindings{
		Inference:    inferenceSvc,
		Assets:       assetHandler,
		SystemPrompt: cfg.Prompt.System,
		Stream:       cfg.Inference.Stream,
		Flags:        flagStore,
	})

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("cvescope gateway listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
