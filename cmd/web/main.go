package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"id-photo-studio/internal/config"
	"id-photo-studio/internal/editor"
	"id-photo-studio/internal/httpclient"
	"id-photo-studio/internal/webapi"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient := httpclient.New(httpclient.Options{
		PreferIPv4: cfg.PreferIPv4,
		Timeout:    cfg.HTTPTimeout,
		Logger:     logger,
	})

	model, err := cfg.NewImageEditor(ctx, httpClient, logger)
	if err != nil {
		logger.Error("gemini init failed", "err", err)
		os.Exit(1)
	}

	svc := editor.New(editor.Options{
		Editor:          model,
		Logger:          logger,
		DefaultLang:     cfg.DefaultLang,
		SendAspectRatio: cfg.GeminiSendAspectRatio,
	})

	srv := &http.Server{
		Addr: cfg.WebAddr,
		Handler: webapi.NewRouter(webapi.Options{
			Editor:         svc,
			Logger:         logger,
			DefaultLang:    cfg.DefaultLang,
			MaxUploadBytes: cfg.MaxUploadBytes,
			RequestTimeout: cfg.RequestTimeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 30*time.Second,
		IdleTimeout:       90 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("web started",
			"addr", cfg.WebAddr,
			"backend", cfg.GeminiBackend,
			"model", cfg.GeminiImageModel,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
