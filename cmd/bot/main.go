package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"id-photo-studio/internal/config"
	"id-photo-studio/internal/editor"
	"id-photo-studio/internal/handlers"
	"id-photo-studio/internal/httpclient"
	"id-photo-studio/internal/mediagroup"
	"id-photo-studio/internal/session"
	"id-photo-studio/internal/telegram"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err == nil {
		err = cfg.RequireTelegram()
	}
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

	tg, err := telegram.New(telegram.Options{
		Token:      cfg.TelegramToken,
		HTTPClient: httpClient,
		Logger:     logger,
		Debug:      cfg.Debug,
	})
	if err != nil {
		logger.Error("telegram init failed", "err", err)
		os.Exit(1)
	}

	model, err := cfg.NewImageEditor(ctx, httpClient, logger)
	if err != nil {
		logger.Error("gemini init failed", "err", err)
		os.Exit(1)
	}

	sessions := session.NewStore(session.Options{})

	handler := handlers.New(handlers.Options{
		Telegram: tg,
		Editor: editor.New(editor.Options{
			Editor:          model,
			Logger:          logger,
			DefaultLang:     cfg.DefaultLang,
			SendAspectRatio: cfg.GeminiSendAspectRatio,
		}),
		Sessions:       sessions,
		Logger:         logger,
		DefaultLang:    cfg.DefaultLang,
		RequestTimeout: cfg.RequestTimeout,
	})

	// Bounded worker group for updates and flushed albums.
	var workers errgroup.Group
	workers.SetLimit(cfg.MaxConcurrent)

	aggregator := mediagroup.New(mediagroup.Options{
		Debounce: cfg.MediaGroupDebounce,
		OnFlush: func(album mediagroup.Album) {
			if ctx.Err() != nil {
				return
			}
			workers.Go(func() error {
				handler.HandleAlbum(ctx, album)
				return nil
			})
		},
	})
	defer aggregator.Stop()
	handler.SetMediaGroupAggregator(aggregator)

	go sweepSessions(ctx, sessions, cfg.SessionTTL, logger)

	logger.Info("bot started",
		"username", tg.Username(),
		"backend", cfg.GeminiBackend,
		"model", cfg.GeminiImageModel,
		"max_concurrent", cfg.MaxConcurrent,
	)

	updates := tg.Updates(telegram.UpdatesOptions{
		Timeout: 30 * time.Second,
	})
	defer tg.StopUpdates()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			_ = workers.Wait()
			return
		case update, ok := <-updates:
			if !ok {
				logger.Info("updates channel closed")
				_ = workers.Wait()
				return
			}

			workers.Go(func() error {
				if err := handler.HandleUpdate(ctx, update); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("handle update failed", "update_id", update.UpdateID, "err", err)
				}
				return nil
			})
		}
	}
}
