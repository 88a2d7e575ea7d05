package config

import (
	"context"
	"log/slog"
	"net/http"

	"id-photo-studio/internal/gemini"
)

// NewImageEditor builds the image model client selected by GEMINI_BACKEND.
func (c Config) NewImageEditor(ctx context.Context, httpClient *http.Client, logger *slog.Logger) (gemini.ImageEditor, error) {
	opts := gemini.Options{
		APIKey:     c.GeminiAPIKey,
		BaseURL:    c.GeminiBaseURL,
		APIVersion: c.GeminiAPIVersion,
		Model:      c.GeminiImageModel,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	if c.GeminiBackend == BackendSDK {
		return gemini.NewSDK(ctx, opts)
	}
	return gemini.New(opts), nil
}
