package webapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"id-photo-studio/internal/editor"
	"id-photo-studio/internal/i18n"
)

// PhotoEditor is satisfied by *editor.Service.
type PhotoEditor interface {
	EditIDPhoto(ctx context.Context, req editor.Request) (editor.Image, error)
}

type Options struct {
	Editor         PhotoEditor
	Logger         *slog.Logger
	DefaultLang    i18n.Lang
	MaxUploadBytes int64
	RequestTimeout time.Duration
	Now            func() time.Time
}

type server struct {
	editor         PhotoEditor
	logger         *slog.Logger
	defaultLang    i18n.Lang
	maxUploadBytes int64
	requestTimeout time.Duration
	now            func() time.Time
}

func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 25 << 20
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &server{
		editor:         opts.Editor,
		logger:         logger,
		defaultLang:    i18n.Normalize(opts.DefaultLang),
		maxUploadBytes: maxUpload,
		requestTimeout: opts.RequestTimeout,
		now:            now,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, withLogging(logger))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/options", s.handleOptions)
		r.Post("/prompt", s.handlePrompt)
		r.Post("/id-photo", s.handleIDPhoto)
	})

	return r
}

func withLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"request_id", middleware.GetReqID(r.Context()),
				"dur_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
