package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"id-photo-studio/internal/gemini"
	"id-photo-studio/internal/i18n"
	"id-photo-studio/internal/idphoto"
)

type Options struct {
	Editor gemini.ImageEditor
	Logger *slog.Logger
	// DefaultLang is used when a request carries no locale.
	DefaultLang i18n.Lang
	// SendAspectRatio adds the crop ratio as an imageConfig hint.
	SendAspectRatio bool
}

// Service turns option choices plus a portrait into an ID photo. It holds no
// mutable state and may be shared between goroutines.
type Service struct {
	editor          gemini.ImageEditor
	logger          *slog.Logger
	defaultLang     i18n.Lang
	sendAspectRatio bool
}

type Request struct {
	Source  SourceImage
	Options idphoto.Options
	// Locale is a language tag or Accept-Language value for failure messages.
	Locale string
}

func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		editor:          opts.Editor,
		logger:          logger,
		defaultLang:     i18n.Normalize(opts.DefaultLang),
		sendAspectRatio: opts.SendAspectRatio,
	}
}

// EditIDPhoto makes exactly one call to the image model. Any error returned
// is a *Failure.
func (s *Service) EditIDPhoto(ctx context.Context, req Request) (Image, error) {
	lang := i18n.Match(s.defaultLang, req.Locale)
	prompt := idphoto.CompilePrompt(req.Options)

	editReq := gemini.EditRequest{
		Image:  gemini.ImageInput{Data: req.Source.Data, MimeType: req.Source.MIMEType},
		Prompt: prompt,
	}
	if s.sendAspectRatio {
		editReq.AspectRatio = req.Options.Size.AspectRatio()
	}

	resp, err := s.call(ctx, editReq)
	if err != nil {
		s.logger.Error("gemini edit failed",
			"err", err,
			"mime", req.Source.MIMEType,
			"size", req.Options.Size,
			"background", req.Options.Background,
			"attire", req.Options.Attire,
		)
		return Image{}, &Failure{
			Kind:    ErrTransport,
			Message: i18n.T(lang, i18n.MsgTransport),
			cause:   err,
		}
	}

	if blob, ok := resp.FirstImage(); ok {
		return Image{MIMEType: blob.MimeType, Data: blob.Data}, nil
	}

	text := resp.Text()
	s.logger.Warn("gemini returned no image",
		"text", text,
		"finish_reason", resp.FinishReason,
		"block_reason", resp.BlockReason,
	)
	if strings.TrimSpace(text) == "" {
		text = i18n.T(lang, i18n.MsgNoImagePlaceholder)
	}
	return Image{}, &Failure{
		Kind:    ErrNoImageReturned,
		Message: i18n.T(lang, i18n.MsgNoImage, text),
	}
}

// call converts a panic inside the backend into an error.
func (s *Service) call(ctx context.Context, req gemini.EditRequest) (resp gemini.Response, err error) {
	if s.editor == nil {
		return gemini.Response{}, errors.New("image editor is not configured")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("image editor panic: %v", r)
		}
	}()
	return s.editor.EditImage(ctx, req)
}
