package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// SDKClient is an ImageEditor backed by the official genai SDK.
type SDKClient struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

func NewSDK(ctx context.Context, opts Options) (*SDKClient, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("gemini api key is empty")
	}

	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if base := strings.TrimRight(opts.BaseURL, "/"); base != "" {
		cfg.HTTPOptions.BaseURL = base + "/"
	}
	if v := strings.TrimSpace(opts.APIVersion); v != "" {
		cfg.HTTPOptions.APIVersion = v
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultImageModel
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &SDKClient{client: client, model: model, logger: logger}, nil
}

func (c *SDKClient) EditImage(ctx context.Context, req EditRequest) (Response, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(req.Image.Data, req.Image.MimeType),
			genai.NewPartFromText(req.Prompt),
		}, genai.RoleUser),
	}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage)},
	}
	if ar := strings.TrimSpace(req.AspectRatio); ar != "" {
		cfg.ImageConfig = &genai.ImageConfig{AspectRatio: ar}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return Response{}, fmt.Errorf("genai generate: %w", err)
	}

	c.logger.Debug("gemini sdk response", "model", c.model, "candidates", len(resp.Candidates))
	return fromSDK(resp), nil
}

func fromSDK(resp *genai.GenerateContentResponse) Response {
	var out Response
	if resp == nil {
		return out
	}
	if resp.PromptFeedback != nil {
		out.BlockReason = string(resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out
	}

	cand := resp.Candidates[0]
	out.FinishReason = string(cand.FinishReason)
	for _, p := range cand.Content.Parts {
		if p == nil {
			continue
		}
		op := Part{Text: p.Text}
		if p.InlineData != nil && len(p.InlineData.Data) > 0 {
			op.InlineData = &Blob{
				MimeType: p.InlineData.MIMEType,
				Data:     base64.StdEncoding.EncodeToString(p.InlineData.Data),
			}
		}
		out.Parts = append(out.Parts, op)
	}
	return out
}

var _ ImageEditor = (*SDKClient)(nil)
