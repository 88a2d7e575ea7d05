package gemini

import (
	"context"
	"strings"
)

// ImageEditor sends one image + instruction to an image model.
type ImageEditor interface {
	EditImage(ctx context.Context, req EditRequest) (Response, error)
}

type ImageInput struct {
	Data     []byte
	MimeType string
}

type EditRequest struct {
	Image  ImageInput
	Prompt string
	// AspectRatio is sent as imageConfig.aspectRatio when non-empty.
	AspectRatio string
}

// Blob is inline binary data; Data is base64 (standard encoding).
type Blob struct {
	MimeType string
	Data     string
}

// Part is one response fragment: inline data or text.
type Part struct {
	Text       string
	InlineData *Blob
}

type Response struct {
	Parts        []Part
	FinishReason string
	BlockReason  string
}

// FirstImage returns the first part carrying inline data.
func (r Response) FirstImage() (Blob, bool) {
	for _, p := range r.Parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			return *p.InlineData, true
		}
	}
	return Blob{}, false
}

// Text concatenates all text parts. When the model produced none, the block
// reason (if any) is reported instead.
func (r Response) Text() string {
	var b strings.Builder
	for _, p := range r.Parts {
		b.WriteString(p.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" && r.BlockReason != "" {
		return "blocked: " + r.BlockReason
	}
	return text
}
