package editor

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoImageReturned = errors.New("no image returned")
	ErrTransport       = errors.New("transport failure")
)

// SourceImage is the caller's upload. It is never modified.
type SourceImage struct {
	Data     []byte
	MIMEType string
}

// Image is a successful edit. Data is base64 (standard encoding).
type Image struct {
	MIMEType string
	Data     string
}

func (i Image) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", i.MIMEType, i.Data)
}

func (i Image) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(i.Data)
}

var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// FileName is the suggested download name, e.g. anh-the-2024-05-01T10-20-30Z.png.
func (i Image) FileName(now time.Time) string {
	ext, ok := extensions[i.MIMEType]
	if !ok {
		ext = ".png"
	}
	return "anh-the-" + now.UTC().Format("2006-01-02T15-04-05Z") + ext
}

// Failure is the only error EditIDPhoto returns. Error() is safe to show to
// end users; the underlying cause is only reachable through Unwrap.
type Failure struct {
	Kind    error
	Message string
	cause   error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.cause }

func (f *Failure) Is(target error) bool { return target == f.Kind }

// KindName is a stable identifier for API responses.
func (f *Failure) KindName() string {
	switch f.Kind {
	case ErrNoImageReturned:
		return "no_image"
	case ErrTransport:
		return "transport"
	}
	return "unknown"
}
