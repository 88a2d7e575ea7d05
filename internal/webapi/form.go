package webapi

import (
	"fmt"
	"net/http"
	"strings"

	"id-photo-studio/internal/idphoto"
)

// parseOptions reads option fields from a parsed form. Missing fields keep
// their defaults.
func parseOptions(r *http.Request) (idphoto.Options, error) {
	opts := idphoto.DefaultOptions()

	if v := strings.TrimSpace(r.FormValue("size")); v != "" {
		size, err := idphoto.ParsePhotoSize(v)
		if err != nil {
			return opts, err
		}
		opts.Size = size
	}
	if v := strings.TrimSpace(r.FormValue("background")); v != "" {
		bg, err := idphoto.ParseBackground(v)
		if err != nil {
			return opts, err
		}
		opts.Background = bg
	}
	if v := strings.TrimSpace(r.FormValue("attire")); v != "" {
		attire, err := idphoto.ParseAttire(v)
		if err != nil {
			return opts, err
		}
		opts.Attire = attire
	}

	for _, flag := range idphoto.Flags() {
		raw, ok := r.Form[flag]
		if !ok || len(raw) == 0 {
			continue
		}
		on, err := parseBool(raw[0])
		if err != nil {
			return opts, fmt.Errorf("%s: %w", flag, err)
		}
		opts.Enhancements.SetFlag(flag, on)
	}

	return opts, nil
}

func parseBool(value string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "", "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", value)
}

func detectMIME(declared string, data []byte) string {
	mimeType := strings.TrimSpace(declared)
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return strings.ToLower(mimeType)
}
