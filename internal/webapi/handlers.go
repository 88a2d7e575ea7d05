package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"id-photo-studio/internal/editor"
	"id-photo-studio/internal/i18n"
	"id-photo-studio/internal/idphoto"
)

type apiError struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type optionsResponse struct {
	Locale   i18n.Lang       `json:"locale"`
	Groups   []idphoto.Group `json:"groups"`
	Defaults formOptions     `json:"defaults"`
}

type formOptions struct {
	Size       string `json:"size"`
	Background string `json:"background"`
	Attire     string `json:"attire"`
	Beautify   bool   `json:"beautify"`
	SmoothSkin bool   `json:"smooth_skin"`
	Makeup     bool   `json:"makeup"`
}

type promptResponse struct {
	Prompt string `json:"prompt"`
}

type idPhotoResponse struct {
	Image    string `json:"image"`
	Filename string `json:"filename"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleOptions(w http.ResponseWriter, r *http.Request) {
	lang := s.lang(r)
	d := idphoto.DefaultOptions()
	writeJSON(w, http.StatusOK, optionsResponse{
		Locale: lang,
		Groups: idphoto.Catalog(lang),
		Defaults: formOptions{
			Size:       string(d.Size),
			Background: string(d.Background),
			Attire:     string(d.Attire),
			Beautify:   d.Enhancements.Beautify,
			SmoothSkin: d.Enhancements.SmoothSkin,
			Makeup:     d.Enhancements.Makeup,
		},
	})
}

func (s *server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	lang := s.lang(r)
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: i18n.T(lang, i18n.MsgInvalidOption, "form")})
		return
	}

	opts, err := parseOptions(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: i18n.T(lang, i18n.MsgInvalidOption, err.Error())})
		return
	}

	writeJSON(w, http.StatusOK, promptResponse{Prompt: idphoto.CompilePrompt(opts)})
}

func (s *server) handleIDPhoto(w http.ResponseWriter, r *http.Request) {
	lang := s.lang(r)
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: i18n.T(lang, i18n.MsgMissingImage)})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: i18n.T(lang, i18n.MsgMissingImage)})
		return
	}
	defer file.Close()

	imgBytes, err := io.ReadAll(file)
	if err != nil || len(imgBytes) == 0 {
		writeJSON(w, http.StatusBadRequest, apiError{Error: i18n.T(lang, i18n.MsgMissingImage)})
		return
	}

	mimeType := detectMIME(header.Header.Get("Content-Type"), imgBytes)
	if !strings.HasPrefix(mimeType, "image/") {
		writeJSON(w, http.StatusBadRequest, apiError{Error: i18n.T(lang, i18n.MsgInvalidImage)})
		return
	}

	opts, err := parseOptions(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: i18n.T(lang, i18n.MsgInvalidOption, err.Error())})
		return
	}

	ctx := r.Context()
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	img, err := s.editor.EditIDPhoto(ctx, editor.Request{
		Source:  editor.SourceImage{Data: imgBytes, MIMEType: mimeType},
		Options: opts,
		Locale:  string(lang),
	})
	if err != nil {
		var failure *editor.Failure
		if errors.As(err, &failure) {
			writeJSON(w, http.StatusBadGateway, apiError{Error: failure.Error(), Kind: failure.KindName()})
			return
		}
		s.logger.Error("id photo edit failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, apiError{Error: i18n.T(lang, i18n.MsgUnknown)})
		return
	}

	filename := img.FileName(s.now())

	if r.URL.Query().Get("format") == "raw" {
		data, err := img.Bytes()
		if err != nil {
			s.logger.Error("decode edited image", "err", err)
			writeJSON(w, http.StatusBadGateway, apiError{Error: i18n.T(lang, i18n.MsgTransport), Kind: "transport"})
			return
		}
		w.Header().Set("Content-Type", img.MIMEType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	writeJSON(w, http.StatusOK, idPhotoResponse{Image: img.DataURI(), Filename: filename})
}

func (s *server) lang(r *http.Request) i18n.Lang {
	return i18n.Match(s.defaultLang, r.Header.Get("X-Locale"), r.Header.Get("Accept-Language"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
