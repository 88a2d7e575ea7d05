package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"id-photo-studio/internal/editor"
	"id-photo-studio/internal/i18n"
	"id-photo-studio/internal/idphoto"
	"id-photo-studio/internal/mediagroup"
	"id-photo-studio/internal/session"
	"id-photo-studio/internal/telegram"
)

// Messenger is the subset of *telegram.Client the bot uses.
type Messenger interface {
	SendTyping(chatID int64)
	SendText(chatID int64, text string) error
	SendTextWithKeyboard(chatID int64, text string, kb telegram.Keyboard) (int, error)
	EditTextWithKeyboard(chatID int64, messageID int, text string, kb telegram.Keyboard) error
	AnswerCallback(callbackID string, text string) error
	SendPhoto(chatID int64, name string, data []byte, caption string) error
	SendDocument(chatID int64, name string, data []byte, caption string) error
	DownloadFile(ctx context.Context, fileID string) ([]byte, string, error)
}

type PhotoEditor interface {
	EditIDPhoto(ctx context.Context, req editor.Request) (editor.Image, error)
}

type Options struct {
	Telegram    Messenger
	Editor      PhotoEditor
	Sessions    *session.Store
	Logger      *slog.Logger
	DefaultLang i18n.Lang
	// RequestTimeout bounds download plus edit for one generation.
	RequestTimeout time.Duration
	Now            func() time.Time
}

type Handler struct {
	tg             Messenger
	editor         PhotoEditor
	sessions       *session.Store
	logger         *slog.Logger
	defaultLang    i18n.Lang
	requestTimeout time.Duration
	now            func() time.Time
	aggregator     *mediagroup.Aggregator
}

func New(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sessions := opts.Sessions
	if sessions == nil {
		sessions = session.NewStore(session.Options{})
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Handler{
		tg:             opts.Telegram,
		editor:         opts.Editor,
		sessions:       sessions,
		logger:         logger,
		defaultLang:    i18n.Normalize(opts.DefaultLang),
		requestTimeout: opts.RequestTimeout,
		now:            now,
	}
}

func (h *Handler) SetMediaGroupAggregator(ag *mediagroup.Aggregator) {
	h.aggregator = ag
}

func (h *Handler) HandleUpdate(ctx context.Context, update telegram.Update) error {
	if update.CallbackQuery != nil {
		return h.handleCallback(ctx, update.CallbackQuery)
	}
	if update.Message == nil || update.Message.From == nil || update.Message.Chat == nil {
		return nil
	}

	msg := update.Message
	key := session.Key{ChatID: msg.Chat.ID, UserID: msg.From.ID}
	lang := h.lang(msg.From.LanguageCode)

	if msg.IsCommand() {
		return h.handleCommand(key, lang, msg)
	}

	if len(msg.Photo) > 0 {
		return h.handlePhoto(key, lang, msg)
	}

	if strings.TrimSpace(msg.Text) != "" && h.acceptsKeywords(key, msg.Chat) {
		return h.handleText(key, lang, msg.Text)
	}

	return nil
}

// acceptsKeywords reports whether plain text should be read as option
// keywords. In groups that needs an open wizard with a photo, so ordinary
// conversation is left alone.
func (h *Handler) acceptsKeywords(key session.Key, chat *tgbotapi.Chat) bool {
	if chat.IsPrivate() {
		return true
	}
	w, ok := h.sessions.Peek(key)
	return ok && w.PhotoFileID != ""
}

// HandleAlbum applies a debounced album. Only its first photo is kept.
func (h *Handler) HandleAlbum(ctx context.Context, album mediagroup.Album) {
	key := session.Key{ChatID: album.ChatID, UserID: album.UserID}
	lang := h.lang(album.LanguageCode)

	if err := h.applyPhoto(key, lang, album.FileID, album.Caption, album.Count > 1); err != nil {
		h.logger.Error("album processing failed", "chat_id", album.ChatID, "err", err)
	}
}

func (h *Handler) handleCommand(key session.Key, lang i18n.Lang, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		w := h.sessions.Update(key, func(w *session.Wizard) {
			w.Lang = lang
			if args := strings.TrimSpace(msg.CommandArguments()); args != "" {
				w.Options = idphoto.ParseArgs(args, w.Options)
			}
		})
		if err := h.tg.SendText(key.ChatID, i18n.T(lang, i18n.MsgBotWelcome)); err != nil {
			return err
		}
		return h.sendWizard(key, w)
	case "help":
		return h.tg.SendText(key.ChatID, i18n.T(lang, i18n.MsgBotHelp))
	case "reset":
		h.sessions.Update(key, func(w *session.Wizard) { w.Lang = lang })
		w := h.sessions.Reset(key)
		if err := h.tg.SendText(key.ChatID, i18n.T(lang, i18n.MsgBotReset)); err != nil {
			return err
		}
		return h.sendWizard(key, w)
	default:
		return h.tg.SendText(key.ChatID, i18n.T(lang, i18n.MsgBotUnknownCommand))
	}
}

func (h *Handler) handlePhoto(key session.Key, lang i18n.Lang, msg *tgbotapi.Message) error {
	// Telegram orders sizes ascending; the last one is the original.
	fileID := msg.Photo[len(msg.Photo)-1].FileID

	if msg.MediaGroupID != "" && h.aggregator != nil {
		h.aggregator.Add(mediagroup.Item{
			ChatID:       key.ChatID,
			UserID:       key.UserID,
			LanguageCode: string(lang),
			MediaGroupID: msg.MediaGroupID,
			Caption:      msg.Caption,
			FileID:       fileID,
		})
		return nil
	}

	return h.applyPhoto(key, lang, fileID, msg.Caption, false)
}

func (h *Handler) applyPhoto(key session.Key, lang i18n.Lang, fileID string, caption string, album bool) error {
	w := h.sessions.Update(key, func(w *session.Wizard) {
		w.Lang = lang
		w.PhotoFileID = fileID
		w.Options = idphoto.ParseArgs(caption, w.Options)
	})

	text := i18n.T(lang, i18n.MsgBotPhotoSaved)
	if album {
		text += "\n" + i18n.T(lang, i18n.MsgBotAlbumFirstOnly)
	}
	if err := h.tg.SendText(key.ChatID, text); err != nil {
		return err
	}
	return h.sendWizard(key, w)
}

// handleText treats free text as option keywords for the open wizard.
func (h *Handler) handleText(key session.Key, lang i18n.Lang, text string) error {
	w := h.sessions.Update(key, func(w *session.Wizard) {
		w.Lang = lang
		w.Options = idphoto.ParseArgs(text, w.Options)
	})
	if w.PhotoFileID == "" {
		if err := h.tg.SendText(key.ChatID, i18n.T(lang, i18n.MsgBotSendPhoto)); err != nil {
			return err
		}
	}
	return h.sendWizard(key, w)
}

func (h *Handler) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) error {
	if q == nil || q.Message == nil || q.Message.Chat == nil || q.From == nil {
		return nil
	}
	data, ok := parseCallback(q.Data)
	if !ok {
		return nil
	}

	lang := h.lang(q.From.LanguageCode)
	if data.Owner != q.From.ID {
		_ = h.tg.AnswerCallback(q.ID, i18n.T(lang, i18n.MsgBotNotYourMenu))
		return nil
	}

	key := session.Key{ChatID: q.Message.Chat.ID, UserID: data.Owner}
	msgID := q.Message.MessageID

	switch data.Action {
	case actionPrompt:
		_ = h.tg.AnswerCallback(q.ID, i18n.T(lang, i18n.MsgBotPromptSent))
		w := h.sessions.Get(key)
		return h.tg.SendText(key.ChatID, idphoto.CompilePrompt(w.Options))
	case actionGenerate:
		_ = h.tg.AnswerCallback(q.ID, i18n.T(lang, i18n.MsgBotGenerating))
		w := h.sessions.Update(key, func(w *session.Wizard) {
			w.Lang = lang
			w.MessageID = msgID
		})
		if w.PhotoFileID == "" {
			return h.tg.SendText(key.ChatID, i18n.T(lang, i18n.MsgBotSendPhoto))
		}
		return h.generate(ctx, key, w)
	case actionReset:
		_ = h.tg.AnswerCallback(q.ID, i18n.T(lang, i18n.MsgBotReset))
		h.sessions.Reset(key)
	default:
		_ = h.tg.AnswerCallback(q.ID, "")
	}

	w := h.sessions.Update(key, func(w *session.Wizard) {
		w.Lang = lang
		w.MessageID = msgID
		data.apply(&w.Options)
	})
	return h.renderWizard(key, w)
}

func (h *Handler) generate(ctx context.Context, key session.Key, w session.Wizard) error {
	lang := w.Lang
	if !h.sessions.TryBegin(key) {
		return h.tg.SendText(key.ChatID, i18n.T(lang, i18n.MsgBotBusy))
	}
	defer h.sessions.End(key)

	jobID := uuid.NewString()
	logger := h.logger.With("job_id", jobID, "chat_id", key.ChatID, "user_id", key.UserID)
	start := time.Now()

	if h.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	h.tg.SendTyping(key.ChatID)
	_ = h.tg.SendText(key.ChatID, "🎨 "+i18n.T(lang, i18n.MsgBotGenerating))

	data, mimeType, err := h.tg.DownloadFile(ctx, w.PhotoFileID)
	if err != nil {
		logger.Error("photo download failed", "err", err)
		return h.tg.SendText(key.ChatID, i18n.T(lang, i18n.MsgBotDownloadFailed))
	}

	img, err := h.editor.EditIDPhoto(ctx, editor.Request{
		Source:  editor.SourceImage{Data: data, MIMEType: mimeType},
		Options: w.Options,
		Locale:  string(lang),
	})
	if err != nil {
		var failure *editor.Failure
		if errors.As(err, &failure) {
			logger.Warn("id photo failed", "kind", failure.KindName(), "dur_ms", time.Since(start).Milliseconds())
			return h.tg.SendText(key.ChatID, "❌ "+failure.Error())
		}
		logger.Error("id photo failed", "err", err)
		return h.tg.SendText(key.ChatID, "❌ "+i18n.T(lang, i18n.MsgUnknown))
	}

	out, err := img.Bytes()
	if err != nil {
		logger.Error("decode edited image", "err", err)
		return h.tg.SendText(key.ChatID, "❌ "+i18n.T(lang, i18n.MsgTransport))
	}

	name := img.FileName(h.now())
	if err := h.tg.SendPhoto(key.ChatID, name, out, i18n.T(lang, i18n.MsgBotDone)); err != nil {
		return err
	}
	if err := h.tg.SendDocument(key.ChatID, name, out, ""); err != nil {
		return err
	}

	logger.Info("id photo sent",
		"size", w.Options.Size,
		"background", w.Options.Background,
		"attire", w.Options.Attire,
		"bytes", len(out),
		"dur_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (h *Handler) lang(code string) i18n.Lang {
	return i18n.Match(h.defaultLang, code)
}
