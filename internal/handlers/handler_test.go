package handlers

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"id-photo-studio/internal/editor"
	"id-photo-studio/internal/i18n"
	"id-photo-studio/internal/idphoto"
	"id-photo-studio/internal/mediagroup"
	"id-photo-studio/internal/session"
	"id-photo-studio/internal/telegram"
)

type sentFile struct {
	kind    string
	name    string
	data    []byte
	caption string
}

type fakeMessenger struct {
	mu        sync.Mutex
	texts     []string
	menus     []string
	edits     []string
	answers   []string
	files     []sentFile
	nextMsgID int
	download  func(ctx context.Context, fileID string) ([]byte, string, error)
}

func (f *fakeMessenger) SendTyping(int64) {}

func (f *fakeMessenger) SendText(_ int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeMessenger) SendTextWithKeyboard(_ int64, text string, _ telegram.Keyboard) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.menus = append(f.menus, text)
	f.nextMsgID++
	return f.nextMsgID, nil
}

func (f *fakeMessenger) EditTextWithKeyboard(_ int64, _ int, text string, _ telegram.Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, text)
	return nil
}

func (f *fakeMessenger) AnswerCallback(_ string, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, text)
	return nil
}

func (f *fakeMessenger) SendPhoto(_ int64, name string, data []byte, caption string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files = append(f.files, sentFile{kind: "photo", name: name, data: data, caption: caption})
	return nil
}

func (f *fakeMessenger) SendDocument(_ int64, name string, data []byte, caption string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files = append(f.files, sentFile{kind: "document", name: name, data: data, caption: caption})
	return nil
}

func (f *fakeMessenger) DownloadFile(ctx context.Context, fileID string) ([]byte, string, error) {
	if f.download != nil {
		return f.download(ctx, fileID)
	}
	return []byte("portrait:" + fileID), "image/jpeg", nil
}

func (f *fakeMessenger) lastText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.texts) == 0 {
		return ""
	}
	return f.texts[len(f.texts)-1]
}

type fakePhotoEditor struct {
	calls int
	last  editor.Request
	img   editor.Image
	err   error
}

func (f *fakePhotoEditor) EditIDPhoto(_ context.Context, req editor.Request) (editor.Image, error) {
	f.calls++
	f.last = req
	return f.img, f.err
}

const (
	chatID = int64(100)
	userID = int64(7)
)

func newTestHandler(tg *fakeMessenger, ed *fakePhotoEditor) (*Handler, *session.Store) {
	store := session.NewStore(session.Options{})
	h := New(Options{
		Telegram:    tg,
		Editor:      ed,
		Sessions:    store,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		DefaultLang: i18n.Vietnamese,
		Now:         func() time.Time { return time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC) },
	})
	return h, store
}

func photoUpdate(fileID, caption string) telegram.Update {
	return telegram.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID, LanguageCode: "en"},
		Chat:      &tgbotapi.Chat{ID: chatID},
		Caption:   caption,
		Photo: []tgbotapi.PhotoSize{
			{FileID: fileID + "-small"},
			{FileID: fileID},
		},
	}}
}

func commandUpdate(cmd string) telegram.Update {
	return telegram.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID, LanguageCode: "vi"},
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      cmd,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(strings.Fields(cmd)[0])}},
	}}
}

func callbackUpdate(fromID int64, data string) telegram.Update {
	return telegram.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "cb",
		From: &tgbotapi.User{ID: fromID, LanguageCode: "en"},
		Data: data,
		Message: &tgbotapi.Message{
			MessageID: 55,
			Chat:      &tgbotapi.Chat{ID: chatID},
		},
	}}
}

func TestPhotoWithCaptionStoresOptions(t *testing.T) {
	tg := &fakeMessenger{}
	h, store := newTestHandler(tg, &fakePhotoEditor{})

	if err := h.HandleUpdate(context.Background(), photoUpdate("big", "4x6 white suit +makeup")); err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}

	w := store.Get(session.Key{ChatID: chatID, UserID: userID})
	if w.PhotoFileID != "big" {
		t.Fatalf("photo = %q, want largest size", w.PhotoFileID)
	}
	want := idphoto.Options{
		Size:         idphoto.PhotoSize4x6,
		Background:   idphoto.BackgroundWhite,
		Attire:       idphoto.AttireSuit,
		Enhancements: idphoto.Enhancements{Beautify: true, SmoothSkin: true, Makeup: true},
	}
	if w.Options != want {
		t.Fatalf("options = %+v, want %+v", w.Options, want)
	}
	if w.Lang != i18n.English {
		t.Fatalf("lang = %q, want en", w.Lang)
	}
	if w.MessageID != 1 {
		t.Fatalf("menu message id = %d, want 1", w.MessageID)
	}
	if len(tg.menus) != 1 || !strings.Contains(tg.menus[0], "4x6") {
		t.Fatalf("menus = %q", tg.menus)
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		cmd  string
		want string
	}{
		{cmd: "/start", want: i18n.T(i18n.Vietnamese, i18n.MsgBotWelcome)},
		{cmd: "/help", want: i18n.T(i18n.Vietnamese, i18n.MsgBotHelp)},
		{cmd: "/reset", want: i18n.T(i18n.Vietnamese, i18n.MsgBotReset)},
		{cmd: "/nope", want: i18n.T(i18n.Vietnamese, i18n.MsgBotUnknownCommand)},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			tg := &fakeMessenger{}
			h, _ := newTestHandler(tg, &fakePhotoEditor{})
			if err := h.HandleUpdate(context.Background(), commandUpdate(tt.cmd)); err != nil {
				t.Fatalf("HandleUpdate: %v", err)
			}
			if len(tg.texts) == 0 || tg.texts[0] != tt.want {
				t.Fatalf("texts = %q", tg.texts)
			}
		})
	}
}

func TestResetCommandClearsPhoto(t *testing.T) {
	tg := &fakeMessenger{}
	h, store := newTestHandler(tg, &fakePhotoEditor{})
	key := session.Key{ChatID: chatID, UserID: userID}
	store.Update(key, func(w *session.Wizard) {
		w.PhotoFileID = "old"
		w.Options.Attire = idphoto.AttireAoDai
	})

	if err := h.HandleUpdate(context.Background(), commandUpdate("/reset")); err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	w := store.Get(key)
	if w.PhotoFileID != "" || w.Options != idphoto.DefaultOptions() {
		t.Fatalf("wizard not reset: %+v", w)
	}
}

func TestCallbackFromOtherUserIsRejected(t *testing.T) {
	tg := &fakeMessenger{}
	h, store := newTestHandler(tg, &fakePhotoEditor{})

	data := cb(userID, actionSize, "4x6")
	if err := h.HandleUpdate(context.Background(), callbackUpdate(999, data)); err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if len(tg.answers) != 1 || tg.answers[0] != i18n.T(i18n.English, i18n.MsgBotNotYourMenu) {
		t.Fatalf("answers = %q", tg.answers)
	}
	if got := store.Get(session.Key{ChatID: chatID, UserID: userID}).Options.Size; got != idphoto.PhotoSize3x4 {
		t.Fatalf("size changed to %q", got)
	}
}

func TestCallbackUpdatesOptionsAndEditsMenu(t *testing.T) {
	tg := &fakeMessenger{}
	h, store := newTestHandler(tg, &fakePhotoEditor{})
	key := session.Key{ChatID: chatID, UserID: userID}

	steps := []string{
		cb(userID, actionSize, "4x6"),
		cb(userID, actionBackground, "white"),
		cb(userID, actionAttire, "aodai"),
		cb(userID, actionFlag, idphoto.FlagBeautify),
		cb(userID, actionFlag, idphoto.FlagMakeup),
		cb(userID, actionSize, "bogus"),
	}
	for _, data := range steps {
		if err := h.HandleUpdate(context.Background(), callbackUpdate(userID, data)); err != nil {
			t.Fatalf("HandleUpdate(%s): %v", data, err)
		}
	}

	w := store.Get(key)
	want := idphoto.Options{
		Size:         idphoto.PhotoSize4x6,
		Background:   idphoto.BackgroundWhite,
		Attire:       idphoto.AttireAoDai,
		Enhancements: idphoto.Enhancements{Beautify: false, SmoothSkin: true, Makeup: true},
	}
	if w.Options != want {
		t.Fatalf("options = %+v, want %+v", w.Options, want)
	}
	if w.MessageID != 55 {
		t.Fatalf("message id = %d, want 55", w.MessageID)
	}
	if len(tg.edits) != len(steps) || len(tg.menus) != 0 {
		t.Fatalf("edits = %d, menus = %d", len(tg.edits), len(tg.menus))
	}
}

func TestPromptCallbackSendsCompiledPrompt(t *testing.T) {
	tg := &fakeMessenger{}
	h, store := newTestHandler(tg, &fakePhotoEditor{})
	key := session.Key{ChatID: chatID, UserID: userID}
	w := store.Update(key, func(w *session.Wizard) { w.Options.Background = idphoto.BackgroundWhite })

	if err := h.HandleUpdate(context.Background(), callbackUpdate(userID, cb(userID, actionPrompt))); err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if got := tg.lastText(); got != idphoto.CompilePrompt(w.Options) {
		t.Fatalf("prompt text = %q", got)
	}
}

func TestGenerateWithoutPhotoAsksForOne(t *testing.T) {
	tg := &fakeMessenger{}
	ed := &fakePhotoEditor{}
	h, _ := newTestHandler(tg, ed)

	if err := h.HandleUpdate(context.Background(), callbackUpdate(userID, cb(userID, actionGenerate))); err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if ed.calls != 0 {
		t.Fatalf("editor called %d times", ed.calls)
	}
	if got := tg.lastText(); got != i18n.T(i18n.English, i18n.MsgBotSendPhoto) {
		t.Fatalf("last text = %q", got)
	}
}

func TestGenerateSendsPhotoAndDocument(t *testing.T) {
	tg := &fakeMessenger{}
	png := []byte("\x89PNG fake")
	ed := &fakePhotoEditor{img: editor.Image{MIMEType: "image/png", Data: base64.StdEncoding.EncodeToString(png)}}
	h, store := newTestHandler(tg, ed)
	key := session.Key{ChatID: chatID, UserID: userID}
	store.Update(key, func(w *session.Wizard) {
		w.PhotoFileID = "file-1"
		w.Options.Attire = idphoto.AttireShirt
	})

	if err := h.HandleUpdate(context.Background(), callbackUpdate(userID, cb(userID, actionGenerate))); err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}

	if ed.calls != 1 {
		t.Fatalf("editor calls = %d, want 1", ed.calls)
	}
	if string(ed.last.Source.Data) != "portrait:file-1" || ed.last.Source.MIMEType != "image/jpeg" {
		t.Fatalf("source = %+v", ed.last.Source)
	}
	if ed.last.Options.Attire != idphoto.AttireShirt || ed.last.Locale != "en" {
		t.Fatalf("request = %+v", ed.last)
	}
	if len(tg.files) != 2 {
		t.Fatalf("files = %d, want 2", len(tg.files))
	}
	const wantName = "anh-the-2024-05-01T10-20-30Z.png"
	if tg.files[0].kind != "photo" || tg.files[1].kind != "document" {
		t.Fatalf("file kinds = %s, %s", tg.files[0].kind, tg.files[1].kind)
	}
	for _, f := range tg.files {
		if f.name != wantName || string(f.data) != string(png) {
			t.Fatalf("file = %s %q", f.name, f.data)
		}
	}
	if store.Get(key).Busy {
		t.Fatal("wizard still busy after generation")
	}
}

func TestGenerateReportsFailureMessage(t *testing.T) {
	tg := &fakeMessenger{}
	failure := &editor.Failure{Kind: editor.ErrNoImageReturned, Message: "Could not create the photo. AI response: no face"}
	ed := &fakePhotoEditor{err: failure}
	h, store := newTestHandler(tg, ed)
	store.Update(session.Key{ChatID: chatID, UserID: userID}, func(w *session.Wizard) { w.PhotoFileID = "f" })

	if err := h.HandleUpdate(context.Background(), callbackUpdate(userID, cb(userID, actionGenerate))); err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if got := tg.lastText(); got != "❌ "+failure.Message {
		t.Fatalf("last text = %q", got)
	}
	if len(tg.files) != 0 {
		t.Fatalf("files sent on failure: %d", len(tg.files))
	}
}

func TestGenerateDownloadFailure(t *testing.T) {
	tg := &fakeMessenger{download: func(context.Context, string) ([]byte, string, error) {
		return nil, "", errors.New("boom")
	}}
	ed := &fakePhotoEditor{}
	h, store := newTestHandler(tg, ed)
	store.Update(session.Key{ChatID: chatID, UserID: userID}, func(w *session.Wizard) { w.PhotoFileID = "f" })

	if err := h.HandleUpdate(context.Background(), callbackUpdate(userID, cb(userID, actionGenerate))); err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if ed.calls != 0 {
		t.Fatalf("editor called after failed download")
	}
	if got := tg.lastText(); got != i18n.T(i18n.English, i18n.MsgBotDownloadFailed) {
		t.Fatalf("last text = %q", got)
	}
}

func TestGenerateWhileBusy(t *testing.T) {
	tg := &fakeMessenger{}
	ed := &fakePhotoEditor{}
	h, store := newTestHandler(tg, ed)
	key := session.Key{ChatID: chatID, UserID: userID}
	store.Update(key, func(w *session.Wizard) { w.PhotoFileID = "f" })
	store.TryBegin(key)

	if err := h.HandleUpdate(context.Background(), callbackUpdate(userID, cb(userID, actionGenerate))); err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if ed.calls != 0 {
		t.Fatal("editor called while busy")
	}
	if got := tg.lastText(); got != i18n.T(i18n.English, i18n.MsgBotBusy) {
		t.Fatalf("last text = %q", got)
	}
}

func TestAlbumUsesFirstPhoto(t *testing.T) {
	tg := &fakeMessenger{}
	h, store := newTestHandler(tg, &fakePhotoEditor{})

	h.HandleAlbum(context.Background(), mediagroup.Album{
		ChatID:       chatID,
		UserID:       userID,
		LanguageCode: "vi",
		Caption:      "trắng",
		FileID:       "first",
		Count:        2,
	})

	w := store.Get(session.Key{ChatID: chatID, UserID: userID})
	if w.PhotoFileID != "first" || w.Options.Background != idphoto.BackgroundWhite {
		t.Fatalf("wizard = %+v", w)
	}
	if len(tg.texts) == 0 || !strings.Contains(tg.texts[0], i18n.T(i18n.Vietnamese, i18n.MsgBotAlbumFirstOnly)) {
		t.Fatalf("texts = %q", tg.texts)
	}
}

func TestTextAdjustsOptions(t *testing.T) {
	tg := &fakeMessenger{}
	h, store := newTestHandler(tg, &fakePhotoEditor{})
	upd := telegram.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: chatID, Type: "private"},
		Text: "áo dài 4x6",
	}}

	if err := h.HandleUpdate(context.Background(), upd); err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	w := store.Get(session.Key{ChatID: chatID, UserID: userID})
	if w.Options.Attire != idphoto.AttireAoDai || w.Options.Size != idphoto.PhotoSize4x6 {
		t.Fatalf("options = %+v", w.Options)
	}
	if tg.texts[0] != i18n.T(i18n.Vietnamese, i18n.MsgBotSendPhoto) {
		t.Fatalf("texts = %q", tg.texts)
	}
}

func groupText(text string) telegram.Update {
	return telegram.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: chatID, Type: "group"},
		Text: text,
	}}
}

func TestGroupChatterIsIgnored(t *testing.T) {
	tg := &fakeMessenger{}
	h, store := newTestHandler(tg, &fakePhotoEditor{})

	if err := h.HandleUpdate(context.Background(), groupText("trắng quá nhỉ")); err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if len(tg.texts) != 0 || len(tg.menus) != 0 {
		t.Fatalf("bot replied to group chatter: texts=%q menus=%d", tg.texts, len(tg.menus))
	}
	if store.Len() != 0 {
		t.Fatalf("sessions = %d, want 0", store.Len())
	}
}

func TestGroupTextAdjustsOpenWizard(t *testing.T) {
	tg := &fakeMessenger{}
	h, store := newTestHandler(tg, &fakePhotoEditor{})
	key := session.Key{ChatID: chatID, UserID: userID}
	store.Update(key, func(w *session.Wizard) { w.PhotoFileID = "photo-1" })

	if err := h.HandleUpdate(context.Background(), groupText("nền xanh 4x6")); err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	w := store.Get(key)
	if w.Options.Background != idphoto.BackgroundBlue || w.Options.Size != idphoto.PhotoSize4x6 {
		t.Fatalf("options = %+v", w.Options)
	}
}
