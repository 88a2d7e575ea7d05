package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"id-photo-studio/internal/i18n"
	"id-photo-studio/internal/idphoto"
	"id-photo-studio/internal/session"
)

const callbackPrefix = "ip"

const (
	actionSize       = "size"
	actionBackground = "bg"
	actionAttire     = "attire"
	actionFlag       = "flag"
	actionPrompt     = "prompt"
	actionGenerate   = "generate"
	actionReset      = "reset"
)

// callbackData is a decoded "ip:<owner>:<action>[:arg]" button payload.
type callbackData struct {
	Owner  int64
	Action string
	Arg    string
}

func parseCallback(data string) (callbackData, bool) {
	parts := strings.SplitN(strings.TrimSpace(data), ":", 4)
	if len(parts) < 3 || parts[0] != callbackPrefix || parts[2] == "" {
		return callbackData{}, false
	}
	owner, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return callbackData{}, false
	}
	out := callbackData{Owner: owner, Action: parts[2]}
	if len(parts) == 4 {
		out.Arg = parts[3]
	}
	return out, true
}

// apply changes opts for option actions. Unknown values leave opts untouched.
func (d callbackData) apply(opts *idphoto.Options) {
	switch d.Action {
	case actionSize:
		if s, err := idphoto.ParsePhotoSize(d.Arg); err == nil {
			opts.Size = s
		}
	case actionBackground:
		if b, err := idphoto.ParseBackground(d.Arg); err == nil {
			opts.Background = b
		}
	case actionAttire:
		if a, err := idphoto.ParseAttire(d.Arg); err == nil {
			opts.Attire = a
		}
	case actionFlag:
		for _, f := range idphoto.Flags() {
			if f == d.Arg {
				opts.Enhancements.SetFlag(f, !opts.Enhancements.Flag(f))
			}
		}
	}
}

func cb(ownerID int64, parts ...string) string {
	return fmt.Sprintf("%s:%d:%s", callbackPrefix, ownerID, strings.Join(parts, ":"))
}

// sendWizard posts a fresh menu message and remembers its id.
func (h *Handler) sendWizard(key session.Key, w session.Wizard) error {
	msgID, err := h.tg.SendTextWithKeyboard(key.ChatID, wizardText(w), wizardKeyboard(key.UserID, w))
	if err != nil {
		return err
	}
	h.sessions.Update(key, func(w *session.Wizard) { w.MessageID = msgID })
	return nil
}

// renderWizard edits the menu in place, falling back to a new message.
func (h *Handler) renderWizard(key session.Key, w session.Wizard) error {
	if w.MessageID != 0 {
		if err := h.tg.EditTextWithKeyboard(key.ChatID, w.MessageID, wizardText(w), wizardKeyboard(key.UserID, w)); err == nil {
			return nil
		}
	}
	return h.sendWizard(key, w)
}

func wizardText(w session.Wizard) string {
	lang := w.Lang
	opts := w.Options

	var enabled []string
	for _, f := range idphoto.Flags() {
		if opts.Enhancements.Flag(f) {
			enabled = append(enabled, idphoto.FlagLabel(lang, f))
		}
	}
	enhance := "-"
	if len(enabled) > 0 {
		enhance = strings.Join(enabled, ", ")
	}

	photo := i18n.T(lang, i18n.LabelPhotoNone)
	if w.PhotoFileID != "" {
		photo = i18n.T(lang, i18n.LabelPhotoSaved)
	}

	var b strings.Builder
	b.WriteString(i18n.T(lang, i18n.LabelTitle) + "\n\n")
	fmt.Fprintf(&b, "%s: %s\n", i18n.T(lang, i18n.LabelSize), opts.Size.Descriptor())
	fmt.Fprintf(&b, "%s: %s\n", i18n.T(lang, i18n.LabelBackground), idphoto.BackgroundLabel(lang, opts.Background))
	fmt.Fprintf(&b, "%s: %s\n", i18n.T(lang, i18n.LabelAttire), idphoto.AttireLabel(lang, opts.Attire))
	fmt.Fprintf(&b, "%s: %s\n", i18n.T(lang, i18n.LabelEnhance), enhance)
	fmt.Fprintf(&b, "%s: %s\n", i18n.T(lang, i18n.LabelPhoto), photo)
	if w.PhotoFileID == "" {
		b.WriteString("\n" + i18n.T(lang, i18n.MsgBotSendPhoto))
	}
	return strings.TrimSpace(b.String())
}

func wizardKeyboard(ownerID int64, w session.Wizard) tgbotapi.InlineKeyboardMarkup {
	lang := w.Lang
	opts := w.Options

	var sizeRow []tgbotapi.InlineKeyboardButton
	for _, s := range idphoto.Sizes() {
		sizeRow = append(sizeRow, tgbotapi.NewInlineKeyboardButtonData(
			checked(s.Descriptor(), s == opts.Size), cb(ownerID, actionSize, string(s))))
	}

	var bgRow []tgbotapi.InlineKeyboardButton
	for _, bg := range idphoto.Backgrounds() {
		bgRow = append(bgRow, tgbotapi.NewInlineKeyboardButtonData(
			checked(idphoto.BackgroundLabel(lang, bg), bg == opts.Background), cb(ownerID, actionBackground, string(bg))))
	}

	rows := [][]tgbotapi.InlineKeyboardButton{sizeRow, bgRow}

	var attireRow []tgbotapi.InlineKeyboardButton
	for _, a := range idphoto.Attires() {
		attireRow = append(attireRow, tgbotapi.NewInlineKeyboardButtonData(
			checked(idphoto.AttireLabel(lang, a), a == opts.Attire), cb(ownerID, actionAttire, string(a))))
		if len(attireRow) == 2 {
			rows = append(rows, attireRow)
			attireRow = nil
		}
	}
	if len(attireRow) > 0 {
		rows = append(rows, attireRow)
	}

	for _, f := range idphoto.Flags() {
		mark := "⬜ "
		if opts.Enhancements.Flag(f) {
			mark = "✅ "
		}
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(mark+idphoto.FlagLabel(lang, f), cb(ownerID, actionFlag, f)),
		})
	}

	rows = append(rows,
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, i18n.LabelPrompt), cb(ownerID, actionPrompt)),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, i18n.LabelGenerate), cb(ownerID, actionGenerate)),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, i18n.LabelReset), cb(ownerID, actionReset)),
		},
	)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func checked(label string, on bool) string {
	if on {
		return "✅ " + label
	}
	return label
}
