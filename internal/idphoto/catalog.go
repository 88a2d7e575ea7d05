package idphoto

import "id-photo-studio/internal/i18n"

type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Group struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Multi   bool     `json:"multi,omitempty"`
	Choices []Choice `json:"choices"`
}

const (
	FlagBeautify   = "beautify"
	FlagSmoothSkin = "smooth_skin"
	FlagMakeup     = "makeup"
)

func Sizes() []PhotoSize { return []PhotoSize{PhotoSize3x4, PhotoSize4x6} }

func Backgrounds() []Background { return []Background{BackgroundWhite, BackgroundBlue} }

func Attires() []Attire {
	return []Attire{AttireOriginal, AttireShirt, AttireSuit, AttireAoDai}
}

func BackgroundLabel(lang i18n.Lang, b Background) string {
	if b == BackgroundWhite {
		return i18n.T(lang, i18n.LabelBgWhite)
	}
	return i18n.T(lang, i18n.LabelBgBlue)
}

func AttireLabel(lang i18n.Lang, a Attire) string {
	switch a {
	case AttireShirt:
		return i18n.T(lang, i18n.LabelAttireShirt)
	case AttireSuit:
		return i18n.T(lang, i18n.LabelAttireSuit)
	case AttireAoDai:
		return i18n.T(lang, i18n.LabelAttireAoDai)
	default:
		return i18n.T(lang, i18n.LabelAttireOriginal)
	}
}

func FlagLabel(lang i18n.Lang, flag string) string {
	switch flag {
	case FlagBeautify:
		return i18n.T(lang, i18n.LabelBeautify)
	case FlagSmoothSkin:
		return i18n.T(lang, i18n.LabelSmoothSkin)
	case FlagMakeup:
		return i18n.T(lang, i18n.LabelMakeup)
	}
	return flag
}

// Flags lists the enhancement toggles in prompt order.
func Flags() []string { return []string{FlagBeautify, FlagSmoothSkin, FlagMakeup} }

// SetFlag toggles the named enhancement. Unknown names are ignored.
func (e *Enhancements) SetFlag(flag string, on bool) {
	switch flag {
	case FlagBeautify:
		e.Beautify = on
	case FlagSmoothSkin:
		e.SmoothSkin = on
	case FlagMakeup:
		e.Makeup = on
	}
}

func (e Enhancements) Flag(flag string) bool {
	switch flag {
	case FlagBeautify:
		return e.Beautify
	case FlagSmoothSkin:
		return e.SmoothSkin
	case FlagMakeup:
		return e.Makeup
	}
	return false
}

// Catalog lists every option group with labels for lang.
func Catalog(lang i18n.Lang) []Group {
	size := Group{Key: "size", Title: i18n.T(lang, i18n.LabelSize)}
	for _, s := range Sizes() {
		size.Choices = append(size.Choices, Choice{Value: string(s), Label: s.Descriptor()})
	}

	bg := Group{Key: "background", Title: i18n.T(lang, i18n.LabelBackground)}
	for _, b := range Backgrounds() {
		bg.Choices = append(bg.Choices, Choice{Value: string(b), Label: BackgroundLabel(lang, b)})
	}

	attire := Group{Key: "attire", Title: i18n.T(lang, i18n.LabelAttire)}
	for _, a := range Attires() {
		attire.Choices = append(attire.Choices, Choice{Value: string(a), Label: AttireLabel(lang, a)})
	}

	enhance := Group{Key: "enhancements", Title: i18n.T(lang, i18n.LabelEnhance), Multi: true}
	for _, f := range Flags() {
		enhance.Choices = append(enhance.Choices, Choice{Value: f, Label: FlagLabel(lang, f)})
	}

	return []Group{size, bg, attire, enhance}
}
