package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

type Lang string

const (
	Vietnamese Lang = "vi"
	English    Lang = "en"
)

var (
	supported = []Lang{Vietnamese, English}
	matcher   = language.NewMatcher([]language.Tag{language.Vietnamese, language.English})
)

// Match returns the first supported language found in prefs. Each pref may be
// a bare tag ("en-US") or a full Accept-Language header value.
func Match(fallback Lang, prefs ...string) Lang {
	for _, pref := range prefs {
		pref = strings.TrimSpace(pref)
		if pref == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, conf := matcher.Match(tags...)
		if conf == language.No {
			continue
		}
		return supported[idx]
	}
	return Normalize(fallback)
}

// Normalize maps unknown values to Vietnamese.
func Normalize(lang Lang) Lang {
	switch lang {
	case Vietnamese, English:
		return lang
	}
	return Vietnamese
}

func Parse(value string) Lang {
	return Match(Vietnamese, value)
}

// T formats the message for key in lang, falling back to Vietnamese and then
// to the key itself.
func T(lang Lang, key Key, args ...any) string {
	msg, ok := messages[Normalize(lang)][key]
	if !ok {
		msg, ok = messages[Vietnamese][key]
	}
	if !ok {
		return string(key)
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
