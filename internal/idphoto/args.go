package idphoto

import "strings"

// ParseArgs reads option keywords out of free text such as a photo caption
// ("4x6 trắng vest +makeup"). Unrecognised words are ignored.
func ParseArgs(raw string, defaults Options) Options {
	opts := defaults
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return opts
	}

	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';' || r == '\n' || r == '\t'
	})

	for i := 0; i < len(fields); i++ {
		tok := foldToken(fields[i])
		if tok == "" {
			continue
		}

		// "ao dai", "so mi", "trang diem" and friends arrive as two words.
		// The pair wins over its first word: "trang" alone means white.
		if i+1 < len(fields) {
			pair := tok + "-" + foldToken(fields[i+1])
			if a, ok := attireAliases[pair]; ok {
				opts.Attire = a
				i++
				continue
			}
			if applyFlag(&opts.Enhancements, pair) {
				i++
				continue
			}
		}

		if key, value, ok := strings.Cut(tok, "="); ok {
			switch key {
			case "size":
				if s, err := ParsePhotoSize(value); err == nil {
					opts.Size = s
				}
			case "bg", "background", "nen":
				if b, err := ParseBackground(value); err == nil {
					opts.Background = b
				}
			case "attire", "outfit":
				if a, err := ParseAttire(value); err == nil {
					opts.Attire = a
				}
			}
			continue
		}

		if s, ok := sizeAliases[tok]; ok {
			opts.Size = s
			continue
		}
		if b, ok := backgroundAliases[tok]; ok {
			opts.Background = b
			continue
		}
		if a, ok := attireAliases[tok]; ok {
			opts.Attire = a
			continue
		}

		applyFlag(&opts.Enhancements, tok)
	}

	return opts
}

// applyFlag sets the enhancement named by tok. A leading "+" turns it on;
// "-" or "no" turns it off. It reports whether tok named a flag.
func applyFlag(e *Enhancements, tok string) bool {
	on := true
	switch {
	case strings.HasPrefix(tok, "+"):
		tok = tok[1:]
	case strings.HasPrefix(tok, "-"):
		tok, on = tok[1:], false
	case strings.HasPrefix(tok, "no"):
		if _, ok := flagAliases[tok[2:]]; ok {
			tok, on = tok[2:], false
		}
	}
	set, ok := flagAliases[tok]
	if ok {
		set(e, on)
	}
	return ok
}

var flagAliases = map[string]func(*Enhancements, bool){
	"beautify":    func(e *Enhancements, v bool) { e.Beautify = v },
	"lamdep":      func(e *Enhancements, v bool) { e.Beautify = v },
	"lam-dep":     func(e *Enhancements, v bool) { e.Beautify = v },
	"smooth":      func(e *Enhancements, v bool) { e.SmoothSkin = v },
	"smooth_skin": func(e *Enhancements, v bool) { e.SmoothSkin = v },
	"smoothskin":  func(e *Enhancements, v bool) { e.SmoothSkin = v },
	"minda":       func(e *Enhancements, v bool) { e.SmoothSkin = v },
	"min-da":      func(e *Enhancements, v bool) { e.SmoothSkin = v },
	"makeup":      func(e *Enhancements, v bool) { e.Makeup = v },
	"trangdiem":   func(e *Enhancements, v bool) { e.Makeup = v },
	"trang-diem":  func(e *Enhancements, v bool) { e.Makeup = v },
}
