package idphoto

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Attire is the outfit the subject is dressed in.
type Attire string

const (
	AttireOriginal Attire = "original"
	AttireShirt    Attire = "shirt"
	AttireSuit     Attire = "suit"
	AttireAoDai    Attire = "aodai"
)

// PhotoSize is a print size in centimetres, width by height.
type PhotoSize string

const (
	PhotoSize3x4 PhotoSize = "3x4"
	PhotoSize4x6 PhotoSize = "4x6"
)

// Descriptor is the crop ratio phrase embedded in the prompt.
func (s PhotoSize) Descriptor() string {
	if s == PhotoSize3x4 {
		return "3x4"
	}
	return "4x6"
}

// AspectRatio is the portrait ratio hint understood by the image model.
func (s PhotoSize) AspectRatio() string {
	if s == PhotoSize3x4 {
		return "3:4"
	}
	return "2:3"
}

// Background is the solid backdrop color.
type Background string

const (
	BackgroundWhite Background = "white"
	BackgroundBlue  Background = "blue"
)

// Descriptor names the color the way the prompt expects it.
func (b Background) Descriptor() string {
	if b == BackgroundWhite {
		return "màu trắng tinh khiết (#FFFFFF)"
	}
	return "xanh dương chuyên nghiệp (#0079FF)"
}

// Enhancements are the optional retouching steps.
type Enhancements struct {
	Beautify   bool
	SmoothSkin bool
	Makeup     bool
}

// Options is everything the user picks for one edit.
type Options struct {
	Size         PhotoSize
	Background   Background
	Attire       Attire
	Enhancements Enhancements
}

// DefaultOptions is a 3x4 photo on blue in the original clothes with skin retouching on.
func DefaultOptions() Options {
	return Options{
		Size:       PhotoSize3x4,
		Background: BackgroundBlue,
		Attire:     AttireOriginal,
		Enhancements: Enhancements{
			Beautify:   true,
			SmoothSkin: true,
		},
	}
}

// ErrUnknownOption is returned when a value matches no alias.
var ErrUnknownOption = errors.New("unknown option")

var attireAliases = map[string]Attire{
	"original": AttireOriginal,
	"goc":      AttireOriginal,
	"keep":     AttireOriginal,
	"shirt":    AttireShirt,
	"somi":     AttireShirt,
	"so-mi":    AttireShirt,
	"suit":     AttireSuit,
	"vest":     AttireSuit,
	"aodai":    AttireAoDai,
	"ao-dai":   AttireAoDai,
	"ao_dai":   AttireAoDai,
}

var sizeAliases = map[string]PhotoSize{
	"3x4": PhotoSize3x4,
	"3:4": PhotoSize3x4,
	"4x6": PhotoSize4x6,
	"4:6": PhotoSize4x6,
}

var backgroundAliases = map[string]Background{
	"white": BackgroundWhite,
	"trang": BackgroundWhite,
	"blue":  BackgroundBlue,
	"xanh":  BackgroundBlue,
}

// ParseAttire resolves an attire name or alias.
func ParseAttire(value string) (Attire, error) {
	if a, ok := attireAliases[foldToken(value)]; ok {
		return a, nil
	}
	return "", fmt.Errorf("attire %q: %w", value, ErrUnknownOption)
}

// ParsePhotoSize resolves a size such as "4x6" or "3:4".
func ParsePhotoSize(value string) (PhotoSize, error) {
	if s, ok := sizeAliases[foldToken(value)]; ok {
		return s, nil
	}
	return "", fmt.Errorf("photo size %q: %w", value, ErrUnknownOption)
}

// ParseBackground resolves a color name in English or Vietnamese.
func ParseBackground(value string) (Background, error) {
	if b, ok := backgroundAliases[foldToken(value)]; ok {
		return b, nil
	}
	return "", fmt.Errorf("background %q: %w", value, ErrUnknownOption)
}

var dStroke = strings.NewReplacer("đ", "d", "Đ", "d")

// foldToken lowercases and strips Vietnamese diacritics so "Trắng" and
// "trang" compare equal.
func foldToken(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, value)
	if err != nil {
		folded = value
	}
	return dStroke.Replace(folded)
}
