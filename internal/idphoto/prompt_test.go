package idphoto

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
)

func allOptions() []Options {
	var out []Options
	for _, a := range Attires() {
		for _, b := range Backgrounds() {
			for _, s := range Sizes() {
				for mask := 0; mask < 8; mask++ {
					out = append(out, Options{
						Size:       s,
						Background: b,
						Attire:     a,
						Enhancements: Enhancements{
							Beautify:   mask&1 != 0,
							SmoothSkin: mask&2 != 0,
							Makeup:     mask&4 != 0,
						},
					})
				}
			}
		}
	}
	return out
}

func TestCompilePromptDeterministic(t *testing.T) {
	for _, opts := range allOptions() {
		if CompilePrompt(opts) != CompilePrompt(opts) {
			t.Fatalf("CompilePrompt(%+v) is not deterministic", opts)
		}
	}
}

func TestCompilePromptAlwaysHasPreservationDirective(t *testing.T) {
	for _, opts := range allOptions() {
		got := CompilePrompt(opts)
		if strings.Count(got, PreservationDirective) != 1 {
			t.Fatalf("CompilePrompt(%+v) must contain the preservation directive once:\n%s", opts, got)
		}
	}
}

func TestCompilePromptEmbedsEachOptionOnce(t *testing.T) {
	for _, opts := range allOptions() {
		got := CompilePrompt(opts)
		checks := []string{
			"tỷ lệ " + opts.Size.Descriptor(),
			opts.Background.Descriptor(),
			AttireInstruction(opts.Attire, opts.Background),
		}
		for _, want := range checks {
			if n := strings.Count(got, want); n != 1 {
				t.Fatalf("CompilePrompt(%+v) contains %q %d times", opts, want, n)
			}
		}
	}
}

func TestAoDaiWhiteBackgroundClause(t *testing.T) {
	white := CompilePrompt(Options{Size: PhotoSize3x4, Background: BackgroundWhite, Attire: AttireAoDai})
	if !strings.Contains(white, AoDaiWhiteBackgroundClause) {
		t.Fatalf("ao dai on white must carry the separation clause:\n%s", white)
	}

	blue := CompilePrompt(Options{Size: PhotoSize3x4, Background: BackgroundBlue, Attire: AttireAoDai})
	if strings.Contains(blue, AoDaiWhiteBackgroundClause) {
		t.Fatalf("ao dai on blue must not carry the separation clause:\n%s", blue)
	}

	for _, a := range []Attire{AttireOriginal, AttireShirt, AttireSuit} {
		if strings.Contains(CompilePrompt(Options{Background: BackgroundWhite, Attire: a}), AoDaiWhiteBackgroundClause) {
			t.Fatalf("attire %q must not carry the ao dai clause", a)
		}
	}
}

func TestWhiteBackgroundWarning(t *testing.T) {
	for _, opts := range allOptions() {
		got := CompilePrompt(opts)
		has := strings.Contains(got, WhiteBackgroundWarning)
		if opts.Background == BackgroundWhite && !has {
			t.Fatalf("white background prompt lacks the warning: %+v", opts)
		}
		if opts.Background == BackgroundBlue && has {
			t.Fatalf("blue background prompt has the warning: %+v", opts)
		}
		if has {
			if !strings.Contains(got, PreservationDirective+"\n"+WhiteBackgroundWarning) {
				t.Fatalf("warning must directly follow the preservation directive: %+v", opts)
			}
		}
	}
}

func TestEnhancementClausesOrderAndPresence(t *testing.T) {
	clauses := []string{enhanceBeautify, enhanceSmooth, enhanceMakeup}

	for _, opts := range allOptions() {
		got := CompilePrompt(opts)
		flags := []bool{opts.Enhancements.Beautify, opts.Enhancements.SmoothSkin, opts.Enhancements.Makeup}

		last := -1
		found := false
		for i, clause := range clauses {
			idx := strings.Index(got, clause)
			if flags[i] != (idx >= 0) {
				t.Fatalf("clause %d presence = %v, flag = %v (%+v)", i, idx >= 0, flags[i], opts)
			}
			if idx >= 0 {
				found = true
				if idx < last {
					t.Fatalf("enhancement clauses out of order: %+v", opts)
				}
				last = idx
			}
		}

		if found != strings.Contains(got, enhancementHeading) {
			t.Fatalf("enhancement heading presence mismatch for %+v", opts)
		}
	}
}

var numberedItem = regexp.MustCompile(`(?m)^(\d+)\.  `)

func TestOutputDirectiveIsLastNumberedItem(t *testing.T) {
	for _, opts := range allOptions() {
		got := CompilePrompt(opts)
		if !strings.HasSuffix(got, OutputDirective) {
			t.Fatalf("prompt must end with the output directive: %+v", opts)
		}

		matches := numberedItem.FindAllStringSubmatch(got, -1)
		for i, m := range matches {
			if want := i + 1; m[1] != strconv.Itoa(want) {
				t.Fatalf("item %d numbered %s, want contiguous numbering (%+v)", i, m[1], opts)
			}
		}
		lastLine := got[strings.LastIndex(got, "\n")+1:]
		if !numberedItem.MatchString(lastLine) {
			t.Fatalf("last line is not a numbered item: %q", lastLine)
		}
	}
}

func TestCompilePromptShirtScenario(t *testing.T) {
	got := CompilePrompt(Options{
		Size:         PhotoSize3x4,
		Background:   BackgroundBlue,
		Attire:       AttireShirt,
		Enhancements: Enhancements{Beautify: true},
	})

	for _, want := range []string{attireShirt, "3x4", "#0079FF", enhanceBeautify, enhancementHeading} {
		if !strings.Contains(got, want) {
			t.Fatalf("prompt missing %q:\n%s", want, got)
		}
	}
	for _, unwanted := range []string{enhanceSmooth, enhanceMakeup, WhiteBackgroundWarning} {
		if strings.Contains(got, unwanted) {
			t.Fatalf("prompt unexpectedly contains %q", unwanted)
		}
	}
	if strings.Count(got, "\n- ") != 1 {
		t.Fatalf("want exactly one enhancement clause:\n%s", got)
	}
}

func TestAttireInstructionFallback(t *testing.T) {
	if got := AttireInstruction(Attire("tuxedo"), BackgroundWhite); got != attireFallback {
		t.Fatalf("AttireInstruction(unknown) = %q", got)
	}
	got := CompilePrompt(Options{Size: PhotoSize4x6, Background: BackgroundBlue, Attire: Attire("tuxedo")})
	if !strings.Contains(got, "**Trang Phục:** "+attireFallback) {
		t.Fatalf("fallback attire clause missing:\n%s", got)
	}
}

func TestDescriptors(t *testing.T) {
	if PhotoSize3x4.Descriptor() != "3x4" || PhotoSize4x6.Descriptor() != "4x6" {
		t.Fatal("unexpected size descriptors")
	}
	if PhotoSize3x4.AspectRatio() != "3:4" || PhotoSize4x6.AspectRatio() != "2:3" {
		t.Fatal("unexpected aspect ratios")
	}
	if !strings.Contains(BackgroundWhite.Descriptor(), "#FFFFFF") || !strings.Contains(BackgroundBlue.Descriptor(), "#0079FF") {
		t.Fatal("unexpected background descriptors")
	}
}
