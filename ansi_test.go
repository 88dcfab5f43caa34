package notemark

import (
	"regexp"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func ansiTheme(t *testing.T) Theme {
	t.Helper()
	theme, ok := ThemeByName("ansi")
	if !ok {
		t.Fatalf("missing ansi theme")
	}
	return theme
}

func TestRenderANSIAttributes(t *testing.T) {
	got := RenderANSI(Parse("Hello $(world, font-bold underline)!"), 0, ansiTheme(t))
	want := "Hello \x1b[1;4mworld\x1b[0m!"
	if got != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, got)
	}
}

func TestRenderANSIColors(t *testing.T) {
	got := RenderANSI(Parse("$(alert, text-red-500 bg-black)"), 0, DefaultTheme())
	if !strings.HasPrefix(got, "\x1b[38;2;") {
		t.Fatalf("expected truecolor foreground, got %q", got)
	}
	if !strings.Contains(got, ";48;2;0;0;0m") {
		t.Fatalf("expected black truecolor background, got %q", got)
	}
	if !strings.HasSuffix(got, "alert\x1b[0m") {
		t.Fatalf("expected reset after content, got %q", got)
	}
	if plain := stripANSI(got); plain != "alert" {
		t.Fatalf("unexpected visible text %q", plain)
	}
}

func TestRenderANSIBoringHasNoEscapes(t *testing.T) {
	got := RenderANSI(Parse("a $(b, font-bold text-red-500) c"), 0, BoringTheme())
	if got != "a b c" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderANSIUnknownClassesAreIgnored(t *testing.T) {
	got := RenderANSI(Parse("$(x, shadow-lg p-4 rounded)"), 0, ansiTheme(t))
	if got != "x" {
		t.Fatalf("expected unstyled content, got %q", got)
	}
}

func TestRenderANSITextTransforms(t *testing.T) {
	cases := map[string]string{
		"$(loud words, uppercase)":       "LOUD WORDS",
		"$(QUIET, lowercase)":            "quiet",
		"$(hello world, capitalize)":     "Hello World",
		"$(keep, uppercase normal-case)": "keep",
	}
	for input, want := range cases {
		if got := RenderANSI(Parse(input), 0, BoringTheme()); got != want {
			t.Fatalf("RenderANSI(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestRenderANSIAliases(t *testing.T) {
	aliases := map[string]string{"warn": "font-bold underline"}
	got := RenderANSI(Parse("$(careful, warn)"), 0, ansiTheme(t), WithClassAliases(aliases))
	want := "\x1b[1;4mcareful\x1b[0m"
	if got != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, got)
	}
}

func TestRenderANSIThemeBaseStyles(t *testing.T) {
	theme := NewTheme("custom", ansiTheme(t).Profile(), Styles{
		Text:   Style{Prefix: "<t>"},
		Styled: Style{Prefix: "<s>"},
	})
	got := RenderANSI(Parse("a $(b, c)"), 0, theme)
	want := "<t>a \x1b[0m<s>b\x1b[0m"
	if got != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, got)
	}
}

func TestRenderANSIWrapWidthBounds(t *testing.T) {
	src := strings.Join([]string{
		"Paragraph with $(styled words, font-bold text-sky-500) in the middle and",
		"some $(more emphasis, italic underline) near the end of a longer line.",
	}, "\n")
	segs := Parse(src)
	for width := 20; width <= 80; width += 5 {
		out := RenderANSI(segs, width, DefaultTheme())
		for i, line := range strings.Split(out, "\n") {
			if w := ansi.PrintableRuneWidth(line); w > width {
				t.Fatalf("width %d: line %d is %d wide: %q", width, i+1, w, stripANSI(line))
			}
		}
	}
}

func TestRenderANSISoftWrapBreaksLongWords(t *testing.T) {
	segs := Parse("$(abcdefghijklmnop, font-bold)")
	hard := RenderANSI(segs, 5, BoringTheme(), WithSoftWrap(true))
	for i, line := range strings.Split(hard, "\n") {
		if w := ansi.PrintableRuneWidth(line); w > 5 {
			t.Fatalf("line %d exceeds width: %q", i+1, line)
		}
	}
	if stripped := strings.ReplaceAll(hard, "\n", ""); stripped != "abcdefghijklmnop" {
		t.Fatalf("soft wrap lost text: %q", stripped)
	}
}

func TestRenderANSIIsIdempotent(t *testing.T) {
	segs := Parse("Hello $(world, font-bold text-sky-500)\n$(done, line-through) ok")
	first := RenderANSI(segs, 20, DefaultTheme())
	second := RenderANSI(segs, 20, DefaultTheme())
	if first != second {
		t.Fatalf("projection changed between runs\nfirst:  %q\nsecond: %q", first, second)
	}
}
