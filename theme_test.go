package notemark

import (
	"testing"

	"github.com/muesli/termenv"
)

func TestThemeByName(t *testing.T) {
	for _, name := range []string{"default", "ansi256", "ansi", "boring", " Boring "} {
		if _, ok := ThemeByName(name); !ok {
			t.Fatalf("expected theme %q to be available", name)
		}
	}
	if theme, ok := ThemeByName(""); !ok || theme.Name() != "default" {
		t.Fatalf("empty name should select the default theme")
	}
	if _, ok := ThemeByName("nope"); ok {
		t.Fatalf("unexpected theme for unknown name")
	}
	if got := len(AvailableThemes()); got != 4 {
		t.Fatalf("expected 4 built-in themes, got %d", got)
	}
}

func TestThemeForProfile(t *testing.T) {
	cases := map[termenv.Profile]string{
		termenv.TrueColor: "default",
		termenv.ANSI256:   "ansi256",
		termenv.ANSI:      "ansi",
		termenv.Ascii:     "boring",
	}
	for profile, want := range cases {
		if got := ThemeForProfile(profile).Name(); got != want {
			t.Fatalf("ThemeForProfile(%v)=%q want %q", profile, got, want)
		}
	}
}

func TestClassStyle(t *testing.T) {
	if got := ClassStyle(BoringTheme(), "font-bold text-red-500", nil); got.Prefix != "" {
		t.Fatalf("boring theme should not style, got %q", got.Prefix)
	}
	theme, _ := ThemeByName("ansi")
	if got := ClassStyle(theme, "italic line-through", nil); got.Prefix != "\x1b[3;9m" {
		t.Fatalf("unexpected prefix %q", got.Prefix)
	}
	if got := ClassStyle(theme, "text-red-500", nil); got.Prefix == "" {
		t.Fatalf("expected a color sequence for text-red-500")
	}
}
