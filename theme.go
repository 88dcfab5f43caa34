package notemark

import (
	"sort"
	"strings"

	"github.com/muesli/termenv"
)

const sgrReset = termenv.CSI + termenv.ResetSeq + "m"

// Style describes a terminal style as an ANSI prefix sequence.
type Style struct {
	Prefix string
}

// Styles groups the base styles used by the terminal renderer. Text applies to plain
// segments; Styled is written before the class-derived style of every directive.
type Styles struct {
	Text   Style
	Styled Style
}

// Theme provides the base styles and the color profile class colors are mapped to.
type Theme interface {
	Name() string
	Styles() Styles
	Profile() termenv.Profile
}

type theme struct {
	name    string
	styles  Styles
	profile termenv.Profile
}

func (t theme) Name() string             { return t.name }
func (t theme) Styles() Styles           { return t.styles }
func (t theme) Profile() termenv.Profile { return t.profile }

// NewTheme returns a Theme from a Styles definition and a color profile.
func NewTheme(name string, profile termenv.Profile, styles Styles) Theme {
	return theme{name: name, styles: styles, profile: profile}
}

var builtinThemes = map[string]Theme{
	"default": theme{name: "default", profile: termenv.TrueColor},
	"ansi256": theme{name: "ansi256", profile: termenv.ANSI256},
	"ansi":    theme{name: "ansi", profile: termenv.ANSI},
	"boring":  theme{name: "boring", profile: termenv.Ascii},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// ThemeForProfile returns the built-in theme matching a terminal color profile.
func ThemeForProfile(p termenv.Profile) Theme {
	switch p {
	case termenv.TrueColor:
		return builtinThemes["default"]
	case termenv.ANSI256:
		return builtinThemes["ansi256"]
	case termenv.ANSI:
		return builtinThemes["ansi"]
	default:
		return builtinThemes["boring"]
	}
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

// BoringTheme returns the theme that emits no escape sequences.
func BoringTheme() Theme {
	return builtinThemes["boring"]
}

// ClassStyle returns the terminal style for a directive's class list under theme t.
func ClassStyle(t Theme, classes string, aliases map[string]string) Style {
	return Style{Prefix: t.Styles().Styled.Prefix + sgrPrefix(resolveClasses(classes, aliases), t.Profile())}
}

func sgrPrefix(attrs classAttrs, profile termenv.Profile) string {
	if profile == termenv.Ascii {
		return ""
	}
	params := make([]string, 0, 8)
	if attrs.bold {
		params = append(params, termenv.BoldSeq)
	}
	if attrs.faint {
		params = append(params, termenv.FaintSeq)
	}
	if attrs.italic {
		params = append(params, termenv.ItalicSeq)
	}
	if attrs.underline {
		params = append(params, termenv.UnderlineSeq)
	}
	if attrs.reverse {
		params = append(params, termenv.ReverseSeq)
	}
	if attrs.strike {
		params = append(params, termenv.CrossOutSeq)
	}
	if attrs.fg != nil {
		if seq := profile.FromColor(*attrs.fg).Sequence(false); seq != "" {
			params = append(params, seq)
		}
	}
	if attrs.bg != nil {
		if seq := profile.FromColor(*attrs.bg).Sequence(true); seq != "" {
			params = append(params, seq)
		}
	}
	if len(params) == 0 {
		return ""
	}
	return termenv.CSI + strings.Join(params, ";") + "m"
}
