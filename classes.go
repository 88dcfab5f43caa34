package notemark

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pkt.systems/notemark/internal/palette"
)

type textCase uint8

const (
	caseNone textCase = iota
	caseUpper
	caseLower
	caseTitle
)

// classAttrs is the terminal-relevant reading of a class list.
type classAttrs struct {
	bold      bool
	faint     bool
	italic    bool
	underline bool
	strike    bool
	reverse   bool
	fg        *colorful.Color
	bg        *colorful.Color
	textCase  textCase
}

var headingSizes = map[string]bool{
	"text-2xl": true, "text-3xl": true, "text-4xl": true, "text-5xl": true,
	"text-6xl": true, "text-7xl": true, "text-8xl": true, "text-9xl": true,
}

// resolveClasses reads a whitespace separated class list. Unknown names are ignored
// and later names override earlier ones. Aliases are expanded one level deep.
func resolveClasses(list string, aliases map[string]string) classAttrs {
	var attrs classAttrs
	for _, name := range strings.Fields(list) {
		if expanded, ok := aliases[name]; ok {
			for _, inner := range strings.Fields(expanded) {
				attrs.apply(inner)
			}
			continue
		}
		attrs.apply(name)
	}
	return attrs
}

func (a *classAttrs) apply(name string) {
	switch name {
	case "font-bold", "font-semibold", "font-extrabold", "font-black":
		a.bold, a.faint = true, false
	case "font-thin", "font-extralight", "font-light":
		a.faint, a.bold = true, false
	case "font-normal", "font-medium":
		a.bold, a.faint = false, false
	case "italic":
		a.italic = true
	case "not-italic":
		a.italic = false
	case "underline":
		a.underline = true
	case "line-through":
		a.strike = true
	case "no-underline":
		a.underline, a.strike = false, false
	case "invert":
		a.reverse = true
	case "uppercase":
		a.textCase = caseUpper
	case "lowercase":
		a.textCase = caseLower
	case "capitalize":
		a.textCase = caseTitle
	case "normal-case":
		a.textCase = caseNone
	default:
		if headingSizes[name] {
			a.bold = true
			return
		}
		if rest, ok := strings.CutPrefix(name, "text-"); ok {
			if c, ok := palette.Parse(rest); ok {
				a.fg = &c
			}
			return
		}
		if rest, ok := strings.CutPrefix(name, "bg-"); ok {
			if c, ok := palette.Parse(rest); ok {
				a.bg = &c
			}
		}
	}
}

func (a classAttrs) transform(text string) string {
	switch a.textCase {
	case caseUpper:
		return strings.ToUpper(text)
	case caseLower:
		return strings.ToLower(text)
	case caseTitle:
		return cases.Title(language.Und, cases.NoLower).String(text)
	default:
		return text
	}
}
