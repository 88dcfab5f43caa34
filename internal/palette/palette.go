// Package palette provides the color families used by utility class names such as
// text-red-500 or bg-sky-100.
package palette

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Shades lists the valid shade steps, lightest first.
var Shades = []int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900, 950}

// base holds the 500 shade of every family.
var base = map[string]string{
	"slate":   "#64748b",
	"gray":    "#6b7280",
	"zinc":    "#71717a",
	"neutral": "#737373",
	"stone":   "#78716c",
	"red":     "#ef4444",
	"orange":  "#f97316",
	"amber":   "#f59e0b",
	"yellow":  "#eab308",
	"lime":    "#84cc16",
	"green":   "#22c55e",
	"emerald": "#10b981",
	"teal":    "#14b8a6",
	"cyan":    "#06b6d4",
	"sky":     "#0ea5e9",
	"blue":    "#3b82f6",
	"indigo":  "#6366f1",
	"violet":  "#8b5cf6",
	"purple":  "#a855f7",
	"fuchsia": "#d946ef",
	"pink":    "#ec4899",
	"rose":    "#f43f5e",
}

var (
	white = mustHex("#ffffff")
	black = mustHex("#000000")
)

// Families returns the color family names in sorted order.
func Families() []string {
	names := make([]string, 0, len(base))
	for name := range base {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the color for a family and shade. Shades other than 500 are blended
// from the 500 shade in Lab space: toward white for lighter steps and toward black for
// darker ones.
func Lookup(family string, shade int) (colorful.Color, bool) {
	hex, ok := base[strings.ToLower(family)]
	if !ok || !slices.Contains(Shades, shade) {
		return colorful.Color{}, false
	}
	c := mustHex(hex)
	switch {
	case shade < 500:
		t := float64(500-shade) / 500 * 0.95
		return c.BlendLab(white, t).Clamped(), true
	case shade > 500:
		t := float64(shade-500) / 500 * 0.9
		return c.BlendLab(black, t).Clamped(), true
	default:
		return c, true
	}
}

// Named returns the shade-less colors black and white.
func Named(name string) (colorful.Color, bool) {
	switch strings.ToLower(name) {
	case "black":
		return black, true
	case "white":
		return white, true
	}
	return colorful.Color{}, false
}

// Parse resolves a color token as used after text- or bg-: "red-500", "red" (500),
// "black", "white" or an arbitrary value such as "[#ff8800]".
func Parse(token string) (colorful.Color, bool) {
	if strings.HasPrefix(token, "[") && strings.HasSuffix(token, "]") {
		c, err := colorful.Hex(token[1 : len(token)-1])
		if err != nil {
			return colorful.Color{}, false
		}
		return c, true
	}
	if c, ok := Named(token); ok {
		return c, true
	}
	family, shadeText, found := strings.Cut(token, "-")
	if !found {
		return Lookup(family, 500)
	}
	shade, ok := parseShade(shadeText)
	if !ok {
		return colorful.Color{}, false
	}
	return Lookup(family, shade)
}

// parseShade accepts only unsigned decimal shade steps listed in Shades.
func parseShade(s string) (int, bool) {
	if s == "" || len(s) > 3 || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || !slices.Contains(Shades, n) {
		return 0, false
	}
	return n, true
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("palette: bad color " + s)
	}
	return c
}
