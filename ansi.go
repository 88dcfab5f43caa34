package notemark

import (
	"io"
	"slices"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// ANSIWriter is a Sink that writes terminal output. Plain segments use the theme's
// Text style; styled segments use the style derived from their class list. Every
// styled run is closed with an SGR reset.
type ANSIWriter struct {
	w       io.Writer
	theme   Theme
	aliases map[string]string
}

// NewANSIWriter returns an ANSIWriter for theme. A nil theme selects DefaultTheme.
func NewANSIWriter(w io.Writer, theme Theme, opts ...RenderOption) *ANSIWriter {
	if theme == nil {
		theme = DefaultTheme()
	}
	cfg := newRenderConfig(opts)
	return &ANSIWriter{w: w, theme: theme, aliases: cfg.aliases}
}

// WriteText writes a plain segment.
func (a *ANSIWriter) WriteText(text string) error {
	return a.write(a.theme.Styles().Text.Prefix, text)
}

// WriteStyled writes a styled segment.
func (a *ANSIWriter) WriteStyled(content, classes string) error {
	attrs := resolveClasses(classes, a.aliases)
	prefix := a.theme.Styles().Styled.Prefix + sgrPrefix(attrs, a.theme.Profile())
	return a.write(prefix, attrs.transform(content))
}

func (a *ANSIWriter) write(prefix, text string) error {
	if text == "" {
		return nil
	}
	if prefix == "" {
		_, err := io.WriteString(a.w, text)
		return err
	}
	_, err := io.WriteString(a.w, prefix+text+sgrReset)
	return err
}

// RenderANSI projects segments to terminal output, word wrapped at width when width
// is positive.
func RenderANSI(segs []Segment, width int, theme Theme, opts ...RenderOption) string {
	cfg := newRenderConfig(opts)
	var b strings.Builder
	_ = Project(slices.Values(segs), NewANSIWriter(&b, theme, opts...))
	return wrapText(b.String(), width, cfg.softWrap)
}

func wrapText(s string, width int, softWrap bool) string {
	if width <= 0 {
		return s
	}
	s = wordwrap.String(s, width)
	if softWrap {
		s = wrap.String(s, width)
	}
	return s
}
