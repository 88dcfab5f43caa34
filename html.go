package notemark

import (
	"html"
	"io"
	"slices"
	"strings"
)

// HTMLWriter is a Sink that writes markup: plain text as text and styled segments as
// span elements carrying the class list.
type HTMLWriter struct {
	w   io.Writer
	raw bool
}

// NewHTMLWriter returns an HTMLWriter. Text and class lists are escaped unless
// WithRawHTML(true) is given.
func NewHTMLWriter(w io.Writer, opts ...RenderOption) *HTMLWriter {
	cfg := newRenderConfig(opts)
	return &HTMLWriter{w: w, raw: cfg.rawHTML}
}

// WriteText writes a plain segment.
func (h *HTMLWriter) WriteText(text string) error {
	_, err := io.WriteString(h.w, h.escape(text))
	return err
}

// WriteStyled writes a styled segment as <span class="classes">content</span>.
func (h *HTMLWriter) WriteStyled(content, classes string) error {
	_, err := io.WriteString(h.w, `<span class="`+h.escape(classes)+`">`+h.escape(content)+`</span>`)
	return err
}

func (h *HTMLWriter) escape(s string) string {
	if h.raw {
		return s
	}
	return html.EscapeString(s)
}

// RenderHTML projects segments to an HTML string.
func RenderHTML(segs []Segment, opts ...RenderOption) string {
	cfg := newRenderConfig(opts)
	var b strings.Builder
	hw := &HTMLWriter{w: &b, raw: cfg.rawHTML}
	if cfg.container != "" {
		b.WriteString(`<div class="` + hw.escape(cfg.container) + `">`)
	}
	// strings.Builder never fails.
	_ = Project(slices.Values(segs), hw)
	if cfg.container != "" {
		b.WriteString("</div>")
	}
	return b.String()
}

// HTML segments input and renders it as HTML.
func HTML(input string, opts ...RenderOption) string {
	return RenderHTML(Parse(input), opts...)
}
