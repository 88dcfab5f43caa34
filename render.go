package notemark

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Format selects the output of Render.
type Format string

const (
	// FormatANSI renders styled terminal output.
	FormatANSI Format = "ansi"
	// FormatText renders directive content without any styling.
	FormatText Format = "text"
	// FormatHTML renders span elements carrying the class lists.
	FormatHTML Format = "html"
	// FormatJSON renders the segment list.
	FormatJSON Format = "json"
)

// ErrUnknownFormat reports an unsupported output format name.
var ErrUnknownFormat = errors.New("unknown format")

// Formats returns the supported format names.
func Formats() []string {
	return []string{string(FormatANSI), string(FormatText), string(FormatHTML), string(FormatJSON)}
}

// ParseFormat returns the Format named by s. An empty name selects FormatANSI.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatANSI, nil
	case FormatANSI, FormatText, FormatHTML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q (expected %s)", ErrUnknownFormat, s, strings.Join(Formats(), "|"))
	}
}

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Format  Format
	Width   int
	Theme   Theme
	Options []RenderOption
}

// Render reads the whole input, segments it and writes it in the requested format.
// Terminal and text output always end with a newline.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: Reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: Writer is nil")
	}
	src, err := io.ReadAll(req.Reader)
	if err != nil {
		return fmt.Errorf("render: read: %w", err)
	}
	if err := ValidateInput(src); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	out, err := RenderSegments(Parse(string(src)), req)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(req.Writer, out); err != nil {
		return fmt.Errorf("render: write: %w", err)
	}
	return nil
}

// RenderSegments projects already parsed segments using the format, width, theme and
// options of req. Reader and Writer are ignored.
func RenderSegments(segs []Segment, req RenderRequest) (string, error) {
	format := req.Format
	if format == "" {
		format = FormatANSI
	}
	switch format {
	case FormatANSI, FormatText:
		theme := req.Theme
		if format == FormatText {
			theme = BoringTheme()
		}
		out := RenderANSI(segs, req.Width, theme, req.Options...)
		if out != "" && !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		return out, nil
	case FormatHTML:
		return RenderHTML(segs, req.Options...), nil
	case FormatJSON:
		return renderJSON(segs)
	default:
		return "", fmt.Errorf("render: %w %q", ErrUnknownFormat, string(format))
	}
}

type jsonSegment struct {
	Kind    string `json:"kind"`
	Text    string `json:"text"`
	Classes string `json:"classes,omitempty"`
	Pos     int    `json:"pos"`
	Raw     string `json:"raw"`
}

// MarshalJSON encodes the segment with its kind spelled out.
func (s Segment) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonSegment{
		Kind:    s.Kind.String(),
		Text:    s.Text,
		Classes: s.Classes,
		Pos:     s.Pos,
		Raw:     s.Raw,
	})
}

func renderJSON(segs []Segment) (string, error) {
	if segs == nil {
		segs = []Segment{}
	}
	data, err := json.MarshalIndent(segs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render: json: %w", err)
	}
	return string(data) + "\n", nil
}
