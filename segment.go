package notemark

import (
	"iter"
	"regexp"
	"strings"
)

// directivePattern matches $(content, classes). Content may not contain a comma and
// the class list may not contain a closing parenthesis.
var directivePattern = regexp.MustCompile(`\$\(([^,]+),\s*([^)]+)\)`)

// SegmentKind tells plain and styled segments apart.
type SegmentKind uint8

const (
	// SegmentPlain is verbatim text outside any directive.
	SegmentPlain SegmentKind = iota
	// SegmentStyled is the payload of a $(content, classes) directive.
	SegmentStyled
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentPlain:
		return "plain"
	case SegmentStyled:
		return "styled"
	default:
		return "unknown"
	}
}

// Segment is one contiguous run of parser output.
//
// For plain segments Text is the source text verbatim. For styled segments Text is the
// trimmed directive content and Classes the trimmed class list, kept as an opaque
// string. Raw is the exact source span the segment came from and Pos its byte offset,
// so concatenating Raw over a parse result always yields the input.
type Segment struct {
	Kind    SegmentKind
	Text    string
	Classes string
	Pos     int
	Raw     string
}

// Styled reports whether the segment came from a directive.
func (s Segment) Styled() bool {
	return s.Kind == SegmentStyled
}

// End returns the byte offset just past the segment's source span.
func (s Segment) End() int {
	return s.Pos + len(s.Raw)
}

// Segments returns the segments of input as a lazy sequence. Directives are matched
// left to right without overlap; anything the grammar does not match stays plain text.
// Empty gaps between directives never produce a segment.
func Segments(input string) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		cursor := 0
		for cursor < len(input) {
			loc := directivePattern.FindStringSubmatchIndex(input[cursor:])
			if loc == nil {
				break
			}
			start, end := cursor+loc[0], cursor+loc[1]
			if start > cursor {
				if !yield(plainSegment(input, cursor, start)) {
					return
				}
			}
			seg := Segment{
				Kind:    SegmentStyled,
				Text:    strings.TrimSpace(input[cursor+loc[2] : cursor+loc[3]]),
				Classes: strings.TrimSpace(input[cursor+loc[4] : cursor+loc[5]]),
				Pos:     start,
				Raw:     input[start:end],
			}
			if !yield(seg) {
				return
			}
			cursor = end
		}
		if cursor < len(input) {
			yield(plainSegment(input, cursor, len(input)))
		}
	}
}

// Parse returns all segments of input in order.
func Parse(input string) []Segment {
	var out []Segment
	for seg := range Segments(input) {
		out = append(out, seg)
	}
	return out
}

func plainSegment(input string, start, end int) Segment {
	text := input[start:end]
	return Segment{Kind: SegmentPlain, Text: text, Pos: start, Raw: text}
}
