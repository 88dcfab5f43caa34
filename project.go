package notemark

import "iter"

// Sink receives segments in order. Renderers implement Sink to turn plain segments
// into unstyled output and styled segments into styled output.
type Sink interface {
	WriteText(text string) error
	WriteStyled(content, classes string) error
}

// Project feeds every segment of segs to sink and stops at the first error.
func Project(segs iter.Seq[Segment], sink Sink) error {
	for seg := range segs {
		var err error
		if seg.Kind == SegmentStyled {
			err = sink.WriteStyled(seg.Text, seg.Classes)
		} else {
			err = sink.WriteText(seg.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
