package notemark

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

func mustReadSample(b *testing.B, path string) []byte {
	b.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		b.Fatalf("read %s: %v", path, err)
	}
	return data
}

func BenchmarkParse(b *testing.B) {
	input := strings.Repeat(string(mustReadSample(b, "testdata/welcome.note")), 50)
	b.ReportAllocs()
	b.SetBytes(int64(len(input)))
	for i := 0; i < b.N; i++ {
		_ = Parse(input)
	}
}

func BenchmarkMemoHit(b *testing.B) {
	input := string(mustReadSample(b, "testdata/welcome.note"))
	memo := NewMemo(Parse)
	memo.Get(input)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		memo.Get(input)
	}
}

func BenchmarkRender(b *testing.B) {
	data := bytes.Repeat(mustReadSample(b, "testdata/welcome.note"), 50)
	for _, format := range []Format{FormatANSI, FormatHTML, FormatJSON} {
		b.Run(string(format), func(b *testing.B) {
			b.ReportAllocs()
			reader := bytes.NewReader(data)
			for i := 0; i < b.N; i++ {
				reader.Reset(data)
				_ = Render(RenderRequest{
					Reader: reader,
					Writer: io.Discard,
					Format: format,
					Width:  80,
					Theme:  DefaultTheme(),
				})
			}
		})
	}
}
