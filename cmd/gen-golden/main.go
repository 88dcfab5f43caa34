package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"pkt.systems/notemark"
)

var goldenFormats = []struct {
	format notemark.Format
	ext    string
}{
	{notemark.FormatHTML, ".html.golden"},
	{notemark.FormatText, ".txt.golden"},
}

func main() {
	root := pflag.StringP("dir", "d", "testdata", "Directory holding .note files")
	check := pflag.Bool("check", false, "Report stale goldens instead of writing them")
	pflag.Parse()

	var paths []string
	err := filepath.WalkDir(*root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && strings.HasSuffix(path, ".note") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		fatalf("walk %s: %v", *root, err)
	}
	if len(paths) == 0 {
		fatalf("no .note files found under %s", *root)
	}
	stale := 0
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			fatalf("read %s: %v", path, err)
		}
		base := strings.TrimSuffix(path, ".note")
		for _, gf := range goldenFormats {
			var out bytes.Buffer
			err := notemark.Render(notemark.RenderRequest{
				Reader: bytes.NewReader(src),
				Writer: &out,
				Format: gf.format,
			})
			if err != nil {
				fatalf("render %s as %s: %v", path, gf.format, err)
			}
			goldenPath := base + gf.ext
			if *check {
				have, err := os.ReadFile(goldenPath)
				if err != nil || !bytes.Equal(have, out.Bytes()) {
					fmt.Fprintf(os.Stdout, "stale %s\n", goldenPath)
					stale++
				}
				continue
			}
			if err := os.WriteFile(goldenPath, out.Bytes(), 0o644); err != nil {
				fatalf("write %s: %v", goldenPath, err)
			}
			fmt.Fprintf(os.Stdout, "wrote %s\n", goldenPath)
		}
	}
	if stale > 0 {
		os.Exit(1)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
