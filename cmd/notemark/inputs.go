package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/notemark"
)

// source is one input argument, either a local file or an http(s) URL.
type source struct {
	path string
	url  string
}

func (s source) String() string {
	if s.url != "" {
		return s.url
	}
	return s.path
}

func (s source) open(ctx context.Context) (io.ReadCloser, error) {
	if s.url != "" {
		return notemark.Fetch(ctx, nil, s.url)
	}
	return os.Open(s.path)
}

// parseSource classifies arg. file:// URLs become paths; anything without a known
// scheme is a path too.
func parseSource(arg string) (source, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return source{}, errors.New("empty input argument")
	}
	u, err := url.Parse(arg)
	if err == nil {
		switch u.Scheme {
		case "http", "https":
			return source{url: arg}, nil
		case "file":
			p := u.Path
			if p == "" {
				p = u.Opaque
			}
			return source{path: normalizePath(p)}, nil
		}
	}
	return source{path: normalizePath(arg)}, nil
}

// inputReader concatenates sources, opening each only once the previous one is
// drained. Every open and read is bound to ctx.
type inputReader struct {
	ctx     context.Context
	pending []source
	cur     io.ReadCloser
}

func (r *inputReader) Read(p []byte) (int, error) {
	for {
		if err := r.ctx.Err(); err != nil {
			return 0, err
		}
		if r.cur == nil {
			if len(r.pending) == 0 {
				return 0, io.EOF
			}
			next := r.pending[0]
			rc, err := next.open(r.ctx)
			if err != nil {
				return 0, fmt.Errorf("open %s: %w", next, err)
			}
			r.pending = r.pending[1:]
			r.cur = rc
		}
		n, err := r.cur.Read(p)
		if errors.Is(err, io.EOF) {
			_ = r.cur.Close()
			r.cur = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (r *inputReader) Close() error {
	r.pending = nil
	if r.cur == nil {
		return nil
	}
	err := r.cur.Close()
	r.cur = nil
	return err
}

// openInputs returns stdin when args is empty, otherwise the concatenation of every
// file, file:// URL or http(s):// URL in args. The caller closes the result.
func openInputs(ctx context.Context, args []string) (io.ReadCloser, error) {
	if len(args) == 0 {
		return io.NopCloser(os.Stdin), nil
	}
	sources := make([]source, 0, len(args))
	for _, arg := range args {
		src, err := parseSource(arg)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return &inputReader{ctx: ctx, pending: sources}, nil
}

// readInputs reads and validates all inputs.
func readInputs(ctx context.Context, args []string) ([]byte, error) {
	in, err := openInputs(ctx, args)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	if err := notemark.ValidateInput(data); err != nil {
		return nil, err
	}
	return data, nil
}

// resolveOutput returns stdout for an empty path, otherwise a created file whose
// parent directories are made as needed. The closer is nil for stdout.
func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	if err := os.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

// normalizePath expands a leading ~ and makes path absolute when possible.
func normalizePath(path string) string {
	if rest, ok := strings.CutPrefix(path, "~"); ok && (rest == "" || rest[0] == '/') {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + rest
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
