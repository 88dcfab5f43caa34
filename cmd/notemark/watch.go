package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"pkt.systems/notemark"
)

const clearScreen = "\x1b[H\x1b[2J"

var logger = log.New(os.Stderr, "notemark: ", log.LstdFlags)

// watchRenderer re-renders a buffer only when its content differs from the last
// rendered content.
type watchRenderer struct {
	memo  *notemark.Memo[[]notemark.Segment]
	req   notemark.RenderRequest
	w     io.Writer
	clear bool
}

func newWatchRenderer(req notemark.RenderRequest, clear bool) *watchRenderer {
	return &watchRenderer{
		memo:  notemark.NewMemo(notemark.Parse),
		req:   req,
		w:     req.Writer,
		clear: clear,
	}
}

// update renders content and reports whether anything was written.
func (r *watchRenderer) update(content []byte) (bool, error) {
	if err := notemark.ValidateInput(content); err != nil {
		return false, err
	}
	segs, cached := r.memo.Get(string(content))
	if cached {
		return false, nil
	}
	out, err := notemark.RenderSegments(segs, r.req)
	if err != nil {
		return false, err
	}
	if r.clear {
		out = clearScreen + out
	}
	if _, err := io.WriteString(r.w, out); err != nil {
		return false, fmt.Errorf("watch: write: %w", err)
	}
	return true, nil
}

func (r *watchRenderer) updateFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Printf("read %s: %v", path, err)
		return
	}
	if _, err := r.update(data); err != nil {
		logger.Printf("render %s: %v", path, err)
	}
}

// runWatch renders path, then renders it again after every change until ctx is done.
// The parent directory is watched so editors that replace the file on save are seen.
func runWatch(ctx context.Context, path string, req notemark.RenderRequest, clear bool) error {
	abs := normalizePath(path)
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	r := newWatchRenderer(req, clear)
	r.updateFile(abs)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				r.updateFile(abs)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Printf("watch: %v", err)
		}
	}
}
