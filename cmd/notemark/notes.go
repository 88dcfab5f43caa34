package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"pkt.systems/notemark"
	"pkt.systems/notemark/internal/config"
	"pkt.systems/notemark/notes"
)

// runNotes performs the note actions selected in opts, in a fixed order: seed, add,
// list, search, render.
func runNotes(ctx context.Context, opts options, args []string, req notemark.RenderRequest) error {
	path := opts.dbPath
	if path == "" {
		p, err := config.DefaultDatabase()
		if err != nil {
			return fmt.Errorf("notes: locate database: %w", err)
		}
		path = p
	} else if path != ":memory:" {
		path = normalizePath(path)
	}
	store, err := notes.Open(ctx, path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if opts.seedDemo {
		created, err := store.SeedDemo(ctx)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintln(os.Stderr, "created demo note")
		}
	}

	if opts.addNote != "" {
		n, err := addNote(ctx, store, opts.addNote, args)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "created note %d: %s\n", n.ID, n.Title)
	}

	if opts.listNotes {
		list, err := store.List(ctx)
		if err != nil {
			return err
		}
		if err := printNotes(req.Writer, list); err != nil {
			return err
		}
	}

	if opts.searchText != "" {
		found, err := store.Search(ctx, opts.searchText)
		if err != nil {
			return err
		}
		if err := printNotes(req.Writer, found); err != nil {
			return err
		}
	}

	if opts.noteID != 0 {
		n, err := store.Get(ctx, opts.noteID)
		if err != nil {
			return err
		}
		out, err := notemark.RenderSegments(n.Segments(), req)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(req.Writer, out); err != nil {
			return fmt.Errorf("write note %d: %w", n.ID, err)
		}
	}
	return nil
}

func addNote(ctx context.Context, store *notes.Store, title string, args []string) (notes.Note, error) {
	if title == "-" {
		title = ""
	}
	content := ""
	if len(args) > 0 {
		data, err := readInputs(ctx, args)
		if err != nil {
			return notes.Note{}, fmt.Errorf("add note: %w", err)
		}
		content = string(data)
	}
	return store.Create(ctx, title, content)
}

func printNotes(w io.Writer, list []notes.Note) error {
	for _, n := range list {
		styled := 0
		for _, seg := range n.Segments() {
			if seg.Styled() {
				styled++
			}
		}
		firstLine, _, _ := strings.Cut(n.Content, "\n")
		if _, err := fmt.Fprintf(w, "%d\t%s\t%d styled\t%s\n", n.ID, n.Title, styled, firstLine); err != nil {
			return err
		}
	}
	return nil
}
