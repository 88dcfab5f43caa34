package notes

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"pkt.systems/notemark"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateNamesUntitledNotes(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	first, err := s.Create(ctx, "", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := s.Create(ctx, "  ", "x")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Title != "Note 1" || second.Title != "Note 2" {
		t.Fatalf("unexpected titles %q %q", first.Title, second.Title)
	}
	if second.ID <= first.ID {
		t.Fatalf("ids not increasing: %d then %d", first.ID, second.ID)
	}
}

func TestGetUpdateRenameDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	created := time.Unix(1700000000, 0)
	s.now = func() time.Time { return created }

	n, err := s.Create(ctx, "Ideas", "plain")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	edited := created.Add(time.Minute)
	s.now = func() time.Time { return edited }
	if err := s.UpdateContent(ctx, n.ID, "Hello $(world, font-bold)"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.Rename(ctx, n.ID, "Greetings"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	got, err := s.Get(ctx, n.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Greetings" || got.Content != "Hello $(world, font-bold)" {
		t.Fatalf("unexpected note %+v", got)
	}
	if !got.CreatedAt.Equal(created) || !got.UpdatedAt.Equal(edited) {
		t.Fatalf("unexpected timestamps created=%v updated=%v", got.CreatedAt, got.UpdatedAt)
	}
	segs := got.Segments()
	if len(segs) != 2 || segs[1].Kind != notemark.SegmentStyled || segs[1].Text != "world" {
		t.Fatalf("unexpected segments %+v", segs)
	}

	if err := s.Delete(ctx, n.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, n.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMissingNotesReportNotFound(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	if err := s.UpdateContent(ctx, 42, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := s.Rename(ctx, 42, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("rename: expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
	if err := s.Rename(ctx, 42, " "); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("rename with empty title should fail before lookup, got %v", err)
	}
}

func TestListOrdersByID(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	for _, title := range []string{"c", "a", "b"} {
		if _, err := s.Create(ctx, title, ""); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}
	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].Title != "c" || list[1].Title != "a" || list[2].Title != "b" {
		t.Fatalf("unexpected order %+v", list)
	}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	if _, err := s.Create(ctx, "one", "Shopping $(milk, font-bold) and eggs"); err != nil {
		t.Fatalf("create: %v", err)
	}
	two, err := s.Create(ctx, "two", "Meeting notes")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := s.Search(ctx, "milk")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].Title != "one" {
		t.Fatalf("unexpected search result %+v", found)
	}

	found, err = s.Search(ctx, "gg")
	if err != nil {
		t.Fatalf("short search: %v", err)
	}
	if len(found) != 1 || found[0].Title != "one" {
		t.Fatalf("unexpected short search result %+v", found)
	}

	if err := s.UpdateContent(ctx, two.ID, "Buy more milk"); err != nil {
		t.Fatalf("update: %v", err)
	}
	found, err = s.Search(ctx, "milk")
	if err != nil {
		t.Fatalf("search after update: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected index to follow updates, got %+v", found)
	}

	if found, err := s.Search(ctx, "  "); err != nil || found != nil {
		t.Fatalf("blank query should return nothing, got %+v %v", found, err)
	}
}

func TestSearchFoldsCaseForShortAndLongQueries(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	if _, err := s.Create(ctx, "caps", "MILK and EGGS"); err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, q := range []string{"milk", "MILK", "gs", "GS", "Gs"} {
		found, err := s.Search(ctx, q)
		if err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
		if len(found) != 1 {
			t.Fatalf("search %q: want 1 result, got %d", q, len(found))
		}
	}
}

func TestSearchShortQueryTreatsWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	if _, err := s.Create(ctx, "pct", "50% off"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create(ctx, "plain", "nothing here"); err != nil {
		t.Fatalf("create: %v", err)
	}
	for q, want := range map[string]int{"%": 1, "_": 0, `\`: 0, "0%": 1} {
		found, err := s.Search(ctx, q)
		if err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
		if len(found) != want {
			t.Fatalf("search %q: want %d results, got %d", q, want, len(found))
		}
	}
}

func TestSeedDemoOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	created, err := s.SeedDemo(ctx)
	if err != nil || !created {
		t.Fatalf("expected demo note, created=%v err=%v", created, err)
	}
	created, err = s.SeedDemo(ctx)
	if err != nil || created {
		t.Fatalf("expected no second demo note, created=%v err=%v", created, err)
	}
	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Title != DemoTitle || list[0].Content != DemoContent {
		t.Fatalf("unexpected notes %+v", list)
	}
}

func TestOpenFilePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "notes.db")
	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	n, err := s.Create(ctx, "kept", "$(x, y)")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Get(ctx, n.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "kept" || got.Content != "$(x, y)" {
		t.Fatalf("unexpected note after reopen %+v", got)
	}
}
