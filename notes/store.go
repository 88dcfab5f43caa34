// Package notes stores markup notes in SQLite.
//
// A note is a titled buffer of notemark text. The store keeps notes ordered by id,
// names untitled notes "Note N" and offers substring search over note content through
// an FTS5 trigram index.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	_ "modernc.org/sqlite"

	"pkt.systems/notemark"
)

// ErrNotFound reports a note id with no matching note.
var ErrNotFound = errors.New("note not found")

const (
	// DemoTitle is the title of the note SeedDemo creates.
	DemoTitle = "Demo Note"
	// DemoContent is the body of the note SeedDemo creates.
	DemoContent = "Welcome! Try this syntax:\n$(Big Red Text, text-3xl text-red-600 font-bold)"
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    content TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,   -- UnixNano
    updated_at INTEGER NOT NULL    -- UnixNano
);

CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts5(
    content,
    content='notes',
    content_rowid='id',
    tokenize='trigram'
);

CREATE TRIGGER IF NOT EXISTS notes_ai AFTER INSERT ON notes BEGIN
    INSERT INTO notes_fts(rowid, content) VALUES (new.id, new.content);
END;

CREATE TRIGGER IF NOT EXISTS notes_au AFTER UPDATE OF content ON notes BEGIN
    INSERT INTO notes_fts(notes_fts, rowid, content) VALUES ('delete', old.id, old.content);
    INSERT INTO notes_fts(rowid, content) VALUES (new.id, new.content);
END;

CREATE TRIGGER IF NOT EXISTS notes_ad AFTER DELETE ON notes BEGIN
    INSERT INTO notes_fts(notes_fts, rowid, content) VALUES ('delete', old.id, old.content);
END;
`

// Note is a stored markup buffer.
type Note struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Segments parses the note content.
func (n Note) Segments() []notemark.Segment {
	return notemark.Parse(n.Content)
}

// Store is a SQLite-backed note store. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the store at path. Use ":memory:" for a private in-memory
// store.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("notes: create directory: %w", err)
			}
		}
		dsn = path +
			"?_pragma=journal_mode(WAL)" +
			"&_pragma=synchronous(NORMAL)" +
			"&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("notes: open: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("notes: connect: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("notes: create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create stores a new note. An empty title becomes "Note N" where N is one more than
// the current number of notes.
func (s *Store) Create(ctx context.Context, title, content string) (Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		n, err := s.Count(ctx)
		if err != nil {
			return Note{}, err
		}
		title = fmt.Sprintf("Note %d", n+1)
	}
	now := s.now()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO notes (title, content, created_at, updated_at) VALUES (?, ?, ?, ?)",
		title, content, now.UnixNano(), now.UnixNano())
	if err != nil {
		return Note{}, fmt.Errorf("notes: create: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Note{}, fmt.Errorf("notes: create: %w", err)
	}
	return Note{ID: id, Title: title, Content: content, CreatedAt: fromNano(now.UnixNano()), UpdatedAt: fromNano(now.UnixNano())}, nil
}

// Count returns the number of stored notes.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notes").Scan(&n); err != nil {
		return 0, fmt.Errorf("notes: count: %w", err)
	}
	return n, nil
}

// Get returns the note with id.
func (s *Store) Get(ctx context.Context, id int64) (Note, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, title, content, created_at, updated_at FROM notes WHERE id = ?", id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, fmt.Errorf("notes: get %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Note{}, fmt.Errorf("notes: get %d: %w", id, err)
	}
	return n, nil
}

// List returns all notes ordered by id.
func (s *Store) List(ctx context.Context) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, content, created_at, updated_at FROM notes ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("notes: list: %w", err)
	}
	return collect(rows, "list")
}

// Search returns notes whose content contains query, ordered by id, ignoring ASCII
// case. Queries shorter than three characters cannot use the trigram index and fall
// back to a LIKE scan.
func (s *Store) Search(ctx context.Context, query string) ([]Note, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	var (
		rows *sql.Rows
		err  error
	)
	if utf8.RuneCountInString(query) < 3 {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, title, content, created_at, updated_at FROM notes
			WHERE content LIKE '%' || ? || '%' ESCAPE '\' ORDER BY id`,
			escapeLike(query))
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT n.id, n.title, n.content, n.created_at, n.updated_at
			FROM notes_fts f JOIN notes n ON n.id = f.rowid
			WHERE notes_fts MATCH ?
			ORDER BY n.id`, quotePhrase(query))
	}
	if err != nil {
		return nil, fmt.Errorf("notes: search: %w", err)
	}
	return collect(rows, "search")
}

// UpdateContent replaces the content of note id.
func (s *Store) UpdateContent(ctx context.Context, id int64, content string) error {
	return s.update(ctx, id, "content", content)
}

// Rename replaces the title of note id.
func (s *Store) Rename(ctx context.Context, id int64, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("notes: rename %d: empty title", id)
	}
	return s.update(ctx, id, "title", title)
}

func (s *Store) update(ctx context.Context, id int64, column, value string) error {
	// column is one of a fixed set chosen by the callers above.
	res, err := s.db.ExecContext(ctx,
		"UPDATE notes SET "+column+" = ?, updated_at = ? WHERE id = ?",
		value, s.now().UnixNano(), id)
	if err != nil {
		return fmt.Errorf("notes: update %d: %w", id, err)
	}
	return expectOne(res, "update", id)
}

// Delete removes note id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("notes: delete %d: %w", id, err)
	}
	return expectOne(res, "delete", id)
}

// SeedDemo creates the demo note when the store is empty. It reports whether a note
// was created.
func (s *Store) SeedDemo(ctx context.Context) (bool, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if _, err := s.Create(ctx, DemoTitle, DemoContent); err != nil {
		return false, err
	}
	return true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(row scanner) (Note, error) {
	var (
		n                Note
		created, updated int64
	)
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &created, &updated); err != nil {
		return Note{}, err
	}
	n.CreatedAt = fromNano(created)
	n.UpdatedAt = fromNano(updated)
	return n, nil
}

func collect(rows *sql.Rows, op string) ([]Note, error) {
	defer rows.Close()
	var out []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("notes: %s: %w", op, err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("notes: %s: %w", op, err)
	}
	return out, nil
}

func expectOne(res sql.Result, op string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("notes: %s %d: %w", op, id, err)
	}
	if n == 0 {
		return fmt.Errorf("notes: %s %d: %w", op, id, ErrNotFound)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(q string) string {
	return likeEscaper.Replace(q)
}

func quotePhrase(q string) string {
	return `"` + strings.ReplaceAll(q, `"`, `""`) + `"`
}

func fromNano(ns int64) time.Time {
	return time.Unix(0, ns)
}
