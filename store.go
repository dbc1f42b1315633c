package blog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/copydataai/blog/posts"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("post not found")

const postColumns = `slug, title, description, author, pub_datetime, mod_datetime, tags, draft, featured, og_image, body, html`

// Store wraps a SQLite database holding the last synced content snapshot.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed during a sync; the busy timeout makes writers
	// wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    author TEXT NOT NULL,
    pub_datetime TEXT NOT NULL,
    mod_datetime TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL,
    draft INTEGER NOT NULL DEFAULT 0,
    featured INTEGER NOT NULL DEFAULT 0,
    og_image TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL,
    html TEXT NOT NULL
);
`)
	return err
}

// ReplaceAll swaps the stored snapshot for ps in a single transaction.
func (s *Store) ReplaceAll(ctx context.Context, ps []posts.Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, p := range ps {
		tags, err := encodeTags(p.Tags)
		if err != nil {
			return fmt.Errorf("encode tags of %s: %w", p.Slug, err)
		}
		if _, err := stmt.ExecContext(ctx,
			p.Slug, p.Title, p.Description, p.Author,
			formatTime(p.PubDatetime), formatTime(p.ModDatetime),
			tags, boolInt(p.Draft), boolInt(p.Featured),
			p.OGImage, p.Body, p.HTML,
		); err != nil {
			return fmt.Errorf("insert %s: %w", p.Slug, err)
		}
	}
	return tx.Commit()
}

// ListAllPosts returns every stored post, drafts included, in storage order.
// Visibility and ordering are left to posts.SortedPosts.
func (s *Store) ListAllPosts(ctx context.Context) ([]posts.Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+postColumns+` FROM posts ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []posts.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetPost returns a post by slug regardless of draft status.
func (s *Store) GetPost(ctx context.Context, slug string) (posts.Post, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return posts.Post{}, ErrNotFound
	}
	return p, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (posts.Post, error) {
	var (
		p           posts.Post
		pub, mod    string
		tags        string
		draft, feat int
	)
	if err := row.Scan(&p.Slug, &p.Title, &p.Description, &p.Author, &pub, &mod, &tags, &draft, &feat, &p.OGImage, &p.Body, &p.HTML); err != nil {
		return posts.Post{}, err
	}
	var err error
	if p.PubDatetime, err = parseTime(pub); err != nil {
		return posts.Post{}, fmt.Errorf("post %s: pub_datetime: %w", p.Slug, err)
	}
	if p.ModDatetime, err = parseTime(mod); err != nil {
		return posts.Post{}, fmt.Errorf("post %s: mod_datetime: %w", p.Slug, err)
	}
	if p.Tags, err = decodeTags(tags); err != nil {
		return posts.Post{}, fmt.Errorf("post %s: tags: %w", p.Slug, err)
	}
	p.Draft = draft == 1
	p.Featured = feat == 1
	return p, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// encodeTags stores tags as a JSON array so any tag text survives a round trip.
func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(tags)
	return string(b), err
}

func decodeTags(s string) ([]string, error) {
	var tags []string
	if s == "" {
		return nil, nil
	}
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return tags, nil
}
