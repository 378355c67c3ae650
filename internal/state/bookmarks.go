package state

import (
	"context"
	"database/sql"
	"time"

	"github.com/driftfm/drift/internal/db"
)

// BookmarkEntry is a persisted bookmark.
type BookmarkEntry struct {
	Origin      string
	DisplayName string // empty unless the track had a custom name
	CreatedAt   time.Time
}

// Bookmark toggles the bookmark for an origin and returns the new state:
// true when the origin is now bookmarked.
func (m *Manager) Bookmark(ctx context.Context, origin, displayName string) (bool, error) {
	var bookmarked bool
	err := db.WithTx(m.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM bookmarks WHERE origin = ?`, origin)
		if err != nil {
			return err
		}
		deleted, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if deleted > 0 {
			bookmarked = false
			return nil
		}

		var name any
		if displayName != "" {
			name = displayName
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO bookmarks (origin, display_name, created_at)
			VALUES (?, ?, ?)
		`, origin, name, time.Now().Unix())
		if err != nil {
			return err
		}
		bookmarked = true
		return nil
	})
	return bookmarked, err
}

// IsBookmarked reports whether an origin is currently bookmarked.
func (m *Manager) IsBookmarked(ctx context.Context, origin string) (bool, error) {
	var n int
	err := m.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookmarks WHERE origin = ?`, origin).Scan(&n)
	return n > 0, err
}

// Bookmarks lists all bookmarks, newest first.
func (m *Manager) Bookmarks(ctx context.Context) ([]BookmarkEntry, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT origin, display_name, created_at
		FROM bookmarks
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []BookmarkEntry
	for rows.Next() {
		var e BookmarkEntry
		var name sql.NullString
		var created int64
		if err := rows.Scan(&e.Origin, &name, &created); err != nil {
			return nil, err
		}
		e.DisplayName = db.NullStringValue(name)
		e.CreatedAt = time.Unix(created, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
