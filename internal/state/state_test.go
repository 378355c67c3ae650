package state

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *Manager {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to set pragma: %v", err)
	}

	if err := initSchema(db); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}

	return &Manager{db: db}
}

func TestGetVolume_DefaultsToFull(t *testing.T) {
	m := setupTestDB(t)

	v, err := m.GetVolume()
	if err != nil {
		t.Fatalf("GetVolume failed: %v", err)
	}
	if v != 1.0 {
		t.Errorf("default volume = %v, want 1.0", v)
	}
}

func TestSaveVolume_RoundTrip(t *testing.T) {
	m := setupTestDB(t)

	if err := saveVolume(m.db, 0.35); err != nil {
		t.Fatalf("saveVolume failed: %v", err)
	}

	v, err := m.GetVolume()
	if err != nil {
		t.Fatalf("GetVolume failed: %v", err)
	}
	if v != 0.35 {
		t.Errorf("volume = %v, want 0.35", v)
	}

	// Overwrite keeps a single row.
	if err := saveVolume(m.db, 0.8); err != nil {
		t.Fatalf("saveVolume failed: %v", err)
	}
	v, _ = m.GetVolume()
	if v != 0.8 {
		t.Errorf("volume = %v, want 0.8", v)
	}
}

func TestBookmark_Toggle(t *testing.T) {
	m := setupTestDB(t)
	ctx := context.Background()
	origin := "https://example.com/2023/06/Above-All.mp3"

	on, err := m.Bookmark(ctx, origin, "")
	if err != nil {
		t.Fatalf("Bookmark failed: %v", err)
	}
	if !on {
		t.Error("first toggle should bookmark")
	}

	got, err := m.IsBookmarked(ctx, origin)
	if err != nil {
		t.Fatalf("IsBookmarked failed: %v", err)
	}
	if !got {
		t.Error("origin should be bookmarked")
	}

	off, err := m.Bookmark(ctx, origin, "")
	if err != nil {
		t.Fatalf("Bookmark failed: %v", err)
	}
	if off {
		t.Error("second toggle should remove the bookmark")
	}

	got, _ = m.IsBookmarked(ctx, origin)
	if got {
		t.Error("origin should no longer be bookmarked")
	}
}

func TestBookmark_CustomNamePersisted(t *testing.T) {
	m := setupTestDB(t)
	ctx := context.Background()

	if _, err := m.Bookmark(ctx, "https://example.com/a.mp3", "Driftwood (Theme)"); err != nil {
		t.Fatalf("Bookmark failed: %v", err)
	}
	if _, err := m.Bookmark(ctx, "https://example.com/b.mp3", ""); err != nil {
		t.Fatalf("Bookmark failed: %v", err)
	}

	entries, err := m.Bookmarks(ctx)
	if err != nil {
		t.Fatalf("Bookmarks failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Origin != "https://example.com/b.mp3" {
		t.Errorf("entries[0].Origin = %q", entries[0].Origin)
	}
	if entries[0].DisplayName != "" {
		t.Errorf("entries[0].DisplayName = %q, want empty", entries[0].DisplayName)
	}
	if entries[1].DisplayName != "Driftwood (Theme)" {
		t.Errorf("entries[1].DisplayName = %q", entries[1].DisplayName)
	}
}
