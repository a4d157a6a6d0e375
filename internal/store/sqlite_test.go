package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ashureev/matter/internal/domain"
)

func newTestStore(t *testing.T) Repository {
	t.Helper()
	repo, err := NewSQLite(filepath.Join(t.TempDir(), "data", "matter.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestUserRoundTrip(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	got, err := repo.GetUser(ctx, "anon_missing")
	if err != nil || got != nil {
		t.Fatalf("expected nil user, got %v / %v", got, err)
	}

	now := time.Unix(1700000000, 0)
	if err := repo.UpsertUser(ctx, &domain.User{
		UserID: "anon_1", Username: "anon-1", LastSeenAt: now, CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("UpsertUser: %v", err)
	}

	later := now.Add(time.Hour)
	if err := repo.UpdateLastSeen(ctx, "anon_1", later); err != nil {
		t.Fatalf("UpdateLastSeen: %v", err)
	}

	got, err = repo.GetUser(ctx, "anon_1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Username != "anon-1" || !got.LastSeenAt.Equal(later) {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestStateRoundTrip(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	state, err := LoadState(ctx, repo, "anon_1", "2024-01-15")
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if state.CurrentLandscapeID != "meadow" || len(state.Goals) != 0 {
		t.Fatalf("expected default document, got %+v", state)
	}

	state.Streak = 4
	state.LastActiveDate = "2024-01-15"
	state.Goals = append(state.Goals, domain.Goal{ID: "g1", Text: "walk", Category: domain.CategoryHealth, Date: "2024-01-15"})
	if err := SaveState(ctx, repo, "anon_1", state); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	state.Streak = 5
	if err := SaveState(ctx, repo, "anon_1", state); err != nil {
		t.Fatalf("SaveState overwrite: %v", err)
	}

	loaded, err := LoadState(ctx, repo, "anon_1", "2024-01-16")
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if loaded.Streak != 5 || len(loaded.Goals) != 1 || loaded.Goals[0].Text != "walk" {
		t.Fatalf("unexpected loaded document: %+v", loaded)
	}

	other, err := LoadState(ctx, repo, "anon_2", "2024-01-16")
	if err != nil {
		t.Fatalf("LoadState other user: %v", err)
	}
	if other.Streak != 0 {
		t.Fatalf("documents leaked between users: %+v", other)
	}
}

func TestLoadStateCorruptFallsBackToDefault(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	if err := repo.PutDocument(ctx, "anon_1", DocumentKey, []byte("{not json")); err != nil {
		t.Fatalf("PutDocument: %v", err)
	}
	state, err := LoadState(ctx, repo, "anon_1", "2024-01-15")
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if state.Streak != 0 || len(state.UnlockedLandscapes) != 1 {
		t.Fatalf("expected default document, got %+v", state)
	}
}

func TestSchemaFailureClosesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clash.db")
	seed, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open seed: %v", err)
	}
	if _, err := seed.Exec(`CREATE TABLE t (x TEXT); CREATE INDEX documents ON t (x);`); err != nil {
		t.Fatalf("seed schema: %v", err)
	}
	_ = seed.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := newSQLiteStore(db); err == nil {
		t.Fatal("expected schema error for name clash")
	}
	if err := db.Ping(); err == nil || !strings.Contains(err.Error(), "database is closed") {
		t.Fatalf("expected closed database, got %v", err)
	}

	if _, err := NewSQLite(path); err == nil {
		t.Fatal("expected NewSQLite to fail on the same file")
	}
}
