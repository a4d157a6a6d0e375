package domain

import (
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	got, err := ParseCategory("  gratitude ")
	if err != nil {
		t.Fatalf("ParseCategory: %v", err)
	}
	if got != CategoryGratitude {
		t.Fatalf("got %q, want %q", got, CategoryGratitude)
	}
	if _, err := ParseCategory("Calmness"); err == nil {
		t.Fatal("expected retired label to be rejected")
	}
}

func TestDefaultStateInvariants(t *testing.T) {
	s := DefaultState()
	if len(s.UnlockedLandscapes) != 1 || s.UnlockedLandscapes[0] != "meadow" {
		t.Fatalf("unexpected unlocked landscapes: %v", s.UnlockedLandscapes)
	}
	if !s.IsUnlocked(s.CurrentLandscapeID) {
		t.Fatalf("current landscape %q is not unlocked", s.CurrentLandscapeID)
	}
	if s.Streak != 0 || s.LastActiveDate != "" {
		t.Fatalf("expected fresh streak, got %d/%q", s.Streak, s.LastActiveDate)
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	now := time.Now()
	s := DefaultState()
	s.Goals = append(s.Goals, Goal{ID: "a", CompletedAt: &now})

	c := s.Clone()
	c.Goals[0].Text = "changed"
	c.UnlockedLandscapes[0] = "sea"
	*c.Goals[0].CompletedAt = now.Add(time.Hour)

	if s.Goals[0].Text != "" {
		t.Fatal("goal text aliased")
	}
	if s.UnlockedLandscapes[0] != "meadow" {
		t.Fatal("landscapes aliased")
	}
	if !s.Goals[0].CompletedAt.Equal(now) {
		t.Fatal("completedAt aliased")
	}
}

func TestGiftCatalogSize(t *testing.T) {
	if len(GiftCatalog) != 50 {
		t.Fatalf("expected 50 gift templates, got %d", len(GiftCatalog))
	}
}
