package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ashureev/matter/internal/domain"
)

const legacyDocument = `{
  "goals": [
    {"id": "1", "text": "stretch", "category": "Calmness", "completed": true, "reflection": "loose", "completedAt": "2024-01-10T08:30:00.000Z"},
    {"id": "2", "text": "read", "category": "Leisure", "completed": false, "date": "2024-01-09"},
    {"id": "3", "text": "focus block", "category": "Focus", "completed": false, "date": "2024-01-10"}
  ],
  "streak": 3,
  "lastActiveDate": "2024-01-10",
  "unlockedLandscapes": ["meadow", "mountains"],
  "currentLandscapeId": "mountains",
  "inventory": [{"id": "1704870000000", "name": "Glow mushroom", "icon": "🍄", "acquiredAt": "2024-01-10T08:31:00.000Z"}],
  "giftsReceivedThisMonth": 1,
  "lastGiftMonth": "2024-01"
}`

func TestDecodeStateMigratesLegacyDocument(t *testing.T) {
	state, err := DecodeState([]byte(legacyDocument), "2024-01-15")
	if err != nil {
		t.Fatalf("DecodeState: %v", err)
	}

	type row struct {
		ID       string
		Category domain.Category
		Date     string
	}
	var got []row
	for _, g := range state.Goals {
		got = append(got, row{g.ID, g.Category, g.Date})
	}
	want := []row{
		{"1", domain.CategoryHealth, "2024-01-10"},
		{"2", domain.CategoryHealth, "2024-01-09"},
		{"3", domain.CategoryFocus, "2024-01-10"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("migrated goals mismatch (-want +got):\n%s", diff)
	}
	if state.CurrentLandscapeID != "mountains" || state.GiftsReceivedThisMonth != 1 {
		t.Fatalf("unexpected document: %+v", state)
	}
	if state.Goals[0].CompletedAt == nil {
		t.Fatal("completedAt was dropped")
	}
	if len(state.Inventory) != 1 || state.Inventory[0].Name != "Glow mushroom" {
		t.Fatalf("unexpected inventory: %+v", state.Inventory)
	}
}

func TestDecodeStateBackfillsFromToday(t *testing.T) {
	state, err := DecodeState([]byte(`{"goals":[{"id":"a","text":"x","category":"Focus","completed":false}]}`), "2024-01-15")
	if err != nil {
		t.Fatalf("DecodeState: %v", err)
	}
	if state.Goals[0].Date != "2024-01-15" {
		t.Fatalf("expected backfill from today, got %q", state.Goals[0].Date)
	}
	if state.CurrentLandscapeID != "meadow" || len(state.UnlockedLandscapes) != 1 {
		t.Fatalf("expected default landscapes, got %+v", state)
	}
}

func TestDecodeStateRepairsLandscapeInvariants(t *testing.T) {
	state, err := DecodeState([]byte(`{"goals":null,"unlockedLandscapes":["mountains"],"currentLandscapeId":"sea"}`), "2024-01-15")
	if err != nil {
		t.Fatalf("DecodeState: %v", err)
	}
	if diff := cmp.Diff([]string{"meadow", "mountains"}, state.UnlockedLandscapes); diff != "" {
		t.Fatalf("unlocked mismatch:\n%s", diff)
	}
	if state.CurrentLandscapeID != "meadow" {
		t.Fatalf("expected current landscape reset to meadow, got %q", state.CurrentLandscapeID)
	}
	if state.Goals == nil || state.Inventory == nil {
		t.Fatal("expected empty slices, got nil")
	}
}

func TestDecodeStateRejectsCorrupt(t *testing.T) {
	for _, raw := range []string{"", "{", "[]", `{"streak":"many"}`} {
		if _, err := DecodeState([]byte(raw), "2024-01-15"); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}
