package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ashureev/matter/internal/domain"
)

// retiredCategories were folded into Health.
var retiredCategories = map[domain.Category]bool{
	"Calmness": true,
	"Leisure":  true,
}

// DecodeState parses a stored document over the defaults and migrates it.
// today backfills goals that predate per-goal dates when the document has no
// last active date either.
func DecodeState(raw []byte, today string) (domain.AppState, error) {
	state := domain.DefaultState()
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.DefaultState(), fmt.Errorf("decode document: %w", err)
	}
	Migrate(&state, today)
	return state, nil
}

// EncodeState serializes the document for storage.
func EncodeState(state domain.AppState) ([]byte, error) {
	body, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return body, nil
}

// Migrate rewrites legacy data in place and restores document invariants.
func Migrate(state *domain.AppState, today string) {
	backfill := state.LastActiveDate
	if backfill == "" {
		backfill = today
	}

	if state.Goals == nil {
		state.Goals = []domain.Goal{}
	}
	for i := range state.Goals {
		g := &state.Goals[i]
		if g.Date == "" {
			g.Date = backfill
		}
		if retiredCategories[g.Category] {
			g.Category = domain.CategoryHealth
		}
	}

	if state.Inventory == nil {
		state.Inventory = []domain.Gift{}
	}
	if state.Streak < 0 {
		state.Streak = 0
	}
	if !state.IsUnlocked(domain.DefaultLandscapeID) {
		state.UnlockedLandscapes = append([]string{domain.DefaultLandscapeID}, state.UnlockedLandscapes...)
	}
	if !state.IsUnlocked(state.CurrentLandscapeID) {
		state.CurrentLandscapeID = state.UnlockedLandscapes[0]
	}
}

// LoadState reads the user's progression document. A missing or undecodable
// document yields the default document; only I/O failures are returned.
func LoadState(ctx context.Context, repo Repository, userID, today string) (domain.AppState, error) {
	raw, err := repo.GetDocument(ctx, userID, DocumentKey)
	if err != nil {
		return domain.DefaultState(), err
	}
	if raw == nil {
		return domain.DefaultState(), nil
	}
	state, err := DecodeState(raw, today)
	if err != nil {
		slog.Error("Failed to load state, using defaults", "user_id", userID, "error", err)
		return domain.DefaultState(), nil
	}
	return state, nil
}

// SaveState writes the whole document in one operation.
func SaveState(ctx context.Context, repo Repository, userID string, state domain.AppState) error {
	body, err := EncodeState(state)
	if err != nil {
		return err
	}
	return repo.PutDocument(ctx, userID, DocumentKey, body)
}
