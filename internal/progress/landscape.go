package progress

import "github.com/ashureev/matter/internal/domain"

// SelectResult describes a SelectLandscape call.
type SelectResult struct {
	Accepted bool   `json:"accepted"`
	Reason   Reason `json:"reason,omitempty"`
}

// SelectLandscape switches the displayed landscape to an unlocked one.
func SelectLandscape(state domain.AppState, id string) (domain.AppState, SelectResult) {
	if !state.IsUnlocked(id) {
		return state, SelectResult{Reason: ReasonLocked}
	}
	next := state.Clone()
	next.CurrentLandscapeID = id
	return next, SelectResult{Accepted: true}
}
