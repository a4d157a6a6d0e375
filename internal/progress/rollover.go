package progress

import (
	"github.com/ashureev/matter/internal/domain"
)

// UnlockEvery is the streak interval that unlocks the next landscape.
const UnlockEvery = 3

// Transition names the streak state a rollover moved into.
type Transition string

const (
	TransitionNone      Transition = "none"      // same day, nothing to do
	TransitionFresh     Transition = "fresh"     // first ever use
	TransitionContinued Transition = "continued" // consecutive day
	TransitionBroken    Transition = "broken"    // gap of more than one day
)

// RolloverResult describes a Rollover call.
type RolloverResult struct {
	Changed    bool              `json:"changed"`
	Transition Transition        `json:"transition"`
	DiffDays   int               `json:"diff_days"`
	Streak     int               `json:"streak"`
	Unlocked   *domain.Landscape `json:"unlocked,omitempty"`
}

// Rollover applies the once-per-session day check. Calling it again with the
// same today is a no-op.
func Rollover(state domain.AppState, today string) (domain.AppState, RolloverResult) {
	if state.LastActiveDate == today {
		return state, RolloverResult{Transition: TransitionNone, Streak: state.Streak}
	}

	prev := state.LastActiveDate
	if prev == "" {
		prev = epochDate
	}
	diff, err := DayDiff(prev, today)
	fresh := state.LastActiveDate == "" || err != nil

	next := state.Clone()
	res := RolloverResult{Changed: true, DiffDays: diff}

	switch {
	case fresh:
		next.Streak = 1
		res.Transition = TransitionFresh
	case diff == 1:
		next.Streak++
		res.Transition = TransitionContinued
	default:
		next.Streak = 1
		res.Transition = TransitionBroken
	}

	if res.Transition == TransitionContinued && next.Streak > 0 && next.Streak%UnlockEvery == 0 {
		if l, ok := nextLockedLandscape(next); ok {
			next.UnlockedLandscapes = append(next.UnlockedLandscapes, l.ID)
			res.Unlocked = &l
		}
	}

	next.LastActiveDate = today
	res.Streak = next.Streak
	return next, res
}

func nextLockedLandscape(state domain.AppState) (domain.Landscape, bool) {
	for _, l := range domain.Landscapes {
		if !state.IsUnlocked(l.ID) {
			return l, true
		}
	}
	return domain.Landscape{}, false
}
