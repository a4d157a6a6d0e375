package progress

import (
	"time"

	"github.com/ashureev/matter/internal/domain"
)

// GiftChance is the independent probability of a gift per completion.
const GiftChance = 0.35

// RandSource is the randomness the gift draw needs. *rand.Rand from math/rand/v2
// satisfies it.
type RandSource interface {
	Float64() float64
	IntN(n int) int
}

// CompleteInput carries everything a completion needs besides the document.
type CompleteInput struct {
	GoalID     string
	Reflection string
	Response   string
	Now        time.Time
	Month      string // YYYY-MM of Now in the user's zone
	GiftID     string // id used if a gift is drawn
}

// CompleteResult describes a CompleteIntention call.
type CompleteResult struct {
	Accepted bool         `json:"accepted"`
	Reason   Reason       `json:"reason,omitempty"`
	Goal     *domain.Goal `json:"goal,omitempty"`
	Gift     *domain.Gift `json:"gift,omitempty"`
}

// CheckCompletable reports whether goalID names an open intention.
func CheckCompletable(state domain.AppState, goalID string) (domain.Goal, Reason) {
	i := state.FindGoal(goalID)
	if i < 0 {
		return domain.Goal{}, ReasonNotFound
	}
	if state.Goals[i].Completed {
		return state.Goals[i], ReasonAlreadyCompleted
	}
	return state.Goals[i], ReasonNone
}

// CompleteIntention marks the goal completed, rolls the monthly gift counter and
// runs the gift draw.
func CompleteIntention(state domain.AppState, in CompleteInput, rng RandSource) (domain.AppState, CompleteResult) {
	if _, reason := CheckCompletable(state, in.GoalID); reason != ReasonNone {
		return state, CompleteResult{Reason: reason}
	}

	next := state.Clone()
	i := next.FindGoal(in.GoalID)
	completedAt := in.Now
	next.Goals[i].Completed = true
	next.Goals[i].Reflection = in.Reflection
	next.Goals[i].ReflectionResponse = in.Response
	next.Goals[i].CompletedAt = &completedAt

	if next.LastGiftMonth != in.Month {
		next.GiftsReceivedThisMonth = 0
		next.LastGiftMonth = in.Month
	}

	res := CompleteResult{Accepted: true}
	goal := next.Goals[i]
	res.Goal = &goal

	if tmpl, ok := DrawGift(rng); ok {
		gift := domain.Gift{
			ID:         in.GiftID,
			Name:       tmpl.Name,
			Icon:       tmpl.Icon,
			AcquiredAt: in.Now,
		}
		next.Inventory = append(next.Inventory, gift)
		next.GiftsReceivedThisMonth++
		res.Gift = &gift
	}

	return next, res
}

// DrawGift decides whether a gift drops and picks its template.
func DrawGift(rng RandSource) (domain.GiftTemplate, bool) {
	if rng == nil || len(domain.GiftCatalog) == 0 {
		return domain.GiftTemplate{}, false
	}
	if rng.Float64() >= GiftChance {
		return domain.GiftTemplate{}, false
	}
	return domain.GiftCatalog[rng.IntN(len(domain.GiftCatalog))], true
}
