package progress

import (
	"strings"

	"github.com/ashureev/matter/internal/domain"
)

// MaxDailyIntentions caps how many intentions share one date.
const MaxDailyIntentions = 3

// Reason explains why a mutating operation left the document unchanged.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonEmptyText        Reason = "empty_text"
	ReasonDayFull          Reason = "day_full"
	ReasonInvalidCategory  Reason = "invalid_category"
	ReasonNotFound         Reason = "not_found"
	ReasonAlreadyCompleted Reason = "already_completed"
	ReasonLocked           Reason = "locked"
)

// Message returns a human readable sentence for the reason.
func (r Reason) Message() string {
	switch r {
	case ReasonEmptyText:
		return "intention text is empty"
	case ReasonDayFull:
		return "today already holds three intentions"
	case ReasonInvalidCategory:
		return "unknown category"
	case ReasonNotFound:
		return "intention not found"
	case ReasonAlreadyCompleted:
		return "intention is already completed"
	case ReasonLocked:
		return "landscape is still locked"
	default:
		return ""
	}
}

// AddInput is a request to create an intention for Today.
type AddInput struct {
	ID       string
	Text     string
	Category domain.Category
	Today    string
}

// AddResult describes an AddIntention call.
type AddResult struct {
	Accepted bool         `json:"accepted"`
	Reason   Reason       `json:"reason,omitempty"`
	Goal     *domain.Goal `json:"goal,omitempty"`
}

// TodaysIntentions returns the goals dated today, in creation order.
func TodaysIntentions(state domain.AppState, today string) []domain.Goal {
	out := []domain.Goal{}
	for _, g := range state.Goals {
		if g.Date == today {
			out = append(out, g)
		}
	}
	return out
}

// RemainingSlots is how many more intentions fit into today.
func RemainingSlots(state domain.AppState, today string) int {
	n := MaxDailyIntentions - len(TodaysIntentions(state, today))
	if n < 0 {
		return 0
	}
	return n
}

// AddIntention appends a new open intention dated in.Today.
func AddIntention(state domain.AppState, in AddInput) (domain.AppState, AddResult) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return state, AddResult{Reason: ReasonEmptyText}
	}
	if !in.Category.IsValid() {
		return state, AddResult{Reason: ReasonInvalidCategory}
	}
	if RemainingSlots(state, in.Today) == 0 {
		return state, AddResult{Reason: ReasonDayFull}
	}

	goal := domain.Goal{
		ID:       in.ID,
		Text:     text,
		Category: in.Category,
		Date:     in.Today,
	}
	next := state.Clone()
	next.Goals = append(next.Goals, goal)
	return next, AddResult{Accepted: true, Goal: &goal}
}
