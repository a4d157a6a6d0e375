package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/ashureev/matter/internal/domain"
	"github.com/ashureev/matter/internal/progress"
	"github.com/ashureev/matter/internal/store"
)

// Scope selects the statistics window.
type Scope string

const (
	ScopeMonth Scope = "month"
	ScopeYear  Scope = "year"
)

// CalendarView is one month of completed intentions.
type CalendarView struct {
	Grid progress.MonthGrid       `json:"grid"`
	Days map[string][]domain.Goal `json:"days"`
}

// StatsView is the category distribution for a month or a year.
type StatsView struct {
	Scope        Scope                 `json:"scope"`
	Year         int                   `json:"year"`
	Month        int                   `json:"month,omitempty"`
	Distribution progress.Distribution `json:"distribution"`
	Arcs         []progress.Arc        `json:"arcs"`
}

// MaxYear is the last year a date key can hold.
const MaxYear = 9999

func checkYear(year int) error {
	if year < 1 || year > MaxYear {
		return fmt.Errorf("%w: year %d", ErrInvalidInput, year)
	}
	return nil
}

// Calendar returns completed intentions of year/month keyed by date.
func (s *Service) Calendar(ctx context.Context, userID string, year int, month time.Month, loc *time.Location) (CalendarView, error) {
	if err := checkYear(year); err != nil {
		return CalendarView{}, err
	}
	if month < time.January || month > time.December {
		return CalendarView{}, fmt.Errorf("%w: month %d", ErrInvalidInput, month)
	}
	snap := s.State(ctx, userID, loc)

	inMonth := progress.InMonth(year, month)
	days := map[string][]domain.Goal{}
	for date, goals := range progress.GroupCompletedByDate(snap.State.Goals) {
		if inMonth(date) {
			days[date] = goals
		}
	}
	return CalendarView{Grid: progress.NewMonthGrid(year, month), Days: days}, nil
}

// Stats tallies completed intentions by category for the given window.
func (s *Service) Stats(ctx context.Context, userID string, scope Scope, year int, month time.Month, loc *time.Location) (StatsView, error) {
	if err := checkYear(year); err != nil {
		return StatsView{}, err
	}
	var pred progress.DatePredicate
	view := StatsView{Scope: scope, Year: year}
	switch scope {
	case ScopeMonth:
		if month < time.January || month > time.December {
			return StatsView{}, fmt.Errorf("%w: month %d", ErrInvalidInput, month)
		}
		pred = progress.InMonth(year, month)
		view.Month = int(month)
	case ScopeYear:
		pred = progress.InYear(year)
	default:
		return StatsView{}, fmt.Errorf("%w: scope %q", ErrInvalidInput, scope)
	}

	snap := s.State(ctx, userID, loc)
	view.Distribution = progress.Tally(snap.State.Goals, pred)
	view.Arcs = progress.ArcSegments(view.Distribution, progress.ChartSweep)
	return view, nil
}

// Export returns the stored document in its persisted JSON form.
func (s *Service) Export(ctx context.Context, userID string, loc *time.Location) ([]byte, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	state, err := s.load(ctx, userID, s.today(loc))
	if err != nil {
		return nil, err
	}
	return store.EncodeState(state)
}

// Import replaces the document with raw after running it through the same
// migration a load does.
func (s *Service) Import(ctx context.Context, userID string, raw []byte, loc *time.Location) (Snapshot, error) {
	today := s.today(loc)
	state, err := store.DecodeState(raw, today)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	unlock := s.lockUser(userID)
	defer unlock()

	if err := store.SaveState(ctx, s.repo, userID, state); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	s.logger.Info("Document imported", "user_id", userID, "goals", len(state.Goals))
	return s.snapshot(state, today), nil
}
