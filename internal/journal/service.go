// Package journal runs the progression engine against a user's stored
// document: it loads, reduces, saves and announces what changed.
package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ashureev/matter/internal/domain"
	"github.com/ashureev/matter/internal/notify"
	"github.com/ashureev/matter/internal/progress"
	"github.com/ashureev/matter/internal/responder"
	"github.com/ashureev/matter/internal/store"
)

var (
	// ErrCompletionInProgress is returned when the same intention is already
	// being completed by another request.
	ErrCompletionInProgress = errors.New("completion already in progress")
	// ErrStorageUnavailable is returned when the document could not be read, so
	// a mutation would risk overwriting it.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrInvalidInput wraps malformed caller input.
	ErrInvalidInput = errors.New("invalid input")
)

// Responder produces the reflection sentence for a completion.
type Responder interface {
	Respond(ctx context.Context, req responder.Request) string
}

// Publisher delivers events to a user's connected sessions.
type Publisher interface {
	Publish(userID string, ev notify.Event)
	PublishAfter(delay time.Duration, userID string, ev notify.Event)
}

// Options tunes a Service. Zero values pick production defaults.
type Options struct {
	Now             func() time.Time
	Rand            progress.RandSource
	NewID           func() string
	GiftNoticeDelay time.Duration
	Logger          *slog.Logger
}

// Service is safe for concurrent use.
type Service struct {
	repo      store.Repository
	responder Responder
	events    Publisher

	now       func() time.Time
	rng       progress.RandSource
	newID     func() string
	giftDelay time.Duration
	logger    *slog.Logger

	userLocks  sync.Map // userID -> *sync.Mutex
	completing sync.Map // userID/goalID -> *sync.Mutex
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// NewService wires a service. events may be nil.
func NewService(repo store.Repository, resp Responder, events Publisher, opts Options) *Service {
	s := &Service{
		repo:      repo,
		responder: resp,
		events:    events,
		now:       opts.Now,
		rng:       opts.Rand,
		newID:     opts.NewID,
		giftDelay: opts.GiftNoticeDelay,
		logger:    opts.Logger,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.rng == nil {
		s.rng = globalRand{}
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Snapshot is the document plus the views derived from it for one day.
type Snapshot struct {
	Today            string           `json:"today"`
	State            domain.AppState  `json:"state"`
	TodaysIntentions []domain.Goal    `json:"todays_intentions"`
	RemainingSlots   int              `json:"remaining_slots"`
	CurrentLandscape domain.Landscape `json:"current_landscape"`
}

// SessionResult is the outcome of a session start.
type SessionResult struct {
	Snapshot
	Rollover progress.RolloverResult `json:"rollover"`
}

func (s *Service) lockUser(userID string) func() {
	v, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Now returns the service clock's current time in loc.
func (s *Service) Now(loc *time.Location) time.Time {
	return s.now().In(loc)
}

func (s *Service) today(loc *time.Location) string {
	return progress.DateKey(s.now(), loc)
}

func (s *Service) snapshot(state domain.AppState, today string) Snapshot {
	current, ok := domain.LandscapeByID(state.CurrentLandscapeID)
	if !ok {
		current, _ = domain.LandscapeByID(domain.DefaultLandscapeID)
	}
	return Snapshot{
		Today:            today,
		State:            state,
		TodaysIntentions: progress.TodaysIntentions(state, today),
		RemainingSlots:   progress.RemainingSlots(state, today),
		CurrentLandscape: current,
	}
}

// load reads the document for a mutation. I/O failures become
// ErrStorageUnavailable.
func (s *Service) load(ctx context.Context, userID, today string) (domain.AppState, error) {
	state, err := store.LoadState(ctx, s.repo, userID, today)
	if err != nil {
		s.logger.Error("Failed to read state", "user_id", userID, "error", err)
		return state, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return state, nil
}

// save persists the document. Failures are logged and the in-memory result
// still stands.
func (s *Service) save(ctx context.Context, userID string, state domain.AppState) {
	if err := store.SaveState(ctx, s.repo, userID, state); err != nil {
		s.logger.Error("Failed to save state", "user_id", userID, "error", err)
	}
}

func (s *Service) publish(userID string, ev notify.Event) {
	if s.events != nil {
		s.events.Publish(userID, ev)
	}
}

// State returns the current document. Read failures fall back to defaults.
func (s *Service) State(ctx context.Context, userID string, loc *time.Location) Snapshot {
	today := s.today(loc)
	state, err := store.LoadState(ctx, s.repo, userID, today)
	if err != nil {
		s.logger.Warn("Serving default state after read failure", "user_id", userID, "error", err)
	}
	return s.snapshot(state, today)
}

// StartSession applies the once-per-session day rollover.
func (s *Service) StartSession(ctx context.Context, userID string, loc *time.Location) (SessionResult, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	today := s.today(loc)
	state, err := s.load(ctx, userID, today)
	if err != nil {
		return SessionResult{}, err
	}

	next, res := progress.Rollover(state, today)
	if res.Changed {
		s.save(ctx, userID, next)
		s.logger.Info("Day rollover applied",
			"user_id", userID,
			"transition", res.Transition,
			"streak", res.Streak,
			"diff_days", res.DiffDays)
	}
	if res.Unlocked != nil {
		s.publish(userID, notify.Event{
			Type:    notify.EventLandscapeUnlocked,
			Title:   "New Landscape Discovered",
			Message: fmt.Sprintf("You've unlocked %s!", res.Unlocked.Name),
			Data:    res.Unlocked,
		})
	}

	return SessionResult{Snapshot: s.snapshot(next, today), Rollover: res}, nil
}

// AddIntention creates a new intention for today.
func (s *Service) AddIntention(ctx context.Context, userID, text, category string, loc *time.Location) (progress.AddResult, error) {
	cat, err := domain.ParseCategory(category)
	if err != nil {
		cat = domain.Category(strings.TrimSpace(category))
	}

	unlock := s.lockUser(userID)
	defer unlock()

	today := s.today(loc)
	state, err := s.load(ctx, userID, today)
	if err != nil {
		return progress.AddResult{}, err
	}

	next, res := progress.AddIntention(state, progress.AddInput{
		ID:       s.newID(),
		Text:     text,
		Category: cat,
		Today:    today,
	})
	if res.Accepted {
		s.save(ctx, userID, next)
	}
	return res, nil
}

func (s *Service) acquireCompletion(userID, goalID string) (func(), bool) {
	key := userID + "/" + goalID
	v, _ := s.completing.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	if !mu.TryLock() {
		return nil, false
	}
	return func() {
		s.completing.Delete(key)
		mu.Unlock()
	}, true
}

// CompleteIntention records the reflection, asks the responder for its
// sentence and runs the gift draw. The responder is called without holding the
// user's lock.
func (s *Service) CompleteIntention(ctx context.Context, userID, goalID, reflection string, loc *time.Location) (progress.CompleteResult, error) {
	release, ok := s.acquireCompletion(userID, goalID)
	if !ok {
		return progress.CompleteResult{}, ErrCompletionInProgress
	}
	defer release()

	unlock := s.lockUser(userID)
	state, err := s.load(ctx, userID, s.today(loc))
	unlock()
	if err != nil {
		return progress.CompleteResult{}, err
	}

	goal, reason := progress.CheckCompletable(state, goalID)
	if reason != progress.ReasonNone {
		return progress.CompleteResult{Reason: reason}, nil
	}

	response := s.responder.Respond(ctx, responder.Request{
		GoalText:   goal.Text,
		Category:   goal.Category,
		Reflection: reflection,
	})

	unlock = s.lockUser(userID)
	now := s.now()
	state, err = s.load(ctx, userID, progress.DateKey(now, loc))
	if err != nil {
		unlock()
		return progress.CompleteResult{}, err
	}
	next, res := progress.CompleteIntention(state, progress.CompleteInput{
		GoalID:     goalID,
		Reflection: reflection,
		Response:   response,
		Now:        now,
		Month:      progress.MonthKey(now, loc),
		GiftID:     s.newID(),
	}, s.rng)
	if res.Accepted {
		s.save(ctx, userID, next)
	}
	unlock()

	if !res.Accepted {
		return res, nil
	}

	s.publish(userID, notify.Event{
		Type:    notify.EventIntentionCompleted,
		Title:   "Intention Fulfilled",
		Message: response,
		Data:    res.Goal,
	})
	if res.Gift != nil && s.events != nil {
		s.events.PublishAfter(s.giftDelay, userID, notify.Event{
			Type:    notify.EventGiftAcquired,
			Title:   "A Gift from the Forest",
			Message: fmt.Sprintf("You found a %s %s", res.Gift.Name, res.Gift.Icon),
			Data:    res.Gift,
		})
	}
	return res, nil
}

// SelectLandscape switches the displayed landscape.
func (s *Service) SelectLandscape(ctx context.Context, userID, landscapeID string, loc *time.Location) (progress.SelectResult, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	state, err := s.load(ctx, userID, s.today(loc))
	if err != nil {
		return progress.SelectResult{}, err
	}
	next, res := progress.SelectLandscape(state, landscapeID)
	if res.Accepted && next.CurrentLandscapeID != state.CurrentLandscapeID {
		s.save(ctx, userID, next)
	}
	return res, nil
}
