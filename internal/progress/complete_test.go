package progress

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashureev/matter/internal/domain"
)

type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(int) int     { return r.n }

var noGift = fixedRand{f: 0.99}

func completeInput(id string, now time.Time) CompleteInput {
	return CompleteInput{
		GoalID:     id,
		Reflection: "felt good",
		Response:   "The river remembers.",
		Now:        now,
		Month:      MonthKey(now, time.UTC),
		GiftID:     "gift-1",
	}
}

func TestCompleteIntentionMarksGoal(t *testing.T) {
	s := addN(t, domain.DefaultState(), 1)
	now := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)

	next, res := CompleteIntention(s, completeInput("g0", now), noGift)

	require.True(t, res.Accepted)
	g := next.Goals[0]
	assert.True(t, g.Completed)
	assert.Equal(t, "felt good", g.Reflection)
	assert.Equal(t, "The river remembers.", g.ReflectionResponse)
	require.NotNil(t, g.CompletedAt)
	assert.True(t, g.CompletedAt.Equal(now))
	assert.Equal(t, today, g.Date)
	assert.Nil(t, res.Gift)
	assert.False(t, s.Goals[0].Completed, "input must not be mutated")
}

func TestCompleteIntentionIsPermanent(t *testing.T) {
	s := addN(t, domain.DefaultState(), 1)
	now := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)
	s, _ = CompleteIntention(s, completeInput("g0", now), noGift)

	again, res := CompleteIntention(s, completeInput("g0", now.Add(time.Hour)), fixedRand{f: 0})

	assert.False(t, res.Accepted)
	assert.Equal(t, ReasonAlreadyCompleted, res.Reason)
	if diff := cmp.Diff(s, again); diff != "" {
		t.Fatalf("second completion changed state:\n%s", diff)
	}
}

func TestCompleteIntentionUnknownID(t *testing.T) {
	s := addN(t, domain.DefaultState(), 1)
	next, res := CompleteIntention(s, completeInput("missing", time.Now()), noGift)
	assert.Equal(t, ReasonNotFound, res.Reason)
	assert.Equal(t, s, next)
}

func TestGiftDraw(t *testing.T) {
	s := addN(t, domain.DefaultState(), 1)
	now := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)

	next, res := CompleteIntention(s, completeInput("g0", now), fixedRand{f: 0.1, n: 1})

	require.NotNil(t, res.Gift)
	assert.Equal(t, "Glow mushroom", res.Gift.Name)
	assert.Equal(t, "🍄", res.Gift.Icon)
	assert.Equal(t, "gift-1", res.Gift.ID)
	assert.Len(t, next.Inventory, 1)
	assert.Equal(t, 1, next.GiftsReceivedThisMonth)
	assert.Equal(t, "2024-01", next.LastGiftMonth)
}

func TestGiftDrawThreshold(t *testing.T) {
	_, ok := DrawGift(fixedRand{f: GiftChance})
	assert.False(t, ok, "draw at exactly the threshold must miss")
	_, ok = DrawGift(fixedRand{f: GiftChance - 0.0001})
	assert.True(t, ok)
	_, ok = DrawGift(nil)
	assert.False(t, ok)
}

func TestMonthlyCounterResetsBeforeDraw(t *testing.T) {
	s := addN(t, domain.DefaultState(), 2)
	s.GiftsReceivedThisMonth = 7
	s.LastGiftMonth = "2023-12"
	now := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)

	next, res := CompleteIntention(s, completeInput("g0", now), noGift)
	require.True(t, res.Accepted)
	assert.Equal(t, 0, next.GiftsReceivedThisMonth)
	assert.Equal(t, "2024-01", next.LastGiftMonth)

	in := completeInput("g1", now)
	in.GiftID = "gift-2"
	next, res = CompleteIntention(next, in, fixedRand{f: 0})
	require.NotNil(t, res.Gift)
	assert.Equal(t, 1, next.GiftsReceivedThisMonth)
}

func TestMonthlyCounterKeepsCountingWithinMonth(t *testing.T) {
	s := addN(t, domain.DefaultState(), 1)
	s.GiftsReceivedThisMonth = 2
	s.LastGiftMonth = "2024-01"
	now := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)

	next, _ := CompleteIntention(s, completeInput("g0", now), fixedRand{f: 0})
	assert.Equal(t, 3, next.GiftsReceivedThisMonth)
}

func TestSelectLandscape(t *testing.T) {
	s := domain.DefaultState()
	s.UnlockedLandscapes = append(s.UnlockedLandscapes, "mountains")

	next, res := SelectLandscape(s, "mountains")
	assert.True(t, res.Accepted)
	assert.Equal(t, "mountains", next.CurrentLandscapeID)

	next, res = SelectLandscape(next, "sea")
	assert.Equal(t, ReasonLocked, res.Reason)
	assert.Equal(t, "mountains", next.CurrentLandscapeID)
}
