package progress

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashureev/matter/internal/domain"
)

const today = "2024-01-15"

func addN(t *testing.T, s domain.AppState, n int) domain.AppState {
	t.Helper()
	for i := 0; i < n; i++ {
		var res AddResult
		s, res = AddIntention(s, AddInput{
			ID:       fmt.Sprintf("g%d", i),
			Text:     fmt.Sprintf("intention %d", i),
			Category: domain.CategoryHealth,
			Today:    today,
		})
		require.True(t, res.Accepted, "add %d rejected: %s", i, res.Reason)
	}
	return s
}

func TestAddIntentionFourthIsRejected(t *testing.T) {
	s := addN(t, domain.DefaultState(), 3)

	next, res := AddIntention(s, AddInput{ID: "g4", Text: "one more", Category: domain.CategoryFocus, Today: today})

	assert.False(t, res.Accepted)
	assert.Equal(t, ReasonDayFull, res.Reason)
	assert.Len(t, next.Goals, 3)
	if diff := cmp.Diff(s, next); diff != "" {
		t.Fatalf("rejected add changed state:\n%s", diff)
	}
}

func TestAddIntentionEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		s := domain.DefaultState()
		next, res := AddIntention(s, AddInput{ID: "x", Text: text, Category: domain.CategoryFocus, Today: today})
		assert.False(t, res.Accepted)
		assert.Equal(t, ReasonEmptyText, res.Reason)
		assert.Empty(t, next.Goals)
	}
}

func TestAddIntentionInvalidCategory(t *testing.T) {
	_, res := AddIntention(domain.DefaultState(), AddInput{ID: "x", Text: "walk", Category: "Leisure", Today: today})
	assert.Equal(t, ReasonInvalidCategory, res.Reason)
}

func TestAddIntentionTrimsAndDates(t *testing.T) {
	next, res := AddIntention(domain.DefaultState(), AddInput{ID: "abc", Text: "  call mom  ", Category: domain.CategoryConnection, Today: today})

	require.True(t, res.Accepted)
	want := domain.Goal{ID: "abc", Text: "call mom", Category: domain.CategoryConnection, Date: today}
	if diff := cmp.Diff(want, next.Goals[0]); diff != "" {
		t.Fatalf("unexpected goal (-want +got):\n%s", diff)
	}
}

func TestDailyLimitIsPerDate(t *testing.T) {
	s := addN(t, domain.DefaultState(), 3)

	next, res := AddIntention(s, AddInput{ID: "tomorrow", Text: "rest", Category: domain.CategoryHealth, Today: "2024-01-16"})
	assert.True(t, res.Accepted)
	assert.Len(t, TodaysIntentions(next, "2024-01-16"), 1)
	assert.Equal(t, 0, RemainingSlots(next, today))
	assert.Equal(t, 2, RemainingSlots(next, "2024-01-16"))
}
