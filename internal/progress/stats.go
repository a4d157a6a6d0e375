package progress

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ashureev/matter/internal/domain"
)

// ChartSweep is the half circle the category chart is drawn on.
const ChartSweep = 180.0

// DatePredicate selects goals by their date key.
type DatePredicate func(date string) bool

// InMonth matches dates in the given year and month.
func InMonth(year int, month time.Month) DatePredicate {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	return func(date string) bool {
		return len(date) == len(dateLayout) && strings.HasPrefix(date, prefix)
	}
}

// InYear matches dates in the given year.
func InYear(year int) DatePredicate {
	prefix := fmt.Sprintf("%04d-", year)
	return func(date string) bool {
		return len(date) == len(dateLayout) && strings.HasPrefix(date, prefix)
	}
}

// CategoryCount is one bar of the distribution.
type CategoryCount struct {
	Category domain.Category `json:"category"`
	Count    int             `json:"count"`
}

// Distribution is the per-category count of completed goals.
type Distribution struct {
	Data  []CategoryCount `json:"data"`
	Total int             `json:"total"`
}

// Tally counts completed goals per category for dates matching pred, sorted by
// descending count. Ties keep first-encountered order.
func Tally(goals []domain.Goal, pred DatePredicate) Distribution {
	d := Distribution{Data: []CategoryCount{}}
	index := map[domain.Category]int{}
	for _, g := range goals {
		if !g.Completed || (pred != nil && !pred(g.Date)) {
			continue
		}
		i, ok := index[g.Category]
		if !ok {
			i = len(d.Data)
			index[g.Category] = i
			d.Data = append(d.Data, CategoryCount{Category: g.Category})
		}
		d.Data[i].Count++
		d.Total++
	}
	slices.SortStableFunc(d.Data, func(a, b CategoryCount) int {
		return b.Count - a.Count
	})
	return d
}

// Arc is one category's slice of the chart, in degrees.
type Arc struct {
	Category domain.Category `json:"category"`
	Count    int             `json:"count"`
	StartDeg float64         `json:"start_deg"`
	EndDeg   float64         `json:"end_deg"`
	SweepDeg float64         `json:"sweep_deg"`
}

// ArcSegments lays the distribution out over sweep degrees, starting at -180
// and walking in distribution order.
func ArcSegments(d Distribution, sweep float64) []Arc {
	arcs := make([]Arc, 0, len(d.Data))
	if d.Total == 0 {
		return arcs
	}
	cur := -180.0
	for _, c := range d.Data {
		span := float64(c.Count) / float64(d.Total) * sweep
		arcs = append(arcs, Arc{
			Category: c.Category,
			Count:    c.Count,
			StartDeg: cur,
			EndDeg:   cur + span,
			SweepDeg: span,
		})
		cur += span
	}
	return arcs
}

// GroupCompletedByDate buckets completed goals by their date key.
func GroupCompletedByDate(goals []domain.Goal) map[string][]domain.Goal {
	out := map[string][]domain.Goal{}
	for _, g := range goals {
		if g.Completed {
			out[g.Date] = append(out[g.Date], g)
		}
	}
	return out
}

// MonthGrid is what a calendar needs to lay out a month.
type MonthGrid struct {
	Year         int `json:"year"`
	Month        int `json:"month"`
	DaysInMonth  int `json:"days_in_month"`
	FirstWeekday int `json:"first_weekday"` // 0 = Sunday
}

// NewMonthGrid computes the grid for year/month.
func NewMonthGrid(year int, month time.Month) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return MonthGrid{
		Year:         first.Year(),
		Month:        int(first.Month()),
		DaysInMonth:  last.Day(),
		FirstWeekday: int(first.Weekday()),
	}
}
