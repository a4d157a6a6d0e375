package domain

// AppState is the progression document persisted wholesale on every mutation.
type AppState struct {
	Goals                  []Goal   `json:"goals"`
	Streak                 int      `json:"streak"`
	LastActiveDate         string   `json:"lastActiveDate"`
	UnlockedLandscapes     []string `json:"unlockedLandscapes"`
	CurrentLandscapeID     string   `json:"currentLandscapeId"`
	Inventory              []Gift   `json:"inventory"`
	GiftsReceivedThisMonth int      `json:"giftsReceivedThisMonth"`
	LastGiftMonth          string   `json:"lastGiftMonth"`
}

// DefaultState returns the document a new user starts with.
func DefaultState() AppState {
	return AppState{
		Goals:              []Goal{},
		UnlockedLandscapes: []string{DefaultLandscapeID},
		CurrentLandscapeID: DefaultLandscapeID,
		Inventory:          []Gift{},
	}
}

// Clone returns a deep copy so reducers never alias the caller's slices.
func (s AppState) Clone() AppState {
	out := s
	out.Goals = make([]Goal, len(s.Goals))
	for i, g := range s.Goals {
		if g.CompletedAt != nil {
			t := *g.CompletedAt
			g.CompletedAt = &t
		}
		out.Goals[i] = g
	}
	out.UnlockedLandscapes = append([]string{}, s.UnlockedLandscapes...)
	out.Inventory = append([]Gift{}, s.Inventory...)
	return out
}

// IsUnlocked reports whether the landscape id has been unlocked.
func (s AppState) IsUnlocked(id string) bool {
	for _, u := range s.UnlockedLandscapes {
		if u == id {
			return true
		}
	}
	return false
}

// FindGoal returns the index of the goal with id, or -1.
func (s AppState) FindGoal(id string) int {
	for i := range s.Goals {
		if s.Goals[i].ID == id {
			return i
		}
	}
	return -1
}
