package domain

// Landscape is a scene unlocked by keeping a streak.
type Landscape struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Landscapes is the unlock order. The first entry is unlocked for everyone.
var Landscapes = []Landscape{
	{ID: "meadow", Name: "Morning Meadow", Description: "A quiet start."},
	{ID: "mountains", Name: "Silent Mountains", Description: "Strength in stillness."},
	{ID: "river", Name: "Flowing River", Description: "Constant change."},
	{ID: "lake", Name: "Mirror Lake", Description: "Deep reflection."},
	{ID: "sea", Name: "Endless Sea", Description: "Infinite possibilities."},
}

// DefaultLandscapeID is the landscape every document starts with.
var DefaultLandscapeID = Landscapes[0].ID

// LandscapeByID looks up a catalog entry.
func LandscapeByID(id string) (Landscape, bool) {
	for _, l := range Landscapes {
		if l.ID == id {
			return l, true
		}
	}
	return Landscape{}, false
}
