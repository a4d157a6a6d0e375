package domain

import (
	"fmt"
	"strings"
	"time"
)

// Category is the closed set of intention themes.
type Category string

const (
	CategoryFocus       Category = "Focus"
	CategoryAchievement Category = "Achievement"
	CategoryHealth      Category = "Health"
	CategoryConnection  Category = "Connection"
	CategoryMeaning     Category = "Meaning"
	CategoryGratitude   Category = "Gratitude"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFocus,
	CategoryAchievement,
	CategoryHealth,
	CategoryConnection,
	CategoryMeaning,
	CategoryGratitude,
}

var categoryDescriptions = map[Category]string{
	CategoryFocus:       "Deep work and attention",
	CategoryAchievement: "Completing tasks",
	CategoryHealth:      "Body and mind well-being",
	CategoryConnection:  "Relationships",
	CategoryMeaning:     "Purpose and help",
	CategoryGratitude:   "Thankfulness",
}

// IsValid reports whether c is one of the six known categories.
func (c Category) IsValid() bool {
	_, ok := categoryDescriptions[c]
	return ok
}

// Description returns the short blurb shown next to the category.
func (c Category) Description() string {
	return categoryDescriptions[c]
}

// ParseCategory accepts any casing of a category label.
func ParseCategory(input string) (Category, error) {
	s := strings.TrimSpace(input)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category: %q", input)
}

// Goal is one daily intention. Date is the YYYY-MM-DD day it belongs to and never
// changes after creation.
type Goal struct {
	ID                 string     `json:"id"`
	Text               string     `json:"text"`
	Category           Category   `json:"category"`
	Completed          bool       `json:"completed"`
	Reflection         string     `json:"reflection,omitempty"`
	ReflectionResponse string     `json:"reflectionResponse,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	Date               string     `json:"date"`
}
