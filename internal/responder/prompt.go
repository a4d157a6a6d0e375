package responder

import "fmt"

// BuildPrompt renders the instruction sent to text-generation backends.
func BuildPrompt(req Request) string {
	return fmt.Sprintf(`The user has completed a goal in the category %q: %q.
They wrote this reflection: %q.

Act as a wise, gentle forest spirit. Provide a very short, one-sentence poetic acknowledgment or insight that validates their feeling and encourages inner peace or growth.
Keep it under 20 words. Be mystical but grounded.`, string(req.Category), req.GoalText, req.Reflection)
}
