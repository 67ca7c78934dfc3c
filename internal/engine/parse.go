package engine

import "strings"

// ParseCategory parses user input to a Category.
// Supported: sleep, exercise, meal, mind, social, plus a few aliases.
func ParseCategory(input string) (Category, bool) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "sleep", "rest":
		return CategorySleep, true
	case "exercise", "move", "workout":
		return CategoryExercise, true
	case "meal", "food", "eat":
		return CategoryMeal, true
	case "mind", "mindfulness", "calm":
		return CategoryMind, true
	case "social", "friends":
		return CategorySocial, true
	default:
		return "", false
	}
}

// ParseEmotion parses a diary emotion tag.
func ParseEmotion(input string) (Emotion, bool) {
	e := Emotion(strings.TrimSpace(strings.ToLower(input)))
	if e.IsValid() {
		return e, true
	}
	return "", false
}
