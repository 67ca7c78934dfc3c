package engine

// Category is one of the fixed self-care areas. Each user has at most one
// character per category.
type Category string

const (
	CategorySleep    Category = "sleep"
	CategoryExercise Category = "exercise"
	CategoryMeal     Category = "meal"
	CategoryMind     Category = "mind"
	CategorySocial   Category = "social"
)

// Categories lists every category in display order.
var Categories = []Category{CategorySleep, CategoryExercise, CategoryMeal, CategoryMind, CategorySocial}

func (c Category) IsValid() bool {
	switch c {
	case CategorySleep, CategoryExercise, CategoryMeal, CategoryMind, CategorySocial:
		return true
	default:
		return false
	}
}

type Emotion string

const (
	EmotionHappy   Emotion = "happy"
	EmotionCalm    Emotion = "calm"
	EmotionProud   Emotion = "proud"
	EmotionSad     Emotion = "sad"
	EmotionAngry   Emotion = "angry"
	EmotionAnxious Emotion = "anxious"
	EmotionTired   Emotion = "tired"
)

func (e Emotion) IsValid() bool {
	switch e {
	case EmotionHappy, EmotionCalm, EmotionProud, EmotionSad, EmotionAngry, EmotionAnxious, EmotionTired:
		return true
	default:
		return false
	}
}
