package storage

import "time"

type Character struct {
	ID              string     `json:"id"`
	CategoryID      string     `json:"category_id"`
	Name            string     `json:"name,omitempty"`
	Title           string     `json:"title,omitempty"`
	Level           int        `json:"level"`
	Experience      int        `json:"experience"`       // progress inside the current level
	TotalExperience int        `json:"total_experience"` // never decreases
	UnlockedDate    *time.Time `json:"unlocked_date"`
}

type Mission struct {
	ID          string     `json:"id"`
	MissionID   string     `json:"mission_id"` // template reference, stable across storage ids
	Category    string     `json:"category"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Experience  int        `json:"experience"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	PhotoURL    *string    `json:"photo_url"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Diary struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Emotion   string    `json:"emotion"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MissionTemplate is the snapshot of a catalog mission kept per user once
// their missions have been materialized.
type MissionTemplate struct {
	ID         string `json:"id"`
	MissionID  string `json:"mission_id"`
	CategoryID string `json:"category_id"`
	Title      string `json:"title"`
	Experience int    `json:"experience"`
}

// representative is the singleton element stored under Namespace.Representative.
type representative struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
}
