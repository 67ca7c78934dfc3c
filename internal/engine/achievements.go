package engine

import (
	"context"

	"selfcare/internal/storage"
)

// Achievement is a badge derived from stored progress. Nothing is persisted;
// badges are recomputed on every read.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker calculates which achievements the user has earned.
type AchievementChecker struct {
	characters []storage.Character
	missions   []storage.Mission
	diaries    int
}

func NewAchievementChecker(characters []storage.Character, missions []storage.Mission, diaryCount int) *AchievementChecker {
	return &AchievementChecker{
		characters: characters,
		missions:   missions,
		diaries:    diaryCount,
	}
}

// GetAchievements returns all achievements with their earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		// Mission milestones
		c.missionCountAchievement("first_mission", "First Step", "Complete a mission", "🌱", 1),
		c.missionCountAchievement("steady", "Steady", "Have 5 missions completed", "🌿", 5),
		c.missionCountAchievement("all_done", "Clean Sweep", "Have 10 missions completed", "🌳", 10),

		// Character levels
		c.levelAchievement("grown", "Growing Up", "Any character reaches level 2", "⭐", 2),
		c.levelAchievement("bloom", "In Bloom", "Any character reaches level 5", "🌟", 5),
		c.levelAchievement("legend", "Legend", "Any character reaches level 10", "💫", 10),
		c.allCategoriesAchievement("balanced", "Balanced", "Every character reaches level 2", "⚖️", 2),

		// Diary
		c.diaryAchievement("first_diary", "Dear Diary", "Write a diary entry", "📔", 1),
		c.diaryAchievement("journaler", "Journaler", "Write 30 diary entries", "📚", 30),
	}
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

func (c *AchievementChecker) missionCountAchievement(id, name, desc, icon string, count int) Achievement {
	done := 0
	for _, m := range c.missions {
		if m.Completed {
			done++
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: done >= count}
}

func (c *AchievementChecker) levelAchievement(id, name, desc, icon string, level int) Achievement {
	earned := false
	for _, ch := range c.characters {
		if LevelForTotalExperience(ch.TotalExperience) >= level {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) allCategoriesAchievement(id, name, desc, icon string, level int) Achievement {
	reached := map[string]bool{}
	for _, ch := range c.characters {
		if LevelForTotalExperience(ch.TotalExperience) >= level {
			reached[ch.CategoryID] = true
		}
	}
	earned := true
	for _, cat := range Categories {
		if !reached[string(cat)] {
			earned = false
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) diaryAchievement(id, name, desc, icon string, count int) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.diaries >= count}
}

// Achievements loads the user's data and evaluates every badge.
func (s *Service) Achievements(ctx context.Context) ([]Achievement, error) {
	chars, err := s.characters.List(ctx)
	if err != nil {
		return nil, err
	}
	missions, err := s.missions.List(ctx)
	if err != nil {
		return nil, err
	}
	diaries, err := s.diaries.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewAchievementChecker(chars, missions, len(diaries)).GetAchievements(), nil
}
