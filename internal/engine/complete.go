package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"selfcare/internal/storage"
)

type CompleteResult struct {
	MissionID         string
	Category          string
	ExperienceAwarded int
	TotalExperience   int
	LevelBefore       int
	NewLevel          int
	LevelUp           bool
	AlreadyCompleted  bool // the mission was complete before this call
	MissionUpdated    bool // mission fields were written by this call
}

type UncompleteResult struct {
	MissionID      string
	MissionUpdated bool
}

// CompleteMission marks the mission complete and credits its reward to the
// character of the mission's category.
//
// If the mission write succeeds and the character write fails, the returned
// result has MissionUpdated set and the error is a *PartialFailureError; the
// mission stays complete.
func (s *Service) CompleteMission(ctx context.Context, missionID string, photoURL *string) (*CompleteResult, error) {
	missionID = strings.TrimSpace(missionID)
	if missionID == "" {
		return nil, ValidationError{Field: "mission_id", Reason: "required"}
	}

	mission, err := s.missions.GetByMissionID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, fmt.Errorf("mission %s: %w", missionID, storage.ErrNotFound)
	}
	if mission.Experience < 0 {
		return nil, ValidationError{Field: "experience", Reason: fmt.Sprintf("mission %s has a negative reward", missionID)}
	}
	character, err := s.characters.GetByCategory(ctx, mission.Category)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, fmt.Errorf("character for category %s: %w", mission.Category, storage.ErrNotFound)
	}

	updated, changed, err := s.missions.SetCompletion(ctx, missionID, true, s.now(), photoURL)
	if err != nil {
		return nil, err
	}

	res := &CompleteResult{
		MissionID:        missionID,
		Category:         updated.Category,
		AlreadyCompleted: !changed,
		MissionUpdated:   changed,
		LevelBefore:      character.Level,
		NewLevel:         character.Level,
		TotalExperience:  character.TotalExperience,
	}
	if !changed && !s.awardRepeats {
		s.logger.Debug("mission already completed; no experience awarded", zap.String("mission", missionID))
		return res, nil
	}

	delta := updated.Experience
	var leveledUp bool
	after, err := s.characters.ModifyByCategory(ctx, updated.Category, func(c *storage.Character) error {
		res.LevelBefore = c.Level
		p, err := ApplyExperience(*c, delta)
		if err != nil {
			return err
		}
		*c = p.Character
		leveledUp = p.LeveledUp
		return nil
	})
	if err != nil {
		s.logger.Error("experience award failed",
			zap.String("mission", missionID),
			zap.String("category", updated.Category),
			zap.Bool("mission_updated", changed),
			zap.Error(err))
		if !changed {
			return nil, err
		}
		return res, &PartialFailureError{MissionID: missionID, Stage: "character", Err: err}
	}

	res.ExperienceAwarded = delta
	res.TotalExperience = after.TotalExperience
	res.NewLevel = after.Level
	res.LevelUp = leveledUp

	s.logger.Info("mission completed",
		zap.String("mission", missionID),
		zap.String("category", updated.Category),
		zap.Int("experience", delta),
		zap.Int("total_experience", after.TotalExperience),
		zap.Bool("repeat", !changed),
		zap.Bool("level_up", leveledUp))
	return res, nil
}

// UncompleteMission resets the mission to incomplete. Experience granted by
// the earlier completion is kept.
func (s *Service) UncompleteMission(ctx context.Context, missionID string) (*UncompleteResult, error) {
	missionID = strings.TrimSpace(missionID)
	if missionID == "" {
		return nil, ValidationError{Field: "mission_id", Reason: "required"}
	}

	_, changed, err := s.missions.SetCompletion(ctx, missionID, false, s.now(), nil)
	if err != nil {
		return nil, err
	}
	s.logger.Info("mission uncompleted", zap.String("mission", missionID), zap.Bool("changed", changed))
	return &UncompleteResult{MissionID: missionID, MissionUpdated: changed}, nil
}
