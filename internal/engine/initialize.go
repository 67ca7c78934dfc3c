package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"selfcare/internal/catalog"
	"selfcare/internal/storage"
)

type InitResult struct {
	MissionsCreated      int
	CharactersCreated    int
	CharactersBackfilled int
	AlreadyInitialized   bool
}

// Initialize materializes the user's missions and characters from cat. It is
// safe to call on every start: missions are only created once, while missing
// characters are added and absent unlock dates backfilled each time.
func (s *Service) Initialize(ctx context.Context, cat *catalog.Catalog) (*InitResult, error) {
	if cat == nil {
		return nil, ValidationError{Field: "catalog", Reason: "required"}
	}
	for _, ch := range cat.Characters {
		if !Category(ch.CategoryID).IsValid() {
			return nil, ValidationError{Field: "catalog", Reason: fmt.Sprintf("unknown character category %q", ch.CategoryID)}
		}
	}
	for _, m := range cat.Missions {
		if !Category(m.CategoryID).IsValid() {
			return nil, ValidationError{Field: "catalog", Reason: fmt.Sprintf("mission %s has unknown category %q", m.MissionID, m.CategoryID)}
		}
		if m.Experience < 0 {
			return nil, ValidationError{Field: "catalog", Reason: fmt.Sprintf("mission %s has a negative reward", m.MissionID)}
		}
	}

	res := &InitResult{}
	now := s.now()

	snapshot, err := s.templates.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(snapshot) > 0 {
		res.AlreadyInitialized = true
	} else {
		created, err := s.materializeMissions(ctx, cat.Missions)
		if err != nil {
			return nil, err
		}
		res.MissionsCreated = created
	}

	err = s.characters.ModifyAll(ctx, func(all []storage.Character) ([]storage.Character, error) {
		have := map[string]bool{}
		for i := range all {
			have[all[i].CategoryID] = true
			if all[i].UnlockedDate == nil {
				t := now
				all[i].UnlockedDate = &t
				res.CharactersBackfilled++
			}
			all[i] = Normalize(all[i])
		}
		for _, tpl := range cat.Characters {
			if have[tpl.CategoryID] {
				continue
			}
			t := now
			all = append(all, Normalize(storage.Character{
				CategoryID:   tpl.CategoryID,
				Name:         tpl.Name,
				Title:        tpl.Title,
				UnlockedDate: &t,
			}))
			have[tpl.CategoryID] = true
			res.CharactersCreated++
		}
		return all, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account initialized",
		zap.Bool("already_initialized", res.AlreadyInitialized),
		zap.Int("missions_created", res.MissionsCreated),
		zap.Int("characters_created", res.CharactersCreated),
		zap.Int("characters_backfilled", res.CharactersBackfilled))
	return res, nil
}

// materializeMissions adds any catalog mission the user does not have yet,
// then records the catalog snapshot that marks the namespace as materialized.
func (s *Service) materializeMissions(ctx context.Context, templates []catalog.MissionTemplate) (int, error) {
	now := s.now()
	missions := make([]storage.Mission, 0, len(templates))
	snapshot := make([]storage.MissionTemplate, 0, len(templates))
	for _, tpl := range templates {
		missions = append(missions, storage.Mission{
			MissionID:   tpl.MissionID,
			Category:    tpl.CategoryID,
			Title:       tpl.Title,
			Description: tpl.Description,
			Experience:  tpl.Experience,
			CreatedAt:   now,
		})
		snapshot = append(snapshot, storage.MissionTemplate{
			ID:         tpl.MissionID,
			MissionID:  tpl.MissionID,
			CategoryID: tpl.CategoryID,
			Title:      tpl.Title,
			Experience: tpl.Experience,
		})
	}

	created, err := s.missions.AddMissing(ctx, missions)
	if err != nil {
		return 0, err
	}
	if err := s.templates.Replace(ctx, snapshot); err != nil {
		return created, err
	}
	return created, nil
}

// Reset removes every collection of the user's namespace.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.Drop(ctx, s.ns.Keys()...); err != nil {
		return err
	}
	s.logger.Info("namespace reset")
	return nil
}
