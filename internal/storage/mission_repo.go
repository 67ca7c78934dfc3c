package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

type MissionRepo struct {
	c *Collection[Mission]
}

func NewMissionRepo(store *RecordStore, ns Namespace) *MissionRepo {
	return &MissionRepo{c: NewCollection[Mission](store, ns.Missions)}
}

// List returns missions in materialization order.
func (r *MissionRepo) List(ctx context.Context) ([]Mission, error) {
	out, err := r.c.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("mission list: %w", err)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MissionRepo) Create(ctx context.Context, m Mission) (Mission, error) {
	out, err := r.c.Create(ctx, m)
	if err != nil {
		return Mission{}, fmt.Errorf("mission create: %w", err)
	}
	return out, nil
}

func (r *MissionRepo) Update(ctx context.Context, id string, fields Fields) (Mission, error) {
	out, err := r.c.Update(ctx, id, fields)
	if err != nil {
		return Mission{}, fmt.Errorf("mission update: %w", err)
	}
	return out, nil
}

func (r *MissionRepo) Remove(ctx context.Context, id string) error {
	if err := r.c.Remove(ctx, id); err != nil {
		return fmt.Errorf("mission remove: %w", err)
	}
	return nil
}

func (r *MissionRepo) Replace(ctx context.Context, all []Mission) error {
	if err := r.c.Replace(ctx, all); err != nil {
		return fmt.Errorf("mission replace: %w", err)
	}
	return nil
}

// GetByMissionID looks a mission up by its template reference. It returns
// nil when there is none.
func (r *MissionRepo) GetByMissionID(ctx context.Context, missionID string) (*Mission, error) {
	all, err := r.c.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("mission get: %w", err)
	}
	for i := range all {
		if all[i].MissionID == missionID {
			return &all[i], nil
		}
	}
	return nil, nil
}

// SetCompletion moves the mission to the requested state. changed is false
// when it was already there, in which case nothing is written.
func (r *MissionRepo) SetCompletion(ctx context.Context, missionID string, completed bool, at time.Time, photoURL *string) (m Mission, changed bool, err error) {
	m, err = r.c.Modify(ctx, func(m Mission) bool { return m.MissionID == missionID }, func(m *Mission) error {
		if m.Completed == completed {
			return ErrNoChange
		}
		changed = true
		m.Completed = completed
		if completed {
			t := at.UTC()
			m.CompletedAt = &t
			m.PhotoURL = photoURL
		} else {
			m.CompletedAt = nil
			m.PhotoURL = nil
		}
		return nil
	})
	if err != nil {
		return Mission{}, false, fmt.Errorf("mission %s completion: %w", missionID, err)
	}
	return m, changed, nil
}

// AddMissing stores every mission whose mission_id is not present yet, in one
// locked cycle, and reports how many were added.
func (r *MissionRepo) AddMissing(ctx context.Context, missions []Mission) (int, error) {
	added := 0
	err := r.c.store.Mutate(ctx, r.c.key, func(recs []Record) ([]Record, error) {
		added = 0
		have := make(map[string]bool, len(recs))
		for _, rec := range recs {
			var missionID string
			if ok, err := rec.Field("mission_id", &missionID); ok && err == nil {
				have[missionID] = true
			}
		}
		for _, m := range missions {
			if have[m.MissionID] {
				continue
			}
			rec, err := encode(m)
			if err != nil {
				return nil, err
			}
			id, err := r.c.store.uniqueID(recs)
			if err != nil {
				return nil, err
			}
			raw, _ := json.Marshal(id)
			rec[idField] = raw
			recs = append(recs, rec)
			have[m.MissionID] = true
			added++
		}
		if added == 0 {
			return nil, ErrNoChange
		}
		return recs, nil
	})
	if err != nil {
		return 0, fmt.Errorf("mission add missing: %w", err)
	}
	return added, nil
}
