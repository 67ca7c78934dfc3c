package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"
)

func newTestNamespace(t *testing.T) (*RecordStore, Namespace) {
	t.Helper()
	ns, err := NamespaceFor("tester")
	require.NoError(t, err)
	return NewRecordStore(NewMemoryMedium()), ns
}

func TestDiaryRepo_RoundTripAndOrder(t *testing.T) {
	store, ns := newTestNamespace(t)
	repo := NewDiaryRepo(store, ns)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	older, err := repo.Create(ctx, Diary{Date: "2026-03-01", Emotion: "calm", Content: "tea", CreatedAt: base, UpdatedAt: base})
	require.NoError(t, err)
	newer, err := repo.Create(ctx, Diary{Date: "2026-03-02", Emotion: "happy", Content: "walk", CreatedAt: base.Add(24 * time.Hour), UpdatedAt: base.Add(24 * time.Hour)})
	require.NoError(t, err)
	require.NotEqual(t, older.ID, newer.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)

	_, err = repo.Update(ctx, older.ID, Fields{"content": "green tea"})
	require.NoError(t, err)
	got, err := repo.Get(ctx, older.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "green tea", got.Content)
	assert.Equal(t, "calm", got.Emotion)

	require.NoError(t, repo.Remove(ctx, older.ID))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, newer.ID, list[0].ID)

	assert.ErrorIs(t, repo.Remove(ctx, older.ID), ErrNotFound)
}

func TestMissionRepo_SetCompletion(t *testing.T) {
	store, ns := newTestNamespace(t)
	repo := NewMissionRepo(store, ns)
	ctx := context.Background()
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, Mission{MissionID: "sleep-early", Category: "sleep", Title: "Bed by 11", Experience: 300, CreatedAt: now})
	require.NoError(t, err)

	photo := "file:///p.jpg"
	m, changed, err := repo.SetCompletion(ctx, "sleep-early", true, now, &photo)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, m.Completed)
	require.NotNil(t, m.CompletedAt)
	assert.True(t, now.Equal(*m.CompletedAt))
	require.NotNil(t, m.PhotoURL)
	assert.Equal(t, photo, *m.PhotoURL)

	m, changed, err = repo.SetCompletion(ctx, "sleep-early", true, now.Add(time.Hour), nil)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, now.Equal(*m.CompletedAt))

	m, changed, err = repo.SetCompletion(ctx, "sleep-early", false, now, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, m.Completed)
	assert.Nil(t, m.CompletedAt)
	assert.Nil(t, m.PhotoURL)
	assert.Equal(t, created.ID, m.ID)
	assert.Equal(t, 300, m.Experience)

	_, _, err = repo.SetCompletion(ctx, "missing", true, now, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := repo.GetByMissionID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCharacterRepo_OrderAndModify(t *testing.T) {
	store, ns := newTestNamespace(t)
	repo := NewCharacterRepo(store, ns)
	ctx := context.Background()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	_, err := repo.Create(ctx, Character{CategoryID: "meal", Level: 1, UnlockedDate: &t1})
	require.NoError(t, err)
	_, err = repo.Create(ctx, Character{CategoryID: "sleep", Level: 1, UnlockedDate: &t0})
	require.NoError(t, err)
	_, err = repo.Create(ctx, Character{CategoryID: "mind", Level: 1})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"sleep", "meal", "mind"}, []string{list[0].CategoryID, list[1].CategoryID, list[2].CategoryID})

	c, err := repo.ModifyByCategory(ctx, "meal", func(c *Character) error {
		c.TotalExperience += 40
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 40, c.TotalExperience)

	_, err = repo.ModifyByCategory(ctx, "social", func(*Character) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.ModifyAll(ctx, func(all []Character) ([]Character, error) {
		return append(all, Character{CategoryID: "social", Level: 1}), nil
	})
	require.NoError(t, err)
	social, err := repo.GetByCategory(ctx, "social")
	require.NoError(t, err)
	require.NotNil(t, social)
	assert.NotEmpty(t, social.ID)
}

func TestPreferenceRepo(t *testing.T) {
	store, ns := newTestNamespace(t)
	repo := NewPreferenceRepo(store, ns)
	ctx := context.Background()

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, repo.Set(ctx, "mind"))
	require.NoError(t, repo.Set(ctx, "sleep"))
	got, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sleep", got)

	recs, err := store.Get(ctx, ns.Representative)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestNamespacesAreIsolated(t *testing.T) {
	store := NewRecordStore(NewMemoryMedium())
	a, _ := NamespaceFor("a")
	b, _ := NamespaceFor("b")
	ctx := context.Background()

	_, err := NewDiaryRepo(store, a).Create(ctx, Diary{Content: "only a"})
	require.NoError(t, err)

	list, err := NewDiaryRepo(store, b).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMissionRepo_AddMissingIsKeyedOnMissionID(t *testing.T) {
	store, ns := newTestNamespace(t)
	repo := NewMissionRepo(store, ns)
	ctx := context.Background()
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	existing, err := repo.Create(ctx, Mission{MissionID: "a", Title: "kept", CreatedAt: now})
	require.NoError(t, err)

	batch := []Mission{
		{MissionID: "a", Title: "replacement", CreatedAt: now},
		{MissionID: "b", Title: "new b", CreatedAt: now},
		{MissionID: "c", Title: "new c", CreatedAt: now},
	}

	var g errgroup.Group
	added := make([]int, 4)
	for i := range added {
		i := i
		g.Go(func() error {
			n, err := repo.AddMissing(ctx, batch)
			added[i] = n
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 2, added[0]+added[1]+added[2]+added[3])

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	a, err := repo.GetByMissionID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, a.ID)
	assert.Equal(t, "kept", a.Title)
}

func TestMissionRepo_ReplaceKeepsGivenIDs(t *testing.T) {
	store, ns := newTestNamespace(t)
	repo := NewMissionRepo(store, ns)
	ctx := context.Background()
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, Mission{MissionID: "old", CreatedAt: now})
	require.NoError(t, err)

	require.NoError(t, repo.Replace(ctx, []Mission{
		{ID: "m1", MissionID: "x", CreatedAt: now},
		{ID: "m2", MissionID: "y", CreatedAt: now.Add(time.Minute)},
	}))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "m1", list[0].ID)
	assert.Equal(t, "m2", list[1].ID)

	old, err := repo.GetByMissionID(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, old)
}

func TestCharacterRepo_ModifyAllKeepsUnreadableRecords(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := NewRecordStore(NewMemoryMedium(), WithLogger(zap.New(core)))
	ns, err := NamespaceFor("tester")
	require.NoError(t, err)
	repo := NewCharacterRepo(store, ns)
	ctx := context.Background()

	bad := Record{
		"id":          json.RawMessage(`"broken"`),
		"category_id": json.RawMessage(`"mind"`),
		"level":       json.RawMessage(`"high"`),
	}
	good := Record{
		"id":          json.RawMessage(`"ok"`),
		"category_id": json.RawMessage(`"sleep"`),
		"level":       json.RawMessage(`1`),
	}
	require.NoError(t, store.Set(ctx, ns.Characters, []Record{bad, good}))

	var seen []string
	err = repo.ModifyAll(ctx, func(all []Character) ([]Character, error) {
		for _, c := range all {
			seen = append(seen, c.ID)
		}
		return append(all, Character{CategoryID: "meal", Level: 1}), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, seen)
	assert.Equal(t, 1, logs.FilterMessage("skipping unreadable record").Len())

	recs, err := store.Get(ctx, ns.Characters)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	var kept Record
	for _, r := range recs {
		if r.ID() == "broken" {
			kept = r
		}
	}
	assert.Equal(t, bad, kept)
}
