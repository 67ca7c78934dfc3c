package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selfcare/internal/storage"
)

func earned(list []Achievement) map[string]bool {
	out := map[string]bool{}
	for _, a := range list {
		out[a.ID] = a.Earned
	}
	return out
}

func TestAchievementChecker(t *testing.T) {
	var chars []storage.Character
	for _, c := range Categories {
		chars = append(chars, storage.Character{CategoryID: string(c), TotalExperience: 1000})
	}
	chars[0].TotalExperience = 4200

	missions := make([]storage.Mission, 6)
	for i := range missions {
		missions[i].Completed = i < 5
	}

	checker := NewAchievementChecker(chars, missions, 1)
	got := earned(checker.GetAchievements())

	assert.True(t, got["first_mission"])
	assert.True(t, got["steady"])
	assert.False(t, got["all_done"])
	assert.True(t, got["grown"])
	assert.True(t, got["bloom"])
	assert.False(t, got["legend"])
	assert.True(t, got["balanced"])
	assert.True(t, got["first_diary"])
	assert.False(t, got["journaler"])
	assert.Equal(t, 6, checker.CountEarned())
}

func TestAchievementsBalancedNeedsEveryCategory(t *testing.T) {
	chars := []storage.Character{
		{CategoryID: "sleep", TotalExperience: 5000},
		{CategoryID: "meal", TotalExperience: 5000},
	}
	got := earned(NewAchievementChecker(chars, nil, 0).GetAchievements())
	assert.False(t, got["balanced"])
	assert.False(t, got["first_diary"])
}

func TestServiceAchievements(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemoryMedium(), DefaultOptions())

	list, err := svc.Achievements(ctx)
	require.NoError(t, err)
	for _, a := range list {
		assert.False(t, a.Earned, a.ID)
	}

	_, err = svc.CompleteMission(ctx, "sleep-big", nil)
	require.NoError(t, err)
	_, err = svc.CompleteMission(ctx, "sleep-early", nil)
	require.NoError(t, err)

	list, err = svc.Achievements(ctx)
	require.NoError(t, err)
	got := earned(list)
	assert.True(t, got["first_mission"])
	assert.True(t, got["grown"])
	assert.False(t, got["balanced"])
}
