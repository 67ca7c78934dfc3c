package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selfcare/internal/storage"
)

func TestSelectRepresentative(t *testing.T) {
	chars := []storage.Character{
		{ID: "a", CategoryID: "sleep"},
		{ID: "b", CategoryID: "meal"},
		{ID: "c", CategoryID: "mind"},
	}

	tests := []struct {
		name      string
		chars     []storage.Character
		preferred string
		want      string
	}{
		{"preferred present", chars, "mind", "c"},
		{"no preference", chars, "", "a"},
		{"preferred absent", chars, "social", "a"},
		{"empty collection", nil, "sleep", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectRepresentative(tt.chars, tt.preferred)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestSelectRepresentativeReturnsCopy(t *testing.T) {
	chars := []storage.Character{{ID: "a", CategoryID: "sleep", Level: 1}}
	got := SelectRepresentative(chars, "")
	got.Level = 9
	assert.Equal(t, 1, chars[0].Level)
}

func TestRepresentativePreference(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemoryMedium(), DefaultOptions())

	rep, err := svc.Representative(ctx)
	require.NoError(t, err)
	require.NotNil(t, rep)
	assert.Equal(t, "sleep", rep.CategoryID)

	cat, err := svc.SetRepresentativePreference(ctx, "food")
	require.NoError(t, err)
	assert.Equal(t, CategoryMeal, cat)

	rep, err = svc.Representative(ctx)
	require.NoError(t, err)
	assert.Equal(t, "meal", rep.CategoryID)

	_, err = svc.SetRepresentativePreference(ctx, "gardening")
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Field)

	pref, err := svc.PreferenceRepo().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "meal", pref, "rejected input leaves the preference alone")

	// A preference without a matching character falls back to the first one.
	_, err = svc.SetRepresentativePreference(ctx, "social")
	require.NoError(t, err)
	rep, err = svc.Representative(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sleep", rep.CategoryID)
}

func TestRepresentativeWithoutCharacters(t *testing.T) {
	svc, err := NewService(storage.NewRecordStore(storage.NewMemoryMedium()), "empty", Options{})
	require.NoError(t, err)
	rep, err := svc.Representative(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rep)
}
