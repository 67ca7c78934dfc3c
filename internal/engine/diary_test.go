package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selfcare/internal/storage"
)

// stepClock advances by a minute on every reading.
type stepClock struct{ t time.Time }

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func TestDiaryLifecycle(t *testing.T) {
	ctx := context.Background()
	clock := &stepClock{t: testNow}
	svc := newTestService(t, storage.NewMemoryMedium(), Options{Now: clock.Now})

	first, err := svc.SaveDiary(ctx, DiaryInput{Emotion: "Happy", Content: "  slept well  "})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "2026-04-01", first.Date)
	assert.Equal(t, "happy", first.Emotion)
	assert.Equal(t, "slept well", first.Content)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)

	second, err := svc.SaveDiary(ctx, DiaryInput{Date: "2026-03-30", Emotion: "tired", Content: "long day"})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-30", second.Date)

	list, err := svc.Diaries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, first.ID, list[1].ID)

	edited, err := svc.EditDiary(ctx, first.ID, DiaryInput{Emotion: "proud", Content: "slept very well"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, edited.ID)
	assert.Equal(t, "2026-04-01", edited.Date, "blank date keeps the stored one")
	assert.Equal(t, "proud", edited.Emotion)
	assert.True(t, edited.UpdatedAt.After(first.UpdatedAt))
	assert.True(t, edited.CreatedAt.Equal(first.CreatedAt))

	require.NoError(t, svc.DeleteDiary(ctx, first.ID))
	assert.ErrorIs(t, svc.DeleteDiary(ctx, first.ID), storage.ErrNotFound)

	list, err = svc.Diaries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestDiaryValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemoryMedium(), DefaultOptions())

	tests := []struct {
		name  string
		in    DiaryInput
		field string
	}{
		{"blank content", DiaryInput{Emotion: "calm", Content: "   "}, "content"},
		{"unknown emotion", DiaryInput{Emotion: "bored", Content: "meh"}, "emotion"},
		{"bad date", DiaryInput{Date: "01/04/2026", Emotion: "calm", Content: "ok"}, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveDiary(ctx, tt.in)
			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	list, err := svc.Diaries(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "rejected entries are never written")

	_, err = svc.EditDiary(ctx, "missing", DiaryInput{Emotion: "calm", Content: "x"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
