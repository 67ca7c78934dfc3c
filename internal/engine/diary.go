package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"selfcare/internal/storage"
)

const diaryDateLayout = "2006-01-02"

type DiaryInput struct {
	Date    string // YYYY-MM-DD; empty means today on save, unchanged on edit
	Emotion string
	Content string
}

func normalizeDiary(in DiaryInput) (date string, emotion Emotion, content string, err error) {
	content = strings.TrimSpace(in.Content)
	if content == "" {
		return "", "", "", ValidationError{Field: "content", Reason: "required"}
	}
	emotion, ok := ParseEmotion(in.Emotion)
	if !ok {
		return "", "", "", ValidationError{Field: "emotion", Reason: fmt.Sprintf("unknown emotion %q", in.Emotion)}
	}
	date = strings.TrimSpace(in.Date)
	if date == "" {
		return "", emotion, content, nil
	}
	if _, perr := time.Parse(diaryDateLayout, date); perr != nil {
		return "", "", "", ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"}
	}
	return date, emotion, content, nil
}

func (s *Service) SaveDiary(ctx context.Context, in DiaryInput) (storage.Diary, error) {
	date, emotion, content, err := normalizeDiary(in)
	if err != nil {
		return storage.Diary{}, err
	}
	now := s.now()
	if date == "" {
		date = now.Format(diaryDateLayout)
	}
	return s.diaries.Create(ctx, storage.Diary{
		Date:      date,
		Emotion:   string(emotion),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// EditDiary replaces the entry's emotion and content, and its date when one
// is given.
func (s *Service) EditDiary(ctx context.Context, id string, in DiaryInput) (storage.Diary, error) {
	date, emotion, content, err := normalizeDiary(in)
	if err != nil {
		return storage.Diary{}, err
	}
	fields := storage.Fields{
		"emotion":    string(emotion),
		"content":    content,
		"updated_at": s.now(),
	}
	if date != "" {
		fields["date"] = date
	}
	return s.diaries.Update(ctx, id, fields)
}

func (s *Service) DeleteDiary(ctx context.Context, id string) error {
	return s.diaries.Remove(ctx, id)
}

// Diaries lists entries newest first.
func (s *Service) Diaries(ctx context.Context) ([]storage.Diary, error) {
	return s.diaries.List(ctx)
}
