package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"selfcare/internal/catalog"
	"selfcare/internal/storage"
)

var testNow = time.Date(2026, 4, 1, 8, 30, 0, 0, time.UTC)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Characters: []catalog.CharacterTemplate{
			{CategoryID: "sleep", Name: "Dozy", Title: "Night Keeper"},
			{CategoryID: "meal", Name: "Crumb", Title: "Bowl Friend"},
		},
		Missions: []catalog.MissionTemplate{
			{MissionID: "sleep-early", CategoryID: "sleep", Title: "Bed before midnight", Experience: 300},
			{MissionID: "sleep-screens", CategoryID: "sleep", Title: "No screens", Experience: 200},
			{MissionID: "sleep-big", CategoryID: "sleep", Title: "Full night", Experience: 700},
			{MissionID: "meal-breakfast", CategoryID: "meal", Title: "Breakfast", Experience: 150},
		},
	}
}

func newTestService(t *testing.T, medium storage.Medium, opts Options) *Service {
	t.Helper()
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	svc, err := NewService(storage.NewRecordStore(medium), "tester", opts)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if _, err := svc.Initialize(context.Background(), testCatalog()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return svc
}

func newSQLiteService(t *testing.T, opts Options) *Service {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return newTestService(t, storage.NewSQLiteMedium(db), opts)
}

func characterFor(t *testing.T, svc *Service, category string) storage.Character {
	t.Helper()
	c, err := svc.CharacterRepo().GetByCategory(context.Background(), category)
	if err != nil {
		t.Fatalf("get character: %v", err)
	}
	if c == nil {
		t.Fatalf("no character for %s", category)
	}
	return *c
}

func TestLevelBoundaries(t *testing.T) {
	cases := []struct {
		total int
		level int
		into  int
	}{
		{0, 1, 0},
		{999, 1, 999},
		{1000, 2, 0},
		{1999, 2, 999},
		{2000, 3, 0},
	}
	for _, tc := range cases {
		if got := LevelForTotalExperience(tc.total); got != tc.level {
			t.Fatalf("LevelForTotalExperience(%d)=%d, want %d", tc.total, got, tc.level)
		}
		if got := ExperienceIntoLevel(tc.total); got != tc.into {
			t.Fatalf("ExperienceIntoLevel(%d)=%d, want %d", tc.total, got, tc.into)
		}
	}
}

func TestLevelProgress(t *testing.T) {
	cases := map[int]float64{0: 0, 250: 0.25, 999: 0.999, 1000: 0, 1500: 0.5}
	for total, want := range cases {
		if got := LevelProgress(total); got != want {
			t.Fatalf("LevelProgress(%d)=%v, want %v", total, got, want)
		}
	}
}

func TestApplyExperienceCrossesLevels(t *testing.T) {
	c := storage.Character{Level: 1, TotalExperience: 999, Experience: 999}

	p, err := ApplyExperience(c, 1)
	if err != nil {
		t.Fatalf("ApplyExperience: %v", err)
	}
	if !p.LeveledUp || p.Character.Level != 2 || p.Character.Experience != 0 || p.Character.TotalExperience != 1000 {
		t.Fatalf("999->1000 got %+v leveledUp=%v", p.Character, p.LeveledUp)
	}

	p, err = ApplyExperience(p.Character, 999)
	if err != nil {
		t.Fatalf("ApplyExperience: %v", err)
	}
	if p.LeveledUp || p.Character.Level != 2 {
		t.Fatalf("1000->1999 got level %d leveledUp=%v", p.Character.Level, p.LeveledUp)
	}

	p, err = ApplyExperience(p.Character, 1)
	if err != nil {
		t.Fatalf("ApplyExperience: %v", err)
	}
	if !p.LeveledUp || p.Character.Level != 3 {
		t.Fatalf("1999->2000 got level %d leveledUp=%v", p.Character.Level, p.LeveledUp)
	}

	p, err = ApplyExperience(storage.Character{Level: 1}, 0)
	if err != nil || p.LeveledUp {
		t.Fatalf("zero delta: leveledUp=%v err=%v", p.LeveledUp, err)
	}
}

func TestApplyExperienceIsAdditive(t *testing.T) {
	deltas := [][2]int{{0, 0}, {1, 999}, {450, 550}, {1234, 8766}, {999, 1}, {3000, 7}}
	for _, d := range deltas {
		start := storage.Character{Level: 1}
		a, _ := ApplyExperience(start, d[0])
		ab, _ := ApplyExperience(a.Character, d[1])
		once, _ := ApplyExperience(start, d[0]+d[1])
		if ab.Character != once.Character {
			t.Fatalf("deltas %v: sequential %+v != direct %+v", d, ab.Character, once.Character)
		}
		if ab.Character.Level != LevelForTotalExperience(ab.Character.TotalExperience) {
			t.Fatalf("deltas %v: level %d inconsistent with total %d", d, ab.Character.Level, ab.Character.TotalExperience)
		}
	}
}

func TestApplyExperienceRejectsNegative(t *testing.T) {
	c := storage.Character{ID: "c", Level: 2, TotalExperience: 1500, Experience: 500}
	p, err := ApplyExperience(c, -1)
	if _, ok := err.(ValidationError); !ok {
		t.Fatalf("err=%v, want ValidationError", err)
	}
	if p.Character != c || p.LeveledUp {
		t.Fatalf("character mutated: %+v", p.Character)
	}
}

func TestNormalize(t *testing.T) {
	c := Normalize(storage.Character{Level: 7, Experience: 3, TotalExperience: 2500})
	if c.Level != 3 || c.Experience != 500 {
		t.Fatalf("Normalize=%+v", c)
	}
}
