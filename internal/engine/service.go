package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"selfcare/internal/storage"
)

// Options tune the coordinator.
type Options struct {
	// AwardRepeatCompletions grants experience again when an already completed
	// mission is completed. This matches the behavior existing data was
	// produced with; disable it to make completion idempotent.
	AwardRepeatCompletions bool

	Logger *zap.Logger
	Now    func() time.Time
}

func DefaultOptions() Options {
	return Options{AwardRepeatCompletions: true}
}

// Service is the only writer of character progression. It ties the
// repositories of one user namespace together.
type Service struct {
	ns          storage.Namespace
	store       *storage.RecordStore
	missions    *storage.MissionRepo
	diaries     *storage.DiaryRepo
	characters  *storage.CharacterRepo
	templates   *storage.TemplateRepo
	preferences *storage.PreferenceRepo

	awardRepeats bool
	logger       *zap.Logger
	now          func() time.Time
}

// NewService scopes a service to user. A blank user is a ValidationError.
func NewService(store *storage.RecordStore, user string, opts Options) (*Service, error) {
	ns, err := storage.NamespaceFor(user)
	if err != nil {
		return nil, ValidationError{Field: "user", Reason: err.Error()}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Service{
		ns:           ns,
		store:        store,
		missions:     storage.NewMissionRepo(store, ns),
		diaries:      storage.NewDiaryRepo(store, ns),
		characters:   storage.NewCharacterRepo(store, ns),
		templates:    storage.NewTemplateRepo(store, ns),
		preferences:  storage.NewPreferenceRepo(store, ns),
		awardRepeats: opts.AwardRepeatCompletions,
		logger:       logger.With(zap.String("user", ns.User)),
		now:          now,
	}, nil
}

func (s *Service) Namespace() storage.Namespace            { return s.ns }
func (s *Service) MissionRepo() *storage.MissionRepo       { return s.missions }
func (s *Service) DiaryRepo() *storage.DiaryRepo           { return s.diaries }
func (s *Service) CharacterRepo() *storage.CharacterRepo   { return s.characters }
func (s *Service) PreferenceRepo() *storage.PreferenceRepo { return s.preferences }

func requireCategory(input string) (Category, error) {
	c, ok := ParseCategory(input)
	if !ok {
		return "", ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", input)}
	}
	return c, nil
}
