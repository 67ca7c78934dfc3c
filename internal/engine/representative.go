package engine

import (
	"context"

	"selfcare/internal/storage"
)

// SelectRepresentative picks the character to show first: the one in the
// preferred category, else the first of chars, else nil. chars is expected in
// the repository's default order.
func SelectRepresentative(chars []storage.Character, preferred string) *storage.Character {
	if len(chars) == 0 {
		return nil
	}
	if preferred != "" {
		for i := range chars {
			if chars[i].CategoryID == preferred {
				c := chars[i]
				return &c
			}
		}
	}
	c := chars[0]
	return &c
}

// Representative resolves the stored preference against the live characters.
func (s *Service) Representative(ctx context.Context) (*storage.Character, error) {
	chars, err := s.characters.List(ctx)
	if err != nil {
		return nil, err
	}
	pref, err := s.preferences.Get(ctx)
	if err != nil {
		return nil, err
	}
	return SelectRepresentative(chars, pref), nil
}

func (s *Service) SetRepresentativePreference(ctx context.Context, category string) (Category, error) {
	c, err := requireCategory(category)
	if err != nil {
		return "", err
	}
	if err := s.preferences.Set(ctx, string(c)); err != nil {
		return "", err
	}
	return c, nil
}
