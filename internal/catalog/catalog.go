// Package catalog holds the read-only mission and character templates used to
// set up a new account.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtin []byte

type MissionTemplate struct {
	MissionID   string `yaml:"mission_id"`
	CategoryID  string `yaml:"category_id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Experience  int    `yaml:"experience"`
}

type CharacterTemplate struct {
	CategoryID string `yaml:"category_id"`
	Name       string `yaml:"name"`
	Title      string `yaml:"title"`
}

type Catalog struct {
	Characters []CharacterTemplate `yaml:"characters"`
	Missions   []MissionTemplate   `yaml:"missions"`
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(builtin)
}

// Load reads a catalog file; an empty path means the built-in one.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks ids are present and unique, rewards are non-negative, and
// every mission belongs to a category that has a character.
func (c *Catalog) Validate() error {
	cats := map[string]bool{}
	for _, ch := range c.Characters {
		if ch.CategoryID == "" {
			return fmt.Errorf("catalog: character without category_id")
		}
		if cats[ch.CategoryID] {
			return fmt.Errorf("catalog: duplicate character category %q", ch.CategoryID)
		}
		cats[ch.CategoryID] = true
	}
	ids := map[string]bool{}
	for _, m := range c.Missions {
		if m.MissionID == "" {
			return fmt.Errorf("catalog: mission without mission_id")
		}
		if ids[m.MissionID] {
			return fmt.Errorf("catalog: duplicate mission_id %q", m.MissionID)
		}
		ids[m.MissionID] = true
		if m.Experience < 0 {
			return fmt.Errorf("catalog: mission %q has negative experience", m.MissionID)
		}
		if !cats[m.CategoryID] {
			return fmt.Errorf("catalog: mission %q uses unknown category %q", m.MissionID, m.CategoryID)
		}
	}
	return nil
}
