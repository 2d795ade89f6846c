// Package catalog holds the static language and avatar catalogs. Both
// are load-once, read-only data: a language change on a video requires a
// new record, never a catalog mutation.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"newsanchor/api-gateway/models"
)

type Catalog struct {
	Languages []models.LanguageOption `yaml:"languages"`
	Avatars   []models.AvatarTemplate `yaml:"avatars"`

	langIndex   map[string]models.LanguageOption
	avatarIndex map[string]models.AvatarTemplate
}

// Default returns the built-in catalog used when no catalog file is
// configured. The set matches what the production renderers support.
func Default() *Catalog {
	c := &Catalog{
		Languages: []models.LanguageOption{
			{Code: "pt-BR", DisplayName: "Português (Brasil)", FlagGlyph: "🇧🇷", VoiceName: "camila"},
			{Code: "en-US", DisplayName: "English (US)", FlagGlyph: "🇺🇸", VoiceName: "matthew"},
			{Code: "es-ES", DisplayName: "Español", FlagGlyph: "🇪🇸", VoiceName: "lucia"},
			{Code: "fr-FR", DisplayName: "Français", FlagGlyph: "🇫🇷", VoiceName: "lea"},
			{Code: "de-DE", DisplayName: "Deutsch", FlagGlyph: "🇩🇪", VoiceName: "vicki"},
		},
		Avatars: []models.AvatarTemplate{
			{ID: "dark_anchor", Name: "Dark Anchor", Description: "Studio anchor, dark set", Style: "news"},
			{ID: "light_anchor", Name: "Light Anchor", Description: "Studio anchor, light set", Style: "news"},
			{ID: "casual_host", Name: "Casual Host", Description: "Informal presenter", Style: "casual"},
		},
	}
	c.buildIndexes()
	return c
}

// Load reads a catalog from a YAML file. A missing file falls back to
// the built-in defaults; a malformed file is an error because serving a
// partial catalog would let dispatches through with unknown voices.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	defer f.Close()

	c := &Catalog{}
	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if len(c.Languages) == 0 || len(c.Avatars) == 0 {
		return nil, fmt.Errorf("catalog %s must define at least one language and one avatar", path)
	}
	c.buildIndexes()
	return c, nil
}

func (c *Catalog) buildIndexes() {
	c.langIndex = make(map[string]models.LanguageOption, len(c.Languages))
	for _, l := range c.Languages {
		c.langIndex[l.Code] = l
	}
	c.avatarIndex = make(map[string]models.AvatarTemplate, len(c.Avatars))
	for _, a := range c.Avatars {
		c.avatarIndex[a.ID] = a
	}
}

// Language looks up a language option by code.
func (c *Catalog) Language(code string) (models.LanguageOption, bool) {
	l, ok := c.langIndex[code]
	return l, ok
}

// Avatar looks up an avatar template by id.
func (c *Catalog) Avatar(id string) (models.AvatarTemplate, bool) {
	a, ok := c.avatarIndex[id]
	return a, ok
}
