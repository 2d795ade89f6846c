package models

// LanguageOption is a static catalog entry for a supported dubbing
// language. Loaded once at startup, read-only afterwards.
type LanguageOption struct {
	Code        string `json:"code" yaml:"code"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	FlagGlyph   string `json:"flag_glyph" yaml:"flag_glyph"`
	VoiceName   string `json:"voice_name" yaml:"voice_name"`
}

// AvatarTemplate is a static catalog entry for a preset visual/vocal
// persona used to render narrated video.
type AvatarTemplate struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	Style        string `json:"style" yaml:"style"`
	ThumbnailRef string `json:"thumbnail_ref" yaml:"thumbnail_ref"`
}
