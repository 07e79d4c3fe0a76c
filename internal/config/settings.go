package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds all configuration options.
type Settings struct {
	// Scrape settings
	BaseURL   string `json:"base_url"`
	UserAgent string `json:"user_agent"`
	CacheDir  string `json:"cache_dir"`

	// Organise settings
	SourcePath      string `json:"source_path"`
	DestinationPath string `json:"destination_path"`
	ChapterPattern  string `json:"chapter_pattern"`
	LessonPattern   string `json:"lesson_pattern"`

	// Optional destination overrides; empty means DestinationPath.
	VideoPath    string `json:"video_path"`
	DocumentPath string `json:"document_path"`

	// CompletedPrefix, when non-empty, is prepended to a source chapter
	// entry after its files have been moved so the next run skips it.
	CompletedPrefix string `json:"completed_prefix"`

	// IgnoredExtensions lists extensions (without the dot) that are never
	// moved or counted.
	IgnoredExtensions []string `json:"ignored_extensions"`
}

// DefaultSettings returns settings with default values.
//
// Patterns are matched anchored at the start of the entry name. The chapter
// pattern's first capture group must be the chapter number; the lesson
// pattern's first group is the lesson number and its second group the
// free-text description.
func DefaultSettings() *Settings {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = "."
	}
	return &Settings{
		BaseURL:   "http://www.learnitfirst.com",
		UserAgent: "Chromium/Linux",
		CacheDir:  filepath.Join(cacheDir, "liforg"),

		ChapterPattern: `Chapter (\d+)`,
		LessonPattern:  `(\d+)\.\s*(.*)\.\w+$`,

		IgnoredExtensions: []string{"html"},
	}
}

// Load reads settings from a JSON file. A missing file is not an error:
// defaults are returned, matching first-run behaviour. Values absent from
// the file keep their defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file, creating parent directories as
// needed.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
