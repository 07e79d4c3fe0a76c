// Package config provides configuration management for liforganiser.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//
// # Default Settings
//
// Use DefaultSettings() for sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Scrapes www.learnitfirst.com with a browser-like User-Agent
//	// Caches course data under the user cache dir
//	// Ignores .html files during organisation
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	// A missing file yields defaults, not an error
//
// # Saving Settings
//
//	settings.DestinationPath = "/media/courses"
//	err := settings.Save("/path/to/config.json")
//
// # Patterns
//
// ChapterPattern and LessonPattern are caller-supplied regular expressions
// matched anchored at the start of a name. The chapter pattern captures the
// chapter number in group 1; the lesson pattern captures the lesson number
// in group 1 and an optional description in group 2.
package config
