package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if settings.BaseURL != "http://www.learnitfirst.com" {
		t.Errorf("BaseURL = %q, want default", settings.BaseURL)
	}
	if len(settings.IgnoredExtensions) != 1 || settings.IgnoredExtensions[0] != "html" {
		t.Errorf("IgnoredExtensions = %v, want [html]", settings.IgnoredExtensions)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"source_path": "/downloads", "completed_prefix": "DONE - "}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if settings.SourcePath != "/downloads" {
		t.Errorf("SourcePath = %q, want %q", settings.SourcePath, "/downloads")
	}
	if settings.CompletedPrefix != "DONE - " {
		t.Errorf("CompletedPrefix = %q, want %q", settings.CompletedPrefix, "DONE - ")
	}
	// Untouched fields keep defaults.
	if settings.UserAgent != "Chromium/Linux" {
		t.Errorf("UserAgent = %q, want default", settings.UserAgent)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	settings := DefaultSettings()
	settings.SourcePath = "/src"
	settings.DestinationPath = "/dst"
	settings.VideoPath = "/videos"

	if err := settings.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.SourcePath != "/src" || loaded.DestinationPath != "/dst" || loaded.VideoPath != "/videos" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}
