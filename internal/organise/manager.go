package organise

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"liforganiser/internal/cache"
	"liforganiser/internal/config"
	httpclient "liforganiser/internal/http"
	"liforganiser/internal/learnitfirst"
	"liforganiser/internal/model"
)

// Manager wires the cache, the scraper and the organiser together behind
// the two operations the front ends need: get a course (cache first, scrape
// on miss) and organise a source directory against it.
type Manager struct {
	settings  *config.Settings
	store     *cache.Store
	scraper   *learnitfirst.Scraper
	organiser *Organiser

	onProgress func(ProgressEvent)
}

// NewManager creates a Manager from settings. The cache directory is
// created here, not at import time. onProgress may be nil.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) (*Manager, error) {
	store, err := cache.NewStore(settings.CacheDir)
	if err != nil {
		return nil, err
	}

	client := httpclient.NewClient(settings.UserAgent)
	return &Manager{
		settings:   settings,
		store:      store,
		scraper:    learnitfirst.NewScraper(client, settings.BaseURL),
		organiser:  NewOrganiser(onProgress),
		onProgress: onProgress,
	}, nil
}

// GetCourse returns the course with the given ID, from the cache when a
// valid cache file exists, otherwise by scraping (which also refreshes the
// cache). Malformed cache content is never fatal: it is reported and the
// course is re-scraped.
func (m *Manager) GetCourse(ctx context.Context, courseID int) (*model.Course, error) {
	if courseID <= 0 {
		return nil, fmt.Errorf("course ID must be positive, got %d", courseID)
	}

	course, err := m.store.Load(courseID)
	if err == nil {
		m.progress(LevelInfo, "Loaded course %d from cache (%s)", courseID, m.store.Path(courseID))
		return course, nil
	}
	if errors.Is(err, cache.ErrInvalid) {
		m.progress(LevelWarning, "Cache for course %d is malformed and will be replaced: %v", courseID, err)
	} else if !os.IsNotExist(err) {
		m.progress(LevelWarning, "Could not read cache for course %d: %v", courseID, err)
	}

	return m.RefreshCourse(ctx, courseID)
}

// RefreshCourse scrapes the course unconditionally, bypassing any cached
// copy, and overwrites the cache on success. Use it when the cache is
// suspected to be stale or corrupt.
func (m *Manager) RefreshCourse(ctx context.Context, courseID int) (*model.Course, error) {
	m.progress(LevelVerbose, "Scraping course %d from LearnItFirst.com", courseID)

	course, err := m.scraper.ScrapeCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(course); err != nil {
		// The cache is a fetch-avoidance layer; a failed write does not
		// invalidate a successful scrape.
		m.progress(LevelWarning, "Could not write cache for course %d: %v", courseID, err)
	}

	m.progress(LevelSuccess, "Scraped course %d: %s (%d chapters, %d lessons)",
		courseID, course.Title, len(course.Chapters), course.LessonCount())
	return course, nil
}

// Organise runs the organiser for course using the manager's settings.
func (m *Manager) Organise(course *model.Course) error {
	opts, err := optionsFromSettings(m.settings)
	if err != nil {
		return err
	}
	return m.organiser.Organise(course, opts)
}

// optionsFromSettings compiles the configured patterns and maps settings
// onto organiser options.
func optionsFromSettings(s *config.Settings) (Options, error) {
	chapterRe, err := regexp.Compile(s.ChapterPattern)
	if err != nil {
		return Options{}, fmt.Errorf("invalid chapter pattern %q: %w", s.ChapterPattern, err)
	}
	lessonRe, err := regexp.Compile(s.LessonPattern)
	if err != nil {
		return Options{}, fmt.Errorf("invalid lesson pattern %q: %w", s.LessonPattern, err)
	}

	return Options{
		Source:              s.SourcePath,
		Destination:         s.DestinationPath,
		ChapterPattern:      chapterRe,
		LessonPattern:       lessonRe,
		VideoDestination:    s.VideoPath,
		DocumentDestination: s.DocumentPath,
		CompletedPrefix:     s.CompletedPrefix,
		IgnoredExtensions:   s.IgnoredExtensions,
	}, nil
}

func (m *Manager) progress(level ProgressLevel, format string, args ...any) {
	if m.onProgress != nil {
		m.onProgress(ProgressEvent{Message: fmt.Sprintf(format, args...), Level: level})
	}
}
