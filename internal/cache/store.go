package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"liforganiser/internal/model"
)

// ErrInvalid marks cache content that does not match the expected course
// layout. It is a fallback signal, not a failure: callers re-scrape and
// overwrite the bad file. Test with errors.Is.
var ErrInvalid = errors.New("cache content does not match the expected course layout")

// Store is a flat-file course cache, one JSON file per course ID, used as a
// fetch-avoidance layer in front of the scraper.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating the directory if needed.
// Directory creation is explicit here rather than a package side effect so
// the caller decides when (and whether) the cache exists on disk.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the cache file path for a course ID.
func (s *Store) Path(courseID int) string {
	return filepath.Join(s.dir, strconv.Itoa(courseID)+".json")
}

// Load reads and validates the cached course for courseID.
//
// A missing file surfaces as an os.IsNotExist error. Malformed content
// (bad JSON, a non-numeric chapter or lesson key, a chapter without a name
// or without a lessons map) returns an error wrapping ErrInvalid, never a
// panic. It is up to the caller to fall back to a fresh scrape.
func (s *Store) Load(courseID int) (*model.Course, error) {
	data, err := os.ReadFile(s.Path(courseID))
	if err != nil {
		return nil, err
	}

	var record courseRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return record.toCourse()
}

// Save serializes and writes the course, overwriting any prior cache file
// for its ID.
func (s *Store) Save(course *model.Course) error {
	data, err := json.Marshal(newCourseRecord(course))
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path(course.ID), data, 0644)
}

// courseRecord is the serialized cache shape. Chapter and lesson numbers
// are stringified integer keys; they are parsed back on load and any
// non-numeric key invalidates the whole file.
type courseRecord struct {
	CourseID int                      `json:"course_id"`
	Title    string                   `json:"title"`
	Chapters map[string]chapterRecord `json:"chapters"`
}

type chapterRecord struct {
	Name    string            `json:"name"`
	Lessons map[string]string `json:"lessons"`
}

func newCourseRecord(course *model.Course) courseRecord {
	record := courseRecord{
		CourseID: course.ID,
		Title:    course.Title,
		Chapters: make(map[string]chapterRecord, len(course.Chapters)),
	}
	for num, chapter := range course.Chapters {
		lessons := make(map[string]string, len(chapter.Lessons))
		for lessonNum, lesson := range chapter.Lessons {
			lessons[strconv.Itoa(lessonNum)] = lesson.Name
		}
		record.Chapters[strconv.Itoa(num)] = chapterRecord{
			Name:    chapter.Name,
			Lessons: lessons,
		}
	}
	return record
}

func (r courseRecord) toCourse() (*model.Course, error) {
	if r.Chapters == nil {
		return nil, fmt.Errorf("%w: missing chapters", ErrInvalid)
	}

	chapters := make(map[int]*model.Chapter, len(r.Chapters))
	for key, chapter := range r.Chapters {
		num, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: non-numeric chapter key %q", ErrInvalid, key)
		}
		if chapter.Name == "" {
			return nil, fmt.Errorf("%w: chapter %d has no name", ErrInvalid, num)
		}
		if chapter.Lessons == nil {
			return nil, fmt.Errorf("%w: chapter %d has no lessons key", ErrInvalid, num)
		}

		lessons := make(map[int]*model.Lesson, len(chapter.Lessons))
		for lessonKey, name := range chapter.Lessons {
			lessonNum, err := strconv.Atoi(lessonKey)
			if err != nil {
				return nil, fmt.Errorf("%w: non-numeric lesson key %q in chapter %d", ErrInvalid, lessonKey, num)
			}
			lessons[lessonNum] = &model.Lesson{Number: lessonNum, Name: name}
		}
		chapters[num] = &model.Chapter{Number: num, Name: chapter.Name, Lessons: lessons}
	}

	return &model.Course{ID: r.CourseID, Title: r.Title, Chapters: chapters}, nil
}
