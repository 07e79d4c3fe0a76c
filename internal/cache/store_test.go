package cache

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"liforganiser/internal/model"
)

func testCourse() *model.Course {
	return &model.Course{
		ID:    160,
		Title: "160 - SQL Server 2008 Database Administration",
		Chapters: map[int]*model.Chapter{
			1: {
				Number: 1,
				Name:   "01 - Getting Started",
				Lessons: map[int]*model.Lesson{
					1: {Number: 1, Name: "s160ch01l01 - Introduction"},
					2: {Number: 2, Name: "s160ch01l02 - Setup"},
				},
			},
			2: {
				Number:  2,
				Name:    "02 - Security",
				Lessons: map[int]*model.Lesson{},
			},
		},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "course_data"))
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	return store
}

func TestRoundTrip(t *testing.T) {
	store := newTestStore(t)
	course := testCourse()

	if err := store.Save(course); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := store.Load(course.ID)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(course, loaded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, course)
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	course := testCourse()
	if err := store.Save(course); err != nil {
		t.Fatal(err)
	}

	course.Title = "160 - Renamed"
	if err := store.Save(course); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load(course.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Title != "160 - Renamed" {
		t.Errorf("Title = %q, want overwritten value", loaded.Title)
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Load(999)
	if !os.IsNotExist(err) {
		t.Errorf("Load() error = %v, want not-exist", err)
	}
}

func TestLoadInvalidContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "corrupt JSON",
			content: `{"course_id": 160,`,
		},
		{
			name:    "wrong type for chapters",
			content: `{"course_id":160,"title":"t","chapters":[1,2]}`,
		},
		{
			name:    "missing chapters",
			content: `{"course_id":160,"title":"t"}`,
		},
		{
			name:    "non-numeric chapter key",
			content: `{"course_id":160,"title":"t","chapters":{"one":{"name":"n","lessons":{}}}}`,
		},
		{
			name:    "chapter missing name",
			content: `{"course_id":160,"title":"t","chapters":{"1":{"lessons":{"1":"l"}}}}`,
		},
		{
			name:    "chapter missing lessons",
			content: `{"course_id":160,"title":"t","chapters":{"1":{"name":"n"}}}`,
		},
		{
			name:    "non-numeric lesson key",
			content: `{"course_id":160,"title":"t","chapters":{"1":{"name":"n","lessons":{"x":"l"}}}}`,
		},
		{
			name:    "wrong type for lesson name",
			content: `{"course_id":160,"title":"t","chapters":{"1":{"name":"n","lessons":{"1":5}}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			if err := os.WriteFile(store.Path(160), []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := store.Load(160)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadEmptyLessonsIsValid(t *testing.T) {
	// A chapter with a present but empty lessons map is well formed; only a
	// missing key invalidates the file.
	store := newTestStore(t)
	content := `{"course_id":160,"title":"t","chapters":{"1":{"name":"n","lessons":{}}}}`
	if err := os.WriteFile(store.Path(160), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	course, err := store.Load(160)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(course.Chapters[1].Lessons) != 0 {
		t.Errorf("expected empty lesson map, got %v", course.Chapters[1].Lessons)
	}
}
