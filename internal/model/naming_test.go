package model

import (
	"strings"
	"testing"
)

func TestChapterName(t *testing.T) {
	tests := []struct {
		num  int
		name string
		want string
	}{
		{5, "Intro", "05 - Intro"},
		{1, "Getting Started", "01 - Getting Started"},
		{12, "Backup/Restore", "12 - Backup & Restore"},
		{3, "Indexes - Deep Dive", "03 - Indexes; Deep Dive"},
		{160, "SQL Server 2008", "160 - SQL Server 2008"},
		{7, "", "07 - "},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := ChapterName(tt.num, tt.name); got != tt.want {
				t.Errorf("ChapterName(%d, %q) = %q, want %q", tt.num, tt.name, got, tt.want)
			}
		})
	}
}

func TestLessonName(t *testing.T) {
	tests := []struct {
		courseID   int
		chapterNum int
		lessonNum  int
		name       string
		want       string
	}{
		{160, 1, 3, "Setup", "s160ch01l03 - Setup"},
		{100, 1, 1, "Introduction", "s100ch01l01 - Introduction"},
		{999, 12, 34, "GRANT/DENY", "s999ch12l34 - GRANT & DENY"},
		{160, 2, 5, "", "s160ch02l05 - "},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := LessonName(tt.courseID, tt.chapterNum, tt.lessonNum, tt.name)
			if got != tt.want {
				t.Errorf("LessonName(%d, %d, %d, %q) = %q, want %q",
					tt.courseID, tt.chapterNum, tt.lessonNum, tt.name, got, tt.want)
			}
		})
	}
}

func TestNameSeparatorNeverSurvives(t *testing.T) {
	// The raw " - " separator must never appear in the cleaned part of the
	// name, only in the numbering prefix added afterwards.
	inputs := []string{
		"A - B",
		"A - B - C",
		" - leading",
		"trailing - ",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			got := ChapterName(1, in)
			cleaned := strings.TrimPrefix(got, "01 - ")
			if strings.Contains(cleaned, " - ") {
				t.Errorf("ChapterName(1, %q) = %q, cleaned part still contains \" - \"", in, got)
			}
		})
	}
}

func TestCourseHelpers(t *testing.T) {
	course := &Course{
		ID:    160,
		Title: "160 - Test",
		Chapters: map[int]*Chapter{
			2: {Number: 2, Name: "02 - Two", Lessons: map[int]*Lesson{
				3: {Number: 3, Name: "s160ch02l03 - C"},
				1: {Number: 1, Name: "s160ch02l01 - A"},
			}},
			1: {Number: 1, Name: "01 - One", Lessons: map[int]*Lesson{
				1: {Number: 1, Name: "s160ch01l01 - A"},
			}},
		},
	}

	if got := course.ChapterNumbers(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("ChapterNumbers() = %v, want [1 2]", got)
	}
	if got := course.LessonCount(); got != 3 {
		t.Errorf("LessonCount() = %d, want 3", got)
	}
	if got := course.Chapters[2].LessonNumbers(); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("LessonNumbers() = %v, want [1 3]", got)
	}
}
