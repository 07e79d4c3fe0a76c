package model

import "sort"

// Course is the top-level unit of scraped content, identified by an integer
// ID (LearnItFirst course IDs are three digits, 100-999).
//
// A Course is built once, by the scraper or by loading a cache file, and is
// never mutated afterwards. The organiser only reads from it.
//
// Example:
//
//	course := &model.Course{
//	    ID:    160,
//	    Title: "160 - SQL Server 2008 Database Administration",
//	    Chapters: map[int]*model.Chapter{
//	        1: {Number: 1, Name: "01 - Getting Started", Lessons: ...},
//	    },
//	}
type Course struct {
	// ID is the course's unique LearnItFirst identifier.
	ID int

	// Title is the normalized course title, already safe for use as a
	// directory name (see ChapterName).
	Title string

	// Chapters maps chapter number to chapter. Numbers are unique within
	// the course.
	Chapters map[int]*Chapter
}

// Chapter is an ordered grouping of lessons within a course.
type Chapter struct {
	// Number is the chapter's position, unique within its course.
	Number int

	// Name is the normalized chapter name, safe for use as a directory name.
	Name string

	// Lessons maps lesson number to lesson. Numbers are unique within
	// the chapter.
	Lessons map[int]*Lesson
}

// Lesson is a single unit of video/document content within a chapter.
type Lesson struct {
	// Number is the lesson's position, unique within its chapter.
	Number int

	// Name is the normalized lesson name, ready for use as a filename stem.
	Name string
}

// ChapterNumbers returns the course's chapter numbers in ascending order.
func (c *Course) ChapterNumbers() []int {
	nums := make([]int, 0, len(c.Chapters))
	for n := range c.Chapters {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// LessonCount returns the total number of lessons across all chapters.
func (c *Course) LessonCount() int {
	total := 0
	for _, ch := range c.Chapters {
		total += len(ch.Lessons)
	}
	return total
}

// LessonNumbers returns the chapter's lesson numbers in ascending order.
func (c *Chapter) LessonNumbers() []int {
	nums := make([]int, 0, len(c.Lessons))
	for n := range c.Lessons {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}
