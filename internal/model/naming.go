package model

import (
	"fmt"
	"strings"
)

// nameReplacements are applied in order to raw display names before any
// numbering prefix is added. The slash is illegal in file names on every
// platform we care about; " - " would be ambiguous with the numbering
// prefix's own separator, so it becomes "; ".
var nameReplacements = [...]struct{ old, new string }{
	{"/", " & "},
	{" - ", "; "},
}

func cleanName(name string) string {
	for _, r := range nameReplacements {
		name = strings.ReplaceAll(name, r.old, r.new)
	}
	return name
}

// ChapterName builds a filesystem-safe, sortable chapter-level name:
// a zero-padded two-digit number, a separator, and the cleaned raw name.
//
//	ChapterName(5, "Intro")            // "05 - Intro"
//	ChapterName(12, "Backup/Restore")  // "12 - Backup & Restore"
//
// Course titles use the same format with the course ID as the number.
// The function is pure and total: it never fails for any printable input.
func ChapterName(num int, name string) string {
	return fmt.Sprintf("%02d - %s", num, cleanName(name))
}

// LessonName builds a filesystem-safe lesson-level name stem carrying the
// full course/chapter/lesson position so files sort and group correctly
// even when mixed into one directory:
//
//	LessonName(160, 1, 3, "Setup")  // "s160ch01l03 - Setup"
//
// Like ChapterName it is pure and total.
func LessonName(courseID, chapterNum, lessonNum int, name string) string {
	return fmt.Sprintf("s%03dch%02dl%02d - %s", courseID, chapterNum, lessonNum, cleanName(name))
}
