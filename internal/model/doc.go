// Package model defines the core data structures shared by the scraper,
// the cache and the organiser.
//
// # Course hierarchy
//
// A Course owns Chapters keyed by chapter number; each Chapter owns Lessons
// keyed by lesson number. Numbers are unique within their parent. All names
// stored in the model are already normalized for filesystem use.
//
// # Name transformation
//
// ChapterName and LessonName turn raw display names scraped from the site
// into safe, sortable names:
//
//	model.ChapterName(5, "Intro")           // "05 - Intro"
//	model.LessonName(160, 1, 3, "Setup")    // "s160ch01l03 - Setup"
//
// Both apply a fixed ordered replacement table first ("/" becomes " & ",
// " - " becomes "; ") so the output never contains a character that is
// illegal in a file name or ambiguous with the numbering prefix.
package model
