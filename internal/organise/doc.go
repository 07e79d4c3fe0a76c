// Package organise reconciles pre-downloaded course files against a
// scraped course model and relocates them into the canonical layout
//
//	<dst>/<course title>/<chapter name>/[subpath/]<renamed file>
//
// # Manager
//
// The Manager is the orchestration layer the CLI and TUI talk to:
//
//	manager, err := organise.NewManager(settings, func(e organise.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//	course, err := manager.GetCourse(ctx, 160) // cache first, scrape on miss
//	err = manager.Organise(course)
//
// # Reconciliation
//
// Organising is per chapter and all-or-nothing. For each source entry
// matching the chapter pattern, candidate moves are collected (archives are
// extracted into a shared scratch directory first), then the lesson numbers
// found among matched video files are compared with the model as a unit.
// Only a chapter whose sets match exactly has its files moved; anything
// else is logged and left untouched while the run continues. Matched video
// and document files take the scraped lesson name; other matched files are
// renamed through the lesson-level name transformer; unmatched files move
// unrenamed.
//
// # Progress
//
// All reporting goes through a ProgressEvent callback handed in at
// construction. Levels mirror typical log severities plus Success; the
// front ends decide rendering and verbosity filtering.
//
// # Single run at a time
//
// The scratch extraction directory lives inside the source directory and
// is shared across the chapters of one run, then deleted. Two concurrent
// runs over the same source are not safe.
package organise
