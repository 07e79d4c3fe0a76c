package organise

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	ioutils "liforganiser/internal/io"
	"liforganiser/internal/model"
)

const (
	videoExt = "avi"
	docExt   = "pdf"

	// scratchDirName is the shared extraction area for archive chapter
	// entries, created inside the source directory on first use and
	// deleted at the end of the run.
	scratchDirName = ".temp"
)

// InvalidPathError is a fatal precondition failure: a required directory
// argument does not exist.
type InvalidPathError struct {
	Role string
	Path string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid or non-existent %s directory: %s", e.Role, e.Path)
}

// Options configures a single organise run.
type Options struct {
	// Source is the directory containing chapter directories or archives.
	Source string

	// Destination receives all relocated files by default.
	Destination string

	// ChapterPattern matches a valid chapter entry name, anchored at the
	// start; capture group 1 is the chapter number.
	ChapterPattern *regexp.Regexp

	// LessonPattern matches a lesson file name, anchored at the start;
	// capture group 1 is the lesson number, group 2 an optional free-text
	// description.
	LessonPattern *regexp.Regexp

	// VideoDestination, when non-empty, receives video files instead of
	// Destination. DocumentDestination does the same for documents. Both
	// preserve the destination-relative subpath.
	VideoDestination    string
	DocumentDestination string

	// CompletedPrefix, when non-empty, is prepended to a source entry's
	// name after its files have been moved, so re-running skips it via
	// pattern mismatch.
	CompletedPrefix string

	// IgnoredExtensions lists extensions (lower-case, no dot) excluded
	// from both the move set and the completeness check. Nil selects the
	// default of just the page-markup extension, "html".
	IgnoredExtensions []string
}

// relocatableFile is one candidate move, produced during a chapter scan and
// consumed immediately after the chapter passes validation.
type relocatableFile struct {
	ext       string
	matched   bool // name matched the lesson pattern with a numeric lesson
	lessonNum int
	src       string
	dst       string
}

// Organiser matches on-disk chapter files against a scraped course model,
// renames them, and moves them into the canonical layout
// <dst>/<course title>/<chapter name>/...
//
// Reconciliation is per chapter and all-or-nothing: candidates are
// collected first, the lesson set is validated as a unit, and only then is
// anything moved. A chapter that fails validation is logged and left
// untouched while the run continues with the next entry.
type Organiser struct {
	onProgress func(ProgressEvent)
}

// NewOrganiser creates an Organiser reporting through onProgress, which
// may be nil.
func NewOrganiser(onProgress func(ProgressEvent)) *Organiser {
	return &Organiser{onProgress: onProgress}
}

// Organise runs the reconcile-and-relocate pipeline for course over
// opts.Source.
//
// Fatal errors are limited to invalid directory preconditions, an
// unreadable source directory, and failures while committing moves.
// Everything chapter-scoped (an archive that will not extract, a lesson
// number missing from the model, a lesson-set mismatch) is logged and
// skips that chapter only.
func (o *Organiser) Organise(course *model.Course, opts Options) error {
	opts, err := o.resolveOptions(opts)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(opts.Source)
	if err != nil {
		return fmt.Errorf("reading source directory %s: %w", opts.Source, err)
	}

	scratch := filepath.Join(opts.Source, scratchDirName)
	scratchCreated := false
	defer func() {
		if !scratchCreated {
			return
		}
		o.progress(LevelInfo, "Deleting the scratch extraction directory %s", scratch)
		if err := ioutils.RemoveTree(scratch); err != nil {
			o.progress(LevelWarning, "Could not delete scratch directory %s: %v", scratch, err)
		}
	}()

	for _, entry := range entries {
		name := entry.Name()
		m := matchAnchored(opts.ChapterPattern, name)
		if m == nil {
			continue
		}
		chapterNum, err := strconv.Atoi(m[1])
		if err != nil {
			o.progress(LevelWarning, "Chapter pattern matched %q but group 1 (%q) is not a number; skipping", name, m[1])
			continue
		}

		originalPath := filepath.Join(opts.Source, name)
		o.progress(LevelVerbose, "Found chapter entry %s", originalPath)

		contentRoot := originalPath
		switch {
		case isZipFile(originalPath):
			if !scratchCreated {
				if err := ioutils.EnsureDir(scratch); err != nil {
					return fmt.Errorf("creating scratch directory %s: %w", scratch, err)
				}
				scratchCreated = true
				o.progress(LevelInfo, "Created scratch directory for extracted archives: %s", scratch)
			}
			contentRoot = filepath.Join(scratch, name)
			o.progress(LevelInfo, "Chapter %d is an archive; extracting (this may take a while)", chapterNum)
			if err := extractZip(originalPath, contentRoot); err != nil {
				o.progress(LevelError, "Could not extract %s: %v; this chapter will be skipped", originalPath, err)
				continue
			}
		case !entry.IsDir():
			// Plain file that happens to match the chapter pattern.
			continue
		}

		chapter := course.Chapters[chapterNum]
		if chapter == nil {
			o.progress(LevelError, "Chapter %d is not part of course %d; this chapter will be skipped", chapterNum, course.ID)
			continue
		}

		files, ok := o.collectChapterFiles(course, chapter, contentRoot, opts)
		if !ok {
			continue
		}

		if !lessonSetsMatch(chapter, files) {
			o.progress(LevelError,
				"The video contents for chapter %d differ from the lessons on record (want %v); this chapter will be skipped",
				chapterNum, chapter.LessonNumbers())
			continue
		}

		if err := o.commitMoves(files); err != nil {
			return err
		}

		if opts.CompletedPrefix != "" {
			renamed := filepath.Join(opts.Source, opts.CompletedPrefix+name)
			o.progress(LevelVerbose, "Marking chapter %d as completed: renaming %s", chapterNum, originalPath)
			if err := os.Rename(originalPath, renamed); err != nil {
				o.progress(LevelWarning, "Could not rename completed entry %s: %v", originalPath, err)
			}
		}
	}

	return nil
}

// resolveOptions validates the directory preconditions and fills defaults.
func (o *Organiser) resolveOptions(opts Options) (Options, error) {
	for _, check := range []struct {
		role string
		path string
	}{
		{"source", opts.Source},
		{"destination", opts.Destination},
		{"video destination", opts.VideoDestination},
		{"document destination", opts.DocumentDestination},
	} {
		if check.path == "" {
			if check.role == "source" || check.role == "destination" {
				return opts, &InvalidPathError{Role: check.role, Path: check.path}
			}
			continue
		}
		if info, err := os.Stat(check.path); err != nil || !info.IsDir() {
			return opts, &InvalidPathError{Role: check.role, Path: check.path}
		}
	}

	if opts.VideoDestination == "" {
		opts.VideoDestination = opts.Destination
	}
	if opts.DocumentDestination == "" {
		opts.DocumentDestination = opts.Destination
	}
	if opts.IgnoredExtensions == nil {
		opts.IgnoredExtensions = []string{"html"}
	}
	return opts, nil
}

// collectChapterFiles walks the chapter's content root and builds the
// candidate move list. It returns ok=false when the chapter must be
// abandoned (a matched video/document maps to a lesson number the model
// does not know, which is a sign the file set may be mismatched).
func (o *Organiser) collectChapterFiles(course *model.Course, chapter *model.Chapter, root string, opts Options) ([]relocatableFile, bool) {
	ignored := make(map[string]struct{}, len(opts.IgnoredExtensions))
	for _, ext := range opts.IgnoredExtensions {
		ignored[strings.ToLower(ext)] = struct{}{}
	}

	var files []relocatableFile
	contentsPath := ""

	visit := func(path string) bool {
		fileName := filepath.Base(path)
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))

		// The first directory found to contain files is the chapter's
		// content path; anything deeper keeps its relative subpath.
		// Ignored files still anchor the content path, they just never
		// move.
		dir := filepath.Dir(path)
		if contentsPath == "" {
			contentsPath = dir
		}

		if _, skip := ignored[ext]; skip {
			return true
		}

		destRel := filepath.Join(course.Title, chapter.Name)
		if dir != contentsPath {
			if rel, err := filepath.Rel(contentsPath, dir); err == nil {
				destRel = filepath.Join(destRel, rel)
			}
		}

		m := matchAnchored(opts.LessonPattern, fileName)
		if m == nil {
			o.progress(LevelVerbose, "%s does not match the lesson name format; it will be moved but not renamed", fileName)
			files = append(files, relocatableFile{
				ext: ext,
				src: path,
				dst: filepath.Join(opts.Destination, destRel, fileName),
			})
			return true
		}

		num, err := strconv.Atoi(m[1])
		if err != nil {
			o.progress(LevelWarning, "Lesson pattern matched %q but group 1 (%q) is not a number; moving unrenamed", fileName, m[1])
			files = append(files, relocatableFile{
				ext: ext,
				src: path,
				dst: filepath.Join(opts.Destination, destRel, fileName),
			})
			return true
		}

		if ext == videoExt || ext == docExt {
			lesson := chapter.Lessons[num]
			if lesson == nil {
				o.progress(LevelError,
					"Lesson %d of chapter %d is not on record; this chapter will be skipped in case the other files are mixed up",
					num, chapter.Number)
				return false
			}
			destRoot := opts.VideoDestination
			if ext == docExt {
				destRoot = opts.DocumentDestination
			}
			files = append(files, relocatableFile{
				ext:       ext,
				matched:   true,
				lessonNum: num,
				src:       path,
				dst:       filepath.Join(destRoot, destRel, lesson.Name+"."+ext),
			})
			return true
		}

		description := ""
		if len(m) > 2 {
			description = strings.TrimSpace(m[2])
		}
		if description == "" {
			o.progress(LevelWarning, "File name %q carries no description; the renamed file will be non-descript", fileName)
		}
		newName := model.LessonName(course.ID, chapter.Number, num, description)
		if ext != "" {
			newName += "." + ext
		}
		files = append(files, relocatableFile{
			ext:       ext,
			matched:   true,
			lessonNum: num,
			src:       path,
			dst:       filepath.Join(opts.Destination, destRel, newName),
		})
		return true
	}

	if !o.walkFilesFirst(root, visit) {
		return nil, false
	}
	return files, true
}

// walkFilesFirst visits every file under dir, handing a directory's files
// to visit before descending into its subdirectories, so the shallowest
// directory containing files is always seen first. Returns false as soon
// as visit does.
func (o *Organiser) walkFilesFirst(dir string, visit func(path string) bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		o.progress(LevelWarning, "Could not read %s: %v", dir, err)
		return true
	}

	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, filepath.Join(dir, entry.Name()))
			continue
		}
		if !visit(filepath.Join(dir, entry.Name())) {
			return false
		}
	}
	for _, sub := range subdirs {
		if !o.walkFilesFirst(sub, visit) {
			return false
		}
	}
	return true
}

// lessonSetsMatch reports whether the lesson numbers found among matched
// video candidates exactly equal the chapter's lesson numbers on record.
// Missing and extra numbers both fail.
func lessonSetsMatch(chapter *model.Chapter, files []relocatableFile) bool {
	found := make(map[int]struct{})
	for _, f := range files {
		if f.ext == videoExt && f.matched {
			found[f.lessonNum] = struct{}{}
		}
	}
	if len(found) != len(chapter.Lessons) {
		return false
	}
	for num := range chapter.Lessons {
		if _, ok := found[num]; !ok {
			return false
		}
	}
	return true
}

func (o *Organiser) commitMoves(files []relocatableFile) error {
	for _, f := range files {
		o.progress(LevelInfo, "Moving %s to %s", f.src, f.dst)
		if err := ioutils.EnsureDir(filepath.Dir(f.dst)); err != nil {
			return fmt.Errorf("creating destination directory for %s: %w", f.dst, err)
		}
		if err := ioutils.MoveFile(f.src, f.dst); err != nil {
			return fmt.Errorf("moving %s to %s: %w", f.src, f.dst, err)
		}
	}
	return nil
}

// matchAnchored applies re at the start of s only, regardless of whether
// the pattern itself is anchored.
func matchAnchored(re *regexp.Regexp, s string) []string {
	loc := re.FindStringIndex(s)
	if loc == nil || loc[0] != 0 {
		return nil
	}
	return re.FindStringSubmatch(s)
}

func (o *Organiser) progress(level ProgressLevel, format string, args ...any) {
	if o.onProgress != nil {
		o.onProgress(ProgressEvent{Message: fmt.Sprintf(format, args...), Level: level})
	}
}
