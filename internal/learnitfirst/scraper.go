package learnitfirst

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	httpclient "liforganiser/internal/http"
	"liforganiser/internal/model"
)

// DefaultBaseURL is the production site root.
const DefaultBaseURL = "http://www.learnitfirst.com"

// videosLinkText is the exact anchor text that leads from a course landing
// page to its video listing page.
const videosLinkText = "View the videos in this course"

// chapterLabelRe parses the "Chapter N:" label inside a chapter title
// block. Anything that does not match is treated as a structure change.
var chapterLabelRe = regexp.MustCompile(`^Chapter\s+(\d+):`)

// Scraper extracts course/chapter/lesson structure from LearnItFirst.com.
//
// A scrape is two fetches: the course landing page (for the title and the
// link to the video listing) and the listing page itself (for chapters and
// lessons). The page structure is assumed, not discovered; any missing
// landmark fails the whole scrape with a StructureChangedError rather than
// guessing.
//
// Example usage:
//
//	scraper := learnitfirst.NewScraper(httpclient.NewClient(""), "")
//	course, err := scraper.ScrapeCourse(ctx, 160)
//	var notFound *learnitfirst.NotFoundError
//	if errors.As(err, &notFound) {
//	    // the course ID does not exist
//	}
type Scraper struct {
	client  *httpclient.Client
	baseURL string
}

// NewScraper creates a scraper backed by client. An empty baseURL selects
// DefaultBaseURL; tests point it at a local server.
func NewScraper(client *httpclient.Client, baseURL string) *Scraper {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Scraper{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// ScrapeCourse fetches and assembles the course with the given ID.
//
// Failure modes:
//   - *NotFoundError when the course page answers 404
//   - *StructureChangedError when an expected landmark is absent
//   - *TransportError when a fetch fails outright
//
// There are no retries; every failure surfaces immediately.
func (s *Scraper) ScrapeCourse(ctx context.Context, courseID int) (*model.Course, error) {
	pageURL := fmt.Sprintf("%s/Course/%d/default.aspx", s.baseURL, courseID)

	doc, err := s.fetchDocument(ctx, pageURL)
	if err != nil {
		var status *httpclient.StatusError
		if errors.As(err, &status) && status.Code == http.StatusNotFound {
			return nil, &NotFoundError{CourseID: courseID}
		}
		return nil, err
	}

	heading := doc.Find("h1").First()
	if heading.Length() == 0 {
		return nil, &StructureChangedError{CourseID: courseID, Landmark: "course title heading is missing"}
	}
	title := model.ChapterName(courseID, strings.TrimSpace(heading.Text()))

	listURL, err := s.findVideosLink(doc, pageURL)
	if err != nil {
		return nil, &StructureChangedError{CourseID: courseID, Landmark: err.Error()}
	}

	listDoc, err := s.fetchDocument(ctx, listURL)
	if err != nil {
		return nil, err
	}

	chapters, err := s.parseChapters(listDoc, courseID)
	if err != nil {
		return nil, err
	}

	return &model.Course{ID: courseID, Title: title, Chapters: chapters}, nil
}

// fetchDocument GETs a page and parses it into a DOM. Transport failures
// are wrapped in TransportError; HTTP status errors pass through so the
// caller can branch on the code.
func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	page, err := s.client.GetString(ctx, pageURL)
	if err != nil {
		var status *httpclient.StatusError
		if errors.As(err, &status) {
			return nil, err
		}
		return nil, &TransportError{URL: pageURL, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, &TransportError{URL: pageURL, Err: err}
	}
	return doc, nil
}

// findVideosLink scans every anchor for the exact videos-listing link text
// and resolves its href against the course page URL.
func (s *Scraper) findVideosLink(doc *goquery.Document, pageURL string) (string, error) {
	var href string
	found := false

	doc.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.TrimSpace(sel.Text()) != videosLinkText {
			return true
		}
		href, found = sel.Attr("href")
		return !found
	})
	if !found {
		return "", fmt.Errorf("link %q is missing", videosLinkText)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("link %q is missing", videosLinkText)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("link %q has an unusable href %q", videosLinkText, href)
	}
	return base.ResolveReference(ref).String(), nil
}

func (s *Scraper) parseChapters(doc *goquery.Document, courseID int) (map[int]*model.Chapter, error) {
	blocks := doc.Find("div.chapterTitle")
	if blocks.Length() == 0 {
		return nil, &StructureChangedError{CourseID: courseID, Landmark: "no chapter title blocks on the video listing page"}
	}

	chapters := make(map[int]*model.Chapter, blocks.Length())
	var parseErr error

	blocks.EachWithBreak(func(_ int, block *goquery.Selection) bool {
		label := strings.TrimSpace(block.Find("h2 b").First().Text())
		m := chapterLabelRe.FindStringSubmatch(label)
		if m == nil {
			parseErr = &StructureChangedError{
				CourseID: courseID,
				Landmark: fmt.Sprintf("chapter label %q does not look like \"Chapter N:\"", label),
			}
			return false
		}
		num, _ := strconv.Atoi(m[1])

		rawName := strings.TrimSpace(block.Find("h2 a").First().Text())
		name := model.ChapterName(num, rawName)

		// The sibling block after the title holds one sub-block per lesson.
		lessonBlocks := block.NextAllFiltered("div").First().Find("div.chapterBorder")
		if lessonBlocks.Length() == 0 {
			parseErr = &StructureChangedError{
				CourseID: courseID,
				Landmark: fmt.Sprintf("chapter %d has no lesson blocks", num),
			}
			return false
		}

		lessons := make(map[int]*model.Lesson, lessonBlocks.Length())
		lessonBlocks.EachWithBreak(func(_ int, lessonBlock *goquery.Selection) bool {
			lesson, err := s.parseLesson(lessonBlock, courseID, num)
			if err != nil {
				parseErr = err
				return false
			}
			lessons[lesson.Number] = lesson
			return true
		})
		if parseErr != nil {
			return false
		}

		chapters[num] = &model.Chapter{Number: num, Name: name, Lessons: lessons}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return chapters, nil
}

// parseLesson reads one lesson sub-block: the first nested div carries a
// "<chapter>.<lesson>" label, the second a link with the display name.
func (s *Scraper) parseLesson(block *goquery.Selection, courseID, chapterNum int) (*model.Lesson, error) {
	divs := block.Find("div")
	label := strings.TrimSpace(divs.Eq(0).Text())

	prefix := fmt.Sprintf("%d.", chapterNum)
	rest, ok := strings.CutPrefix(label, prefix)
	if !ok {
		return nil, &StructureChangedError{
			CourseID: courseID,
			Landmark: fmt.Sprintf("lesson label %q does not start with %q", label, prefix),
		}
	}
	num, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return nil, &StructureChangedError{
			CourseID: courseID,
			Landmark: fmt.Sprintf("lesson label %q has a non-numeric lesson number", label),
		}
	}

	rawName := strings.TrimSpace(divs.Eq(1).Find("a").First().Text())
	return &model.Lesson{
		Number: num,
		Name:   model.LessonName(courseID, chapterNum, num, rawName),
	}, nil
}
