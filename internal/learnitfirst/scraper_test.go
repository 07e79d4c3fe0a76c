package learnitfirst

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	httpclient "liforganiser/internal/http"
)

const coursePage = `<html><body>
<h1> SQL Server 2008/R2 Database Administration </h1>
<p><a href="/Course/160/Syllabus.aspx">Syllabus</a></p>
<p><a href="TheBigList.aspx"> View the videos in this course </a></p>
</body></html>`

const listingPage = `<html><body>
<div class="chapterTitle"><h2><b>Chapter 1:</b> <a href="#">Getting Started</a></h2></div>
<div>
  <div class="chapterBorder"><div>1.1</div><div><a href="#">Introduction</a></div></div>
  <div class="chapterBorder"><div>1.2</div><div><a href="#">Installing/Configuring</a></div></div>
</div>
<div class="chapterTitle"><h2><b>Chapter 2:</b> <a href="#">Security - The Basics</a></h2></div>
<div>
  <div class="chapterBorder"><div>2.1</div><div><a href="#">Logins</a></div></div>
</div>
</body></html>`

// newTestSite serves a course landing page and its video listing, counting
// requests so cache tests elsewhere can assert fetch avoidance.
func newTestSite(t *testing.T, course, listing string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/Course/160/default.aspx", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "Chromium/Linux" {
			t.Errorf("User-Agent = %q, want browser-like header", r.Header.Get("User-Agent"))
		}
		fmt.Fprint(w, course)
	})
	mux.HandleFunc("/Course/160/TheBigList.aspx", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listing)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestScraper(baseURL string) *Scraper {
	return NewScraper(httpclient.NewClient(""), baseURL)
}

func TestScrapeCourse(t *testing.T) {
	server := newTestSite(t, coursePage, listingPage)
	scraper := newTestScraper(server.URL)

	course, err := scraper.ScrapeCourse(context.Background(), 160)
	if err != nil {
		t.Fatalf("ScrapeCourse() error: %v", err)
	}

	if course.ID != 160 {
		t.Errorf("ID = %d, want 160", course.ID)
	}
	if want := "160 - SQL Server 2008 & R2 Database Administration"; course.Title != want {
		t.Errorf("Title = %q, want %q", course.Title, want)
	}
	if len(course.Chapters) != 2 {
		t.Fatalf("chapter count = %d, want 2", len(course.Chapters))
	}

	ch1 := course.Chapters[1]
	if ch1 == nil || ch1.Name != "01 - Getting Started" {
		t.Fatalf("chapter 1 = %+v, want name %q", ch1, "01 - Getting Started")
	}
	if len(ch1.Lessons) != 2 {
		t.Fatalf("chapter 1 lesson count = %d, want 2", len(ch1.Lessons))
	}
	if want := "s160ch01l01 - Introduction"; ch1.Lessons[1].Name != want {
		t.Errorf("lesson 1.1 name = %q, want %q", ch1.Lessons[1].Name, want)
	}
	if want := "s160ch01l02 - Installing & Configuring"; ch1.Lessons[2].Name != want {
		t.Errorf("lesson 1.2 name = %q, want %q", ch1.Lessons[2].Name, want)
	}

	ch2 := course.Chapters[2]
	if ch2 == nil || ch2.Name != "02 - Security; The Basics" {
		t.Fatalf("chapter 2 = %+v, want name %q", ch2, "02 - Security; The Basics")
	}
	if want := "s160ch02l01 - Logins"; ch2.Lessons[1].Name != want {
		t.Errorf("lesson 2.1 name = %q, want %q", ch2.Lessons[1].Name, want)
	}
}

func TestScrapeCourseNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)

	_, err := newTestScraper(server.URL).ScrapeCourse(context.Background(), 160)

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
	if notFound.CourseID != 160 {
		t.Errorf("CourseID = %d, want 160", notFound.CourseID)
	}
}

func TestScrapeCourseTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on

	_, err := newTestScraper(server.URL).ScrapeCourse(context.Background(), 160)

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
}

func TestScrapeCourseStructureChanges(t *testing.T) {
	tests := []struct {
		name    string
		course  string
		listing string
	}{
		{
			name:    "missing title heading",
			course:  `<html><body><a href="TheBigList.aspx">View the videos in this course</a></body></html>`,
			listing: listingPage,
		},
		{
			name:    "missing videos link",
			course:  `<html><body><h1>Title</h1><a href="x.aspx">Other link</a></body></html>`,
			listing: listingPage,
		},
		{
			name:    "no chapter blocks",
			course:  coursePage,
			listing: `<html><body><p>redesigned page</p></body></html>`,
		},
		{
			name:   "unparsable chapter label",
			course: coursePage,
			listing: `<div class="chapterTitle"><h2><b>Module 1:</b> <a href="#">X</a></h2></div>
				<div><div class="chapterBorder"><div>1.1</div><div><a href="#">Y</a></div></div></div>`,
		},
		{
			name:    "chapter without lesson blocks",
			course:  coursePage,
			listing: `<div class="chapterTitle"><h2><b>Chapter 1:</b> <a href="#">X</a></h2></div><div></div>`,
		},
		{
			name:   "lesson label outside its chapter",
			course: coursePage,
			listing: `<div class="chapterTitle"><h2><b>Chapter 1:</b> <a href="#">X</a></h2></div>
				<div><div class="chapterBorder"><div>2.1</div><div><a href="#">Y</a></div></div></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestSite(t, tt.course, tt.listing)
			_, err := newTestScraper(server.URL).ScrapeCourse(context.Background(), 160)

			var structure *StructureChangedError
			if !errors.As(err, &structure) {
				t.Fatalf("error = %v, want *StructureChangedError", err)
			}
		})
	}
}

func TestScrapeCourseResolvesRelativeListingLink(t *testing.T) {
	// The landing page's href is relative ("TheBigList.aspx"); it must be
	// resolved against /Course/160/, not against the site root.
	server := newTestSite(t, coursePage, listingPage)

	course, err := newTestScraper(server.URL).ScrapeCourse(context.Background(), 160)
	if err != nil {
		t.Fatalf("ScrapeCourse() error: %v", err)
	}
	if len(course.Chapters) == 0 {
		t.Fatal("expected chapters from the resolved listing page")
	}
}
