package learnitfirst

import "fmt"

// NotFoundError is returned when the course page answers 404: the course ID
// does not exist on LearnItFirst.com.
type NotFoundError struct {
	CourseID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("course ID %d does not exist on LearnItFirst.com", e.CourseID)
}

// StructureChangedError is returned when an expected page landmark (the
// course title heading, the videos link, a chapter or lesson block) is
// missing. Scraping cannot proceed without a trusted structural assumption,
// so this is always fatal; the scraper makes no attempt at general-purpose
// resilience.
type StructureChangedError struct {
	CourseID int
	Landmark string
}

func (e *StructureChangedError) Error() string {
	return fmt.Sprintf("course %d: page structure has changed: %s", e.CourseID, e.Landmark)
}

// TransportError is returned when a fetch fails before a response can be
// inspected. It aborts the scrape immediately.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
