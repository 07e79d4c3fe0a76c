// Package learnitfirst scrapes course, chapter and lesson metadata from
// LearnItFirst.com.
//
// # Scraping
//
// A scrape is two page fetches. The course landing page provides the title
// and a link whose text is exactly "View the videos in this course"; the
// linked listing page provides one div.chapterTitle block per chapter, each
// followed by a sibling block with one div.chapterBorder per lesson:
//
//	scraper := learnitfirst.NewScraper(httpclient.NewClient(""), "")
//	course, err := scraper.ScrapeCourse(ctx, 160)
//
// All names are normalized through the model package's name transformer
// before they land in the Course.
//
// # Failure model
//
// The page structure is a trusted assumption. The scraper deliberately
// fails hard with StructureChangedError the moment any landmark is missing,
// instead of trying to be resilient against arbitrary markup. A 404 on the
// course page is NotFoundError; a fetch that dies before yielding a
// response is TransportError. None of them are retried.
package learnitfirst
