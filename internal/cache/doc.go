// Package cache persists scraped course data to flat JSON files so that
// repeat runs avoid hitting the website.
//
// One file per course ID:
//
//	<cache dir>/160.json
//
// with the shape
//
//	{"course_id":160,"title":"160 - ...","chapters":{"1":{"name":"01 - ...","lessons":{"1":"s160ch01l01 - ..."}}}}
//
// Chapter and lesson numbers are stringified in the file and parsed back to
// integers on load. Anything structurally off (a non-numeric key, a
// missing name, a missing lessons map) makes Load return an error wrapping
// ErrInvalid, and the caller is expected to re-scrape rather than fail:
//
//	course, err := store.Load(160)
//	if errors.Is(err, cache.ErrInvalid) {
//	    // fall back to the scraper, then store.Save the fresh course
//	}
package cache
