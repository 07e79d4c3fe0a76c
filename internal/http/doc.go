// Package http provides an HTTP client configured for LearnItFirst.com
// page requests.
//
// The Client in this package handles:
//   - Browser-like User-Agent headers, which the site requires
//   - Timeout handling
//   - Typed status errors for non-OK responses
//
// # Basic Usage
//
//	client := http.NewClient("")
//
//	// Fetch an HTML page
//	html, err := client.GetString(ctx, "http://www.learnitfirst.com/Course/160/default.aspx")
//
// # Status Errors
//
// Non-OK responses surface as *StatusError so callers can branch on the
// HTTP status code:
//
//	var statusErr *http.StatusError
//	if errors.As(err, &statusErr) && statusErr.Code == 404 {
//	    // the page does not exist
//	}
package http
