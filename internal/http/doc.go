// Package http provides an HTTP client configured for station page
// requests.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - Inspectable status errors (a 404 show page means the show key
//     does not exist)
//   - A no-follow request variant, because the station signals a
//     missing season with a redirect rather than an error page
//
// # Basic Usage
//
//	client := http.NewClient()
//
//	// Fetch a show's episode listing
//	html, err := client.GetString(ctx, showURL)
//
//	// Distinguish "show missing" from other failures
//	var statusErr *http.StatusError
//	if errors.As(err, &statusErr) && statusErr.Code == 404 {
//	    // unknown show key
//	}
package http
