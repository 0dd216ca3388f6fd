package crawler

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError reports a non-200 response
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status code error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// ExtractionError reports that an element the page is expected to carry is missing
type ExtractionError struct {
	URL      string
	Selector string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("no element matches %q on %s", e.Selector, e.URL)
}

// IsStatusError reports whether err carries a *StatusError
func IsStatusError(err error) bool {
	var e *StatusError
	return errors.As(err, &e)
}

// IsExtractionError reports whether err carries an *ExtractionError
func IsExtractionError(err error) bool {
	var e *ExtractionError
	return errors.As(err, &e)
}
