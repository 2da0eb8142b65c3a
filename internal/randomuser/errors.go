package randomuser

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// HTTPError reports a non-2xx response. Its message is exactly
// "HTTP {status}: {statusText}".
type HTTPError struct {
	StatusCode int
	StatusText string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.StatusText)
}

func newHTTPError(resp *http.Response) *HTTPError {
	return &HTTPError{StatusCode: resp.StatusCode, StatusText: statusText(resp)}
}

// statusText extracts the reason phrase from resp.Status ("404 Not Found"),
// falling back to the canonical text for the code.
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text, ok := strings.CutPrefix(resp.Status, code+" "); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
