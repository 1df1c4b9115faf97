// Package upstream defines the shared error type for failures reported
// by external services (vision, raster, product search, image host).
//
// Clients convert any non-2xx response into an *Error carrying the
// service name, HTTP status, and a truncated response body. Handlers
// use As to distinguish upstream failures (mapped to 502) from local
// ones.
package upstream

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of a failed response body is retained.
const maxErrorBody = 4 << 10

// Error describes a non-2xx response from an external service.
type Error struct {
	Service string // logical service name, e.g. "vision"
	Status  int    // HTTP status code returned by the service
	Body    string // truncated response body, may be empty
}

func (e *Error) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s upstream %d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s upstream %d: %s", e.Service, e.Status, e.Body)
}

// Temporary reports whether retrying the request later might succeed.
func (e *Error) Temporary() bool {
	return e.Status/100 == 5 ||
		e.Status == http.StatusTooManyRequests ||
		e.Status == http.StatusRequestTimeout
}

// ErrorFrom builds an *Error from a non-2xx response, consuming at most
// 4 KiB of its body. The caller keeps ownership of the response and is
// still responsible for closing it.
func ErrorFrom(service string, resp *http.Response) *Error {
	slurp, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &Error{
		Service: service,
		Status:  resp.StatusCode,
		Body:    strings.TrimSpace(string(slurp)),
	}
}

// As extracts an *Error from err's chain, if present.
func As(err error) (*Error, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
