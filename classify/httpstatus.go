package classify

import (
	"net/http"
	"strconv"
	"time"
)

// HTTPStatus maps an HTTP response status code to a Kind.
//
// Operations talking to REST services can use this to build a Failure from
// a response before handing the error back to the engine.
func HTTPStatus(code int) Kind {
	switch code {
	case http.StatusTooManyRequests:
		return Throttling
	case http.StatusNotFound, http.StatusGone:
		return NotFound
	case http.StatusConflict:
		return ResourceConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return InvalidInput
	case http.StatusUnauthorized, http.StatusForbidden:
		return PermissionDenied
	case http.StatusNotImplemented:
		return Fatal
	}
	if code >= 500 && code <= 599 {
		return Transient
	}
	return Fatal
}

// ParseRetryAfter parses a Retry-After header value, either delta-seconds or
// an HTTP date. Returns 0 for absent or malformed values, and 0 for dates in
// the past.
func ParseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(header); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(header); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
