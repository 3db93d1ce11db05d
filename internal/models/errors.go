package models

import "fmt"

// FetchErrorKind classifies how a network retrieval failed.
type FetchErrorKind string

const (
	FetchTimeout          FetchErrorKind = "timeout"
	FetchConnectionFailed FetchErrorKind = "connection_failed"
	FetchHTTPError        FetchErrorKind = "http_error"
)

// FetchError is the typed failure returned when a fetch exhausts its
// attempts. Status is only set for FetchHTTPError.
type FetchError struct {
	Kind   FetchErrorKind
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchHTTPError:
		return fmt.Sprintf("fetch %s: http status %d", e.URL, e.Status)
	case FetchTimeout:
		return fmt.Sprintf("fetch %s: timeout: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("fetch %s: connection failed: %v", e.URL, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// Retryable reports whether another attempt could plausibly succeed.
// Client errors (4xx) are terminal; everything else is transient.
func (e *FetchError) Retryable() bool {
	if e.Kind == FetchHTTPError {
		return e.Status >= 500
	}
	return true
}

// ParseError reports a malformed payload or a source whose markup no longer
// matches the expected shape. It names the source so one bad source never
// hides behind a silent empty result.
type ParseError struct {
	Source string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", e.Source, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }
