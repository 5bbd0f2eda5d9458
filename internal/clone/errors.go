package clone

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure.
type Kind string

const (
	KindInvalidURL Kind = "invalid_url"
	KindUpstream   Kind = "upstream_error"
	KindNetwork    Kind = "network_error"
)

// Error is returned by Fetch for every failure. Status carries the upstream
// HTTP status for KindUpstream and is zero otherwise.
type Error struct {
	Kind   Kind
	Status int
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUpstream:
		return fmt.Sprintf("clone: upstream responded with status %d", e.Status)
	case KindInvalidURL:
		return fmt.Sprintf("clone: invalid url: %v", e.Err)
	default:
		return fmt.Sprintf("clone: %s: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of a clone error, or "" for any other error.
func KindOf(err error) Kind {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return ""
}

// StatusOf returns the upstream status carried by err, or zero.
func StatusOf(err error) int {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Status
	}
	return 0
}
