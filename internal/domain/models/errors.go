package models

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks a missing credential or setting needed by a request.
	ErrConfiguration = errors.New("configuration error")
	// ErrUpstreamFetch marks a network failure or non-2xx upstream response.
	ErrUpstreamFetch = errors.New("upstream fetch failed")
	// ErrNoCandidates means a payload held no volume report.
	ErrNoCandidates = errors.New("no volume report found")
	// ErrParseFailure means a report did not yield enough fields.
	ErrParseFailure = errors.New("volume report parse failure")
)

// UpstreamError describes a failed upstream fetch.
type UpstreamError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s: status %d", ErrUpstreamFetch, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %v", ErrUpstreamFetch, e.URL, e.Err)
}

// Unwrap lets errors.Is match both ErrUpstreamFetch and the cause.
func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUpstreamFetch}
	}
	return []error{ErrUpstreamFetch, e.Err}
}
