package repository

import (
	"context"
	"errors"
	"fmt"

	"PumpStat/internal/domain/models"
	domrepo "PumpStat/internal/domain/repository"
	xhttp "PumpStat/pkg/http"
)

// HTTPSource fetches one upstream document over HTTP GET.
type HTTPSource struct {
	client     *xhttp.Client
	url        string
	displayURL string
	headers    map[string]string
}

var _ domrepo.Fetcher = (*HTTPSource)(nil)

// HTTPSourceOption configures HTTPSource.
type HTTPSourceOption func(*HTTPSource)

// WithHeaders adds request headers.
func WithHeaders(h map[string]string) HTTPSourceOption {
	return func(s *HTTPSource) {
		for k, v := range h {
			s.headers[k] = v
		}
	}
}

// WithDisplayURL sets the URL used in errors, for URLs that embed credentials.
func WithDisplayURL(u string) HTTPSourceOption {
	return func(s *HTTPSource) { s.displayURL = u }
}

// NewHTTPSource creates a fetcher for url.
func NewHTTPSource(client *xhttp.Client, url string, opts ...HTTPSourceOption) *HTTPSource {
	s := &HTTPSource{
		client:     client,
		url:        url,
		displayURL: url,
		headers:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the credential-free URL of the source.
func (s *HTTPSource) URL() string { return s.displayURL }

// Fetch returns the response body. Transport failures and non-2xx statuses
// are reported as *models.UpstreamError.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	var body []byte
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     s.url,
		Headers: s.headers,
	}, &body)
	if err == nil {
		return body, nil
	}

	ue := &models.UpstreamError{URL: s.displayURL}
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		ue.StatusCode = se.StatusCode
	} else {
		ue.Err = s.redact(err)
	}
	return nil, ue
}

// redact drops the error text when it would echo a credential-bearing URL.
func (s *HTTPSource) redact(err error) error {
	if s.displayURL == s.url {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return context.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		return context.Canceled
	}
	return fmt.Errorf("request to %s failed", s.displayURL)
}
