package usecase

import (
	"bytes"
	"context"
	"errors"
	"time"

	"PumpStat/internal/domain/models"
	drepo "PumpStat/internal/domain/repository"
	"PumpStat/internal/services/report"
	applogger "PumpStat/pkg/logger"
)

// DefaultFetchTimeout bounds a single upstream fetch.
const DefaultFetchTimeout = 5 * time.Second

// Source is one upstream the resolver may take a report from.
type Source struct {
	Label      string // unique name, e.g. "rss:rsshub"
	DataSource string // response tag, e.g. "live_rss_feed"
	URL        string // shown in diagnostics; never carries credentials
	Fetcher    drepo.Fetcher
	Extractor  drepo.Extractor
	// MinFields is the usable-report threshold: a parse must yield more
	// fields than this.
	MinFields int
	// Exhaustive tries every candidate until one parses; otherwise only the
	// newest candidate is considered.
	Exhaustive bool
}

// ResolverOption configures Resolver.
type ResolverOption func(*Resolver)

// WithFetchTimeout sets the per-source fetch timeout.
func WithFetchTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithClock replaces time.Now, used for the fallback data.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// Resolver tries sources in order and returns the first usable report,
// falling back to sample data when every source fails.
type Resolver struct {
	parser  *report.Parser
	metrics drepo.Metrics
	logger  *applogger.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewResolver creates a Resolver. metrics may be nil.
func NewResolver(parser *report.Parser, metrics drepo.Metrics, logger *applogger.Logger, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		parser:  parser,
		metrics: metrics,
		logger:  logger,
		timeout: DefaultFetchTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve walks sources sequentially; the first one yielding a usable report
// wins and later sources are not fetched.
func (r *Resolver) Resolve(ctx context.Context, sources []Source) models.ResolvedReport {
	attempts := make([]models.Attempt, 0, len(sources))

	for _, src := range sources {
		res, attempt, ok := r.try(ctx, src)
		attempts = append(attempts, attempt)
		if r.metrics != nil {
			r.metrics.RecordSourceAttempt(src.Label, attempt.Status)
			r.metrics.RecordLatency("source_fetch", attempt.Duration.Seconds())
		}
		if ok {
			res.Attempts = attempts
			fields := []applogger.Field{
				applogger.String("source", src.Label),
				applogger.Int("candidates", res.CandidatesFound),
				applogger.Int("fields", res.Metrics.FieldCount()),
			}
			if v := res.Metrics.TotalVolume; v != nil {
				fields = append(fields, applogger.Float64("total_volume_sol", *v))
			}
			r.logger.Info("volume report resolved", fields...)
			return res
		}
		r.logger.Warn("volume source unusable",
			applogger.String("source", src.Label),
			applogger.String("status", attempt.Status),
			applogger.String("reason", attempt.Error),
			applogger.Duration("duration_ms", attempt.Duration),
		)
	}

	r.logger.Warn("all volume sources failed, serving sample data", applogger.Int("sources", len(sources)))
	return r.Fallback(attempts)
}

// Fallback builds the sample-data result.
func (r *Resolver) Fallback(attempts []models.Attempt) models.ResolvedReport {
	sample := SampleVolumeData(r.now())
	return models.ResolvedReport{
		Metrics:     sample.Metrics,
		Changes:     sample.Changes,
		SourceLabel: SampleSource,
		DataSource:  SampleSource,
		IsLive:      false,
		Attempts:    attempts,
	}
}

func (r *Resolver) try(ctx context.Context, src Source) (models.ResolvedReport, models.Attempt, bool) {
	attempt := models.Attempt{Source: src.Label, URL: src.URL}

	start := time.Now()
	payload, err := r.fetch(ctx, src)
	attempt.Duration = time.Since(start)
	if err != nil {
		attempt.Status = models.AttemptFetchFailed
		attempt.Error = err.Error()
		var ue *models.UpstreamError
		if errors.As(err, &ue) {
			attempt.StatusCode = ue.StatusCode
		}
		return models.ResolvedReport{}, attempt, false
	}
	attempt.PayloadBytes = len(payload)
	attempt.FoundMarker = bytes.Contains(payload, []byte("Volume Report")) || bytes.Contains(payload, []byte("SOL"))

	ext := src.Extractor.Extract(payload)
	attempt.Scanned = ext.Scanned
	attempt.Candidates = len(ext.Candidates)
	if len(ext.Candidates) == 0 {
		attempt.Status = models.AttemptNoReports
		attempt.Error = models.ErrNoCandidates.Error()
		return models.ResolvedReport{}, attempt, false
	}

	candidates := ext.Candidates
	if !src.Exhaustive {
		candidates = candidates[:1]
	}
	var lastErr error
	for i := range candidates {
		c := candidates[i]
		text := c.Content
		if text == "" {
			text = c.Title
		}
		parsed, err := r.parser.ParseReport(text, src.MinFields)
		if err != nil {
			lastErr = err
			continue
		}
		if r.metrics != nil {
			r.metrics.RecordParsedFields(src.Label, parsed.Metrics.FieldCount())
		}
		attempt.Status = models.AttemptSuccess
		return models.ResolvedReport{
			Metrics:         parsed.Metrics,
			Changes:         parsed.Changes,
			SourceLabel:     src.Label,
			DataSource:      src.DataSource,
			SourceURL:       src.URL,
			IsLive:          true,
			Report:          &c,
			CandidatesFound: len(ext.Candidates),
			Scanned:         ext.Scanned,
		}, attempt, true
	}

	attempt.Status = models.AttemptParseFailed
	attempt.Error = lastErr.Error()
	return models.ResolvedReport{}, attempt, false
}

func (r *Resolver) fetch(ctx context.Context, src Source) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return src.Fetcher.Fetch(ctx)
}
