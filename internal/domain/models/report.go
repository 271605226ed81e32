package models

import "time"

// Attempt outcome values.
const (
	AttemptSuccess     = "success"
	AttemptFetchFailed = "fetch_failed"
	AttemptNoReports   = "no_reports"
	AttemptParseFailed = "parse_failed"
)

// Attempt records what happened when one upstream source was tried.
type Attempt struct {
	Source       string
	URL          string
	Status       string
	StatusCode   int
	Error        string
	PayloadBytes int
	FoundMarker  bool // payload mentions a volume report or the SOL unit
	Scanned      int
	Candidates   int
	Duration     time.Duration
}

// ResolvedReport is the outcome of trying every configured source.
// IsLive is false only when the metrics were synthesized locally.
type ResolvedReport struct {
	Metrics     VolumeMetrics
	Changes     *ChangeSet
	SourceLabel string
	DataSource  string
	SourceURL   string
	IsLive      bool

	// Report is the candidate that produced Metrics; nil on fallback.
	Report          *CandidateReport
	CandidatesFound int
	Scanned         int
	Attempts        []Attempt
}
