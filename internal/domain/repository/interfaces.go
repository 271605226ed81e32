package repository

import (
	"context"

	"PumpStat/internal/domain/models"
)

// Fetcher retrieves one raw upstream payload.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Extractor pulls candidate reports out of a raw payload of a specific shape.
// It never fails: malformed input yields an empty Extraction.
type Extractor interface {
	Extract(payload []byte) models.Extraction
}

type Metrics interface {
	RecordSourceAttempt(source, outcome string)
	RecordFallback(endpoint string)
	RecordParsedFields(source string, n int)
	RecordLatency(op string, seconds float64)
}
