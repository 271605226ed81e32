package models

// Requests for the AI analysis endpoint. Defined in domain for consistency and reuse.

// VolumeSnapshot is a dashboard-side period summary sent along with a query.
type VolumeSnapshot struct {
	VolumeMetrics
	Changes   *ChangeSet `json:"changes,omitempty"`
	Timestamp string     `json:"timestamp,omitempty"`
}

// HourlyPoint is one bucket of the dashboard's hourly series.
type HourlyPoint struct {
	Hour        string   `json:"hour"`
	TotalVolume *float64 `json:"totalVolume,omitempty"`
	TotalTrades *int64   `json:"totalTrades,omitempty"`
}

type AnalysisRequest struct {
	Query        string          `json:"query" validate:"required"`
	CurrentData  *VolumeSnapshot `json:"currentData,omitempty"`
	PreviousData *VolumeSnapshot `json:"previousData,omitempty"`
	HourlyData   []HourlyPoint   `json:"hourlyData,omitempty"`
}

type AnalysisResponse struct {
	Response string `json:"response"`
}
