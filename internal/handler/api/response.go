package api

import (
	"time"

	"PumpStat/internal/domain/models"
	"PumpStat/internal/usecase"
	"PumpStat/pkg/util"
)

// Response status values.
const (
	StatusSuccess  = "success"
	StatusFallback = "fallback"
	StatusFailed   = "failed"
)

// VolumeData is the metrics block consumed by the dashboard.
type VolumeData struct {
	Current   models.VolumeMetrics `json:"current"`
	Changes   *models.ChangeSet    `json:"changes,omitempty"`
	Timestamp string               `json:"timestamp"`
	IsLive    bool                 `json:"isLive"`
	Source    string               `json:"source,omitempty"`
}

// VolumeResponse is the common envelope of every volume endpoint.
type VolumeResponse struct {
	Status     string      `json:"status"`
	DataSource string      `json:"dataSource"`
	Error      string      `json:"error,omitempty"`
	VolumeData *VolumeData `json:"volumeData"`
	LastUpdate string      `json:"lastUpdate"`
}

// Normalize turns a resolved report into the response envelope. Live data
// yields "success", sample data "fallback".
func Normalize(r models.ResolvedReport, now time.Time) VolumeResponse {
	ts := util.FormatTimestamp(now)
	status := StatusSuccess
	if !r.IsLive {
		status = StatusFallback
	}
	return VolumeResponse{
		Status:     status,
		DataSource: r.DataSource,
		VolumeData: &VolumeData{
			Current:   r.Metrics,
			Changes:   r.Changes,
			Timestamp: ts,
			IsLive:    r.IsLive,
		},
		LastUpdate: ts,
	}
}

// Failure builds the error envelope. It still carries sample data so the
// dashboard always has something to render.
func Failure(err error, now time.Time) VolumeResponse {
	sample := usecase.SampleVolumeData(now)
	resp := Normalize(models.ResolvedReport{
		Metrics:     sample.Metrics,
		Changes:     sample.Changes,
		SourceLabel: usecase.SampleSource,
		DataSource:  usecase.SampleSource,
	}, now)
	resp.Status = StatusFailed
	resp.Error = "unexpected error"
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}
