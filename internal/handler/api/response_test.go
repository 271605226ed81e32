package api

import (
	"errors"
	"testing"
	"time"

	"PumpStat/internal/domain/models"
	"PumpStat/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)

func TestNormalize_Live(t *testing.T) {
	resp := Normalize(models.ResolvedReport{
		Metrics:    models.VolumeMetrics{TotalVolume: models.Float(500)},
		Changes:    &models.ChangeSet{VolumeChange: "+13.00%"},
		DataSource: DataSourceRSS,
		IsLive:     true,
	}, fixedNow)

	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, DataSourceRSS, resp.DataSource)
	assert.Empty(t, resp.Error)
	require.NotNil(t, resp.VolumeData)
	assert.True(t, resp.VolumeData.IsLive)
	assert.Equal(t, "+13.00%", resp.VolumeData.Changes.VolumeChange)
	assert.Equal(t, "2025-10-14T12:00:00.000Z", resp.LastUpdate)
	assert.Equal(t, resp.LastUpdate, resp.VolumeData.Timestamp)
}

func TestNormalize_Fallback(t *testing.T) {
	sample := usecase.SampleVolumeData(fixedNow)
	resp := Normalize(models.ResolvedReport{
		Metrics:    sample.Metrics,
		Changes:    sample.Changes,
		DataSource: usecase.SampleSource,
	}, fixedNow)

	assert.Equal(t, StatusFallback, resp.Status)
	assert.Equal(t, "sample_data", resp.DataSource)
	assert.False(t, resp.VolumeData.IsLive)
}

func TestFailure(t *testing.T) {
	resp := Failure(errors.New("unexpected"), fixedNow)

	assert.Equal(t, StatusFailed, resp.Status)
	assert.Equal(t, "unexpected", resp.Error)
	require.NotNil(t, resp.VolumeData)
	assert.False(t, resp.VolumeData.IsLive)
	assert.Equal(t, 9, resp.VolumeData.Current.FieldCount())
	assert.Equal(t, usecase.SampleVolumeData(fixedNow).Metrics, resp.VolumeData.Current)
}
