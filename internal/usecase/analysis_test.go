package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"PumpStat/internal/domain/models"
	applogger "PumpStat/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompletion struct {
	prompt string
	out    string
	err    error
}

func (s *stubCompletion) Complete(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.out, s.err
}

func TestBuildPrompt_CurrentPeriod(t *testing.T) {
	req := models.AnalysisRequest{
		Query: "is volume trending up?",
		CurrentData: &models.VolumeSnapshot{
			VolumeMetrics: models.VolumeMetrics{
				TotalVolume: models.Float(14629.24),
				BuyVolume:   models.Float(8081.8),
				TotalTrades: models.Int(34450),
				ReachedKOTH: models.Int(44),
			},
			Changes:   &models.ChangeSet{VolumeChange: "+13.00%", KOTHChange: "+62.96%"},
			Timestamp: "2025-10-14T12:00:00.000Z",
		},
	}

	p := BuildPrompt(req)

	assert.True(t, strings.HasPrefix(p, "pump.fun volume analytics data:\n\nCURRENT PERIOD:\n"))
	assert.Contains(t, p, "• total volume: 14629.24 sol\n")
	assert.Contains(t, p, "• buy volume: 8081.80 sol\n")
	assert.Contains(t, p, "• sell volume: n/a sol\n")
	assert.Contains(t, p, "• total trades: 34,450\n")
	assert.Contains(t, p, "• new coins: n/a\n")
	assert.Contains(t, p, "• reached koth: 44\n")
	assert.Contains(t, p, "CHANGES FROM PREVIOUS PERIOD:\n• volume change: +13.00%\n• trades change: n/a\n")
	assert.Contains(t, p, "• koth change: +62.96%\n")
	assert.Contains(t, p, "• last updated: Oct 14, 2025 12:00:00 UTC\n")
	assert.Contains(t, p, "ANALYSIS CONTEXT:\n• pump.fun is a solana-based token launch platform\n")
	assert.Contains(t, p, "\n\nUSER QUERY: is volume trending up?\n\n")
	assert.True(t, strings.HasSuffix(p, "use lowercase text to match the pump.fun style."))
}

func TestBuildPrompt_QueryOnly(t *testing.T) {
	p := BuildPrompt(models.AnalysisRequest{Query: "hi"})

	assert.NotContains(t, p, "CURRENT PERIOD")
	assert.NotContains(t, p, "HOURLY TREND")
	assert.Contains(t, p, "pump.fun volume analytics data:\n\nANALYSIS CONTEXT:\n")
	assert.Contains(t, p, "USER QUERY: hi")
}

func TestBuildPrompt_CurrentWithoutVolumeSkipped(t *testing.T) {
	p := BuildPrompt(models.AnalysisRequest{
		Query:       "q",
		CurrentData: &models.VolumeSnapshot{VolumeMetrics: models.VolumeMetrics{TotalTrades: models.Int(5)}},
	})
	assert.NotContains(t, p, "CURRENT PERIOD")
}

func TestBuildPrompt_PreviousAndHourly(t *testing.T) {
	p := BuildPrompt(models.AnalysisRequest{
		Query:        "compare",
		PreviousData: &models.VolumeSnapshot{VolumeMetrics: models.VolumeMetrics{TotalVolume: models.Float(12946.51)}},
		HourlyData: []models.HourlyPoint{
			{Hour: "10:00", TotalVolume: models.Float(500), TotalTrades: models.Int(1200)},
			{Hour: "11:00", TotalVolume: models.Float(750.5), TotalTrades: models.Int(1300)},
			{Hour: "12:00"},
		},
	})

	assert.Contains(t, p, "PREVIOUS PERIOD:\n• total volume: 12946.51 sol\n")
	assert.Contains(t, p, "HOURLY TREND:\n• data points: 3\n• summed volume: 1250.50 sol\n• summed trades: 2,500\n• peak hour: 11:00 (750.50 sol)\n")
}

func TestAnalyze(t *testing.T) {
	stub := &stubCompletion{out: "volume looks healthy"}
	svc := NewAnalysisService(stub, applogger.NewNop())

	out, err := svc.Analyze(context.Background(), models.AnalysisRequest{Query: "how is it?"})
	require.NoError(t, err)
	assert.Equal(t, "volume looks healthy", out)
	assert.Contains(t, stub.prompt, "USER QUERY: how is it?")
}

func TestAnalyze_Error(t *testing.T) {
	boom := errors.New("upstream 529")
	svc := NewAnalysisService(&stubCompletion{err: boom}, applogger.NewNop())

	_, err := svc.Analyze(context.Background(), models.AnalysisRequest{Query: "q"})
	assert.ErrorIs(t, err, boom)
}
