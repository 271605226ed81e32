package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"PumpStat/internal/domain/models"
	"PumpStat/internal/domain/service"
	applogger "PumpStat/pkg/logger"
	"PumpStat/pkg/util"
)

const notAvailable = "n/a"

var analysisContext = []string{
	"pump.fun is a solana-based token launch platform",
	"koth = king of the hill (successful token launches)",
	"fully bonded = tokens that reached full liquidity bonding",
	"higher buy/sell ratios indicate bullish sentiment",
	"volume trends indicate market activity and interest",
}

const styleGuidance = "please provide a helpful analysis based on the pump.fun volume data above. " +
	"be specific with numbers when relevant, identify trends, and give actionable insights. " +
	"keep responses concise but informative. use lowercase text to match the pump.fun style."

// AnalysisService answers free-form questions about volume data through a
// text-completion service.
type AnalysisService struct {
	completion service.CompletionService
	logger     *applogger.Logger
}

// NewAnalysisService creates an AnalysisService.
func NewAnalysisService(completion service.CompletionService, logger *applogger.Logger) *AnalysisService {
	return &AnalysisService{completion: completion, logger: logger}
}

// Analyze builds the prompt for req and returns the generated answer.
func (s *AnalysisService) Analyze(ctx context.Context, req models.AnalysisRequest) (string, error) {
	prompt := BuildPrompt(req)
	start := time.Now()
	out, err := s.completion.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("analyze: %w", err)
	}
	s.logger.Info("analysis completed",
		applogger.Int("prompt_chars", len(prompt)),
		applogger.Int("response_chars", len(out)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return out, nil
}

// BuildPrompt assembles the data context followed by the user query.
func BuildPrompt(req models.AnalysisRequest) string {
	var b strings.Builder
	b.WriteString(buildDataContext(req))
	b.WriteString("\n\nUSER QUERY: ")
	b.WriteString(req.Query)
	b.WriteString("\n\n")
	b.WriteString(styleGuidance)
	return b.String()
}

func buildDataContext(req models.AnalysisRequest) string {
	var b strings.Builder
	b.WriteString("pump.fun volume analytics data:\n\n")

	if cur := req.CurrentData; cur != nil && cur.TotalVolume != nil {
		b.WriteString("CURRENT PERIOD:\n")
		writePeriod(&b, cur.VolumeMetrics)

		if cur.Changes != nil {
			b.WriteString("\nCHANGES FROM PREVIOUS PERIOD:\n")
			bullet(&b, "volume change", orNA(cur.Changes.VolumeChange))
			bullet(&b, "trades change", orNA(cur.Changes.TradesChange))
			bullet(&b, "new coins change", orNA(cur.Changes.CoinsChange))
			bullet(&b, "koth change", orNA(cur.Changes.KOTHChange))
		}

		if t, ok := util.ParseTime(cur.Timestamp); ok {
			bullet(&b, "last updated", util.FormatReadable(t))
		}
		b.WriteString("\n")
	}

	if prev := req.PreviousData; prev != nil && prev.TotalVolume != nil {
		b.WriteString("PREVIOUS PERIOD:\n")
		writePeriod(&b, prev.VolumeMetrics)
		b.WriteString("\n")
	}

	if len(req.HourlyData) > 0 {
		b.WriteString("HOURLY TREND:\n")
		writeHourly(&b, req.HourlyData)
		b.WriteString("\n")
	}

	b.WriteString("ANALYSIS CONTEXT:\n")
	for _, line := range analysisContext {
		bullet(&b, "", line)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writePeriod(b *strings.Builder, m models.VolumeMetrics) {
	bullet(b, "total volume", formatSOL(m.TotalVolume))
	bullet(b, "buy volume", formatSOL(m.BuyVolume))
	bullet(b, "sell volume", formatSOL(m.SellVolume))
	bullet(b, "total trades", formatCount(m.TotalTrades))
	bullet(b, "new coins", formatCount(m.NewCoins))
	bullet(b, "total buys", formatCount(m.TotalBuys))
	bullet(b, "total sells", formatCount(m.TotalSells))
	bullet(b, "reached koth", formatCount(m.ReachedKOTH))
	bullet(b, "fully bonded", formatCount(m.FullyBonded))
}

func writeHourly(b *strings.Builder, points []models.HourlyPoint) {
	bullet(b, "data points", util.FormatThousands(int64(len(points))))

	var peak *models.HourlyPoint
	var volume float64
	var trades int64
	for i := range points {
		p := &points[i]
		if p.TotalVolume != nil {
			volume += *p.TotalVolume
			if peak == nil || *p.TotalVolume > *peak.TotalVolume {
				peak = p
			}
		}
		if p.TotalTrades != nil {
			trades += *p.TotalTrades
		}
	}
	bullet(b, "summed volume", util.FormatFixed2(volume)+" sol")
	bullet(b, "summed trades", util.FormatThousands(trades))
	if peak != nil {
		bullet(b, "peak hour", fmt.Sprintf("%s (%s sol)", peak.Hour, util.FormatFixed2(*peak.TotalVolume)))
	}
}

func bullet(b *strings.Builder, label, value string) {
	b.WriteString("• ")
	if label != "" {
		b.WriteString(label)
		b.WriteString(": ")
	}
	b.WriteString(value)
	b.WriteString("\n")
}

func formatSOL(v *float64) string {
	if v == nil {
		return notAvailable + " sol"
	}
	return util.FormatFixed2(*v) + " sol"
}

func formatCount(v *int64) string {
	if v == nil {
		return notAvailable
	}
	return util.FormatThousands(*v)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
