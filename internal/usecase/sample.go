package usecase

import (
	"math"
	"time"

	"PumpStat/internal/domain/models"
)

// SampleSource labels data synthesized when no upstream produced a report.
const SampleSource = "sample_data"

// Baseline of the synthetic report, taken from a real 24h report.
const (
	sampleTotalTrades = 34450
	sampleNewCoins    = 1257
	sampleTotalVolume = 14629.24
	sampleBuyVolume   = 8081.8
	sampleSellVolume  = 6547.44
	sampleTotalBuys   = 17536
	sampleTotalSells  = 16914
	sampleReachedKOTH = 44
	sampleFullyBonded = 19
)

// SampleVolumeData synthesizes a complete report that drifts smoothly with
// wall-clock time (about ±5%). It depends on now only, so two calls within
// the same millisecond return identical data.
func SampleVolumeData(now time.Time) models.ParsedReport {
	variation := math.Sin(float64(now.UnixMilli())/100000) * 0.05

	count := func(base int64, k float64) *int64 {
		v := int64(math.Floor(float64(base) * (1 + variation*k)))
		return &v
	}
	sol := func(base, k float64) *float64 {
		v := math.Round(base*(1+variation*k)*100) / 100
		return &v
	}

	return models.ParsedReport{
		Metrics: models.VolumeMetrics{
			TotalTrades: count(sampleTotalTrades, 1),
			NewCoins:    count(sampleNewCoins, 0.5),
			TotalVolume: sol(sampleTotalVolume, 1),
			BuyVolume:   sol(sampleBuyVolume, 1),
			SellVolume:  sol(sampleSellVolume, 1),
			TotalBuys:   count(sampleTotalBuys, 1),
			TotalSells:  count(sampleTotalSells, 1),
			ReachedKOTH: count(sampleReachedKOTH, 2),
			FullyBonded: count(sampleFullyBonded, 1.5),
		},
		Changes: &models.ChangeSet{
			TradesChange: "+5.89%",
			CoinsChange:  "-7.51%",
			VolumeChange: "+13.00%",
			BuyChange:    "+12.86%",
			SellChange:   "+13.17%",
			BuysChange:   "+4.73%",
			SellsChange:  "+7.13%",
			KOTHChange:   "+62.96%",
			BondedChange: "+137.50%",
		},
	}
}
