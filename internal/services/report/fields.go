package report

import "PumpStat/internal/domain/models"

// Field describes one labeled metric in a volume report.
// Exactly one of setFloat / setInt is set, matching the metric's kind.
type Field struct {
	Name  string // json name of the metric
	Label string // case-insensitive label in the report text
	Unit  string // required unit token after the value, empty for counts

	setFloat  func(m *models.VolumeMetrics, v float64)
	setInt    func(m *models.VolumeMetrics, v int64)
	setChange func(c *models.ChangeSet, s string)
}

// Integer reports whether the metric is a count.
func (f Field) Integer() bool { return f.setInt != nil }

// DefaultFields is the label table of the platform's volume reports.
var DefaultFields = []Field{
	{
		Name: "totalVolume", Label: "Total Volume", Unit: "SOL",
		setFloat:  func(m *models.VolumeMetrics, v float64) { m.TotalVolume = &v },
		setChange: func(c *models.ChangeSet, s string) { c.VolumeChange = s },
	},
	{
		Name: "buyVolume", Label: "Buy Volume", Unit: "SOL",
		setFloat:  func(m *models.VolumeMetrics, v float64) { m.BuyVolume = &v },
		setChange: func(c *models.ChangeSet, s string) { c.BuyChange = s },
	},
	{
		Name: "sellVolume", Label: "Sell Volume", Unit: "SOL",
		setFloat:  func(m *models.VolumeMetrics, v float64) { m.SellVolume = &v },
		setChange: func(c *models.ChangeSet, s string) { c.SellChange = s },
	},
	{
		Name: "totalTrades", Label: "Total Trades",
		setInt:    func(m *models.VolumeMetrics, v int64) { m.TotalTrades = &v },
		setChange: func(c *models.ChangeSet, s string) { c.TradesChange = s },
	},
	{
		Name: "totalBuys", Label: "Total Buys",
		setInt:    func(m *models.VolumeMetrics, v int64) { m.TotalBuys = &v },
		setChange: func(c *models.ChangeSet, s string) { c.BuysChange = s },
	},
	{
		Name: "totalSells", Label: "Total Sells",
		setInt:    func(m *models.VolumeMetrics, v int64) { m.TotalSells = &v },
		setChange: func(c *models.ChangeSet, s string) { c.SellsChange = s },
	},
	{
		Name: "newCoins", Label: "New Coins",
		setInt:    func(m *models.VolumeMetrics, v int64) { m.NewCoins = &v },
		setChange: func(c *models.ChangeSet, s string) { c.CoinsChange = s },
	},
	{
		Name: "reachedKOTH", Label: "Reached KOTH",
		setInt:    func(m *models.VolumeMetrics, v int64) { m.ReachedKOTH = &v },
		setChange: func(c *models.ChangeSet, s string) { c.KOTHChange = s },
	},
	{
		Name: "fullyBonded", Label: "Fully Bonded",
		setInt:    func(m *models.VolumeMetrics, v int64) { m.FullyBonded = &v },
		setChange: func(c *models.ChangeSet, s string) { c.BondedChange = s },
	},
}
