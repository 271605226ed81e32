package models

// VolumeMetrics is the normalized volume report. Every field is optional:
// a nil field means the label was not found in the source text.
type VolumeMetrics struct {
	TotalVolume *float64 `json:"totalVolume,omitempty"` // SOL
	BuyVolume   *float64 `json:"buyVolume,omitempty"`   // SOL
	SellVolume  *float64 `json:"sellVolume,omitempty"`  // SOL
	TotalTrades *int64   `json:"totalTrades,omitempty"`
	TotalBuys   *int64   `json:"totalBuys,omitempty"`
	TotalSells  *int64   `json:"totalSells,omitempty"`
	NewCoins    *int64   `json:"newCoins,omitempty"`
	ReachedKOTH *int64   `json:"reachedKOTH,omitempty"`
	FullyBonded *int64   `json:"fullyBonded,omitempty"`
}

// FieldCount returns how many metrics are present.
func (m VolumeMetrics) FieldCount() int {
	n := 0
	for _, f := range []*float64{m.TotalVolume, m.BuyVolume, m.SellVolume} {
		if f != nil {
			n++
		}
	}
	for _, i := range []*int64{m.TotalTrades, m.TotalBuys, m.TotalSells, m.NewCoins, m.ReachedKOTH, m.FullyBonded} {
		if i != nil {
			n++
		}
	}
	return n
}

// ChangeSet holds percent-change annotations exactly as written in the
// source text (e.g. "+13.00%"). Values are never re-derived numerically.
type ChangeSet struct {
	VolumeChange string `json:"volumeChange,omitempty"`
	BuyChange    string `json:"buyChange,omitempty"`
	SellChange   string `json:"sellChange,omitempty"`
	TradesChange string `json:"tradesChange,omitempty"`
	BuysChange   string `json:"buysChange,omitempty"`
	SellsChange  string `json:"sellsChange,omitempty"`
	CoinsChange  string `json:"coinsChange,omitempty"`
	KOTHChange   string `json:"kothChange,omitempty"`
	BondedChange string `json:"bondedChange,omitempty"`
}

// IsEmpty reports whether no change was captured.
func (c ChangeSet) IsEmpty() bool {
	return c == ChangeSet{}
}

// ParsedReport is the result of both parser passes over one text.
type ParsedReport struct {
	Metrics VolumeMetrics
	Changes *ChangeSet
}

// CandidateReport is one structural unit (feed item, rendered message,
// chat message) that may contain a volume report.
type CandidateReport struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	PublishedAt string `json:"pubDate"`
}

// Extraction is what a source extractor found in one payload.
// Candidates are ordered most recent first.
type Extraction struct {
	Candidates []CandidateReport
	Scanned    int // structural units inspected
}

// Float and Int return pointers for optional metric fields.
func Float(v float64) *float64 { return &v }

func Int(v int64) *int64 { return &v }
