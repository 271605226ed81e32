package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"PumpStat/internal/domain/models"
	"PumpStat/internal/services/extract"
	"PumpStat/internal/services/report"
	"PumpStat/pkg/config"
	applogger "PumpStat/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	payload string
	err     error
	delay   time.Duration
	calls   int
}

func (f *stubFetcher) Fetch(ctx context.Context) ([]byte, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.payload), nil
}

type recordingMetrics struct {
	mu       sync.Mutex
	attempts map[string]string
	fields   map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{attempts: map[string]string{}, fields: map[string]int{}}
}

func (m *recordingMetrics) RecordSourceAttempt(source, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[source] = outcome
}
func (m *recordingMetrics) RecordFallback(string) {}
func (m *recordingMetrics) RecordParsedFields(source string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fields[source] = n
}
func (m *recordingMetrics) RecordLatency(string, float64) {}

const reportFeed = `<rss><channel><item><title><![CDATA[Pump Volume Report]]></title><description><![CDATA[Total Volume: 500.00 SOL (+13.00%) Total Trades: 100]]></description></item></channel></rss>`

func newTestResolver(opts ...ResolverOption) (*Resolver, *recordingMetrics) {
	m := newRecordingMetrics()
	return NewResolver(report.New(), m, applogger.NewNop(), opts...), m
}

func feedSource(label string, f *stubFetcher) Source {
	return Source{
		Label:      label,
		DataSource: "live_rss_feed",
		URL:        "https://" + label + "/feed",
		Fetcher:    f,
		Extractor:  extract.NewFeedExtractor(),
		MinFields:  1,
		Exhaustive: true,
	}
}

func TestResolve_ShortCircuitsOnFirstSuccess(t *testing.T) {
	a := &stubFetcher{err: &models.UpstreamError{URL: "https://a/feed", StatusCode: 502}}
	b := &stubFetcher{payload: reportFeed}
	c := &stubFetcher{payload: reportFeed}

	r, m := newTestResolver()
	res := r.Resolve(context.Background(), []Source{feedSource("a", a), feedSource("b", b), feedSource("c", c)})

	assert.True(t, res.IsLive)
	assert.Equal(t, "b", res.SourceLabel)
	assert.Equal(t, "live_rss_feed", res.DataSource)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
	assert.Zero(t, c.calls)

	assert.Equal(t, 500.0, *res.Metrics.TotalVolume)
	assert.Equal(t, int64(100), *res.Metrics.TotalTrades)
	require.NotNil(t, res.Changes)
	assert.Equal(t, "+13.00%", res.Changes.VolumeChange)
	require.NotNil(t, res.Report)
	assert.Equal(t, "Pump Volume Report", res.Report.Title)
	assert.Equal(t, 1, res.CandidatesFound)

	require.Len(t, res.Attempts, 2)
	assert.Equal(t, models.AttemptFetchFailed, res.Attempts[0].Status)
	assert.Equal(t, 502, res.Attempts[0].StatusCode)
	assert.Equal(t, models.AttemptSuccess, res.Attempts[1].Status)
	assert.True(t, res.Attempts[1].FoundMarker)

	assert.Equal(t, models.AttemptFetchFailed, m.attempts["a"])
	assert.Equal(t, models.AttemptSuccess, m.attempts["b"])
	assert.Equal(t, 2, m.fields["b"])
}

func TestResolve_TotalExhaustionFallsBack(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	sources := []Source{
		feedSource("down", &stubFetcher{err: errors.New("dial tcp: connection refused")}),
		feedSource("empty", &stubFetcher{payload: `<rss><channel></channel></rss>`}),
		feedSource("sparse", &stubFetcher{payload: `<rss><item><title>Volume Report</title><description>Total Volume: 1 SOL</description></item></rss>`}),
	}

	r, _ := newTestResolver(WithClock(func() time.Time { return now }))
	res := r.Resolve(context.Background(), sources)

	assert.False(t, res.IsLive)
	assert.Equal(t, SampleSource, res.SourceLabel)
	assert.Nil(t, res.Report)
	assert.Equal(t, 9, res.Metrics.FieldCount())
	assert.Equal(t, SampleVolumeData(now).Metrics, res.Metrics)

	require.Len(t, res.Attempts, 3)
	assert.Equal(t, models.AttemptFetchFailed, res.Attempts[0].Status)
	assert.Equal(t, models.AttemptNoReports, res.Attempts[1].Status)
	assert.Equal(t, models.AttemptParseFailed, res.Attempts[2].Status)
	assert.Contains(t, res.Attempts[2].Error, models.ErrParseFailure.Error())
}

func TestResolve_NoSources(t *testing.T) {
	r, _ := newTestResolver()
	res := r.Resolve(context.Background(), nil)
	assert.False(t, res.IsLive)
	assert.Empty(t, res.Attempts)
}

func TestResolve_FetchTimeoutMovesOn(t *testing.T) {
	slow := &stubFetcher{payload: reportFeed, delay: time.Second}
	fast := &stubFetcher{payload: reportFeed}

	r, _ := newTestResolver(WithFetchTimeout(20 * time.Millisecond))
	start := time.Now()
	res := r.Resolve(context.Background(), []Source{feedSource("slow", slow), feedSource("fast", fast)})

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, "fast", res.SourceLabel)
	assert.Contains(t, res.Attempts[0].Error, context.DeadlineExceeded.Error())
}

func TestResolve_ExhaustiveVersusNewestOnly(t *testing.T) {
	// newest item is too sparse, the older one is complete
	feed := `<rss><channel>
<item><title>Volume Report</title><description>Total Volume: 1 SOL</description></item>
<item><title>Volume Report</title><description>Total Volume: 2 SOL Total Trades: 3</description></item>
</channel></rss>`

	r, _ := newTestResolver()

	src := feedSource("feed", &stubFetcher{payload: feed})
	res := r.Resolve(context.Background(), []Source{src})
	require.True(t, res.IsLive)
	assert.Equal(t, 2.0, *res.Metrics.TotalVolume)
	assert.Equal(t, 2, res.CandidatesFound)

	src = feedSource("feed", &stubFetcher{payload: feed})
	src.Exhaustive = false
	res = r.Resolve(context.Background(), []Source{src})
	assert.False(t, res.IsLive)
}

func TestResolve_ThresholdIsPerSource(t *testing.T) {
	chat := `{"ok":true,"result":[{"update_id":1,"message":{"date":1,"chat":{"title":"dm"},"text":"Pump Volume Report Total Volume: 9 SOL"}}]}`

	strict := Source{Label: "strict", Fetcher: &stubFetcher{payload: chat}, Extractor: extract.NewChatExtractor(), MinFields: 3}
	loose := Source{Label: "loose", Fetcher: &stubFetcher{payload: chat}, Extractor: extract.NewChatExtractor(), MinFields: 0}

	r, _ := newTestResolver()
	res := r.Resolve(context.Background(), []Source{strict, loose})
	require.True(t, res.IsLive)
	assert.Equal(t, "loose", res.SourceLabel)
	assert.Equal(t, "dm", res.Report.Title)
}

func TestResolve_PageFallbackScanMeetsDefaultThreshold(t *testing.T) {
	html := `<html><body><p>Total Volume: 500 SOL</p><p>Buy Volume: 300 SOL</p>` +
		`<p>Sell Volume: 200 SOL</p><p>Total Trades: 100</p><p>New Coins: 7</p></body></html>`
	cfg, err := config.Default()
	require.NoError(t, err)
	page := Source{
		Label:      "Direct Scraping",
		DataSource: "live_channel_scrape",
		Fetcher:    &stubFetcher{payload: html},
		Extractor:  extract.NewPageExtractor(),
		MinFields:  cfg.Sources.Page.MinFields,
		Exhaustive: true,
	}

	r, m := newTestResolver()
	res := r.Resolve(context.Background(), []Source{page})

	require.True(t, res.IsLive)
	assert.Equal(t, "success", m.attempts["Direct Scraping"])
	assert.Equal(t, 500.0, *res.Metrics.TotalVolume)
	assert.Equal(t, 300.0, *res.Metrics.BuyVolume)
	assert.Equal(t, 200.0, *res.Metrics.SellVolume)
}
