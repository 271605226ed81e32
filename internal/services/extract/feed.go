package extract

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"PumpStat/internal/domain/models"
	"PumpStat/internal/domain/repository"
)

var (
	itemRe    = regexp.MustCompile(`(?is)<item(?:\s[^>]*)?>(.*?)</item>`)
	titleRe   = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	descRe    = regexp.MustCompile(`(?is)<description[^>]*>(.*?)</description>`)
	pubDateRe = regexp.MustCompile(`(?is)<pubDate[^>]*>(.*?)</pubDate>`)
)

var feedDateLayouts = []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822, time.RFC3339}

// FeedExtractor reads volume reports out of an RSS document.
type FeedExtractor struct {
	// TitleMarker and ContentMarker form the relevance gate; an item is kept
	// when either matches (case-insensitive).
	TitleMarker   string
	ContentMarker string
}

func NewFeedExtractor() *FeedExtractor {
	return &FeedExtractor{TitleMarker: "volume report", ContentMarker: "total volume"}
}

// Extract returns relevant items, newest first.
func (e *FeedExtractor) Extract(payload []byte) models.Extraction {
	items := itemRe.FindAllStringSubmatch(string(payload), -1)
	out := models.Extraction{Scanned: len(items)}

	for _, item := range items {
		body := item[1]
		r := models.CandidateReport{
			Title:       submatchText(titleRe, body),
			Content:     submatchText(descRe, body),
			PublishedAt: strings.TrimSpace(submatch(pubDateRe, body)),
		}
		if !containsFold(r.Title, e.TitleMarker) && !containsFold(r.Content, e.ContentMarker) {
			continue
		}
		out.Candidates = append(out.Candidates, r)
	}

	sortNewestFirst(out.Candidates)
	return out
}

// sortNewestFirst orders by pubDate only when every date parses; feeds are
// conventionally newest first already, so document order is the fallback.
func sortNewestFirst(reports []models.CandidateReport) {
	dates := make([]time.Time, len(reports))
	for i, r := range reports {
		t, ok := parseFeedDate(r.PublishedAt)
		if !ok {
			return
		}
		dates[i] = t
	}
	idx := make([]int, len(reports))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return dates[idx[a]].After(dates[idx[b]]) })

	sorted := make([]models.CandidateReport, len(reports))
	for i, j := range idx {
		sorted[i] = reports[j]
	}
	copy(reports, sorted)
}

func parseFeedDate(s string) (time.Time, bool) {
	for _, layout := range feedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func submatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

func submatchText(re *regexp.Regexp, s string) string {
	return plainText(submatch(re, s))
}

var _ repository.Extractor = (*FeedExtractor)(nil)
