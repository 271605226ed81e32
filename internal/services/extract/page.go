package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"PumpStat/internal/domain/models"
	"PumpStat/internal/domain/repository"
)

// minMessageLen drops rendered fragments that are too short to be a report.
const minMessageLen = 10

// Message body markers of the public channel preview page, tried in order.
var messageMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<div class="tgme_widget_message_text[^"]*"[^>]*>(.*?)</div>`),
	regexp.MustCompile(`(?is)<div class="js-message_text[^"]*"[^>]*>(.*?)</div>`),
	regexp.MustCompile(`(?is)class="[^"]*\btgme_widget_message_text\b[^"]*"[^>]*>(.*?)</div>`),
}

// solRunRe is the permissive fallback: any text run with a number next to SOL.
var solRunRe = regexp.MustCompile(`[^<>]*\d+[,.]?\d*\s*SOL[^<>]*`)

// PageExtractor reads messages out of a rendered public channel page.
type PageExtractor struct {
	markers []*regexp.Regexp
}

func NewPageExtractor() *PageExtractor {
	return &PageExtractor{markers: messageMarkers}
}

// Extract returns rendered messages newest first. The page lists messages
// oldest first, so the order is reversed.
func (e *PageExtractor) Extract(payload []byte) models.Extraction {
	page := string(payload)

	for _, marker := range e.markers {
		blocks := marker.FindAllStringSubmatch(page, -1)
		if len(blocks) == 0 {
			continue
		}
		var texts []string
		for _, b := range blocks {
			text := plainText(b[1])
			if utf8.RuneCountInString(text) <= minMessageLen {
				continue
			}
			texts = append(texts, text)
		}
		if len(texts) > 0 {
			return models.Extraction{Candidates: newestFirst(texts), Scanned: len(blocks)}
		}
	}

	// Tag-delimited runs each carry a single line of a report, so they are
	// joined newest first into one candidate the parser can read as a whole.
	runs := solRunRe.FindAllString(page, -1)
	var lines []string
	for i := len(runs) - 1; i >= 0; i-- {
		if text := strings.TrimSpace(plainText(runs[i])); text != "" {
			lines = append(lines, text)
		}
	}
	if len(lines) == 0 {
		return models.Extraction{Scanned: len(runs)}
	}
	return models.Extraction{
		Candidates: []models.CandidateReport{{Content: strings.Join(lines, "\n")}},
		Scanned:    len(runs),
	}
}

func newestFirst(texts []string) []models.CandidateReport {
	if len(texts) == 0 {
		return nil
	}
	out := make([]models.CandidateReport, 0, len(texts))
	for i := len(texts) - 1; i >= 0; i-- {
		out = append(out, models.CandidateReport{Content: texts[i]})
	}
	return out
}

var _ repository.Extractor = (*PageExtractor)(nil)
