package extract

import (
	"html"
	"regexp"
	"strings"
)

var (
	cdataRe     = regexp.MustCompile(`(?s)^\s*<!\[CDATA\[(.*?)\]\]>\s*$`)
	lineBreakRe = regexp.MustCompile(`(?i)<br\s*/?>|</p>`)
	tagRe       = regexp.MustCompile(`(?s)<[^>]*>`)
	spaceRe     = regexp.MustCompile(`[ \t\r\f\v]+`)
)

// plainText turns an XML/HTML fragment into readable text: CDATA is
// unwrapped, markup removed and entities decoded. Line breaks are kept so
// that labels on separate lines stay separated.
func plainText(s string) string {
	if m := cdataRe.FindStringSubmatch(s); m != nil {
		s = m[1]
	} else {
		// escaped markup inside a plain XML element
		s = html.UnescapeString(s)
	}
	s = lineBreakRe.ReplaceAllString(s, "\n")
	s = tagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(spaceRe.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
