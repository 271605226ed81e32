package report

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"PumpStat/internal/domain/models"
)

const (
	floatValue  = `([\d,]+\.?\d*)`
	intValue    = `([\d,]+)`
	changeValue = `\(([+-]?[\d.]+%)\)`
)

type compiledField struct {
	Field
	value  *regexp.Regexp
	change *regexp.Regexp
}

// Parser extracts VolumeMetrics from free text using a label table.
// It is safe for concurrent use.
type Parser struct {
	fields []compiledField
}

// New compiles the given label table, or DefaultFields when none is passed.
func New(fields ...Field) *Parser {
	if len(fields) == 0 {
		fields = DefaultFields
	}
	p := &Parser{fields: make([]compiledField, 0, len(fields))}
	for _, f := range fields {
		value, change := patterns(f)
		p.fields = append(p.fields, compiledField{
			Field:  f,
			value:  regexp.MustCompile(value),
			change: regexp.MustCompile(change),
		})
	}
	return p
}

func patterns(f Field) (value, change string) {
	num := floatValue
	if f.Integer() {
		num = intValue
	}
	unit := ""
	if f.Unit != "" {
		unit = `\s*` + regexp.QuoteMeta(f.Unit)
	}
	label := `(?i)` + regexp.QuoteMeta(f.Label) + `[:\s]+`
	value = label + num + unit
	// the value is not captured in the change pass; only the annotation is
	change = label + strings.Replace(num, "(", "(?:", 1) + unit + `\s*` + changeValue
	return value, change
}

// Parse extracts every metric it can find in text. It returns
// models.ErrParseFailure when the number of extracted fields is at or
// below minFields.
func (p *Parser) Parse(text string, minFields int) (models.VolumeMetrics, error) {
	var m models.VolumeMetrics
	for _, f := range p.fields {
		match := f.value.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		raw := strings.ReplaceAll(match[1], ",", "")
		if f.Integer() {
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || v < 0 {
				continue
			}
			f.setInt(&m, v)
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			continue
		}
		f.setFloat(&m, v)
	}

	if n := m.FieldCount(); n <= minFields {
		return m, fmt.Errorf("%w: %d fields, need more than %d", models.ErrParseFailure, n, minFields)
	}
	return m, nil
}

// ParseChanges captures "(+13.00%)" style annotations that directly follow a
// metric's value. It returns nil when none is present.
func (p *Parser) ParseChanges(text string) *models.ChangeSet {
	var c models.ChangeSet
	for _, f := range p.fields {
		if f.setChange == nil {
			continue
		}
		if match := f.change.FindStringSubmatch(text); match != nil {
			f.setChange(&c, match[1])
		}
	}
	if c.IsEmpty() {
		return nil
	}
	return &c
}

// ParseReport runs both passes over text.
func (p *Parser) ParseReport(text string, minFields int) (models.ParsedReport, error) {
	m, err := p.Parse(text, minFields)
	if err != nil {
		return models.ParsedReport{}, err
	}
	return models.ParsedReport{Metrics: m, Changes: p.ParseChanges(text)}, nil
}
