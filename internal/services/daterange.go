package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"concierge/internal/domain/models"
	"concierge/internal/utils"
)

// DateSource tells which rule produced a resolved date range.
type DateSource string

const (
	DateSourceExplicit DateSource = "explicit"
	DateSourceText     DateSource = "text"
	DateSourceDefault  DateSource = "default"
)

// DefaultTripDays is used when neither dates nor a day count can be inferred.
const DefaultTripDays = 3

// explicitDateLayouts are tried in order for explicit start/end fields.
var explicitDateLayouts = []string{utils.LayoutDate, "2006/01/02", "02/01/2006"}

// DateGrammar is one free-text range pattern. Match must be pure.
type DateGrammar struct {
	Name  string
	Match func(text string, ref time.Time) (models.DateRange, bool)
}

// DefaultDateGrammars lists the text grammars in precedence order.
var DefaultDateGrammars = []DateGrammar{
	{Name: "iso_to_iso", Match: matchISORange},
	{Name: "day_month", Match: matchDayMonthRange},
	{Name: "month_day", Match: matchMonthDayRange},
	{Name: "numeric_day_month", Match: matchNumericRange},
}

const rangeSep = `\s*(?:to|until|till|through|-|–|—)\s*`

var (
	isoRangeRe = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})` + rangeSep + `(\d{4}-\d{2}-\d{2})`)

	dayMonthRangeRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+([a-z]{3,})\.?(?:,?\s+(\d{4}))?` + rangeSep +
		`(\d{1,2})(?:st|nd|rd|th)?\s+([a-z]{3,})\.?(?:,?\s+(\d{4}))?`)

	monthDayRangeRe = regexp.MustCompile(`(?i)\b([a-z]{3,})\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b(?:,?\s+(\d{4}))?` + rangeSep +
		`([a-z]{3,})\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b(?:,?\s+(\d{4}))?`)

	numericRangeRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{4}|\d{2}))?` + rangeSep +
		`(\d{1,2})/(\d{1,2})(?:/(\d{4}|\d{2}))?\b`)
)

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// DateResolver turns explicit fields, free text or a day count into a valid DateRange.
type DateResolver struct {
	Now      func() time.Time
	Grammars []DateGrammar
}

func (r DateResolver) today() time.Time {
	if r.Now != nil {
		return utils.DateOnly(r.Now())
	}
	return utils.DateOnly(utils.NowUTC())
}

func (r DateResolver) grammars() []DateGrammar {
	if len(r.Grammars) > 0 {
		return r.Grammars
	}
	return DefaultDateGrammars
}

// Resolve applies explicit pair, then text grammars, then the day-count default.
// The returned range is always valid and non-empty.
func (r DateResolver) Resolve(start, end, text string, inferredDays int) (models.DateRange, DateSource) {
	if dr, ok := ParseExplicitRange(start, end); ok {
		return dr, DateSourceExplicit
	}
	if dr, ok := r.ParseText(text); ok {
		return dr, DateSourceText
	}
	return r.DefaultRange(inferredDays), DateSourceDefault
}

// ParseText tries every grammar in order and returns the first valid range.
func (r DateResolver) ParseText(text string) (models.DateRange, bool) {
	if strings.TrimSpace(text) == "" {
		return models.DateRange{}, false
	}
	ref := r.today()
	for _, g := range r.grammars() {
		if dr, ok := g.Match(text, ref); ok {
			return dr, true
		}
	}
	return models.DateRange{}, false
}

// DefaultRange starts today and spans days calendar days (DefaultTripDays when <= 0).
func (r DateResolver) DefaultRange(days int) models.DateRange {
	if days <= 0 {
		days = DefaultTripDays
	}
	start := r.today()
	return NewDateRange(start, start.AddDate(0, 0, days-1))
}

// ParseExplicitRange accepts a start/end pair when both parse and start <= end.
func ParseExplicitRange(start, end string) (models.DateRange, bool) {
	s, ok := parseExplicitDate(start)
	if !ok {
		return models.DateRange{}, false
	}
	e, ok := parseExplicitDate(end)
	if !ok || e.Before(s) {
		return models.DateRange{}, false
	}
	return NewDateRange(s, e), true
}

func parseExplicitDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range explicitDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NewDateRange builds a range from start to end; callers guarantee start <= end.
func NewDateRange(start, end time.Time) models.DateRange {
	start, end = utils.DateOnly(start), utils.DateOnly(end)
	return models.DateRange{Start: start, End: end, Days: ExpandDays(start, end)}
}

// ExpandDays lists every calendar day from start to end inclusive.
func ExpandDays(start, end time.Time) []time.Time {
	start, end = utils.DateOnly(start), utils.DateOnly(end)
	days := []time.Time{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

type dateParts struct {
	day, month, year int
	hasYear          bool
}

func matchISORange(text string, _ time.Time) (models.DateRange, bool) {
	for _, m := range isoRangeRe.FindAllStringSubmatch(text, -1) {
		if dr, ok := ParseExplicitRange(m[1], m[2]); ok {
			return dr, true
		}
	}
	return models.DateRange{}, false
}

func matchDayMonthRange(text string, ref time.Time) (models.DateRange, bool) {
	for _, m := range dayMonthRangeRe.FindAllStringSubmatch(text, -1) {
		s, ok1 := namedParts(m[1], m[2], m[3])
		e, ok2 := namedParts(m[4], m[5], m[6])
		if !ok1 || !ok2 {
			continue
		}
		if dr, ok := rangeFromParts(s, e, ref); ok {
			return dr, true
		}
	}
	return models.DateRange{}, false
}

func matchMonthDayRange(text string, ref time.Time) (models.DateRange, bool) {
	for _, m := range monthDayRangeRe.FindAllStringSubmatch(text, -1) {
		s, ok1 := namedParts(m[2], m[1], m[3])
		e, ok2 := namedParts(m[5], m[4], m[6])
		if !ok1 || !ok2 {
			continue
		}
		if dr, ok := rangeFromParts(s, e, ref); ok {
			return dr, true
		}
	}
	return models.DateRange{}, false
}

func matchNumericRange(text string, ref time.Time) (models.DateRange, bool) {
	for _, m := range numericRangeRe.FindAllStringSubmatch(text, -1) {
		s, ok1 := numericParts(m[1], m[2], m[3])
		e, ok2 := numericParts(m[4], m[5], m[6])
		if !ok1 || !ok2 {
			continue
		}
		if dr, ok := rangeFromParts(s, e, ref); ok {
			return dr, true
		}
	}
	return models.DateRange{}, false
}

func namedParts(day, month, year string) (dateParts, bool) {
	m := monthNumber(month)
	if m == 0 {
		return dateParts{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return dateParts{}, false
	}
	p := dateParts{day: d, month: m}
	if year != "" {
		p.year, _ = strconv.Atoi(year)
		p.hasYear = true
	}
	return p, true
}

func numericParts(day, month, year string) (dateParts, bool) {
	d, err1 := strconv.Atoi(day)
	m, err2 := strconv.Atoi(month)
	if err1 != nil || err2 != nil {
		return dateParts{}, false
	}
	p := dateParts{day: d, month: m}
	if year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			return dateParts{}, false
		}
		if y < 100 {
			y += 2000
		}
		p.year, p.hasYear = y, true
	}
	return p, true
}

// monthNumber accepts case-insensitive prefixes of at least three letters.
func monthNumber(word string) int {
	w := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(word), "."))
	if len(w) < 3 {
		return 0
	}
	for i, name := range monthNames {
		if strings.HasPrefix(name, w) {
			return i + 1
		}
	}
	return 0
}

// rangeFromParts fills missing years and applies the year-rollover rule:
// with no year on either side, an end month before the start month moves
// the end into the following year.
func rangeFromParts(s, e dateParts, ref time.Time) (models.DateRange, bool) {
	switch {
	case s.hasYear && !e.hasYear:
		e.year = s.year
	case !s.hasYear && e.hasYear:
		s.year = e.year
		if e.month < s.month {
			s.year--
		}
	case !s.hasYear && !e.hasYear:
		s.year, e.year = ref.Year(), ref.Year()
		if e.month < s.month {
			e.year++
		}
	}

	start, ok := calendarDate(s)
	if !ok {
		return models.DateRange{}, false
	}
	end, ok := calendarDate(e)
	if !ok || end.Before(start) {
		return models.DateRange{}, false
	}
	return NewDateRange(start, end), true
}

func calendarDate(p dateParts) (time.Time, bool) {
	if p.month < 1 || p.month > 12 || p.day < 1 || p.day > 31 {
		return time.Time{}, false
	}
	t := time.Date(p.year, time.Month(p.month), p.day, 0, 0, 0, 0, time.UTC)
	if t.Day() != p.day || int(t.Month()) != p.month {
		return time.Time{}, false
	}
	return t, true
}
