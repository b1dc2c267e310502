package services

import (
	"regexp"
	"strconv"
	"strings"

	"concierge/internal/utils"
)

// MaxTripDays caps a day count read from free text.
const MaxTripDays = 30

// TripHints are the location and trip length implied by free text.
type TripHints struct {
	Location *string
	Days     *int
}

var (
	dayCountRe   = regexp.MustCompile(`(?i)\b(\d+)\s*-?\s*days?\b`)
	toLocationRe = regexp.MustCompile(`(?i)\bto\s+([a-z][a-z\s'-]*)`)
	inLocationRe = regexp.MustCompile(`(?i)\bin\s+([a-z][a-z\s'-]*)`)
	locationStop = regexp.MustCompile(`(?i)\b(?:with|for|and)\b`)
)

// ExtractTripHints scans text for "<n> day(s)" and "to/in <place>".
// Missing hints are nil; callers fill them from defaults.
func ExtractTripHints(text string) TripHints {
	var hints TripHints
	if m := dayCountRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			if n > MaxTripDays {
				n = MaxTripDays
			}
			hints.Days = &n
		}
	}

	for _, re := range []*regexp.Regexp{toLocationRe, inLocationRe} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if loc := trimLocation(m[1]); loc != "" {
			hints.Location = &loc
			break
		}
	}
	return hints
}

// trimLocation cuts a captured phrase at the first stop word and title-cases it.
// Commas and periods already end the capture.
func trimLocation(raw string) string {
	if loc := locationStop.FindStringIndex(raw); loc != nil {
		raw = raw[:loc[0]]
	}
	raw = strings.Trim(utils.NormalizeSpace(raw), "'-")
	if raw == "" {
		return ""
	}
	return utils.TitleCase(raw)
}

// KeywordSignals are interest tags and travel constraints found in free text.
type KeywordSignals struct {
	Interests   []string `json:"extracted_interests"`
	Constraints []string `json:"constraints"`
}

type keywordRule struct {
	tag      string
	triggers []string
}

// interestRules is ordered so that extracted tags come out deterministically.
var interestRules = []keywordRule{
	{tag: "museum", triggers: []string{"museum", "art", "gallery"}},
	{tag: "outdoors", triggers: []string{"hike", "hiking", "park", "trail", "nature", "beach"}},
	{tag: "food", triggers: []string{"food", "restaurant", "cuisine", "eat"}},
	{tag: "kids", triggers: []string{"kid", "child", "family"}},
	{tag: "history", triggers: []string{"history", "historic", "castle", "monument"}},
	{tag: "nightlife", triggers: []string{"nightlife", "bar", "club"}},
	{tag: "shopping", triggers: []string{"shopping", "market", "mall"}},
	{tag: "music", triggers: []string{"music", "concert", "jazz"}},
}

type constraintRule struct {
	name    string
	pattern *regexp.Regexp
}

var constraintRules = []constraintRule{
	{name: "avoid-long-hikes", pattern: regexp.MustCompile(`no long hikes?`)},
	{name: "wheelchair-only", pattern: regexp.MustCompile(`wheelchair`)},
	{name: "vegan-diet", pattern: regexp.MustCompile(`vegan`)},
}

// ExtractKeywords maps text to interest tags and constraint names.
func ExtractKeywords(text string) KeywordSignals {
	lower := strings.ToLower(text)
	out := KeywordSignals{Interests: []string{}, Constraints: []string{}}
	if strings.TrimSpace(lower) == "" {
		return out
	}
	for _, rule := range interestRules {
		if utils.ContainsAny(lower, rule.triggers...) {
			out.Interests = append(out.Interests, rule.tag)
		}
	}
	for _, rule := range constraintRules {
		if rule.pattern.MatchString(lower) {
			out.Constraints = append(out.Constraints, rule.name)
		}
	}
	return out
}

// HasConstraint reports whether name was extracted.
func (k KeywordSignals) HasConstraint(name string) bool {
	for _, c := range k.Constraints {
		if c == name {
			return true
		}
	}
	return false
}
