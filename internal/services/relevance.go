package services

import (
	"strings"

	"concierge/internal/domain/models"
)

// FilterStage tells which loosening stage produced a filtered set.
type FilterStage int

const (
	StageAliases   FilterStage = 1
	StageRawName   FilterStage = 2
	StageUnchanged FilterStage = 3
)

// AliasTable maps a lower-cased primary city name to extra names that
// count as the same destination.
type AliasTable map[string][]string

// DefaultAliases covers a few large cities whose results rarely repeat the
// city name verbatim. Short abbreviations are keys only: as needles they
// would match unrelated words.
var DefaultAliases = AliasTable{
	"nyc":           {"new york", "manhattan", "brooklyn", "queens", "bronx", "staten island"},
	"new york":      {"nyc", "manhattan", "brooklyn", "queens", "bronx", "staten island"},
	"new york city": {"nyc", "new york", "manhattan", "brooklyn", "queens", "bronx", "staten island"},
	"sf":            {"san francisco", "bay area"},
	"san francisco": {"bay area"},
	"la":            {"los angeles", "hollywood", "santa monica"},
	"los angeles":   {"hollywood", "santa monica"},
	"washington dc": {"washington, d.c.", "district of columbia", "d.c."},
	"london":        {"westminster", "camden", "greenwich"},
	"chicago":       {"chi-town", "windy city"},
}

// RelevanceFilter narrows raw results to items about a destination.
type RelevanceFilter struct {
	Aliases AliasTable
}

// AliasesFor returns every name that counts as a mention of location.
func (f RelevanceFilter) AliasesFor(location string) []string {
	raw := strings.ToLower(strings.TrimSpace(location))
	if raw == "" {
		return nil
	}
	primary := raw
	if i := strings.Index(primary, ","); i >= 0 {
		primary = strings.TrimSpace(primary[:i])
	}

	table := f.Aliases
	if table == nil {
		table = DefaultAliases
	}
	seen := map[string]bool{}
	out := []string{}
	add := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}
	add(primary)
	for _, alias := range table[primary] {
		add(alias)
	}
	add(raw)
	return out
}

// Filter keeps items mentioning an alias, then loosens to the raw location,
// and finally returns the input unchanged when nothing matched.
func (f RelevanceFilter) Filter(results []models.RawResult, location string) ([]models.RawResult, FilterStage) {
	aliases := f.AliasesFor(location)
	if len(aliases) == 0 || len(results) == 0 {
		return results, StageUnchanged
	}

	haystacks := make([]string, len(results))
	for i, r := range results {
		haystacks[i] = strings.ToLower(r.Title + " " + r.BodyText + " " + r.URL)
	}

	if kept := keepMatching(results, haystacks, aliases); len(kept) > 0 {
		return kept, StageAliases
	}
	raw := strings.ToLower(strings.TrimSpace(location))
	if kept := keepMatching(results, haystacks, []string{raw}); len(kept) > 0 {
		return kept, StageRawName
	}
	return results, StageUnchanged
}

func keepMatching(results []models.RawResult, haystacks []string, needles []string) []models.RawResult {
	kept := []models.RawResult{}
	for i, r := range results {
		for _, n := range needles {
			if strings.Contains(haystacks[i], n) {
				kept = append(kept, r)
				break
			}
		}
	}
	return kept
}
