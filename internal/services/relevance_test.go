package services

import (
	"reflect"
	"testing"

	"concierge/internal/domain/models"
)

func rawResults(titles ...string) []models.RawResult {
	out := make([]models.RawResult, 0, len(titles))
	for _, t := range titles {
		out = append(out, models.RawResult{Title: t, SourceTag: "test"})
	}
	return out
}

func TestAliasesFor(t *testing.T) {
	f := RelevanceFilter{Aliases: DefaultAliases}
	got := f.AliasesFor("NYC, USA")
	want := []string{"nyc", "new york", "manhattan", "brooklyn", "queens", "bronx", "staten island", "nyc, usa"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AliasesFor = %v, want %v", got, want)
	}
	if f.AliasesFor("   ") != nil {
		t.Fatalf("expected no aliases for blank location")
	}
}

func TestFilterStageAliases(t *testing.T) {
	f := RelevanceFilter{Aliases: DefaultAliases}
	in := rawResults("Brooklyn Flea Market", "Best bagels in Toronto", "Manhattan skyline tours")
	out, stage := f.Filter(in, "NYC")
	if stage != StageAliases {
		t.Fatalf("expected stage 1, got %d", stage)
	}
	if len(out) != 2 || out[0].Title != "Brooklyn Flea Market" || out[1].Title != "Manhattan skyline tours" {
		t.Fatalf("unexpected filtered results %+v", out)
	}
}

func TestFilterMatchesURLAndBody(t *testing.T) {
	f := RelevanceFilter{}
	in := []models.RawResult{
		{Title: "Top 10 things", URL: "https://example.com/chicago/top-10"},
		{Title: "Weekend ideas", BodyText: "A stroll through the Windy City"},
		{Title: "Paris cafes"},
	}
	out, stage := f.Filter(in, "Chicago")
	if stage != StageAliases || len(out) != 2 {
		t.Fatalf("expected 2 results at stage 1, got %d at stage %d", len(out), stage)
	}
}

func TestFilterUnchangedWhenNothingMatches(t *testing.T) {
	f := RelevanceFilter{Aliases: DefaultAliases}
	in := rawResults("Generic travel tips", "Packing hacks")
	out, stage := f.Filter(in, "Reykjavik")
	if stage != StageUnchanged || !reflect.DeepEqual(out, in) {
		t.Fatalf("expected unchanged input, got stage %d %+v", stage, out)
	}

	empty, stage := f.Filter([]models.RawResult{}, "Reykjavik")
	if stage != StageUnchanged || len(empty) != 0 {
		t.Fatalf("expected empty unchanged result, got %d items at stage %d", len(empty), stage)
	}
}

func TestFilterIdempotentAndNeverGrows(t *testing.T) {
	f := RelevanceFilter{Aliases: DefaultAliases}
	inputs := [][]models.RawResult{
		rawResults("Chicago Art Institute", "Navy Pier", "Windy City pizza"),
		rawResults("Nothing relevant", "Still nothing"),
		rawResults(),
	}
	for _, in := range inputs {
		once, _ := f.Filter(in, "Chicago")
		twice, _ := f.Filter(once, "Chicago")
		if len(once) > len(in) {
			t.Fatalf("filter grew the set: %d > %d", len(once), len(in))
		}
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("filter not idempotent: %+v vs %+v", once, twice)
		}
	}
}
