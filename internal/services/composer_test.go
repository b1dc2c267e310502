package services

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"concierge/internal/domain"
	"concierge/internal/domain/models"
)

func sampleComposeInput() ComposeInput {
	start := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	acts := []models.Activity{
		{ID: "navy-pier", Title: "Navy Pier", Tags: []string{"attraction", "kids"}, ChildFriendly: true, StrollerFriendly: true, SourceURL: "https://example.com/pier"},
		{ID: "jazz-fest", Title: "Jazz Fest", Tags: []string{"event", "music"}, WheelchairFriendly: true},
		{ID: "aquarium", Title: "Aquarium", Tags: []string{"attraction"}},
	}
	ids, titles := ActivityIDs(acts)
	return ComposeInput{
		Trip: models.TripRequest{
			Location:  "Chicago",
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 1),
			PartyType: domain.PartyFamily,
			Dietary:   []string{"vegan"},
		},
		Itinerary:   AssembleItinerary(ExpandDays(start, start.AddDate(0, 0, 1)), ids, titles),
		Activities:  acts,
		Restaurants: []models.Restaurant{{ID: "handlebar", Title: "Handlebar", Cuisine: "Vegan", KidFriendly: true}},
		Packing:     BuildPackingList("rain", models.Mobility{}, true),
	}
}

func TestComposeResponseLegacySection(t *testing.T) {
	resp := ComposeResponse(sampleComposeInput())

	if len(resp.DayByDayPlan) != 2 {
		t.Fatalf("expected 2 legacy days, got %d", len(resp.DayByDayPlan))
	}
	day1 := resp.DayByDayPlan[0]
	if day1.Day != 1 || day1.Title != "Day 1 in Chicago" {
		t.Fatalf("unexpected day header %+v", day1)
	}
	if !reflect.DeepEqual(day1.Highlights, []string{"Navy Pier", "Jazz Fest", "Aquarium"}) {
		t.Fatalf("unexpected highlights %v", day1.Highlights)
	}

	card := resp.ActivityCards[0]
	if card.Type != "attraction, kids" || card.Link != "https://example.com/pier" || !reflect.DeepEqual(card.Suits, []string{"kids", "strollers"}) {
		t.Fatalf("unexpected activity card %+v", card)
	}
	if resp.ActivityCards[1].Duration != "2-3 hours" || resp.ActivityCards[2].Duration != "1-2 hours" {
		t.Fatalf("unexpected durations %+v", resp.ActivityCards)
	}
	if resp.RestaurantRecommendations[0].Notes != "Kid-friendly" {
		t.Fatalf("unexpected restaurant notes %+v", resp.RestaurantRecommendations[0])
	}

	last := resp.PackingChecklist[len(resp.PackingChecklist)-1]
	if last.Item != "Snacks, wipes and child essentials" || last.Why != "Walking and sightseeing (optional)" {
		t.Fatalf("unexpected checklist item %+v", last)
	}
	if resp.Properties != "no property" {
		t.Fatalf("expected no property marker, got %#v", resp.Properties)
	}
}

func TestComposeResponseV2AndLodging(t *testing.T) {
	in := sampleComposeInput()
	in.Lodging = []models.ListingSummary{{ID: 1, Title: "Loop Loft", City: "Chicago", PricePerNight: 120}}
	resp := ComposeResponse(in)

	if resp.V2.Trip.Days != 2 || resp.V2.Trip.StartDate != "2025-05-10" || resp.V2.Trip.EndDate != "2025-05-11" {
		t.Fatalf("unexpected trip summary %+v", resp.V2.Trip)
	}
	listings, ok := resp.Properties.([]models.ListingSummary)
	if !ok || len(listings) != 1 {
		t.Fatalf("expected listings in properties, got %#v", resp.Properties)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"day_by_day_plan", "activity_cards", "restaurant_recommendations", "packing_checklist", "properties", "v2", "debug"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing top-level key %q", key)
		}
	}
}

func TestComposeResponseEmptyInputs(t *testing.T) {
	resp := ComposeResponse(ComposeInput{})
	raw, err := json.Marshal(resp.V2)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `"itinerary":[],"activities":[],"restaurants":[],"packing":[],"lodging":[]`
	if !json.Valid(raw) || !strings.Contains(string(raw), want) {
		t.Fatalf("expected empty arrays instead of null, got %s", raw)
	}
	if resp.V2.Trip.StartDate != "" || resp.V2.Trip.Days != 0 {
		t.Fatalf("zero trip should not render dates: %+v", resp.V2.Trip)
	}
}
