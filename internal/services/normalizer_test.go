package services

import (
	"reflect"
	"testing"
	"time"

	"concierge/internal/domain"
	"concierge/internal/utils"
)

func testNormalizer() Normalizer {
	return Normalizer{Dates: fixedResolver(2025, time.May, 10)}
}

func TestNormalizeLegacyChicagoScenario(t *testing.T) {
	raw := []byte(`{
		"booking_context": {"location": ""},
		"preferences": {"children_ages": [6, 9]},
		"nlu_prompt": "Plan a 4-day trip to Chicago with kids, vegan food, no long hikes"
	}`)

	trip, trace, err := testNormalizer().Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if trace.Shape != "legacy" {
		t.Fatalf("expected legacy shape, got %s", trace.Shape)
	}
	if trip.Location != "Chicago" || trace.InferredLocation != "Chicago" {
		t.Fatalf("expected inferred Chicago, got %q / %q", trip.Location, trace.InferredLocation)
	}
	if utils.FormatDate(trip.StartDate) != "2025-05-10" || utils.FormatDate(trip.EndDate) != "2025-05-13" {
		t.Fatalf("unexpected dates %s..%s", utils.FormatDate(trip.StartDate), utils.FormatDate(trip.EndDate))
	}
	if !trace.UsedDefaultDates || trace.DateSource != DateSourceDefault || trace.InferredDays != 4 {
		t.Fatalf("unexpected date trace: %+v", trace)
	}
	if !reflect.DeepEqual(trip.Dietary, []string{"vegan"}) {
		t.Fatalf("expected vegan dietary, got %v", trip.Dietary)
	}
	if trip.PartyType != domain.PartyFamily || !trip.HasChildren() {
		t.Fatalf("expected family party, got %s", trip.PartyType)
	}
	if !trace.Keywords.HasConstraint("avoid-long-hikes") {
		t.Fatalf("expected avoid-long-hikes constraint, got %v", trace.Keywords.Constraints)
	}
	if q := BuildQuery(domain.ContextRestaurants, trip); q != "best vegan restaurants in Chicago" {
		t.Fatalf("unexpected restaurant query %q", q)
	}
}

func TestNormalizeLegacyTextDates(t *testing.T) {
	raw := []byte(`{"booking_context":{"city":"Lisbon"},"nlu_prompt":"from 28 Dec to 3 Jan, wheelchair friendly please"}`)
	trip, trace, err := testNormalizer().Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if trace.DateSource != DateSourceText || trace.UsedDefaultDates {
		t.Fatalf("expected text dates, got %+v", trace)
	}
	if utils.FormatDate(trip.StartDate) != "2025-12-28" || utils.FormatDate(trip.EndDate) != "2026-01-03" {
		t.Fatalf("unexpected dates %s..%s", utils.FormatDate(trip.StartDate), utils.FormatDate(trip.EndDate))
	}
	if trip.Location != "Lisbon" || trace.InferredLocation != "" {
		t.Fatalf("explicit location should win, got %q (inferred %q)", trip.Location, trace.InferredLocation)
	}
	if !trip.Mobility.Wheelchair {
		t.Fatalf("wheelchair constraint should set mobility")
	}
}

func TestNormalizeCanonical(t *testing.T) {
	raw := []byte(`{
		"location": "Paris, France",
		"start_date": "2025-07-01",
		"end_date": "2025-07-03",
		"party": {"size": 2},
		"dietary": "Vegetarian, vegan",
		"interests": ["Art", "art", "food"],
		"mobility": {"wheelchair": true, "max_walk_km": 2.5},
		"free_text_query": "vegan spots and 10 days in Rome"
	}`)
	trip, trace, err := testNormalizer().Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if trace.Shape != "canonical" || trace.DateSource != DateSourceExplicit {
		t.Fatalf("unexpected trace %+v", trace)
	}
	if trip.Location != "Paris, France" || trip.PartyType != domain.PartyCouple {
		t.Fatalf("unexpected trip %+v", trip)
	}
	if !reflect.DeepEqual(trip.Dietary, []string{"vegetarian", "vegan"}) {
		t.Fatalf("unexpected dietary %v", trip.Dietary)
	}
	if !reflect.DeepEqual(trip.Interests, []string{"art", "food"}) {
		t.Fatalf("unexpected interests %v", trip.Interests)
	}
	if trip.Mobility.MaxWalkKm == nil || *trip.Mobility.MaxWalkKm != 2.5 || !trip.Mobility.Wheelchair {
		t.Fatalf("unexpected mobility %+v", trip.Mobility)
	}
	if utils.DaysInclusive(trip.StartDate, trip.EndDate) != 3 {
		t.Fatalf("free text must not change canonical dates")
	}
}

func TestNormalizeEmptyBodyUsesDefaults(t *testing.T) {
	trip, trace, err := testNormalizer().Normalize(nil)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if !trace.UsedDefaultDates || utils.DaysInclusive(trip.StartDate, trip.EndDate) != DefaultTripDays {
		t.Fatalf("expected default %d-day range, got %+v", DefaultTripDays, trace)
	}
	if trip.PartyType != domain.PartyUnknown || trip.Location != "" {
		t.Fatalf("unexpected trip %+v", trip)
	}
}

func TestNormalizeMalformedJSON(t *testing.T) {
	_, _, err := testNormalizer().Normalize([]byte(`{"location": `))
	if err == nil || !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
