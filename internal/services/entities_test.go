package services

import (
	"reflect"
	"testing"

	"concierge/internal/domain"
	"concierge/internal/domain/models"
)

func TestDeriveActivities(t *testing.T) {
	groups := map[domain.ContextType][]models.RawResult{
		domain.ContextEvents: {
			{Title: "Chicago Jazz Festival | Choose Chicago", BodyText: "Free admission, family friendly concerts", URL: "https://example.com/jazz"},
		},
		domain.ContextPOI: {
			{Title: "Art Institute of Chicago", BodyText: "World-class museum, wheelchair accessible", URL: "https://example.com/aic"},
			{Title: "Chicago Jazz Festival", BodyText: "duplicate listing"},
			{Title: "!!!", BodyText: "no usable title"},
		},
	}

	acts := DeriveActivities(groups)
	if len(acts) != 2 {
		t.Fatalf("expected 2 activities, got %d: %+v", len(acts), acts)
	}

	jazz := acts[0]
	if jazz.ID != "chicago-jazz-festival" || jazz.Title != "Chicago Jazz Festival" {
		t.Fatalf("unexpected first activity %+v", jazz)
	}
	if !reflect.DeepEqual(jazz.Tags, []string{"event", "kids", "music"}) {
		t.Fatalf("unexpected tags %v", jazz.Tags)
	}
	if jazz.PriceTier != domain.PriceBudget || !jazz.ChildFriendly || jazz.WheelchairFriendly {
		t.Fatalf("unexpected jazz attributes %+v", jazz)
	}

	aic := acts[1]
	if aic.ID != "art-institute-of-chicago" || !aic.WheelchairFriendly || !aic.StrollerFriendly {
		t.Fatalf("unexpected museum attributes %+v", aic)
	}
	if aic.PriceTier != domain.PriceUnknown || aic.SourceURL != "https://example.com/aic" {
		t.Fatalf("unexpected museum price/link %+v", aic)
	}
}

func TestDeriveRestaurants(t *testing.T) {
	results := []models.RawResult{
		{Title: "Handlebar", BodyText: "Vegan and vegetarian comfort food, kids menu, $$", URL: "https://example.com/handlebar"},
		{Title: "Handlebar", BodyText: "repeat"},
		{Title: "Green Plate", BodyText: "plant-based, everything is vegan"},
	}
	got := DeriveRestaurants(results, []string{"vegan"})
	if len(got) != 2 {
		t.Fatalf("expected 2 restaurants, got %d", len(got))
	}
	if got[0].Cuisine != "Vegan" || !got[0].KidFriendly || got[0].PriceTier != domain.PriceModerate {
		t.Fatalf("unexpected first restaurant %+v", got[0])
	}
	if !reflect.DeepEqual(got[0].Tags, []string{"vegan", "vegetarian"}) {
		t.Fatalf("unexpected tags %v", got[0].Tags)
	}
	if got[1].ID != "green-plate" || got[1].KidFriendly {
		t.Fatalf("unexpected second restaurant %+v", got[1])
	}
}

func TestDerivePriceTier(t *testing.T) {
	cases := map[string]domain.PriceTier{
		"Tasting menu $$$$":       domain.PriceLuxury,
		"Upscale steakhouse":      domain.PriceUpscale,
		"mid-range bistro":        domain.PriceModerate,
		"Cheap eats downtown":     domain.PriceBudget,
		"A lovely neighbourhood":  domain.PriceUnknown,
		"Michelin-starred dining": domain.PriceLuxury,
	}
	for in, want := range cases {
		if got := DerivePriceTier(in); got != want {
			t.Fatalf("DerivePriceTier(%q) = %s, want %s", in, got, want)
		}
	}
}
